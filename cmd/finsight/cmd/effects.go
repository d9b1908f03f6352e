package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/finsight/scenario-engine/pkg/money"
)

var effectsCmd = &cobra.Command{
	Use:   "effects",
	Short: "Show the per-scenario and combined effects of the active set",
	RunE:  runEffects,
}

func init() {
	rootCmd.AddCommand(effectsCmd)
	effectsCmd.Flags().StringVarP(&projectPlanPath, "plan", "f", "", "path to plan file (YAML)")
	effectsCmd.Flags().StringVar(&projectDBPath, "db", "", "path to scenario database (instead of a plan file)")
}

func runEffects(cmd *cobra.Command, args []string) error {
	engine, _, scenarios, _, err := buildEngineInputs()
	if err != nil {
		return err
	}

	effects := engine.Aggregator.Effects(scenarios)
	if len(effects) == 0 {
		fmt.Println("no active scenarios")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tScenario\tTemplate\tNet Effect\tMonthly\tTransactions\tRisk")
	for _, e := range effects {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			e.ScenarioID,
			e.ScenarioName,
			e.TemplateType,
			money.FormatUSD(e.Effect.NetEffect),
			money.FormatUSD(e.Effect.MonthlyChange),
			e.Effect.AffectedTransactions,
			e.Effect.RiskLevel,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	combined := engine.Combine(scenarios)
	fmt.Printf("\nCombined over %d scenarios: net %s, monthly %s, %d transactions affected, risk %s\n",
		combined.ScenarioCount,
		money.FormatUSD(combined.NetEffect),
		money.FormatUSD(combined.MonthlyChange),
		combined.AffectedTransactions,
		combined.RiskLevel,
	)
	return nil
}
