package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finsight/scenario-engine/internal/calculation"
	"github.com/finsight/scenario-engine/internal/config"
	"github.com/finsight/scenario-engine/internal/domain"
	"github.com/finsight/scenario-engine/internal/output"
	"github.com/finsight/scenario-engine/internal/store"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Generate a net-worth projection from a plan file or database",
	Long: `Generate a month-by-month net-worth projection: six reconstructed
historical months, the present, and a simulated horizon ahead. When any
scenario in the input is active, a scenario-adjusted series is produced
alongside the baseline together with effect summaries and conflict warnings.

Example:
  finsight project -f plan.yaml --months 24 --format csv`,
	RunE: runProject,
}

var (
	projectPlanPath string
	projectDBPath   string
	projectMonths   int
	projectSeed     int64
	projectFormat   string
	projectOut      string
)

func init() {
	rootCmd.AddCommand(projectCmd)

	projectCmd.Flags().StringVarP(&projectPlanPath, "plan", "f", "", "path to plan file (YAML)")
	projectCmd.Flags().StringVar(&projectDBPath, "db", "", "path to scenario database (instead of a plan file)")
	projectCmd.Flags().IntVar(&projectMonths, "months", 0, "projection horizon in months (default from plan, else 12)")
	projectCmd.Flags().Int64Var(&projectSeed, "seed", 0, "PRNG seed for reproducible projections")
	projectCmd.Flags().StringVar(&projectFormat, "format", "console", "output format: "+strings.Join(output.FormatNames(), ", "))
	projectCmd.Flags().StringVarP(&projectOut, "out", "o", "", "write output to file instead of stdout")
}

func runProject(cmd *cobra.Command, args []string) error {
	engine, accounts, scenarios, months, err := buildEngineInputs()
	if err != nil {
		return err
	}
	if projectMonths > 0 {
		months = projectMonths
	}
	if projectSeed != 0 {
		engine.Generator.Seed = projectSeed
	}

	report := engine.Preview(accounts, months, scenarios)

	f := output.GetFormatterByName(projectFormat)
	if f == nil {
		return fmt.Errorf("unknown format %q (want one of %s)", projectFormat, strings.Join(output.FormatNames(), ", "))
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("format report: %w", err)
	}

	if projectOut != "" {
		if err := os.WriteFile(projectOut, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", projectOut, err)
		}
		fmt.Printf("wrote %s report to %s\n", f.Name(), projectOut)
		return nil
	}
	_, err = os.Stdout.Write(data)
	return err
}

// buildEngineInputs wires an engine plus its materialized inputs from
// either a plan file or the scenario database.
func buildEngineInputs() (*calculation.Engine, []domain.Account, []domain.Scenario, int, error) {
	engine := calculation.NewEngine()
	engine.SetLogger(stderrLogger{})

	switch {
	case projectPlanPath != "":
		plan, err := config.NewInputParser().LoadFromFile(projectPlanPath)
		if err != nil {
			return nil, nil, nil, 0, err
		}
		engine.Generator.Assumptions = plan.BuildAssumptions()
		engine.Generator.Seed = plan.Projection.Seed
		if plan.Projection.LookBack > 0 {
			engine.Generator.LookBackMonths = plan.Projection.LookBack
		}
		return engine, plan.Accounts, plan.Scenarios, plan.Projection.Months, nil

	case projectDBPath != "":
		st, err := store.NewSQLite(projectDBPath)
		if err != nil {
			return nil, nil, nil, 0, err
		}
		defer st.Close()
		ctx := context.Background()
		accounts, err := st.ListAccounts(ctx)
		if err != nil {
			return nil, nil, nil, 0, fmt.Errorf("list accounts: %w", err)
		}
		scenarios, err := st.ListScenarios(ctx, store.ScenarioFilter{})
		if err != nil {
			return nil, nil, nil, 0, fmt.Errorf("list scenarios: %w", err)
		}
		return engine, accounts, scenarios, 0, nil

	default:
		return nil, nil, nil, 0, fmt.Errorf("either --plan or --db is required")
	}
}
