package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/finsight/scenario-engine/internal/domain"
	"github.com/finsight/scenario-engine/internal/store"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Manage scenarios in the local database",
}

var scenarioDBPath string

var scenarioAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a scenario",
	Long: `Add a scenario to the database. Parameters are free-form key=value
pairs interpreted by the template's effect rule.

Example:
  finsight scenario add --db finsight.db --name "Promotion raise" \
    --template salary-increase --param increaseAmount=500 --active`,
	RunE: runScenarioAdd,
}

var scenarioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scenarios",
	RunE:  runScenarioList,
}

var scenarioToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Flip a scenario's active flag",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioToggle,
}

var scenarioRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioRm,
}

var (
	scenarioName     string
	scenarioTemplate string
	scenarioParams   []string
	scenarioActive   bool
)

func init() {
	rootCmd.AddCommand(scenarioCmd)
	scenarioCmd.PersistentFlags().StringVar(&scenarioDBPath, "db", "finsight.db", "path to scenario database")
	scenarioCmd.AddCommand(scenarioAddCmd, scenarioListCmd, scenarioToggleCmd, scenarioRmCmd)

	scenarioAddCmd.Flags().StringVar(&scenarioName, "name", "", "scenario name (required)")
	scenarioAddCmd.Flags().StringVar(&scenarioTemplate, "template", string(domain.TemplateGeneric), "scenario template type")
	scenarioAddCmd.Flags().StringArrayVar(&scenarioParams, "param", nil, "template parameter as key=value (repeatable)")
	scenarioAddCmd.Flags().BoolVar(&scenarioActive, "active", false, "activate the scenario immediately")
	scenarioAddCmd.MarkFlagRequired("name")
}

func openStore() (*store.SQLiteStore, error) {
	st, err := store.NewSQLite(scenarioDBPath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", scenarioDBPath, err)
	}
	return st, nil
}

func runScenarioAdd(cmd *cobra.Command, args []string) error {
	params := make(map[string]any, len(scenarioParams))
	for _, kv := range scenarioParams {
		key, value, found := strings.Cut(kv, "=")
		if !found || key == "" {
			return fmt.Errorf("bad --param %q, want key=value", kv)
		}
		params[key] = value
	}

	template := domain.TemplateType(scenarioTemplate)
	if !template.Known() {
		fmt.Fprintf(os.Stderr, "note: unknown template %q will use the generic effect rule\n", scenarioTemplate)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	s := &domain.Scenario{
		Name:         scenarioName,
		TemplateType: template,
		Parameters:   params,
		IsActive:     scenarioActive,
	}
	if err := st.SaveScenario(context.Background(), s); err != nil {
		return fmt.Errorf("save scenario: %w", err)
	}
	fmt.Printf("added scenario %s (%s)\n", s.ID, s.Name)
	return nil
}

func runScenarioList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	scenarios, err := st.ListScenarios(context.Background(), store.ScenarioFilter{})
	if err != nil {
		return fmt.Errorf("list scenarios: %w", err)
	}
	if len(scenarios) == 0 {
		fmt.Println("no scenarios")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tName\tTemplate\tActive\tModified")
	for _, s := range scenarios {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n",
			s.ID, s.Name, s.TemplateType, s.IsActive, s.LastModified.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func runScenarioToggle(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	s, err := st.GetScenario(ctx, args[0])
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("scenario %q not found", args[0])
	}
	if err := st.SetScenarioActive(ctx, s.ID, !s.IsActive); err != nil {
		return err
	}
	fmt.Printf("scenario %s active: %t\n", s.ID, !s.IsActive)
	return nil
}

func runScenarioRm(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteScenario(context.Background(), args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted scenario %s\n", args[0])
	return nil
}
