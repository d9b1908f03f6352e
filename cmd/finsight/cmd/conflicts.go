package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var conflictsCmd = &cobra.Command{
	Use:   "conflicts",
	Short: "Check the active scenario set for conflicting combinations",
	RunE:  runConflicts,
}

func init() {
	rootCmd.AddCommand(conflictsCmd)
	conflictsCmd.Flags().StringVarP(&projectPlanPath, "plan", "f", "", "path to plan file (YAML)")
	conflictsCmd.Flags().StringVar(&projectDBPath, "db", "", "path to scenario database (instead of a plan file)")
}

func runConflicts(cmd *cobra.Command, args []string) error {
	engine, _, scenarios, _, err := buildEngineInputs()
	if err != nil {
		return err
	}

	conflicts := engine.Detect(scenarios)
	if len(conflicts) == 0 {
		fmt.Println("no conflicts detected")
		return nil
	}
	for _, c := range conflicts {
		fmt.Printf("[%s] %s: %s\n", c.Severity, c.Name, c.Detail)
	}
	return nil
}
