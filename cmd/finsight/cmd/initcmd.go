package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/finsight/scenario-engine/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Write an example plan file to get started",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	filename := "plan.yaml"
	if len(args) == 1 {
		filename = args[0]
	}
	if _, err := os.Stat(filename); err == nil {
		return fmt.Errorf("%s already exists, refusing to overwrite", filename)
	}
	if err := config.NewInputParser().WriteExamplePlan(filename); err != nil {
		return err
	}
	fmt.Printf("wrote example plan to %s\n", filename)
	return nil
}
