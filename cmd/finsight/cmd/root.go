package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "finsight",
	Short: "Project the net-worth impact of hypothetical financial scenarios",
	Long: `Finsight overlays hypothetical financial scenarios (salary change, job
loss, major purchase, debt payoff, emergency-fund buildup) on a projected
net-worth trajectory.

It provides tools for:
  - Computing the numeric effect of each scenario template
  - Combining all active scenarios into one impact summary
  - Generating month-by-month net-worth projections, with and without scenarios
  - Flagging scenario combinations likely to interact unpredictably
  - Keeping scenarios and account snapshots in a local SQLite database`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log engine warnings and debug detail to stderr")
}

// stderrLogger routes engine logs to stderr; debug lines only with -v.
type stderrLogger struct{}

func (stderrLogger) Debugf(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "DEBUG "+format+"\n", args...)
	}
}
func (stderrLogger) Infof(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "INFO  "+format+"\n", args...)
}
func (stderrLogger) Warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "WARN  "+format+"\n", args...)
}
func (stderrLogger) Errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "ERROR "+format+"\n", args...)
}
