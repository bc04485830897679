package cli

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/rileyhilliard/pulse/internal/errors"
	"github.com/rileyhilliard/pulse/internal/util"
	"github.com/spf13/cobra"
)

// Global flags
var (
	configFlag   string
	intervalFlag string
	simulateFlag bool
	logFileFlag  string
	noColorFlag  bool
	viewFlag     string
	sortFlag     string
)

// rootCmd runs the dashboard
var rootCmd = &cobra.Command{
	Use:   "pulse",
	Short: "Interactive terminal system monitor",
	Long: `pulse shows live CPU, memory, disk, network and process activity
in a full-screen terminal dashboard.

Views:
  1 System     overview of the machine and its busiest processes
  2 Process    sortable, filterable process table with tree and grouping modes
  3 Resources  per-core usage, memory and swap
  4 Network    interfaces and traffic history
  5 Disks      mounts, usage and throughput
  6 Options    current settings

Press ? inside the dashboard for every key binding.

Examples:
  pulse
  pulse --interval 500ms --view process --sort memory
  pulse --simulate
  pulse --log-file /tmp/pulse.log`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cmd, dashboardOptions{
			ConfigPath: configFlag,
			Interval:   intervalFlag,
			Simulate:   simulateFlag,
			LogFile:    logFileFlag,
			NoColor:    noColorFlag,
			View:       viewFlag,
			Sort:       sortFlag,
		})
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFlag, "config", "", "config file (default ~/.config/pulse/config.yaml)")
	flags.BoolVar(&noColorFlag, "no-color", false, "disable colored output")

	rootCmd.Flags().StringVar(&intervalFlag, "interval", "", "update interval between 250ms and 10s (e.g., 500ms, 2s)")
	rootCmd.Flags().BoolVar(&simulateFlag, "simulate", false, "show simulated metrics instead of this machine's")
	rootCmd.Flags().StringVar(&logFileFlag, "log-file", "", "write logs to this file while the dashboard runs")
	rootCmd.Flags().StringVar(&viewFlag, "view", "", "view to start in (system, process, resources, network, disks, options)")
	rootCmd.Flags().StringVar(&sortFlag, "sort", "", "initial process sort column (pid, name, cpu, memory, user, time, threads, state)")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, describeError(err))
		os.Exit(1)
	}
}

// describeError renders structured errors as-is and turns cobra's argument
// errors into a hint.
func describeError(err error) string {
	var pulseErr *errors.Error
	if stderrors.As(err, &pulseErr) {
		return pulseErr.Error()
	}
	if isUnknownCommandError(err) {
		msg := "pulse doesn't take arguments"
		suggestion := "Run 'pulse --help' to see the available commands and flags."
		if name := extractUnknownCommand(err); name != "" {
			msg = fmt.Sprintf("Unknown command '%s'", name)
			if similar := util.SuggestSimilar(name, commandNames(), 3); len(similar) > 0 {
				suggestion = "Did you mean: " + util.JoinOrNone(similar) + "? " + suggestion
			}
		}
		return errors.WrapWithCode(err, errors.ErrConfig, msg, suggestion).Error()
	}
	return errors.New(errors.ErrConfig, err.Error(), "Run 'pulse --help' for usage.").Error()
}

// commandNames lists the visible subcommands.
func commandNames() []string {
	var names []string
	for _, c := range rootCmd.Commands() {
		if !c.Hidden {
			names = append(names, c.Name())
		}
	}
	return names
}

// isUnknownCommandError reports whether cobra rejected the command line itself.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "unknown command") ||
		strings.Contains(msg, "unknown flag") ||
		strings.Contains(msg, "unknown shorthand flag")
}

// extractUnknownCommand pulls the command name out of cobra's
// `unknown command "foo" for "pulse"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start == -1 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end == -1 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
