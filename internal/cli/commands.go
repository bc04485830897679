package cli

import (
	"io"
	"os"

	"github.com/rileyhilliard/pulse/internal/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configCmd prints the effective configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration pulse would start with, after merging defaults,
the config file, PULSE_ environment variables and NO_COLOR.

The output is valid YAML and can be saved as a starting config file.

Examples:
  pulse config
  pulse config > ~/.config/pulse/config.yaml
  PULSE_INTERVAL=500ms pulse config`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(nil, dashboardOptions{ConfigPath: configFlag})
		if err != nil {
			return err
		}
		if noColorFlag {
			cfg.NoColor = true
		}
		return writeConfig(cmd.OutOrStdout(), cfg)
	},
}

// writeConfig encodes cfg as YAML.
func writeConfig(w io.Writer, cfg any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to encode config",
			"")
	}
	return enc.Close()
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for pulse.

Examples:
  # Bash
  pulse completion bash > /etc/bash_completion.d/pulse

  # Zsh
  pulse completion zsh > "${fpath[1]}/_pulse"

  # Fish
  pulse completion fish > ~/.config/fish/completions/pulse.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeCompletion(rootCmd, args[0], os.Stdout)
	},
}

// writeCompletion emits the completion script for shell.
func writeCompletion(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletion(w)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletion(w)
	default:
		return errors.New(errors.ErrConfig,
			"Unknown shell: "+shell,
			"Supported shells: bash, zsh, fish, powershell")
	}
}

func init() {
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(completionCmd)
}
