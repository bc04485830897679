package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/pulse/internal/errors"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is prepended to every environment override (PULSE_INTERVAL, PULSE_HISTORY_CPU, ...).
	EnvPrefix = "PULSE"
	// GlobalConfigDir is the directory under $XDG_CONFIG_HOME (or ~/.config) holding the config.
	GlobalConfigDir = "pulse"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yaml"
)

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. $XDG_CONFIG_HOME/pulse/config.yaml
// 3. ~/.config/pulse/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		explicit = ExpandTilde(explicit)
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	for _, dir := range configDirs() {
		path := filepath.Join(dir, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", nil
}

// configDirs returns the base directories searched for pulse/config.yaml, in order.
func configDirs() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, xdg)
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, filepath.Join(home, ".config"))
	}
	return dirs
}

// Load reads config from the specified path with PULSE_ environment overrides applied.
// An empty path yields defaults plus environment overrides.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					"Config file not found",
					"Create "+filepath.Join("~/.config", GlobalConfigDir, GlobalConfigFile)+" or point --config at an existing file")
			}
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML")
		}
	}

	return parseConfig(v, path)
}

// LoadOrDefault finds and loads the config, or returns defaults (with env overrides) if none exists.
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// newViper returns a viper instance with defaults registered for every key.
// AutomaticEnv only consults keys viper already knows, so each key needs a default
// for PULSE_ overrides to reach Unmarshal.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults mirrors DefaultConfig into viper.
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("interval", def.Interval.String())
	v.SetDefault("source", def.Source)
	v.SetDefault("history.cpu", def.History.CPU)
	v.SetDefault("history.memory", def.History.Memory)
	v.SetDefault("history.network", def.History.Network)
	v.SetDefault("processes.visible_rows", def.Processes.VisibleRows)
	v.SetDefault("processes.sort", def.Processes.Sort)
	v.SetDefault("processes.full_command", def.Processes.FullCommand)
	v.SetDefault("processes.tree", def.Processes.Tree)
	v.SetDefault("processes.aggregate", def.Processes.Aggregate)
	v.SetDefault("view", def.View)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("no_color", def.NoColor)
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		where := "your PULSE_ environment variables"
		if path != "" {
			where = path
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the values in "+where)
	}

	cfg.Source = strings.ToLower(strings.TrimSpace(cfg.Source))
	cfg.View = strings.ToLower(strings.TrimSpace(cfg.View))
	cfg.Processes.Sort = strings.ToLower(strings.TrimSpace(cfg.Processes.Sort))
	cfg.LogFile = Expand(cfg.LogFile)

	return cfg, nil
}
