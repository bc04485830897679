package config

import "time"

// Interval bounds shared by config validation and the dashboard's +/- controls.
const (
	MinInterval     = 250 * time.Millisecond
	MaxInterval     = 10 * time.Second
	DefaultInterval = time.Second
)

// Metrics sources.
const (
	SourceSystem    = "system"
	SourceSimulated = "simulated"
)

// SortKeys lists the accepted processes.sort values in their display order.
var SortKeys = []string{"pid", "name", "cpu", "memory", "user", "time", "threads", "state"}

// Views lists the accepted view values in cycle order.
var Views = []string{"system", "process", "resources", "network", "disks", "options"}

// Config represents the complete pulse configuration file.
type Config struct {
	// Interval between metric samples. Adjustable at runtime with +/-.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// Source selects where metrics come from: "system" or "simulated".
	Source string `yaml:"source" mapstructure:"source"`

	History   HistoryConfig   `yaml:"history" mapstructure:"history"`
	Processes ProcessesConfig `yaml:"processes" mapstructure:"processes"`

	// View is the view shown at startup.
	View string `yaml:"view" mapstructure:"view"`

	// LogFile receives log output while the dashboard owns the terminal.
	// Empty discards logs.
	LogFile string `yaml:"log_file" mapstructure:"log_file"`

	// NoColor renders without ANSI colors.
	NoColor bool `yaml:"no_color" mapstructure:"no_color"`
}

// HistoryConfig sets how many samples each sparkline keeps.
type HistoryConfig struct {
	CPU     int `yaml:"cpu" mapstructure:"cpu"`
	Memory  int `yaml:"memory" mapstructure:"memory"`
	Network int `yaml:"network" mapstructure:"network"`
}

// ProcessesConfig holds the initial process table settings.
type ProcessesConfig struct {
	// VisibleRows is the page size used until the terminal reports its height.
	VisibleRows int `yaml:"visible_rows" mapstructure:"visible_rows"`

	// Sort is the initial sort column.
	Sort string `yaml:"sort" mapstructure:"sort"`

	FullCommand bool `yaml:"full_command" mapstructure:"full_command"`
	Tree        bool `yaml:"tree" mapstructure:"tree"`
	Aggregate   bool `yaml:"aggregate" mapstructure:"aggregate"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Interval: DefaultInterval,
		Source:   SourceSystem,
		History: HistoryConfig{
			CPU:     12,
			Memory:  12,
			Network: 9,
		},
		Processes: ProcessesConfig{
			VisibleRows: 20,
			Sort:        "cpu",
		},
		View: "system",
	}
}
