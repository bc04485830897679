package config

import (
	"fmt"

	"github.com/rileyhilliard/pulse/internal/errors"
	"github.com/rileyhilliard/pulse/internal/util"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Interval < MinInterval || cfg.Interval > MaxInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval %s is out of range", cfg.Interval),
			fmt.Sprintf("Use a duration between %s and %s, like 'interval: 1s'.", MinInterval, MaxInterval))
	}

	if cfg.Source != SourceSystem && cfg.Source != SourceSimulated {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown metrics source '%s'", cfg.Source),
			didYouMean(cfg.Source, []string{SourceSystem, SourceSimulated})+
				fmt.Sprintf("Use '%s' or '%s'.", SourceSystem, SourceSimulated))
	}

	if err := validateHistory(cfg.History); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'history' section in your config.")
	}

	if err := validateProcesses(cfg.Processes); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'processes' section in your config.")
	}

	if !contains(Views, cfg.View) {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown view '%s'", cfg.View),
			didYouMean(cfg.View, Views)+"Valid views: "+util.JoinOrNone(Views))
	}

	return nil
}

func validateHistory(h HistoryConfig) error {
	fields := []struct {
		name  string
		value int
	}{
		{"history.cpu", h.CPU},
		{"history.memory", h.Memory},
		{"history.network", h.Network},
	}
	for _, f := range fields {
		if f.value < 1 {
			return fmt.Errorf("%s must keep at least 1 sample, got %d", f.name, f.value)
		}
	}
	return nil
}

func validateProcesses(p ProcessesConfig) error {
	if p.VisibleRows < 1 {
		return fmt.Errorf("processes.visible_rows must be at least 1, got %d", p.VisibleRows)
	}
	if !contains(SortKeys, p.Sort) {
		return fmt.Errorf("processes.sort '%s' is not one of: %s", p.Sort, util.JoinOrNone(SortKeys))
	}
	return nil
}

// didYouMean suggests the closest valid value, or returns "".
func didYouMean(input string, valid []string) string {
	if s := util.SuggestSimilar(input, valid, 1); len(s) > 0 {
		return fmt.Sprintf("Did you mean '%s'? ", s[0])
	}
	return ""
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
