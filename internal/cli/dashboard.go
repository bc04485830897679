package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rileyhilliard/pulse/internal/config"
	"github.com/rileyhilliard/pulse/internal/errors"
	"github.com/rileyhilliard/pulse/internal/logger"
	"github.com/rileyhilliard/pulse/internal/metrics"
	"github.com/rileyhilliard/pulse/internal/monitor"
)

// dashboardOptions carries the root command's flags.
type dashboardOptions struct {
	ConfigPath string
	Interval   string
	Simulate   bool
	LogFile    string
	NoColor    bool
	View       string
	Sort       string
}

// dashboardCommand loads config, prepares the terminal and runs the dashboard
// until the user quits.
func dashboardCommand(cmd *cobra.Command, opts dashboardOptions) error {
	cfg, path, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	if !isInteractive() {
		return errors.New(errors.ErrTerminal,
			"pulse needs an interactive terminal",
			"Run pulse directly in a terminal, not through a pipe or redirect.")
	}

	closeLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	log := logger.NewEnvLogger("[pulse]")
	if path != "" {
		log.Info("loaded config from %s", path)
	}
	log.Info("starting: source=%s interval=%s view=%s sort=%s", cfg.Source, cfg.Interval, cfg.View, cfg.Processes.Sort)

	profile := colorProfile(cfg.NoColor)
	lipgloss.SetColorProfile(profile)

	source := newSource(cfg.Source, logger.NewEnvLogger("[sampler]"))
	app := monitor.NewApp(cfg, source, cfg.Source, logger.NewEnvLogger("[monitor]"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	model := monitor.NewModel(ctx, app, monitor.NewTheme(profile), log)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil && !stderrors.Is(err, tea.ErrInterrupted) {
		return errors.WrapWithCode(err, errors.ErrRender,
			"The dashboard stopped unexpectedly",
			"Check that your terminal supports the alternate screen, or run with --log-file for details.")
	}

	log.Info("exited after %d samples", app.Ticks())
	return nil
}

// loadConfig resolves the config file and environment, then lets flags that
// were set explicitly override both.
func loadConfig(cmd *cobra.Command, opts dashboardOptions) (*config.Config, string, error) {
	cfg, path, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return nil, "", err
	}
	if err := applyFlags(cfg, cmd, opts); err != nil {
		return nil, "", err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// applyFlags copies changed flags onto cfg.
func applyFlags(cfg *config.Config, cmd *cobra.Command, opts dashboardOptions) error {
	changed := func(name string) bool {
		return cmd != nil && cmd.Flags().Changed(name)
	}

	if changed("interval") {
		d, err := time.ParseDuration(opts.Interval)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("Invalid interval: %s", opts.Interval),
				"Use a valid duration like 500ms, 1s, or 2s")
		}
		cfg.Interval = d
	}
	if changed("simulate") && opts.Simulate {
		cfg.Source = config.SourceSimulated
	}
	if changed("log-file") {
		cfg.LogFile = config.Expand(opts.LogFile)
	}
	if changed("no-color") {
		cfg.NoColor = opts.NoColor
	}
	if os.Getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}
	if changed("view") {
		cfg.View = opts.View
	}
	if changed("sort") {
		cfg.Processes.Sort = opts.Sort
	}
	return nil
}

// isInteractive reports whether both stdin and stdout are terminals.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// setupLogging sends the standard logger to path, or discards it. Nothing
// may reach the terminal while the dashboard is drawn.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "pulse")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot open log file: "+path,
			"Check the directory exists and is writable, or drop --log-file.")
	}
	return func() { _ = f.Close() }, nil
}

// colorProfile picks the termenv profile for the output terminal.
func colorProfile(noColor bool) termenv.Profile {
	if noColor {
		return termenv.Ascii
	}
	return termenv.NewOutput(os.Stdout).Profile
}

// newSource returns the metrics source named in config.
func newSource(name string, log logger.Logger) metrics.Source {
	if name == config.SourceSimulated {
		log.Debug("using simulated metrics")
		seed := uint64(time.Now().UnixNano())
		return metrics.NewSimulator(rand.New(rand.NewPCG(seed, seed>>1)))
	}
	return metrics.NewHostSampler(log)
}
