package monitor

import (
	"strings"
	"time"

	"github.com/rileyhilliard/pulse/internal/config"
)

// View is one of the dashboard's top-level screens.
type View int

const (
	ViewSystem View = iota
	ViewProcess
	ViewResources
	ViewNetwork
	ViewDisks
	ViewOptions

	viewCount
)

var viewNames = [viewCount]string{"system", "process", "resources", "network", "disks", "options"}

// String returns the config name of the view.
func (v View) String() string {
	if v < 0 || v >= viewCount {
		return "system"
	}
	return viewNames[v]
}

// Title returns the tab label.
func (v View) Title() string {
	s := v.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// Next cycles System → Process → Resources → Network → Disks → Options → System.
func (v View) Next() View {
	return (v + 1) % viewCount
}

// ParseView maps a config name to a View.
func ParseView(name string) (View, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range viewNames {
		if n == name {
			return View(i), true
		}
	}
	return ViewSystem, false
}

// ViewState is everything the controller tracks besides the metrics themselves.
type ViewState struct {
	View View

	// ScrollOffset scrolls the non-process views.
	ScrollOffset int

	ProcessScrollOffset int
	SelectedProcess     int
	MaxVisibleRows      int

	ShowHelp        bool
	ShowProcDetails bool
	Paused          bool
	UpdateInterval  time.Duration

	SortKey     SortKey
	SortReverse bool

	ShowFullCommand bool
	ShowTreeView    bool
	ProcAggregated  bool

	// Filter is a case-insensitive substring matched against name and command.
	Filter string
}

// NewViewState builds the initial state from config. Invalid values fall back to defaults.
func NewViewState(cfg *config.Config) ViewState {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	view, _ := ParseView(cfg.View)
	key, ok := ParseSortKey(cfg.Processes.Sort)
	if !ok {
		key = SortCPU
	}

	return ViewState{
		View:            view,
		MaxVisibleRows:  max(cfg.Processes.VisibleRows, 1),
		UpdateInterval:  clampInterval(cfg.Interval),
		SortKey:         key,
		SortReverse:     key.DefaultReverse(),
		ShowFullCommand: cfg.Processes.FullCommand,
		ShowTreeView:    cfg.Processes.Tree,
		ProcAggregated:  cfg.Processes.Aggregate,
	}
}

// ResetSelection clears process selection, process scroll offset and the detail overlay.
func (s *ViewState) ResetSelection() {
	s.SelectedProcess = 0
	s.ProcessScrollOffset = 0
	s.ShowProcDetails = false
}

// SetView switches views unconditionally and resets selection.
func (s *ViewState) SetView(v View) {
	s.View = v
	s.ResetSelection()
}

// CycleView advances to the next view and resets selection.
func (s *ViewState) CycleView() {
	s.SetView(s.View.Next())
}

// IncreaseDelay doubles the update interval, capped at the maximum.
func (s *ViewState) IncreaseDelay() {
	s.UpdateInterval = clampInterval(s.UpdateInterval * 2)
}

// DecreaseDelay halves the update interval, floored at the minimum.
func (s *ViewState) DecreaseDelay() {
	s.UpdateInterval = clampInterval(s.UpdateInterval / 2)
}

func clampInterval(d time.Duration) time.Duration {
	if d < config.MinInterval {
		return config.MinInterval
	}
	if d > config.MaxInterval {
		return config.MaxInterval
	}
	return d
}
