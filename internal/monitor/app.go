package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/rileyhilliard/pulse/internal/config"
	"github.com/rileyhilliard/pulse/internal/logger"
	"github.com/rileyhilliard/pulse/internal/metrics"
	"github.com/rileyhilliard/pulse/internal/util"
)

// App is the dashboard controller. It owns the view state, the current
// snapshot and the history windows, and is only touched from the UI loop.
type App struct {
	State    ViewState
	Snapshot metrics.Snapshot
	History  *History

	source     metrics.Source
	sourceName string
	log        logger.Logger

	rows      []Row
	lastTick  time.Time
	detailPID uint32
	lastErr   error
	ticks     int
}

// NewApp creates a controller. sourceName is only used for display.
func NewApp(cfg *config.Config, source metrics.Source, sourceName string, log logger.Logger) *App {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = logger.Noop()
	}
	a := &App{
		State:      NewViewState(cfg),
		History:    NewHistory(cfg.History),
		source:     source,
		sourceName: sourceName,
		log:        log,
	}
	a.Reorder()
	return a
}

// Tick samples the source when the gate allows it: not paused and at least
// one update interval since the last tick. Returns whether a new snapshot
// was applied. A failed sample keeps the previous data but still counts as
// a tick so a broken source is not retried on every poll.
func (a *App) Tick(ctx context.Context, now time.Time) bool {
	if a.State.Paused || now.Sub(a.lastTick) < a.State.UpdateInterval {
		return false
	}
	a.lastTick = now

	snap, err := a.source.Sample(ctx)
	if err != nil {
		if a.lastErr == nil {
			a.log.Warn("sampling %s metrics failed, keeping previous data: %v", a.sourceName, err)
		}
		a.lastErr = err
		return false
	}
	if a.lastErr != nil {
		a.log.Info("sampling %s metrics recovered", a.sourceName)
		a.lastErr = nil
	}

	a.apply(snap)
	return true
}

// apply replaces the snapshot and runs the per-tick bookkeeping.
func (a *App) apply(snap metrics.Snapshot) {
	snap.Normalize()
	a.Snapshot = snap
	a.History.Push(&a.Snapshot)
	a.ticks++
	a.Reorder()
}

// Reorder re-sorts the processes by the current key, rebuilds the displayed
// rows and re-clamps the selection.
func (a *App) Reorder() {
	SortProcesses(a.Snapshot.Processes, a.State.SortKey, a.State.SortReverse)
	a.rows = buildRows(a.Snapshot.Processes, &a.State)
	a.clamp()
}

// ChangeSortColumn flips direction when key is already active, otherwise
// selects key with its default direction. Selection and details reset.
func (a *App) ChangeSortColumn(key SortKey) {
	if key == a.State.SortKey {
		a.State.SortReverse = !a.State.SortReverse
	} else {
		a.State.SortKey = key
		a.State.SortReverse = key.DefaultReverse()
	}
	a.Reorder()
	a.State.ResetSelection()
}

// SetFilter applies a process filter and resets the selection.
func (a *App) SetFilter(filter string) {
	if filter == a.State.Filter {
		return
	}
	a.State.Filter = filter
	a.State.ResetSelection()
	a.Reorder()
}

// SetVisibleRows resizes the process viewport and re-clamps.
func (a *App) SetVisibleRows(n int) {
	a.State.MaxVisibleRows = max(n, 1)
	a.clamp()
}

func (a *App) clamp() {
	a.State.Clamp(len(a.rows))
	if a.State.View != ViewProcess {
		a.State.ClampLines(a.ContentLength(a.State.View))
	}
}

// Rows returns every displayed process row.
func (a *App) Rows() []Row {
	return a.rows
}

// VisibleRows returns the rows inside the process viewport.
func (a *App) VisibleRows() []Row {
	start := min(a.State.ProcessScrollOffset, len(a.rows))
	end := min(start+a.State.visibleRows(), len(a.rows))
	return a.rows[start:end]
}

// SelectedRow returns the highlighted row.
func (a *App) SelectedRow() (Row, bool) {
	if len(a.rows) == 0 {
		return Row{}, false
	}
	return a.rows[a.State.SelectedProcess], true
}

// DetailPID returns the pid the detail overlay follows.
func (a *App) DetailPID() uint32 {
	return a.detailPID
}

// DetailProcess looks up the followed pid in the current snapshot.
// It reports false once the process has exited.
func (a *App) DetailProcess() (metrics.Process, bool) {
	return a.Snapshot.FindProcess(a.detailPID)
}

// LastError returns the most recent sampling error, or nil after a good sample.
func (a *App) LastError() error {
	return a.lastErr
}

// Ticks returns how many snapshots have been applied.
func (a *App) Ticks() int {
	return a.ticks
}

// SourceName returns the display name of the metrics source.
func (a *App) SourceName() string {
	return a.sourceName
}

// ContentLength is the scrollable length of a view: rows for the process
// table, otherwise the number of cores, interfaces, disks or option lines.
func (a *App) ContentLength(v View) int {
	switch v {
	case ViewProcess:
		return len(a.rows)
	case ViewNetwork:
		return len(a.Snapshot.Network)
	case ViewDisks:
		return len(a.Snapshot.Disks)
	case ViewOptions:
		return len(a.Options())
	default:
		return len(a.Snapshot.CPU.PerCore)
	}
}

// Option is one line of the options view.
type Option struct {
	Label string
	Value string
}

// Options describes the current settings.
func (a *App) Options() []Option {
	st := a.State
	direction := "ascending"
	if st.SortReverse {
		direction = "descending"
	}
	filter := st.Filter
	if filter == "" {
		filter = "none"
	}
	return []Option{
		{"Metrics source", a.sourceName},
		{"Update interval", st.UpdateInterval.String()},
		{"Paused", onOff(st.Paused)},
		{"Sort column", st.SortKey.Label()},
		{"Sort direction", direction},
		{"Full command", onOff(st.ShowFullCommand)},
		{"Tree view", onOff(st.ShowTreeView)},
		{"Aggregate by name", onOff(st.ProcAggregated)},
		{"Filter", filter},
		{"Visible rows", fmt.Sprintf("%d", st.visibleRows())},
		{"CPU history", samples(a.History.CPU.Len())},
		{"Memory history", samples(a.History.Memory.Len())},
		{"Network history", samples(a.History.NetRx.Len())},
	}
}

func samples(n int) string {
	return fmt.Sprintf("%d %s", n, util.Pluralize(n, "sample", "samples"))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Dispatch applies one action and reports whether the dashboard should quit.
// ActionFilter is a no-op here; the UI opens its prompt and calls SetFilter.
func (a *App) Dispatch(act Action) (quit bool) {
	st := &a.State

	if v, ok := act.viewFor(); ok {
		st.SetView(v)
		a.clamp()
		return false
	}
	if key, ok := act.sortKeyFor(); ok {
		a.ChangeSortColumn(key)
		return false
	}

	switch act {
	case ActionQuit:
		return true

	case ActionEscape:
		switch {
		case st.ShowHelp:
			st.ShowHelp = false
		case st.ShowProcDetails:
			st.ShowProcDetails = false
		default:
			return true
		}

	case ActionCycleView:
		st.CycleView()

	case ActionUp, ActionDown, ActionPageUp, ActionPageDown, ActionHome, ActionEnd:
		a.move(act)

	case ActionTogglePause:
		st.Paused = !st.Paused

	case ActionIncreaseDelay:
		st.IncreaseDelay()

	case ActionDecreaseDelay:
		st.DecreaseDelay()

	case ActionConfirm:
		a.toggleDetails()

	case ActionToggleHelp:
		st.ShowHelp = !st.ShowHelp

	case ActionToggleTree:
		st.ShowTreeView = !st.ShowTreeView
		st.ResetSelection()
		a.Reorder()

	case ActionToggleAggregate:
		st.ProcAggregated = !st.ProcAggregated
		st.ResetSelection()
		a.Reorder()

	case ActionToggleFullCommand:
		st.ShowFullCommand = !st.ShowFullCommand

	case ActionReset:
		st.ResetSelection()
		st.ScrollOffset = 0

	case ActionSortPrev:
		a.ChangeSortColumn(st.SortKey.Prev())

	case ActionSortNext:
		a.ChangeSortColumn(st.SortKey.Next())
	}

	a.clamp()
	return false
}

// move routes directional actions to the process selection or the generic scroll.
func (a *App) move(act Action) {
	st := &a.State
	if st.View == ViewProcess {
		n := len(a.rows)
		switch act {
		case ActionDown:
			st.ScrollDown(n)
		case ActionUp:
			st.ScrollUp()
		case ActionPageDown:
			st.PageDown(n)
		case ActionPageUp:
			st.PageUp()
		case ActionHome:
			st.JumpTop()
		case ActionEnd:
			st.JumpBottom(n)
		}
		return
	}

	n := a.ContentLength(st.View)
	switch act {
	case ActionDown:
		st.LineDown(n)
	case ActionUp:
		st.LineUp()
	case ActionPageDown:
		st.LinePageDown(n)
	case ActionPageUp:
		st.LinePageUp()
	case ActionHome:
		st.LineTop()
	case ActionEnd:
		st.LineBottom(n)
	}
}

// toggleDetails opens the detail overlay on the selected row, or closes it.
// It only applies to the process view.
func (a *App) toggleDetails() {
	st := &a.State
	if st.ShowProcDetails {
		st.ShowProcDetails = false
		return
	}
	if st.View != ViewProcess {
		return
	}
	if row, ok := a.SelectedRow(); ok {
		a.detailPID = row.PID
		st.ShowProcDetails = true
	}
}
