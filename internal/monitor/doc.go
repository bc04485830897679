// Package monitor implements the pulse dashboard: the view state machine,
// the process table engine and the bubbletea front end that drives them.
//
// # Architecture
//
// The package uses the Bubble Tea framework, which follows The Elm Architecture
// (Model-Update-View pattern):
//
//   - Model: wraps the App controller and the terminal-only widgets
//   - Update: processes key presses, resizes and poll messages
//   - View: renders the current state to a string for display
//
// # Key Components
//
//	App        - The controller: ViewState, current snapshot, history, dispatch
//	ViewState  - Current view, overlays, pause and interval, sort, selection
//	History    - Fixed-length ring buffers feeding the charts
//	Row        - A displayed process row after filter, tree and aggregation
//	Theme      - Immutable palette and styles handed to the renderer
//
// # Message Flow
//
// Everything runs on the bubbletea loop goroutine:
//
//  1. pollMsg fires every 100ms
//  2. App.Tick samples the metrics source when not paused and at least one
//     update interval has passed since the last tick
//  3. the new snapshot is normalized, pushed into history and re-sorted
//  4. View() renders the current view through a single dispatch on View
//
// # Selection
//
// The process view keeps offset <= selected < offset+visible rows at all
// times. Selection and offsets are re-clamped after every tick, resize,
// filter change and toggle, since a new snapshot may have fewer rows.
//
// # Keyboard Shortcuts
//
// Bindings are defined in keybindings.go and translated to Actions:
//
//	q, Ctrl+C     - Quit
//	Esc           - Close overlay, or quit when none is open
//	1-6, Tab      - Select or cycle views
//	j/k, ↑/↓      - Move selection (or scroll)
//	J/K, PgDn/PgUp - Page
//	Home/End      - Jump to top / bottom
//	Space         - Pause
//	+/-           - Slower / faster updates
//	Enter         - Process details
//	c m p n u t T s, ←/→ - Sort columns
//	F5, F6, f     - Tree, group by name, full command
//	/             - Filter
//	F1, ?         - Help
package monitor
