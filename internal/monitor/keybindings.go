package monitor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap holds every binding the dashboard responds to. It implements
// help.KeyMap for the footer and the help overlay.
type keyMap struct {
	Quit   key.Binding
	Escape key.Binding
	Help   key.Binding

	CycleView     key.Binding
	ViewSystem    key.Binding
	ViewProcess   key.Binding
	ViewResources key.Binding
	ViewNetwork   key.Binding
	ViewDisks     key.Binding
	ViewOptions   key.Binding

	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	Pause  key.Binding
	Slower key.Binding
	Faster key.Binding

	Details     key.Binding
	Tree        key.Binding
	Aggregate   key.Binding
	FullCommand key.Binding
	Reset       key.Binding
	Filter      key.Binding

	SortCPU     key.Binding
	SortMemory  key.Binding
	SortPID     key.Binding
	SortName    key.Binding
	SortUser    key.Binding
	SortTime    key.Binding
	SortThreads key.Binding
	SortState   key.Binding
	SortPrev    key.Binding
	SortNext    key.Binding
}

var keys = keyMap{
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close / quit")),
	Help:   key.NewBinding(key.WithKeys("f1", "?"), key.WithHelp("F1/?", "help")),

	CycleView:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
	ViewSystem:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "system")),
	ViewProcess:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "processes")),
	ViewResources: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "resources")),
	ViewNetwork:   key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "network")),
	ViewDisks:     key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "disks")),
	ViewOptions:   key.NewBinding(key.WithKeys("6"), key.WithHelp("6", "options")),

	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "K"), key.WithHelp("PgUp/K", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "J"), key.WithHelp("PgDn/J", "page down")),
	Home:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("Home/g", "top")),
	End:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("End/G", "bottom")),

	Pause:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
	Slower: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "slower")),
	Faster: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "faster")),

	Details:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
	Tree:        key.NewBinding(key.WithKeys("f5"), key.WithHelp("F5", "tree")),
	Aggregate:   key.NewBinding(key.WithKeys("f6"), key.WithHelp("F6", "group by name")),
	FullCommand: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "full command")),
	Reset:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Filter:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),

	SortCPU:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "sort cpu")),
	SortMemory:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "sort memory")),
	SortPID:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "sort pid")),
	SortName:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "sort name")),
	SortUser:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "sort user")),
	SortTime:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "sort time")),
	SortThreads: key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "sort threads")),
	SortState:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort state")),
	SortPrev:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev column")),
	SortNext:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next column")),
}

// ShortHelp returns the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.CycleView, k.Pause, k.Slower, k.Faster, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the help overlay, one group per column.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ViewSystem, k.ViewProcess, k.ViewResources, k.ViewNetwork, k.ViewDisks, k.ViewOptions, k.CycleView},
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End, k.Reset},
		{k.SortCPU, k.SortMemory, k.SortPID, k.SortName, k.SortUser, k.SortTime, k.SortThreads, k.SortState, k.SortPrev, k.SortNext},
		{k.Details, k.Filter, k.Tree, k.Aggregate, k.FullCommand, k.Pause, k.Slower, k.Faster, k.Help, k.Escape, k.Quit},
	}
}

// bindingActions maps bindings to controller actions in match order.
var bindingActions = []struct {
	binding key.Binding
	action  Action
}{
	{keys.Quit, ActionQuit},
	{keys.Escape, ActionEscape},
	{keys.Help, ActionToggleHelp},
	{keys.CycleView, ActionCycleView},
	{keys.ViewSystem, ActionViewSystem},
	{keys.ViewProcess, ActionViewProcess},
	{keys.ViewResources, ActionViewResources},
	{keys.ViewNetwork, ActionViewNetwork},
	{keys.ViewDisks, ActionViewDisks},
	{keys.ViewOptions, ActionViewOptions},
	{keys.Up, ActionUp},
	{keys.Down, ActionDown},
	{keys.PageUp, ActionPageUp},
	{keys.PageDown, ActionPageDown},
	{keys.Home, ActionHome},
	{keys.End, ActionEnd},
	{keys.Pause, ActionTogglePause},
	{keys.Slower, ActionIncreaseDelay},
	{keys.Faster, ActionDecreaseDelay},
	{keys.Details, ActionConfirm},
	{keys.Tree, ActionToggleTree},
	{keys.Aggregate, ActionToggleAggregate},
	{keys.FullCommand, ActionToggleFullCommand},
	{keys.Reset, ActionReset},
	{keys.Filter, ActionFilter},
	{keys.SortCPU, ActionSortCPU},
	{keys.SortMemory, ActionSortMemory},
	{keys.SortPID, ActionSortPID},
	{keys.SortName, ActionSortName},
	{keys.SortUser, ActionSortUser},
	{keys.SortTime, ActionSortTime},
	{keys.SortThreads, ActionSortThreads},
	{keys.SortState, ActionSortState},
	{keys.SortPrev, ActionSortPrev},
	{keys.SortNext, ActionSortNext},
}

// actionFor translates a key press. Unknown keys map to ActionNone.
func actionFor(msg tea.KeyMsg) Action {
	for _, ba := range bindingActions {
		if key.Matches(msg, ba.binding) {
			return ba.action
		}
	}
	return ActionNone
}
