package monitor

// Action is the closed set of inputs the controller understands.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionEscape

	ActionCycleView
	ActionViewSystem
	ActionViewProcess
	ActionViewResources
	ActionViewNetwork
	ActionViewDisks
	ActionViewOptions

	ActionUp
	ActionDown
	ActionPageUp
	ActionPageDown
	ActionHome
	ActionEnd

	ActionTogglePause
	ActionIncreaseDelay
	ActionDecreaseDelay

	ActionConfirm
	ActionToggleHelp
	ActionToggleTree
	ActionToggleAggregate
	ActionToggleFullCommand
	ActionReset
	ActionFilter

	ActionSortCPU
	ActionSortMemory
	ActionSortPID
	ActionSortName
	ActionSortUser
	ActionSortTime
	ActionSortThreads
	ActionSortState
	ActionSortPrev
	ActionSortNext
)

var actionNames = map[Action]string{
	ActionNone:              "none",
	ActionQuit:              "quit",
	ActionEscape:            "escape",
	ActionCycleView:         "cycle-view",
	ActionViewSystem:        "view-system",
	ActionViewProcess:       "view-process",
	ActionViewResources:     "view-resources",
	ActionViewNetwork:       "view-network",
	ActionViewDisks:         "view-disks",
	ActionViewOptions:       "view-options",
	ActionUp:                "up",
	ActionDown:              "down",
	ActionPageUp:            "page-up",
	ActionPageDown:          "page-down",
	ActionHome:              "home",
	ActionEnd:               "end",
	ActionTogglePause:       "pause",
	ActionIncreaseDelay:     "slower",
	ActionDecreaseDelay:     "faster",
	ActionConfirm:           "details",
	ActionToggleHelp:        "help",
	ActionToggleTree:        "tree",
	ActionToggleAggregate:   "aggregate",
	ActionToggleFullCommand: "full-command",
	ActionReset:             "reset",
	ActionFilter:            "filter",
	ActionSortCPU:           "sort-cpu",
	ActionSortMemory:        "sort-memory",
	ActionSortPID:           "sort-pid",
	ActionSortName:          "sort-name",
	ActionSortUser:          "sort-user",
	ActionSortTime:          "sort-time",
	ActionSortThreads:       "sort-threads",
	ActionSortState:         "sort-state",
	ActionSortPrev:          "sort-prev",
	ActionSortNext:          "sort-next",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// viewFor returns the view a direct view action selects.
func (a Action) viewFor() (View, bool) {
	switch a {
	case ActionViewSystem:
		return ViewSystem, true
	case ActionViewProcess:
		return ViewProcess, true
	case ActionViewResources:
		return ViewResources, true
	case ActionViewNetwork:
		return ViewNetwork, true
	case ActionViewDisks:
		return ViewDisks, true
	case ActionViewOptions:
		return ViewOptions, true
	}
	return ViewSystem, false
}

// sortKeyFor returns the key a sort action selects.
func (a Action) sortKeyFor() (SortKey, bool) {
	switch a {
	case ActionSortCPU:
		return SortCPU, true
	case ActionSortMemory:
		return SortMemory, true
	case ActionSortPID:
		return SortPID, true
	case ActionSortName:
		return SortName, true
	case ActionSortUser:
		return SortUser, true
	case ActionSortTime:
		return SortTime, true
	case ActionSortThreads:
		return SortThreads, true
	case ActionSortState:
		return SortState, true
	}
	return SortCPU, false
}
