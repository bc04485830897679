package monitor

import (
	"cmp"
	"slices"
	"strings"

	"github.com/rileyhilliard/pulse/internal/metrics"
)

// SortKey selects the process table column used for ordering.
type SortKey int

const (
	SortPID SortKey = iota
	SortName
	SortCPU
	SortMemory
	SortUser
	SortTime
	SortThreads
	SortState

	sortKeyCount
)

var sortKeyNames = [sortKeyCount]string{"pid", "name", "cpu", "memory", "user", "time", "threads", "state"}

var sortKeyLabels = [sortKeyCount]string{"PID", "Name", "CPU%", "Memory", "User", "Time", "Threads", "State"}

// String returns the config name of the key.
func (k SortKey) String() string {
	if k < 0 || k >= sortKeyCount {
		return "cpu"
	}
	return sortKeyNames[k]
}

// Label returns the column header for the key.
func (k SortKey) Label() string {
	if k < 0 || k >= sortKeyCount {
		return "CPU%"
	}
	return sortKeyLabels[k]
}

// DefaultReverse reports whether a freshly selected key sorts descending.
// Only CPU and memory start highest-first.
func (k SortKey) DefaultReverse() bool {
	return k == SortCPU || k == SortMemory
}

// Next returns the following key, wrapping around.
func (k SortKey) Next() SortKey {
	return (k + 1) % sortKeyCount
}

// Prev returns the preceding key, wrapping around.
func (k SortKey) Prev() SortKey {
	return (k + sortKeyCount - 1) % sortKeyCount
}

// ParseSortKey maps a config name to a SortKey.
func ParseSortKey(name string) (SortKey, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range sortKeyNames {
		if n == name {
			return SortKey(i), true
		}
	}
	return SortCPU, false
}

// compareBy returns the natural (ascending) comparator for a key.
func compareBy(key SortKey) func(a, b metrics.Process) int {
	switch key {
	case SortPID:
		return func(a, b metrics.Process) int { return cmp.Compare(a.PID, b.PID) }
	case SortName:
		return func(a, b metrics.Process) int { return strings.Compare(a.Name, b.Name) }
	case SortMemory:
		return func(a, b metrics.Process) int { return cmp.Compare(a.MemoryMB, b.MemoryMB) }
	case SortUser:
		return func(a, b metrics.Process) int { return strings.Compare(a.User, b.User) }
	case SortTime:
		return func(a, b metrics.Process) int { return cmp.Compare(a.Uptime, b.Uptime) }
	case SortThreads:
		return func(a, b metrics.Process) int { return cmp.Compare(a.Threads, b.Threads) }
	case SortState:
		return func(a, b metrics.Process) int { return strings.Compare(a.State.String(), b.State.String()) }
	default:
		return func(a, b metrics.Process) int { return cmp.Compare(a.CPUPercent, b.CPUPercent) }
	}
}

// comparator returns the comparator for key in the requested direction.
// Descending swaps the arguments instead of reversing the result, so equal
// elements keep their input order in both directions.
func comparator(key SortKey, descending bool) func(a, b metrics.Process) int {
	natural := compareBy(key)
	if !descending {
		return natural
	}
	return func(a, b metrics.Process) int { return natural(b, a) }
}

// SortProcesses stably orders procs in place by key.
func SortProcesses(procs []metrics.Process, key SortKey, descending bool) {
	slices.SortStableFunc(procs, comparator(key, descending))
}

// SortRows stably orders table rows in place by key.
func SortRows(rows []Row, key SortKey, descending bool) {
	compare := comparator(key, descending)
	slices.SortStableFunc(rows, func(a, b Row) int { return compare(a.Process, b.Process) })
}
