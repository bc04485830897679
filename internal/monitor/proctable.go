package monitor

import (
	"strings"

	"github.com/rileyhilliard/pulse/internal/metrics"
)

// Row is one displayed line of the process table.
type Row struct {
	metrics.Process

	// Depth is the indentation level in tree view.
	Depth int
	// Count is the number of processes folded into an aggregated row.
	Count int
}

// buildRows derives the displayed rows from processes that are already sorted.
// Filtering applies first; aggregation takes precedence over tree layout.
// With every option off the rows are exactly procs, in order.
func buildRows(procs []metrics.Process, st *ViewState) []Row {
	filtered := filterProcesses(procs, st.Filter)

	switch {
	case st.ProcAggregated:
		return aggregateRows(filtered, st.SortKey, st.SortReverse)
	case st.ShowTreeView:
		return treeRows(filtered)
	}

	rows := make([]Row, len(filtered))
	for i, p := range filtered {
		rows[i] = Row{Process: p, Count: 1}
	}
	return rows
}

// filterProcesses keeps processes whose name or command contains filter, ignoring case.
func filterProcesses(procs []metrics.Process, filter string) []metrics.Process {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return procs
	}
	out := make([]metrics.Process, 0, len(procs))
	for _, p := range procs {
		if strings.Contains(strings.ToLower(p.Name), filter) ||
			strings.Contains(strings.ToLower(p.Command), filter) ||
			strings.Contains(strings.ToLower(p.FullCommand), filter) {
			out = append(out, p)
		}
	}
	return out
}

// treeRows lays processes out depth first by parent pid. Siblings keep their
// input order. A process whose parent is not in the list is a root.
func treeRows(procs []metrics.Process) []Row {
	present := make(map[uint32]bool, len(procs))
	for _, p := range procs {
		present[p.PID] = true
	}

	children := make(map[uint32][]int)
	var roots []int
	for i, p := range procs {
		if p.PPID != p.PID && present[p.PPID] {
			children[p.PPID] = append(children[p.PPID], i)
		} else {
			roots = append(roots, i)
		}
	}

	rows := make([]Row, 0, len(procs))
	visited := make([]bool, len(procs))

	var walk func(i, depth int)
	walk = func(i, depth int) {
		if visited[i] {
			return
		}
		visited[i] = true
		rows = append(rows, Row{Process: procs[i], Depth: depth, Count: 1})
		for _, c := range children[procs[i].PID] {
			walk(c, depth+1)
		}
	}

	for _, r := range roots {
		walk(r, 0)
	}
	// Parent cycles leave members unreachable from any root.
	for i := range procs {
		walk(i, 0)
	}
	return rows
}

// aggregateRows folds processes with the same name into one row. The group
// keeps its first member's identity and sums the resource columns.
func aggregateRows(procs []metrics.Process, key SortKey, descending bool) []Row {
	index := make(map[string]int)
	var rows []Row
	for _, p := range procs {
		i, ok := index[p.Name]
		if !ok {
			index[p.Name] = len(rows)
			rows = append(rows, Row{Process: p, Count: 1})
			continue
		}
		r := &rows[i]
		r.CPUPercent += p.CPUPercent
		r.MemoryMB += p.MemoryMB
		r.MemoryPercent += p.MemoryPercent
		r.Threads += p.Threads
		r.ReadKBs += p.ReadKBs
		r.WriteKBs += p.WriteKBs
		r.Count++
	}
	SortRows(rows, key, descending)
	return rows
}
