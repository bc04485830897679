package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
)

// processColumn is one process table column and the sort key it shows, if any.
type processColumn struct {
	title string
	width int
	key   SortKey
	// sortable is false for columns no key orders by.
	sortable bool
}

var processColumns = []processColumn{
	{title: "PID", width: 7, key: SortPID, sortable: true},
	{title: "USER", width: 9, key: SortUser, sortable: true},
	{title: "PRI", width: 3},
	{title: "NI", width: 3},
	{title: "THR", width: 4, key: SortThreads, sortable: true},
	{title: "CPU%", width: 6, key: SortCPU, sortable: true},
	{title: "MEM", width: 9, key: SortMemory, sortable: true},
	{title: "MEM%", width: 5},
	{title: "S", width: 2, key: SortState, sortable: true},
	{title: "TIME", width: 11, key: SortTime, sortable: true},
}

// commandColumn is the trailing, elastic column.
var commandColumn = processColumn{title: "COMMAND", key: SortName, sortable: true}

// cellPadding is the horizontal padding bubbles table adds to every cell.
const cellPadding = 2

// tableColumns builds the header, marking the active sort column with its
// direction and giving the command column the remaining width.
func (f frame) tableColumns() []table.Column {
	st := &f.app.State
	title := func(c processColumn) string {
		if !c.sortable || c.key != st.SortKey {
			return c.title
		}
		if st.SortReverse {
			return c.title + "▼"
		}
		return c.title + "▲"
	}

	cols := make([]table.Column, 0, len(processColumns)+2)
	used := 0
	if st.ProcAggregated {
		cols = append(cols, table.Column{Title: "#", Width: 4})
		used += 4 + cellPadding
	}
	for _, c := range processColumns {
		cols = append(cols, table.Column{Title: title(c), Width: c.width})
		used += c.width + cellPadding
	}
	cols = append(cols, table.Column{
		Title: title(commandColumn),
		Width: max(f.width-used-cellPadding, 10),
	})
	return cols
}

// tableRow renders one process row. Tree rows indent the command by depth;
// aggregated rows lead with the group size and show the shared name.
func tableRow(r Row, st *ViewState) table.Row {
	cmd := r.Command
	if st.ShowFullCommand && r.FullCommand != "" {
		cmd = r.FullCommand
	}
	if st.ProcAggregated {
		cmd = r.Name
	} else if r.Depth > 0 {
		cmd = strings.Repeat("  ", r.Depth-1) + "└─ " + cmd
	}

	row := make(table.Row, 0, len(processColumns)+2)
	if st.ProcAggregated {
		row = append(row, fmt.Sprintf("%d", r.Count))
	}
	return append(row,
		fmt.Sprintf("%d", r.PID),
		r.User,
		fmt.Sprintf("%d", r.Priority),
		fmt.Sprintf("%d", r.Nice),
		fmt.Sprintf("%d", r.Threads),
		fmt.Sprintf("%.1f", r.CPUPercent),
		formatMB(r.MemoryMB),
		fmt.Sprintf("%.1f", r.MemoryPercent),
		r.State.String(),
		formatUptime(r.Uptime),
		cmd,
	)
}

func (f frame) processView() string {
	st := &f.app.State
	visible := f.app.VisibleRows()

	rows := make([]table.Row, 0, len(visible))
	for _, r := range visible {
		rows = append(rows, tableRow(r, st))
	}

	t := f.newTable(f.tableColumns(), rows, true)
	if len(rows) > 0 {
		t.SetCursor(st.SelectedProcess - st.ProcessScrollOffset)
	}

	var b strings.Builder
	b.WriteString(t.View())
	if len(rows) == 0 {
		msg := "no processes"
		if st.Filter != "" {
			msg = fmt.Sprintf("no processes match %q", st.Filter)
		}
		b.WriteString(f.theme.Label.Render(msg))
	}

	// Keep the summary box pinned to the bottom of the body.
	for pad := st.visibleRows() - len(rows); pad > 0 && len(rows) > 0; pad-- {
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(f.selectedSummary())
	return b.String()
}

// selectedSummary is the box under the table describing the highlighted row.
func (f frame) selectedSummary() string {
	width := max(f.width, minBoxWidth)
	total := len(f.app.Rows())
	value := scrollHint(f.app.State.ProcessScrollOffset, len(f.app.VisibleRows()), total)

	row, ok := f.app.SelectedRow()
	if !ok {
		return f.theme.Section("Selected", value, []string{f.theme.Label.Render("nothing selected"), ""}, width)
	}

	cmd := row.FullCommand
	if cmd == "" {
		cmd = row.Command
	}
	lines := []string{
		fmt.Sprintf("%s  %s  %s  %s  %s",
			f.labelValue("pid", 4, fmt.Sprintf("%d", row.PID)),
			f.labelValue("ppid", 5, fmt.Sprintf("%d", row.PPID)),
			f.labelValue("user", 5, row.User),
			f.labelValue("state", 6, row.State.Name()),
			f.labelValue("started", 8, row.StartTime),
		),
		f.theme.Value.Render(cmd),
	}
	return f.theme.Section("Selected", value, lines, width)
}
