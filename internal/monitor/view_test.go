package monitor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/pulse/internal/metrics"
)

func testFrame(a *App, width, height int) frame {
	return frame{app: a, theme: testTheme(), width: width, height: height}
}

func TestTableColumns_SortMarker(t *testing.T) {
	a := tickedApp(metrics.Fixture())
	f := testFrame(a, 120, 30)

	titles := func() []string {
		var out []string
		for _, c := range f.tableColumns() {
			out = append(out, c.Title)
		}
		return out
	}

	assert.Contains(t, titles(), "CPU%▼")
	assert.Contains(t, titles(), "PID")

	a.ChangeSortColumn(SortPID)
	assert.Contains(t, titles(), "PID▲")
	assert.Contains(t, titles(), "CPU%")

	a.ChangeSortColumn(SortName)
	cols := f.tableColumns()
	assert.Equal(t, "COMMAND▲", cols[len(cols)-1].Title)
}

func TestTableColumns_CommandTakesRemainingWidth(t *testing.T) {
	a := tickedApp(metrics.Fixture())

	cols := testFrame(a, 120, 30).tableColumns()
	require.Len(t, cols, len(processColumns)+1)
	total := 0
	for _, c := range cols {
		total += c.Width + cellPadding
	}
	assert.Equal(t, 120, total)

	a.Dispatch(ActionToggleAggregate)
	cols = testFrame(a, 120, 30).tableColumns()
	assert.Equal(t, "#", cols[0].Title)

	narrow := testFrame(a, 20, 30).tableColumns()
	assert.Equal(t, 10, narrow[len(narrow)-1].Width)
}

func TestTableRow(t *testing.T) {
	proc := metrics.Process{
		PID:         42,
		Name:        "worker",
		Command:     "/usr/bin/worker",
		FullCommand: "/usr/bin/worker --jobs 4",
		User:        "app",
		CPUPercent:  12.345,
		MemoryMB:    512,
		Threads:     8,
		State:       metrics.StateRunning,
	}
	last := func(r []string) string { return r[len(r)-1] }

	tests := []struct {
		name  string
		row   Row
		state ViewState
		want  string
	}{
		{"plain", Row{Process: proc, Count: 1}, ViewState{}, "/usr/bin/worker"},
		{"full command", Row{Process: proc, Count: 1}, ViewState{ShowFullCommand: true}, "/usr/bin/worker --jobs 4"},
		{"tree child", Row{Process: proc, Depth: 1, Count: 1}, ViewState{ShowTreeView: true}, "└─ /usr/bin/worker"},
		{"tree grandchild", Row{Process: proc, Depth: 2, Count: 1}, ViewState{ShowTreeView: true}, "  └─ /usr/bin/worker"},
		{"aggregated", Row{Process: proc, Count: 3}, ViewState{ProcAggregated: true}, "worker"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tableRow(tt.row, &tt.state)
			assert.Equal(t, tt.want, last(r))
		})
	}

	r := tableRow(Row{Process: proc, Count: 3}, &ViewState{ProcAggregated: true})
	assert.Equal(t, "3", r[0])
	assert.Equal(t, "42", r[1])

	r = tableRow(Row{Process: proc, Count: 1}, &ViewState{})
	assert.Equal(t, []string{"42", "app", "0", "0", "8", "12.3", "512 MB", "0.0", "R", "00:00:00"}, []string(r[:10]))
}

func TestScrollHint(t *testing.T) {
	tests := []struct {
		offset, shown, total int
		want                 string
	}{
		{0, 0, 0, "0"},
		{0, 5, 5, "5"},
		{0, 10, 5, "5"},
		{0, 10, 40, "1-10/40"},
		{30, 10, 40, "31-40/40"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, scrollHint(tt.offset, tt.shown, tt.total))
	}
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, splitLines(""))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\nb"))
}

func TestRenderTabs(t *testing.T) {
	out := plain(renderTabs(ViewDisks, testTheme()))
	for _, label := range []string{"1 System", "2 Process", "3 Resources", "4 Network", "5 Disks", "6 Options"} {
		assert.Contains(t, out, label)
	}
}

func TestRenderHeader(t *testing.T) {
	a := tickedApp(metrics.Fixture())

	out := plain(renderHeader(a, testTheme(), 120))
	assert.Contains(t, out, "pulse")
	assert.Contains(t, out, "localhost")
	assert.Contains(t, out, "up 1d 01:00:00")
	assert.Contains(t, out, "every 1s")
	assert.NotContains(t, out, "PAUSED")

	a.Dispatch(ActionTogglePause)
	assert.Contains(t, plain(renderHeader(a, testTheme(), 120)), "PAUSED")
}

func TestProcessView_SelectedSummary(t *testing.T) {
	a := tickedApp(metrics.Fixture())
	a.SetVisibleRows(4)
	a.Dispatch(ActionViewProcess)
	a.Dispatch(ActionDown)

	out := plain(testFrame(a, 120, 30).processView())
	assert.Contains(t, out, "Selected")
	assert.Contains(t, out, "1-4/10")

	row, ok := a.SelectedRow()
	require.True(t, ok)
	assert.Contains(t, out, row.FullCommand)

	// The table shows exactly the visible window under its header.
	for _, r := range a.Rows()[4:] {
		assert.NotContains(t, out, r.FullCommand)
	}
}

func TestProcessView_Empty(t *testing.T) {
	a := tickedApp(metrics.Fixture())
	a.Dispatch(ActionViewProcess)
	a.SetFilter("no-such-process")

	out := plain(testFrame(a, 120, 30).processView())
	assert.Contains(t, out, `no processes match "no-such-process"`)
	assert.Contains(t, out, "nothing selected")
}

func TestOptionsView_Scrolls(t *testing.T) {
	a := tickedApp(metrics.Fixture())
	a.Dispatch(ActionViewOptions)
	a.Dispatch(ActionEnd)

	out := plain(testFrame(a, 80, 6).optionsView())
	assert.Contains(t, out, "13-13/13")
	assert.Contains(t, out, "Network history")
	assert.NotContains(t, out, "Metrics source")
}

func TestFrameRender_FitsBody(t *testing.T) {
	a := tickedApp(metrics.Fixture())
	for v := ViewSystem; v < viewCount; v++ {
		a.State.SetView(v)
		out := testFrame(a, 100, 20).render()
		lines := strings.Split(out, "\n")
		assert.LessOrEqual(t, len(lines), 20, v.String())
		for _, l := range lines {
			assert.LessOrEqual(t, len([]rune(plain(l))), 100, v.String())
		}
	}
}
