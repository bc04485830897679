package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Rows taken by the header, the tab bar and the footer.
const chromeRows = 3

// processChrome is the body space the process view needs besides table
// rows: the table header and the selected process box.
const processChrome = 5

// minBoxWidth is the narrowest a box gets before columns stack.
const minBoxWidth = 40

// frame is one render pass over the controller state. The body is
// width x height cells, excluding header, tabs and footer.
type frame struct {
	app    *App
	theme  Theme
	width  int
	height int
}

// render draws the body of the current view.
func (f frame) render() string {
	var body string
	switch f.app.State.View {
	case ViewProcess:
		body = f.processView()
	case ViewResources:
		body = f.resourcesView()
	case ViewNetwork:
		body = f.networkView()
	case ViewDisks:
		body = f.disksView()
	case ViewOptions:
		body = f.optionsView()
	default:
		body = f.systemView()
	}
	return lipgloss.NewStyle().MaxHeight(f.height).MaxWidth(f.width).Render(body)
}

// columnWidths splits the body into two boxes when it is wide enough.
func (f frame) columnWidths() (left, right int, wide bool) {
	if f.width >= 2*minBoxWidth {
		left = f.width / 2
		return left, f.width - left, true
	}
	w := max(f.width, minBoxWidth)
	return w, w, false
}

// columns lays out two stacks of boxes side by side, or one after the other
// on narrow terminals.
func (f frame) columns(wide bool, left, right []string) string {
	if !wide {
		return lipgloss.JoinVertical(lipgloss.Left, append(left, right...)...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, left...),
		lipgloss.JoinVertical(lipgloss.Left, right...),
	)
}

// renderHeader renders the top status bar.
func renderHeader(a *App, th Theme, width int) string {
	snap := &a.Snapshot
	host := snap.Hostname
	if host == "" {
		host = "localhost"
	}

	parts := []string{
		host,
		"up " + formatUptime(snap.Uptime),
		a.SourceName(),
		"every " + a.State.UpdateInterval.String(),
	}
	line := th.Title.Render("pulse") + th.Label.Render(" | "+strings.Join(parts, " | "))
	if a.State.Paused {
		line += "  " + th.Paused.Render("PAUSED")
	}
	if a.LastError() != nil {
		line += "  " + th.Error.Render("sampling failed, showing last data")
	}
	return th.Header.Width(max(width, 1)).MaxWidth(max(width, 1)).Render(line)
}

// renderTabs renders the view selector with the current view highlighted.
func renderTabs(current View, th Theme) string {
	tabs := make([]string, 0, int(viewCount))
	for v := ViewSystem; v < viewCount; v++ {
		label := fmt.Sprintf("%d %s", int(v)+1, v.Title())
		if v == current {
			tabs = append(tabs, th.TabActive.Render(label))
		} else {
			tabs = append(tabs, th.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// tableStyles adapts the bubbles table styles to the theme.
func (f frame) tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.Foreground(f.theme.Accent).Bold(true)
	s.Cell = s.Cell.Foreground(f.theme.Text)
	s.Selected = lipgloss.NewStyle().Foreground(f.theme.Backdrop).Background(f.theme.Accent).Bold(true)
	return s
}

// newTable builds a bubbles table sized exactly to its rows.
func (f frame) newTable(cols []table.Column, rows []table.Row, focused bool) table.Model {
	return table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithStyles(f.tableStyles()),
		table.WithHeight(len(rows)+1),
		table.WithWidth(f.width),
		table.WithFocused(focused),
	)
}

// labelValue renders "label value" with the label padded to width.
func (f frame) labelValue(label string, width int, value string) string {
	return f.theme.Label.Render(fmt.Sprintf("%-*s", width, label)) + f.theme.Value.Render(value)
}

// coreLines renders per-core bars starting at the generic scroll offset.
func (f frame) coreLines(inner, limit int) []string {
	cores := f.app.Snapshot.CPU.PerCore
	start := min(f.app.State.ScrollOffset, len(cores))
	end := min(start+max(limit, 0), len(cores))

	barWidth := max(inner-14, 4)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		pct := cores[i]
		lines = append(lines, fmt.Sprintf("%s %s %s",
			f.theme.Label.Render(fmt.Sprintf("cpu%-3d", i)),
			f.theme.GradientBar(barWidth, pct),
			f.theme.MetricStyle(pct).Render(fmt.Sprintf("%5.1f%%", pct)),
		))
	}
	return lines
}

// scrollHint reports the visible range of a scrolled list.
func scrollHint(offset, shown, total int) string {
	if total == 0 {
		return "0"
	}
	if shown >= total {
		return fmt.Sprintf("%d", total)
	}
	return fmt.Sprintf("%d-%d/%d", offset+1, offset+shown, total)
}

// splitLines splits a rendered block into lines, dropping an empty block.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
