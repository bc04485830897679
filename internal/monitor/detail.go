package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// detailContent renders every field of the followed process for the detail
// viewport. Once the process is gone it says so instead.
func detailContent(a *App, th Theme, width int) string {
	p, ok := a.DetailProcess()
	if !ok {
		return th.Error.Render(fmt.Sprintf("Process %d has exited.", a.DetailPID())) + "\n\n" +
			th.Label.Render("Press enter or esc to close.")
	}

	field := func(label, value string) string {
		return th.Label.Render(fmt.Sprintf("%-12s", label)) + th.Value.Render(value)
	}

	lines := []string{
		field("PID", fmt.Sprintf("%d", p.PID)),
		field("Parent", parentLabel(a, p.PPID)),
		field("Name", p.Name),
		field("User", p.User),
		field("State", fmt.Sprintf("%s (%s)", p.State.Name(), p.State.String())),
		field("Priority", fmt.Sprintf("%d", p.Priority)),
		field("Nice", fmt.Sprintf("%d", p.Nice)),
		field("Threads", fmt.Sprintf("%d", p.Threads)),
		"",
		field("CPU", th.MetricStyle(p.CPUPercent).Render(fmt.Sprintf("%.1f%%", p.CPUPercent))),
		field("Memory", fmt.Sprintf("%s (%.1f%%)", formatMB(p.MemoryMB), p.MemoryPercent)),
		field("Disk read", formatKBs(p.ReadKBs)),
		field("Disk write", formatKBs(p.WriteKBs)),
		"",
		field("Started", p.StartTime),
		field("Uptime", formatUptime(p.Uptime)),
		"",
		th.Title.Render("Command"),
		p.Command,
		"",
		th.Title.Render("Full command line"),
	}
	lines = append(lines, wrapText(p.FullCommand, width)...)
	return strings.Join(lines, "\n")
}

// parentLabel names the parent when it is in the snapshot.
func parentLabel(a *App, ppid uint32) string {
	if parent, ok := a.Snapshot.FindProcess(ppid); ok {
		return fmt.Sprintf("%d (%s)", ppid, parent.Name)
	}
	return fmt.Sprintf("%d", ppid)
}

// wrapText hard-wraps s to width cells. Command lines rarely have spaces
// worth breaking on, so this cuts anywhere.
func wrapText(s string, width int) []string {
	if s == "" {
		return []string{""}
	}
	if width <= 0 {
		return []string{s}
	}
	var lines []string
	var cur []rune
	for _, r := range s {
		cur = append(cur, r)
		if lipgloss.Width(string(cur)) >= width {
			lines = append(lines, string(cur))
			cur = cur[:0]
		}
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}

// detailTitle is the overlay title for the followed process.
func detailTitle(a *App) string {
	if p, ok := a.DetailProcess(); ok {
		return fmt.Sprintf("%s (%d)", p.Name, p.PID)
	}
	return fmt.Sprintf("pid %d", a.DetailPID())
}

// detailSize is the overlay size for a body of width x height.
func detailSize(width, height int) (w, h int) {
	return max(min(width-4, 100), 20), max(height-4, 3)
}

// renderDetailOverlay frames the detail viewport and centers it in the body.
func renderDetailOverlay(a *App, th Theme, content string, width, height int) string {
	w, _ := detailSize(width, height)
	title := th.Title.Render(detailTitle(a))
	box := th.Overlay.Width(w).Render(title + "\n" + content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceChars(" "),
	)
}
