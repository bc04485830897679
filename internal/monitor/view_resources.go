package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"github.com/rileyhilliard/pulse/internal/util"
)

func (f frame) resourcesView() string {
	snap := &f.app.Snapshot
	left, right, wide := f.columnWidths()

	// The box borders take two rows; the rest holds cores.
	coreRows := max(f.height-2, 1)
	if !wide {
		coreRows = max(f.height/2-2, 1)
	}
	cores := f.coreLines(left-4, coreRows)
	coreValue := scrollHint(f.app.State.ScrollOffset, len(cores), len(snap.CPU.PerCore))
	cpu := f.theme.Section("Cores", coreValue, cores, left)

	m := snap.Memory
	inner := right - 4
	barWidth := max(inner-12, 4)
	memLines := []string{
		f.labelValue("RAM", 6, "") + f.theme.ProgressBar(barWidth-6, float64(m.UsedPercent())) +
			f.theme.MetricStyle(float64(m.UsedPercent())).Render(fmt.Sprintf(" %3d%%", m.UsedPercent())),
		f.labelValue("Swap", 6, "") + f.theme.ProgressBar(barWidth-6, float64(m.SwapPercent())) +
			f.theme.MetricStyle(float64(m.SwapPercent())).Render(fmt.Sprintf(" %3d%%", m.SwapPercent())),
		f.labelValue("Used", 11, formatMB(m.UsedMB)+" / "+formatMB(m.TotalMB)),
		f.labelValue("Free", 11, formatMB(m.FreeMB)),
		f.labelValue("Buffers", 11, formatMB(m.BuffersMB)),
		f.labelValue("Swap used", 11, formatMB(m.SwapUsedMB)+" / "+formatMB(m.SwapTotalMB)),
	}
	mem := f.theme.Section("Memory", fmt.Sprintf("%d%%", m.UsedPercent()), memLines, right)

	history := splitLines(f.theme.BrailleGraph(f.app.History.Memory.Floats(), inner, 4, true))
	memHistory := f.theme.Section("Memory history", samples(f.app.History.Memory.Len()), history, right)

	return f.columns(wide, []string{cpu}, []string{mem, memHistory})
}

func (f frame) networkView() string {
	snap := &f.app.Snapshot
	width := max(f.width, minBoxWidth)
	inner := width - 4

	sparkWidth := max(inner-24, 4)
	totals := f.theme.Section("Traffic", fmt.Sprintf("%d %s", len(snap.Network), util.Pluralize(len(snap.Network), "interface", "interfaces")), []string{
		fmt.Sprintf("%s %s %s",
			f.theme.Label.Render("↓ rx"),
			f.theme.Sparkline(f.app.History.NetRx.Floats(), sparkWidth, 0, f.theme.Healthy),
			f.theme.Value.Render(fmt.Sprintf("%14s", formatKBs(snap.TotalRx))),
		),
		fmt.Sprintf("%s %s %s",
			f.theme.Label.Render("↑ tx"),
			f.theme.Sparkline(f.app.History.NetTx.Floats(), sparkWidth, 0, f.theme.Warning),
			f.theme.Value.Render(fmt.Sprintf("%14s", formatKBs(snap.TotalTx))),
		),
	}, width)

	// Each interface takes two lines; the traffic box takes four.
	fit := max((f.height-4-2)/2, 1)
	ifaces := snap.Network
	start := min(f.app.State.ScrollOffset, len(ifaces))
	end := min(start+fit, len(ifaces))

	lines := make([]string, 0, 2*(end-start))
	for _, n := range ifaces[start:end] {
		status := f.theme.MetricStyle(0).Render(n.Status)
		if !strings.EqualFold(n.Status, "up") {
			status = f.theme.Error.Render(n.Status)
		}
		lines = append(lines,
			fmt.Sprintf("%s %s  %s  %s",
				f.theme.Title.Render(fmt.Sprintf("%-10s", n.Name)),
				status,
				f.theme.Value.Render(n.IP),
				f.theme.Label.Render(n.MAC),
			),
			fmt.Sprintf("           %s %s   %s %s",
				f.theme.Label.Render("↓"), f.theme.Value.Render(formatKBs(n.RxKBs)),
				f.theme.Label.Render("↑"), f.theme.Value.Render(formatKBs(n.TxKBs)),
			),
		)
	}
	if len(lines) == 0 {
		lines = append(lines, f.theme.Label.Render("no interfaces"))
	}
	list := f.theme.Section("Interfaces", scrollHint(start, end-start, len(ifaces)), lines, width)

	return totals + "\n" + list
}

func (f frame) disksView() string {
	disks := f.app.Snapshot.Disks
	start := min(f.app.State.ScrollOffset, len(disks))
	// Table header plus one row and one bar line per disk.
	fit := max((f.height-3)/2, 1)
	end := min(start+fit, len(disks))
	shown := disks[start:end]

	cols := []table.Column{
		{Title: "DEVICE", Width: 14},
		{Title: "MOUNT", Width: 14},
		{Title: "TYPE", Width: 6},
		{Title: "SIZE", Width: 9},
		{Title: "USED", Width: 9},
		{Title: "FREE", Width: 9},
		{Title: "USE%", Width: 5},
		{Title: "READ", Width: 9},
		{Title: "WRITE", Width: 9},
	}
	rows := make([]table.Row, 0, len(shown))
	for _, d := range shown {
		rows = append(rows, table.Row{
			d.Name,
			d.MountPoint,
			d.DeviceType,
			formatGB(d.TotalGB),
			formatGB(d.UsedGB),
			formatGB(d.FreeGB),
			fmt.Sprintf("%d%%", d.UsagePercent()),
			fmt.Sprintf("%d MB/s", d.ReadMBs),
			fmt.Sprintf("%d MB/s", d.WriteMBs),
		})
	}
	t := f.newTable(cols, rows, false)

	width := max(f.width, minBoxWidth)
	barWidth := max(width-4-22, 4)
	bars := make([]string, 0, len(shown))
	for _, d := range shown {
		pct := float64(d.UsagePercent())
		bars = append(bars, fmt.Sprintf("%s %s %s",
			f.theme.Label.Render(fmt.Sprintf("%-14s", truncate(d.MountPoint, 14))),
			f.theme.ProgressBar(barWidth, pct),
			f.theme.MetricStyle(pct).Render(fmt.Sprintf("%4d%%", d.UsagePercent())),
		))
	}
	if len(bars) == 0 {
		bars = append(bars, f.theme.Label.Render("no disks"))
	}
	usage := f.theme.Section("Usage", scrollHint(start, len(shown), len(disks)), bars, width)

	return t.View() + "\n" + usage
}

func (f frame) optionsView() string {
	opts := f.app.Options()
	start := min(f.app.State.ScrollOffset, len(opts))
	end := min(start+max(f.height-2, 1), len(opts))

	labelWidth := 0
	for _, o := range opts {
		labelWidth = max(labelWidth, len(o.Label))
	}
	lines := make([]string, 0, end-start)
	for _, o := range opts[start:end] {
		lines = append(lines, f.labelValue(o.Label, labelWidth+2, o.Value))
	}

	width := max(f.width, minBoxWidth)
	return f.theme.Section("Options", scrollHint(start, end-start, len(opts)), lines, width)
}
