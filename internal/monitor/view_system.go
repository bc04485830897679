package monitor

import (
	"fmt"
)

// topProcessCount is how many processes the system view lists.
const topProcessCount = 5

func (f frame) systemView() string {
	snap := &f.app.Snapshot
	left, right, wide := f.columnWidths()

	info := f.theme.Section("System", snap.OS, f.systemInfoLines(), left)
	cpu := f.theme.Section("CPU", fmt.Sprintf("%d%%", snap.CPU.Usage), f.cpuLines(left-4), left)
	mem := f.theme.Section("Memory", fmt.Sprintf("%d%%", snap.Memory.UsedPercent()), f.memoryLines(right-4), right)
	disks := f.theme.Section("Disks", fmt.Sprintf("%d", len(snap.Disks)), f.diskSummaryLines(right-4), right)

	full := max(f.width, minBoxWidth)
	top := f.theme.Section("Top processes", "by "+f.app.State.SortKey.Label(), f.topProcessLines(full-4), full)

	return f.columns(wide, []string{info, cpu}, []string{mem, disks}) + "\n" + top
}

func (f frame) systemInfoLines() []string {
	snap := &f.app.Snapshot
	return []string{
		f.labelValue("Host", 10, snap.Hostname),
		f.labelValue("Kernel", 10, snap.Kernel),
		f.labelValue("Uptime", 10, formatUptime(snap.Uptime)),
		f.labelValue("Load", 10, fmt.Sprintf("%.2f %.2f %.2f", snap.Load.One, snap.Load.Five, snap.Load.Fifteen)),
		f.labelValue("Tasks", 10, fmt.Sprintf("%d processes, %d threads", snap.ProcessCount, snap.ThreadCount)),
	}
}

func (f frame) cpuLines(inner int) []string {
	snap := &f.app.Snapshot
	lines := []string{
		f.theme.Value.Render(truncate(snap.CPU.Model, inner)),
		f.labelValue("Freq", 6, fmt.Sprintf("%.0f MHz", snap.CPU.FrequencyMHz)) + "  " +
			f.labelValue("Temp", 6, fmt.Sprintf("%.1f°C", snap.CPU.TemperatureC)),
	}
	graph := f.theme.BrailleGraph(f.app.History.CPU.Floats(), inner, 3, true)
	lines = append(lines, splitLines(graph)...)
	return append(lines, f.coreLines(inner, 4)...)
}

func (f frame) memoryLines(inner int) []string {
	m := f.app.Snapshot.Memory
	barWidth := max(inner-12, 4)
	return []string{
		f.theme.ProgressBar(barWidth, float64(m.UsedPercent())) + " " + f.theme.MetricStyle(float64(m.UsedPercent())).Render(fmt.Sprintf("%3d%%", m.UsedPercent())),
		f.labelValue("Used", 11, formatMB(m.UsedMB)+" / "+formatMB(m.TotalMB)),
		f.labelValue("Available", 11, formatMB(m.AvailableMB)),
		f.labelValue("Cached", 11, formatMB(m.CachedMB)),
		f.theme.ProgressBar(barWidth, float64(m.SwapPercent())) + " " + f.theme.Label.Render(fmt.Sprintf("swap %3d%%", m.SwapPercent())),
	}
}

func (f frame) diskSummaryLines(inner int) []string {
	disks := f.app.Snapshot.Disks
	if len(disks) == 0 {
		return []string{f.theme.Label.Render("no disks")}
	}
	barWidth := max(inner-26, 4)
	lines := make([]string, 0, len(disks))
	for _, d := range disks {
		lines = append(lines, fmt.Sprintf("%s %s %s",
			f.theme.Label.Render(fmt.Sprintf("%-14s", truncate(d.MountPoint, 14))),
			f.theme.ProgressBar(barWidth, float64(d.UsagePercent())),
			f.theme.Value.Render(fmt.Sprintf("%3d%% of %s", d.UsagePercent(), formatGB(d.TotalGB))),
		))
	}
	return lines
}

func (f frame) topProcessLines(inner int) []string {
	rows := f.app.Rows()
	if len(rows) == 0 {
		return []string{f.theme.Label.Render("no processes")}
	}
	n := min(len(rows), topProcessCount)
	lines := make([]string, 0, n)
	nameWidth := max(inner-32, 8)
	for _, r := range rows[:n] {
		lines = append(lines, fmt.Sprintf("%7d  %-*s %s %s",
			r.PID,
			nameWidth, truncate(r.Name, nameWidth),
			f.theme.MetricStyle(r.CPUPercent).Render(fmt.Sprintf("%5.1f%%", r.CPUPercent)),
			f.theme.Value.Render(fmt.Sprintf("%10s", formatMB(r.MemoryMB))),
		))
	}
	return lines
}
