package monitor

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// formatMB formats a size given in megabytes.
func formatMB(mb uint64) string {
	switch {
	case mb >= 1024*1024:
		return fmt.Sprintf("%.1f TB", float64(mb)/(1024*1024))
	case mb >= 1024:
		return fmt.Sprintf("%.1f GB", float64(mb)/1024)
	default:
		return fmt.Sprintf("%d MB", mb)
	}
}

// formatGB formats a size given in gigabytes.
func formatGB(gb uint64) string {
	if gb >= 1024 {
		return fmt.Sprintf("%.1f TB", float64(gb)/1024)
	}
	return fmt.Sprintf("%d GB", gb)
}

// formatKBs formats a throughput given in KB/s.
func formatKBs(kbs uint64) string {
	switch {
	case kbs >= 1024*1024:
		return fmt.Sprintf("%.1f GB/s", float64(kbs)/(1024*1024))
	case kbs >= 1024:
		return fmt.Sprintf("%.1f MB/s", float64(kbs)/1024)
	default:
		return fmt.Sprintf("%d KB/s", kbs)
	}
}

// formatUptime renders a duration as "3d 04:05:06", dropping the day part
// when it is zero.
func formatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	days := total / 86400
	h := (total % 86400) / 3600
	m := (total % 3600) / 60
	s := total % 60
	if days > 0 {
		return fmt.Sprintf("%dd %02d:%02d:%02d", days, h, m, s)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// truncate cuts s to width display cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
