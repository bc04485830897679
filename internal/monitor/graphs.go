package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille character rendering for high-resolution terminal graphs.
//
// Braille patterns use a 2x4 dot matrix per character:
//
//	  Col 0  Col 1
//	Row 0:   ⠁      ⠈     (dots 1, 4)
//	Row 1:   ⠂      ⠐     (dots 2, 5)
//	Row 2:   ⠄      ⠠     (dots 3, 6)
//	Row 3:   ⡀      ⢀     (dots 7, 8)
//
// Unicode braille starts at U+2800 (empty) and uses bit patterns:
// bit 0 = dot 1, bit 1 = dot 2, bit 2 = dot 3, bit 3 = dot 4,
// bit 4 = dot 5, bit 5 = dot 6, bit 6 = dot 7, bit 7 = dot 8

const brailleBase = '⠀'

// sparklineBlocks are block characters for 8-level vertical resolution (lowest to highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// brailleDots maps [row][col] to the bit offset for a braille dot.
var brailleDots = [4][2]uint8{
	{0, 3},
	{1, 4},
	{2, 5},
	{6, 7},
}

// graphRange returns the vertical range for a series. Percentages use a
// fixed 0-100 range; anything else scales from 0 to the series peak.
func graphRange(data []float64, percent bool) (lo, hi float64) {
	if percent {
		return 0, 100
	}
	for _, v := range data {
		hi = max(hi, v)
	}
	if hi == 0 {
		hi = 1
	}
	return 0, hi
}

// normalizeValue converts a value to the 0-1 range given bounds.
func normalizeValue(val, lo, hi float64) float64 {
	if hi > lo {
		return (val - lo) / (hi - lo)
	}
	return 0.5
}

// clampInt clamps an integer to [0, maxVal].
func clampInt(val, maxVal int) int {
	if val < 0 {
		return 0
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// BrailleGraph renders a history series as a multi-row braille chart.
// Each character holds two samples and four vertical levels. Percentage
// series are colored per column by severity; other series use the graph color.
func (t Theme) BrailleGraph(data []float64, width, height int, percent bool) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	lo, hi := graphRange(data, percent)
	totalDots := height * 4
	targetPoints := width * 2

	resampled := data
	if len(data) > targetPoints {
		resampled = resampleData(data, targetPoints)
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = brailleBase
		}
	}
	colMax := make([]float64, width)

	// Short series are right-aligned so the newest sample sits at the edge.
	offset := max(targetPoints-len(resampled), 0)

	for i, val := range resampled {
		charCol := (i + offset) / 2
		if charCol >= width {
			continue
		}
		colMax[charCol] = max(colMax[charCol], val)

		dotHeight := clampInt(int(normalizeValue(val, lo, hi)*float64(totalDots)), totalDots)
		subCol := (i + offset) % 2
		for dot := 0; dot < dotHeight; dot++ {
			row := height - 1 - dot/4
			subRow := 3 - dot%4
			grid[row][charCol] |= rune(1 << brailleDots[subRow][subCol])
		}
	}

	lines := make([]string, 0, height)
	for _, row := range grid {
		var b strings.Builder
		for col, ch := range row {
			color := t.Graph
			if percent {
				color = t.MetricColor(colMax[col])
			}
			b.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(ch)))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// Sparkline renders a single-row block sparkline. A ceiling of 0 scales to
// the series peak.
func (t Theme) Sparkline(data []float64, width int, ceiling float64, color lipgloss.Color) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}

	lo, hi := graphRange(data, false)
	if ceiling > 0 {
		hi = ceiling
	}

	var b strings.Builder
	for _, val := range resampleData(data, width) {
		idx := clampInt(int(normalizeValue(val, lo, hi)*float64(len(sparklineBlocks)-1)), len(sparklineBlocks)-1)
		b.WriteRune(sparklineBlocks[idx])
	}
	return lipgloss.NewStyle().Foreground(color).Render(b.String())
}

// GradientBar renders a horizontal bar whose filled cells shade from
// healthy to critical by position.
func (t Theme) GradientBar(width int, percent float64) string {
	width = max(width, 1)
	filled := min(int(clampPercent(percent)/100*float64(width)), width)

	var b strings.Builder
	for i := 0; i < width; i++ {
		if i < filled {
			pos := float64(i+1) / float64(width) * 100
			b.WriteString(lipgloss.NewStyle().Foreground(t.MetricColor(pos)).Render("█"))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(t.Muted).Render("░"))
		}
	}
	return b.String()
}

// resampleData resamples data to the target size.
// Downsampling keeps the max of each bucket so spikes survive; upsampling
// interpolates linearly.
func resampleData(data []float64, targetSize int) []float64 {
	if len(data) == 0 || targetSize <= 0 {
		return nil
	}
	if len(data) == targetSize {
		return data
	}

	result := make([]float64, targetSize)

	if len(data) == 1 {
		for i := range result {
			result[i] = data[0]
		}
		return result
	}

	if len(data) > targetSize {
		bucketSize := float64(len(data)) / float64(targetSize)
		for i := 0; i < targetSize; i++ {
			start := int(float64(i) * bucketSize)
			end := min(int(float64(i+1)*bucketSize), len(data))
			if start >= end {
				start = end - 1
			}
			start = max(start, 0)

			peak := data[start]
			for j := start + 1; j < end; j++ {
				peak = max(peak, data[j])
			}
			result[i] = peak
		}
		return result
	}

	scale := float64(len(data)-1) / float64(targetSize-1)
	for i := 0; i < targetSize; i++ {
		pos := float64(i) * scale
		idx := int(pos)
		frac := pos - float64(idx)

		if idx >= len(data)-1 {
			result[i] = data[len(data)-1]
		} else {
			result[i] = data[idx]*(1-frac) + data[idx+1]*frac
		}
	}
	return result
}
