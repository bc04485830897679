package monitor

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Force TrueColor output in tests so we can verify ANSI color codes
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func testTheme() Theme {
	return NewTheme(termenv.TrueColor)
}

// plain strips ANSI sequences from rendered output.
func plain(s string) string {
	return ansi.Strip(s)
}

func TestGraphRange(t *testing.T) {
	tests := []struct {
		name    string
		data    []float64
		percent bool
		wantHi  float64
	}{
		{name: "percent uses fixed range", data: []float64{10, 20}, percent: true, wantHi: 100},
		{name: "rates scale to peak", data: []float64{10, 4200, 300}, wantHi: 4200},
		{name: "all zero avoids empty range", data: []float64{0, 0}, wantHi: 1},
		{name: "empty avoids empty range", data: nil, wantHi: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := graphRange(tt.data, tt.percent)
			assert.Equal(t, 0.0, lo)
			assert.Equal(t, tt.wantHi, hi)
		})
	}
}

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		name   string
		val    float64
		minVal float64
		maxVal float64
		want   float64
	}{
		{
			name:   "middle value",
			val:    50,
			minVal: 0,
			maxVal: 100,
			want:   0.5,
		},
		{
			name:   "min value",
			val:    0,
			minVal: 0,
			maxVal: 100,
			want:   0,
		},
		{
			name:   "max value",
			val:    100,
			minVal: 0,
			maxVal: 100,
			want:   1,
		},
		{
			name:   "equal min max returns 0.5",
			val:    50,
			minVal: 50,
			maxVal: 50,
			want:   0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeValue(tt.val, tt.minVal, tt.maxVal)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestClampInt(t *testing.T) {
	tests := []struct {
		name string
		val  int
		max  int
		want int
	}{
		{name: "within range", val: 5, max: 10, want: 5},
		{name: "at max", val: 10, max: 10, want: 10},
		{name: "over max", val: 15, max: 10, want: 10},
		{name: "negative clamped to zero", val: -5, max: 10, want: 0},
		{name: "zero", val: 0, max: 10, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clampInt(tt.val, tt.max)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResampleData(t *testing.T) {
	tests := []struct {
		name       string
		data       []float64
		targetSize int
		wantLen    int
		wantNil    bool
	}{
		{
			name:       "empty data returns nil",
			data:       []float64{},
			targetSize: 10,
			wantNil:    true,
		},
		{
			name:       "zero target returns nil",
			data:       []float64{1, 2, 3},
			targetSize: 0,
			wantNil:    true,
		},
		{
			name:       "negative target returns nil",
			data:       []float64{1, 2, 3},
			targetSize: -5,
			wantNil:    true,
		},
		{
			name:       "same size returns original",
			data:       []float64{1, 2, 3},
			targetSize: 3,
			wantLen:    3,
		},
		{
			name:       "single value fills target",
			data:       []float64{42},
			targetSize: 5,
			wantLen:    5,
		},
		{
			name:       "downsampling reduces size",
			data:       []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			targetSize: 5,
			wantLen:    5,
		},
		{
			name:       "upsampling increases size",
			data:       []float64{0, 100},
			targetSize: 5,
			wantLen:    5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := resampleData(tt.data, tt.targetSize)
			if tt.wantNil {
				assert.Nil(t, result)
			} else {
				require.NotNil(t, result)
				assert.Len(t, result, tt.wantLen)
			}
		})
	}
}

func TestResampleData_DownsamplingPreservesPeaks(t *testing.T) {
	// Data with a spike in the middle
	data := []float64{10, 10, 10, 100, 10, 10, 10, 10, 10, 10}

	// Downsample to 5 points - the spike should be preserved
	result := resampleData(data, 5)

	require.Len(t, result, 5)

	// The bucket containing 100 should have max=100
	hasSpike := false
	for _, v := range result {
		if v == 100 {
			hasSpike = true
			break
		}
	}
	assert.True(t, hasSpike, "downsampling should preserve peak values")
}

func TestResampleData_UpsamplingInterpolates(t *testing.T) {
	data := []float64{0, 100}
	result := resampleData(data, 5)

	require.Len(t, result, 5)

	// Should interpolate: 0, 25, 50, 75, 100
	assert.InDelta(t, 0, result[0], 0.1)
	assert.InDelta(t, 25, result[1], 0.1)
	assert.InDelta(t, 50, result[2], 0.1)
	assert.InDelta(t, 75, result[3], 0.1)
	assert.InDelta(t, 100, result[4], 0.1)
}

func TestBrailleGraph(t *testing.T) {
	th := testTheme()

	tests := []struct {
		name      string
		data      []float64
		width     int
		height    int
		wantEmpty bool
	}{
		{name: "empty data", data: nil, width: 10, height: 2, wantEmpty: true},
		{name: "zero width", data: []float64{50}, width: 0, height: 2, wantEmpty: true},
		{name: "zero height", data: []float64{50}, width: 10, height: 0, wantEmpty: true},
		{name: "full history", data: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100, 95}, width: 6, height: 3},
		{name: "more data than width", data: make([]float64, 60), width: 5, height: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := th.BrailleGraph(tt.data, tt.width, tt.height, true)
			if tt.wantEmpty {
				assert.Empty(t, out)
				return
			}
			lines := strings.Split(out, "\n")
			require.Len(t, lines, tt.height)
			for _, line := range lines {
				assert.Equal(t, tt.width, lipgloss.Width(line))
			}
		})
	}
}

func TestBrailleGraph_RightAligned(t *testing.T) {
	out := plain(testTheme().BrailleGraph([]float64{100, 100}, 4, 1, true))
	runes := []rune(out)
	require.Len(t, runes, 4)

	assert.Equal(t, brailleBase, runes[0], "leading columns stay empty")
	assert.NotEqual(t, brailleBase, runes[3], "newest samples sit at the right edge")
}

func TestBrailleGraph_FullValueFillsColumn(t *testing.T) {
	out := plain(testTheme().BrailleGraph([]float64{100, 100}, 1, 1, true))
	assert.Equal(t, "⣿", out)
}

func TestBrailleGraph_RatesUseGraphColor(t *testing.T) {
	th := testTheme()
	out := th.BrailleGraph([]float64{1000, 5000}, 1, 1, false)
	assert.Equal(t, lipgloss.NewStyle().Foreground(th.Graph).Render(plain(out)), out)
}

func TestSparkline(t *testing.T) {
	th := testTheme()

	assert.Empty(t, th.Sparkline(nil, 5, 0, th.Graph))
	assert.Empty(t, th.Sparkline([]float64{1}, 0, 0, th.Graph))

	out := plain(th.Sparkline([]float64{0, 50, 100}, 3, 100, th.Graph))
	assert.Equal(t, "▁▄█", out)

	scaled := plain(th.Sparkline([]float64{0, 2500, 5000}, 3, 0, th.Graph))
	assert.Equal(t, "▁▄█", scaled, "zero ceiling scales to the peak")
}

func TestGradientBar(t *testing.T) {
	th := testTheme()

	tests := []struct {
		name       string
		width      int
		percent    float64
		wantFilled int
	}{
		{name: "empty", width: 10, percent: 0, wantFilled: 0},
		{name: "half", width: 10, percent: 50, wantFilled: 5},
		{name: "full", width: 10, percent: 100, wantFilled: 10},
		{name: "over 100 clamps", width: 10, percent: 250, wantFilled: 10},
		{name: "negative clamps", width: 10, percent: -5, wantFilled: 0},
		{name: "zero width becomes one", width: 0, percent: 100, wantFilled: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := plain(th.GradientBar(tt.width, tt.percent))
			assert.Equal(t, tt.wantFilled, strings.Count(out, "█"))
			assert.Equal(t, max(tt.width, 1), lipgloss.Width(out))
		})
	}
}
