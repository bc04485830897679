package monitor

import (
	"testing"

	"github.com/rileyhilliard/pulse/internal/config"
	"github.com/rileyhilliard/pulse/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeries(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantLen int
	}{
		{name: "configured size", size: 12, wantLen: 12},
		{name: "zero raised to one", size: 0, wantLen: 1},
		{name: "negative raised to one", size: -3, wantLen: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSeries(tt.size)
			assert.Equal(t, tt.wantLen, s.Len())
			assert.Equal(t, make([]uint64, tt.wantLen), s.Values(), "starts zero-filled")
		})
	}
}

func TestSeries_PushEvictsOldest(t *testing.T) {
	s := NewSeries(3)
	s.Push(1)
	s.Push(2)
	assert.Equal(t, []uint64{0, 1, 2}, s.Values())

	s.Push(3)
	s.Push(4)
	assert.Equal(t, []uint64{2, 3, 4}, s.Values())
	assert.Equal(t, uint64(4), s.Last())
	assert.Equal(t, uint64(4), s.Max())
	assert.Equal(t, []float64{2, 3, 4}, s.Floats())
}

func TestSeries_LengthInvariant(t *testing.T) {
	s := NewSeries(12)
	for i := 0; i < 1000; i++ {
		s.Push(uint64(i))
		require.Equal(t, 12, s.Len())
		require.Len(t, s.Values(), 12)
		require.Equal(t, uint64(i), s.Last())
	}
}

func TestSeries_ValuesIsACopy(t *testing.T) {
	s := NewSeries(2)
	s.Push(5)
	vals := s.Values()
	vals[1] = 99
	assert.Equal(t, uint64(5), s.Last())
}

func TestNewHistory(t *testing.T) {
	h := NewHistory(config.HistoryConfig{CPU: 12, Memory: 20, Network: 9})
	assert.Equal(t, 12, h.CPU.Len())
	assert.Equal(t, 20, h.Memory.Len())
	assert.Equal(t, 9, h.NetRx.Len())
	assert.Equal(t, 9, h.NetTx.Len())
}

func TestHistory_Push(t *testing.T) {
	h := NewHistory(config.HistoryConfig{CPU: 12, Memory: 12, Network: 9})

	snap := metrics.Fixture()
	snap.Normalize()
	snap.TotalRx = 1234
	snap.TotalTx = 56

	for i := 0; i < 30; i++ {
		h.Push(&snap)
	}

	assert.Equal(t, 12, h.CPU.Len())
	assert.Equal(t, 9, h.NetRx.Len())
	assert.Equal(t, snap.CPU.Usage, h.CPU.Last())
	assert.Equal(t, snap.Memory.UsedPercent(), h.Memory.Last())
	assert.Equal(t, uint64(1234), h.NetRx.Last())
	assert.Equal(t, uint64(56), h.NetTx.Last())
}
