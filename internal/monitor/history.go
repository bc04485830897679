package monitor

import (
	"github.com/rileyhilliard/pulse/internal/config"
	"github.com/rileyhilliard/pulse/internal/metrics"
)

// Series is a fixed-length FIFO window of samples backed by a ring buffer.
// It starts zero-filled, so its length is always exactly its capacity.
type Series struct {
	data []uint64
	head int
}

// NewSeries creates a zero-filled series. Sizes below 1 are raised to 1.
func NewSeries(size int) *Series {
	return &Series{data: make([]uint64, max(size, 1))}
}

// Push appends a value and evicts the oldest one.
func (s *Series) Push(v uint64) {
	s.data[s.head] = v
	s.head = (s.head + 1) % len(s.data)
}

// Len returns the fixed length of the series.
func (s *Series) Len() int {
	return len(s.data)
}

// Last returns the most recently pushed value.
func (s *Series) Last() uint64 {
	return s.data[(s.head-1+len(s.data))%len(s.data)]
}

// Values returns the samples oldest first.
func (s *Series) Values() []uint64 {
	out := make([]uint64, 0, len(s.data))
	out = append(out, s.data[s.head:]...)
	return append(out, s.data[:s.head]...)
}

// Floats returns Values as float64 for the graph renderers.
func (s *Series) Floats() []float64 {
	vals := s.Values()
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = float64(v)
	}
	return out
}

// Max returns the largest sample in the window.
func (s *Series) Max() uint64 {
	var m uint64
	for _, v := range s.data {
		m = max(m, v)
	}
	return m
}

// History holds the rolling windows that feed the charts.
type History struct {
	CPU    *Series
	Memory *Series
	NetRx  *Series
	NetTx  *Series
}

// NewHistory sizes each window from config.
func NewHistory(cfg config.HistoryConfig) *History {
	return &History{
		CPU:    NewSeries(cfg.CPU),
		Memory: NewSeries(cfg.Memory),
		NetRx:  NewSeries(cfg.Network),
		NetTx:  NewSeries(cfg.Network),
	}
}

// Push records one tick's aggregate CPU, memory percent and network totals.
func (h *History) Push(snap *metrics.Snapshot) {
	h.CPU.Push(snap.CPU.Usage)
	h.Memory.Push(snap.Memory.UsedPercent())
	h.NetRx.Push(snap.TotalRx)
	h.NetTx.Push(snap.TotalTx)
}
