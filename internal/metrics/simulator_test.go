package metrics

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestFixture(t *testing.T) {
	snap := Fixture()

	assert.Equal(t, "localhost", snap.Hostname)
	assert.Equal(t, "5.15.0", snap.Kernel)
	assert.Equal(t, "Linux", snap.OS)
	assert.Equal(t, 25*time.Hour, snap.Uptime)
	assert.Equal(t, LoadAverage{One: 1.25, Five: 1.85, Fifteen: 2.15}, snap.Load)

	require.Len(t, snap.CPU.PerCore, 8)
	for i, v := range snap.CPU.PerCore {
		assert.Equal(t, float64(20+i*5), v)
	}
	assert.Equal(t, uint64(37), snap.CPU.Usage)
	assert.Equal(t, "Intel Core i7-12700K", snap.CPU.Model)
	assert.Equal(t, 3600.0, snap.CPU.FrequencyMHz)
	assert.Equal(t, 65.5, snap.CPU.TemperatureC)

	assert.Equal(t, uint64(16384), snap.Memory.TotalMB)
	assert.Equal(t, uint64(8192), snap.Memory.UsedMB)
	assert.Equal(t, uint64(8192), snap.Memory.SwapTotalMB)
	assert.Equal(t, uint64(1024), snap.Memory.SwapUsedMB)

	require.Len(t, snap.Disks, 2)
	assert.Equal(t, "nvme0n1", snap.Disks[0].Name)
	assert.Equal(t, "/", snap.Disks[0].MountPoint)
	assert.Equal(t, "sda", snap.Disks[1].Name)
	assert.Equal(t, "/home", snap.Disks[1].MountPoint)

	require.Len(t, snap.Network, 1)
	assert.Equal(t, "192.168.1.100", snap.Network[0].IP)
	assert.Equal(t, "00:11:22:33:44:55", snap.Network[0].MAC)
	assert.Equal(t, uint64(1200), snap.TotalRx)
	assert.Equal(t, uint64(450), snap.TotalTx)

	require.Len(t, snap.Processes, 10)
	assert.Equal(t, 150, snap.ProcessCount)
	assert.Equal(t, 1200, snap.ThreadCount)

	firefox := snap.Processes[3]
	assert.Equal(t, "firefox", firefox.Name)
	assert.Equal(t, uint32(3456), firefox.PID)
	assert.Equal(t, uint32(2345), firefox.PPID)
	assert.Equal(t, "/usr/bin/firefox", firefox.Command)
	assert.Equal(t, "/usr/bin/firefox --some-flag", firefox.FullCommand)
	assert.Equal(t, uint32(8), firefox.Threads)
	assert.Equal(t, 3*time.Hour, firefox.Uptime)
	assert.Equal(t, "10:30:15", firefox.StartTime)
	assert.Equal(t, int32(20), firefox.Priority)
	assert.InDelta(t, 1240.0/16384*100, firefox.MemoryPercent, 1e-9)

	assert.Equal(t, "/usr/bin/networkmanager", snap.Processes[1].Command)
}

func TestSimulatorDeterministic(t *testing.T) {
	ctx := context.Background()
	a := NewSimulator(newTestRand(42))
	b := NewSimulator(newTestRand(42))

	for i := 0; i < 20; i++ {
		sa, err := a.Sample(ctx)
		require.NoError(t, err)
		sb, err := b.Sample(ctx)
		require.NoError(t, err)
		assert.Equal(t, sa.CPU.PerCore, sb.CPU.PerCore)
		assert.Equal(t, sa.Memory, sb.Memory)
		assert.Equal(t, sa.TotalRx, sb.TotalRx)
	}
}

func TestSimulatorStaysInBounds(t *testing.T) {
	ctx := context.Background()
	sim := NewSimulator(newTestRand(7))
	prev := Fixture()

	for i := 0; i < 500; i++ {
		snap, err := sim.Sample(ctx)
		require.NoError(t, err)

		for c, v := range snap.CPU.PerCore {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 100.0)
			assert.Less(t, absf(v-prev.CPU.PerCore[c]), float64(coreStep))
		}
		assert.Equal(t, AggregateCPU(snap.CPU.PerCore), snap.CPU.Usage)
		assert.LessOrEqual(t, snap.Memory.UsedMB, snap.Memory.TotalMB)
		assert.LessOrEqual(t, snap.TotalRx, uint64(rxMax))
		assert.LessOrEqual(t, snap.TotalTx, uint64(txMax))

		for j, p := range snap.Processes {
			assert.GreaterOrEqual(t, p.CPUPercent, 0.0)
			assert.LessOrEqual(t, p.CPUPercent, 100.0)
			assert.LessOrEqual(t, p.MemoryMB, uint64(procMemMax))
			assert.Equal(t, prev.Processes[j].PID, p.PID, "simulator keeps process order")
			assert.InDelta(t, float64(p.MemoryMB)/float64(snap.Memory.TotalMB)*100, p.MemoryPercent, 1e-9)
		}
		prev = snap
	}
}

func TestSimulatorReturnsCopies(t *testing.T) {
	ctx := context.Background()
	sim := NewSimulator(newTestRand(1))

	first, err := sim.Sample(ctx)
	require.NoError(t, err)
	first.Processes[0].Name = "mutated"
	first.CPU.PerCore[0] = -1

	second, err := sim.Sample(ctx)
	require.NoError(t, err)
	assert.Equal(t, "systemd", second.Processes[0].Name)
	assert.GreaterOrEqual(t, second.CPU.PerCore[0], 0.0)
}

func TestSimulatorAdvancesUptime(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	sim := NewSimulator(newTestRand(3), WithClock(func() time.Time { return now }))

	first, err := sim.Sample(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25*time.Hour, first.Uptime, "first sample has no elapsed time")

	now = now.Add(2 * time.Second)
	second, err := sim.Sample(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25*time.Hour+2*time.Second, second.Uptime)
	assert.Equal(t, first.Processes[1].Uptime+2*time.Second, second.Processes[1].Uptime)
}

func TestSimulatorHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSimulator(newTestRand(1)).Sample(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
