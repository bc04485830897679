package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/rileyhilliard/pulse/internal/config"
	"github.com/rileyhilliard/pulse/internal/logger"
	"github.com/rileyhilliard/pulse/internal/metrics"
)

// fakeSource replays snapshots in order, repeating the last one.
type fakeSource struct {
	snaps []metrics.Snapshot
	err   error
	calls int
}

func (f *fakeSource) Sample(ctx context.Context) (metrics.Snapshot, error) {
	f.calls++
	if err := ctx.Err(); err != nil {
		return metrics.Snapshot{}, err
	}
	if f.err != nil {
		return metrics.Snapshot{}, f.err
	}
	if len(f.snaps) == 0 {
		return metrics.Fixture(), nil
	}
	return f.snaps[min(f.calls-1, len(f.snaps)-1)].Clone(), nil
}

// makeProcs builds processes with pids 1..n and the given cpu values.
func makeProcs(cpus ...float64) []metrics.Process {
	procs := make([]metrics.Process, len(cpus))
	for i, c := range cpus {
		procs[i] = metrics.Process{
			PID:        uint32(i + 1),
			Name:       fmt.Sprintf("proc%d", i+1),
			Command:    fmt.Sprintf("/bin/proc%d", i+1),
			User:       "root",
			CPUPercent: c,
			MemoryMB:   uint64(10 * (i + 1)),
			Threads:    1,
		}
	}
	return procs
}

// snapshotWith returns the fixture with its processes replaced.
func snapshotWith(procs []metrics.Process) metrics.Snapshot {
	s := metrics.Fixture()
	s.Processes = procs
	return s
}

func newTestApp(src metrics.Source) *App {
	return NewApp(config.DefaultConfig(), src, "test", logger.Noop())
}

// tickedApp returns an app that has applied one snapshot.
func tickedApp(snap metrics.Snapshot) *App {
	a := newTestApp(&fakeSource{snaps: []metrics.Snapshot{snap}})
	a.Tick(context.Background(), time.Unix(1000, 0))
	return a
}

func pids(rows []Row) []uint32 {
	out := make([]uint32, len(rows))
	for i, r := range rows {
		out[i] = r.PID
	}
	return out
}

func procPids(procs []metrics.Process) []uint32 {
	out := make([]uint32, len(procs))
	for i, p := range procs {
		out[i] = p.PID
	}
	return out
}
