package metrics

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"
)

// Random walk bounds.
const (
	coreStep    = 10
	memoryStep  = 50
	rxStep      = 100
	rxMax       = 5000
	txStep      = 50
	txMax       = 2500
	procCPUStep = 5.0
	procMemStep = 10
	procMemMax  = 2000
	diskStep    = 5
	diskReadMax = 500
	diskWrMax   = 250
)

// Simulator is a Source that perturbs a fixed fixture with bounded random
// steps on every Sample. It is deterministic for a given rand source and clock.
type Simulator struct {
	rng  *rand.Rand
	now  func() time.Time
	last time.Time
	snap Snapshot
}

// SimulatorOption configures a Simulator.
type SimulatorOption func(*Simulator)

// WithClock overrides the clock used to advance uptimes between samples.
func WithClock(now func() time.Time) SimulatorOption {
	return func(s *Simulator) {
		s.now = now
	}
}

// NewSimulator returns a Simulator seeded from the demo fixture.
// A nil rng gets a time-seeded generator.
func NewSimulator(rng *rand.Rand, opts ...SimulatorOption) *Simulator {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	s := &Simulator{
		rng:  rng,
		now:  time.Now,
		snap: Fixture(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sample advances the random walk by one step and returns a copy of the result.
func (s *Simulator) Sample(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	now := s.now()
	var elapsed time.Duration
	if !s.last.IsZero() && now.After(s.last) {
		elapsed = now.Sub(s.last)
	}
	s.last = now

	snap := &s.snap
	snap.Uptime += elapsed

	for i, v := range snap.CPU.PerCore {
		snap.CPU.PerCore[i] = clampFloat(v+s.stepFloat(coreStep), 0, 100)
	}

	mem := &snap.Memory
	mem.UsedMB = clampUint(int64(mem.UsedMB)+s.stepInt(memoryStep), 0, int64(mem.TotalMB))
	mem.AvailableMB = mem.TotalMB - mem.UsedMB
	mem.FreeMB = mem.AvailableMB / 2

	snap.TotalRx, snap.TotalTx = 0, 0
	for i := range snap.Network {
		iface := &snap.Network[i]
		iface.RxKBs = clampUint(int64(iface.RxKBs)+s.stepSigned(rxStep), 0, rxMax)
		iface.TxKBs = clampUint(int64(iface.TxKBs)+s.stepSigned(txStep), 0, txMax)
		snap.TotalRx += iface.RxKBs
		snap.TotalTx += iface.TxKBs
	}

	for i := range snap.Disks {
		d := &snap.Disks[i]
		d.ReadMBs = clampUint(int64(d.ReadMBs)+s.stepInt(diskStep), 0, diskReadMax)
		d.WriteMBs = clampUint(int64(d.WriteMBs)+s.stepInt(diskStep), 0, diskWrMax)
	}

	for i := range snap.Processes {
		p := &snap.Processes[i]
		p.CPUPercent = clampFloat(p.CPUPercent+s.rng.Float64()*procCPUStep*s.sign(), 0, 100)
		p.MemoryMB = clampUint(int64(p.MemoryMB)+s.stepInt(procMemStep), 0, procMemMax)
		p.Uptime += elapsed
	}

	snap.Normalize()
	return snap.Clone(), nil
}

// stepInt returns a value in (-n, n): a magnitude in [0, n) with a random sign.
func (s *Simulator) stepInt(n int64) int64 {
	return s.rng.Int64N(n) * int64(s.sign())
}

// stepSigned returns a value uniformly drawn from [-n, n].
func (s *Simulator) stepSigned(n int64) int64 {
	return s.rng.Int64N(2*n+1) - n
}

func (s *Simulator) stepFloat(n int64) float64 {
	return float64(s.stepInt(n))
}

func (s *Simulator) sign() float64 {
	if s.rng.IntN(2) == 0 {
		return -1
	}
	return 1
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampUint(v, lo, hi int64) uint64 {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return uint64(v)
}

type fixtureProcess struct {
	name   string
	pid    uint32
	ppid   uint32
	user   string
	cpu    float64
	memory uint64
	state  ProcessState
}

var fixtureProcesses = []fixtureProcess{
	{"systemd", 1, 0, "root", 1.5, 200, StateSleeping},
	{"NetworkManager", 1234, 1, "root", 2.3, 45, StateSleeping},
	{"gnome-shell", 2345, 1, "user", 12.5, 356, StateRunning},
	{"firefox", 3456, 2345, "user", 24.8, 1240, StateRunning},
	{"code", 4567, 2345, "user", 18.2, 890, StateRunning},
	{"docker", 5678, 1, "root", 3.5, 345, StateSleeping},
	{"postgres", 6789, 1, "postgres", 7.8, 456, StateSleeping},
	{"nginx", 7890, 1, "www-data", 1.2, 89, StateSleeping},
	{"redis", 8901, 1, "redis", 2.5, 123, StateSleeping},
	{"python3", 9012, 3456, "user", 15.3, 234, StateRunning},
}

// Fixture returns the demo snapshot the Simulator starts from: an 8 core,
// 16 GiB machine with two disks, one interface, and ten processes.
func Fixture() Snapshot {
	perCore := make([]float64, 8)
	for i := range perCore {
		perCore[i] = float64(min(20+i*5, 100))
	}

	const total, used = 16384, 8192

	procs := make([]Process, 0, len(fixtureProcesses))
	for i, fp := range fixtureProcesses {
		bin := "/usr/bin/" + strings.ToLower(fp.name)
		procs = append(procs, Process{
			PID:         fp.pid,
			PPID:        fp.ppid,
			Name:        fp.name,
			Command:     bin,
			FullCommand: bin + " --some-flag",
			User:        fp.user,
			CPUPercent:  fp.cpu,
			MemoryMB:    fp.memory,
			State:       fp.state,
			Priority:    20,
			Nice:        0,
			Threads:     uint32(i+1) * 2,
			StartTime:   "10:30:15",
			Uptime:      time.Duration(i) * time.Hour,
			ReadKBs:     uint64(i*10) % 100,
			WriteKBs:    uint64(i*5) % 50,
		})
	}

	snap := Snapshot{
		Hostname: "localhost",
		Kernel:   "5.15.0",
		OS:       "Linux",
		Uptime:   25 * time.Hour,
		Load:     LoadAverage{One: 1.25, Five: 1.85, Fifteen: 2.15},
		CPU: CPU{
			PerCore:      perCore,
			Model:        "Intel Core i7-12700K",
			FrequencyMHz: 3600,
			TemperatureC: 65.5,
		},
		Memory: Memory{
			TotalMB:     total,
			UsedMB:      used,
			FreeMB:      (total - used) / 2,
			AvailableMB: total - used,
			CachedMB:    2048,
			BuffersMB:   512,
			SwapTotalMB: 8192,
			SwapUsedMB:  1024,
			SwapFreeMB:  8192 - 1024,
		},
		Disks: []Disk{
			{Name: "nvme0n1", MountPoint: "/", TotalGB: 512, UsedGB: 256, FreeGB: 256, ReadMBs: 120, WriteMBs: 45, DeviceType: "NVMe"},
			{Name: "sda", MountPoint: "/home", TotalGB: 1024, UsedGB: 512, FreeGB: 512, ReadMBs: 45, WriteMBs: 23, DeviceType: "SSD"},
		},
		Network: []NetworkInterface{
			{Name: "eth0", IP: "192.168.1.100", MAC: "00:11:22:33:44:55", RxKBs: 1200, TxKBs: 450, Status: "up"},
		},
		TotalRx:      1200,
		TotalTx:      450,
		Processes:    procs,
		ProcessCount: 150,
		ThreadCount:  1200,
	}
	snap.Normalize()
	return snap
}
