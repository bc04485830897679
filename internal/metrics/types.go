package metrics

import (
	"math"
	"time"
)

// Snapshot is one complete set of system metrics as of a single tick.
type Snapshot struct {
	Hostname string
	Kernel   string
	OS       string
	Uptime   time.Duration
	Load     LoadAverage

	CPU    CPU
	Memory Memory

	Disks   []Disk
	Network []NetworkInterface
	// TotalRx and TotalTx are summed over all interfaces, in KB/s.
	TotalRx uint64
	TotalTx uint64

	Processes []Process
	// ProcessCount and ThreadCount may exceed len(Processes) when the
	// source only reports a subset.
	ProcessCount int
	ThreadCount  int
}

// LoadAverage holds the 1, 5 and 15 minute load averages.
type LoadAverage struct {
	One     float64
	Five    float64
	Fifteen float64
}

// CPU contains processor usage information.
type CPU struct {
	// PerCore holds one usage percentage (0-100) per logical core.
	PerCore []float64
	// Usage is the mean of PerCore, truncated. See Normalize.
	Usage        uint64
	Model        string
	FrequencyMHz float64
	// TemperatureC is reported as-is; values outside the nominal range are not clamped.
	TemperatureC float64
}

// Memory contains memory and swap usage in MB.
type Memory struct {
	TotalMB     uint64
	UsedMB      uint64
	FreeMB      uint64
	AvailableMB uint64
	CachedMB    uint64
	BuffersMB   uint64
	SwapTotalMB uint64
	SwapUsedMB  uint64
	SwapFreeMB  uint64
}

// UsedPercent returns used/total*100 truncated, or 0 when total is unknown.
func (m Memory) UsedPercent() uint64 {
	if m.TotalMB == 0 {
		return 0
	}
	return m.UsedMB * 100 / m.TotalMB
}

// SwapPercent returns swap used/total*100 truncated, or 0 without swap.
func (m Memory) SwapPercent() uint64 {
	if m.SwapTotalMB == 0 {
		return 0
	}
	return m.SwapUsedMB * 100 / m.SwapTotalMB
}

// Disk describes one mounted filesystem.
type Disk struct {
	Name       string
	MountPoint string
	TotalGB    uint64
	UsedGB     uint64
	FreeGB     uint64
	// ReadMBs and WriteMBs are throughput in MB/s.
	ReadMBs    uint64
	WriteMBs   uint64
	DeviceType string
}

// UsagePercent returns used/total*100 rounded to the nearest integer.
func (d Disk) UsagePercent() uint64 {
	if d.TotalGB == 0 {
		return 0
	}
	return uint64(math.Round(float64(d.UsedGB) / float64(d.TotalGB) * 100))
}

// NetworkInterface contains addressing and throughput for one interface.
type NetworkInterface struct {
	Name string
	IP   string
	MAC  string
	// RxKBs and TxKBs are throughput in KB/s.
	RxKBs  uint64
	TxKBs  uint64
	Status string
}

// Process is one row of the process table.
type Process struct {
	PID         uint32
	PPID        uint32
	Name        string
	Command     string
	FullCommand string
	User        string
	// CPUPercent is 0-100.
	CPUPercent float64
	MemoryMB   uint64
	// MemoryPercent is derived from MemoryMB and the live memory total.
	MemoryPercent float64
	State         ProcessState
	Priority      int32
	Nice          int32
	Threads       uint32
	StartTime     string
	Uptime        time.Duration
	// ReadKBs and WriteKBs are I/O throughput in KB/s.
	ReadKBs  uint64
	WriteKBs uint64
}

// ProcessState is the scheduler state of a process.
type ProcessState int

const (
	StateRunning ProcessState = iota
	StateSleeping
	StateWaiting
	StateZombie
	StateStopped
	StateTracing
	StateDead
	StateWakekill
	StateWaking
	StateParked
	StateIdle
)

var stateLetters = [...]string{"R", "S", "D", "Z", "T", "t", "X", "K", "W", "P", "I"}

var stateNames = [...]string{
	"Running", "Sleeping", "Waiting", "Zombie", "Stopped", "Tracing",
	"Dead", "Wakekill", "Waking", "Parked", "Idle",
}

// String returns the single-letter code shown in the process table.
func (s ProcessState) String() string {
	if s < 0 || int(s) >= len(stateLetters) {
		return "?"
	}
	return stateLetters[s]
}

// Name returns the long state name shown in the detail view.
func (s ProcessState) Name() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// AggregateCPU returns the truncated mean of per-core usage, or 0 with no cores.
func AggregateCPU(perCore []float64) uint64 {
	if len(perCore) == 0 {
		return 0
	}
	var sum float64
	for _, v := range perCore {
		sum += v
	}
	return uint64(sum / float64(len(perCore)))
}

// Normalize recomputes the derived fields of a snapshot: the aggregate CPU
// usage and each process's memory percentage against the live memory total.
func (s *Snapshot) Normalize() {
	s.CPU.Usage = AggregateCPU(s.CPU.PerCore)
	for i := range s.Processes {
		s.Processes[i].MemoryPercent = memoryPercent(s.Processes[i].MemoryMB, s.Memory.TotalMB)
	}
}

func memoryPercent(usedMB, totalMB uint64) float64 {
	if totalMB == 0 {
		return 0
	}
	return float64(usedMB) / float64(totalMB) * 100
}

// Clone returns a deep copy so callers can mutate slices without aliasing.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.CPU.PerCore = append([]float64(nil), s.CPU.PerCore...)
	out.Disks = append([]Disk(nil), s.Disks...)
	out.Network = append([]NetworkInterface(nil), s.Network...)
	out.Processes = append([]Process(nil), s.Processes...)
	return out
}

// FindProcess returns the process with the given pid.
func (s *Snapshot) FindProcess(pid uint32) (Process, bool) {
	for _, p := range s.Processes {
		if p.PID == pid {
			return p, true
		}
	}
	return Process{}, false
}
