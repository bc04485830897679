package metrics

import (
	"context"
	"net/netip"
	"path/filepath"
	"runtime"
	"strings"
	"time"
	"unicode"

	"github.com/rileyhilliard/pulse/internal/errors"
	"github.com/rileyhilliard/pulse/internal/logger"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	bytesPerKB = 1024
	bytesPerMB = 1024 * 1024
	bytesPerGB = 1024 * 1024 * 1024
)

type ioSample struct {
	read  uint64
	write uint64
}

// HostSampler is a Source backed by gopsutil. Throughput figures are
// computed from counter deltas between consecutive samples, so the first
// sample reports zero rates.
type HostSampler struct {
	log logger.Logger
	now func() time.Time

	last     time.Time
	cpuModel string
	cpuMHz   float64
	numCPU   int

	prevDisk    map[string]ioSample
	prevNet     map[string]ioSample
	prevProcIO  map[int32]ioSample
	prevProcCPU map[int32]float64
}

// NewHostSampler creates a sampler for the local machine.
func NewHostSampler(log logger.Logger) *HostSampler {
	if log == nil {
		log = logger.Noop()
	}
	return &HostSampler{
		log:         log,
		now:         time.Now,
		numCPU:      runtime.NumCPU(),
		prevDisk:    make(map[string]ioSample),
		prevNet:     make(map[string]ioSample),
		prevProcIO:  make(map[int32]ioSample),
		prevProcCPU: make(map[int32]float64),
	}
}

// Sample reads every subsystem once. Only memory and process enumeration
// failures are reported; the rest degrade to zero values with a debug log.
func (s *HostSampler) Sample(ctx context.Context) (Snapshot, error) {
	now := s.now()
	var elapsed float64
	if !s.last.IsZero() {
		elapsed = now.Sub(s.last).Seconds()
	}
	s.last = now

	var snap Snapshot

	if info, err := host.InfoWithContext(ctx); err == nil {
		snap.Hostname = info.Hostname
		snap.Kernel = info.KernelVersion
		snap.OS = osName(info)
		snap.Uptime = time.Duration(info.Uptime) * time.Second
	} else {
		s.log.Debug("host info: %v", err)
	}

	if avg, err := load.AvgWithContext(ctx); err == nil {
		snap.Load = LoadAverage{One: avg.Load1, Five: avg.Load5, Fifteen: avg.Load15}
	} else {
		s.log.Debug("load average: %v", err)
	}

	s.sampleCPU(ctx, &snap)

	if err := s.sampleMemory(ctx, &snap); err != nil {
		return Snapshot{}, err
	}

	s.sampleDisks(ctx, &snap, elapsed)
	s.sampleNetwork(ctx, &snap, elapsed)

	if err := s.sampleProcesses(ctx, &snap, now, elapsed); err != nil {
		return Snapshot{}, err
	}

	snap.Normalize()
	return snap, nil
}

func osName(info *host.InfoStat) string {
	if info.Platform == "" {
		return info.OS
	}
	name := info.Platform
	if info.PlatformVersion != "" {
		name += " " + info.PlatformVersion
	}
	return name
}

func (s *HostSampler) sampleCPU(ctx context.Context, snap *Snapshot) {
	perCore, err := cpu.PercentWithContext(ctx, 0, true)
	if err != nil {
		s.log.Debug("cpu percent: %v", err)
	}
	snap.CPU.PerCore = perCore

	if s.cpuModel == "" {
		if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
			s.cpuModel = strings.TrimSpace(infos[0].ModelName)
			s.cpuMHz = infos[0].Mhz
		} else if err != nil {
			s.log.Debug("cpu info: %v", err)
		}
	}
	snap.CPU.Model = s.cpuModel
	snap.CPU.FrequencyMHz = s.cpuMHz

	// Sensor reads often return partial results alongside a warning error.
	temps, _ := host.SensorsTemperaturesWithContext(ctx)
	snap.CPU.TemperatureC = cpuTemperature(temps)
}

// cpuTemperature prefers package/core sensors and falls back to the hottest reading.
func cpuTemperature(temps []host.TemperatureStat) float64 {
	var best, hottest float64
	for _, t := range temps {
		key := strings.ToLower(t.SensorKey)
		if t.Temperature > hottest {
			hottest = t.Temperature
		}
		if strings.Contains(key, "coretemp") || strings.Contains(key, "k10temp") ||
			strings.Contains(key, "package") || strings.Contains(key, "cpu") {
			if t.Temperature > best {
				best = t.Temperature
			}
		}
	}
	if best > 0 {
		return best
	}
	return hottest
}

func (s *HostSampler) sampleMemory(ctx context.Context, snap *Snapshot) error {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return errors.Wrap(err, "Failed to read memory stats")
	}
	snap.Memory = Memory{
		TotalMB:     vm.Total / bytesPerMB,
		UsedMB:      vm.Used / bytesPerMB,
		FreeMB:      vm.Free / bytesPerMB,
		AvailableMB: vm.Available / bytesPerMB,
		CachedMB:    vm.Cached / bytesPerMB,
		BuffersMB:   vm.Buffers / bytesPerMB,
	}
	if snap.Memory.UsedMB > snap.Memory.TotalMB {
		snap.Memory.UsedMB = snap.Memory.TotalMB
	}

	if sw, err := mem.SwapMemoryWithContext(ctx); err == nil {
		snap.Memory.SwapTotalMB = sw.Total / bytesPerMB
		snap.Memory.SwapUsedMB = sw.Used / bytesPerMB
		snap.Memory.SwapFreeMB = sw.Free / bytesPerMB
	} else {
		s.log.Debug("swap: %v", err)
	}
	return nil
}

func (s *HostSampler) sampleDisks(ctx context.Context, snap *Snapshot, elapsed float64) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		s.log.Debug("disk partitions: %v", err)
		return
	}

	counters, err := disk.IOCountersWithContext(ctx)
	if err != nil {
		s.log.Debug("disk io counters: %v", err)
	}

	seen := make(map[string]bool)
	next := make(map[string]ioSample, len(counters))
	for _, p := range parts {
		name := filepath.Base(p.Device)
		if seen[p.Device] || strings.HasPrefix(name, "loop") {
			continue
		}
		seen[p.Device] = true

		usage, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil || usage.Total == 0 {
			continue
		}

		d := Disk{
			Name:       name,
			MountPoint: p.Mountpoint,
			TotalGB:    usage.Total / bytesPerGB,
			UsedGB:     usage.Used / bytesPerGB,
			FreeGB:     usage.Free / bytesPerGB,
			DeviceType: deviceType(name, p.Fstype),
		}
		if c, ok := counters[name]; ok {
			cur := ioSample{read: c.ReadBytes, write: c.WriteBytes}
			next[name] = cur
			if prev, ok := s.prevDisk[name]; ok {
				d.ReadMBs = rate(prev.read, cur.read, elapsed, bytesPerMB)
				d.WriteMBs = rate(prev.write, cur.write, elapsed, bytesPerMB)
			}
		}
		snap.Disks = append(snap.Disks, d)
	}
	s.prevDisk = next
}

func deviceType(name, fstype string) string {
	switch {
	case strings.HasPrefix(name, "nvme"):
		return "NVMe"
	case strings.HasPrefix(name, "mmcblk"):
		return "MMC"
	case strings.HasPrefix(name, "sd"), strings.HasPrefix(name, "vd"), strings.HasPrefix(name, "xvd"):
		return "Disk"
	case strings.HasPrefix(name, "disk"):
		return "APFS"
	}
	return strings.ToUpper(fstype)
}

func (s *HostSampler) sampleNetwork(ctx context.Context, snap *Snapshot, elapsed float64) {
	ifaces, err := net.InterfacesWithContext(ctx)
	if err != nil {
		s.log.Debug("net interfaces: %v", err)
		return
	}

	counters, err := net.IOCountersWithContext(ctx, true)
	if err != nil {
		s.log.Debug("net io counters: %v", err)
	}
	byName := make(map[string]net.IOCountersStat, len(counters))
	for _, c := range counters {
		byName[c.Name] = c
	}

	next := make(map[string]ioSample, len(counters))
	for _, iface := range ifaces {
		if hasFlag(iface.Flags, "loopback") {
			continue
		}
		ni := NetworkInterface{
			Name:   iface.Name,
			IP:     firstIPv4(iface.Addrs),
			MAC:    iface.HardwareAddr,
			Status: "down",
		}
		if hasFlag(iface.Flags, "up") {
			ni.Status = "up"
		}
		if c, ok := byName[iface.Name]; ok {
			cur := ioSample{read: c.BytesRecv, write: c.BytesSent}
			next[iface.Name] = cur
			if prev, ok := s.prevNet[iface.Name]; ok {
				ni.RxKBs = rate(prev.read, cur.read, elapsed, bytesPerKB)
				ni.TxKBs = rate(prev.write, cur.write, elapsed, bytesPerKB)
			}
		}
		snap.TotalRx += ni.RxKBs
		snap.TotalTx += ni.TxKBs
		snap.Network = append(snap.Network, ni)
	}
	s.prevNet = next
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if f == want {
			return true
		}
	}
	return false
}

func firstIPv4(addrs net.InterfaceAddrList) string {
	for _, a := range addrs {
		prefix, err := netip.ParsePrefix(a.Addr)
		if err != nil {
			continue
		}
		if prefix.Addr().Is4() {
			return prefix.Addr().String()
		}
	}
	return ""
}

func (s *HostSampler) sampleProcesses(ctx context.Context, snap *Snapshot, now time.Time, elapsed float64) error {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return errors.Wrap(err, "Failed to list processes")
	}

	nextIO := make(map[int32]ioSample, len(procs))
	nextCPU := make(map[int32]float64, len(procs))

	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil || name == "" {
			// Exited between listing and reading, or a nameless kernel task.
			continue
		}

		rec := Process{
			PID:  uint32(p.Pid),
			Name: sanitize(name),
		}
		if ppid, err := p.PpidWithContext(ctx); err == nil && ppid >= 0 {
			rec.PPID = uint32(ppid)
		}

		cmdline, _ := p.CmdlineWithContext(ctx)
		rec.FullCommand = sanitize(cmdline)
		rec.Command = shortCommand(rec.FullCommand, rec.Name)
		if rec.FullCommand == "" {
			rec.FullCommand = "[" + rec.Name + "]"
		}

		if user, err := p.UsernameWithContext(ctx); err == nil {
			rec.User = user
		}

		if times, err := p.TimesWithContext(ctx); err == nil {
			busy := times.User + times.System
			nextCPU[p.Pid] = busy
			if prev, ok := s.prevProcCPU[p.Pid]; ok && elapsed > 0 && busy >= prev {
				pct := (busy - prev) / elapsed / float64(max(s.numCPU, 1)) * 100
				rec.CPUPercent = clampFloat(pct, 0, 100)
			}
		}

		if mi, err := p.MemoryInfoWithContext(ctx); err == nil && mi != nil {
			rec.MemoryMB = mi.RSS / bytesPerMB
		}

		if status, err := p.StatusWithContext(ctx); err == nil && len(status) > 0 {
			rec.State = parseStatus(status[0])
		} else {
			rec.State = StateSleeping
		}

		if nice, err := p.NiceWithContext(ctx); err == nil {
			rec.Nice = nice
			rec.Priority = 20 + nice
		}

		if threads, err := p.NumThreadsWithContext(ctx); err == nil && threads > 0 {
			rec.Threads = uint32(threads)
		}

		if created, err := p.CreateTimeWithContext(ctx); err == nil && created > 0 {
			start := time.UnixMilli(created)
			rec.StartTime = start.Format("15:04:05")
			if now.After(start) {
				rec.Uptime = now.Sub(start).Truncate(time.Second)
			}
		}

		if io, err := p.IOCountersWithContext(ctx); err == nil && io != nil {
			cur := ioSample{read: io.ReadBytes, write: io.WriteBytes}
			nextIO[p.Pid] = cur
			if prev, ok := s.prevProcIO[p.Pid]; ok {
				rec.ReadKBs = rate(prev.read, cur.read, elapsed, bytesPerKB)
				rec.WriteKBs = rate(prev.write, cur.write, elapsed, bytesPerKB)
			}
		}

		snap.Processes = append(snap.Processes, rec)
		snap.ThreadCount += int(rec.Threads)
	}

	snap.ProcessCount = len(procs)
	s.prevProcIO = nextIO
	s.prevProcCPU = nextCPU
	return nil
}

// parseStatus maps gopsutil status names onto ProcessState.
func parseStatus(status string) ProcessState {
	switch status {
	case process.Running:
		return StateRunning
	case process.Sleep:
		return StateSleeping
	case process.Blocked, process.Wait:
		return StateWaiting
	case process.Zombie:
		return StateZombie
	case process.Stop:
		return StateStopped
	case process.Idle:
		return StateIdle
	case process.Lock:
		return StateWaiting
	}
	return StateSleeping
}

// rate converts a counter delta into units per second. Counter resets yield 0.
func rate(prev, cur uint64, elapsed float64, unit uint64) uint64 {
	if elapsed <= 0 || cur < prev {
		return 0
	}
	return uint64(float64(cur-prev) / float64(unit) / elapsed)
}

// shortCommand returns the executable name from a command line.
func shortCommand(cmdline, name string) string {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return name
	}
	return filepath.Base(fields[0])
}

// sanitize strips combining marks and control characters that break column widths.
func sanitize(s string) string {
	if s == "" {
		return s
	}
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(func(r rune) rune {
			if unicode.IsControl(r) {
				return ' '
			}
			return r
		}),
		norm.NFC,
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return strings.TrimSpace(out)
}
