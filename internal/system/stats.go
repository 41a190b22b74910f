package system

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// SystemStats represents host and process statistics of the API server
type SystemStats struct {
	Hostname  string       `json:"hostname"`
	Host      HostStats    `json:"host"`
	CPU       CPUStats     `json:"cpu"`
	Memory    MemoryStats  `json:"memory"`
	Disk      DiskStats    `json:"disk"`
	Process   ProcessStats `json:"process"`
	Timestamp time.Time    `json:"timestamp"`
}

// HostStats represents operating system information
type HostStats struct {
	OS              string `json:"os"`
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platform_version"`
	KernelVersion   string `json:"kernel_version"`
	UptimeSeconds   uint64 `json:"uptime_seconds"`
}

// CPUStats represents CPU usage statistics
type CPUStats struct {
	UsagePercent float64 `json:"usage_percent"`
	Cores        int     `json:"cores"`
}

// MemoryStats represents memory usage statistics
type MemoryStats struct {
	Total        uint64  `json:"total_bytes"`
	Used         uint64  `json:"used_bytes"`
	Free         uint64  `json:"free_bytes"`
	Available    uint64  `json:"available_bytes"`
	UsagePercent float64 `json:"usage_percent"`
}

// DiskStats represents disk usage statistics
type DiskStats struct {
	Total        uint64  `json:"total_bytes"`
	Used         uint64  `json:"used_bytes"`
	Free         uint64  `json:"free_bytes"`
	UsagePercent float64 `json:"usage_percent"`
	Path         string  `json:"path"`
}

// ProcessStats represents the API server process itself
type ProcessStats struct {
	PID           int32   `json:"pid"`
	RSSBytes      uint64  `json:"rss_bytes"`
	CPUPercent    float64 `json:"cpu_percent"`
	Goroutines    int     `json:"goroutines"`
	UptimeSeconds int64   `json:"uptime_seconds"`
	GoVersion     string  `json:"go_version"`
}

// Collector collects system statistics
type Collector struct {
	diskPath  string
	startedAt time.Time
}

// NewCollector creates a collector reporting disk usage for diskPath
// (the data directory, or / when empty)
func NewCollector(diskPath string) *Collector {
	if diskPath == "" {
		diskPath = "/"
	}
	return &Collector{
		diskPath:  diskPath,
		startedAt: time.Now(),
	}
}

// GetSystemStats retrieves system statistics. Individual probes that fail
// are logged and reported as zero values.
func (c *Collector) GetSystemStats(ctx context.Context) (*SystemStats, error) {
	slog.DebugContext(ctx, "collecting system statistics")

	var hostStats HostStats
	var cpuStats CPUStats
	var memStats MemoryStats
	var diskStats DiskStats
	var procStats ProcessStats

	var wg sync.WaitGroup
	wg.Add(5)

	go func() {
		defer wg.Done()
		hostStats = c.getHostStats(ctx)
	}()

	go func() {
		defer wg.Done()
		cpuStats = c.getCPUStats(ctx)
	}()

	go func() {
		defer wg.Done()
		memStats = c.getMemoryStats(ctx)
	}()

	go func() {
		defer wg.Done()
		diskStats = c.getDiskStats(ctx, c.diskPath)
	}()

	go func() {
		defer wg.Done()
		procStats = c.getProcessStats(ctx)
	}()

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats := &SystemStats{
		Hostname:  c.getHostname(),
		Host:      hostStats,
		CPU:       cpuStats,
		Memory:    memStats,
		Disk:      diskStats,
		Process:   procStats,
		Timestamp: time.Now(),
	}

	slog.DebugContext(ctx, "system statistics collected successfully",
		"cpu_usage", cpuStats.UsagePercent,
		"memory_usage", memStats.UsagePercent,
		"disk_usage", diskStats.UsagePercent)

	return stats, nil
}

func (c *Collector) getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		slog.Warn("failed to get hostname", "error", err)
		return "unknown"
	}
	return hostname
}

func (c *Collector) getHostStats(ctx context.Context) HostStats {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		slog.Warn("failed to get host info", "error", err)
		return HostStats{OS: runtime.GOOS}
	}
	return HostStats{
		OS:              info.OS,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		KernelVersion:   info.KernelVersion,
		UptimeSeconds:   info.Uptime,
	}
}

// getCPUStats retrieves CPU usage statistics
func (c *Collector) getCPUStats(ctx context.Context) CPUStats {
	cores, err := cpu.CountsWithContext(ctx, true)
	if err != nil || cores < 1 {
		slog.Warn("failed to get CPU count", "error", err)
		cores = runtime.NumCPU()
	}

	// A zero interval compares against the previous call instead of blocking
	percentages, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		slog.Warn("failed to get CPU usage", "error", err)
		return CPUStats{Cores: cores}
	}

	usagePercent := 0.0
	if len(percentages) > 0 {
		usagePercent = percentages[0]
	}

	return CPUStats{
		UsagePercent: usagePercent,
		Cores:        cores,
	}
}

// getMemoryStats retrieves memory usage statistics
func (c *Collector) getMemoryStats(ctx context.Context) MemoryStats {
	vmStat, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		slog.Warn("failed to get memory stats", "error", err)
		return MemoryStats{}
	}

	return MemoryStats{
		Total:        vmStat.Total,
		Used:         vmStat.Used,
		Free:         vmStat.Free,
		Available:    vmStat.Available,
		UsagePercent: vmStat.UsedPercent,
	}
}

// getDiskStats retrieves disk usage statistics for a given path
func (c *Collector) getDiskStats(ctx context.Context, path string) DiskStats {
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		slog.Warn("failed to get disk stats", "path", path, "error", err)
		return DiskStats{Path: path}
	}

	return DiskStats{
		Total:        usage.Total,
		Used:         usage.Used,
		Free:         usage.Free,
		UsagePercent: usage.UsedPercent,
		Path:         path,
	}
}

func (c *Collector) getProcessStats(ctx context.Context) ProcessStats {
	pid := int32(os.Getpid())
	stats := ProcessStats{
		PID:           pid,
		Goroutines:    runtime.NumGoroutine(),
		UptimeSeconds: int64(time.Since(c.startedAt).Seconds()),
		GoVersion:     runtime.Version(),
	}

	proc, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		slog.Warn("failed to inspect own process", "error", err)
		return stats
	}
	if memInfo, err := proc.MemoryInfoWithContext(ctx); err == nil {
		stats.RSSBytes = memInfo.RSS
	}
	if pct, err := proc.CPUPercentWithContext(ctx); err == nil {
		stats.CPUPercent = pct
	}
	return stats
}
