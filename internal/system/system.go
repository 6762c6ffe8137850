package system

import (
	"fmt"
	"os"
	"syscall"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
	"github.com/sirupsen/logrus"
)

// InitResourceLimits raises the open file limit. Directory and PDF batches
// keep one decoder and one encoder file open per worker.
func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		logrus.Warnf("cannot read open file limit: %v", err)
		return
	}

	if rLimit.Cur >= 2048 {
		return
	}
	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		logrus.Warnf("cannot raise open file limit: %v", err)
	} else {
		logrus.Debugf("open file limit raised to %d", rLimit.Cur)
	}
}

// MemoryStats is a snapshot of process and host memory.
type MemoryStats struct {
	ProcessRSS      uint64
	HostTotal       uint64
	HostAvailable   uint64
	HostUsedPercent float64
}

// ReadMemoryStats samples the current process and the host.
func ReadMemoryStats() (MemoryStats, error) {
	var stats MemoryStats

	vm, err := mem.VirtualMemory()
	if err != nil {
		return stats, fmt.Errorf("host memory: %w", err)
	}
	stats.HostTotal = vm.Total
	stats.HostAvailable = vm.Available
	stats.HostUsedPercent = vm.UsedPercent

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return stats, fmt.Errorf("process handle: %w", err)
	}
	info, err := proc.MemoryInfo()
	if err != nil {
		return stats, fmt.Errorf("process memory: %w", err)
	}
	stats.ProcessRSS = info.RSS

	return stats, nil
}

func (s MemoryStats) String() string {
	return fmt.Sprintf("rss %.1f MiB, host %.1f/%.1f MiB available (%.0f%% used)",
		mib(s.ProcessRSS), mib(s.HostAvailable), mib(s.HostTotal), s.HostUsedPercent)
}

func mib(b uint64) float64 {
	return float64(b) / (1 << 20)
}
