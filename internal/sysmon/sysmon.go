// Package sysmon provides system-wide CPU, memory and load sampling.
package sysmon

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
	Load1      float64 // 1-minute load average (0 on unsupported platforms)
}

// Sample collects a single system-wide resource snapshot.
// CPU uses interval=0 (delta since last call). Fields are left at zero when
// the underlying probe fails, so a partial snapshot is still usable.
func Sample() Stats {
	var s Stats
	if cpuPcts, err := cpu.Percent(0, false); err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	if vmem, err := mem.VirtualMemory(); err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	if avg, err := load.Avg(); err == nil && avg != nil {
		s.Load1 = avg.Load1
	}
	return s
}
