package crawlers

import (
	"fmt"
	"time"

	"github.com/RecoveryAshes/PdfWalker/internal/utils"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// ResourceConfig 资源检查配置
type ResourceConfig struct {
	// MinAvailableMemory 启动浏览器所需的最小可用内存(字节)
	MinAvailableMemory uint64

	// CPULoadThreshold CPU负载告警阈值(百分比)
	CPULoadThreshold float64
}

// DefaultResourceConfig 默认资源检查配置
func DefaultResourceConfig() ResourceConfig {
	return ResourceConfig{
		MinAvailableMemory: 500 * 1024 * 1024, // 500MB
		CPULoadThreshold:   90,                // 90%
	}
}

// ResourceSnapshot 系统资源快照
type ResourceSnapshot struct {
	AvailableMemory uint64  // 可用内存(字节)
	TotalMemory     uint64  // 总内存(字节)
	CPUPercent      float64 // CPU使用率(百分比)
}

// ResourceMonitor 资源监控器
// 在启动无头浏览器前检查系统内存和CPU负载,避免在资源紧张的机器上拖垮系统
type ResourceMonitor struct {
	config ResourceConfig
}

// NewResourceMonitor 创建资源监控器
func NewResourceMonitor(config ResourceConfig) *ResourceMonitor {
	return &ResourceMonitor{config: config}
}

// Snapshot 采集当前系统资源快照
func (rm *ResourceMonitor) Snapshot() (*ResourceSnapshot, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil, fmt.Errorf("获取内存信息失败: %w", err)
	}

	snapshot := &ResourceSnapshot{
		AvailableMemory: vm.Available,
		TotalMemory:     vm.Total,
	}

	// 100ms采样窗口,取整机平均值
	percents, err := cpu.Percent(100*time.Millisecond, false)
	if err == nil && len(percents) > 0 {
		snapshot.CPUPercent = percents[0]
	}

	return snapshot, nil
}

// CheckBeforeLaunch 浏览器启动前的资源检查
// 可用内存不足或CPU负载过高时返回错误,由调用方决定是否继续
func (rm *ResourceMonitor) CheckBeforeLaunch() error {
	snapshot, err := rm.Snapshot()
	if err != nil {
		return err
	}

	utils.Debugf("系统资源: 可用内存 %dMB / %dMB, CPU %.1f%%",
		snapshot.AvailableMemory/1024/1024, snapshot.TotalMemory/1024/1024, snapshot.CPUPercent)

	if snapshot.AvailableMemory < rm.config.MinAvailableMemory {
		return fmt.Errorf("可用内存不足: %dMB (需要至少 %dMB)",
			snapshot.AvailableMemory/1024/1024, rm.config.MinAvailableMemory/1024/1024)
	}

	if snapshot.CPUPercent > rm.config.CPULoadThreshold {
		return fmt.Errorf("CPU负载过高: %.1f%% (阈值 %.1f%%)",
			snapshot.CPUPercent, rm.config.CPULoadThreshold)
	}

	return nil
}
