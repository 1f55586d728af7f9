package health

import (
	"context"
	"fmt"
	"runtime"
)

// MemoryCheckerConfig configures the memory health checker.
type MemoryCheckerConfig struct {
	// Thresholds apply to heap allocation as a fraction of MaxAlloc.
	// Defaults: warning 0.8, critical 0.95.
	Thresholds Thresholds

	// MaxAlloc is the expected allocation ceiling in bytes.
	// If zero, memory obtained from the OS is used.
	MaxAlloc uint64
}

// MemoryChecker checks heap usage.
type MemoryChecker struct {
	config MemoryCheckerConfig
}

// NewMemoryChecker creates a new memory health checker.
func NewMemoryChecker(config MemoryCheckerConfig) *MemoryChecker {
	t := &config.Thresholds
	if t.Warning <= 0 || t.Warning >= 1 {
		t.Warning = 0.8
	}
	if t.Critical <= 0 || t.Critical >= 1 {
		t.Critical = 0.95
	}
	if t.Critical < t.Warning {
		t.Critical = min(t.Warning+0.1, 0.99)
	}
	return &MemoryChecker{config: config}
}

// Name returns the name of this checker.
func (m *MemoryChecker) Name() string {
	return "memory"
}

// Check performs the memory health check.
func (m *MemoryChecker) Check(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return Unhealthy("context cancelled", err)
	}

	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	maxAlloc := m.config.MaxAlloc
	if maxAlloc == 0 {
		maxAlloc = stats.Sys
	}
	if maxAlloc == 0 {
		return Healthy("memory stats unavailable")
	}

	ratio := float64(stats.Alloc) / float64(maxAlloc)
	details := map[string]any{
		"alloc_bytes":   stats.Alloc,
		"max_alloc":     maxAlloc,
		"usage_percent": ratio * 100,
		"heap_objects":  stats.HeapObjects,
		"num_gc":        stats.NumGC,
		"goroutines":    runtime.NumGoroutine(),
	}

	switch m.config.Thresholds.Classify(ratio) {
	case StatusUnhealthy:
		return Unhealthy(fmt.Sprintf("memory usage critical: %.1f%%", ratio*100), ErrCheckFailed).WithDetails(details)
	case StatusDegraded:
		return Degraded(fmt.Sprintf("memory usage high: %.1f%%", ratio*100)).WithDetails(details)
	default:
		return Healthy(fmt.Sprintf("memory usage normal: %.1f%%", ratio*100)).WithDetails(details)
	}
}
