package health

import (
	"context"
	"fmt"
)

// UsageFunc reports current use and the limit of a bounded resource.
// A limit of zero or less means the resource is unbounded.
type UsageFunc func() (used, limit int)

// CapacityChecker reports how full a bounded resource is, such as a cache or
// a bulkhead.
type CapacityChecker struct {
	name       string
	usage      UsageFunc
	thresholds Thresholds
}

// NewCapacityChecker creates a checker over usage. Zero thresholds default to
// degraded at 90% and never unhealthy.
func NewCapacityChecker(name string, usage UsageFunc, t Thresholds) *CapacityChecker {
	if t.Warning <= 0 || t.Warning > 1 {
		t.Warning = 0.9
	}
	return &CapacityChecker{name: name, usage: usage, thresholds: t}
}

// Name returns the name of this checker.
func (c *CapacityChecker) Name() string {
	return c.name
}

// Check performs the capacity check.
func (c *CapacityChecker) Check(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return Unhealthy("context cancelled", err)
	}

	used, limit := c.usage()
	details := map[string]any{"used": used}

	if limit <= 0 {
		return Healthy(fmt.Sprintf("%s unbounded: %d in use", c.name, used)).WithDetails(details)
	}

	ratio := float64(used) / float64(limit)
	details["limit"] = limit
	details["usage_percent"] = ratio * 100

	msg := fmt.Sprintf("%s at %.1f%% of capacity", c.name, ratio*100)
	switch c.thresholds.Classify(ratio) {
	case StatusUnhealthy:
		return Unhealthy(msg, ErrCheckFailed).WithDetails(details)
	case StatusDegraded:
		return Degraded(msg).WithDetails(details)
	default:
		return Healthy(msg).WithDetails(details)
	}
}
