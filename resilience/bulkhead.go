package resilience

import (
	"context"
	"sync/atomic"
	"time"
)

// BulkheadConfig configures the bulkhead.
type BulkheadConfig struct {
	// MaxConcurrent is the maximum number of concurrent operations.
	// Default: 10
	MaxConcurrent int

	// MaxWait is the maximum time to wait for a slot.
	// Default: 0 (no waiting, fail immediately)
	MaxWait time.Duration
}

// Bulkhead limits concurrent operations.
type Bulkhead struct {
	config BulkheadConfig
	sem    chan struct{}

	active    atomic.Int64
	maxActive atomic.Int64
	rejected  atomic.Int64
}

// NewBulkhead creates a new bulkhead.
func NewBulkhead(config BulkheadConfig) *Bulkhead {
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = 10
	}

	return &Bulkhead{
		config: config,
		sem:    make(chan struct{}, config.MaxConcurrent),
	}
}

// Acquire takes a slot, waiting up to MaxWait.
// Returns ErrBulkheadFull if no slot became available.
func (b *Bulkhead) Acquire(ctx context.Context) error {
	select {
	case b.sem <- struct{}{}:
		b.enter()
		return nil
	default:
	}

	if b.config.MaxWait <= 0 {
		b.rejected.Add(1)
		return ErrBulkheadFull
	}

	timer := time.NewTimer(b.config.MaxWait)
	defer timer.Stop()

	select {
	case b.sem <- struct{}{}:
		b.enter()
		return nil
	case <-timer.C:
		b.rejected.Add(1)
		return ErrBulkheadFull
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bulkhead) enter() {
	n := b.active.Add(1)
	for {
		peak := b.maxActive.Load()
		if n <= peak || b.maxActive.CompareAndSwap(peak, n) {
			return
		}
	}
}

// Release returns a slot taken by Acquire.
func (b *Bulkhead) Release() {
	select {
	case <-b.sem:
		b.active.Add(-1)
	default:
	}
}

// Execute runs op while holding a slot.
func (b *Bulkhead) Execute(ctx context.Context, op func(context.Context) error) error {
	if err := b.Acquire(ctx); err != nil {
		return err
	}
	defer b.Release()

	return op(ctx)
}

// Usage returns slots in use and the slot limit.
func (b *Bulkhead) Usage() (used, limit int) {
	return int(b.active.Load()), b.config.MaxConcurrent
}

// Metrics returns current bulkhead statistics.
func (b *Bulkhead) Metrics() BulkheadMetrics {
	active := int(b.active.Load())
	return BulkheadMetrics{
		Active:        active,
		MaxActive:     int(b.maxActive.Load()),
		Available:     b.config.MaxConcurrent - active,
		MaxConcurrent: b.config.MaxConcurrent,
		Rejected:      b.rejected.Load(),
	}
}

// BulkheadMetrics contains bulkhead statistics.
type BulkheadMetrics struct {
	Active        int
	MaxActive     int
	Available     int
	MaxConcurrent int
	Rejected      int64
}
