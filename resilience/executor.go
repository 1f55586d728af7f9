package resilience

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Rejection reasons recorded on jugsolver.admission.rejected.
const (
	ReasonRateLimit = "rate_limit"
	ReasonBulkhead  = "bulkhead"
	ReasonCancelled = "cancelled"
)

// Executor admits operations through an optional rate limiter and an
// optional bulkhead, in that order, so a rate limited request never holds
// a slot.
type Executor struct {
	rateLimiter *RateLimiter
	bulkhead    *Bulkhead
	rejected    metric.Int64Counter
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// NewExecutor creates an executor. With no options it runs operations directly.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithRateLimiter admits operations only while rl grants tokens.
func WithRateLimiter(rl *RateLimiter) ExecutorOption {
	return func(e *Executor) { e.rateLimiter = rl }
}

// WithBulkhead runs each admitted operation while holding a slot of b.
func WithBulkhead(b *Bulkhead) ExecutorOption {
	return func(e *Executor) { e.bulkhead = b }
}

// WithMeter counts rejections on meter. A nil meter or an instrument
// error leaves the executor uninstrumented.
func WithMeter(meter metric.Meter) ExecutorOption {
	return func(e *Executor) {
		if meter == nil {
			return
		}
		c, err := meter.Int64Counter("jugsolver.admission.rejected",
			metric.WithDescription("Operations refused by admission control"),
			metric.WithUnit("{operation}"),
		)
		if err == nil {
			e.rejected = c
		}
	}
}

// Bulkhead returns the configured bulkhead, or nil.
func (e *Executor) Bulkhead() *Bulkhead {
	return e.bulkhead
}

// Execute runs op once it is admitted. A refused operation returns
// ErrRateLimitExceeded, ErrBulkheadFull or the context error, and op is
// not called.
func (e *Executor) Execute(ctx context.Context, op func(context.Context) error) error {
	if e.rateLimiter != nil {
		if err := e.rateLimiter.Wait(ctx); err != nil {
			e.reject(ctx, err)
			return err
		}
	}

	if e.bulkhead != nil {
		if err := e.bulkhead.Acquire(ctx); err != nil {
			e.reject(ctx, err)
			return err
		}
		defer e.bulkhead.Release()
	}

	return op(ctx)
}

func (e *Executor) reject(ctx context.Context, err error) {
	if e.rejected == nil {
		return
	}
	reason := ReasonCancelled
	switch {
	case errors.Is(err, ErrRateLimitExceeded):
		reason = ReasonRateLimit
	case errors.Is(err, ErrBulkheadFull):
		reason = ReasonBulkhead
	}
	e.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
