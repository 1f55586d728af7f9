package observe

import (
	"context"
	"fmt"
	"time"
)

// ExecuteFunc is the signature Middleware wraps.
type ExecuteFunc func(ctx context.Context, op Operation, input any) (any, error)

// CacheReporter is implemented by results that may have been served from a
// cache. Middleware records the outcome in metrics and logs.
type CacheReporter interface {
	CacheHit() bool
}

// Middleware wraps operations with tracing, metrics and logging.
//
// Contract:
//   - Concurrency: Wrap() returns a thread-safe ExecuteFunc.
//   - Context: Propagates context through tracing spans.
//   - Errors: Errors from wrapped function are recorded and propagated unchanged.
//   - Ownership: Input/output values are passed through without modification.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a new Middleware with the given observability components.
// Nil components are replaced with no-ops.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	if tracer == nil {
		tracer = newNoopTracer()
	}
	if metrics == nil {
		metrics = &noopMetrics{}
	}
	if logger == nil {
		logger = NopLogger()
	}
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Wrap wraps an ExecuteFunc with tracing, metrics, and logging.
//
// Each call emits one log entry. Inputs implementing fmt.Stringer are logged
// under "problem".
func (m *Middleware) Wrap(fn ExecuteFunc) ExecuteFunc {
	return func(ctx context.Context, op Operation, input any) (any, error) {
		ctx, span := m.tracer.StartSpan(ctx, op)
		start := time.Now()

		result, err := fn(ctx, op, input)

		duration := time.Since(start)
		hit := false
		if r, ok := result.(CacheReporter); ok && err == nil {
			hit = r.CacheHit()
		}

		m.tracer.EndSpan(span, err)
		m.metrics.RecordExecution(ctx, op, duration, hit, err)

		fields := []Field{
			{Key: "duration_ms", Value: float64(duration) / float64(time.Millisecond)},
			{Key: "cache_hit", Value: hit},
		}
		if s, ok := input.(fmt.Stringer); ok {
			fields = append(fields, Field{Key: "problem", Value: s.String()})
		}

		opLogger := m.logger.WithOperation(op)
		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			opLogger.Warn(ctx, "operation failed", fields...)
		} else {
			opLogger.Info(ctx, "operation completed", fields...)
		}

		return result, err
	}
}

// MiddlewareFromObserver creates a Middleware from an Observer.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}
