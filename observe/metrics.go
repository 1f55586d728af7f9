package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records operation metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordExecution records one operation with its duration, cache outcome
	// and error status.
	RecordExecution(ctx context.Context, op Operation, duration time.Duration, cacheHit bool, err error)
}

type metricsImpl struct {
	totalCount   metric.Int64Counter
	errorCount   metric.Int64Counter
	cacheHits    metric.Int64Counter
	durationHist metric.Float64Histogram
}

// NewMetrics creates Metrics instruments on the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	if meter == nil {
		return &noopMetrics{}, nil
	}

	totalCount, err := meter.Int64Counter(
		"jugsolver.op.total",
		metric.WithDescription("Total number of operations"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"jugsolver.op.errors",
		metric.WithDescription("Total number of failed operations"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	cacheHits, err := meter.Int64Counter(
		"jugsolver.op.cache_hits",
		metric.WithDescription("Operations answered from the solution cache"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"jugsolver.op.duration_ms",
		metric.WithDescription("Operation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		totalCount:   totalCount,
		errorCount:   errorCount,
		cacheHits:    cacheHits,
		durationHist: durationHist,
	}, nil
}

func (m *metricsImpl) RecordExecution(ctx context.Context, op Operation, duration time.Duration, cacheHit bool, err error) {
	opt := metric.WithAttributes(op.attributes()...)

	m.totalCount.Add(ctx, 1, opt)
	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}
	if cacheHit {
		m.cacheHits.Add(ctx, 1, opt)
	}

	m.durationHist.Record(ctx, float64(duration)/float64(time.Millisecond),
		metric.WithAttributes(append(op.attributes(), attribute.Bool("cache_hit", cacheHit))...))
}

type noopMetrics struct{}

func (m *noopMetrics) RecordExecution(context.Context, Operation, time.Duration, bool, error) {}
