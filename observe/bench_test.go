package observe

import (
	"context"
	"io"
	"testing"
	"time"
)

func BenchmarkLogger_Info(b *testing.B) {
	logger := NewLoggerWithWriter("info", io.Discard)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info(ctx, "operation completed",
			Field{Key: "duration_ms", Value: 0.25},
			Field{Key: "cache_hit", Value: true},
		)
	}
}

func BenchmarkLogger_LevelFiltering(b *testing.B) {
	logger := NewLoggerWithWriter("error", io.Discard)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Debug(ctx, "filtered")
	}
}

func BenchmarkOperation_SpanName(b *testing.B) {
	op := Operation{Component: "service", Name: "solve"}
	for i := 0; i < b.N; i++ {
		_ = op.SpanName()
	}
}

func BenchmarkMetrics_RecordExecution(b *testing.B) {
	_, m := newTestMetrics(b)
	ctx := context.Background()
	op := Operation{Component: "service", Name: "solve"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.RecordExecution(ctx, op, time.Millisecond, i%2 == 0, nil)
	}
}

func BenchmarkMiddleware_Wrap(b *testing.B) {
	_, tracer := newRecordingTracer()
	_, metrics := newTestMetrics(b)
	mw := NewMiddleware(tracer, metrics, NewLoggerWithWriter("info", io.Discard))
	fn := mw.Wrap(func(context.Context, Operation, any) (any, error) { return nil, nil })
	ctx := context.Background()
	op := Operation{Name: "solve"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = fn(ctx, op, nil)
	}
}
