package observe

import (
	"context"
	"testing"
	"time"
)

func TestObserverContract_Noops(t *testing.T) {
	cfg := Config{
		ServiceName: "observe-test",
		Tracing:     TracingConfig{Enabled: false, Exporter: "none"},
		Metrics:     MetricsConfig{Enabled: false, Exporter: "none"},
		Logging:     LoggingConfig{Enabled: false, Level: "info"},
	}

	obs, err := NewObserver(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewObserver failed: %v", err)
	}

	if obs.Tracer() == nil {
		t.Fatalf("expected non-nil tracer")
	}
	if obs.Meter() == nil {
		t.Fatalf("expected non-nil meter")
	}
	if obs.Logger() == nil {
		t.Fatalf("expected non-nil logger")
	}
	if err := obs.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown of no-op observer failed: %v", err)
	}
}

func TestLoggerContract_NopChaining(t *testing.T) {
	logger := NopLogger()
	if logger.WithOperation(Operation{Name: "noop"}) == nil {
		t.Fatalf("WithOperation should return non-nil logger")
	}
	if logger.With(Field{Key: "k", Value: 1}) == nil {
		t.Fatalf("With should return non-nil logger")
	}
	logger.Info(context.Background(), "discarded")
}

func TestMetricsContract_NoPanic(t *testing.T) {
	metrics := &noopMetrics{}
	metrics.RecordExecution(context.Background(), Operation{Name: "noop"}, 10*time.Millisecond, true, nil)

	m, err := NewMetrics(nil)
	if err != nil {
		t.Fatalf("NewMetrics(nil) failed: %v", err)
	}
	m.RecordExecution(context.Background(), Operation{Name: "noop"}, time.Millisecond, false, nil)
}

func TestTracerContract_NoPanic(t *testing.T) {
	tracer := NewTracer(nil)
	_, span := tracer.StartSpan(context.Background(), Operation{Name: "noop"})
	tracer.EndSpan(span, nil)
}
