package resilience

import (
	"context"
	"errors"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestExecutor_Passthrough(t *testing.T) {
	e := NewExecutor()
	boom := errors.New("boom")
	if err := e.Execute(context.Background(), func(context.Context) error { return boom }); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
	if e.Bulkhead() != nil {
		t.Error("Bulkhead() should be nil when not configured")
	}
}

func TestExecutor_RateLimitedRequestsSkipBulkhead(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 0.001, Burst: 1})
	b := NewBulkhead(BulkheadConfig{MaxConcurrent: 1})
	e := NewExecutor(WithRateLimiter(rl), WithBulkhead(b))
	ctx := context.Background()

	if err := e.Execute(ctx, func(context.Context) error { return nil }); err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	if err := e.Execute(ctx, func(context.Context) error { return nil }); !errors.Is(err, ErrRateLimitExceeded) {
		t.Fatalf("expected ErrRateLimitExceeded, got %v", err)
	}
	if m := b.Metrics(); m.Rejected != 0 || m.Active != 0 {
		t.Errorf("rate limited call should not touch the bulkhead: %+v", m)
	}
}

func TestExecutor_BulkheadFull(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{MaxConcurrent: 1})
	e := NewExecutor(WithBulkhead(b))
	ctx := context.Background()

	err := e.Execute(ctx, func(ctx context.Context) error {
		return e.Execute(ctx, func(context.Context) error { return nil })
	})
	if !errors.Is(err, ErrBulkheadFull) {
		t.Errorf("nested call should be rejected, got %v", err)
	}
	if e.Bulkhead() != b {
		t.Error("Bulkhead() should return the configured bulkhead")
	}
}

func TestExecutor_CountsRejections(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")

	rl := NewRateLimiter(RateLimiterConfig{Rate: 0.001, Burst: 1})
	e := NewExecutor(WithRateLimiter(rl), WithMeter(meter))
	ctx := context.Background()

	_ = e.Execute(ctx, func(context.Context) error { return nil })
	_ = e.Execute(ctx, func(context.Context) error { return nil })
	_ = e.Execute(ctx, func(context.Context) error { return nil })

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	var got int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "jugsolver.admission.rejected" {
				continue
			}
			for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
				if v, ok := dp.Attributes.Value("reason"); ok && v.AsString() == ReasonRateLimit {
					got += dp.Value
				}
			}
		}
	}
	if got != 2 {
		t.Errorf("rate_limit rejections = %d, want 2", got)
	}
}

func TestExecutor_CancelledBeforeAdmission(t *testing.T) {
	e := NewExecutor(WithRateLimiter(NewRateLimiter(RateLimiterConfig{Rate: 10, Burst: 1})))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := e.Execute(ctx, func(context.Context) error { called = true; return nil })
	if !errors.Is(err, context.Canceled) || called {
		t.Errorf("err = %v, called = %v", err, called)
	}
}
