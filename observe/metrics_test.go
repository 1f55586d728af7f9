package observe

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t testing.TB) (*sdkmetric.ManualReader, Metrics) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}
	return reader, m
}

func collect(t testing.TB, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	return rm
}

// findMetric searches for a metric by name in ResourceMetrics.
func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

// sumValue totals an int64 counter across data points; 0 if absent.
func sumValue(t testing.TB, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	m := findMetric(rm, name)
	if m == nil {
		return 0
	}
	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("%s: expected Sum[int64], got %T", name, m.Data)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestMetrics_Counters(t *testing.T) {
	reader, m := newTestMetrics(t)
	ctx := context.Background()
	op := Operation{Component: "service", Name: "solve"}

	m.RecordExecution(ctx, op, 3*time.Millisecond, false, nil)
	m.RecordExecution(ctx, op, time.Millisecond, true, nil)
	m.RecordExecution(ctx, op, 2*time.Millisecond, false, errors.New("infeasible"))

	rm := collect(t, reader)
	if got := sumValue(t, rm, "jugsolver.op.total"); got != 3 {
		t.Errorf("total = %d, want 3", got)
	}
	if got := sumValue(t, rm, "jugsolver.op.errors"); got != 1 {
		t.Errorf("errors = %d, want 1", got)
	}
	if got := sumValue(t, rm, "jugsolver.op.cache_hits"); got != 1 {
		t.Errorf("cache_hits = %d, want 1", got)
	}
}

func TestMetrics_NoErrorsOnSuccess(t *testing.T) {
	reader, m := newTestMetrics(t)
	m.RecordExecution(context.Background(), Operation{Name: "solve"}, time.Millisecond, false, nil)

	if got := sumValue(t, collect(t, reader), "jugsolver.op.errors"); got != 0 {
		t.Errorf("errors = %d, want 0", got)
	}
}

func TestMetrics_DurationHistogram(t *testing.T) {
	reader, m := newTestMetrics(t)
	m.RecordExecution(context.Background(), Operation{Name: "solve"}, 1500*time.Microsecond, false, nil)

	found := findMetric(collect(t, reader), "jugsolver.op.duration_ms")
	if found == nil {
		t.Fatal("jugsolver.op.duration_ms metric not found")
	}
	hist, ok := found.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("expected Histogram[float64], got %T", found.Data)
	}
	if len(hist.DataPoints) != 1 || hist.DataPoints[0].Count != 1 {
		t.Fatalf("unexpected data points: %+v", hist.DataPoints)
	}
	if got := hist.DataPoints[0].Sum; got != 1.5 {
		t.Errorf("duration sum = %v, want 1.5", got)
	}
}

func TestMetrics_Concurrent(t *testing.T) {
	reader, m := newTestMetrics(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				m.RecordExecution(ctx, Operation{Name: "solve"}, time.Microsecond, j%2 == 0, nil)
			}
		}()
	}
	wg.Wait()

	rm := collect(t, reader)
	if got := sumValue(t, rm, "jugsolver.op.total"); got != 1000 {
		t.Errorf("total = %d, want 1000", got)
	}
	if got := sumValue(t, rm, "jugsolver.op.cache_hits"); got != 500 {
		t.Errorf("cache_hits = %d, want 500", got)
	}
}
