package health

import (
	"context"
	"errors"
	"testing"
)

func TestStatus_String(t *testing.T) {
	tests := map[Status]string{
		StatusHealthy:   "healthy",
		StatusDegraded:  "degraded",
		StatusUnhealthy: "unhealthy",
		Status(42):      "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", s, got, want)
		}
	}
}

func TestStatus_Serving(t *testing.T) {
	if !StatusHealthy.Serving() || !StatusDegraded.Serving() {
		t.Error("healthy and degraded should be serving")
	}
	if StatusUnhealthy.Serving() {
		t.Error("unhealthy should not be serving")
	}
}

func TestResultConstructors(t *testing.T) {
	err := errors.New("down")
	r := Unhealthy("broken", err).WithDetails(map[string]any{"k": 1})
	if r.Status != StatusUnhealthy || r.Message != "broken" || !errors.Is(r.Error, err) {
		t.Errorf("unexpected result: %+v", r)
	}
	if r.Details["k"] != 1 {
		t.Errorf("details not attached: %v", r.Details)
	}
	if r.Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}
	if Healthy("ok").Status != StatusHealthy || Degraded("meh").Status != StatusDegraded {
		t.Error("constructor status mismatch")
	}
}

func TestCheckerFunc(t *testing.T) {
	c := NewCheckerFunc("cache", func(context.Context) Result { return Degraded("slow") })
	if c.Name() != "cache" {
		t.Errorf("Name() = %q", c.Name())
	}
	if got := c.Check(context.Background()); got.Status != StatusDegraded {
		t.Errorf("Check().Status = %v", got.Status)
	}
}

func TestThresholds_Classify(t *testing.T) {
	th := Thresholds{Warning: 0.9, Critical: 0.99}
	tests := []struct {
		ratio float64
		want  Status
	}{
		{0, StatusHealthy},
		{0.89, StatusHealthy},
		{0.9, StatusDegraded},
		{0.98, StatusDegraded},
		{0.99, StatusUnhealthy},
		{1.2, StatusUnhealthy},
	}
	for _, tt := range tests {
		if got := th.Classify(tt.ratio); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.ratio, got, tt.want)
		}
	}

	if got := (Thresholds{Warning: 0.5}).Classify(5); got != StatusDegraded {
		t.Errorf("zero critical should never be unhealthy, got %v", got)
	}
}
