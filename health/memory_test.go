package health

import (
	"context"
	"testing"
)

func TestMemoryChecker_Defaults(t *testing.T) {
	m := NewMemoryChecker(MemoryCheckerConfig{})
	if m.config.Thresholds.Warning != 0.8 || m.config.Thresholds.Critical != 0.95 {
		t.Errorf("unexpected defaults: %+v", m.config.Thresholds)
	}

	m = NewMemoryChecker(MemoryCheckerConfig{Thresholds: Thresholds{Warning: 0.9, Critical: 0.5}})
	if m.config.Thresholds.Critical < m.config.Thresholds.Warning {
		t.Errorf("critical below warning: %+v", m.config.Thresholds)
	}
}

func TestMemoryChecker_Check(t *testing.T) {
	m := NewMemoryChecker(MemoryCheckerConfig{})
	if m.Name() != "memory" {
		t.Errorf("Name() = %q", m.Name())
	}
	r := m.Check(context.Background())
	if r.Details["alloc_bytes"] == nil {
		t.Errorf("expected alloc details, got %v", r.Details)
	}
}

func TestMemoryChecker_TinyCeilingIsUnhealthy(t *testing.T) {
	m := NewMemoryChecker(MemoryCheckerConfig{MaxAlloc: 1})
	if r := m.Check(context.Background()); r.Status != StatusUnhealthy {
		t.Errorf("Status = %v, want unhealthy", r.Status)
	}
}
