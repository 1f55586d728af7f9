package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func serve(t *testing.T, agg *Aggregator, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	RegisterHandlers(mux, agg)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestLiveness(t *testing.T) {
	rec := serve(t, NewAggregator(), http.MethodGet, "/healthz")
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Errorf("liveness = %d %q", rec.Code, rec.Body.String())
	}
}

func TestReadiness(t *testing.T) {
	tests := []struct {
		name     string
		result   Result
		wantCode int
		wantBody string
	}{
		{"healthy", Healthy(""), http.StatusOK, "OK"},
		{"degraded", Degraded(""), http.StatusOK, "DEGRADED"},
		{"unhealthy", Unhealthy("", nil), http.StatusServiceUnavailable, "UNHEALTHY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := NewAggregator()
			agg.Register("c", static("c", tt.result))
			rec := serve(t, agg, http.MethodGet, "/readyz")
			if rec.Code != tt.wantCode || rec.Body.String() != tt.wantBody {
				t.Errorf("readiness = %d %q", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestDetailed(t *testing.T) {
	agg := NewAggregator()
	agg.Register("cache", static("cache", Degraded("cache at 95.0% of capacity").WithDetails(map[string]any{"used": 95})))

	rec := serve(t, agg, http.MethodGet, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}

	var report Report
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Status != "degraded" {
		t.Errorf("status = %q", report.Status)
	}
	c := report.Checks["cache"]
	if c.Status != "degraded" || c.Details["used"] != float64(95) {
		t.Errorf("check = %+v", c)
	}
}

func TestHandlers_MethodNotAllowed(t *testing.T) {
	rec := serve(t, NewAggregator(), http.MethodPost, "/healthz")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /healthz = %d, want 405", rec.Code)
	}
}
