package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func echoPrincipal() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(PrincipalFromContext(r.Context())))
	})
}

func TestMiddleware_Anonymous(t *testing.T) {
	h := Middleware(nil, nil)(echoPrincipal())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/solve", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "anonymous" {
		t.Errorf("got %d %q", rec.Code, rec.Body.String())
	}
}

func TestMiddleware_Enforced(t *testing.T) {
	store, _ := ParseAPIKeys("ops=s3cret")
	authn := NewAPIKeyAuthenticator(APIKeyConfig{}, store)

	var gotErr error
	onFailure := func(w http.ResponseWriter, _ *http.Request, err error) {
		gotErr = err
		w.WriteHeader(http.StatusUnauthorized)
	}
	h := Middleware(authn, onFailure)(echoPrincipal())

	tests := []struct {
		name     string
		key      string
		wantCode int
		wantErr  error
	}{
		{"missing", "", http.StatusUnauthorized, ErrMissingCredentials},
		{"invalid", "nope", http.StatusUnauthorized, ErrInvalidCredentials},
		{"valid", "s3cret", http.StatusOK, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotErr = nil
			req := httptest.NewRequest(http.MethodPost, "/solve", nil)
			if tt.key != "" {
				req.Header.Set(DefaultAPIKeyHeader, tt.key)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantErr != nil && !errors.Is(gotErr, tt.wantErr) {
				t.Errorf("failure error = %v, want %v", gotErr, tt.wantErr)
			}
			if tt.wantErr == nil && rec.Body.String() != "ops" {
				t.Errorf("principal = %q, want ops", rec.Body.String())
			}
		})
	}
}

func TestMiddleware_DefaultFailure(t *testing.T) {
	store, _ := ParseAPIKeys("k")
	h := Middleware(NewAPIKeyAuthenticator(APIKeyConfig{}, store), nil)(echoPrincipal())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("code = %d, want 401", rec.Code)
	}
}

func TestMiddleware_AnnotatesSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	store, _ := ParseAPIKeys("ops=s3cret")
	h := Middleware(NewAPIKeyAuthenticator(APIKeyConfig{}, store), nil)(echoPrincipal())

	ctx, span := tp.Tracer("test").Start(context.Background(), "POST /solve")
	req := httptest.NewRequest(http.MethodPost, "/solve", nil).WithContext(ctx)
	req.Header.Set(DefaultAPIKeyHeader, "s3cret")
	h.ServeHTTP(httptest.NewRecorder(), req)
	span.End()

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("spans = %d, want 1", len(ended))
	}
	found := false
	for _, kv := range ended[0].Attributes() {
		if kv.Key == "enduser.id" && kv.Value.AsString() == "ops" {
			found = true
		}
	}
	if !found {
		t.Errorf("enduser.id not recorded: %v", ended[0].Attributes())
	}
}
