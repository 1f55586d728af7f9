package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonwraymond/jugsolver/auth"
	"github.com/jonwraymond/jugsolver/observe"
	"github.com/jonwraymond/jugsolver/resilience"
)

type contextKey string

const contextKeyRequestID contextKey = "request_id"

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestIDFromContext extracts the request ID from the context.
func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(contextKeyRequestID).(string); ok {
		return v
	}
	return ""
}

// requestIDMiddleware keeps a caller-supplied request ID or assigns one.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, reqID)
		ctx := context.WithValue(r.Context(), contextKeyRequestID, reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	if sw, ok := w.(*statusWriter); ok {
		return sw
	}
	return &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.statusCode = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

type httpInstruments struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

func newHTTPInstruments(meter metric.Meter) (*httpInstruments, error) {
	requests, err := meter.Int64Counter("jugsolver.http.requests",
		metric.WithDescription("HTTP requests served"))
	if err != nil {
		return nil, fmt.Errorf("create request counter: %w", err)
	}
	duration, err := meter.Float64Histogram("jugsolver.http.duration_ms",
		metric.WithDescription("HTTP request duration"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}
	return &httpInstruments{requests: requests, duration: duration}, nil
}

// tracingMiddleware opens a span per request and records request metrics.
// The span is renamed to the matched route once the mux has run.
func tracingMiddleware(tracer trace.Tracer, inst *httpInstruments, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("url.path", r.URL.Path),
				attribute.String("http.request_id", RequestIDFromContext(r.Context())),
			),
		)
		defer span.End()

		start := time.Now()
		sw := newStatusWriter(w)
		req := r.WithContext(ctx)
		next.ServeHTTP(sw, req)

		route := req.Pattern
		if route == "" {
			route = "unmatched"
		} else {
			span.SetName(route)
		}
		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.response.status_code", sw.statusCode),
		)
		if sw.statusCode >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(sw.statusCode))
		}

		attrs := metric.WithAttributes(
			attribute.String("http.request.method", r.Method),
			attribute.String("http.route", route),
			attribute.Int("http.response.status_code", sw.statusCode),
		)
		inst.requests.Add(ctx, 1, attrs)
		inst.duration.Record(ctx, float64(time.Since(start))/float64(time.Millisecond), attrs)
	})
}

// loggingMiddleware logs one line per request at a status-dependent level.
func loggingMiddleware(logger observe.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := newStatusWriter(w)
		next.ServeHTTP(sw, r)

		fields := []observe.Field{
			{Key: "method", Value: r.Method},
			{Key: "path", Value: r.URL.Path},
			{Key: "status", Value: sw.statusCode},
			{Key: "duration_ms", Value: time.Since(start).Milliseconds()},
			{Key: "request_id", Value: RequestIDFromContext(r.Context())},
		}
		if sc := trace.SpanContextFromContext(r.Context()); sc.HasTraceID() {
			fields = append(fields, observe.Field{Key: "trace_id", Value: sc.TraceID().String()})
		}

		switch {
		case sw.statusCode >= http.StatusInternalServerError:
			logger.Error(r.Context(), "http request", fields...)
		case sw.statusCode >= http.StatusBadRequest:
			logger.Warn(r.Context(), "http request", fields...)
		default:
			logger.Info(r.Context(), "http request", fields...)
		}
	})
}

// recoveryMiddleware turns a handler panic into a 500 response.
func recoveryMiddleware(logger observe.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := newStatusWriter(w)
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.Error(r.Context(), "panic in handler",
				observe.Field{Key: "panic", Value: fmt.Sprint(rec)},
				observe.Field{Key: "path", Value: r.URL.Path},
				observe.Field{Key: "request_id", Value: RequestIDFromContext(r.Context())},
			)
			if !sw.wroteHeader {
				writeError(sw, http.StatusInternalServerError, internalErrorMessage)
			}
		}()
		next.ServeHTTP(sw, r)
	})
}

// admissionMiddleware runs next through the executor's rate limiter and
// bulkhead. A nil executor admits everything.
func admissionMiddleware(exec *resilience.Executor, next http.Handler) http.Handler {
	if exec == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := exec.Execute(r.Context(), func(ctx context.Context) error {
			next.ServeHTTP(w, r.WithContext(ctx))
			return nil
		})
		switch {
		case err == nil:
		case errors.Is(err, resilience.ErrRateLimitExceeded):
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		case errors.Is(err, resilience.ErrBulkheadFull):
			writeError(w, http.StatusServiceUnavailable, "server busy")
		default:
			writeError(w, http.StatusServiceUnavailable, "request cancelled")
		}
	})
}

// authFailure writes 401 for credential problems and 500 for anything else.
func authFailure(logger observe.Logger) auth.FailureFunc {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		switch {
		case errors.Is(err, auth.ErrMissingCredentials),
			errors.Is(err, auth.ErrInvalidCredentials),
			errors.Is(err, auth.ErrTokenExpired),
			errors.Is(err, auth.ErrTokenMalformed):
			w.Header().Set("WWW-Authenticate", `Bearer realm="jugsolver"`)
			writeError(w, http.StatusUnauthorized, "unauthorized")
		default:
			logger.Error(r.Context(), "authentication error",
				observe.Field{Key: "error", Value: errString(err)},
				observe.Field{Key: "request_id", Value: RequestIDFromContext(r.Context())},
			)
			writeError(w, http.StatusInternalServerError, internalErrorMessage)
		}
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
