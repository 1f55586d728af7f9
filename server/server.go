// Package server implements the jugsolver HTTP API.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonwraymond/jugsolver/auth"
	"github.com/jonwraymond/jugsolver/health"
	"github.com/jonwraymond/jugsolver/observe"
	"github.com/jonwraymond/jugsolver/resilience"
	"github.com/jonwraymond/jugsolver/service"
)

// ErrNilService indicates Config.Service is nil.
var ErrNilService = errors.New("server: service is nil")

// Defaults applied to zero Config fields.
const (
	DefaultAddr            = ":8080"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
	DefaultMaxBodyBytes    = 64 * 1024
)

// Config holds the dependencies and settings of a Server.
// Optional fields (nil = disabled): Health, Authenticator, Executor,
// OpenAPISpec.
type Config struct {
	// Required.
	Service *service.Service

	// Optional dependencies.
	Logger        observe.Logger // defaults to a no-op logger
	Tracer        trace.Tracer   // defaults to the otel global tracer
	Meter         metric.Meter   // defaults to the otel global meter
	Health        *health.Aggregator
	Authenticator auth.Authenticator // nil allows anonymous access
	Executor      *resilience.Executor

	// Metrics serves the Prometheus default registry at GET /metrics.
	Metrics bool

	// OpenAPISpec is served at GET /openapi.yaml when non-empty.
	OpenAPISpec []byte

	// HTTP settings.
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
}

// Server serves the HTTP API.
type Server struct {
	httpServer      *http.Server
	handler         http.Handler
	svc             *service.Service
	logger          observe.Logger
	openAPISpec     []byte
	maxBodyBytes    int64
	shutdownTimeout time.Duration
}

// New creates a server with all routes configured.
func New(cfg Config) (*Server, error) {
	if cfg.Service == nil {
		return nil, ErrNilService
	}
	cfg = withDefaults(cfg)

	inst, err := newHTTPInstruments(cfg.Meter)
	if err != nil {
		return nil, err
	}

	s := &Server{
		svc:             cfg.Service,
		logger:          cfg.Logger,
		openAPISpec:     cfg.OpenAPISpec,
		maxBodyBytes:    cfg.MaxBodyBytes,
		shutdownTimeout: cfg.ShutdownTimeout,
	}

	mux := http.NewServeMux()

	// Solve: authenticated first, then admitted.
	var solve http.Handler = http.HandlerFunc(s.handleSolve)
	solve = admissionMiddleware(cfg.Executor, solve)
	solve = auth.Middleware(cfg.Authenticator, authFailure(cfg.Logger))(solve)
	mux.Handle("POST /solve", solve)

	if cfg.Health != nil {
		health.RegisterHandlers(mux, cfg.Health)
	}
	if cfg.Metrics {
		mux.Handle("GET /metrics", promhttp.Handler())
	}
	if len(cfg.OpenAPISpec) > 0 {
		mux.HandleFunc("GET /openapi.yaml", s.handleOpenAPISpec)
	}

	// Outermost first: request ID, tracing, logging, recovery, mux.
	var handler http.Handler = mux
	handler = recoveryMiddleware(cfg.Logger, handler)
	handler = loggingMiddleware(cfg.Logger, handler)
	handler = tracingMiddleware(cfg.Tracer, inst, handler)
	handler = requestIDMiddleware(handler)

	s.handler = handler
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}
	return s, nil
}

func withDefaults(cfg Config) Config {
	if cfg.Logger == nil {
		cfg.Logger = observe.NopLogger()
	}
	if cfg.Tracer == nil {
		cfg.Tracer = otel.Tracer("github.com/jonwraymond/jugsolver/server")
	}
	if cfg.Meter == nil {
		cfg.Meter = otel.Meter("github.com/jonwraymond/jugsolver/server")
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return cfg
}

// Handler returns the root handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully, letting
// in-flight requests finish within the shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server starting", observe.Field{Key: "addr", Value: ln.Addr().String()})
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info(context.Background(), "http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
