package observe

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/jonwraymond/jugsolver/observe/exporters"
)

// Observer owns the process telemetry providers.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: Shutdown must honor cancellation/deadlines.
// - Errors: Shutdown returns every provider error joined.
type Observer interface {
	Tracer() trace.Tracer
	Meter() metric.Meter
	Logger() Logger

	// Shutdown flushes and stops all telemetry providers.
	Shutdown(ctx context.Context) error
}

// Logger is a minimal structured logging interface.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: logging must be best-effort and must not panic.
type Logger interface {
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)
	Debug(ctx context.Context, msg string, fields ...Field)

	// With returns a logger that adds fields to every entry.
	With(fields ...Field) Logger

	// WithOperation returns a logger carrying operation context.
	WithOperation(op Operation) Logger
}

// Field is one structured log attribute.
type Field struct {
	Key   string
	Value any
}

type shutdownFunc struct {
	name string
	fn   func(context.Context) error
}

type observer struct {
	tracer    trace.Tracer
	meter     metric.Meter
	logger    Logger
	mu        sync.Mutex
	shutdowns []shutdownFunc
}

// NewObserver validates cfg and builds the providers it enables.
// Enabled providers are also installed as the otel globals; disabled ones
// are replaced by no-ops so callers never check for nil.
func NewObserver(ctx context.Context, cfg Config) (Observer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	obs := &observer{
		tracer: tracenoop.NewTracerProvider().Tracer("noop"),
		meter:  noop.NewMeterProvider().Meter("noop"),
		logger: NopLogger(),
	}

	if cfg.Tracing.Enabled {
		tp, err := newTracerProvider(ctx, cfg.Tracing, res)
		if err != nil {
			return nil, fmt.Errorf("failed to setup tracing: %w", err)
		}
		otel.SetTracerProvider(tp)
		obs.tracer = tp.Tracer(cfg.ServiceName)
		obs.shutdowns = append(obs.shutdowns, shutdownFunc{"tracer", tp.Shutdown})
	}

	if cfg.Metrics.Enabled {
		mp, err := newMeterProvider(ctx, cfg.Metrics, res)
		if err != nil {
			_ = obs.Shutdown(ctx)
			return nil, fmt.Errorf("failed to setup metrics: %w", err)
		}
		otel.SetMeterProvider(mp)
		obs.meter = mp.Meter(cfg.ServiceName)
		obs.shutdowns = append(obs.shutdowns, shutdownFunc{"meter", mp.Shutdown})
	}

	if cfg.Logging.Enabled {
		if cfg.Logging.Writer != nil {
			obs.logger = NewLoggerWithWriter(cfg.Logging.Level, cfg.Logging.Writer)
		} else {
			obs.logger = NewLogger(cfg.Logging.Level)
		}
	}

	return obs, nil
}

func newResource(ctx context.Context, cfg Config) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.Version),
	}
	if cfg.Environment != "" {
		attrs = append(attrs, semconv.DeploymentEnvironment(cfg.Environment))
	}
	return resource.New(ctx, resource.WithAttributes(attrs...))
}

// sampler maps a ratio onto a parent-based sampler so that spans started
// inside an incoming traced request follow the caller's decision.
func sampler(pct float64) sdktrace.Sampler {
	switch {
	case pct >= MaxSamplePct:
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	case pct <= MinSamplePct:
		return sdktrace.ParentBased(sdktrace.NeverSample())
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(pct))
	}
}

func newTracerProvider(ctx context.Context, cfg TracingConfig, res *resource.Resource) (*sdktrace.TracerProvider, error) {
	exporter, err := exporters.NewTracingExporter(ctx, cfg.Exporter)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(cfg.SamplePct)),
	}
	if exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}
	return sdktrace.NewTracerProvider(opts...), nil
}

func newMeterProvider(ctx context.Context, cfg MetricsConfig, res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	reader, err := exporters.NewMetricsReader(ctx, cfg.Exporter)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics reader: %w", err)
	}

	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	if reader != nil {
		opts = append(opts, sdkmetric.WithReader(reader))
	}
	return sdkmetric.NewMeterProvider(opts...), nil
}

func (o *observer) Tracer() trace.Tracer { return o.tracer }
func (o *observer) Meter() metric.Meter  { return o.meter }
func (o *observer) Logger() Logger       { return o.logger }

// Shutdown stops providers in reverse start order. Later calls are no-ops.
func (o *observer) Shutdown(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	var errs []error
	for i := len(o.shutdowns) - 1; i >= 0; i-- {
		s := o.shutdowns[i]
		if err := s.fn(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s shutdown: %w", s.name, err))
		}
	}
	o.shutdowns = nil
	return errors.Join(errs...)
}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger {
	return noopLogger{}
}

type noopLogger struct{}

func (noopLogger) Info(context.Context, string, ...Field)  {}
func (noopLogger) Warn(context.Context, string, ...Field)  {}
func (noopLogger) Error(context.Context, string, ...Field) {}
func (noopLogger) Debug(context.Context, string, ...Field) {}
func (l noopLogger) With(...Field) Logger                  { return l }
func (l noopLogger) WithOperation(Operation) Logger        { return l }
