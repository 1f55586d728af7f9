// Package exporters builds OpenTelemetry exporters by name.
package exporters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ErrEndpointNotConfigured indicates a required endpoint environment variable is not set.
var ErrEndpointNotConfigured = errors.New("exporters: endpoint not configured")

// Options tunes exporter construction.
type Options struct {
	// Writer receives stdout exporter output. Defaults to os.Stdout.
	Writer io.Writer

	// Registerer receives the Prometheus collector. Defaults to the
	// client_golang default registerer, which promhttp.Handler serves.
	Registerer promclient.Registerer
}

func (o Options) writer() io.Writer {
	if o.Writer == nil {
		return os.Stdout
	}
	return o.Writer
}

// NewTracingExporter creates a span exporter by name.
// Supported exporters: stdout, otlp, jaeger, none. "none" returns a nil exporter.
func NewTracingExporter(ctx context.Context, name string, opts ...Options) (sdktrace.SpanExporter, error) {
	o := first(opts)

	switch name {
	case "stdout":
		return stdouttrace.New(stdouttrace.WithWriter(o.writer()))

	case "otlp":
		if env("OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_TRACES_ENDPOINT") == "" {
			return nil, fmt.Errorf("%w: set OTEL_EXPORTER_OTLP_ENDPOINT or OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", ErrEndpointNotConfigured)
		}
		return otlptracegrpc.New(ctx)

	case "jaeger":
		// Jaeger ingests OTLP natively.
		endpoint := os.Getenv("OTEL_EXPORTER_JAEGER_ENDPOINT")
		if endpoint == "" {
			return nil, fmt.Errorf("%w: set OTEL_EXPORTER_JAEGER_ENDPOINT", ErrEndpointNotConfigured)
		}
		return otlptracegrpc.New(ctx, otlptracegrpc.WithEndpointURL(endpoint))

	case "none", "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown exporter: %q", name)
	}
}

// NewMetricsReader creates a metrics reader by name.
// Supported exporters: stdout, otlp, prometheus, none. "none" returns a nil reader.
func NewMetricsReader(ctx context.Context, name string, opts ...Options) (sdkmetric.Reader, error) {
	o := first(opts)

	switch name {
	case "stdout":
		exp, err := stdoutmetric.New(stdoutmetric.WithWriter(o.writer()))
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout metrics exporter: %w", err)
		}
		return sdkmetric.NewPeriodicReader(exp), nil

	case "otlp":
		if env("OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_METRICS_ENDPOINT") == "" {
			return nil, fmt.Errorf("%w: set OTEL_EXPORTER_OTLP_ENDPOINT or OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", ErrEndpointNotConfigured)
		}
		exp, err := otlpmetricgrpc.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
		}
		return sdkmetric.NewPeriodicReader(exp), nil

	case "prometheus":
		var popts []prometheus.Option
		if o.Registerer != nil {
			popts = append(popts, prometheus.WithRegisterer(o.Registerer))
		}
		exp, err := prometheus.New(popts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}
		return exp, nil

	case "none", "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown metrics exporter: %q", name)
	}
}

func first(opts []Options) Options {
	if len(opts) == 0 {
		return Options{}
	}
	return opts[0]
}

func env(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
