package observe

import (
	"errors"
	"fmt"
	"io"
	"slices"
)

// Accepted Config values.
const (
	MinSamplePct = 0.0
	MaxSamplePct = 1.0
)

// ValidTracingExporters lists valid tracing exporter names.
var ValidTracingExporters = []string{"otlp", "jaeger", "stdout", "none", ""}

// ValidMetricsExporters lists valid metrics exporter names.
var ValidMetricsExporters = []string{"otlp", "prometheus", "stdout", "none", ""}

// ValidLogLevels lists valid log level names.
var ValidLogLevels = []string{"debug", "info", "warn", "error", ""}

// Config describes the telemetry of one jugsolver process.
type Config struct {
	ServiceName string
	Version     string

	// Environment is recorded as the deployment.environment resource
	// attribute when set.
	Environment string

	Tracing TracingConfig
	Metrics MetricsConfig
	Logging LoggingConfig
}

// TracingConfig selects the span exporter and sampling ratio.
type TracingConfig struct {
	Enabled   bool
	Exporter  string  // otlp|jaeger|stdout|none
	SamplePct float64 // 0.0-1.0, applied to root spans only
}

// MetricsConfig selects the metrics reader.
type MetricsConfig struct {
	Enabled  bool
	Exporter string // otlp|prometheus|stdout|none
}

// LoggingConfig configures the JSON logger.
type LoggingConfig struct {
	Enabled bool
	Level   string // debug|info|warn|error

	// Writer receives log lines. Defaults to os.Stdout.
	Writer io.Writer
}

// Validate reports every problem with c, joined.
func (c *Config) Validate() error {
	var errs []error

	if c.ServiceName == "" {
		errs = append(errs, ErrMissingServiceName)
	}
	if c.Tracing.Enabled {
		if !slices.Contains(ValidTracingExporters, c.Tracing.Exporter) {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidTracingExporter, c.Tracing.Exporter))
		}
		if c.Tracing.SamplePct < MinSamplePct || c.Tracing.SamplePct > MaxSamplePct {
			errs = append(errs, fmt.Errorf("%w, got: %f", ErrInvalidSamplePct, c.Tracing.SamplePct))
		}
	}
	if c.Metrics.Enabled && !slices.Contains(ValidMetricsExporters, c.Metrics.Exporter) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidMetricsExporter, c.Metrics.Exporter))
	}
	if c.Logging.Enabled && !slices.Contains(ValidLogLevels, c.Logging.Level) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level))
	}

	return errors.Join(errs...)
}
