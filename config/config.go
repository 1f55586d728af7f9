// Package config loads and validates jugsolver configuration.
//
// Values come from, in increasing precedence: built-in defaults, the YAML
// file named by JUGS_CONFIG_FILE, and JUGS_* environment variables.
// Secret-bearing values are then resolved through package secret.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonwraymond/jugsolver/auth"
	"github.com/jonwraymond/jugsolver/cache"
	"github.com/jonwraymond/jugsolver/observe"
	"github.com/jonwraymond/jugsolver/resilience"
	"github.com/jonwraymond/jugsolver/secret"
)

// Environments.
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// ErrInvalid indicates a configuration that failed validation.
var ErrInvalid = errors.New("config: invalid configuration")

// Config holds all application configuration.
type Config struct {
	Env       string          `yaml:"env" validate:"oneof=production development"`
	LogLevel  string          `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	Server    ServerConfig    `yaml:"server"`
	Cache     CacheConfig     `yaml:"cache"`
	Limits    LimitsConfig    `yaml:"limits"`
	Auth      AuthConfig      `yaml:"auth"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr" validate:"required"`
	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes" validate:"gt=0"`
}

// CacheConfig configures the solution cache. MaxEntries 0 means unbounded.
type CacheConfig struct {
	MaxEntries int `yaml:"max_entries" validate:"gte=0"`
}

// LimitsConfig configures admission control for solve requests.
// A zero Rate disables rate limiting and a zero MaxConcurrent disables
// the concurrency limit.
type LimitsConfig struct {
	Rate          float64       `yaml:"rate" validate:"gte=0"`
	Burst         int           `yaml:"burst" validate:"gte=0"`
	MaxConcurrent int           `yaml:"max_concurrent" validate:"gte=0"`
	MaxWait       time.Duration `yaml:"max_wait" validate:"gte=0"`

	// MaxCapacity caps each jug capacity a request may ask for. Zero
	// means no cap.
	MaxCapacity int `yaml:"max_capacity" validate:"gte=0"`
}

// AuthConfig configures request authentication.
type AuthConfig struct {
	Mode        string   `yaml:"mode" validate:"oneof=none apikey jwt any"`
	APIKeys     []string `yaml:"api_keys"`
	JWTSecret   string   `yaml:"jwt_secret"`
	JWTIssuer   string   `yaml:"jwt_issuer"`
	JWTAudience string   `yaml:"jwt_audience"`
}

// TelemetryConfig configures tracing and metrics export.
type TelemetryConfig struct {
	ServiceName     string  `yaml:"service_name" validate:"required"`
	TracingExporter string  `yaml:"tracing_exporter" validate:"oneof=otlp jaeger stdout none"`
	TraceSamplePct  float64 `yaml:"trace_sample_pct" validate:"gte=0,lte=1"`
	MetricsExporter string  `yaml:"metrics_exporter" validate:"oneof=otlp prometheus stdout none"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Env: EnvProduction,
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			MaxBodyBytes:    64 * 1024,
		},
		Limits: LimitsConfig{
			Rate:          100,
			Burst:         20,
			MaxConcurrent: 64,
		},
		Auth: AuthConfig{Mode: string(auth.ModeNone)},
		Telemetry: TelemetryConfig{
			ServiceName:     "jugsolver",
			TracingExporter: "none",
			TraceSamplePct:  1.0,
			MetricsExporter: "prometheus",
		},
	}
}

// Load builds the configuration from defaults, the optional config file,
// and the environment, resolves secrets, and validates the result.
func Load(ctx context.Context) (Config, error) {
	cfg := Default()

	if path := os.Getenv("JUGS_CONFIG_FILE"); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	resolver, err := secret.NewDefaultResolver()
	if err != nil {
		return Config{}, err
	}
	defer resolver.Close()

	if err := cfg.resolveSecrets(ctx, resolver); err != nil {
		return Config{}, err
	}

	cfg.finalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) finalize() {
	if c.LogLevel == "" {
		if c.IsDevelopment() {
			c.LogLevel = "debug"
		} else {
			c.LogLevel = "info"
		}
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks field ranges and that the auth mode has its credentials.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			field := strings.TrimPrefix(fe.Namespace(), "Config.")
			msgs = append(msgs, fmt.Sprintf("%s failed %q", field, fe.Tag()))
		}
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
	}

	mode := auth.Mode(c.Auth.Mode)
	needKeys := mode == auth.ModeAPIKey || mode == auth.ModeAny
	needSecret := mode == auth.ModeJWT || mode == auth.ModeAny
	if needKeys && len(c.Auth.APIKeys) == 0 {
		return fmt.Errorf("%w: auth mode %q requires JUGS_API_KEYS", ErrInvalid, c.Auth.Mode)
	}
	if needSecret && c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth mode %q requires JUGS_JWT_SECRET", ErrInvalid, c.Auth.Mode)
	}
	return nil
}

// IsDevelopment reports whether the development environment is selected.
func (c Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// ObserveConfig returns the telemetry configuration for observe.NewObserver.
func (c Config) ObserveConfig(version string) observe.Config {
	return observe.Config{
		ServiceName: c.Telemetry.ServiceName,
		Environment: c.Env,
		Version:     version,
		Tracing: observe.TracingConfig{
			Enabled:   c.Telemetry.TracingExporter != "none",
			Exporter:  c.Telemetry.TracingExporter,
			SamplePct: c.Telemetry.TraceSamplePct,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  c.Telemetry.MetricsExporter != "none",
			Exporter: c.Telemetry.MetricsExporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: true,
			Level:   c.LogLevel,
		},
	}
}

// AuthSettings returns the settings for auth.New.
func (c Config) AuthSettings() auth.Settings {
	return auth.Settings{
		Mode:    auth.Mode(c.Auth.Mode),
		APIKeys: strings.Join(c.Auth.APIKeys, ","),
		JWT: auth.JWTConfig{
			Secret:   []byte(c.Auth.JWTSecret),
			Issuer:   c.Auth.JWTIssuer,
			Audience: c.Auth.JWTAudience,
		},
	}
}

// CachePolicy returns the solution cache policy.
func (c Config) CachePolicy() cache.Policy {
	return cache.Policy{MaxEntries: c.Cache.MaxEntries}
}

// RateLimiter returns the rate limiter configuration, or false when rate
// limiting is disabled.
func (c Config) RateLimiter() (resilience.RateLimiterConfig, bool) {
	return resilience.RateLimiterConfig{
		Rate:    c.Limits.Rate,
		Burst:   c.Limits.Burst,
		MaxWait: c.Limits.MaxWait,
	}, c.Limits.Rate > 0
}

// Bulkhead returns the concurrency limit configuration, or false when it is
// disabled.
func (c Config) Bulkhead() (resilience.BulkheadConfig, bool) {
	return resilience.BulkheadConfig{
		MaxConcurrent: c.Limits.MaxConcurrent,
		MaxWait:       c.Limits.MaxWait,
	}, c.Limits.MaxConcurrent > 0
}
