package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// applyEnv overrides c with every JUGS_* variable that is set.
func (c *Config) applyEnv() error {
	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}
	var err error

	c.Env = envStr("JUGS_ENV", c.Env)
	c.LogLevel = envStr("JUGS_LOG_LEVEL", c.LogLevel)

	c.Server.Addr = envStr("JUGS_ADDR", c.Server.Addr)
	c.Server.ReadTimeout, err = envDuration("JUGS_READ_TIMEOUT", c.Server.ReadTimeout)
	collect(err)
	c.Server.WriteTimeout, err = envDuration("JUGS_WRITE_TIMEOUT", c.Server.WriteTimeout)
	collect(err)
	c.Server.ShutdownTimeout, err = envDuration("JUGS_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)
	collect(err)
	c.Server.MaxBodyBytes, err = envInt64("JUGS_MAX_BODY_BYTES", c.Server.MaxBodyBytes)
	collect(err)

	c.Cache.MaxEntries, err = envInt("JUGS_CACHE_MAX_ENTRIES", c.Cache.MaxEntries)
	collect(err)

	c.Limits.Rate, err = envFloat("JUGS_RATE_LIMIT", c.Limits.Rate)
	collect(err)
	c.Limits.Burst, err = envInt("JUGS_RATE_BURST", c.Limits.Burst)
	collect(err)
	c.Limits.MaxConcurrent, err = envInt("JUGS_MAX_CONCURRENT", c.Limits.MaxConcurrent)
	collect(err)
	c.Limits.MaxWait, err = envDuration("JUGS_MAX_WAIT", c.Limits.MaxWait)
	collect(err)
	c.Limits.MaxCapacity, err = envInt("JUGS_MAX_CAPACITY", c.Limits.MaxCapacity)
	collect(err)

	c.Auth.Mode = envStr("JUGS_AUTH_MODE", c.Auth.Mode)
	c.Auth.APIKeys = envList("JUGS_API_KEYS", c.Auth.APIKeys)
	c.Auth.JWTSecret = envStr("JUGS_JWT_SECRET", c.Auth.JWTSecret)
	c.Auth.JWTIssuer = envStr("JUGS_JWT_ISSUER", c.Auth.JWTIssuer)
	c.Auth.JWTAudience = envStr("JUGS_JWT_AUDIENCE", c.Auth.JWTAudience)

	c.Telemetry.ServiceName = envStr("JUGS_SERVICE_NAME", c.Telemetry.ServiceName)
	c.Telemetry.TracingExporter = envStr("JUGS_TRACING_EXPORTER", c.Telemetry.TracingExporter)
	c.Telemetry.TraceSamplePct, err = envFloat("JUGS_TRACE_SAMPLE_PCT", c.Telemetry.TraceSamplePct)
	collect(err)
	c.Telemetry.MetricsExporter = envStr("JUGS_METRICS_EXPORTER", c.Telemetry.MetricsExporter)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

func envStr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return defaultVal, fmt.Errorf("%s=%q is not a valid integer", key, v)
	}
	return n, nil
}

func envInt64(key string, defaultVal int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return defaultVal, fmt.Errorf("%s=%q is not a valid integer", key, v)
	}
	return n, nil
}

func envFloat(key string, defaultVal float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return defaultVal, fmt.Errorf("%s=%q is not a valid number", key, v)
	}
	return f, nil
}

func envDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return defaultVal, fmt.Errorf("%s=%q is not a valid duration", key, v)
	}
	return d, nil
}

// envList splits a comma-separated variable, dropping blank items.
func envList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
