package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/jugsolver/api"
	"github.com/jonwraymond/jugsolver/auth"
	"github.com/jonwraymond/jugsolver/cache"
	"github.com/jonwraymond/jugsolver/config"
	"github.com/jonwraymond/jugsolver/health"
	"github.com/jonwraymond/jugsolver/observe"
	"github.com/jonwraymond/jugsolver/puzzle"
	"github.com/jonwraymond/jugsolver/resilience"
	"github.com/jonwraymond/jugsolver/server"
	"github.com/jonwraymond/jugsolver/service"
)

const cacheStatsInterval = time.Minute

func runServe(parent context.Context, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	obs, err := observe.NewObserver(ctx, cfg.ObserveConfig(version))
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	logger := obs.Logger()
	defer shutdownTelemetry(obs, logger, cfg.Server.ShutdownTimeout)

	mw, err := observe.MiddlewareFromObserver(obs)
	if err != nil {
		return err
	}

	store := cache.NewMemoryStore[puzzle.ProblemKey, puzzle.Solution](cfg.CachePolicy())
	svc, err := service.New(
		service.WithStore(store),
		service.WithLogger(logger),
		service.WithMiddleware(mw),
		service.WithMaxCapacity(cfg.Limits.MaxCapacity),
	)
	if err != nil {
		return err
	}

	authn, err := auth.New(cfg.AuthSettings())
	if err != nil {
		return fmt.Errorf("auth: %w", err)
	}

	exec := newExecutor(cfg, obs.Meter())

	agg := health.NewAggregator()
	agg.Register("solution_cache", svc.HealthChecker())
	agg.Register("memory", health.NewMemoryChecker(health.MemoryCheckerConfig{}))
	if b := exec.Bulkhead(); b != nil {
		agg.Register("solve_slots", health.NewCapacityChecker("solve_slots", b.Usage, health.Thresholds{}))
	}

	srvCfg := server.Config{
		Service:         svc,
		Logger:          logger,
		Tracer:          obs.Tracer(),
		Meter:           obs.Meter(),
		Health:          agg,
		Authenticator:   authn,
		Executor:        exec,
		Metrics:         cfg.Telemetry.MetricsExporter == "prometheus",
		Addr:            cfg.Server.Addr,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		MaxBodyBytes:    cfg.Server.MaxBodyBytes,
	}
	if cfg.IsDevelopment() {
		srvCfg.OpenAPISpec = api.OpenAPISpec
	}
	srv, err := server.New(srvCfg)
	if err != nil {
		return err
	}

	logger.Info(ctx, "jugsolver starting",
		observe.Field{Key: "version", Value: version},
		observe.Field{Key: "env", Value: cfg.Env},
		observe.Field{Key: "auth_mode", Value: cfg.Auth.Mode},
		observe.Field{Key: "cache_max_entries", Value: cfg.Cache.MaxEntries},
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	g.Go(func() error {
		reportCacheStats(gctx, svc, logger, cacheStatsInterval)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info(context.Background(), "jugsolver stopped")
	return nil
}

// shutdownTelemetry flushes obs, logging a failed flush instead of
// dropping it.
func shutdownTelemetry(obs observe.Observer, logger observe.Logger, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := obs.Shutdown(ctx); err != nil {
		logger.Warn(ctx, "telemetry shutdown failed", observe.Field{Key: "error", Value: err.Error()})
	}
}

func newExecutor(cfg config.Config, meter metric.Meter) *resilience.Executor {
	opts := []resilience.ExecutorOption{resilience.WithMeter(meter)}
	if rl, ok := cfg.RateLimiter(); ok {
		opts = append(opts, resilience.WithRateLimiter(resilience.NewRateLimiter(rl)))
	}
	if bh, ok := cfg.Bulkhead(); ok {
		opts = append(opts, resilience.WithBulkhead(resilience.NewBulkhead(bh)))
	}
	return resilience.NewExecutor(opts...)
}

// reportCacheStats logs cache counters every interval until ctx is done.
func reportCacheStats(ctx context.Context, svc *service.Service, logger observe.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st, ok := svc.CacheStats()
			if !ok {
				continue
			}
			logger.Info(ctx, "cache stats",
				observe.Field{Key: "entries", Value: st.Entries},
				observe.Field{Key: "hits", Value: st.Hits},
				observe.Field{Key: "misses", Value: st.Misses},
				observe.Field{Key: "evictions", Value: st.Evictions},
				observe.Field{Key: "hit_ratio", Value: st.HitRatio()},
			)
		}
	}
}
