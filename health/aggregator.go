package health

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const defaultCheckTimeout = 5 * time.Second

// AggregatorConfig configures the health aggregator.
type AggregatorConfig struct {
	// Timeout bounds a whole CheckAll run. Default: 5 seconds.
	Timeout time.Duration

	// MaxParallel limits concurrently running checks. Zero or less runs
	// every check at once; 1 runs them sequentially.
	MaxParallel int
}

// Aggregator runs named checkers for the health endpoints. Probes that
// arrive while a CheckAll run is in flight share its results.
type Aggregator struct {
	config AggregatorConfig
	flight singleflight.Group

	mu       sync.RWMutex
	checkers map[string]Checker
	order    []string
}

// NewAggregator creates an aggregator. Only the first config is used.
func NewAggregator(config ...AggregatorConfig) *Aggregator {
	var cfg AggregatorConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultCheckTimeout
	}
	return &Aggregator{config: cfg, checkers: make(map[string]Checker)}
}

// Register adds or replaces a named checker. A replaced checker keeps its
// registration position.
func (a *Aggregator) Register(name string, checker Checker) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.checkers[name]; !ok {
		a.order = append(a.order, name)
	}
	a.checkers[name] = checker
}

// CheckerNames returns registered names in registration order.
func (a *Aggregator) CheckerNames() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.order)
}

// Check runs the checker registered as name.
func (a *Aggregator) Check(ctx context.Context, name string) (Result, error) {
	a.mu.RLock()
	checker, ok := a.checkers[name]
	a.mu.RUnlock()
	if !ok {
		return Result{}, ErrCheckerNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()
	return runCheck(ctx, checker), nil
}

// CheckAll runs every registered check and returns results keyed by name.
// The returned map belongs to the caller.
func (a *Aggregator) CheckAll(ctx context.Context) map[string]Result {
	v, _, _ := a.flight.Do("all", func() (any, error) {
		return a.checkAll(ctx), nil
	})
	return maps.Clone(v.(map[string]Result))
}

func (a *Aggregator) checkAll(ctx context.Context) map[string]Result {
	a.mu.RLock()
	checkers := maps.Clone(a.checkers)
	a.mu.RUnlock()

	results := make(map[string]Result, len(checkers))
	if len(checkers) == 0 {
		return results
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	var mu sync.Mutex
	var g errgroup.Group
	if a.config.MaxParallel > 0 {
		g.SetLimit(a.config.MaxParallel)
	}
	for name, checker := range checkers {
		g.Go(func() error {
			result := runCheck(ctx, checker)
			mu.Lock()
			results[name] = result
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// OverallStatus returns the worst status among results, or healthy when empty.
func OverallStatus(results map[string]Result) Status {
	overall := StatusHealthy
	for _, r := range results {
		overall = max(overall, r.Status)
	}
	return overall
}

// runCheck runs checker until ctx is done. A checker that ignores ctx
// keeps running in its goroutine but its result is discarded.
func runCheck(ctx context.Context, checker Checker) Result {
	start := time.Now()
	done := make(chan Result, 1)

	go func() {
		r := checker.Check(ctx)
		r.Duration = time.Since(start)
		if r.Timestamp.IsZero() {
			r.Timestamp = start
		}
		done <- r
	}()

	select {
	case r := <-done:
		return r
	case <-ctx.Done():
		r := Unhealthy("check timed out", ErrCheckTimeout)
		r.Duration = time.Since(start)
		r.Timestamp = start
		return r
	}
}
