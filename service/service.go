// Package service runs the solve pipeline: cache lookup, validation,
// feasibility, search, and cache store.
package service

import (
	"context"
	"fmt"

	"github.com/jonwraymond/jugsolver/cache"
	"github.com/jonwraymond/jugsolver/health"
	"github.com/jonwraymond/jugsolver/observe"
	"github.com/jonwraymond/jugsolver/puzzle"
)

// SolveOperation identifies Solve in spans, metrics and logs.
var SolveOperation = observe.Operation{Component: "service", Name: "solve"}

// Result is a solution and whether it was served from the cache.
type Result struct {
	Solution puzzle.Solution
	Hit      bool
}

// CacheHit reports whether the solution came from the cache.
func (r Result) CacheHit() bool { return r.Hit }

// Service solves puzzles and memoizes successful results.
type Service struct {
	store      cache.Store[puzzle.ProblemKey, puzzle.Solution]
	memo       *cache.Memo[puzzle.ProblemKey, puzzle.Solution]
	logger     observe.Logger
	middleware *observe.Middleware
	tracer     observe.Tracer
	metrics    observe.Metrics
	hook       func(puzzle.ProblemKey)
	maxCap     int
	exec       observe.ExecuteFunc
}

// Option configures a Service.
type Option func(*Service)

// WithStore replaces the default unbounded in-memory store.
func WithStore(store cache.Store[puzzle.ProblemKey, puzzle.Solution]) Option {
	return func(s *Service) { s.store = store }
}

// WithLogger sets the logger for pipeline diagnostics.
func WithLogger(l observe.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithMiddleware wraps every solve in m. It takes precedence over
// WithTracer and WithMetrics.
func WithMiddleware(m *observe.Middleware) Option {
	return func(s *Service) { s.middleware = m }
}

// WithTracer records a span per solve.
func WithTracer(t observe.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// WithMetrics records solve counts, latency and cache hits.
func WithMetrics(m observe.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithSearchHook calls fn before each search, after a cache miss has passed
// validation and feasibility.
func WithSearchHook(fn func(puzzle.ProblemKey)) Option {
	return func(s *Service) { s.hook = fn }
}

// WithMaxCapacity rejects keys whose X or Y exceeds n with ErrCapacityLimit
// before any search runs. The search keeps a map entry per reachable
// state, up to (x+1)*(y+1) of them, so n bounds the memory of one request.
// Zero or less means no limit.
func WithMaxCapacity(n int) Option {
	return func(s *Service) { s.maxCap = n }
}

// New creates a Service.
func New(opts ...Option) (*Service, error) {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		s.store = cache.NewMemoryStore[puzzle.ProblemKey, puzzle.Solution](cache.DefaultPolicy())
	}
	if s.logger == nil {
		s.logger = observe.NopLogger()
	}
	if s.middleware == nil {
		s.middleware = observe.NewMiddleware(s.tracer, s.metrics, s.logger)
	}

	memo, err := cache.NewMemo(s.store, cache.StringerKeyer[puzzle.ProblemKey]())
	if err != nil {
		return nil, err
	}
	s.memo = memo
	s.exec = s.middleware.Wrap(s.execute)
	return s, nil
}

// Solve returns a shortest solution for key.
//
// The cache is consulted before key is validated, so a stored key is served
// without further checks. Only successful results are stored.
func (s *Service) Solve(ctx context.Context, key puzzle.ProblemKey) (puzzle.Solution, error) {
	res, err := s.SolveResult(ctx, key)
	if err != nil {
		return nil, err
	}
	return res.Solution, nil
}

// SolveResult is Solve plus the cache outcome.
func (s *Service) SolveResult(ctx context.Context, key puzzle.ProblemKey) (Result, error) {
	out, err := s.exec(ctx, SolveOperation, key)
	if err != nil {
		if Classify(err) == KindInternal {
			s.logger.Error(ctx, "invariant violation",
				observe.Field{Key: "problem", Value: key.String()},
				observe.Field{Key: "error", Value: err.Error()},
			)
		}
		return Result{}, err
	}
	return out.(Result), nil
}

func (s *Service) execute(ctx context.Context, _ observe.Operation, input any) (any, error) {
	key, ok := input.(puzzle.ProblemKey)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected input %T", puzzle.ErrInvariantViolation, input)
	}

	sol, hit, err := s.memo.Do(ctx, key, s.compute)
	if err != nil {
		return nil, err
	}
	return Result{Solution: sol, Hit: hit}, nil
}

// compute runs on a cache miss.
func (s *Service) compute(ctx context.Context, key puzzle.ProblemKey) (puzzle.Solution, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	if s.maxCap > 0 && max(key.X, key.Y) > s.maxCap {
		return nil, capacityError(key, s.maxCap)
	}
	if err := puzzle.CheckFeasible(key); err != nil {
		return nil, err
	}

	if s.hook != nil {
		s.hook(key)
	}

	sol, stats, err := puzzle.SolveWithStats(key)
	if err != nil {
		return nil, err
	}
	final := sol.Final()
	s.logger.Debug(ctx, "search finished",
		observe.Field{Key: "problem", Value: key.String()},
		observe.Field{Key: "final_x", Value: final.BucketX},
		observe.Field{Key: "final_y", Value: final.BucketY},
		observe.Field{Key: "expanded", Value: stats.Expanded},
		observe.Field{Key: "enqueued", Value: stats.Enqueued},
		observe.Field{Key: "depth", Value: stats.Depth},
	)
	return sol, nil
}

// CacheStats returns the store's counters when the store keeps them.
func (s *Service) CacheStats() (cache.Stats, bool) {
	st, ok := s.store.(interface{ Stats() cache.Stats })
	if !ok {
		return cache.Stats{}, false
	}
	return st.Stats(), true
}

// HealthChecker reports cache fill. A bounded cache is degraded at 90% of
// its capacity; an unbounded one is always healthy.
func (s *Service) HealthChecker() health.Checker {
	return health.NewCapacityChecker("solution_cache", func() (int, int) {
		limit := 0
		if p, ok := s.store.(interface{ Policy() cache.Policy }); ok {
			limit = p.Policy().MaxEntries
		}
		return s.store.Len(), limit
	}, health.Thresholds{Warning: 0.9})
}
