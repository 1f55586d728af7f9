// Package resilience provides admission control for incoming work.
//
// Two patterns are provided and can be composed with an Executor:
//
//   - Rate Limiter: a token bucket (golang.org/x/time/rate) that caps the
//     request rate, either rejecting or briefly waiting for a token.
//
//   - Bulkhead: a counting semaphore that caps concurrent operations so CPU
//     bound searches cannot pile up without bound.
//
// Usage:
//
//	exec := resilience.NewExecutor(
//	    resilience.WithRateLimiter(resilience.NewRateLimiter(resilience.RateLimiterConfig{Rate: 200, Burst: 50})),
//	    resilience.WithBulkhead(resilience.NewBulkhead(resilience.BulkheadConfig{MaxConcurrent: 64})),
//	)
//
//	err := exec.Execute(ctx, func(ctx context.Context) error {
//	    return solve(ctx)
//	})
package resilience
