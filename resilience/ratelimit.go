package resilience

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterConfig configures the rate limiter.
type RateLimiterConfig struct {
	// Rate is the number of operations allowed per second.
	// Default: 100
	Rate float64

	// Burst is the maximum burst size.
	// Default: 10
	Burst int

	// MaxWait is how long a caller may wait for a token. Zero rejects
	// immediately when the bucket is empty.
	MaxWait time.Duration
}

// RateLimiter is a token bucket limiter.
type RateLimiter struct {
	config  RateLimiterConfig
	limiter *rate.Limiter
}

// NewRateLimiter creates a new rate limiter.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.Rate <= 0 {
		config.Rate = 100
	}
	if config.Burst <= 0 {
		config.Burst = 10
	}
	if config.MaxWait < 0 {
		config.MaxWait = 0
	}

	return &RateLimiter{
		config:  config,
		limiter: rate.NewLimiter(rate.Limit(config.Rate), config.Burst),
	}
}

// Allow reports whether one operation may proceed now, consuming a token if so.
func (rl *RateLimiter) Allow() bool {
	return rl.limiter.Allow()
}

// Wait blocks until a token is available, MaxWait would be exceeded, or ctx
// is done. A token that would arrive after MaxWait is not taken.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r := rl.limiter.Reserve()
	if !r.OK() {
		return ErrRateLimitExceeded
	}

	delay := r.Delay()
	if delay == 0 {
		return nil
	}
	if delay > rl.config.MaxWait {
		r.Cancel()
		return ErrRateLimitExceeded
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		r.Cancel()
		return ctx.Err()
	}
}

// Execute runs op once a token is granted.
func (rl *RateLimiter) Execute(ctx context.Context, op func(context.Context) error) error {
	if err := rl.Wait(ctx); err != nil {
		return err
	}
	return op(ctx)
}

// Tokens returns the number of tokens currently available.
func (rl *RateLimiter) Tokens() float64 {
	return rl.limiter.Tokens()
}
