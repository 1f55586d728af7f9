package resilience

import (
	"context"
	"testing"
)

func BenchmarkRateLimiter_Allow(b *testing.B) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 1e9, Burst: 1 << 20})
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			rl.Allow()
		}
	})
}

func BenchmarkBulkhead_Execute(b *testing.B) {
	bh := NewBulkhead(BulkheadConfig{MaxConcurrent: 1 << 10})
	ctx := context.Background()
	op := func(context.Context) error { return nil }

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = bh.Execute(ctx, op)
		}
	})
}
