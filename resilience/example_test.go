package resilience_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonwraymond/jugsolver/resilience"
)

func ExampleExecutor_Execute() {
	exec := resilience.NewExecutor(
		resilience.WithRateLimiter(resilience.NewRateLimiter(resilience.RateLimiterConfig{Rate: 0.001, Burst: 2})),
		resilience.WithBulkhead(resilience.NewBulkhead(resilience.BulkheadConfig{MaxConcurrent: 4})),
	)

	for i := 0; i < 3; i++ {
		err := exec.Execute(context.Background(), func(context.Context) error { return nil })
		fmt.Println(i, errors.Is(err, resilience.ErrRateLimitExceeded))
	}
	// Output:
	// 0 false
	// 1 false
	// 2 true
}
