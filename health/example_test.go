package health_test

import (
	"context"
	"fmt"

	"github.com/jonwraymond/jugsolver/health"
)

func ExampleNewCapacityChecker() {
	used, limit := 95, 100
	c := health.NewCapacityChecker("cache", func() (int, int) { return used, limit }, health.Thresholds{})

	r := c.Check(context.Background())
	fmt.Println(r.Status, r.Message)
	// Output:
	// degraded cache at 95.0% of capacity
}

func ExampleAggregator_CheckAll() {
	agg := health.NewAggregator()
	agg.Register("ok", health.NewCheckerFunc("ok", func(context.Context) health.Result {
		return health.Healthy("fine")
	}))

	results := agg.CheckAll(context.Background())
	fmt.Println(health.OverallStatus(results))
	// Output:
	// healthy
}
