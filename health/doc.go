// Package health provides health checking for the solver service.
//
// A Checker reports Healthy, Degraded or Unhealthy. An Aggregator runs a set
// of named checkers concurrently under one timeout, and the HTTP handlers
// expose the combined view as liveness, readiness and detailed endpoints.
//
// Basic usage:
//
//	agg := health.NewAggregator()
//	agg.Register("memory", health.NewMemoryChecker(health.MemoryCheckerConfig{}))
//	agg.Register("cache", health.NewCapacityChecker("cache", usage, health.Thresholds{}))
//
//	mux := http.NewServeMux()
//	health.RegisterHandlers(mux, agg)
package health
