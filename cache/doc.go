// Package cache provides a concurrency-safe memo store for computed results.
//
// It provides a typed Store interface with an in-memory implementation, an
// optional LRU bound, and Memo, which consults the store before computing and
// collapses concurrent computations of the same key.
package cache
