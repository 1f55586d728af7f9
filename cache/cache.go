package cache

import (
	"context"
	"errors"
)

// Sentinel errors for cache operations.
var (
	ErrNilStore = errors.New("cache: store is nil")
	ErrNilKeyer = errors.New("cache: keyer is nil")
)

// Store maps keys to previously computed values.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Lifecycle: an entry is created at most once per key and never updated;
//     storing a key that is already present is a no-op.
//   - Errors: Lookup never errors; it returns (zero, false) on miss.
type Store[K comparable, V any] interface {
	// Lookup retrieves a stored value. Returns (zero, false) on miss.
	Lookup(ctx context.Context, key K) (V, bool)

	// Store records value for key. Idempotent.
	Store(ctx context.Context, key K, value V)

	// Len returns the number of entries.
	Len() int
}

// Stats is a point-in-time snapshot of store activity.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Stores    uint64
	Evictions uint64
	Entries   int
}

// HitRatio returns Hits / (Hits + Misses), or 0 before any lookup.
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
