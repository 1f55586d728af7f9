package cache

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// ComputeFunc produces the value for a key on a cache miss.
type ComputeFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

// Memo wraps a computation with a Store.
//
// Contract:
//   - Concurrency: Do is safe for concurrent use.
//   - Ordering: the store is consulted before fn runs and written after fn succeeds.
//   - Errors: errors are returned to every waiting caller and are NOT stored.
type Memo[K comparable, V any] struct {
	store Store[K, V]
	keyer Keyer[K]
	group singleflight.Group
}

// NewMemo creates a memo over store. Concurrent misses for keys with the
// same keyer string share one computation.
func NewMemo[K comparable, V any](store Store[K, V], keyer Keyer[K]) (*Memo[K, V], error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if keyer == nil {
		return nil, ErrNilKeyer
	}
	return &Memo[K, V]{store: store, keyer: keyer}, nil
}

// Do returns the stored value for key, or runs fn and stores its result.
// hit reports whether the value came from the store without computing.
//
// While a computation is in flight, later callers for the same key wait for
// it instead of starting their own. fn receives the context of the caller
// that started the flight.
func (m *Memo[K, V]) Do(ctx context.Context, key K, fn ComputeFunc[K, V]) (value V, hit bool, err error) {
	if cached, ok := m.store.Lookup(ctx, key); ok {
		return cached, true, nil
	}

	res, err, _ := m.group.Do(m.keyer.Key(key), func() (any, error) {
		v, err := fn(ctx, key)
		if err != nil {
			return nil, err
		}
		m.store.Store(ctx, key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, false, err
	}

	return res.(V), false, nil
}

// Store returns the underlying store.
func (m *Memo[K, V]) Store() Store[K, V] {
	return m.store
}
