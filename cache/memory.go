package cache

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
)

// MemoryStore is an in-memory Store.
type MemoryStore[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]*list.Element
	order   *list.List // front is most recently used; only reordered when bounded
	policy  Policy

	hits      atomic.Uint64
	misses    atomic.Uint64
	stores    atomic.Uint64
	evictions atomic.Uint64
}

type storeEntry[K comparable, V any] struct {
	key   K
	value V
}

// NewMemoryStore creates a new in-memory store with the given policy.
func NewMemoryStore[K comparable, V any](policy Policy) *MemoryStore[K, V] {
	return &MemoryStore[K, V]{
		entries: make(map[K]*list.Element),
		order:   list.New(),
		policy:  policy,
	}
}

// Lookup retrieves a value from the store. Returns (zero, false) on miss.
func (s *MemoryStore[K, V]) Lookup(_ context.Context, key K) (V, bool) {
	var elem *list.Element
	var ok bool

	if s.policy.Bounded() {
		// Recency update needs the write lock.
		s.mu.Lock()
		elem, ok = s.entries[key]
		if ok {
			s.order.MoveToFront(elem)
		}
		s.mu.Unlock()
	} else {
		s.mu.RLock()
		elem, ok = s.entries[key]
		s.mu.RUnlock()
	}

	if !ok {
		s.misses.Add(1)
		var zero V
		return zero, false
	}

	s.hits.Add(1)
	// Entries are never updated after insertion, so reading outside the lock is safe.
	return elem.Value.(*storeEntry[K, V]).value, true
}

// Store records value for key. A key that is already present keeps its
// original value.
func (s *MemoryStore[K, V]) Store(_ context.Context, key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.entries[key]; ok {
		if s.policy.Bounded() {
			s.order.MoveToFront(elem)
		}
		return
	}

	s.entries[key] = s.order.PushFront(&storeEntry[K, V]{key: key, value: value})
	s.stores.Add(1)

	if s.policy.Bounded() {
		for s.order.Len() > s.policy.MaxEntries {
			oldest := s.order.Back()
			s.order.Remove(oldest)
			delete(s.entries, oldest.Value.(*storeEntry[K, V]).key)
			s.evictions.Add(1)
		}
	}
}

// Len returns the number of entries.
func (s *MemoryStore[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Policy returns the store's policy.
func (s *MemoryStore[K, V]) Policy() Policy {
	return s.policy
}

// Stats returns a snapshot of store activity.
func (s *MemoryStore[K, V]) Stats() Stats {
	return Stats{
		Hits:      s.hits.Load(),
		Misses:    s.misses.Load(),
		Stores:    s.stores.Load(),
		Evictions: s.evictions.Load(),
		Entries:   s.Len(),
	}
}

// Ensure MemoryStore implements Store
var _ Store[string, int] = (*MemoryStore[string, int])(nil)
