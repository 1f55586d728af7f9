package cache

// Policy configures store capacity.
type Policy struct {
	// MaxEntries bounds the number of entries. When the bound is reached the
	// least recently used entry is evicted. If zero, the store grows without
	// bound and nothing is ever evicted.
	MaxEntries int
}

// DefaultPolicy returns the default policy: unbounded, no eviction.
func DefaultPolicy() Policy {
	return Policy{}
}

// BoundedPolicy returns an LRU policy holding at most n entries.
// Non-positive n yields the unbounded default.
func BoundedPolicy(n int) Policy {
	if n <= 0 {
		return DefaultPolicy()
	}
	return Policy{MaxEntries: n}
}

// Bounded reports whether the policy evicts.
func (p Policy) Bounded() bool {
	return p.MaxEntries > 0
}
