package cache

import "fmt"

// Keyer derives the deterministic string form of a key.
// Memo uses it to collapse concurrent computations of the same key.
//
// Contract:
// - Determinism: equal keys must produce equal strings, distinct keys distinct strings.
// - Concurrency: implementations must be safe for concurrent use.
type Keyer[K any] interface {
	Key(k K) string
}

// KeyerFunc adapts a function to Keyer.
type KeyerFunc[K any] func(K) string

// Key calls f(k).
func (f KeyerFunc[K]) Key(k K) string {
	return f(k)
}

// StringerKeyer keys values by their String method.
func StringerKeyer[K fmt.Stringer]() Keyer[K] {
	return KeyerFunc[K](func(k K) string {
		return k.String()
	})
}
