package lru

import (
	"sync"

	"github.com/IvanBrykalov/polycache/policy"
)

// CacheK is an LRU-K admission wrapper: a key enters the main cache only
// after it has been touched k times while still remembered by a bounded
// history. Until then its value sits in a pending map keyed off the same
// history window. Filters one-off scans and cold keys out of the main
// cache.
//
// The wrapper holds its own mutex across each composite operation; the
// inner caches additionally serialize themselves, which is harmless as
// they never call back out.
type CacheK[K comparable, V any] struct {
	mu      sync.Mutex
	main    *Cache[K, V]
	history *Cache[K, int] // key → touch count, bounded LRU
	pending map[K]V        // values seen but not yet admitted
	k       int
}

// NewK returns an LRU-K cache. capacity bounds the main cache,
// historyCapacity bounds the touch-count history, and k is the number of
// touches required for admission (values < 1 are treated as 1, which
// admits a key on its first Set, like plain LRU).
func NewK[K comparable, V any](capacity, historyCapacity, k int) *CacheK[K, V] {
	return NewKWithEvict[K, V](capacity, historyCapacity, k, nil)
}

// NewKWithEvict is NewK with an eviction callback for the main cache.
func NewKWithEvict[K comparable, V any](capacity, historyCapacity, k int, onEvict func(K, V)) *CacheK[K, V] {
	if k < 1 {
		k = 1
	}
	c := &CacheK[K, V]{
		main:    NewWithEvict[K, V](capacity, onEvict),
		pending: make(map[K]V),
		k:       k,
	}
	// When the history forgets a key, its pending value goes with it:
	// the admission count restarts from zero, so a stale value must not
	// be promoted later. The callback runs while c.mu is held.
	c.history = NewWithEvict[K, int](historyCapacity, func(key K, _ int) {
		delete(c.pending, key)
	})
	return c
}

// Set updates k in the main cache if live; otherwise it records one more
// touch, remembers the value for promotion, and admits the entry into
// the main cache once the touch count reaches k.
func (c *CacheK[K, V]) Set(k K, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.main.Get(k); ok {
		c.main.Set(k, v)
		return
	}

	count := c.history.GetDefault(k) + 1
	c.history.Set(k, count)
	c.pending[k] = v

	if count >= c.k {
		c.history.Remove(k)
		delete(c.pending, k)
		c.main.Set(k, v)
	}
}

// Get returns the value for k. The touch count advances on every call,
// misses included; a miss that completes the k-th touch promotes the
// pending value and returns it as a hit.
func (c *CacheK[K, V]) Get(k K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, inMain := c.main.Get(k)

	count := c.history.GetDefault(k) + 1
	c.history.Set(k, count)

	if inMain {
		return v, true
	}
	if count >= c.k {
		if pv, ok := c.pending[k]; ok {
			c.history.Remove(k)
			delete(c.pending, k)
			c.main.Set(k, pv)
			return pv, true
		}
	}
	var zero V
	return zero, false
}

// GetDefault returns the value for k, or the zero value of V on miss.
func (c *CacheK[K, V]) GetDefault(k K) V {
	v, _ := c.Get(k)
	return v
}

// Remove deletes k from the main cache, the history, and the pending
// values. It reports whether k was live in the main cache.
func (c *CacheK[K, V]) Remove(k K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.history.Remove(k)
	delete(c.pending, k)
	return c.main.Remove(k)
}

// Len returns the number of entries live in the main cache.
func (c *CacheK[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.main.Len()
}

// PolicyK returns a factory building per-shard LRU-K engines. Every
// shard gets its own history of historyCapacity entries.
func PolicyK[K comparable, V any](historyCapacity, k int) policy.Factory[K, V] {
	return func(capacity int, onEvict func(K, V)) policy.Engine[K, V] {
		return NewKWithEvict[K, V](capacity, historyCapacity, k, onEvict)
	}
}

var (
	_ policy.Engine[string, int] = (*CacheK[string, int])(nil)
	_ policy.Remover[string]     = (*CacheK[string, int])(nil)
)
