// Package arc implements the Adaptive Replacement Cache: a recency side
// (T1, LRU with ghost history B1) and a frequency side (T2, frequency
// buckets with ghost history B2) that re-partition capacity dynamically.
// A hit in a side's ghost history means "this side would have hit if it
// were larger", so the coordinator shifts one unit of capacity toward it.
//
// The coordinator holds no lock of its own; each side serializes itself.
// A concurrent observer may therefore witness transient states (a key
// mirrored on both sides, a put racing a ghost check). The policy is
// advisory, not a correctness boundary, so this is tolerated.
package arc

import (
	"github.com/IvanBrykalov/polycache/policy"
)

// DefaultTransformThreshold is the hit count at which a recency-side
// entry is promoted to the frequency side.
const DefaultTransformThreshold = 2

// Cache is an ARC cache. All methods are safe for concurrent use.
type Cache[K comparable, V any] struct {
	recency   *recencyPart[K, V]
	frequency *frequencyPart[K, V]
}

// New returns an ARC cache. Each side starts with the full capacity as
// its live budget; ghost histories mirror it. transformThreshold <= 0
// selects DefaultTransformThreshold. A capacity of 0 yields a cache
// that stores nothing.
func New[K comparable, V any](capacity, transformThreshold int) *Cache[K, V] {
	return NewWithEvict[K, V](capacity, transformThreshold, nil)
}

// NewWithEvict is New with a callback invoked whenever either side
// demotes a live entry to its ghost history (the point where the value
// is dropped). A key mirrored on both sides can trigger it once per
// side.
func NewWithEvict[K comparable, V any](capacity, transformThreshold int, onEvict func(k K, v V)) *Cache[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	if transformThreshold <= 0 {
		transformThreshold = DefaultTransformThreshold
	}
	return &Cache[K, V]{
		recency:   newRecencyPart[K, V](capacity, transformThreshold, onEvict),
		frequency: newFrequencyPart[K, V](capacity, onEvict),
	}
}

// Set inserts or updates k→v. A ghost hit on either side first shifts
// one unit of capacity toward that side, and the key then re-enters
// through the recency side alone. A brand-new key is inserted into the
// recency side and mirrored into the frequency side, so the first-seen
// key is tracked on both until its hit pattern settles it on one.
func (c *Cache[K, V]) Set(k K, v V) {
	inGhost := c.checkGhosts(k)

	if !inGhost {
		if c.recency.put(k, v) {
			c.frequency.put(k, v)
		}
		return
	}
	c.recency.put(k, v)
}

// Get returns the value for k. Ghost hits rebalance capacity exactly as
// in Set. A recency-side hit that reaches the transform threshold copies
// the entry to the frequency side.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.checkGhosts(k)

	if v, promote, ok := c.recency.get(k); ok {
		if promote {
			c.frequency.put(k, v)
		}
		return v, true
	}
	return c.frequency.get(k)
}

// GetDefault returns the value for k, or the zero value of V on miss.
func (c *Cache[K, V]) GetDefault(k K) V {
	v, _ := c.Get(k)
	return v
}

// Len returns the number of live entries summed over both sides. A key
// mirrored on both sides counts once per side.
func (c *Cache[K, V]) Len() int {
	return c.recency.len() + c.frequency.len()
}

// checkGhosts consults both ghost histories. A hit in one side's history
// shrinks the other side by one and, on success, grows the hit side by
// one. It reports whether k was in either history.
func (c *Cache[K, V]) checkGhosts(k K) bool {
	if c.recency.checkGhost(k) {
		if c.frequency.decreaseCapacity() {
			c.recency.increaseCapacity()
		}
		return true
	}
	if c.frequency.checkGhost(k) {
		if c.recency.decreaseCapacity() {
			c.frequency.increaseCapacity()
		}
		return true
	}
	return false
}

// Policy returns a factory building per-shard ARC engines
// (transformThreshold <= 0 selects DefaultTransformThreshold).
func Policy[K comparable, V any](transformThreshold int) policy.Factory[K, V] {
	return func(capacity int, onEvict func(K, V)) policy.Engine[K, V] {
		return NewWithEvict[K, V](capacity, transformThreshold, onEvict)
	}
}

var _ policy.Engine[string, int] = (*Cache[string, int])(nil)
