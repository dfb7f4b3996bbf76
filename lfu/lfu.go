// Package lfu implements the frequency eviction engine: per-frequency
// buckets with a minimum-frequency cursor and a global aging pass that
// dampens all counters once the mean frequency crosses a threshold.
// Without aging, long-lived hot entries become permanently unevictable
// after a workload shift.
package lfu

import (
	"sync"

	"github.com/IvanBrykalov/polycache/internal/list"
	"github.com/IvanBrykalov/polycache/policy"
)

// DefaultMaxAverage is the mean-frequency threshold that triggers a
// global aging pass when no explicit value is configured.
const DefaultMaxAverage = 10

// Cache is a Least-Frequently-Used cache with LRU tie-break: the victim
// is the oldest entry of the lowest-frequency bucket. All methods are
// safe for concurrent use.
type Cache[K comparable, V any] struct {
	mu sync.Mutex

	index   map[K]*list.Node[K, V]
	buckets map[int]*list.List[K, V] // frequency → FIFO of nodes at that frequency
	minFreq int                      // smallest key of a non-empty bucket (1 when empty)

	cap        int
	maxAverage int
	totalHits  int // cumulative accesses across live keys; drives aging

	onEvict func(K, V)
}

// New returns an LFU cache holding at most capacity entries.
// maxAverage is the mean-frequency aging threshold; values <= 0 select
// DefaultMaxAverage. A capacity of 0 yields a cache that stores nothing.
func New[K comparable, V any](capacity, maxAverage int) *Cache[K, V] {
	return NewWithEvict[K, V](capacity, maxAverage, nil)
}

// NewWithEvict is New with a callback invoked for every evicted entry.
// The callback runs under the cache lock; keep it lightweight.
func NewWithEvict[K comparable, V any](capacity, maxAverage int, onEvict func(k K, v V)) *Cache[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	if maxAverage <= 0 {
		maxAverage = DefaultMaxAverage
	}
	return &Cache[K, V]{
		index:      make(map[K]*list.Node[K, V], capacity),
		buckets:    make(map[int]*list.List[K, V]),
		minFreq:    1,
		cap:        capacity,
		maxAverage: maxAverage,
		onEvict:    onEvict,
	}
}

// Set inserts or updates k→v. Updating a live key counts as a hit and
// raises its frequency; inserting into a full cache evicts the oldest
// entry of the lowest-frequency bucket first.
func (c *Cache[K, V]) Set(k K, v V) {
	if c.cap == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.index[k]; ok {
		n.Value = v
		c.touch(n)
		return
	}

	if len(c.index) >= c.cap {
		c.evict()
	}
	n := &list.Node[K, V]{Key: k, Value: v, Count: 1}
	c.index[k] = n
	c.bucket(1).PushBack(n)
	c.minFreq = 1
	c.recordHit()
}

// Get returns the value for k and raises its frequency on hit.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.index[k]
	if !ok {
		var zero V
		return zero, false
	}
	v := n.Value
	c.touch(n)
	return v, true
}

// GetDefault returns the value for k, or the zero value of V on miss.
func (c *Cache[K, V]) GetDefault(k K) V {
	v, _ := c.Get(k)
	return v
}

// Len returns the number of live entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.index)
}

// Purge drops every entry and resets the frequency state.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.index = make(map[K]*list.Node[K, V], c.cap)
	c.buckets = make(map[int]*list.List[K, V])
	c.minFreq = 1
	c.totalHits = 0
}

// -------------------- internals (mu held) --------------------

// touch moves n from bucket f to bucket f+1 and advances minFreq past
// a drained minimum bucket.
func (c *Cache[K, V]) touch(n *list.Node[K, V]) {
	old := n.Count
	c.unbucket(n)
	n.Count = old + 1
	c.bucket(n.Count).PushBack(n)
	if old == c.minFreq && c.buckets[old] == nil {
		c.minFreq = n.Count
	}
	c.recordHit()
}

// bucket returns the list for frequency f, creating it on demand.
func (c *Cache[K, V]) bucket(f int) *list.List[K, V] {
	b := c.buckets[f]
	if b == nil {
		b = list.New[K, V]()
		c.buckets[f] = b
	}
	return b
}

// unbucket removes n from its current bucket, dropping the bucket when
// it drains. Keeping the bucket map free of empty lists keeps the
// minFreq rescan honest.
func (c *Cache[K, V]) unbucket(n *list.Node[K, V]) {
	b := c.buckets[n.Count]
	b.Remove(n)
	if b.Len() == 0 {
		delete(c.buckets, n.Count)
	}
}

// evict removes the oldest entry of the minFreq bucket.
func (c *Cache[K, V]) evict() {
	b := c.buckets[c.minFreq]
	if b == nil {
		// minFreq can go stale only transiently; rescan before giving up.
		c.updateMinFreq()
		if b = c.buckets[c.minFreq]; b == nil {
			return
		}
	}
	n := b.Front()
	c.unbucket(n)
	delete(c.index, n.Key)

	// An evicted key takes its accesses out of the running total. Aging
	// shrinks per-node counters without touching the total, so clamp
	// against drift below zero.
	c.totalHits -= n.Count
	if c.totalHits < 0 {
		c.totalHits = 0
	}
	if c.buckets[c.minFreq] == nil {
		c.updateMinFreq()
	}
	if c.onEvict != nil {
		c.onEvict(n.Key, n.Value)
	}
}

// recordHit bumps the running total and triggers a global aging pass
// when the mean frequency exceeds maxAverage.
func (c *Cache[K, V]) recordHit() {
	c.totalHits++
	if len(c.index) == 0 {
		return
	}
	if c.totalHits/len(c.index) > c.maxAverage {
		c.age()
	}
}

// age dampens every live counter by maxAverage/2 (never below 1) and
// rebuilds bucket membership. Lossy by design: FIFO order inside the
// rebuilt buckets follows map iteration.
func (c *Cache[K, V]) age() {
	step := c.maxAverage / 2
	for _, n := range c.index {
		c.unbucket(n)
		n.Count -= step
		if n.Count < 1 {
			n.Count = 1
		}
		c.bucket(n.Count).PushBack(n)
	}
	c.updateMinFreq()
}

// updateMinFreq rescans bucket keys for the smallest non-empty one.
func (c *Cache[K, V]) updateMinFreq() {
	smallest := 0
	for f := range c.buckets {
		if smallest == 0 || f < smallest {
			smallest = f
		}
	}
	if smallest == 0 {
		smallest = 1
	}
	c.minFreq = smallest
}

// Policy returns a factory building per-shard LFU engines with the given
// aging threshold (<= 0 selects DefaultMaxAverage).
func Policy[K comparable, V any](maxAverage int) policy.Factory[K, V] {
	return func(capacity int, onEvict func(K, V)) policy.Engine[K, V] {
		return NewWithEvict[K, V](capacity, maxAverage, onEvict)
	}
}

var _ policy.Engine[string, int] = (*Cache[string, int])(nil)
