// Package lru implements the recency eviction engine: a doubly linked
// recency list plus a key index, O(1) per operation. It also provides
// CacheK, an LRU-K admission wrapper that keeps one-off scans from
// polluting the main cache.
package lru

import (
	"sync"

	"github.com/IvanBrykalov/polycache/internal/list"
	"github.com/IvanBrykalov/polycache/policy"
)

// Cache is a Least-Recently-Used cache. The recency list keeps the
// coldest entry at the front; hits and updates move entries to the back.
// All methods are safe for concurrent use.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	index   map[K]*list.Node[K, V]
	order   *list.List[K, V]
	cap     int
	onEvict func(K, V)
}

// New returns an LRU cache holding at most capacity entries.
// A capacity of 0 (or negative) yields a cache that stores nothing:
// Set is a no-op and Get always misses.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	return NewWithEvict[K, V](capacity, nil)
}

// NewWithEvict is New with a callback invoked for every evicted entry.
// The callback runs under the cache lock; keep it lightweight.
func NewWithEvict[K comparable, V any](capacity int, onEvict func(k K, v V)) *Cache[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	return &Cache[K, V]{
		index:   make(map[K]*list.Node[K, V], capacity),
		order:   list.New[K, V](),
		cap:     capacity,
		onEvict: onEvict,
	}
}

// Set inserts or updates k→v and marks it most recently used.
// Inserting into a full cache evicts the least recently used entry.
func (c *Cache[K, V]) Set(k K, v V) {
	if c.cap == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.index[k]; ok {
		n.Value = v
		c.order.MoveToBack(n)
		return
	}
	if len(c.index) >= c.cap {
		c.evictOldest()
	}
	n := &list.Node[K, V]{Key: k, Value: v, Count: 1}
	c.index[k] = n
	c.order.PushBack(n)
}

// Get returns the value for k and promotes it to most recently used.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.index[k]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToBack(n)
	return n.Value, true
}

// GetDefault returns the value for k, or the zero value of V on miss.
func (c *Cache[K, V]) GetDefault(k K) V {
	v, _ := c.Get(k)
	return v
}

// Remove deletes k if present and reports whether it was live.
func (c *Cache[K, V]) Remove(k K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.index[k]
	if !ok {
		return false
	}
	c.order.Remove(n)
	delete(c.index, k)
	return true
}

// Len returns the number of live entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.index)
}

// evictOldest drops the front (least recently used) entry. mu held.
func (c *Cache[K, V]) evictOldest() {
	n := c.order.Front()
	if n == nil {
		return
	}
	c.order.Remove(n)
	delete(c.index, n.Key)
	if c.onEvict != nil {
		c.onEvict(n.Key, n.Value)
	}
}

// Policy returns a factory building per-shard LRU engines.
func Policy[K comparable, V any]() policy.Factory[K, V] {
	return func(capacity int, onEvict func(K, V)) policy.Engine[K, V] {
		return NewWithEvict[K, V](capacity, onEvict)
	}
}

var (
	_ policy.Engine[string, int] = (*Cache[string, int])(nil)
	_ policy.Remover[string]     = (*Cache[string, int])(nil)
)
