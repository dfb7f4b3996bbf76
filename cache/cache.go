package cache

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/IvanBrykalov/polycache/internal/singleflight"
	"github.com/IvanBrykalov/polycache/internal/util"
	"github.com/IvanBrykalov/polycache/lru"
	"github.com/IvanBrykalov/polycache/policy"
)

// ErrNoLoader is returned by GetOrLoad when no Loader was configured.
var ErrNoLoader = errors.New("cache: no Loader provided")

// cache partitions a logical cache across independent engines by key
// hash. Each shard serializes itself; the wrapper adds only routing.
type cache[K comparable, V any] struct {
	shards []policy.Engine[K, V]
	hash   func(K) uint64
	closed atomic.Bool

	opt Options[K, V]

	// singleflight group coalescing concurrent loads in GetOrLoad.
	sf singleflight.Group[K, V]

	// hot counters on separate cache lines to avoid false sharing
	_      util.CacheLinePad
	hits   util.PaddedAtomicUint64
	misses util.PaddedAtomicUint64
	evicts util.PaddedAtomicUint64
}

// New constructs a cache with the provided Options. See Options for the
// defaults applied here. A Capacity of 0 is legal and yields a cache
// that stores nothing.
func New[K comparable, V any](opt Options[K, V]) Cache[K, V] {
	if opt.Capacity < 0 {
		opt.Capacity = 0
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Policy == nil {
		opt.Policy = lru.Policy[K, V]()
	}
	if opt.Hasher == nil {
		opt.Hasher = util.Fnv64a[K]
	}

	sh := opt.Shards
	if sh <= 0 {
		sh = util.ReasonableShardCount()
	}

	c := &cache[K, V]{
		hash: opt.Hasher,
		opt:  opt,
	}

	// Every shard shares one eviction callback: count, signal metrics,
	// then hand off to the user.
	onEvict := func(k K, v V) {
		c.evicts.Add(1)
		opt.Metrics.Evict()
		if opt.OnEvict != nil {
			opt.OnEvict(k, v)
		}
	}

	perShard := 0
	if opt.Capacity > 0 {
		perShard = (opt.Capacity + sh - 1) / sh // ceiling split
	}
	c.shards = make([]policy.Engine[K, V], sh)
	for i := range c.shards {
		c.shards[i] = opt.Policy(perShard, onEvict)
	}
	return c
}

// ---- Cache[K,V] implementation ----

// Set inserts or updates k→v in the owning shard.
func (c *cache[K, V]) Set(k K, v V) {
	if c.closed.Load() {
		return
	}
	c.getShard(k).Set(k, v)
}

// Get returns the value for k and a presence flag.
func (c *cache[K, V]) Get(k K) (V, bool) {
	if c.closed.Load() {
		var zero V
		return zero, false
	}
	v, ok := c.getShard(k).Get(k)
	if ok {
		c.hits.Add(1)
		c.opt.Metrics.Hit()
	} else {
		c.misses.Add(1)
		c.opt.Metrics.Miss()
	}
	return v, ok
}

// GetDefault returns the value for k, or the zero value of V on miss.
func (c *cache[K, V]) GetDefault(k K) V {
	v, _ := c.Get(k)
	return v
}

// Remove deletes k if present. It returns false when the shard's engine
// does not support explicit removal.
func (c *cache[K, V]) Remove(k K) bool {
	if c.closed.Load() {
		return false
	}
	if r, ok := c.getShard(k).(policy.Remover[K]); ok {
		return r.Remove(k)
	}
	return false
}

// Len returns the total number of live entries across all shards.
func (c *cache[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		total += s.Len()
	}
	return total
}

// Stats returns a snapshot of the hit/miss/eviction counters.
func (c *cache[K, V]) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evicts.Load(),
	}
}

// Close marks the cache as closed. Subsequent operations are ignored.
func (c *cache[K, V]) Close() error {
	c.closed.Store(true)
	return nil
}

// GetOrLoad returns the value for k; on miss it loads via Options.Loader,
// coalescing concurrent loads for the same key (singleflight).
func (c *cache[K, V]) GetOrLoad(ctx context.Context, k K) (V, error) {
	// fast path
	if v, ok := c.Get(k); ok {
		return v, nil
	}
	if c.opt.Loader == nil {
		var zero V
		return zero, ErrNoLoader
	}

	return c.sf.Do(ctx, k, func() (V, error) {
		// double-check after flight join
		if v, ok := c.Get(k); ok {
			return v, nil
		}
		v, err := c.opt.Loader(ctx, k)
		if err == nil {
			c.Set(k, v)
		}
		return v, err
	})
}

// getShard routes k to its shard via hash.
func (c *cache[K, V]) getShard(k K) policy.Engine[K, V] {
	return c.shards[util.ShardIndex(c.hash(k), len(c.shards))]
}
