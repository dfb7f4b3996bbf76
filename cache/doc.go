// Package cache provides a fast, generic, sharded in-memory cache over a
// pluggable family of eviction engines (LRU by default; LFU with aging,
// ARC, and LRU-K admission are provided by the sibling engine packages).
//
// Design
//
//   - Concurrency: the cache is split into shards, each an independent
//     engine guarded by its own mutex. The default shard count matches
//     the hardware parallelism (util.ReasonableShardCount). Operations
//     on keys of different shards never contend.
//
//   - Routing: a key is hashed with 64-bit FNV-1a (or Options.Hasher)
//     and mapped to a shard; all operations for that key stay inside
//     that shard. Total capacity is split ceil(capacity/shards) per
//     shard, so the live total may exceed the request by up to
//     shards-1 entries.
//
//   - Policies: Options.Policy selects the eviction engine per shard.
//     lru.Policy is the default; lfu.Policy, arc.Policy and lru.PolicyK
//     plug in without any caller-side changes.
//
//   - GetOrLoad: coalesces concurrent loads for the same key using
//     singleflight. If Loader is nil, GetOrLoad returns ErrNoLoader.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Evict signals
//     (NoopMetrics by default; metrics/prom exports them to
//     Prometheus). Stats() returns the cache's own padded counters.
//
//   - Callbacks: Options.OnEvict(k, v) is called under the shard lock
//     for every eviction; keep it lightweight.
//
// Basic usage
//
//	c := cache.New[string, []byte](cache.Options[string, []byte]{Capacity: 10_000})
//	c.Set("a", []byte("1"))
//	if v, ok := c.Get("a"); ok {
//	    _ = v // use value
//	}
//	c.Remove("a")
//
// Using an alternative engine (ARC)
//
//	c := cache.New[string, string](cache.Options[string, string]{
//	    Capacity: 50_000,
//	    Policy:   arc.Policy[string, string](2),
//	})
//
// With GetOrLoad (singleflight)
//
//	c := cache.New[string, string](cache.Options[string, string]{
//	    Capacity: 1024,
//	    Loader: func(ctx context.Context, k string) (string, error) {
//	        return "v:" + k, nil // e.g. fetch from DB
//	    },
//	})
//	v, err := c.GetOrLoad(context.Background(), "key")
//
// Thread-safety & complexity
//
// All methods on Cache are safe for concurrent use. Typical operation
// cost is O(1) expected: one hash, one map access, and a constant
// amount of pointer fixes under one shard lock.
package cache
