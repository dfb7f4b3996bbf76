package cache

import (
	"context"

	"github.com/IvanBrykalov/polycache/policy"
)

// Metrics exposes cache-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	Hit()
	Miss()
	Evict()
}

// Options configures the cache behavior. Zero values are safe;
// defaults are applied in New():
//   - nil Policy  => LRU
//   - Shards <= 0 => hardware parallelism
//   - nil Hasher  => 64-bit FNV-1a
//   - nil Metrics => NoopMetrics
type Options[K comparable, V any] struct {
	// Capacity is the total live-entry limit, split evenly (ceiling)
	// across shards. 0 yields a cache that stores nothing.
	Capacity int

	// Shards is the number of independent sub-caches. <= 0 selects the
	// hardware-parallelism default.
	Shards int

	// Policy builds the per-shard eviction engine; nil => LRU.
	Policy policy.Factory[K, V]

	// Hasher overrides the key hash used for shard routing. Needed for
	// key types util.Fnv64a does not cover (e.g. struct keys).
	Hasher func(K) uint64

	// Loader fetches a value on cache miss. Used by GetOrLoad.
	Loader func(ctx context.Context, k K) (V, error)

	// OnEvict is called for every evicted entry, under the shard lock;
	// keep callbacks lightweight.
	OnEvict func(k K, v V)

	// Metrics receives Hit/Miss/Evict signals.
	Metrics Metrics
}
