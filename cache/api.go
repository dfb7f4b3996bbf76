package cache

import "context"

// Cache is a sharded, in-memory key/value cache.
// All methods are safe for concurrent use by multiple goroutines.
type Cache[K comparable, V any] interface {
	// Set inserts or updates k→v, promoting the entry according to the
	// shard's eviction engine.
	Set(k K, v V)

	// Get returns the value for k and a presence flag. On hit, the
	// access is registered by the engine.
	Get(k K) (V, bool)

	// GetDefault returns the value for k, or the zero value of V on
	// miss.
	GetDefault(k K) V

	// Remove deletes k if present and returns true on success. It
	// returns false when the configured engine does not support
	// explicit removal (see policy.Remover).
	Remove(k K) bool

	// Len returns the total number of live entries across all shards.
	Len() int

	// Stats returns a snapshot of the hit/miss/eviction counters.
	Stats() Stats

	// Close marks the cache closed; subsequent operations are ignored.
	Close() error

	// GetOrLoad returns the value for k, loading it via Options.Loader
	// on miss. Concurrent loads for the same key are coalesced.
	// If no Loader was configured, returns ErrNoLoader.
	GetOrLoad(ctx context.Context, k K) (V, error)
}

// Stats is a point-in-time snapshot of cache activity.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}
