// Package policy defines the abstract contract every eviction engine
// satisfies. Callers program against Engine and switch policies without
// code changes; the sharded cache composes engines through Factory.
package policy

// Engine is the capability set shared by all eviction engines
// (LRU, LFU, ARC, LRU-K). All methods are safe for concurrent use;
// each engine serializes itself with a single mutex.
type Engine[K comparable, V any] interface {
	// Set inserts or updates k→v. A live key is marked "recently used"
	// per the engine's definition; a new key may evict exactly one live
	// entry when the engine is at capacity. With capacity 0, Set is a
	// no-op.
	Set(k K, v V)

	// Get returns the value for k and a presence flag. On hit the
	// access is registered (position move and/or counter increment).
	Get(k K) (V, bool)

	// GetDefault returns the value for k, or the zero value of V on
	// miss. Callers that need to distinguish a stored zero value from
	// a miss use Get.
	GetDefault(k K) V

	// Len returns the number of live entries.
	Len() int
}

// Remover is implemented by engines that support explicit deletion
// (the recency engines: LRU and LRU-K). Remove of an absent key is a
// no-op returning false.
type Remover[K comparable] interface {
	Remove(k K) bool
}

// Factory builds a shard-local engine with the given capacity. onEvict,
// when non-nil, is invoked for every entry the engine evicts (under the
// engine lock — keep it lightweight). Engine packages provide factories:
// lru.Policy, lru.PolicyK, lfu.Policy, arc.Policy.
type Factory[K comparable, V any] func(capacity int, onEvict func(k K, v V)) Engine[K, V]
