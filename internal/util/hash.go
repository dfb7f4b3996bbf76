// Package util contains internal helpers (hashing, sharding, padding).
package util

import "fmt"

const (
	fnvOffset64 = 1469598103934665603
	fnvPrime64  = 1099511628211
)

// Fnv64a hashes common key types using 64-bit FNV-1a without allocating.
// Supported: string, []byte, [16|32|64]byte, all int/uint widths, uintptr,
// and fmt.Stringer as a last resort. Panicking on unsupported key types is
// deliberate: silently poor hashing would funnel every key into one shard.
// Callers with exotic keys supply their own hasher upstream.
func Fnv64a[K comparable](k K) uint64 {
	switch v := any(k).(type) {
	case string:
		return fnvString(v)
	case []byte:
		return fnvBytes(v)
	case [16]byte:
		return fnvBytes(v[:])
	case [32]byte:
		return fnvBytes(v[:])
	case [64]byte:
		return fnvBytes(v[:])

	case uint8:
		return fnvWord(uint64(v))
	case uint16:
		return fnvWord(uint64(v))
	case uint32:
		return fnvWord(uint64(v))
	case uint64:
		return fnvWord(v)
	case uint:
		return fnvWord(uint64(v))
	case uintptr:
		return fnvWord(uint64(v))
	case int8:
		return fnvWord(uint64(uint8(v)))
	case int16:
		return fnvWord(uint64(uint16(v)))
	case int32:
		return fnvWord(uint64(uint32(v)))
	case int64:
		return fnvWord(uint64(v))
	case int:
		return fnvWord(uint64(v))

	case fmt.Stringer:
		return fnvString(v.String())
	default:
		panic(fmt.Sprintf("util.Fnv64a: unsupported key type %T; provide a custom hasher", k))
	}
}

func fnvString(s string) uint64 {
	h := uint64(fnvOffset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime64
	}
	return h
}

func fnvBytes(b []byte) uint64 {
	h := uint64(fnvOffset64)
	for _, c := range b {
		h ^= uint64(c)
		h *= fnvPrime64
	}
	return h
}

// fnvWord hashes the 8 little-endian bytes of u.
func fnvWord(u uint64) uint64 {
	h := uint64(fnvOffset64)
	for i := 0; i < 8; i++ {
		h ^= uint64(byte(u))
		h *= fnvPrime64
		u >>= 8
	}
	return h
}
