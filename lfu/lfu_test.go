package lfu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLFU_TieBreakEvictsOldest(t *testing.T) {
	t.Parallel()

	// put(1,a) put(2,b) get(1) put(3,c): 2 and 3 share frequency 1 and
	// 2 is older, so 2 is the victim.
	c := New[int, string](2, 0)
	c.Set(1, "a")
	c.Set(2, "b")

	v, ok := c.Get(1)
	require.True(t, ok)
	require.Equal(t, "a", v)

	c.Set(3, "c")

	_, ok = c.Get(2)
	require.False(t, ok, "2 must be evicted on the frequency tie")
	require.Equal(t, "c", c.GetDefault(3))
	require.Equal(t, "a", c.GetDefault(1))
}

func TestLFU_HitMovesNodeUpOneBucket(t *testing.T) {
	t.Parallel()

	c := New[int, string](4, 0)
	c.Set(1, "a")
	c.Set(2, "b")

	c.Get(1)
	c.Get(1)

	n := c.index[1]
	require.Equal(t, 3, n.Count, "insert counts 1, two hits raise to 3")
	require.NotNil(t, c.buckets[3])
	require.Equal(t, 1, c.buckets[3].Len())
	require.Equal(t, 1, c.minFreq, "2 still sits at frequency 1")

	// Every node must reside in the bucket matching its counter.
	for k, n := range c.index {
		require.NotNil(t, c.buckets[n.Count], "bucket for key %v", k)
	}
}

func TestLFU_MinFreqAdvancesWhenBucketDrains(t *testing.T) {
	t.Parallel()

	c := New[int, string](2, 0)
	c.Set(1, "a")
	c.Set(2, "b")
	c.Get(1)
	c.Get(2)

	// Bucket 1 drained: both keys are at frequency 2 now.
	require.Nil(t, c.buckets[1])
	require.Equal(t, 2, c.minFreq)
}

func TestLFU_AgingDampensCounters(t *testing.T) {
	t.Parallel()

	// With maxAverage 4 and a single resident key, repeated hits keep
	// the mean above the threshold, so aging passes clamp the counter
	// far below the 51 it would reach without aging.
	c := New[int, string](3, 4)
	c.Set(1, "x")
	for i := 0; i < 50; i++ {
		c.Get(1)
	}

	require.Greater(t, c.totalHits/c.Len(), 4, "aging must have been triggered")
	require.Less(t, c.index[1].Count, 51, "some aging pass must have reduced the counter")
	require.GreaterOrEqual(t, c.index[1].Count, 1, "aging never drops a counter below 1")

	// The hot key has lost its immunity: after filling the cache, one
	// more insert can evict it like any other low-frequency entry.
	c.Set(2, "y")
	c.Set(3, "z")
	c.Set(4, "w")
	require.Equal(t, 3, c.Len())
}

func TestLFU_EvictionSubtractsFrequencyWithoutGoingNegative(t *testing.T) {
	t.Parallel()

	c := New[int, string](2, 2)
	c.Set(1, "a")
	for i := 0; i < 10; i++ {
		c.Get(1) // drives several aging passes; counters shrink, totalHits does not
	}
	c.Set(2, "b")
	c.Set(3, "c") // evicts one of the frequency-1 entries

	require.GreaterOrEqual(t, c.totalHits, 0, "eviction subtraction must clamp at zero")
	require.Equal(t, 2, c.Len())
}

func TestLFU_ZeroCapacity(t *testing.T) {
	t.Parallel()

	c := New[int, string](0, 0)
	c.Set(1, "a")
	_, ok := c.Get(1)
	require.False(t, ok)
	require.Zero(t, c.Len())
}

func TestLFU_UpdateCountsAsHit(t *testing.T) {
	t.Parallel()

	c := New[int, string](2, 0)
	c.Set(1, "a")
	c.Set(1, "a2") // update raises 1 to frequency 2
	c.Set(2, "b")
	c.Set(3, "c") // ties at frequency 1: evict 2, the older

	require.Equal(t, "a2", c.GetDefault(1))
	_, ok := c.Get(2)
	require.False(t, ok)
	require.Equal(t, "c", c.GetDefault(3))
}

func TestLFU_EvictionBudget(t *testing.T) {
	t.Parallel()

	const C, N = 8, 60
	evicted := 0
	c := NewWithEvict[int, int](C, 0, func(int, int) { evicted++ })
	for i := 0; i < N; i++ {
		c.Set(i, i)
	}
	require.Equal(t, N-C, evicted)
	require.Equal(t, C, c.Len())
}

func TestLFU_Purge(t *testing.T) {
	t.Parallel()

	c := New[int, string](4, 0)
	c.Set(1, "a")
	c.Set(2, "b")
	c.Get(1)

	c.Purge()
	require.Zero(t, c.Len())
	require.Zero(t, c.totalHits)
	_, ok := c.Get(1)
	require.False(t, ok)

	// The cache is fully usable after a purge.
	c.Set(9, "z")
	require.Equal(t, "z", c.GetDefault(9))
}

func TestLFU_MinFreqInvariant(t *testing.T) {
	t.Parallel()

	c := New[int, int](8, 0)
	for i := 0; i < 100; i++ {
		c.Set(i%12, i)
		if i%2 == 0 {
			c.Get(i % 5)
		}
		if c.Len() == 0 {
			continue
		}
		smallest := 0
		for f := range c.buckets {
			if smallest == 0 || f < smallest {
				smallest = f
			}
		}
		require.Equal(t, smallest, c.minFreq, "minFreq must track the smallest non-empty bucket")
	}
}
