package arc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecencyPart_CapacityAdjustment(t *testing.T) {
	t.Parallel()

	p := newRecencyPart[string, int](2, 2, nil)
	require.True(t, p.put("a", 1))
	require.True(t, p.put("b", 2))

	// Shrinking a full part evicts first, then drops the budget.
	require.True(t, p.decreaseCapacity())
	require.Equal(t, 1, p.cap)
	require.Equal(t, 1, p.len())
	require.Contains(t, p.ghost, "a")

	require.True(t, p.decreaseCapacity())
	require.False(t, p.decreaseCapacity(), "capacity 0 cannot shrink further")

	p.increaseCapacity()
	require.Equal(t, 1, p.cap)
	require.True(t, p.put("c", 3))
}

func TestRecencyPart_GhostHistoryIsBounded(t *testing.T) {
	t.Parallel()

	p := newRecencyPart[int, int](2, 2, nil)
	for i := 0; i < 10; i++ {
		p.put(i, i)
	}
	// Ghost capacity mirrors the initial live capacity.
	require.LessOrEqual(t, len(p.ghost), 2)
	require.Equal(t, len(p.ghost), p.ghostOrder.Len())

	// The oldest ghosts were dropped; the most recent demotions remain.
	require.True(t, p.checkGhost(7))
	require.False(t, p.checkGhost(0))
	require.False(t, p.checkGhost(7), "a consumed ghost entry stays gone")
}

func TestRecencyPart_PromoteSignalAtThreshold(t *testing.T) {
	t.Parallel()

	p := newRecencyPart[string, int](4, 3, nil)
	p.put("a", 1)

	_, promote, ok := p.get("a")
	require.True(t, ok)
	require.False(t, promote, "second touch is below threshold 3")

	_, promote, ok = p.get("a")
	require.True(t, ok)
	require.True(t, promote, "third touch reaches the threshold")
}

func TestFrequencyPart_EvictsLowestBucketFIFO(t *testing.T) {
	t.Parallel()

	var evicted []string
	p := newFrequencyPart[string, int](3, func(k string, _ int) { evicted = append(evicted, k) })
	p.put("a", 1)
	p.put("b", 2)
	p.put("c", 3)
	p.get("a") // a → frequency 2

	p.put("d", 4) // ties at frequency 1: b is older than c
	require.Equal(t, []string{"b"}, evicted)
	require.Contains(t, p.ghost, "b")

	_, ok := p.get("b")
	require.False(t, ok)
}

func TestFrequencyPart_LiveAndGhostAreDisjoint(t *testing.T) {
	t.Parallel()

	p := newFrequencyPart[int, int](2, nil)
	for i := 0; i < 6; i++ {
		p.put(i, i)
	}
	for k := range p.live {
		require.NotContains(t, p.ghost, k, "a key is live or ghost, never both")
	}
	require.LessOrEqual(t, p.len(), p.cap)
	require.LessOrEqual(t, len(p.ghost), p.ghostCap)
}
