package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pokermind/game"
)

func TestTableCapacity(t *testing.T) {
	table := NewTable(3)
	for i := 1; i <= 5; i++ {
		table.Update(game.StateHash(i), string(rune('a'+i)), 1, 0.5)
	}

	require.Equal(t, 3, table.Len(), "table must never exceed its capacity")
	_, ok := table.Get(1, "b")
	require.False(t, ok, "oldest entry should be evicted first")
	_, ok = table.Get(5, string(rune('a'+5)))
	require.True(t, ok)
}

func TestTableEvictsLeastRecentlyUsed(t *testing.T) {
	table := NewTable(2)
	table.Update(1, "a", 1, 0)
	table.Update(2, "b", 1, 0)

	// Touch entry 1 so entry 2 becomes least recently used
	_, ok := table.Get(1, "a")
	require.True(t, ok)

	table.Update(3, "c", 1, 0)

	_, ok = table.Get(2, "b")
	require.False(t, ok, "entry 2 was least recently used")
	_, ok = table.Get(1, "a")
	require.True(t, ok)
	_, ok = table.Get(3, "c")
	require.True(t, ok)
}

func TestTableAccumulates(t *testing.T) {
	table := NewTable(10)
	table.Update(7, "key", 1, 0.25)
	table.Update(7, "key", 2, 0.50)

	entry, ok := table.Get(7, "key")
	require.True(t, ok)
	require.Equal(t, 3.0, entry.Visits, "visit counts accumulate monotonically")
	require.Equal(t, 0.75, entry.Value)
}

func TestTableRejectsHashCollisions(t *testing.T) {
	table := NewTable(10)
	table.Update(7, "first", 5, 1.0)

	_, ok := table.Get(7, "second")
	require.False(t, ok, "a mismatched canonical key is a miss, not a hit")

	// A colliding write replaces rather than blending into the old stats
	table.Update(7, "second", 1, 0.1)
	entry, ok := table.Get(7, "second")
	require.True(t, ok)
	require.Equal(t, 1.0, entry.Visits)
}
