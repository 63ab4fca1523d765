package searcher

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"pokermind/game"
)

// Stats are the aggregated search statistics shared across tree
// branches that transpose to the same state.
type Stats struct {
	Key    string
	Visits float64
	Value  float64
}

// Table is a bounded least-recently-used transposition cache. Entries
// are verified by exact canonical key, not just the 64-bit hash, so a
// numeric collision can never corrupt another state's statistics.
type Table struct {
	cache *lru.Cache[game.StateHash, *Stats]
}

func NewTable(capacity int) *Table {
	if capacity <= 0 {
		capacity = DefaultTableCapacity
	}
	cache, err := lru.New[game.StateHash, *Stats](capacity)
	if err != nil {
		panic(err)
	}
	return &Table{cache: cache}
}

// Get returns the cached statistics for a state, verifying the full
// canonical key. A hash hit with a mismatched key is a collision and
// reported as a miss.
func (t *Table) Get(hash game.StateHash, key string) (*Stats, bool) {
	entry, ok := t.cache.Get(hash)
	if !ok || entry.Key != key {
		return nil, false
	}
	return entry, true
}

// Update accumulates visit and value mass for a state, inserting a new
// entry (and evicting the least-recently-used one at capacity) if
// needed. A colliding entry with a different key is replaced rather
// than blended.
func (t *Table) Update(hash game.StateHash, key string, visits, value float64) {
	entry, ok := t.cache.Get(hash)
	if ok && entry.Key == key {
		entry.Visits += visits
		entry.Value += value
		return
	}
	t.cache.Add(hash, &Stats{Key: key, Visits: visits, Value: value})
}

func (t *Table) Len() int { return t.cache.Len() }

// Purge clears all entries between unrelated decisions.
func (t *Table) Purge() { t.cache.Purge() }
