package searcher

import (
	"time"

	"pokermind/game"
)

// ActionStats carries the merged search statistics for one root action.
// Mean is in [-1, 1] from the root player's perspective; ChipEV scales
// it by the chips in play at the root.
type ActionStats struct {
	Action game.Action `json:"action"`
	Visits int64       `json:"visits"`
	Mean   float64     `json:"mean"`
	ChipEV float64     `json:"chip_ev"`
}

// Result is the outcome of one search invocation: the robust-child
// action plus per-action statistics and diagnostics.
type Result struct {
	Best       game.Action   `json:"best"`
	Stats      []ActionStats `json:"stats"`
	Iterations int64         `json:"iterations"`
	Elapsed    time.Duration `json:"elapsed"`
	Metric     SearchMetric  `json:"-"`
}

// StatsFor returns the statistics for one action, if it was searched.
func (r *Result) StatsFor(a game.Action) (ActionStats, bool) {
	for _, s := range r.Stats {
		if s.Action == a {
			return s, true
		}
	}
	return ActionStats{}, false
}
