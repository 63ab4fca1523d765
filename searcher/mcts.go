package searcher

import (
	"fmt"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"pokermind/game"
)

type Option func(m *MCTS)

// MCTS drives the iterative selection, expansion, evaluation and
// backpropagation loop under a time or iteration budget. Parallelism is
// root-parallel: each worker goroutine owns a full tree and its own
// transposition table shard, and results are merged by summing
// per-action statistics.
type MCTS struct {
	goroutines    int
	duration      time.Duration
	iterations    int
	exploration   float64
	wideningC     float64
	wideningExp   float64
	tableCapacity int
	evaluate      game.Evaluate
	clock         quartz.Clock
	metrics       Collector
	seed          uint64
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		m.duration = duration
	}
}

// WithIterations sets an iteration budget. When set it is authoritative
// and any time budget is ignored.
func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		if iterations > 0 {
			m.iterations = iterations
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c > 0 {
			m.exploration = c
		}
	}
}

func WithWidening(c, exponent float64) Option {
	return func(m *MCTS) {
		if c > 0 {
			m.wideningC = c
		}
		if exponent > 0 {
			m.wideningExp = exponent
		}
	}
}

func WithTableCapacity(capacity int) Option {
	return func(m *MCTS) {
		if capacity > 0 {
			m.tableCapacity = capacity
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithGoroutines(goroutines int) Option {
	return func(m *MCTS) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

// WithClock injects the clock used for time-budget checks. Tests use a
// quartz mock; production uses the real clock.
func WithClock(clock quartz.Clock) Option {
	return func(m *MCTS) {
		if clock != nil {
			m.clock = clock
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = NewCollector()
	}
}

// WithSeed fixes the worker RNG seeds for reproducible searches.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{
		goroutines:    1,
		exploration:   DefaultExploration,
		wideningC:     DefaultWideningC,
		wideningExp:   DefaultWideningExp,
		tableCapacity: DefaultTableCapacity,
		evaluate:      game.EvaluatePotShare,
		clock:         quartz.NewReal(),
		metrics:       NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.seed == 0 {
		m.seed = uint64(time.Now().UnixNano())
	}
	return m
}

// Search runs the budgeted search from rootState and returns merged
// per-action statistics plus the robust-child recommendation. A budget
// of zero (no duration, no iterations) still performs exactly one
// iteration so a recommendation is always produced.
func (m *MCTS) Search(rootState *game.GameState) (*Result, error) {
	if rootState.Terminal() {
		return nil, fmt.Errorf("invalid state: cannot search a terminal state")
	}
	if err := rootState.Validate(); err != nil {
		return nil, err
	}
	legal := rootState.LegalActions()

	m.metrics.Start(m.goroutines)
	start := m.clock.Now()

	roots := make([]*node, m.goroutines)
	var group errgroup.Group
	for w := 0; w < m.goroutines; w++ {
		group.Go(func() error {
			rng := rand.New(rand.NewSource(m.seed + uint64(w)*0x9e3779b97f4a7c15))
			table := NewTable(m.tableCapacity)
			root := newNode(nil, rootState, rootState.Current, game.Action{}, rng)
			roots[w] = root

			if m.iterations > 0 {
				share := m.iterations / m.goroutines
				if w < m.iterations%m.goroutines {
					share++
				}
				for i := 0; i < share; i++ {
					m.simulate(root, table, rng)
				}
			} else {
				// Time is checked between iterations only, so one
				// iteration can overrun the budget by its own cost but
				// never be cut short mid-flight.
				for {
					m.simulate(root, table, rng)
					if m.clock.Since(start) >= m.duration {
						break
					}
				}
			}
			m.metrics.SetTableEntries(table.Len())
			return nil
		})
	}
	// Workers never return errors; contract violations inside the tree panic.
	_ = group.Wait()

	elapsed := m.clock.Since(start)
	result := m.merge(rootState, legal, roots, elapsed)
	log.Debug().
		Int64("iterations", result.Iterations).
		Dur("elapsed", elapsed).
		Stringer("best", result.Best).
		Msg("search complete")
	return result, nil
}

// simulate runs one iteration: walk down by UCT until an expandable or
// terminal node, expand at most one child, value the leaf, and push the
// (sign-adjusted) score back up the path and into the table.
func (m *MCTS) simulate(root *node, table *Table, rng *rand.Rand) {
	n := root
	for !n.state.Terminal() {
		if n.expandable(m.wideningC, m.wideningExp) {
			child, seeded := n.expand(table, rng)
			if seeded {
				m.metrics.AddTableHit()
			}
			n = child
			break
		}
		if len(n.children) == 0 {
			break
		}
		n = n.bestChild(m.exploration)
	}

	player, score := m.valueOf(n.state)
	for v := n; v != nil; v = v.parent {
		signed := score
		if v.actor != player {
			signed = -score
		}
		v.visits++
		v.value += signed
		table.Update(v.hash, v.key, 1, signed)
	}
	m.metrics.AddIteration()
}

// valueOf scores a leaf state as a fraction of the chips in play, from
// the returned player's perspective. Fold-out terminals carry an exact
// payoff; everything else goes through the injected evaluator.
func (m *MCTS) valueOf(state *game.GameState) (int, float64) {
	if state.Terminal() && !state.Showdown() {
		m.metrics.AddTerminalHit()
		return state.Winner(), float64(state.PotTotal()) / float64(state.Total())
	}
	return state.Current, clamp(m.evaluate(state), -1, 1)
}

// merge sums per-action statistics across worker trees and applies the
// robust-child rule: most visits, ties broken by higher mean value.
func (m *MCTS) merge(rootState *game.GameState, legal []game.Action, roots []*node, elapsed time.Duration) *Result {
	type sum struct {
		visits float64
		value  float64
	}
	sums := make(map[game.Action]*sum, len(legal))
	var iterations float64
	for _, root := range roots {
		if root == nil {
			continue
		}
		iterations += root.visits
		for _, child := range root.children {
			s := sums[child.action]
			if s == nil {
				s = &sum{}
				sums[child.action] = s
			}
			s.visits += child.visits
			s.value += child.value
		}
	}

	total := float64(rootState.Total())
	stats := make([]ActionStats, 0, len(legal))
	best := legal[0]
	bestVisits, bestMean := -1.0, 0.0
	for _, action := range legal {
		mean := 0.0
		visits := 0.0
		if s := sums[action]; s != nil && s.visits > 0 {
			visits = s.visits
			mean = s.value / s.visits
		}
		stats = append(stats, ActionStats{
			Action: action,
			Visits: int64(visits),
			Mean:   mean,
			ChipEV: mean * total,
		})
		if visits > bestVisits || (visits == bestVisits && mean > bestMean) {
			best, bestVisits, bestMean = action, visits, mean
		}
	}

	metric := m.metrics.Complete()
	return &Result{
		Best:       best,
		Stats:      stats,
		Iterations: int64(iterations),
		Elapsed:    elapsed,
		Metric:     metric,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
