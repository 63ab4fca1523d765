package searcher

import (
	"math"

	"golang.org/x/exp/rand"

	"pokermind/game"
)

// node is one search-tree vertex. A tree is owned by exactly one worker
// goroutine, so nodes carry no locks; parent references exist only for
// the backpropagation walk.
type node struct {
	parent   *node
	state    *game.GameState
	action   game.Action // action that led here
	actor    int         // player who played action; value is from their perspective
	hash     game.StateHash
	key      string
	untried  []game.Action
	children []*node
	visits   float64
	value    float64
}

func newNode(parent *node, state *game.GameState, actor int, action game.Action, rng *rand.Rand) *node {
	untried := append([]game.Action(nil), state.LegalActions()...)
	rng.Shuffle(len(untried), func(i, j int) {
		untried[i], untried[j] = untried[j], untried[i]
	})
	return &node{
		parent:  parent,
		state:   state,
		action:  action,
		actor:   actor,
		hash:    state.Hash(),
		key:     state.CanonicalKey(),
		untried: untried,
	}
}

// expandable reports whether this node may grow a child under the
// progressive-widening schedule.
func (n *node) expandable(wideningC, wideningExp float64) bool {
	if len(n.untried) == 0 {
		return false
	}
	return len(n.children) < widened(wideningC, wideningExp, n.visits)
}

// expand instantiates one untried action as a new child, seeding its
// statistics from the transposition table when the resulting state has
// been visited through another line.
func (n *node) expand(table *Table, rng *rand.Rand) (*node, bool) {
	action := n.untried[len(n.untried)-1]
	n.untried = n.untried[:len(n.untried)-1]

	childState := n.state.Apply(action)
	child := newNode(n, childState, n.state.Current, action, rng)
	seeded := false
	if entry, ok := table.Get(child.hash, child.key); ok {
		child.visits = entry.Visits
		child.value = entry.Value
		seeded = true
	}
	n.children = append(n.children, child)
	return child, seeded
}

// bestChild selects the UCT-maximizing child.
func (n *node) bestChild(exploration float64) *node {
	if len(n.children) == 0 {
		panic("node has no children")
	}
	normalizer := exploration * exploration * math.Log(math.Max(n.visits, 1))

	best := n.children[0]
	bestScore := math.Inf(-1)
	for _, child := range n.children {
		score := ucb1(child.value, child.visits, normalizer)
		if score == math.Inf(1) {
			return child
		}
		if score > bestScore {
			bestScore = score
			best = child
		}
	}
	return best
}
