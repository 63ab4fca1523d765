package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

// StateHash identifies a decision point for transposition lookups.
type StateHash uint64

// GameState describes a single no-limit decision point. States are
// immutable: Apply returns a fresh copy and never mutates the receiver,
// so a state can be owned by exactly one search-tree node.
type GameState struct {
	// Pot holds chips collected from previous streets. Chips committed
	// on the current street live in Committed until the street closes.
	Pot       int64
	Stacks    []int64
	Board     []Card
	History   []HistoryEntry
	Current   int
	Committed []int64
	Folded    []bool
	// MinBet is the minimum opening bet, typically the big blind.
	MinBet int64
	// HashUnit is the canonical rounding unit for stack hashing. Stacks
	// that differ by less than one unit hash identically.
	HashUnit int64
	// Legal overrides the computed legal action set at this state. The
	// root caller may restrict actions; derived states always compute.
	Legal []Action

	acted    []bool
	terminal bool
	showdown bool
	payouts  []int64
	total    int64
}

// NewGameState builds a root decision point from caller-supplied data.
func NewGameState(pot int64, stacks []int64, board []Card, current int) (*GameState, error) {
	if len(stacks) < 2 {
		return nil, fmt.Errorf("invalid state: need at least 2 players, got %d", len(stacks))
	}
	if current < 0 || current >= len(stacks) {
		return nil, fmt.Errorf("invalid state: player to act %d out of range", current)
	}
	if len(board) > 5 {
		return nil, fmt.Errorf("invalid state: board has %d cards", len(board))
	}
	if pot < 0 {
		return nil, fmt.Errorf("invalid state: negative pot %d", pot)
	}
	total := pot
	for i, s := range stacks {
		if s < 0 {
			return nil, fmt.Errorf("invalid state: negative stack %d for player %d", s, i)
		}
		total += s
	}
	gs := &GameState{
		Pot:       pot,
		Stacks:    append([]int64(nil), stacks...),
		Board:     append([]Card(nil), board...),
		Current:   current,
		Committed: make([]int64, len(stacks)),
		Folded:    make([]bool, len(stacks)),
		MinBet:    1,
		HashUnit:  1,
		acted:     make([]bool, len(stacks)),
		total:     total,
	}
	return gs, nil
}

// Validate checks the structural invariants a caller-supplied root must
// satisfy before a search is started.
func (gs *GameState) Validate() error {
	sum := gs.Pot
	for _, s := range gs.Stacks {
		if s < 0 {
			return fmt.Errorf("invalid state: negative stack %d", s)
		}
		sum += s
	}
	for _, c := range gs.Committed {
		sum += c
	}
	if sum != gs.total {
		return fmt.Errorf("invalid state: chip conservation violated, have %d want %d", sum, gs.total)
	}
	if !gs.terminal && len(gs.LegalActions()) == 0 {
		return fmt.Errorf("invalid state: no legal actions on non-terminal state")
	}
	return nil
}

// Total returns the conserved chip total (stacks + pot + street commitments).
func (gs *GameState) Total() int64 { return gs.total }

// Terminal reports whether the hand is decided at this state, either by
// everyone folding or by the betting round closing into a showdown.
func (gs *GameState) Terminal() bool { return gs.terminal }

// Showdown reports whether this terminal state needs a card evaluation
// rather than carrying an exact fold-out payoff.
func (gs *GameState) Showdown() bool { return gs.showdown }

// Payouts returns the per-player chip distribution of a fold-out
// terminal state, or nil for non-terminal and showdown states.
func (gs *GameState) Payouts() []int64 { return gs.payouts }

// Winner returns the seat that won a fold-out, or -1.
func (gs *GameState) Winner() int {
	if gs.payouts == nil {
		return -1
	}
	for i, p := range gs.payouts {
		if p > 0 {
			return i
		}
	}
	return -1
}

// PotTotal is the pot including current-street commitments.
func (gs *GameState) PotTotal() int64 {
	t := gs.Pot
	for _, c := range gs.Committed {
		t += c
	}
	return t
}

func (gs *GameState) currentBet() int64 {
	var max int64
	for _, c := range gs.Committed {
		if c > max {
			max = c
		}
	}
	return max
}

func (gs *GameState) unfolded() int {
	n := 0
	for _, f := range gs.Folded {
		if !f {
			n++
		}
	}
	return n
}

// LegalActions returns the action set at this decision point. A root
// state with a caller-supplied Legal slice returns it verbatim.
func (gs *GameState) LegalActions() []Action {
	if gs.terminal {
		return nil
	}
	if gs.Legal != nil {
		return gs.Legal
	}
	cur := gs.Current
	stack := gs.Stacks[cur]
	if stack == 0 {
		return nil
	}
	owe := gs.currentBet() - gs.Committed[cur]
	pot := gs.PotTotal()

	var actions []Action
	if owe > 0 {
		actions = append(actions, Action{Kind: Fold})
		call := owe
		if call >= stack {
			// Calling puts the player all-in
			return append(actions, Action{Kind: AllIn, Amount: stack})
		}
		actions = append(actions, Action{Kind: Call, Amount: call})
		// Raise sizings: half-pot and pot after the call
		for _, extra := range []int64{(pot + call) / 2, pot + call} {
			amount := call + extra
			if extra >= gs.MinBet && amount < stack {
				actions = appendUniqueAmount(actions, Action{Kind: Raise, Amount: amount})
			}
		}
	} else {
		actions = append(actions, Action{Kind: Check})
		for _, size := range []int64{pot / 2, pot} {
			if size >= gs.MinBet && size < stack {
				actions = appendUniqueAmount(actions, Action{Kind: Bet, Amount: size})
			}
		}
	}
	return append(actions, Action{Kind: AllIn, Amount: stack})
}

func appendUniqueAmount(actions []Action, a Action) []Action {
	for _, b := range actions {
		if b.Amount == a.Amount {
			return actions
		}
	}
	return append(actions, a)
}

// Apply derives the successor state for one action. The action must
// come from LegalActions: Apply moves the chips mechanically and only
// panics when the action overdraws the stack or the state is terminal.
func (gs *GameState) Apply(a Action) *GameState {
	if gs.terminal {
		panic("cannot apply action to terminal state")
	}
	next := gs.clone()
	cur := next.Current
	next.History = append(next.History, HistoryEntry{Player: cur, Action: a})
	prevBet := next.currentBet()

	switch a.Kind {
	case Fold:
		next.Folded[cur] = true
	case Check:
		// No chips move
	case Call, Bet, Raise, AllIn:
		amount := a.Amount
		if amount > next.Stacks[cur] {
			panic(fmt.Sprintf("action %v exceeds stack %d", a, next.Stacks[cur]))
		}
		next.Stacks[cur] -= amount
		next.Committed[cur] += amount
	default:
		panic(fmt.Sprintf("unknown action kind %v", a.Kind))
	}
	next.acted[cur] = true
	if next.currentBet() > prevBet {
		// Aggression reopens the action for everyone else
		for i := range next.acted {
			if i != cur {
				next.acted[i] = false
			}
		}
	}

	next.advance()
	next.assertConservation()
	return next
}

// advance finds the next player to act or closes the hand.
func (gs *GameState) advance() {
	if gs.unfolded() == 1 {
		gs.settleFoldOut()
		return
	}
	bet := gs.currentBet()
	n := len(gs.Stacks)
	for i := 1; i <= n; i++ {
		p := (gs.Current + i) % n
		if gs.Folded[p] || gs.Stacks[p] == 0 {
			continue
		}
		if !gs.acted[p] || gs.Committed[p] < bet {
			gs.Current = p
			return
		}
	}
	// Betting round closed with 2+ players live: showdown leaf. The
	// searcher values it through the injected evaluator.
	gs.terminal = true
	gs.showdown = true
}

func (gs *GameState) settleFoldOut() {
	winner := -1
	for i, f := range gs.Folded {
		if !f {
			winner = i
			break
		}
	}
	payouts := make([]int64, len(gs.Stacks))
	payouts[winner] = gs.PotTotal()
	gs.payouts = payouts
	gs.terminal = true
}

func (gs *GameState) assertConservation() {
	sum := gs.Pot
	for _, s := range gs.Stacks {
		sum += s
	}
	for _, c := range gs.Committed {
		sum += c
	}
	if sum != gs.total {
		panic(fmt.Sprintf("chip conservation violated: have %d want %d", sum, gs.total))
	}
}

func (gs *GameState) clone() *GameState {
	cp := &GameState{
		Pot:      gs.Pot,
		Current:  gs.Current,
		MinBet:   gs.MinBet,
		HashUnit: gs.HashUnit,
		terminal: gs.terminal,
		showdown: gs.showdown,
		total:    gs.total,
	}
	cp.Stacks = append([]int64(nil), gs.Stacks...)
	cp.Board = append([]Card(nil), gs.Board...)
	cp.History = append([]HistoryEntry(nil), gs.History...)
	cp.Committed = append([]int64(nil), gs.Committed...)
	cp.Folded = append([]bool(nil), gs.Folded...)
	cp.acted = append([]bool(nil), gs.acted...)
	return cp
}

// CanonicalKey is the exact transposition identity of this state. It
// folds the action history down to per-player street commitments and
// fold flags, so two orderings reaching the same chip configuration
// share a key.
func (gs *GameState) CanonicalKey() string {
	unit := gs.HashUnit
	if unit <= 0 {
		unit = 1
	}
	key := make([]byte, 0, 64)
	key = binary.AppendVarint(key, gs.Pot/unit)
	for i := range gs.Stacks {
		key = binary.AppendVarint(key, gs.Stacks[i]/unit)
		key = binary.AppendVarint(key, gs.Committed[i]/unit)
		if gs.Folded[i] {
			key = append(key, 1)
		} else {
			key = append(key, 0)
		}
	}
	for _, c := range gs.Board {
		key = binary.AppendVarint(key, int64(c))
	}
	key = binary.AppendVarint(key, int64(gs.Current))
	if gs.terminal {
		key = append(key, 1)
	}
	return string(key)
}

// Hash returns the FNV-1a digest of the canonical key.
func (gs *GameState) Hash() StateHash {
	h := fnv.New64a()
	h.Write([]byte(gs.CanonicalKey()))
	return StateHash(h.Sum64())
}
