package icm

import "fmt"

// PlayerStack pairs a player identifier with their chip stack.
type PlayerStack struct {
	ID    string  `json:"id"`
	Stack float64 `json:"stack"`
}

// TournamentState is the stack distribution and payout structure at a
// tournament decision point.
type TournamentState struct {
	Players []PlayerStack `json:"players"`
	Payouts []float64     `json:"payouts"`
}

func (ts *TournamentState) Stacks() []float64 {
	stacks := make([]float64, len(ts.Players))
	for i, p := range ts.Players {
		stacks[i] = p.Stack
	}
	return stacks
}

// Remaining counts players that still have chips.
func (ts *TournamentState) Remaining() int {
	n := 0
	for _, p := range ts.Players {
		if p.Stack > 0 {
			n++
		}
	}
	return n
}

func (ts *TournamentState) PrizePool() float64 {
	var pool float64
	for _, p := range ts.Payouts {
		pool += p
	}
	return pool
}

func (ts *TournamentState) Validate() error {
	if len(ts.Players) < 2 {
		return fmt.Errorf("invalid state: need at least 2 players, got %d", len(ts.Players))
	}
	for _, p := range ts.Players {
		if p.Stack < 0 {
			return fmt.Errorf("invalid state: negative stack %v for player %s", p.Stack, p.ID)
		}
	}
	for rank, payout := range ts.Payouts {
		if payout < 0 {
			return fmt.Errorf("invalid state: negative payout %v at rank %d", payout, rank+1)
		}
	}
	return nil
}
