package icm

import (
	"fmt"
	"math"

	"pokermind/game"
)

// Outcome is one weighted stack distribution an action can resolve to.
type Outcome struct {
	Prob   float64
	Stacks []float64
}

// ActionValue is a candidate action: its chip-EV from the search plus
// the tournament stack outcomes it can produce.
type ActionValue struct {
	Action   game.Action
	ChipEV   float64
	Outcomes []Outcome
}

// ActionEquity reports both valuations of one candidate action.
type ActionEquity struct {
	Action   game.Action `json:"action"`
	ChipEV   float64     `json:"chip_ev"`
	DollarEV float64     `json:"dollar_ev"`
}

// Decision is the tournament-adjusted recommendation. Action maximizes
// dollar-EV and can differ from ChipBest near the bubble; Diverged
// flags exactly that reversal.
type Decision struct {
	Action       game.Action    `json:"action"`
	ChipBest     game.Action    `json:"chip_best"`
	Equities     []ActionEquity `json:"equities"`
	BubbleFactor float64        `json:"bubble_factor"`
	RiskPremium  float64        `json:"risk_premium"`
	Diverged     bool           `json:"diverged"`
}

// Decide maps each candidate action's chip outcomes through dollar
// equity and recommends the dollar-EV maximizer.
func (c *Calculator) Decide(ts *TournamentState, hero int, candidates []ActionValue) (*Decision, error) {
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	if hero < 0 || hero >= len(ts.Players) {
		return nil, fmt.Errorf("invalid state: hero seat %d out of range", hero)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("invalid state: no candidate actions")
	}

	equities := make([]ActionEquity, len(candidates))
	heroOutcomeEq := make([][]float64, len(candidates))
	for i, cand := range candidates {
		if len(cand.Outcomes) == 0 {
			return nil, fmt.Errorf("invalid state: action %v has no outcomes", cand.Action)
		}
		var dollar float64
		heroOutcomeEq[i] = make([]float64, len(cand.Outcomes))
		for k, outcome := range cand.Outcomes {
			if len(outcome.Stacks) != len(ts.Players) {
				return nil, fmt.Errorf("invalid state: outcome for %v has %d stacks, want %d",
					cand.Action, len(outcome.Stacks), len(ts.Players))
			}
			eq, err := c.Equity(outcome.Stacks, ts.Payouts)
			if err != nil {
				return nil, err
			}
			heroOutcomeEq[i][k] = eq[hero]
			dollar += outcome.Prob * eq[hero]
		}
		equities[i] = ActionEquity{
			Action:   cand.Action,
			ChipEV:   cand.ChipEV,
			DollarEV: dollar,
		}
	}

	best, chipBest := 0, 0
	for i := 1; i < len(equities); i++ {
		// Dollar-EV decides; ties within numeric noise fall back to chip-EV
		diff := equities[i].DollarEV - equities[best].DollarEV
		if diff > Tolerance || (math.Abs(diff) <= Tolerance && equities[i].ChipEV > equities[best].ChipEV) {
			best = i
		}
		if equities[i].ChipEV > equities[chipBest].ChipEV {
			chipBest = i
		}
	}

	bubble, err := c.BubbleFactor(ts.Stacks(), ts.Payouts, hero)
	if err != nil {
		return nil, err
	}
	premium, err := c.gamblePremium(ts, hero, candidates[chipBest], heroOutcomeEq[chipBest])
	if err != nil {
		return nil, err
	}

	return &Decision{
		Action:       equities[best].Action,
		ChipBest:     equities[chipBest].Action,
		Equities:     equities,
		BubbleFactor: bubble,
		RiskPremium:  premium,
		Diverged:     best != chipBest,
	}, nil
}

// gamblePremium prices the chip-EV-best action as a win/lose gamble by
// pairing its best and worst hero outcome. Actions with a single
// outcome carry no variance and no premium.
func (c *Calculator) gamblePremium(ts *TournamentState, hero int, cand ActionValue, heroEq []float64) (float64, error) {
	if len(cand.Outcomes) < 2 {
		return 0, nil
	}
	win, lose := 0, 0
	for k := range heroEq {
		if heroEq[k] > heroEq[win] {
			win = k
		}
		if heroEq[k] < heroEq[lose] {
			lose = k
		}
	}
	if win == lose {
		return 0, nil
	}
	winP := cand.Outcomes[win].Prob
	loseP := cand.Outcomes[lose].Prob
	if winP+loseP == 0 {
		return 0, nil
	}
	winProb := winP / (winP + loseP)
	return c.RiskPremium(ts.Payouts, hero, cand.Outcomes[win].Stacks, cand.Outcomes[lose].Stacks, winProb)
}
