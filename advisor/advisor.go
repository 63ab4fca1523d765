// Package advisor ties the search and equity layers together: it runs
// MCTS over a decision point and, when a tournament payout structure is
// supplied, re-expresses the chip outcomes in dollar equity, possibly
// reversing the chip-EV recommendation under bubble pressure.
package advisor

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"pokermind/game"
	"pokermind/icm"
	"pokermind/searcher"
)

// Recommendation is the plain data bundle handed back to whatever
// transport the caller uses.
type Recommendation struct {
	Action       game.Action            `json:"action"`
	Amount       int64                  `json:"amount"`
	ChipStats    []searcher.ActionStats `json:"chip_stats"`
	DollarEV     []icm.ActionEquity     `json:"dollar_ev,omitempty"`
	BubbleFactor float64                `json:"bubble_factor,omitempty"`
	RiskPremium  float64                `json:"risk_premium,omitempty"`
	Diverged     bool                   `json:"diverged,omitempty"`
	Iterations   int64                  `json:"iterations"`
	Elapsed      time.Duration          `json:"elapsed"`
}

type Advisor struct {
	mcts *searcher.MCTS
	calc *icm.Calculator
}

func New(mcts *searcher.MCTS) *Advisor {
	return &Advisor{
		mcts: mcts,
		calc: icm.NewCalculator(),
	}
}

// Advise searches the decision point and returns a recommendation. With
// a nil tournament the chip-EV robust child wins; with a tournament the
// dollar-EV maximizer does.
func (a *Advisor) Advise(state *game.GameState, tour *icm.TournamentState) (*Recommendation, error) {
	result, err := a.mcts.Search(state)
	if err != nil {
		return nil, err
	}

	rec := &Recommendation{
		Action:     result.Best,
		Amount:     result.Best.Amount,
		ChipStats:  result.Stats,
		Iterations: result.Iterations,
		Elapsed:    result.Elapsed,
	}
	if tour == nil {
		return rec, nil
	}
	if len(tour.Players) != len(state.Stacks) {
		return nil, fmt.Errorf("invalid state: tournament has %d players, hand has %d seats",
			len(tour.Players), len(state.Stacks))
	}

	hero := state.Current
	candidates := buildCandidates(state, tour, result)
	decision, err := a.calc.Decide(tour, hero, candidates)
	if err != nil {
		return nil, err
	}
	if decision.Diverged {
		log.Info().
			Stringer("chip_best", decision.ChipBest).
			Stringer("icm_best", decision.Action).
			Float64("bubble_factor", decision.BubbleFactor).
			Msg("ICM pressure reversed the chip-EV recommendation")
	}

	rec.Action = decision.Action
	rec.Amount = decision.Action.Amount
	rec.DollarEV = decision.Equities
	rec.BubbleFactor = decision.BubbleFactor
	rec.RiskPremium = decision.RiskPremium
	rec.Diverged = decision.Diverged
	return rec, nil
}

// buildCandidates turns each searched root action into weighted
// tournament stack outcomes. Tournament stacks are stacks behind; every
// outcome settles the live pot to either the hero or the covering
// opponent so outcome totals stay comparable across actions.
func buildCandidates(state *game.GameState, tour *icm.TournamentState, result *searcher.Result) []icm.ActionValue {
	hero := state.Current
	villain := coveringOpponent(state, hero)
	pot := float64(state.PotTotal())
	base := tour.Stacks()

	candidates := make([]icm.ActionValue, 0, len(result.Stats))
	for _, stat := range result.Stats {
		var outcomes []icm.Outcome
		switch stat.Action.Kind {
		case game.Fold:
			lose := shift(base, villain, pot)
			outcomes = []icm.Outcome{{Prob: 1, Stacks: lose}}
		default:
			risk := float64(stat.Action.Amount)
			if limit := base[villain]; risk > limit {
				risk = limit
			}
			winProb := clamp((stat.Mean+1)/2, 0, 1)
			win := shift(shift(base, hero, pot+risk), villain, -risk)
			lose := shift(shift(base, hero, -risk), villain, pot+risk)
			outcomes = []icm.Outcome{
				{Prob: winProb, Stacks: win},
				{Prob: 1 - winProb, Stacks: lose},
			}
		}
		candidates = append(candidates, icm.ActionValue{
			Action:   stat.Action,
			ChipEV:   stat.ChipEV,
			Outcomes: outcomes,
		})
	}
	return candidates
}

// coveringOpponent picks the live opponent with the most committed
// chips, falling back to the deepest stack.
func coveringOpponent(state *game.GameState, hero int) int {
	villain := -1
	for i := range state.Stacks {
		if i == hero || state.Folded[i] {
			continue
		}
		if villain < 0 ||
			state.Committed[i] > state.Committed[villain] ||
			(state.Committed[i] == state.Committed[villain] && state.Stacks[i] > state.Stacks[villain]) {
			villain = i
		}
	}
	if villain < 0 {
		// Everyone else folded; the hand would be terminal before this.
		villain = (hero + 1) % len(state.Stacks)
	}
	return villain
}

func shift(stacks []float64, player int, delta float64) []float64 {
	out := append([]float64(nil), stacks...)
	out[player] += delta
	if out[player] < 0 {
		out[player] = 0
	}
	return out
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
