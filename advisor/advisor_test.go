package advisor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pokermind/game"
	"pokermind/icm"
	"pokermind/searcher"
)

func threeWayPot(t *testing.T) *game.GameState {
	t.Helper()
	gs, err := game.NewGameState(600, []int64{4000, 4100, 1900}, nil, 0)
	require.NoError(t, err)
	return gs
}

func TestAdviseChipOnly(t *testing.T) {
	a := New(searcher.NewMCTS(searcher.WithIterations(200), searcher.WithSeed(1)))
	state := threeWayPot(t)

	rec, err := a.Advise(state, nil)
	require.NoError(t, err)

	require.Contains(t, state.LegalActions(), rec.Action)
	require.Equal(t, rec.Action.Amount, rec.Amount)
	require.Len(t, rec.ChipStats, len(state.LegalActions()))
	require.Equal(t, int64(200), rec.Iterations)
	require.Nil(t, rec.DollarEV, "no tournament, no dollar figures")
}

func TestAdviseWithTournament(t *testing.T) {
	a := New(searcher.NewMCTS(searcher.WithIterations(200), searcher.WithSeed(1)))
	state := threeWayPot(t)
	tour := &icm.TournamentState{
		Players: []icm.PlayerStack{
			{ID: "hero", Stack: 4000},
			{ID: "leader", Stack: 4100},
			{ID: "short", Stack: 1900},
		},
		Payouts: []float64{500, 300, 0},
	}

	rec, err := a.Advise(state, tour)
	require.NoError(t, err)

	require.Contains(t, state.LegalActions(), rec.Action)
	require.Len(t, rec.DollarEV, len(rec.ChipStats))
	require.GreaterOrEqual(t, rec.BubbleFactor, icm.MinBubbleFactor)
	require.LessOrEqual(t, rec.BubbleFactor, icm.MaxBubbleFactor)
	for _, e := range rec.DollarEV {
		require.GreaterOrEqual(t, e.DollarEV, 0.0)
		require.LessOrEqual(t, e.DollarEV, tour.PrizePool())
	}
}

func TestAdviseRejectsMismatchedTournament(t *testing.T) {
	a := New(searcher.NewMCTS(searcher.WithIterations(10), searcher.WithSeed(1)))
	state := threeWayPot(t)
	tour := &icm.TournamentState{
		Players: []icm.PlayerStack{{ID: "a", Stack: 1}, {ID: "b", Stack: 1}},
		Payouts: []float64{100},
	}

	_, err := a.Advise(state, tour)
	require.ErrorContains(t, err, "invalid state")
}

func TestAdvisePropagatesSearchErrors(t *testing.T) {
	a := New(searcher.NewMCTS(searcher.WithIterations(10)))
	state := threeWayPot(t)
	state.Legal = []game.Action{}

	_, err := a.Advise(state, nil)
	require.Error(t, err)
}

func TestBuildCandidatesSettleThePot(t *testing.T) {
	state := threeWayPot(t)
	tour := &icm.TournamentState{
		Players: []icm.PlayerStack{
			{ID: "hero", Stack: 4000},
			{ID: "leader", Stack: 4100},
			{ID: "short", Stack: 1900},
		},
		Payouts: []float64{500, 300, 0},
	}
	result := &searcher.Result{
		Stats: []searcher.ActionStats{
			{Action: game.Action{Kind: game.Check}, Mean: 0},
			{Action: game.Action{Kind: game.AllIn, Amount: 4000}, Mean: 0.2},
		},
	}

	candidates := buildCandidates(state, tour, result)
	require.Len(t, candidates, 2)

	// Every outcome settles the live pot, so totals stay comparable
	wantTotal := 4000.0 + 4100 + 1900 + 600
	for _, cand := range candidates {
		var probSum float64
		for _, o := range cand.Outcomes {
			probSum += o.Prob
			var total float64
			for _, s := range o.Stacks {
				total += s
			}
			require.InDelta(t, wantTotal, total, 1e-9,
				"action %v outcome must conserve chips", cand.Action)
		}
		require.InDelta(t, 1.0, probSum, 1e-9)
	}
}
