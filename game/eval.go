package game

// Baseline evaluators for callers that do not bring their own
// hand-strength model. These only look at chip configuration, which is
// enough for search plumbing and tests but not for real play.

// EvaluatePotShare scores the player to act by their remaining stack
// relative to the average live opponent, so that being deep reads as
// favorable and being short reads as unfavorable.
func EvaluatePotShare(gs *GameState) float64 {
	cur := gs.Current
	var opponents, opponentChips float64
	for i, s := range gs.Stacks {
		if i == cur || gs.Folded[i] {
			continue
		}
		opponents++
		opponentChips += float64(s + gs.Committed[i])
	}
	if opponents == 0 {
		return 1
	}
	mine := float64(gs.Stacks[cur] + gs.Committed[cur])
	return normalize(mine, opponentChips/opponents)
}

// EvaluateAggression favors having chips already committed to the pot,
// a crude proxy for fold equity earned by betting.
func EvaluateAggression(gs *GameState) float64 {
	pot := float64(gs.PotTotal())
	if pot == 0 {
		return 0
	}
	committed := float64(gs.Committed[gs.Current])
	share := committed / pot
	return 2*share - 1
}

// normalize maps value relative to otherValue to a score between -1 and 1.
func normalize(value, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
