package searcher

import "math"

// ucb1 scores a child for selection. The normalizer is c^2*ln(N)
// precomputed once per parent, so the score is
// value/visits + sqrt(c^2*ln(N)/visits).
func ucb1(value float64, visits float64, c2LnN float64) float64 {
	// Prioritize unexplored nodes
	if visits == 0 {
		return math.Inf(1)
	}
	return value/visits + math.Sqrt(c2LnN/visits)
}

// widened returns how many children a node with the given visit count
// may have under progressive widening. At least one action is always
// eligible so every node can expand.
func widened(c, exponent, visits float64) int {
	w := int(math.Floor(c * math.Pow(visits, exponent)))
	if w < 1 {
		return 1
	}
	return w
}
