// Package icm converts tournament chip stacks into dollar equity via
// the Malmuth-Harville finish-probability model, and derives the
// bubble-factor and risk-premium measures that adjust chip-EV
// recommendations under tournament pressure.
package icm

import (
	"fmt"
	"math"
)

// Bubble factor is clamped to this range.
const (
	MinBubbleFactor = 0.5
	MaxBubbleFactor = 2.0
)

// bubbleDelta is the marginal chip swing, as a fraction of the average
// stack, used to probe equity curvature.
const bubbleDelta = 0.1

type Calculator struct {
	mh MalmuthHarville
}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Equity returns each player's dollar equity: the finish-probability
// weighted sum of payouts. Payout ranks beyond the player count have no
// one to receive them and contribute nothing, so total equity never
// exceeds the prize pool.
func (c *Calculator) Equity(stacks, payouts []float64) ([]float64, error) {
	probs, err := c.mh.FinishProbabilities(stacks)
	if err != nil {
		return nil, err
	}
	paid := len(payouts)
	if paid > len(stacks) {
		paid = len(stacks)
	}
	equity := make([]float64, len(stacks))
	for i, row := range probs {
		for rank := 0; rank < paid; rank++ {
			equity[i] += row[rank] * payouts[rank]
		}
	}
	return equity, nil
}

// BubbleFactor quantifies ICM pressure for one player: the marginal
// equity lost by a small chip decrease divided by the marginal equity
// gained by an equal increase, clamped to [0.5, 2.0]. A value above 1
// means a chip lost costs more than a chip won is worth.
func (c *Calculator) BubbleFactor(stacks, payouts []float64, player int) (float64, error) {
	if player < 0 || player >= len(stacks) {
		return 0, fmt.Errorf("invalid state: player %d out of range", player)
	}
	var total float64
	for _, s := range stacks {
		total += s
	}
	delta := total / float64(len(stacks)) * bubbleDelta
	if delta <= 0 {
		return 1, nil
	}

	base, err := c.Equity(stacks, payouts)
	if err != nil {
		return 0, err
	}
	up := perturb(stacks, player, delta)
	down := perturb(stacks, player, -delta)
	upEq, err := c.Equity(up, payouts)
	if err != nil {
		return 0, err
	}
	downEq, err := c.Equity(down, payouts)
	if err != nil {
		return 0, err
	}

	loss := base[player] - downEq[player]
	gain := upEq[player] - base[player]
	if gain <= 0 {
		return MaxBubbleFactor, nil
	}
	return clamp(loss/gain, MinBubbleFactor, MaxBubbleFactor), nil
}

// RiskPremium is the dollar-equity cost of a win/lose gamble beyond its
// chip value: the chip-proportional worth of the gamble's average stack
// minus its actual ICM equity. Positive premiums argue against
// chip-EV-positive gambles.
func (c *Calculator) RiskPremium(payouts []float64, player int, winStacks, loseStacks []float64, winProb float64) (float64, error) {
	if winProb < 0 || winProb > 1 {
		return 0, fmt.Errorf("invalid state: win probability %v out of range", winProb)
	}
	winEq, err := c.Equity(winStacks, payouts)
	if err != nil {
		return 0, err
	}
	loseEq, err := c.Equity(loseStacks, payouts)
	if err != nil {
		return 0, err
	}
	icmValue := winProb*winEq[player] + (1-winProb)*loseEq[player]

	var total float64
	for _, s := range winStacks {
		total += s
	}
	if total <= 0 {
		return 0, nil
	}
	paid := len(payouts)
	if paid > len(winStacks) {
		paid = len(winStacks)
	}
	var pool float64
	for rank := 0; rank < paid; rank++ {
		pool += payouts[rank]
	}
	avgStack := winProb*winStacks[player] + (1-winProb)*loseStacks[player]
	chipValue := avgStack / total * pool

	return chipValue - icmValue, nil
}

// OptimizePayouts builds a payout-by-rank structure for a prize pool
// using exponential decay from first place, normalized (in cents) so
// the sequence sums to the pool exactly, with the rounding remainder
// assigned to first place.
func OptimizePayouts(pool float64, places int, decay float64) []float64 {
	if places <= 0 || pool <= 0 {
		return nil
	}
	if decay <= 0 || decay >= 1 {
		decay = 0.5
	}
	weights := make([]float64, places)
	var weightSum float64
	for r := range weights {
		weights[r] = math.Pow(decay, float64(r))
		weightSum += weights[r]
	}

	cents := int64(math.Round(pool * 100))
	payouts := make([]float64, places)
	var assigned int64
	for r := 1; r < places; r++ {
		share := int64(math.Floor(float64(cents) * weights[r] / weightSum))
		payouts[r] = float64(share) / 100
		assigned += share
	}
	payouts[0] = float64(cents-assigned) / 100
	return payouts
}

func perturb(stacks []float64, player int, delta float64) []float64 {
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
