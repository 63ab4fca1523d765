package icm

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

// Tolerance is the accepted floating-point drift on probability sums.
const Tolerance = 1e-6

// MaxPlayers bounds the Malmuth-Harville recursion. Memoization is
// keyed on a bitmask of remaining players, so cost grows as 2^N.
const MaxPlayers = 13

type memoKey struct {
	mask   uint32
	player uint8
	rank   uint8
}

// MalmuthHarville computes exact finish-position probabilities for a
// tournament stack distribution: P(i first) = stack_i / total, and the
// probability of lower ranks recurses over each possible winner removed
// from the field. The memo is local to one call, so concurrent use
// needs no locking.
type MalmuthHarville struct{}

// FinishProbabilities returns, for every player, the probability of
// finishing in each rank 0..n-1 (0 = first place). Players with a zero
// stack are already eliminated: they take the bottom ranks in seat
// order and are excluded from the recursion.
func (MalmuthHarville) FinishProbabilities(stacks []float64) ([][]float64, error) {
	n := len(stacks)
	if n == 0 {
		return nil, fmt.Errorf("invalid state: no players")
	}
	if n > MaxPlayers {
		return nil, fmt.Errorf("invalid state: %d players exceeds the supported maximum %d", n, MaxPlayers)
	}

	var live []int
	var busted []int
	for i, s := range stacks {
		if s < 0 {
			return nil, fmt.Errorf("invalid state: negative stack %v for player %d", s, i)
		}
		if s == 0 {
			busted = append(busted, i)
		} else {
			live = append(live, i)
		}
	}

	probs := make([][]float64, n)
	for i := range probs {
		probs[i] = make([]float64, n)
	}
	for k, p := range busted {
		probs[p][len(live)+k] = 1
	}

	liveStacks := make([]float64, len(live))
	for k, p := range live {
		liveStacks[k] = stacks[p]
	}

	memo := make(map[memoKey]float64)
	full := uint32(1)<<len(live) - 1
	var finish func(mask uint32, player, rank int) float64
	finish = func(mask uint32, player, rank int) float64 {
		var sum float64
		for j := 0; j < len(live); j++ {
			if mask&(1<<j) != 0 {
				sum += liveStacks[j]
			}
		}
		if rank == 0 {
			return liveStacks[player] / sum
		}
		key := memoKey{mask: mask, player: uint8(player), rank: uint8(rank)}
		if v, ok := memo[key]; ok {
			return v
		}
		var total float64
		for j := 0; j < len(live); j++ {
			if j == player || mask&(1<<j) == 0 {
				continue
			}
			first := liveStacks[j] / sum
			total += first * finish(mask&^(1<<j), player, rank-1)
		}
		memo[key] = total
		return total
	}

	for k, p := range live {
		for rank := 0; rank < len(live); rank++ {
			probs[p][rank] = finish(full, k, rank)
		}
	}

	renormalize(probs, len(live))
	return probs, nil
}

// renormalize corrects floating-point drift on per-player sums. Drift
// beyond Tolerance indicates a bug during testing; in production the
// rows are rescaled and logged so a live decision never hard-fails.
func renormalize(probs [][]float64, liveRanks int) {
	for i, row := range probs {
		var sum float64
		for _, p := range row {
			sum += p
		}
		if math.Abs(sum-1) <= Tolerance {
			continue
		}
		log.Warn().Int("player", i).Float64("sum", sum).
			Msg("finish probabilities drifted, renormalizing")
		if sum > 0 {
			for r := range row {
				row[r] /= sum
			}
		} else if liveRanks > 0 {
			row[0] = 1
		}
	}
}
