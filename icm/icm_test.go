package icm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEquity(t *testing.T) {
	calc := NewCalculator()

	t.Run("matches the winner-take-most example", func(t *testing.T) {
		// 3 players, payouts $500/$300/$0: equity distributes exactly
		// the $800 that is reachable.
		equity, err := calc.Equity([]float64{5000, 3000, 2000}, []float64{500, 300, 0})
		require.NoError(t, err)

		var total float64
		for _, e := range equity {
			total += e
		}
		require.InDelta(t, 800, total, Tolerance)
		require.InDelta(t, 351.785714, equity[0], 1e-4)
		require.InDelta(t, 262.5, equity[1], 1e-4)
		require.InDelta(t, 185.714285, equity[2], 1e-4)
	})

	t.Run("never exceeds the prize pool", func(t *testing.T) {
		cases := [][]float64{
			{1000, 1000},
			{8000, 1500, 500},
			{4000, 3000, 2000, 1000},
		}
		payouts := []float64{500, 300, 200, 100, 50}
		for _, stacks := range cases {
			equity, err := calc.Equity(stacks, payouts)
			require.NoError(t, err)

			var pool, total float64
			for _, p := range payouts {
				pool += p
			}
			for _, e := range equity {
				total += e
			}
			require.LessOrEqual(t, total, pool+Tolerance,
				"excess payout ranks have no one to receive them for stacks %v", stacks)
		}
	})

	t.Run("heads-up winner-take-all reduces to stack fractions", func(t *testing.T) {
		equity, err := calc.Equity([]float64{7000, 3000}, []float64{1000})
		require.NoError(t, err)
		require.InDelta(t, 700, equity[0], Tolerance)
		require.InDelta(t, 300, equity[1], Tolerance)
	})
}

func TestBubbleFactor(t *testing.T) {
	calc := NewCalculator()
	stacks := []float64{4000, 4100, 1900}
	payouts := []float64{500, 300, 0}

	t.Run("stays in range", func(t *testing.T) {
		for player := range stacks {
			factor, err := calc.BubbleFactor(stacks, payouts, player)
			require.NoError(t, err)
			require.GreaterOrEqual(t, factor, MinBubbleFactor)
			require.LessOrEqual(t, factor, MaxBubbleFactor)
		}
	})

	t.Run("exceeds 1 near the bubble", func(t *testing.T) {
		factor, err := calc.BubbleFactor(stacks, payouts, 0)
		require.NoError(t, err)
		require.Greater(t, factor, 1.0,
			"a chip lost near the bubble costs more than a chip won is worth")
	})

	t.Run("rejects an out-of-range player", func(t *testing.T) {
		_, err := calc.BubbleFactor(stacks, payouts, 3)
		require.Error(t, err)
	})
}

func TestRiskPremium(t *testing.T) {
	calc := NewCalculator()
	payouts := []float64{500, 300, 0}

	t.Run("charges a positive premium for a bubble gamble", func(t *testing.T) {
		win := []float64{8100, 0, 1900}
		lose := []float64{0, 8100, 1900}
		premium, err := calc.RiskPremium(payouts, 0, win, lose, 0.55)
		require.NoError(t, err)
		require.Greater(t, premium, 0.0)
		require.InDelta(t, 102.3, premium, 0.5)
	})

	t.Run("rejects an invalid win probability", func(t *testing.T) {
		_, err := calc.RiskPremium(payouts, 0, []float64{1, 1}, []float64{1, 1}, 1.5)
		require.Error(t, err)
	})
}

func TestOptimizePayouts(t *testing.T) {
	t.Run("sums exactly to the pool", func(t *testing.T) {
		for _, pool := range []float64{800, 1000, 12345.67} {
			payouts := OptimizePayouts(pool, 3, 0.5)
			require.Len(t, payouts, 3)
			var cents int64
			for _, p := range payouts {
				cents += int64(p*100 + 0.5)
			}
			require.Equal(t, int64(pool*100+0.5), cents,
				"rounding remainder belongs to first place")
		}
	})

	t.Run("decays from first place", func(t *testing.T) {
		payouts := OptimizePayouts(1000, 4, 0.5)
		for i := 1; i < len(payouts); i++ {
			require.Less(t, payouts[i], payouts[i-1])
		}
	})

	t.Run("degenerate inputs", func(t *testing.T) {
		require.Nil(t, OptimizePayouts(0, 3, 0.5))
		require.Nil(t, OptimizePayouts(100, 0, 0.5))
		single := OptimizePayouts(100, 1, 0.5)
		require.Equal(t, []float64{100}, single)
	})
}
