package icm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFinishProbabilitiesSumToOne(t *testing.T) {
	cases := [][]float64{
		{5000, 5000},
		{5000, 3000, 2000},
		{1, 100, 10000},
		{2500, 2500, 2500, 2500},
		{9000, 4000, 3000, 2000, 1000, 500},
	}
	var mh MalmuthHarville
	for _, stacks := range cases {
		probs, err := mh.FinishProbabilities(stacks)
		require.NoError(t, err)

		n := len(stacks)
		for i := 0; i < n; i++ {
			var rowSum float64
			for r := 0; r < n; r++ {
				rowSum += probs[i][r]
			}
			require.InDelta(t, 1.0, rowSum, Tolerance,
				"player %d probabilities must sum to 1 for stacks %v", i, stacks)
		}
		for r := 0; r < n; r++ {
			var colSum float64
			for i := 0; i < n; i++ {
				colSum += probs[i][r]
			}
			require.InDelta(t, 1.0, colSum, Tolerance,
				"rank %d probabilities must sum to 1 for stacks %v", r+1, stacks)
		}
	}
}

func TestFinishProbabilitiesSymmetry(t *testing.T) {
	var mh MalmuthHarville
	probs, err := mh.FinishProbabilities([]float64{3000, 1500, 3000, 1500})
	require.NoError(t, err)

	for r := range probs[0] {
		require.InDelta(t, probs[0][r], probs[2][r], Tolerance,
			"equal stacks must have identical probability vectors")
		require.InDelta(t, probs[1][r], probs[3][r], Tolerance)
	}
}

func TestFinishProbabilitiesFirstPlaceIsStackShare(t *testing.T) {
	var mh MalmuthHarville
	probs, err := mh.FinishProbabilities([]float64{5000, 3000, 2000})
	require.NoError(t, err)

	require.Equal(t, 0.5, probs[0][0], "5000/10000 must be exactly 0.5")
	require.InDelta(t, 0.3, probs[1][0], Tolerance)
	require.InDelta(t, 0.2, probs[2][0], Tolerance)
}

func TestFinishProbabilitiesBustedPlayers(t *testing.T) {
	var mh MalmuthHarville
	probs, err := mh.FinishProbabilities([]float64{4000, 0, 6000, 0})
	require.NoError(t, err)

	// Busted seats hold the bottom ranks in seat order
	require.Equal(t, 1.0, probs[1][2])
	require.Equal(t, 1.0, probs[3][3])
	require.Equal(t, 0.0, probs[1][0])
	require.InDelta(t, 0.4, probs[0][0], Tolerance)
	require.InDelta(t, 0.6, probs[2][0], Tolerance)
}

func TestFinishProbabilitiesErrors(t *testing.T) {
	var mh MalmuthHarville

	_, err := mh.FinishProbabilities(nil)
	require.Error(t, err)

	_, err = mh.FinishProbabilities([]float64{100, -1})
	require.Error(t, err)

	big := make([]float64, MaxPlayers+1)
	for i := range big {
		big[i] = 100
	}
	_, err = mh.FinishProbabilities(big)
	require.Error(t, err)
}

func TestFinishProbabilitiesHeadsUp(t *testing.T) {
	var mh MalmuthHarville
	probs, err := mh.FinishProbabilities([]float64{7000, 3000})
	require.NoError(t, err)

	require.InDelta(t, 0.7, probs[0][0], Tolerance)
	require.InDelta(t, 0.3, probs[0][1], Tolerance)
	require.InDelta(t, 0.3, probs[1][0], Tolerance)
	require.InDelta(t, 0.7, probs[1][1], Tolerance)
	require.True(t, math.Abs(probs[0][0]+probs[1][0]-1) <= Tolerance)
}
