package dimension_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankorell/strukta/atoms"
	"github.com/ankorell/strukta/cluster"
	"github.com/ankorell/strukta/dimension"
)

// cellOf builds a diagonal cell with the given edge lengths, fully periodic.
func cellOf(t *testing.T, a, b, c float64) atoms.Cell {
	t.Helper()
	cell, err := atoms.NewCell([3][3]float64{{a, 0, 0}, {0, b, 0}, {0, 0, c}},
		[3]bool{true, true, true})
	require.NoError(t, err)

	return cell
}

// comp builds a component with the given repeat vectors.
func comp(repeats ...[3]int) *cluster.Component {
	c := &cluster.Component{Atoms: []int{0}, RepeatVecs: repeats}
	for _, v := range repeats {
		for ax := 0; ax < 3; ax++ {
			if v[ax] != 0 {
				c.PeriodicAxes[ax] = true
			}
		}
	}

	return c
}

// TestEstimate_NilComponent rejects nil input.
func TestEstimate_NilComponent(t *testing.T) {
	_, err := dimension.Estimate(atoms.ZeroCell(), nil)
	assert.ErrorIs(t, err, dimension.ErrNilComponent)
}

// TestEstimate_NonPeriodic yields rank 0 for a finite component.
func TestEstimate_NonPeriodic(t *testing.T) {
	res, err := dimension.Estimate(cellOf(t, 10, 10, 10), comp())
	require.NoError(t, err)
	assert.Zero(t, res.Rank)
	assert.False(t, res.LowConfidence)
}

// TestEstimate_Rank1 counts one dominant axis.
func TestEstimate_Rank1(t *testing.T) {
	res, err := dimension.Estimate(cellOf(t, 5, 10, 10), comp([3]int{1, 0, 0}))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rank)
	assert.InDelta(t, 25.0, res.Eigenvalues[0], 1e-9)
}

// TestEstimate_Rank2 counts two comparable axes.
func TestEstimate_Rank2(t *testing.T) {
	res, err := dimension.Estimate(cellOf(t, 5, 5, 20),
		comp([3]int{1, 0, 0}, [3]int{0, 1, 0}))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rank)
}

// TestEstimate_Rank3 counts three comparable axes.
func TestEstimate_Rank3(t *testing.T) {
	res, err := dimension.Estimate(cellOf(t, 5, 5, 5),
		comp([3]int{1, 0, 0}, [3]int{0, 1, 0}, [3]int{0, 0, 1}))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Rank)
	assert.False(t, res.LowConfidence)
}

// TestEstimate_ThinAxisSuppressed corrects the overcount when a nominally
// periodic direction carries almost no spatial extension: the geometric
// rank is 2 but the variance rank is 1.
func TestEstimate_ThinAxisSuppressed(t *testing.T) {
	// Repeat along x spans 20 Å, along z only 1 Å: eigenvalue ratio 1/400,
	// far below the 10% threshold.
	res, err := dimension.Estimate(cellOf(t, 20, 20, 1),
		comp([3]int{1, 0, 0}, [3]int{0, 0, 1}))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rank)
	assert.False(t, res.LowConfidence)
}

// TestEstimate_ThresholdOverride re-admits the thin axis with a looser
// threshold.
func TestEstimate_ThresholdOverride(t *testing.T) {
	res, err := dimension.Estimate(cellOf(t, 20, 20, 1),
		comp([3]int{1, 0, 0}, [3]int{0, 0, 1}),
		dimension.WithVarianceThreshold(0.001))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rank)
}

// TestEstimate_LowConfidenceBand flags a spectrum whose ratio sits near the
// threshold while still returning a decisive rank.
func TestEstimate_LowConfidenceBand(t *testing.T) {
	// Axis lengths 10 and 3 give an eigenvalue ratio of 0.09, inside the
	// [0.075, 0.125] ambiguity band and below the 0.10 threshold.
	res, err := dimension.Estimate(cellOf(t, 10, 3, 100),
		comp([3]int{1, 0, 0}, [3]int{0, 1, 0}))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rank)
	assert.True(t, res.LowConfidence)
}

// TestEstimate_OptionViolation rejects thresholds outside (0, 1].
func TestEstimate_OptionViolation(t *testing.T) {
	_, err := dimension.Estimate(cellOf(t, 5, 5, 5), comp([3]int{1, 0, 0}),
		dimension.WithVarianceThreshold(0))
	assert.ErrorIs(t, err, dimension.ErrOptionViolation)

	_, err = dimension.Estimate(cellOf(t, 5, 5, 5), comp([3]int{1, 0, 0}),
		dimension.WithVarianceThreshold(1.5))
	assert.ErrorIs(t, err, dimension.ErrOptionViolation)
}
