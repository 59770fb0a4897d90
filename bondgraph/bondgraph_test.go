package bondgraph_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankorell/strukta/atoms"
	"github.com/ankorell/strukta/bondgraph"
)

// mustAtoms builds an AtomSet or fails the test.
func mustAtoms(t *testing.T, species []string, positions [][3]float64) *atoms.AtomSet {
	t.Helper()
	set, err := atoms.NewAtomSet(species, positions)
	require.NoError(t, err)

	return set
}

// mustCell builds a Cell or fails the test.
func mustCell(t *testing.T, basis [3][3]float64, pbc [3]bool) atoms.Cell {
	t.Helper()
	cell, err := atoms.NewCell(basis, pbc)
	require.NoError(t, err)

	return cell
}

// TestBuild_FiniteDimer bonds two carbons at bonding distance, no cell.
func TestBuild_FiniteDimer(t *testing.T) {
	set := mustAtoms(t, []string{"C", "C"}, [][3]float64{{0, 0, 0}, {1.4, 0, 0}})

	g, err := bondgraph.Build(set, atoms.ZeroCell())
	require.NoError(t, err)
	require.Len(t, g.Edges(), 1)

	e := g.Edges()[0]
	assert.Equal(t, 0, e.A)
	assert.Equal(t, 1, e.B)
	assert.Equal(t, [3]int{0, 0, 0}, e.Shift)
	assert.InDelta(t, 1.4, e.Dist, 1e-12)
	assert.Equal(t, [3]bool{false, false, false}, g.SelfPeriodic(0))
}

// TestBuild_BeyondCutoff leaves distant atoms unbonded but present.
func TestBuild_BeyondCutoff(t *testing.T) {
	set := mustAtoms(t, []string{"C", "C"}, [][3]float64{{0, 0, 0}, {5, 0, 0}})

	g, err := bondgraph.Build(set, atoms.ZeroCell())
	require.NoError(t, err)
	assert.Empty(t, g.Edges())
	assert.Equal(t, 2, g.Order(), "unbonded atoms stay in the graph")
}

// TestBuild_SelfPeriodic detects an atom bonding its own replica along each
// short axis of the cell.
func TestBuild_SelfPeriodic(t *testing.T) {
	set := mustAtoms(t, []string{"C"}, [][3]float64{{0, 0, 0}})
	cell := mustCell(t, [3][3]float64{{1.5, 0, 0}, {0, 1.5, 0}, {0, 0, 1.5}},
		[3]bool{true, true, true})

	g, err := bondgraph.Build(set, cell)
	require.NoError(t, err)

	assert.Equal(t, [3]bool{true, true, true}, g.SelfPeriodic(0))
	// One sign-canonical self edge per axis: (1,0,0), (0,1,0), (0,0,1); the
	// diagonals sit beyond the C-C cutoff.
	require.Len(t, g.Edges(), 3)
	for _, e := range g.Edges() {
		assert.Equal(t, 0, e.A)
		assert.Equal(t, 0, e.B)
		assert.InDelta(t, 1.5, e.Dist, 1e-12)
	}
}

// TestBuild_PartialPBC keeps the vacuum axis image-free.
func TestBuild_PartialPBC(t *testing.T) {
	set := mustAtoms(t, []string{"C"}, [][3]float64{{0, 0, 0}})
	cell := mustCell(t, [3][3]float64{{1.5, 0, 0}, {0, 1.5, 0}, {0, 0, 1.5}},
		[3]bool{true, false, false})

	g, err := bondgraph.Build(set, cell)
	require.NoError(t, err)
	assert.Equal(t, [3]bool{true, false, false}, g.SelfPeriodic(0))
	assert.Len(t, g.Edges(), 1)
}

// TestBuild_WrappedInput bonds a pair split across the cell boundary the
// same way as its wrapped form.
func TestBuild_WrappedInput(t *testing.T) {
	cell := mustCell(t, [3][3]float64{{10, 0, 0}, {0, 10, 0}, {0, 0, 10}},
		[3]bool{true, true, true})

	split := mustAtoms(t, []string{"C", "C"}, [][3]float64{{0.2, 5, 5}, {9.6, 5, 5}})
	g, err := bondgraph.Build(split, cell)
	require.NoError(t, err)
	require.Len(t, g.Edges(), 1)
	assert.InDelta(t, 0.6, g.Edges()[0].Dist, 1e-9)
}

// TestBuild_UnknownSpeciesFallback bonds unknown species via the fallback
// radius instead of dropping them.
func TestBuild_UnknownSpeciesFallback(t *testing.T) {
	set := mustAtoms(t, []string{"Xq", "Xq"}, [][3]float64{{0, 0, 0}, {3.5, 0, 0}})

	g, err := bondgraph.Build(set, atoms.ZeroCell())
	require.NoError(t, err)
	// Fallback 2.0 Å per atom → cutoff 4.0 × 1.1 = 4.4 ≥ 3.5.
	assert.Len(t, g.Edges(), 1)
}

// TestBuild_Deterministic yields the identical edge sequence on repeat.
func TestBuild_Deterministic(t *testing.T) {
	set := mustAtoms(t, []string{"Fe", "Fe", "Fe"},
		[][3]float64{{0, 0, 0}, {2.8, 0, 0}, {0, 2.8, 0}})
	cell := mustCell(t, [3][3]float64{{5.6, 0, 0}, {0, 5.6, 0}, {0, 0, 5.6}},
		[3]bool{true, true, true})

	g1, err := bondgraph.Build(set, cell)
	require.NoError(t, err)
	g2, err := bondgraph.Build(set, cell)
	require.NoError(t, err)
	assert.Equal(t, g1.Edges(), g2.Edges())
}

// TestBuild_ToleranceOption widens and narrows the cutoff.
func TestBuild_ToleranceOption(t *testing.T) {
	// 1.9 Å sits above the default C-C cutoff (1.672) but below 1.52 × 1.3.
	set := mustAtoms(t, []string{"C", "C"}, [][3]float64{{0, 0, 0}, {1.9, 0, 0}})

	g, err := bondgraph.Build(set, atoms.ZeroCell())
	require.NoError(t, err)
	assert.Empty(t, g.Edges())

	g, err = bondgraph.Build(set, atoms.ZeroCell(), bondgraph.WithTolerance(1.3))
	require.NoError(t, err)
	assert.Len(t, g.Edges(), 1)
}

// TestBuild_CustomCutoffs takes radii from the supplied table.
func TestBuild_CustomCutoffs(t *testing.T) {
	table, err := atoms.NewCutoffTable(map[string]float64{"C": 0.30})
	require.NoError(t, err)

	set := mustAtoms(t, []string{"C", "C"}, [][3]float64{{0, 0, 0}, {1.4, 0, 0}})
	g, err := bondgraph.Build(set, atoms.ZeroCell(), bondgraph.WithCutoffs(table))
	require.NoError(t, err)
	assert.Empty(t, g.Edges(), "0.30 Å radii put 1.4 Å beyond the cutoff")
}

// TestBuild_OptionViolation surfaces invalid options at build time.
func TestBuild_OptionViolation(t *testing.T) {
	set := mustAtoms(t, []string{"C"}, [][3]float64{{0, 0, 0}})

	_, err := bondgraph.Build(set, atoms.ZeroCell(), bondgraph.WithTolerance(-1))
	assert.ErrorIs(t, err, bondgraph.ErrOptionViolation)

	_, err = bondgraph.Build(set, atoms.ZeroCell(), bondgraph.WithTolerance(99))
	assert.ErrorIs(t, err, bondgraph.ErrOptionViolation)
}

// TestBuild_NilAtomSet rejects a nil set.
func TestBuild_NilAtomSet(t *testing.T) {
	_, err := bondgraph.Build(nil, atoms.ZeroCell())
	assert.ErrorIs(t, err, bondgraph.ErrNilAtomSet)
}

// TestBuild_Cancellation aborts on a canceled context.
func TestBuild_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	set := mustAtoms(t, []string{"C", "C"}, [][3]float64{{0, 0, 0}, {1.4, 0, 0}})
	_, err := bondgraph.Build(set, atoms.ZeroCell(), bondgraph.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

// TestGraph_LargestCutoff reports the species-aware maximum.
func TestGraph_LargestCutoff(t *testing.T) {
	set := mustAtoms(t, []string{"H", "Fe"}, [][3]float64{{0, 0, 0}, {1.6, 0, 0}})

	g, err := bondgraph.Build(set, atoms.ZeroCell())
	require.NoError(t, err)
	assert.InDelta(t, 2*1.32*1.1, g.LargestCutoff(), 1e-12)
	assert.InDelta(t, 1.1, g.Tolerance(), 1e-12)
}
