package bondgraph

import (
	"github.com/ankorell/strukta/atoms"
	"github.com/ankorell/strukta/geom"
)

// Build constructs the bonded-neighbor graph of set under cell. Positions
// are wrapped into the home cell along periodic axes first, so structures
// split across a cell boundary bond identically to their wrapped form. The
// cell is downgraded to non-periodic when degenerate; that never fails the
// build.
//
// Returns ErrNilAtomSet, ErrOptionViolation, or the context error on
// cancellation.
func Build(set *atoms.AtomSet, cell atoms.Cell, opts ...Option) (*Graph, error) {
	if set == nil {
		return nil, ErrNilAtomSet
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	eff, _ := geom.Effective(cell)
	n := set.Len()

	// Largest cutoff over the species actually present sizes the image shell.
	largest := o.Cutoffs.MaxPairCutoff(set.SpeciesList()) * o.Tolerance

	// Wrap once; all pair distances below use wrapped coordinates.
	wrapped := make([][3]float64, n)
	for i := 0; i < n; i++ {
		wrapped[i] = geom.WrapFractional(set.Position(i), eff)
	}

	images := geom.EnumerateImages(eff, largest)

	g := &Graph{
		order:         n,
		adj:           make([][]Neighbor, n),
		selfAxes:      make([][3]bool, n),
		largestCutoff: largest,
		tolerance:     o.Tolerance,
	}

	for i := 0; i < n; i++ {
		// Cancellation check, once per atom.
		select {
		case <-o.Ctx.Done():
			return nil, o.Ctx.Err()
		default:
		}

		for j := i; j < n; j++ {
			cutoff := o.Cutoffs.PairCutoff(set.Species(i), set.Species(j)) * o.Tolerance
			for _, shift := range images {
				if i == j && !canonicalShift(shift) {
					// Self pairs: shift 0 is the atom itself; ±T are the same
					// image bond, keep the sign-canonical one.
					continue
				}
				target := geom.Add(wrapped[j], geom.CartesianShift(eff, shift))
				d := geom.Norm(geom.Sub(target, wrapped[i]))
				if d > cutoff {
					continue
				}
				g.addEdge(i, j, shift, d)
			}
		}
	}

	return g, nil
}

// canonicalShift reports whether the first nonzero component of shift is
// positive. The zero shift is not canonical.
func canonicalShift(shift [3]int) bool {
	for ax := 0; ax < 3; ax++ {
		if shift[ax] > 0 {
			return true
		}
		if shift[ax] < 0 {
			return false
		}
	}

	return false
}

// addEdge records edge (a, b, shift) plus both adjacency orientations, and
// updates the self-periodic markers when a == b.
func (g *Graph) addEdge(a, b int, shift [3]int, dist float64) {
	g.edges = append(g.edges, Edge{A: a, B: b, Dist: dist, Shift: shift})
	g.adj[a] = append(g.adj[a], Neighbor{To: b, Shift: shift, Dist: dist})
	if a != b {
		neg := [3]int{-shift[0], -shift[1], -shift[2]}
		g.adj[b] = append(g.adj[b], Neighbor{To: a, Shift: neg, Dist: dist})
	} else {
		for ax := 0; ax < 3; ax++ {
			if shift[ax] != 0 {
				g.selfAxes[a][ax] = true
			}
		}
	}
}
