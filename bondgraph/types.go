// Package bondgraph: graph types, sentinel errors, and build options.
package bondgraph

import (
	"context"
	"errors"

	"github.com/ankorell/strukta/atoms"
)

// Sentinel errors for graph construction.
var (
	// ErrNilAtomSet is returned when Build receives a nil atom set.
	ErrNilAtomSet = errors.New("bondgraph: atom set is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bondgraph: invalid option supplied")
)

// DefaultTolerance scales the covalent-radius sum into the bonding cutoff.
const DefaultTolerance = 1.1

// MaxTolerance bounds WithTolerance; beyond it every atom pair in a typical
// cell bonds and the graph degenerates.
const MaxTolerance = 3.0

// Edge is a bond between canonical atom indices A ≤ B. Shift is the integer
// lattice translation applied to B's position for the image that bonded;
// Dist is the Cartesian distance of that image pair. A == B with a nonzero
// Shift is a self-periodic edge.
type Edge struct {
	A, B  int
	Dist  float64
	Shift [3]int
}

// Neighbor is one adjacency entry seen from a given atom: the other
// endpoint, the shift oriented from this atom toward To, and the distance.
type Neighbor struct {
	To    int
	Shift [3]int
	Dist  float64
}

// Graph is the bonded-neighbor graph produced by Build. It is immutable
// after construction and consumed once by the cluster finder.
type Graph struct {
	order         int
	edges         []Edge
	adj           [][]Neighbor
	selfAxes      [][3]bool
	largestCutoff float64
	tolerance     float64
}

// Order returns the number of canonical atoms (nodes).
func (g *Graph) Order() int { return g.order }

// Edges returns a copy of the edge list in construction order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)

	return out
}

// Neighbors returns the adjacency entries of atom i, in construction order.
// Self-periodic edges appear with To == i and a nonzero Shift. The returned
// slice is shared; callers must not modify it.
func (g *Graph) Neighbors(i int) []Neighbor { return g.adj[i] }

// SelfPeriodic reports, per lattice axis, whether atom i bonds its own
// periodic replica along that axis.
func (g *Graph) SelfPeriodic(i int) [3]bool { return g.selfAxes[i] }

// Degree returns the number of adjacency entries of atom i.
func (g *Graph) Degree(i int) int { return len(g.adj[i]) }

// LargestCutoff returns the largest pair cutoff (tolerance included) that
// applied to the species present. Downstream adsorption thresholds are
// derived from it.
func (g *Graph) LargestCutoff() float64 { return g.largestCutoff }

// Tolerance returns the tolerance factor the graph was built with.
func (g *Graph) Tolerance() float64 { return g.tolerance }

// Option configures Build via functional arguments. Invalid values are
// recorded and surfaced as ErrOptionViolation when Build runs.
type Option func(*Options)

// Options holds the bond graph construction parameters.
type Options struct {
	// Ctx allows cancellation of long builds; polled once per atom.
	Ctx context.Context

	// Tolerance scales covalent-radius sums into bonding cutoffs.
	Tolerance float64

	// Cutoffs supplies per-species radii. Defaults to atoms.DefaultCutoffs.
	Cutoffs *atoms.CutoffTable

	err error
}

// DefaultOptions returns Options with background context, the default
// tolerance, and the built-in cutoff table.
func DefaultOptions() Options {
	return Options{
		Ctx:       context.Background(),
		Tolerance: DefaultTolerance,
		Cutoffs:   atoms.DefaultCutoffs(),
	}
}

// WithContext sets a custom context for cancellation. Nil is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithTolerance overrides the cutoff tolerance factor. Values outside
// (0, MaxTolerance] are rejected at Build time.
func WithTolerance(t float64) Option {
	return func(o *Options) {
		if t <= 0 || t > MaxTolerance {
			o.err = ErrOptionViolation

			return
		}
		o.Tolerance = t
	}
}

// WithCutoffs overrides the cutoff table. Nil is ignored.
func WithCutoffs(t *atoms.CutoffTable) Option {
	return func(o *Options) {
		if t != nil {
			o.Cutoffs = t
		}
	}
}
