// Package classify: result types, sentinel errors, and options.
package classify

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/ankorell/strukta/atoms"
	"github.com/ankorell/strukta/bondgraph"
	"github.com/ankorell/strukta/symmetry"
)

// Sentinel errors for classification calls.
var (
	// ErrNilAtomSet is returned when Classify receives a nil atom set.
	ErrNilAtomSet = errors.New("classify: atom set is nil")

	// ErrTooManyAtoms is returned when the atom count exceeds the configured
	// maximum (WithMaxAtoms).
	ErrTooManyAtoms = errors.New("classify: atom count exceeds configured maximum")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("classify: invalid option supplied")
)

// DefaultMaxAtoms caps the input size; the pair scan is quadratic and a
// runaway input should fail fast rather than stall the caller.
const DefaultMaxAtoms = 1000

// DefaultSymmetryTimeout bounds the external symmetry lookup.
const DefaultSymmetryTimeout = 5 * time.Second

// DominanceFraction is the share of all atoms the largest finite component
// must hold for the configuration to count as one cluster with outliers
// rather than unbounded particles.
const DominanceFraction = 0.9

// Diagnostics records every threshold and measurement that shaped the
// decision, so a classification can be audited after the fact.
type Diagnostics struct {
	// Tolerance is the cutoff tolerance factor used for the bond graph.
	Tolerance float64

	// LargestCutoff is the largest pair cutoff (Å, tolerance included).
	LargestCutoff float64

	// AdsorptionThreshold is the network-distance bound (Å) under which an
	// outlier component counts as an adsorbate.
	AdsorptionThreshold float64

	// ComponentSizes lists the connected component sizes in seed order.
	ComponentSizes []int

	// Eigenvalues is the descending dimensionality spectrum of the primary
	// network (zeros when there is none).
	Eigenvalues [3]float64

	// LowConfidence is set when the decision sat inside a threshold band.
	LowConfidence bool

	// Warnings lists recoverable degradations (e.g. a degenerate cell
	// treated as non-periodic).
	Warnings []string
}

// Result is the outcome of one classification call. Network, Outliers, and
// Adsorbates are disjoint, ascending index lists that together cover every
// atom exactly once.
type Result struct {
	// Label is the structural class.
	Label Label

	// Network holds the atoms of the primary periodic network — or, for
	// Cluster0D, of the dominant finite cluster.
	Network []int

	// Outliers holds atoms outside the network and beyond adsorption range.
	Outliers []int

	// Adsorbates holds outlier components within adsorption range of a
	// Bulk3D network.
	Adsorbates []int

	// Rank is the effective dimensionality of the primary network.
	Rank int

	// ComponentRanks lists per-component ranks when no periodic network
	// exists (one entry per finite component, seed order); nil otherwise.
	ComponentRanks []int

	// Diagnostics is the audit record of the decision.
	Diagnostics Diagnostics

	// Symmetry is the space-group block for the network atoms, when a
	// Finder was configured and succeeded; nil otherwise.
	Symmetry *symmetry.Info

	// SymmetryErr explains an absent symmetry block (ErrNoSymmetryFound or
	// a *symmetry.LookupError). Never fatal to the classification.
	SymmetryErr error
}

// Option configures Classify via functional arguments. Invalid values are
// recorded and surfaced as ErrOptionViolation when Classify runs.
type Option func(*Options)

// Options holds the classification parameters.
type Options struct {
	// Ctx cancels the geometric pipeline and parents the symmetry lookup.
	Ctx context.Context

	// Tolerance scales covalent-radius sums into bonding cutoffs.
	Tolerance float64

	// VarianceThreshold is the relative eigenvalue cutoff for rank counting.
	VarianceThreshold float64

	// AdsorptionThreshold (Å) overrides the adsorbate distance bound;
	// 0 selects the default of twice the largest cutoff used.
	AdsorptionThreshold float64

	// Cutoffs supplies per-species radii.
	Cutoffs *atoms.CutoffTable

	// Finder, when non-nil, is consulted for the symmetry block.
	Finder symmetry.Finder

	// SymmetryTimeout bounds one Finder call.
	SymmetryTimeout time.Duration

	// MaxAtoms caps the input size; 0 disables the cap.
	MaxAtoms int

	// Logger receives debug/info diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger

	err error
}

// DefaultOptions returns the documented defaults: tolerance 1.1, variance
// threshold 0.10, auto adsorption threshold, built-in cutoffs, no symmetry
// finder, 5s symmetry timeout, 1000-atom cap, no-op logger.
func DefaultOptions() Options {
	return Options{
		Ctx:               context.Background(),
		Tolerance:         bondgraph.DefaultTolerance,
		VarianceThreshold: 0.10,
		Cutoffs:           atoms.DefaultCutoffs(),
		SymmetryTimeout:   DefaultSymmetryTimeout,
		MaxAtoms:          DefaultMaxAtoms,
		Logger:            zap.NewNop(),
	}
}

// WithContext sets a custom context. Nil is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithTolerance overrides the cutoff tolerance factor. Values outside
// (0, bondgraph.MaxTolerance] are rejected at Classify time.
func WithTolerance(t float64) Option {
	return func(o *Options) {
		if t <= 0 || t > bondgraph.MaxTolerance {
			o.err = ErrOptionViolation

			return
		}
		o.Tolerance = t
	}
}

// WithVarianceThreshold overrides the relative eigenvalue cutoff, in (0, 1].
func WithVarianceThreshold(t float64) Option {
	return func(o *Options) {
		if t <= 0 || t > 1 {
			o.err = ErrOptionViolation

			return
		}
		o.VarianceThreshold = t
	}
}

// WithAdsorptionThreshold overrides the adsorbate distance bound (Å).
// Must be positive.
func WithAdsorptionThreshold(d float64) Option {
	return func(o *Options) {
		if d <= 0 {
			o.err = ErrOptionViolation

			return
		}
		o.AdsorptionThreshold = d
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

// WithSymmetryFinder enables the symmetry block via the given Finder.
func WithSymmetryFinder(f symmetry.Finder) Option {
	return func(o *Options) { o.Finder = f }
}

// WithSymmetryTimeout bounds one symmetry lookup. Must be positive.
func WithSymmetryTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d <= 0 {
			o.err = ErrOptionViolation

			return
		}
		o.SymmetryTimeout = d
	}
}

// WithMaxAtoms overrides the input size cap; 0 disables it.
func WithMaxAtoms(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = ErrOptionViolation

			return
		}
		o.MaxAtoms = n
	}
}

// WithLogger attaches a structured logger. Nil is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
