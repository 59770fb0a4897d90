package classify

import (
	"context"

	"go.uber.org/zap"

	"github.com/ankorell/strukta/atoms"
	"github.com/ankorell/strukta/bondgraph"
	"github.com/ankorell/strukta/cluster"
	"github.com/ankorell/strukta/dimension"
	"github.com/ankorell/strukta/geom"
)

// Classify runs the full pipeline over one configuration and returns its
// Result. The call is pure with respect to shared state:
// every structure it builds is private to the call, so independent
// classifications may run concurrently.
//
// Fatal errors are only input-shaped: ErrNilAtomSet, ErrTooManyAtoms,
// ErrOptionViolation, or a context error. Geometric degradations (a
// degenerate cell under claimed periodicity) and symmetry failures are
// recoverable and land in the diagnostics instead.
func Classify(set *atoms.AtomSet, cell atoms.Cell, opts ...Option) (*Result, error) {
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
	if o.MaxAtoms > 0 && set.Len() > o.MaxAtoms {
		return nil, ErrTooManyAtoms
	}

	res := &Result{}
	res.Diagnostics.Tolerance = o.Tolerance

	// A degenerate periodic cell degrades to finite treatment (recoverable).
	eff, degraded := geom.Effective(cell)
	if degraded {
		res.Diagnostics.Warnings = append(res.Diagnostics.Warnings,
			"degenerate cell: claimed periodicity ignored")
		o.Logger.Debug("degenerate cell treated as non-periodic")
	}

	graph, err := bondgraph.Build(set, eff,
		bondgraph.WithTolerance(o.Tolerance),
		bondgraph.WithCutoffs(o.Cutoffs),
		bondgraph.WithContext(o.Ctx))
	if err != nil {
		return nil, err
	}
	res.Diagnostics.LargestCutoff = graph.LargestCutoff()

	part, err := cluster.Find(graph)
	if err != nil {
		return nil, err
	}
	for _, c := range part.Components {
		res.Diagnostics.ComponentSizes = append(res.Diagnostics.ComponentSizes, c.Size())
	}

	primary := part.Primary()
	var dim dimension.Result
	if primary != nil {
		dim, err = dimension.Estimate(eff, primary,
			dimension.WithVarianceThreshold(o.VarianceThreshold))
		if err != nil {
			return nil, err
		}
	}
	res.Diagnostics.Eigenvalues = dim.Eigenvalues

	adsThreshold := o.AdsorptionThreshold
	if adsThreshold == 0 {
		adsThreshold = 2 * graph.LargestCutoff()
	}
	res.Diagnostics.AdsorptionThreshold = adsThreshold

	ev := &evidence{
		set:          set,
		cell:         eff,
		graph:        graph,
		part:         part,
		primary:      primary,
		dim:          dim,
		opts:         &o,
		adsThreshold: adsThreshold,
		warn: func(msg string) {
			res.Diagnostics.Warnings = append(res.Diagnostics.Warnings, msg)
		},
	}

	out, ruleName := decide(ev)
	res.Label = out.label
	res.Network = out.network
	res.Outliers = out.outliers
	res.Adsorbates = out.adsorbates
	res.Rank = dim.Rank
	res.ComponentRanks = out.componentRanks
	res.Diagnostics.LowConfidence = dim.LowConfidence || out.lowConfidence

	o.Logger.Info("classified structure",
		zap.String("label", res.Label.String()),
		zap.String("rule", ruleName),
		zap.Int("rank", res.Rank),
		zap.Int("atoms", set.Len()),
		zap.Int("components", len(part.Components)),
		zap.Int("network", len(res.Network)),
		zap.Int("outliers", len(res.Outliers)),
		zap.Int("adsorbates", len(res.Adsorbates)),
		zap.Bool("low_confidence", res.Diagnostics.LowConfidence))

	// Symmetry runs last, over network atoms only, and never alters the
	// verdict above.
	if o.Finder != nil && len(res.Network) > 0 {
		lookupSymmetry(res, set, eff, &o)
	}

	return res, nil
}

// lookupSymmetry consults the configured Finder under its timeout and
// records either the Info block or the failure reason on the result.
func lookupSymmetry(res *Result, set *atoms.AtomSet, cell atoms.Cell, o *Options) {
	ctx, cancel := context.WithTimeout(o.Ctx, o.SymmetryTimeout)
	defer cancel()

	info, err := o.Finder.FindSymmetry(ctx, set.Subset(res.Network), cell)
	if err != nil {
		res.SymmetryErr = err
		o.Logger.Debug("symmetry lookup failed", zap.Error(err))

		return
	}
	res.Symmetry = info
}
