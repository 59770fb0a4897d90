// Package dimension: effective-rank estimation of a periodic component.
package dimension

import (
	"errors"

	"github.com/ankorell/strukta/atoms"
	"github.com/ankorell/strukta/cluster"
	"github.com/ankorell/strukta/geom"
)

// Sentinel errors for rank estimation.
var (
	// ErrNilComponent is returned when Estimate receives a nil component.
	ErrNilComponent = errors.New("dimension: component is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("dimension: invalid option supplied")
)

// DefaultVarianceThreshold is the relative eigenvalue cutoff: an axis counts
// toward the rank when its eigenvalue is at least this fraction of the
// largest one.
const DefaultVarianceThreshold = 0.10

// ConfidenceBand is the relative half-width around the variance threshold
// inside which an eigenvalue ratio is considered ambiguous.
const ConfidenceBand = 0.25

// Result carries the estimated rank and its supporting spectrum.
type Result struct {
	// Rank is the effective dimensionality in [0,3].
	Rank int

	// Eigenvalues is the descending covariance spectrum, zero-padded.
	Eigenvalues [3]float64

	// LowConfidence is set when some eigenvalue ratio falls inside the
	// ambiguity band around the threshold.
	LowConfidence bool
}

// Option configures Estimate via functional arguments.
type Option func(*Options)

// Options holds the estimator parameters.
type Options struct {
	// VarianceThreshold is the relative eigenvalue cutoff in (0, 1].
	VarianceThreshold float64

	err error
}

// DefaultOptions returns Options with the default variance threshold.
func DefaultOptions() Options {
	return Options{VarianceThreshold: DefaultVarianceThreshold}
}

// WithVarianceThreshold overrides the relative eigenvalue cutoff. Values
// outside (0, 1] are rejected at Estimate time.
func WithVarianceThreshold(t float64) Option {
	return func(o *Options) {
		if t <= 0 || t > 1 {
			o.err = ErrOptionViolation

			return
		}
		o.VarianceThreshold = t
	}
}

// Estimate computes the effective rank of comp under cell. A non-periodic
// component has rank 0 with an empty spectrum.
func Estimate(cell atoms.Cell, comp *cluster.Component, opts ...Option) (Result, error) {
	if comp == nil {
		return Result{}, ErrNilComponent
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return Result{}, o.err
	}
	if !comp.Periodic() {
		return Result{}, nil
	}

	vectors := make([][3]float64, 0, len(comp.RepeatVecs))
	for _, rv := range comp.RepeatVecs {
		vectors = append(vectors, geom.CartesianShift(cell, rv))
	}

	vals, err := geom.PrincipalAxes(geom.Covariance(vectors))
	if err != nil {
		return Result{}, err
	}

	res := Result{}
	copy(res.Eigenvalues[:], vals)

	largest := vals[0]
	if largest <= 0 {
		return res, nil
	}

	count := 0
	lo := o.VarianceThreshold * (1 - ConfidenceBand)
	hi := o.VarianceThreshold * (1 + ConfidenceBand)
	for _, v := range vals {
		ratio := v / largest
		if ratio >= o.VarianceThreshold {
			count++
		}
		if ratio >= lo && ratio <= hi {
			res.LowConfidence = true
		}
	}

	res.Rank = count
	if geo := comp.GeometricRank(); res.Rank > geo {
		res.Rank = geo
	}
	if res.Rank > 3 {
		res.Rank = 3
	}

	return res, nil
}
