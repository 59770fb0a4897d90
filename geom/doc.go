// Package geom provides the periodic-boundary-aware geometry primitives the
// classification pipeline is built on: minimum-image displacement and
// distance, lattice image enumeration within a radius shell, fractional
// coordinate wrapping, per-axis thickness, and the covariance /
// principal-axis kernels used for dimensionality estimation.
//
// All functions are pure: outputs depend only on the supplied positions and
// cell, iteration orders are fixed, and nothing is cached between calls.
// A periodic cell whose basis is numerically degenerate (near-zero volume)
// is treated as fully non-periodic rather than reported as an error, so a
// malformed cell degrades a call instead of failing it.
package geom
