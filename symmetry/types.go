// Package symmetry: Finder contract, Info record, and failure taxonomy.
package symmetry

import (
	"context"
	"errors"
	"fmt"

	"github.com/ankorell/strukta/atoms"
)

// ErrNoSymmetryFound is the definitive negative answer: the service ran and
// found no usable symmetry (too few atoms, degenerate cell, no space group).
var ErrNoSymmetryFound = errors.New("symmetry: no symmetry found")

// Reason codes attached to lookup failures.
const (
	// ReasonTimeout marks a lookup abandoned at its context deadline.
	ReasonTimeout = "timeout"

	// ReasonTransport marks a network or protocol failure.
	ReasonTransport = "transport"

	// ReasonRejected marks input the service refused to analyze.
	ReasonRejected = "rejected"
)

// LookupError wraps any non-definitive lookup failure with a reason code so
// the diagnostics record can name why the symmetry block is absent.
type LookupError struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	return fmt.Sprintf("symmetry: lookup failed (%s): %v", e.Reason, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *LookupError) Unwrap() error { return e.Err }

// Info is the symmetry block of a classification result.
type Info struct {
	// SpaceGroup is the international space group number (1–230).
	SpaceGroup int

	// PrimitiveCell is the primitive lattice basis, rows as vectors.
	PrimitiveCell [3][3]float64

	// Wyckoff holds one Wyckoff letter per supplied atom, in atom order.
	Wyckoff []string
}

// Finder locates the symmetry of a periodic atom subset. Implementations
// must honor ctx cancellation and must not retain the atom set.
type Finder interface {
	FindSymmetry(ctx context.Context, set *atoms.AtomSet, cell atoms.Cell) (*Info, error)
}

// FinderFunc adapts a plain function to the Finder interface.
type FinderFunc func(ctx context.Context, set *atoms.AtomSet, cell atoms.Cell) (*Info, error)

// FindSymmetry calls f.
func (f FinderFunc) FindSymmetry(ctx context.Context, set *atoms.AtomSet, cell atoms.Cell) (*Info, error) {
	return f(ctx, set, cell)
}
