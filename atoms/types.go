// Package atoms: AtomSet and Cell types, sentinel errors, constructors.
package atoms

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for input validation.
var (
	// ErrSpeciesPositionsMismatch indicates species and positions differ in length.
	ErrSpeciesPositionsMismatch = errors.New("atoms: species and positions length mismatch")

	// ErrNoAtoms indicates an empty atom set was supplied.
	ErrNoAtoms = errors.New("atoms: atom set is empty")

	// ErrEmptySpecies indicates an atom with an empty species symbol.
	ErrEmptySpecies = errors.New("atoms: empty species symbol")

	// ErrNonFiniteCoordinate indicates a NaN or Inf coordinate.
	ErrNonFiniteCoordinate = errors.New("atoms: non-finite coordinate")

	// ErrNonFiniteCell indicates a NaN or Inf cell basis entry.
	ErrNonFiniteCell = errors.New("atoms: non-finite cell entry")

	// ErrBadRadius indicates a cutoff-table radius that is not a positive
	// finite number.
	ErrBadRadius = errors.New("atoms: cutoff radius must be positive and finite")
)

// AtomSet is an ordered, immutable sequence of atoms. Species and positions
// are defensively copied on construction; accessors never expose internal
// slices for mutation.
type AtomSet struct {
	species   []string
	positions [][3]float64
}

// NewAtomSet validates and copies the given species symbols and Cartesian
// positions (Å). It fails fast with the offending atom index in the error:
// ErrSpeciesPositionsMismatch, ErrNoAtoms, ErrEmptySpecies, or
// ErrNonFiniteCoordinate.
func NewAtomSet(species []string, positions [][3]float64) (*AtomSet, error) {
	if len(species) != len(positions) {
		return nil, fmt.Errorf("%w: %d species, %d positions",
			ErrSpeciesPositionsMismatch, len(species), len(positions))
	}
	if len(species) == 0 {
		return nil, ErrNoAtoms
	}
	for i, sp := range species {
		if sp == "" {
			return nil, fmt.Errorf("%w: atom %d", ErrEmptySpecies, i)
		}
		for ax := 0; ax < 3; ax++ {
			if !isFinite(positions[i][ax]) {
				return nil, fmt.Errorf("%w: atom %d axis %d", ErrNonFiniteCoordinate, i, ax)
			}
		}
	}
	s := &AtomSet{
		species:   make([]string, len(species)),
		positions: make([][3]float64, len(positions)),
	}
	copy(s.species, species)
	copy(s.positions, positions)

	return s, nil
}

// Len returns the number of atoms.
func (s *AtomSet) Len() int { return len(s.species) }

// Species returns the species symbol of atom i.
func (s *AtomSet) Species(i int) string { return s.species[i] }

// Position returns the Cartesian position of atom i.
func (s *AtomSet) Position(i int) [3]float64 { return s.positions[i] }

// Positions returns a copy of all positions in atom order.
func (s *AtomSet) Positions() [][3]float64 {
	out := make([][3]float64, len(s.positions))
	copy(out, s.positions)

	return out
}

// SpeciesList returns a copy of all species symbols in atom order.
func (s *AtomSet) SpeciesList() []string {
	out := make([]string, len(s.species))
	copy(out, s.species)

	return out
}

// Subset returns a new AtomSet holding the atoms at the given indices, in the
// given order. Indices must be valid; Subset is used internally on
// already-validated index partitions and panics on out-of-range input
// (programmer error, not user input).
func (s *AtomSet) Subset(indices []int) *AtomSet {
	sub := &AtomSet{
		species:   make([]string, len(indices)),
		positions: make([][3]float64, len(indices)),
	}
	for k, idx := range indices {
		sub.species[k] = s.species[idx]
		sub.positions[k] = s.positions[idx]
	}

	return sub
}

// Translate returns a new AtomSet with every position shifted by delta.
// The receiver is not modified.
func (s *AtomSet) Translate(delta [3]float64) *AtomSet {
	out := &AtomSet{
		species:   make([]string, len(s.species)),
		positions: make([][3]float64, len(s.positions)),
	}
	copy(out.species, s.species)
	for i, p := range s.positions {
		out.positions[i] = [3]float64{p[0] + delta[0], p[1] + delta[1], p[2] + delta[2]}
	}

	return out
}

// Cell is a 3×3 lattice basis (rows are the lattice vectors, Å) together
// with per-axis periodicity flags. The zero Cell is fully non-periodic and
// valid for finite input.
type Cell struct {
	basis [3][3]float64
	pbc   [3]bool
}

// NewCell validates the basis entries (finite) and returns a Cell. A
// singular or near-singular basis is accepted here; downstream geometry
// treats such a cell as non-periodic rather than failing the call.
func NewCell(basis [3][3]float64, pbc [3]bool) (Cell, error) {
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if !isFinite(basis[r][c]) {
				return Cell{}, fmt.Errorf("%w: row %d col %d", ErrNonFiniteCell, r, c)
			}
		}
	}

	return Cell{basis: basis, pbc: pbc}, nil
}

// ZeroCell returns the fully non-periodic cell used for finite input.
func ZeroCell() Cell { return Cell{} }

// Basis returns the lattice basis rows.
func (c Cell) Basis() [3][3]float64 { return c.basis }

// Vector returns lattice vector axis (row of the basis).
func (c Cell) Vector(axis int) [3]float64 { return c.basis[axis] }

// Periodic reports whether the cell claims periodicity along axis.
func (c Cell) Periodic(axis int) bool { return c.pbc[axis] }

// PBC returns the per-axis periodicity flags.
func (c Cell) PBC() [3]bool { return c.pbc }

// AnyPeriodic reports whether any axis claims periodicity.
func (c Cell) AnyPeriodic() bool { return c.pbc[0] || c.pbc[1] || c.pbc[2] }

// NonPeriodic returns a copy of the cell with all periodicity flags cleared.
// Used when a degenerate basis forces a downgrade to finite treatment.
func (c Cell) NonPeriodic() Cell { return Cell{basis: c.basis} }

// Volume returns the absolute volume of the basis parallelepiped.
func (c Cell) Volume() float64 {
	b := c.basis
	det := b[0][0]*(b[1][1]*b[2][2]-b[1][2]*b[2][1]) -
		b[0][1]*(b[1][0]*b[2][2]-b[1][2]*b[2][0]) +
		b[0][2]*(b[1][0]*b[2][1]-b[1][1]*b[2][0])

	return math.Abs(det)
}

// Scale returns a copy of the cell with every basis entry multiplied by f.
func (c Cell) Scale(f float64) Cell {
	out := Cell{pbc: c.pbc}
	for r := 0; r < 3; r++ {
		for col := 0; col < 3; col++ {
			out.basis[r][col] = c.basis[r][col] * f
		}
	}

	return out
}

// isFinite reports whether v is neither NaN nor ±Inf.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
