// Package atoms defines the immutable input model for a structural
// classification pass: AtomSet (species + Cartesian positions), Cell
// (3×3 lattice basis + per-axis periodicity flags), and CutoffTable
// (per-species covalent radii used to derive bonding cutoffs).
//
// Validation is fail-fast and names the offending field: mismatched slice
// lengths, empty species symbols, and non-finite coordinates are rejected at
// construction, before any geometry runs. A geometrically degenerate cell is
// NOT rejected here — claimed periodicity over a near-zero-volume basis is a
// recoverable condition handled downstream by treating the cell as
// non-periodic.
//
// All lookup tables are explicit value objects passed into the algorithms
// that consume them; nothing in this package is process-global or mutable
// after construction, so concurrent classification calls may share them
// freely.
package atoms
