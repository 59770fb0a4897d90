// Package strukta classifies the structural character of an atomic
// configuration: given atomic species, Cartesian positions, and an optional
// periodic cell, it decides whether the configuration is an isolated cluster,
// a 1-dimensional chain, a 2-dimensional sheet or surface, or a 3-dimensional
// bulk crystal, and separates the atoms that form the coherent periodic
// network from outliers and adsorbates.
//
// The pipeline flows strictly upward through the subpackages:
//
//	atoms/     — AtomSet, Cell, covalent-radius cutoff tables, input validation
//	geom/      — minimum-image distances, lattice image enumeration,
//	             covariance and principal-axis primitives
//	bondgraph/ — the bonded-neighbor graph over atoms and their periodic
//	             images, with self-periodic edge markers
//	cluster/   — connected components, periodic-consistency detection,
//	             primary-network selection
//	dimension/ — variance-based effective-rank estimation of the periodic
//	             extension
//	classify/  — the decision engine and single public entry point
//	symmetry/  — contract around an external symmetry-detection service
//
// A minimal call:
//
//	set, err := atoms.NewAtomSet([]string{"C", "C"}, positions)
//	if err != nil { ... }
//	cell, err := atoms.NewCell(basis, [3]bool{true, true, true})
//	if err != nil { ... }
//	res, err := classify.Classify(set, cell)
//	if err != nil { ... }
//	fmt.Println(res.Label) // e.g. Material2D
//
// Every call is a pure computation over its own inputs: no package holds
// process-wide mutable state, so independent classifications may run
// concurrently without coordination. Only the symmetry lookup may block; it
// is bounded by a caller-supplied timeout and its failure never changes the
// classification already computed.
package strukta
