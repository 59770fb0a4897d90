// Package bondgraph builds the undirected bonded-neighbor graph over an
// AtomSet: nodes are canonical atom indices, edges connect atoms whose
// distance — over any periodic image within the cutoff shell — falls under
// the species-pair cutoff (covalent radius sum × tolerance).
//
// Edges carry the integer lattice shift of the image that produced them. An
// edge from an atom to its own periodic replica (same index, nonzero shift)
// is the self-periodic marker: the signal that the atom belongs to a network
// extending along that lattice direction rather than to a finite cluster.
//
// The edge set is deterministic: atoms are scanned in ascending index,
// images in ascending lexicographic shift order, and edges are canonicalized
// to A ≤ B with a sign-normalized shift. A species pair missing from the
// cutoff table falls back to a conservative default radius; atoms are never
// silently dropped.
package bondgraph
