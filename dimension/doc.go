// Package dimension estimates the effective spatial rank (0–3) of a
// periodic component from the principal-axis spectrum of its lattice repeat
// vectors.
//
// The raw periodic-axis flags from the cluster finder can overcount: a thin
// layered direction is nominally periodic yet contributes almost no spatial
// extension compared to the dominant axes. The estimator therefore maps each
// repeat vector to Cartesian coordinates, takes the eigen-spectrum of their
// covariance, counts eigenvalues above a relative-variance threshold
// (default 10% of the largest), and intersects that count with the geometric
// rank of the repeat lattice.
//
// A spectrum with any eigenvalue ratio inside the band around the threshold
// is flagged low-confidence; the rank returned is still decisive.
package dimension
