// Package cluster partitions the bond graph into connected components and
// decides, per component, whether it is part of the extended periodic
// network or a finite cluster.
//
// Traversal uses an explicit worklist with visited flags indexed by atom id
// (no recursion), seeded in ascending atom index, so component order and
// membership are deterministic for a given graph.
//
// Periodic consistency is detected by unwrapping: each atom in a component
// is assigned an integer lattice shift relative to the seed. An edge whose
// shift contradicts the assignment — including a self-periodic edge, where
// the contradiction is immediate — yields a nonzero lattice repeat vector:
// the component reconnects to its own image under that translation, so it
// extends periodically along every axis the vector touches. Components that
// produce no repeat vector are finite clusters.
//
// The largest periodic component is the primary network; everything else is
// an outlier candidate for the decision engine to re-evaluate.
package cluster
