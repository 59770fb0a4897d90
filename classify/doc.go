// Package classify is the entry point of the pipeline: Classify takes an
// AtomSet and Cell, runs bond graph construction, component and periodicity
// analysis, and dimensionality estimation, and emits a ClassificationResult
// with one label from the closed set
//
//	Cluster0D, Chain1D, Material2D, Surface2D, Bulk3D, UnboundedParticles
//
// plus a disjoint, exhaustive partition of atom indices into network,
// outlier, and adsorbate sets, and a diagnostics record of every threshold
// that influenced the decision.
//
// The decision itself is an ordered list of guard rules rather than nested
// branching: each rule names a structural situation, its guard either claims
// the evidence or passes, and the first claim wins. Precedence is therefore
// explicit and each rule is unit-testable in isolation.
//
// Classification is one-shot and pure: no retries, no shared state, and an
// ambiguous boundary case still yields a decisive label with the
// low-confidence flag set. When a symmetry Finder is configured it runs
// last, bounded by a timeout, over the network atoms only; its failure
// leaves the label and partition untouched.
package classify
