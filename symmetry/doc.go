// Package symmetry is the contract boundary around an external
// symmetry-detection service. The classification core hands it the network
// atoms and cell once the periodic subset is fixed, and treats the call as
// an opaque, possibly-failing lookup: a failure or timeout degrades the
// diagnostics of a classification, never its label or partition.
//
// Two implementations ship with the package: HTTPFinder, a JSON client for
// an spglib-style detection service, and CachedFinder, an LRU wrapper that
// memoizes successful lookups by structure digest. Callers bound the lookup
// with a context deadline; there is no retry here — retry policy belongs to
// the caller.
package symmetry
