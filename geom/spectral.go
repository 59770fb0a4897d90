package geom

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrEigenFailed is returned when the symmetric eigen factorization does not
// converge. With a well-formed 3×3 covariance this does not happen in
// practice, but the kernel is fallible and the failure must surface.
var ErrEigenFailed = errors.New("geom: eigen factorization failed")

// Covariance builds the 3×3 second-moment matrix of the given vectors about
// the origin: C = Σ v·vᵀ / n. The vectors of interest here (lattice repeat
// vectors) come in ± pairs, so their mean is zero and the second moment is
// the covariance.
func Covariance(vectors [][3]float64) *mat.SymDense {
	cov := mat.NewSymDense(3, nil)
	if len(vectors) == 0 {
		return cov
	}
	n := float64(len(vectors))
	for r := 0; r < 3; r++ {
		for c := r; c < 3; c++ {
			sum := 0.0
			for _, v := range vectors {
				sum += v[r] * v[c]
			}
			cov.SetSym(r, c, sum/n)
		}
	}

	return cov
}

// PrincipalAxes returns the eigenvalues of a symmetric matrix in descending
// order. Negative values arising from round-off are clamped to zero.
func PrincipalAxes(cov *mat.SymDense) ([]float64, error) {
	var es mat.EigenSym
	if !es.Factorize(cov, false) {
		return nil, ErrEigenFailed
	}
	vals := es.Values(nil)
	// gonum reports ascending order; reverse and clamp.
	for l, r := 0, len(vals)-1; l < r; l, r = l+1, r-1 {
		vals[l], vals[r] = vals[r], vals[l]
	}
	for i, v := range vals {
		if v < 0 {
			vals[i] = 0
		}
	}

	return vals, nil
}
