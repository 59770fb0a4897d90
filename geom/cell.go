package geom

import (
	"math"

	"github.com/ankorell/strukta/atoms"
)

// EpsDefault is the tolerance used by structural comparisons in this package.
const EpsDefault = 1e-9

// volumeEps is the relative volume threshold below which a periodic cell is
// treated as degenerate (and therefore non-periodic).
const volumeEps = 1e-12

// Det3 returns the determinant of a 3×3 matrix given as rows.
func Det3(m [3][3]float64) float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Invert3 returns the inverse of a 3×3 matrix via cofactor expansion, with
// ok=false when the matrix is numerically singular relative to its scale.
// A dedicated 3×3 kernel keeps fractional/Cartesian conversion off the
// general dense-matrix path.
func Invert3(m [3][3]float64) (inv [3][3]float64, ok bool) {
	det := Det3(m)
	scale := 0.0
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			scale = math.Max(scale, math.Abs(m[r][c]))
		}
	}
	if scale == 0 || math.Abs(det) < volumeEps*scale*scale*scale {
		return inv, false
	}
	invDet := 1.0 / det
	inv[0][0] = (m[1][1]*m[2][2] - m[1][2]*m[2][1]) * invDet
	inv[0][1] = (m[0][2]*m[2][1] - m[0][1]*m[2][2]) * invDet
	inv[0][2] = (m[0][1]*m[1][2] - m[0][2]*m[1][1]) * invDet
	inv[1][0] = (m[1][2]*m[2][0] - m[1][0]*m[2][2]) * invDet
	inv[1][1] = (m[0][0]*m[2][2] - m[0][2]*m[2][0]) * invDet
	inv[1][2] = (m[0][2]*m[1][0] - m[0][0]*m[1][2]) * invDet
	inv[2][0] = (m[1][0]*m[2][1] - m[1][1]*m[2][0]) * invDet
	inv[2][1] = (m[0][1]*m[2][0] - m[0][0]*m[2][1]) * invDet
	inv[2][2] = (m[0][0]*m[1][1] - m[0][1]*m[1][0]) * invDet

	return inv, true
}

// Degenerate reports whether cell claims periodicity over a basis whose
// volume is numerically zero. Such a cell is handled as fully non-periodic.
func Degenerate(cell atoms.Cell) bool {
	if !cell.AnyPeriodic() {
		return false
	}
	b := cell.Basis()
	scale := 0.0
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			scale = math.Max(scale, math.Abs(b[r][c]))
		}
	}

	return scale == 0 || cell.Volume() < volumeEps*scale*scale*scale
}

// Effective downgrades a degenerate periodic cell to non-periodic and
// returns any other cell unchanged. The boolean reports whether a downgrade
// happened, so callers can record the warning.
func Effective(cell atoms.Cell) (atoms.Cell, bool) {
	if Degenerate(cell) {
		return cell.NonPeriodic(), true
	}

	return cell, false
}

// CartesianShift maps an integer lattice shift to Cartesian coordinates.
func CartesianShift(cell atoms.Cell, shift [3]int) [3]float64 {
	b := cell.Basis()
	var out [3]float64
	for ax := 0; ax < 3; ax++ {
		f := float64(shift[ax])
		out[0] += f * b[ax][0]
		out[1] += f * b[ax][1]
		out[2] += f * b[ax][2]
	}

	return out
}

// ToFractional converts a Cartesian vector to fractional coordinates of the
// cell basis. ok=false when the basis is singular.
func ToFractional(cell atoms.Cell, v [3]float64) (frac [3]float64, ok bool) {
	inv, ok := Invert3(cell.Basis())
	if !ok {
		return frac, false
	}
	for ax := 0; ax < 3; ax++ {
		frac[ax] = v[0]*inv[0][ax] + v[1]*inv[1][ax] + v[2]*inv[2][ax]
	}

	return frac, true
}

// FromFractional converts fractional coordinates back to Cartesian.
func FromFractional(cell atoms.Cell, frac [3]float64) [3]float64 {
	b := cell.Basis()
	var out [3]float64
	for ax := 0; ax < 3; ax++ {
		out[0] += frac[ax] * b[ax][0]
		out[1] += frac[ax] * b[ax][1]
		out[2] += frac[ax] * b[ax][2]
	}

	return out
}

// Norm returns the Euclidean length of v.
func Norm(v [3]float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Sub returns a - b.
func Sub(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Add returns a + b.
func Add(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Dot returns the dot product of a and b.
func Dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross returns the cross product a × b.
func Cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
