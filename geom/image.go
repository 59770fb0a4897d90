package geom

import (
	"math"

	"github.com/ankorell/strukta/atoms"
)

// MinimumImage returns the displacement posB−posA and its length under the
// minimum-image convention of cell. Non-periodic axes contribute the plain
// Cartesian difference; a degenerate periodic cell is treated as fully
// non-periodic. For skewed cells the rounded fractional image is refined by
// searching the ±1 shift neighborhood, so the result is the true minimum
// over images.
func MinimumImage(posA, posB [3]float64, cell atoms.Cell) (disp [3]float64, dist float64) {
	disp = Sub(posB, posA)
	eff, _ := Effective(cell)
	if !eff.AnyPeriodic() {
		return disp, Norm(disp)
	}
	frac, ok := ToFractional(eff, disp)
	if !ok {
		return disp, Norm(disp)
	}

	// Base shift from rounding, per periodic axis only.
	var base [3]int
	for ax := 0; ax < 3; ax++ {
		if eff.Periodic(ax) {
			base[ax] = int(math.Round(frac[ax]))
		}
	}

	best := disp
	bestDist := math.Inf(1)
	var lo, hi [3]int
	for ax := 0; ax < 3; ax++ {
		if eff.Periodic(ax) {
			lo[ax], hi[ax] = -1, 1
		}
	}
	for di := lo[0]; di <= hi[0]; di++ {
		for dj := lo[1]; dj <= hi[1]; dj++ {
			for dk := lo[2]; dk <= hi[2]; dk++ {
				shift := [3]int{base[0] + di, base[1] + dj, base[2] + dk}
				cand := Sub(disp, CartesianShift(eff, shift))
				if d := Norm(cand); d < bestDist {
					best, bestDist = cand, d
				}
			}
		}
	}

	return best, bestDist
}

// EnumerateImages returns the integer lattice translations whose image slab
// can lie within shellRadius of the home cell: per periodic axis the bound
// is ceil(shellRadius / h) + 1 where h is the perpendicular height of the
// cell along that axis; non-periodic axes contribute only shift 0. The
// sequence is ascending lexicographic in (i, j, k) and always contains the
// zero translation. A non-positive radius or a degenerate cell yields only
// the zero translation.
func EnumerateImages(cell atoms.Cell, shellRadius float64) [][3]int {
	eff, _ := Effective(cell)
	var bounds [3]int
	if eff.AnyPeriodic() && shellRadius > 0 {
		heights := perpendicularHeights(eff)
		for ax := 0; ax < 3; ax++ {
			if eff.Periodic(ax) && heights[ax] > 0 {
				bounds[ax] = int(math.Ceil(shellRadius/heights[ax])) + 1
			}
		}
	}

	out := make([][3]int, 0, (2*bounds[0]+1)*(2*bounds[1]+1)*(2*bounds[2]+1))
	for i := -bounds[0]; i <= bounds[0]; i++ {
		for j := -bounds[1]; j <= bounds[1]; j++ {
			for k := -bounds[2]; k <= bounds[2]; k++ {
				out = append(out, [3]int{i, j, k})
			}
		}
	}

	return out
}

// perpendicularHeights returns, per axis, the distance between the two cell
// faces spanned by the other two lattice vectors: V / |a_j × a_k|.
func perpendicularHeights(cell atoms.Cell) [3]float64 {
	b := cell.Basis()
	vol := cell.Volume()
	var h [3]float64
	for ax := 0; ax < 3; ax++ {
		cr := Cross(b[(ax+1)%3], b[(ax+2)%3])
		area := Norm(cr)
		if area > 0 {
			h[ax] = vol / area
		}
	}

	return h
}

// WrapFractional maps position into the home cell along each periodic axis
// (fractional coordinate in [0,1)) and leaves non-periodic axes untouched.
// With a degenerate or non-periodic cell the position is returned unchanged.
func WrapFractional(pos [3]float64, cell atoms.Cell) [3]float64 {
	eff, _ := Effective(cell)
	if !eff.AnyPeriodic() {
		return pos
	}
	frac, ok := ToFractional(eff, pos)
	if !ok {
		return pos
	}
	for ax := 0; ax < 3; ax++ {
		if eff.Periodic(ax) {
			frac[ax] -= math.Floor(frac[ax])
		}
	}

	return FromFractional(eff, frac)
}

// Thickness returns the extent of the positions along the given cell axis
// direction (unit vector of the basis row), or along the Cartesian axis when
// the basis row is zero. Zero for fewer than two positions.
func Thickness(positions [][3]float64, cell atoms.Cell, axis int) float64 {
	if len(positions) < 2 {
		return 0
	}
	dir := cell.Vector(axis)
	n := Norm(dir)
	if n == 0 {
		dir = [3]float64{}
		dir[axis] = 1
		n = 1
	}
	unit := [3]float64{dir[0] / n, dir[1] / n, dir[2] / n}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range positions {
		proj := Dot(p, unit)
		lo = math.Min(lo, proj)
		hi = math.Max(hi, proj)
	}

	return hi - lo
}
