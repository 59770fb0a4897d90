// Package cluster: component finding and periodic-consistency detection.
package cluster

import (
	"errors"
	"math"
	"sort"

	"github.com/ankorell/strukta/bondgraph"
)

// ErrNilGraph is returned when Find receives a nil bond graph.
var ErrNilGraph = errors.New("cluster: bond graph is nil")

// rankEps is the pivot tolerance for the integer-lattice rank computation.
const rankEps = 1e-9

// Component is one connected subgraph of the bond graph.
type Component struct {
	// Atoms holds the member atom indices in ascending order.
	Atoms []int

	// Seed is the lowest atom index of the component (its traversal seed).
	Seed int

	// RepeatVecs are the distinct sign-canonical integer lattice translations
	// under which the component reconnects to its own image.
	RepeatVecs [][3]int

	// PeriodicAxes flags, per lattice axis, whether some repeat vector has a
	// nonzero component along it.
	PeriodicAxes [3]bool
}

// Periodic reports whether the component extends periodically at all.
func (c *Component) Periodic() bool { return len(c.RepeatVecs) > 0 }

// Size returns the number of member atoms.
func (c *Component) Size() int { return len(c.Atoms) }

// GeometricRank returns the rank of the integer lattice spanned by the
// repeat vectors (0–3).
func (c *Component) GeometricRank() int {
	if len(c.RepeatVecs) == 0 {
		return 0
	}
	rows := make([][3]float64, len(c.RepeatVecs))
	for i, v := range c.RepeatVecs {
		rows[i] = [3]float64{float64(v[0]), float64(v[1]), float64(v[2])}
	}

	return floatRank(rows)
}

// Partition is the result of Find: all components in seed order plus the
// per-atom unwrap shifts assigned during traversal.
type Partition struct {
	Components []*Component

	compOf []int
	shifts [][3]int
}

// ComponentOf returns the index (into Components) of the component holding
// atom i.
func (p *Partition) ComponentOf(i int) int { return p.compOf[i] }

// UnwrapShift returns the integer lattice shift assigned to atom i during
// traversal, relative to its component's seed.
func (p *Partition) UnwrapShift(i int) [3]int { return p.shifts[i] }

// Primary returns the largest periodic component, or nil when no component
// is periodic. Ties go to the component with the lowest seed index.
func (p *Partition) Primary() *Component {
	var best *Component
	for _, c := range p.Components {
		if !c.Periodic() {
			continue
		}
		if best == nil || c.Size() > best.Size() {
			best = c
		}
	}

	return best
}

// Find partitions the bond graph into connected components, assigning unwrap
// shifts and collecting lattice repeat vectors along the way.
func Find(g *bondgraph.Graph) (*Partition, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	n := g.Order()
	p := &Partition{
		compOf: make([]int, n),
		shifts: make([][3]int, n),
	}
	for i := range p.compOf {
		p.compOf[i] = -1
	}

	for seed := 0; seed < n; seed++ {
		if p.compOf[seed] != -1 {
			continue
		}
		p.Components = append(p.Components, p.traverse(g, seed, len(p.Components)))
	}

	return p, nil
}

// traverse runs the worklist BFS from seed, collecting members and repeat
// vectors for one component.
func (p *Partition) traverse(g *bondgraph.Graph, seed, id int) *Component {
	comp := &Component{Seed: seed}
	repeats := make(map[[3]int]struct{})

	queue := []int{seed}
	p.compOf[seed] = id
	p.shifts[seed] = [3]int{}

	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		comp.Atoms = append(comp.Atoms, u)
		for _, nb := range g.Neighbors(u) {
			if nb.To == u {
				// Self-periodic edge: the repeat vector is the shift itself.
				recordRepeat(repeats, nb.Shift)

				continue
			}
			expected := addShift(p.shifts[u], nb.Shift)
			if p.compOf[nb.To] == -1 {
				p.compOf[nb.To] = id
				p.shifts[nb.To] = expected
				queue = append(queue, nb.To)

				continue
			}
			// Already placed: a disagreement means the component wraps onto
			// its own image under the difference translation.
			if d := subShift(expected, p.shifts[nb.To]); d != [3]int{} {
				recordRepeat(repeats, d)
			}
		}
	}

	sort.Ints(comp.Atoms)
	comp.RepeatVecs = sortedRepeats(repeats)
	for _, v := range comp.RepeatVecs {
		for ax := 0; ax < 3; ax++ {
			if v[ax] != 0 {
				comp.PeriodicAxes[ax] = true
			}
		}
	}

	return comp
}

// recordRepeat stores the sign-canonical form of a nonzero repeat vector.
func recordRepeat(set map[[3]int]struct{}, v [3]int) {
	if v == ([3]int{}) {
		return
	}
	set[canonicalSign(v)] = struct{}{}
}

// canonicalSign flips v so its first nonzero component is positive.
func canonicalSign(v [3]int) [3]int {
	for ax := 0; ax < 3; ax++ {
		if v[ax] > 0 {
			return v
		}
		if v[ax] < 0 {
			return [3]int{-v[0], -v[1], -v[2]}
		}
	}

	return v
}

// sortedRepeats returns the repeat set in ascending lexicographic order.
func sortedRepeats(set map[[3]int]struct{}) [][3]int {
	out := make([][3]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		for ax := 0; ax < 3; ax++ {
			if out[i][ax] != out[j][ax] {
				return out[i][ax] < out[j][ax]
			}
		}

		return false
	})

	return out
}

// addShift returns a + b componentwise.
func addShift(a, b [3]int) [3]int {
	return [3]int{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// subShift returns a - b componentwise.
func subShift(a, b [3]int) [3]int {
	return [3]int{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// floatRank computes the rank of a set of 3-vectors by Gaussian elimination
// with partial pivoting.
func floatRank(rows [][3]float64) int {
	rank := 0
	for col := 0; col < 3 && rank < len(rows); col++ {
		// Pick the largest pivot in this column at or below `rank`.
		pivot, pivotAbs := -1, rankEps
		for r := rank; r < len(rows); r++ {
			if a := math.Abs(rows[r][col]); a > pivotAbs {
				pivot, pivotAbs = r, a
			}
		}
		if pivot < 0 {
			continue
		}
		rows[rank], rows[pivot] = rows[pivot], rows[rank]
		for r := rank + 1; r < len(rows); r++ {
			f := rows[r][col] / rows[rank][col]
			for c := col; c < 3; c++ {
				rows[r][c] -= f * rows[rank][c]
			}
		}
		rank++
	}

	return rank
}
