package classify

import (
	"math"
	"sort"

	"github.com/ankorell/strukta/atoms"
	"github.com/ankorell/strukta/bondgraph"
	"github.com/ankorell/strukta/cluster"
	"github.com/ankorell/strukta/dimension"
	"github.com/ankorell/strukta/geom"
)

// evidence is everything the decision rules may consult. It is assembled
// once per call and read-only to the guards, except for the warning sink.
type evidence struct {
	set          *atoms.AtomSet
	cell         atoms.Cell
	graph        *bondgraph.Graph
	part         *cluster.Partition
	primary      *cluster.Component
	dim          dimension.Result
	opts         *Options
	adsThreshold float64
	warn         func(string)
}

// outcome is one rule's verdict: the label plus the full atom partition.
type outcome struct {
	label          Label
	network        []int
	outliers       []int
	adsorbates     []int
	componentRanks []int
	lowConfidence  bool
}

// rule pairs a name with a guard. The guard either claims the evidence and
// returns an outcome, or passes with ok=false.
type rule struct {
	name  string
	guard func(*evidence) (*outcome, bool)
}

// decisionRules is the ordered guard list. Order is precedence: the first
// claiming rule wins, and the final rule claims unconditionally so the
// engine is total.
var decisionRules = []rule{
	{name: "finite-single", guard: ruleFiniteSingle},
	{name: "finite-dominant", guard: ruleFiniteDominant},
	{name: "unbounded-particles", guard: ruleUnboundedParticles},
	{name: "chain", guard: ruleChain},
	{name: "sheet-or-surface", guard: ruleSheetOrSurface},
	{name: "bulk", guard: ruleBulk},
	{name: "fallback-cluster", guard: ruleFallback},
}

// decide walks the rules in order and returns the first claimed outcome
// along with the claiming rule's name.
func decide(ev *evidence) (*outcome, string) {
	for _, r := range decisionRules {
		if out, ok := r.guard(ev); ok {
			return out, r.name
		}
	}
	// Unreachable: ruleFallback always claims.
	return nil, ""
}

// ruleFiniteSingle: no periodic network and exactly one component — the
// whole input is one finite cluster.
func ruleFiniteSingle(ev *evidence) (*outcome, bool) {
	if ev.primary != nil || len(ev.part.Components) != 1 {
		return nil, false
	}

	return &outcome{
		label:          Cluster0D,
		network:        append([]int(nil), ev.part.Components[0].Atoms...),
		componentRanks: make([]int, 1),
	}, true
}

// ruleFiniteDominant: no periodic network, several components, but one
// holds at least DominanceFraction of the atoms — a cluster with stray
// outliers around it.
func ruleFiniteDominant(ev *evidence) (*outcome, bool) {
	if ev.primary != nil {
		return nil, false
	}
	dominant := largestComponent(ev.part)
	if float64(dominant.Size()) < DominanceFraction*float64(ev.set.Len()) {
		return nil, false
	}

	out := &outcome{
		label:          Cluster0D,
		network:        append([]int(nil), dominant.Atoms...),
		componentRanks: make([]int, len(ev.part.Components)),
	}
	for _, c := range ev.part.Components {
		if c != dominant {
			out.outliers = append(out.outliers, c.Atoms...)
		}
	}
	sort.Ints(out.outliers)

	return out, true
}

// ruleUnboundedParticles: no periodic network and no dominant component —
// disconnected particles with no single cohesive structure.
func ruleUnboundedParticles(ev *evidence) (*outcome, bool) {
	if ev.primary != nil {
		return nil, false
	}
	out := &outcome{
		label:          UnboundedParticles,
		componentRanks: make([]int, len(ev.part.Components)),
	}
	for _, c := range ev.part.Components {
		out.outliers = append(out.outliers, c.Atoms...)
	}
	sort.Ints(out.outliers)

	return out, true
}

// ruleChain: periodic network of rank 1.
func ruleChain(ev *evidence) (*outcome, bool) {
	if ev.primary == nil || ev.dim.Rank != 1 {
		return nil, false
	}

	return &outcome{
		label:    Chain1D,
		network:  append([]int(nil), ev.primary.Atoms...),
		outliers: nonPrimaryAtoms(ev.part, ev.primary),
	}, true
}

// ruleSheetOrSurface: periodic network of rank 2. Surface2D when bulk-like
// substrate layers remain after peeling the exposed boundary layers;
// Material2D for a free-standing sheet.
func ruleSheetOrSurface(ev *evidence) (*outcome, bool) {
	if ev.primary == nil || ev.dim.Rank != 2 {
		return nil, false
	}

	label := Material2D
	if hasSubstrate(ev) {
		label = Surface2D
	}

	return &outcome{
		label:    label,
		network:  append([]int(nil), ev.primary.Atoms...),
		outliers: nonPrimaryAtoms(ev.part, ev.primary),
	}, true
}

// ruleBulk: periodic network of rank 3. Outlier components within the
// adsorption threshold of the network are adsorbates; the rest stay
// outliers.
func ruleBulk(ev *evidence) (*outcome, bool) {
	if ev.primary == nil || ev.dim.Rank != 3 {
		return nil, false
	}

	out := &outcome{
		label:   Bulk3D,
		network: append([]int(nil), ev.primary.Atoms...),
	}
	for _, c := range ev.part.Components {
		if c == ev.primary {
			continue
		}
		if minDistanceToNetwork(ev, c) <= ev.adsThreshold {
			out.adsorbates = append(out.adsorbates, c.Atoms...)
		} else {
			out.outliers = append(out.outliers, c.Atoms...)
		}
	}
	sort.Ints(out.adsorbates)
	sort.Ints(out.outliers)

	return out, true
}

// ruleFallback claims anything left (a nominally periodic network whose
// variance-corrected rank collapsed to 0) as a low-confidence cluster.
func ruleFallback(ev *evidence) (*outcome, bool) {
	out := &outcome{
		label:         Cluster0D,
		lowConfidence: true,
	}
	if ev.primary != nil {
		out.network = append([]int(nil), ev.primary.Atoms...)
		out.outliers = nonPrimaryAtoms(ev.part, ev.primary)
	} else {
		for _, c := range ev.part.Components {
			out.outliers = append(out.outliers, c.Atoms...)
		}
		sort.Ints(out.outliers)
	}

	return out, true
}

// largestComponent returns the biggest component; ties go to the earlier
// seed (components are already in seed order).
func largestComponent(p *cluster.Partition) *cluster.Component {
	best := p.Components[0]
	for _, c := range p.Components[1:] {
		if c.Size() > best.Size() {
			best = c
		}
	}

	return best
}

// nonPrimaryAtoms returns, ascending, every atom outside the primary
// component.
func nonPrimaryAtoms(p *cluster.Partition, primary *cluster.Component) []int {
	var out []int
	for _, c := range p.Components {
		if c != primary {
			out = append(out, c.Atoms...)
		}
	}
	sort.Ints(out)

	return out
}

// minDistanceToNetwork returns the smallest minimum-image distance from any
// atom of comp to any atom of the primary network.
func minDistanceToNetwork(ev *evidence, comp *cluster.Component) float64 {
	best := math.Inf(1)
	for _, a := range comp.Atoms {
		pa := ev.set.Position(a)
		for _, b := range ev.primary.Atoms {
			if _, d := geom.MinimumImage(pa, ev.set.Position(b), ev.cell); d < best {
				best = d
			}
		}
	}

	return best
}

// hasSubstrate decides the Surface2D/Material2D boundary: peel the exposed
// top and bottom boundary layers of the network along the stacking axis and
// re-estimate the rank of what remains. Bulk-like leftovers (rank ≥ 2) mean
// the sheet sits on substrate. The stacking axis is the first axis without
// periodic consistency, or the shortest basis vector when all three are
// consistent.
func hasSubstrate(ev *evidence) bool {
	axis := stackingAxis(ev)
	unit := axisUnit(ev.cell, axis)
	layerDepth := ev.graph.LargestCutoff()

	wrapped := make([][3]float64, len(ev.primary.Atoms))
	for k, idx := range ev.primary.Atoms {
		wrapped[k] = geom.WrapFractional(ev.set.Position(idx), ev.cell)
	}
	// A sheet thinner than two boundary layers peels down to nothing.
	if geom.Thickness(wrapped, ev.cell, axis) <= 2*layerDepth {
		return false
	}

	// Projections of the wrapped network positions onto the stacking axis.
	lo, hi := math.Inf(1), math.Inf(-1)
	proj := make([]float64, len(wrapped))
	for k, p := range wrapped {
		proj[k] = geom.Dot(p, unit)
		lo = math.Min(lo, proj[k])
		hi = math.Max(hi, proj[k])
	}
	var substrate []int
	for k, idx := range ev.primary.Atoms {
		if proj[k] > lo+layerDepth && proj[k] < hi-layerDepth {
			substrate = append(substrate, idx)
		}
	}
	if len(substrate) == 0 {
		return false
	}

	subSet := ev.set.Subset(substrate)
	subGraph, err := bondgraph.Build(subSet, ev.cell,
		bondgraph.WithTolerance(ev.opts.Tolerance),
		bondgraph.WithCutoffs(ev.opts.Cutoffs),
		bondgraph.WithContext(ev.opts.Ctx))
	if err != nil {
		ev.warn("substrate re-analysis aborted: " + err.Error())

		return false
	}
	subPart, err := cluster.Find(subGraph)
	if err != nil {
		ev.warn("substrate re-analysis aborted: " + err.Error())

		return false
	}
	subPrimary := subPart.Primary()
	if subPrimary == nil {
		return false
	}
	subDim, err := dimension.Estimate(ev.cell, subPrimary,
		dimension.WithVarianceThreshold(ev.opts.VarianceThreshold))
	if err != nil {
		ev.warn("substrate re-analysis aborted: " + err.Error())

		return false
	}

	return subDim.Rank >= 2
}

// stackingAxis picks the axis perpendicular to the sheet.
func stackingAxis(ev *evidence) int {
	for ax := 0; ax < 3; ax++ {
		if !ev.primary.PeriodicAxes[ax] {
			return ax
		}
	}
	// All axes nominally periodic: the thin direction is the shortest one.
	best, bestLen := 0, math.Inf(1)
	for ax := 0; ax < 3; ax++ {
		if l := geom.Norm(ev.cell.Vector(ax)); l < bestLen {
			best, bestLen = ax, l
		}
	}

	return best
}

// axisUnit returns the unit vector of the cell axis, falling back to the
// Cartesian axis for a zero basis row.
func axisUnit(cell atoms.Cell, axis int) [3]float64 {
	v := cell.Vector(axis)
	n := geom.Norm(v)
	if n == 0 {
		v = [3]float64{}
		v[axis] = 1

		return v
	}

	return [3]float64{v[0] / n, v[1] / n, v[2] / n}
}
