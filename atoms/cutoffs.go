package atoms

import (
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// FallbackRadius (Å) is used for species absent from a CutoffTable. It is
// deliberately on the large side so that an unknown species is bonded rather
// than silently dropped from the network.
const FallbackRadius = 2.0

// covalentRadii holds single-bond covalent radii (Å) after Cordero et al.
// (2008) for the elements that commonly appear in classified structures.
var covalentRadii = map[string]float64{
	"H": 0.31, "He": 0.28,
	"Li": 1.28, "Be": 0.96, "B": 0.84, "C": 0.76, "N": 0.71, "O": 0.66,
	"F": 0.57, "Ne": 0.58,
	"Na": 1.66, "Mg": 1.41, "Al": 1.21, "Si": 1.11, "P": 1.07, "S": 1.05,
	"Cl": 1.02, "Ar": 1.06,
	"K": 2.03, "Ca": 1.76, "Sc": 1.70, "Ti": 1.60, "V": 1.53, "Cr": 1.39,
	"Mn": 1.39, "Fe": 1.32, "Co": 1.26, "Ni": 1.24, "Cu": 1.32, "Zn": 1.22,
	"Ga": 1.22, "Ge": 1.20, "As": 1.19, "Se": 1.20, "Br": 1.20, "Kr": 1.16,
	"Rb": 2.20, "Sr": 1.95, "Y": 1.90, "Zr": 1.75, "Nb": 1.64, "Mo": 1.54,
	"Tc": 1.47, "Ru": 1.46, "Rh": 1.42, "Pd": 1.39, "Ag": 1.45, "Cd": 1.44,
	"In": 1.42, "Sn": 1.39, "Sb": 1.39, "Te": 1.38, "I": 1.39, "Xe": 1.40,
	"Cs": 2.44, "Ba": 2.15, "La": 2.07, "Hf": 1.75, "Ta": 1.70, "W": 1.62,
	"Re": 1.51, "Os": 1.44, "Ir": 1.41, "Pt": 1.36, "Au": 1.36, "Hg": 1.32,
	"Tl": 1.45, "Pb": 1.46, "Bi": 1.48, "Po": 1.40, "At": 1.50, "Rn": 1.50,
}

// CutoffTable maps species symbols to covalent radii (Å) and derives
// per-pair bonding cutoffs as the sum of the two radii. It is an explicit
// value object: build one (or take the default), pass it into the bond graph
// builder, and share it freely across concurrent calls — it is never
// mutated after construction.
type CutoffTable struct {
	radii    map[string]float64
	fallback float64
}

// DefaultCutoffs returns the built-in covalent-radius table with the
// standard fallback radius for unknown species.
func DefaultCutoffs() *CutoffTable {
	radii := make(map[string]float64, len(covalentRadii))
	for sp, r := range covalentRadii {
		radii[sp] = r
	}

	return &CutoffTable{radii: radii, fallback: FallbackRadius}
}

// NewCutoffTable builds a table from an explicit species→radius map.
// Radii must be positive and finite; the offending species is named in the
// error. Entries are copied.
func NewCutoffTable(radii map[string]float64) (*CutoffTable, error) {
	t := &CutoffTable{radii: make(map[string]float64, len(radii)), fallback: FallbackRadius}
	for sp, r := range radii {
		if sp == "" {
			return nil, ErrEmptySpecies
		}
		if !isFinite(r) || r <= 0 {
			return nil, fmt.Errorf("%w: species %q radius %v", ErrBadRadius, sp, r)
		}
		t.radii[sp] = r
	}

	return t, nil
}

// LoadCutoffs reads a YAML species→radius map and overlays it on the default
// table, so a file only needs to list the radii it overrides or adds.
//
//	C: 0.76
//	Xx: 1.85
func LoadCutoffs(r io.Reader) (*CutoffTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("atoms: read cutoff table: %w", err)
	}
	var overrides map[string]float64
	if err = yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("atoms: parse cutoff table: %w", err)
	}
	t := DefaultCutoffs()
	for sp, rad := range overrides {
		if sp == "" {
			return nil, ErrEmptySpecies
		}
		if !isFinite(rad) || rad <= 0 {
			return nil, fmt.Errorf("%w: species %q radius %v", ErrBadRadius, sp, rad)
		}
		t.radii[sp] = rad
	}

	return t, nil
}

// Radius returns the radius for a species and whether it was present in the
// table; absent species report the fallback radius with ok=false.
func (t *CutoffTable) Radius(species string) (r float64, ok bool) {
	if r, ok = t.radii[species]; ok {
		return r, true
	}

	return t.fallback, false
}

// PairCutoff returns the bonding cutoff for a species pair: the sum of the
// two radii, using the fallback radius for species missing from the table.
// A missing entry never drops the pair.
func (t *CutoffTable) PairCutoff(a, b string) float64 {
	ra, _ := t.Radius(a)
	rb, _ := t.Radius(b)

	return ra + rb
}

// MaxPairCutoff returns the largest PairCutoff over the species actually
// present in the given list. Used to size periodic image shells and the
// default adsorption threshold.
func (t *CutoffTable) MaxPairCutoff(species []string) float64 {
	maxR := 0.0
	for _, sp := range species {
		r, _ := t.Radius(sp)
		if r > maxR {
			maxR = r
		}
	}

	return 2 * maxR
}

// Species returns the sorted list of species with explicit entries.
func (t *CutoffTable) Species() []string {
	out := make([]string, 0, len(t.radii))
	for sp := range t.radii {
		out = append(out, sp)
	}
	sort.Strings(out)

	return out
}
