package spectral

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Under-sampling types.
const (
	NotObserved = "not observed"
	Aliased     = "aliased"
	Folded      = "folded"
)

// Dim is one spectral dimension of a peak list.
type Dim struct {
	// Dimension number, starting at 1.
	ID int

	AxisCode      string
	AtomType      string
	Isotope       int
	Acquisition   bool
	UnderSampling string

	// Spectral width in ppm, when the file gives one (0 otherwise).
	Width float64

	// Every position observed in this dimension, in input order.
	Shifts []float64

	// Elements of the atoms assigned in this dimension, counted.
	elements map[string]int
}

// NewDims returns n empty dimensions numbered from 1.
func NewDims(n int) []*Dim {
	dims := make([]*Dim, n)
	for i := range dims {
		dims[i] = &Dim{ID: i + 1}
	}
	return dims
}

// Observe records one position.
func (d *Dim) Observe(ppm float64) {
	d.Shifts = append(d.Shifts, ppm)
}

// ObserveAtom records the element of an atom assigned in this dimension.
func (d *Dim) ObserveAtom(element string) {
	if len(element) == 0 {
		return
	}
	if d.elements == nil {
		d.elements = make(map[string]int)
	}
	d.elements[strings.ToUpper(element)]++
}

// Center returns the mean of the observed positions.
func (d *Dim) Center() (float64, bool) {
	if len(d.Shifts) == 0 {
		return 0, false
	}
	return stat.Mean(d.Shifts, nil), true
}

// Span returns the distance between the smallest and largest observed
// positions.
func (d *Dim) Span() float64 {
	if len(d.Shifts) == 0 {
		return 0
	}
	return floats.Max(d.Shifts) - floats.Min(d.Shifts)
}

type shiftClass struct {
	lo, hi   float64
	atomType string
	isotope  int
	axisCode string
}

// First match wins, so the narrow aromatic carbon range precedes the rest.
var shiftClasses = []shiftClass{
	{125, 130, "C", 13, "C_aro"},
	{170, 180, "C", 13, "CO"},
	{60, 90, "C", 13, "C"},
	{30, 50, "C", 13, "C_ali"},
	{115, 125, "N", 15, "N_ami"},
	{6, 9, "H", 1, "H_ami_or_aro"},
	{4, 6, "H", 1, "H"},
	{2, 4, "H", 1, "H_ali"},
}

var isotopes = map[string]int{"H": 1, "C": 13, "N": 15, "P": 31, "F": 19}

// Classify returns the atom type, isotope and axis code of a dimension
// centred at ppm.
func Classify(ppm float64) (atomType string, isotope int, axisCode string, ok bool) {
	for _, c := range shiftClasses {
		if ppm >= c.lo && ppm <= c.hi {
			return c.atomType, c.isotope, c.axisCode, true
		}
	}
	return "", 0, "", false
}

// ParseIsotope returns the atom type and isotope of a nucleus given as
// "15N", "1H" or a bare element symbol.
func ParseIsotope(s string) (atomType string, isotope int, ok bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	i := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if i < 0 {
		return "", 0, false
	}
	atomType = s[i:]
	if len(atomType) > 1 {
		atomType = atomType[:1]
	}
	iso, known := isotopes[atomType]
	if !known {
		return "", 0, false
	}
	return atomType, iso, true
}

// Infer fills in missing metadata of dims. Metadata already set (from a
// file header) is kept. Otherwise the majority element of assigned atoms
// decides the atom type, and failing that the center of the observed
// positions. solidState makes 13C dimensions eligible for acquisition.
func Infer(dims []*Dim, solidState bool) {
	for _, d := range dims {
		inferType(d)
		if len(d.UnderSampling) == 0 {
			d.UnderSampling = NotObserved
			if d.AtomType == "C" && len(d.Shifts) > 0 {
				if c, _ := d.Center(); d.Span() > 50 && c < 100 {
					d.UnderSampling = Folded
				}
			}
		}
	}
	inferAcquisition(dims, solidState)
}

func inferType(d *Dim) {
	if len(d.AtomType) > 0 && d.Isotope > 0 && len(d.AxisCode) > 0 {
		return
	}
	center, hasCenter := d.Center()
	if len(d.AtomType) == 0 {
		if el := majority(d.elements); len(el) > 0 {
			d.AtomType = el
		}
	}
	if len(d.AtomType) == 0 && hasCenter {
		if typ, _, _, ok := Classify(center); ok {
			d.AtomType = typ
		}
	}
	if len(d.AtomType) == 0 {
		return
	}
	if d.Isotope == 0 {
		d.Isotope = isotopes[d.AtomType]
	}
	if len(d.AxisCode) == 0 {
		d.AxisCode = d.AtomType
		if hasCenter {
			if typ, _, code, ok := Classify(center); ok && typ == d.AtomType {
				d.AxisCode = code
			}
		}
	}
}

func majority(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	best, bestN := "", 0
	for _, k := range keys {
		if counts[k] > bestN {
			best, bestN = k, counts[k]
		}
	}
	return best
}

func inferAcquisition(dims []*Dim, solidState bool) {
	for _, d := range dims {
		if d.Acquisition {
			return
		}
	}
	var acq *Dim
	for _, d := range dims {
		if d.Isotope == 1 || (solidState && d.Isotope == 13) {
			if acq == nil || d.ID > acq.ID {
				acq = d
			}
		}
	}
	if acq == nil && len(dims) > 0 {
		acq = dims[0]
	}
	if acq != nil {
		acq.Acquisition = true
	}
}
