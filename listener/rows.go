package listener

import (
	"fmt"
	"math"

	"github.com/TuftsBCB/structure"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/emit"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/report"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/spectral"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/validate"
)

func (c *Context) check(res validate.Result) (validate.Func, bool) {
	c.Log.Append(res.Messages...)
	return res.Func, res.OK
}

// ValidateDistance validates the bounds of a distance restraint.
func (c *Context) ValidateDistance(b validate.Bounds) (validate.Func, bool) {
	return c.check(validate.CheckDistance(c.id, b))
}

// ValidateAngle validates the bounds of a dihedral angle restraint.
func (c *Context) ValidateAngle(b validate.Bounds) (validate.Func, bool) {
	return c.check(validate.CheckAngle(c.id, b))
}

// ValidateRdc validates the bounds of an RDC restraint.
func (c *Context) ValidateRdc(b validate.Bounds) (validate.Func, bool) {
	return c.check(validate.CheckRDC(c.id, b))
}

// ValidatePcs validates the bounds of a PCS restraint.
func (c *Context) ValidatePcs(b validate.Bounds) (validate.Func, bool) {
	return c.check(validate.CheckPCS(c.id, b))
}

// ValidateShift validates a chemical shift and its error.
func (c *Context) ValidateShift(value, err float64) (validate.Func, bool) {
	return c.check(validate.CheckShift(c.id, value, err))
}

// ValidatePeak validates the positions of a peak.
func (c *Context) ValidatePeak(positions []float64) bool {
	_, ok := c.check(validate.CheckPeak(c.id, positions))
	return ok
}

// EmitDistanceRow adds a distance restraint made of the selections of the
// current row, taken in pairs. Each pair is one alternative. Pairs with an
// unresolved side are dropped.
func (c *Context) EmitDistanceRow(id int, f validate.Func) bool {
	var combs []emit.Combination
	for i := 0; i+1 < len(c.selections); i += 2 {
		if len(c.selections[i]) > 0 && len(c.selections[i+1]) > 0 {
			combs = append(combs, emit.Combination{c.selections[i], c.selections[i+1]})
		}
	}
	if len(combs) == 0 {
		return false
	}
	r := emit.NewRecord(id)
	r.Combinations, r.Func = combs, f
	c.list(emit.Distance).Add(r)
	c.Count("distance")
	return true
}

// EmitDihedralRow adds a dihedral angle restraint over the four selections
// of the current row. An empty name is derived from the atoms.
func (c *Context) EmitDihedralRow(id int, name string, f validate.Func) bool {
	sels, ok := c.complete(4)
	if !ok {
		return false
	}
	if len(name) == 0 {
		name = AngleName(sels[0][0], sels[1][0], sels[2][0], sels[3][0])
	}
	r := emit.NewRecord(id, sels...)
	r.Func, r.Name = f, name
	c.list(emit.Dihedral).Add(r)
	c.Count("dihedral")
	return true
}

// EmitRdcRow adds an RDC restraint over the two selections of the current
// row. Every pair of atoms must form a one-bond vector of magnetic nuclei
// within one chain.
func (c *Context) EmitRdcRow(id int, f validate.Func) bool {
	sels, ok := c.complete(2)
	if !ok {
		return false
	}
	for _, a := range sels[0] {
		for _, b := range sels[1] {
			if !c.checkVector(a, b) {
				return false
			}
		}
	}
	r := emit.NewRecord(id, sels...)
	r.Func = f
	c.list(emit.RDC).Add(r)
	c.Count("rdc")
	return true
}

// EmitPcsRow adds a PCS restraint over the selection of the current row.
func (c *Context) EmitPcsRow(id int, f validate.Func) bool {
	sels, ok := c.complete(1)
	if !ok {
		return false
	}
	r := emit.NewRecord(id, sels...)
	r.Func = f
	c.list(emit.PCS).Add(r)
	c.Count("pcs")
	return true
}

// AddCsRow adds an assigned chemical shift for the selection of the current
// row.
func (c *Context) AddCsRow(id int, f validate.Func) bool {
	sels, ok := c.complete(1)
	if !ok {
		return false
	}
	r := emit.NewRecord(id, sels...)
	r.Func = f
	c.list(emit.ChemShift).Add(r)
	c.Count("shift")
	return true
}

// AddAssignedPkRow adds a peak with one position per dimension. The
// selections of the current row assign the dimensions in order; missing
// ones are unassigned. A peak list holds peaks of one dimensionality.
func (c *Context) AddAssignedPkRow(id int, positions []float64, height, volume float64) bool {
	n := len(positions)
	if n < 2 || n > 4 {
		c.Warnf(report.InvalidData, "A peak must have 2 to 4 dimensions, not %d.", n)
		return false
	}
	if !c.ValidatePeak(positions) {
		return false
	}
	l := c.list(emit.Peak)
	if l.Dims != nil && len(l.Dims) != n {
		c.NewList(emit.Peak)
		l = c.list(emit.Peak)
	}
	if l.Dims == nil {
		l.Dims = spectral.NewDims(n)
	}

	sels := make([]emit.Selection, n)
	copy(sels, c.selections)
	for i, p := range positions {
		l.Dims[i].Observe(p)
		for _, a := range sels[i] {
			l.Dims[i].ObserveAtom(a.Element)
		}
	}
	r := emit.NewRecord(id, sels...)
	r.Positions = append([]float64(nil), positions...)
	r.Height, r.Volume = height, volume
	l.Add(r)
	c.Count(fmt.Sprintf("peak%dd", n))
	return true
}

// complete returns the first n selections of the current row, if all are
// resolved.
func (c *Context) complete(n int) ([]emit.Selection, bool) {
	if len(c.selections) < n {
		return nil, false
	}
	for _, sel := range c.selections[:n] {
		if len(sel) == 0 {
			return nil, false
		}
	}
	return append([]emit.Selection(nil), c.selections[:n]...), true
}

var magnetic = map[string]bool{"H": true, "C": true, "N": true, "P": true, "F": true, "D": true}

// maxBondLength bounds a covalent bond between the atoms of residues the
// dictionary does not describe.
const maxBondLength = 1.9

func (c *Context) checkVector(a, b emit.Atom) bool {
	switch {
	case a.ChainID != b.ChainID:
		c.Warnf(report.InvalidVector,
			"Found inter-chain vector %s and %s.", atomString(a), atomString(b))
		return false
	case a.SeqID == b.SeqID && a.AtomID == b.AtomID:
		c.Warnf(report.InvalidVector,
			"Found zero-length vector %s.", atomString(a))
		return false
	}
	for _, at := range []emit.Atom{a, b} {
		if !magnetic[at.Element] {
			c.Warnf(report.InvalidVector,
				"Non-magnetic nucleus %s.", atomString(at))
			return false
		}
	}
	if a.Element == "H" && b.Element == "H" {
		return true
	}
	if c.bonded(a, b) {
		return true
	}
	if d, ok := c.distance(a, b); ok {
		if d <= maxBondLength && !c.inDictionary(a, b) {
			return true
		}
		c.Warnf(report.InvalidVector,
			"Found an over-covalent-bond vector %s and %s (%.3f Å).",
			atomString(a), atomString(b), d)
		return false
	}
	c.Warnf(report.InvalidVector,
		"Found an over-covalent-bond vector %s and %s.", atomString(a), atomString(b))
	return false
}

func atomString(a emit.Atom) string {
	return fmt.Sprintf("%s:%d:%s:%s", a.ChainID, a.SeqID, a.CompID, a.AtomID)
}

// bonded reports whether the topology joins a and b: a bond of the
// residue's dictionary entry, or a peptide or phosphodiester bond between
// consecutive residues.
func (c *Context) bonded(a, b emit.Atom) bool {
	if a.SeqID == b.SeqID {
		comp, ok := c.Dict.Component(a.CompID)
		return ok && comp.Bonded(a.AtomID, b.AtomID)
	}
	if b.SeqID < a.SeqID {
		a, b = b, a
	}
	if b.SeqID-a.SeqID != 1 {
		return false
	}
	return (a.AtomID == "C" && b.AtomID == "N") || (a.AtomID == "O3'" && b.AtomID == "P")
}

func (c *Context) inDictionary(a, b emit.Atom) bool {
	_, okA := c.Dict.Component(a.CompID)
	_, okB := c.Dict.Component(b.CompID)
	return okA && okB
}

// distance returns the distance between two atoms of the model.
func (c *Context) distance(a, b emit.Atom) (float64, bool) {
	ca, ok := c.coords(a)
	if !ok {
		return 0, false
	}
	cb, ok := c.coords(b)
	if !ok {
		return 0, false
	}
	dx, dy, dz := ca.X-cb.X, ca.Y-cb.Y, ca.Z-cb.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz), true
}

func (c *Context) coords(a emit.Atom) (structure.Coords, bool) {
	chain, seq, ok := c.Entry.LabelToAuth(a.ChainID, a.SeqID)
	if !ok {
		for _, np := range c.Entry.NonPolymers {
			if np.LabelChainID == a.ChainID && np.AuthSeqID == a.SeqID {
				chain, seq, ok = np.AuthChainID, np.AuthSeqID, true
			}
		}
	}
	if !ok {
		return structure.Coords{}, false
	}
	site, ok := c.Entry.AtomSite(chain, seq)
	if !ok {
		return structure.Coords{}, false
	}
	for _, at := range site.AtomsOf(a.CompID) {
		if at.Name == a.AtomID {
			return at.Coords, true
		}
	}
	return structure.Coords{}, false
}
