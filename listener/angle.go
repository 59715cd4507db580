package listener

import (
	"strings"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/emit"
)

type anglePattern struct {
	name  string
	atoms [4][]string
	seqs  [4]int // relative to the first atom
	owner int    // atom whose residue the angle belongs to
}

var anglePatterns = []anglePattern{
	{"PHI", [4][]string{{"C"}, {"N"}, {"CA"}, {"C"}}, [4]int{0, 1, 1, 1}, 1},
	{"PSI", [4][]string{{"N"}, {"CA"}, {"C"}, {"N"}}, [4]int{0, 0, 0, 1}, 0},
	{"OMEGA", [4][]string{{"CA"}, {"C"}, {"N"}, {"CA"}}, [4]int{0, 0, 1, 1}, 0},
	{"CHI1", [4][]string{{"N"}, {"CA"}, {"CB"}, {"CG", "CG1", "OG", "OG1", "SG"}}, [4]int{}, 0},
	{"CHI2", [4][]string{{"CA"}, {"CB"}, {"CG", "CG1"}, {"CD", "CD1", "OD1", "ND1", "SD"}}, [4]int{}, 0},
	{"CHI3", [4][]string{{"CB"}, {"CG"}, {"CD", "SD"}, {"NE", "OE1", "CE"}}, [4]int{}, 0},
	{"CHI4", [4][]string{{"CG"}, {"CD"}, {"NE", "CE"}, {"CZ", "NZ"}}, [4]int{}, 0},
}

// AngleName names the dihedral angle over four backbone or side chain
// atoms, or returns "" when they form no standard angle.
func AngleName(a, b, c, d emit.Atom) string {
	atoms := [4]emit.Atom{a, b, c, d}
	for _, p := range anglePatterns {
		if matchAngle(p, atoms) {
			return p.name
		}
	}
	return ""
}

func matchAngle(p anglePattern, atoms [4]emit.Atom) bool {
	for i, at := range atoms {
		if at.ChainID != atoms[0].ChainID || at.SeqID-atoms[0].SeqID != p.seqs[i] {
			return false
		}
		found := false
		for _, name := range p.atoms[i] {
			if at.AtomID == name {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// AngleAtoms returns the atoms spanning the named dihedral angle of a
// residue of type compID. Offsets are residue numbers relative to that
// residue. Side chain angles pick the atoms the residue has.
func (c *Context) AngleAtoms(name, compID string) (atoms [4]string, offsets [4]int, ok bool) {
	comp, known := c.Dict.Component(compID)
	for _, p := range anglePatterns {
		if !strings.EqualFold(p.name, name) {
			continue
		}
		for i, alts := range p.atoms {
			offsets[i] = p.seqs[i] - p.seqs[p.owner]
			atoms[i] = alts[0]
			if len(alts) == 1 || p.seqs[i] != p.seqs[p.owner] {
				continue
			}
			if !known {
				return atoms, offsets, false
			}
			found := false
			for _, alt := range alts {
				if comp.Has(alt) {
					atoms[i], found = alt, true
					break
				}
			}
			if !found {
				return atoms, offsets, false
			}
		}
		return atoms, offsets, true
	}
	return atoms, offsets, false
}
