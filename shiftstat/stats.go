package shiftstat

import (
	"strings"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/chemcomp"
)

// Ambiguity codes of chemical shift assignments.
const (
	AmbigUnique   = 1 // unique assignment
	AmbigGeminal  = 2 // geminal atoms or geminal methyl groups
	AmbigAromatic = 3 // symmetric positions of an aromatic ring
)

// CompType classifies a residue type.
type CompType struct {
	Peptide, Nucleotide, Carbohydrate bool
}

// Stats answers classification queries.
type Stats interface {
	TypeOfCompID(compID string) CompType
	PeptideLike(compID string) bool
	MaxAmbigCodeWoSetID(compID, atomID string) int
}

// New returns Stats backed by a component dictionary.
func New(dict chemcomp.Dictionary) Stats {
	return stats{dict}
}

type stats struct {
	dict chemcomp.Dictionary
}

func (s stats) TypeOfCompID(compID string) CompType {
	c, ok := s.dict.Component(compID)
	if !ok {
		return CompType{}
	}
	typ := strings.ToUpper(c.Type)
	return CompType{
		Peptide:      c.IsPeptide(),
		Nucleotide:   c.IsNucleotide(),
		Carbohydrate: strings.Contains(typ, "SACCHARIDE"),
	}
}

// PeptideLike reports whether compID has the backbone of an amino acid even
// if it is not classified as one.
func (s stats) PeptideLike(compID string) bool {
	c, ok := s.dict.Component(compID)
	if !ok {
		return false
	}
	if c.IsPeptide() {
		return true
	}
	return c.Has("N") && c.Has("CA") && c.Has("C") && c.Bonded("N", "CA") &&
		c.Bonded("CA", "C")
}

func (s stats) MaxAmbigCodeWoSetID(compID, atomID string) int {
	c, ok := s.dict.Component(compID)
	if !ok || !c.Has(atomID) {
		return 0
	}
	if symmetricRing(c, atomID) {
		return AmbigAromatic
	}
	heavy := atomID
	if c.Element(atomID) == "H" {
		heavy, _ = c.Parent(atomID)
		if len(c.Hydrogens(heavy)) == 2 {
			return AmbigGeminal
		}
	}
	// Geminal methyl groups, e.g. LEU CD1/CD2 and their protons.
	for _, n := range c.Neighbors(heavy) {
		if n == heavy {
			continue
		}
		methyls := 0
		for _, m := range c.Neighbors(n) {
			if c.IsMethyl(m) {
				methyls++
			}
		}
		if methyls == 2 && c.IsMethyl(heavy) {
			return AmbigGeminal
		}
	}
	return AmbigUnique
}

// symmetricRing reports whether atomID sits on one of the two symmetric
// halves of a PHE or TYR ring.
func symmetricRing(c *chemcomp.Component, atomID string) bool {
	if c.ID != "PHE" && c.ID != "TYR" {
		return false
	}
	switch atomID {
	case "CD1", "CD2", "CE1", "CE2", "HD1", "HD2", "HE1", "HE2":
		return true
	}
	return false
}
