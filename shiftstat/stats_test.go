package shiftstat

import (
	"testing"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/chemcomp"
)

func TestMaxAmbigCode(t *testing.T) {
	s := New(chemcomp.Standard)
	tests := []struct {
		comp, atom string
		want       int
	}{
		{"ALA", "HA", AmbigUnique},
		{"ALA", "HB1", AmbigUnique},
		{"CYS", "HB2", AmbigGeminal},
		{"LEU", "CD1", AmbigGeminal},
		{"LEU", "HD21", AmbigGeminal},
		{"ILE", "HD11", AmbigUnique},
		{"PHE", "HD1", AmbigAromatic},
		{"TYR", "CZ", AmbigUnique},
		{"GLY", "HA2", AmbigGeminal},
		{"ALA", "XX", 0},
	}
	for _, test := range tests {
		if got := s.MaxAmbigCodeWoSetID(test.comp, test.atom); got != test.want {
			t.Errorf("%s %s: expected %d but got %d.",
				test.comp, test.atom, test.want, got)
		}
	}
}

func TestTypeOfCompID(t *testing.T) {
	s := New(chemcomp.Standard)
	if !s.TypeOfCompID("GLY").Peptide || !s.TypeOfCompID("DA").Nucleotide {
		t.Fatalf("Misclassified standard residues.")
	}
	if s.TypeOfCompID("HOH").Peptide || !s.PeptideLike("ALA") {
		t.Fatalf("Misclassified residues.")
	}
}
