package chemcomp

import (
	"strings"

	"github.com/TuftsBCB/seq"
)

var aminoMap = map[string]seq.Residue{
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLU": 'E', "GLN": 'Q', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',

	// Common modified residues, by their parent.
	"MSE": 'M', "SEP": 'S', "TPO": 'T', "PTR": 'Y', "HYP": 'P',
	"CSO": 'C', "MLY": 'K',
}

var deoxyMap = map[string]seq.Residue{
	"DA": 'A', "DC": 'C', "DG": 'G', "DT": 'T', "DI": 'I', "DU": 'U',
}

var riboMap = map[string]seq.Residue{
	"A": 'A', "C": 'C', "G": 'G', "U": 'U', "I": 'I',
}

// OneLetter returns the one letter code of a component identifier, or 'X'
// when there is none.
func OneLetter(compID string) seq.Residue {
	compID = strings.ToUpper(compID)
	for _, m := range []map[string]seq.Residue{aminoMap, deoxyMap, riboMap} {
		if r, ok := m[compID]; ok {
			return r
		}
	}
	return 'X'
}

// FromOneLetter returns the standard amino acid with one letter code r.
func FromOneLetter(r seq.Residue) (string, bool) {
	r = seq.Residue(strings.ToUpper(string(r))[0])
	for _, id := range standardAmino {
		if aminoMap[id] == r {
			return id, true
		}
	}
	return "", false
}

// FromOneLetterNucleotide returns the standard nucleotide with one letter
// code r, as a DNA residue when deoxy is set.
func FromOneLetterNucleotide(r seq.Residue, deoxy bool) (string, bool) {
	m := riboMap
	if deoxy {
		m = deoxyMap
	}
	for id, v := range m {
		if v == r && id != "DI" && id != "DU" && id != "I" {
			return id, true
		}
	}
	return "", false
}

// Sequence converts component identifiers into a sequence of one letter
// codes.
func Sequence(compIDs []string) []seq.Residue {
	rs := make([]seq.Residue, len(compIDs))
	for i, id := range compIDs {
		rs[i] = OneLetter(id)
	}
	return rs
}
