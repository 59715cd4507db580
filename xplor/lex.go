package xplor

import (
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/syntax"
)

var reserved = []string{
	"assign", "assi", "or", "and", "not", "all",
	"segid", "resid", "resname", "name", "atom",
	"noe", "restraints", "dihedral", "sani", "xpcs", "end",
	"class", "set", "nrestraints", "ceiling", "averaging",
	"potential", "scale", "sqconstant", "sqexponent", "soexponent",
	"rswitch", "sqoffset", "asymptote", "coefficients", "forceconstant",
	"tolerance", "save", "fmed", "grid", "tensor", "reset",
}

// Config is the lexical description of XPLOR-NIH and CNS input.
var Config = &syntax.LexConfig{
	LineComments: []string{"!"},
	BlockComment: [2]string{"{", "}"},
	Punct:        "():=",
	Quotes:       `"`,
	Reserved:     make(map[string]bool, len(reserved)),
}

func init() {
	for _, w := range reserved {
		Config.Reserved[w] = true
	}
}

// Detect reports whether the leading tokens of an input look like XPLOR.
func Detect(toks []syntax.Token) bool {
	for _, t := range toks {
		if t.Is("assign") || t.Is("assi") {
			return true
		}
	}
	return false
}
