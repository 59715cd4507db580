package rosetta

import (
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/syntax"
)

// Config is the lexical description of Rosetta constraint files.
var Config = &syntax.LexConfig{
	LineComments: []string{"#"},
	Reserved: map[string]bool{
		"atompair":            true,
		"dihedral":            true,
		"ambiguousconstraint": true,
		"end":                 true,
	},
}

// Detect reports whether the leading tokens of an input look like Rosetta
// constraints.
func Detect(toks []syntax.Token) bool {
	for _, t := range toks {
		if t.Is("atompair") || t.Is("ambiguousconstraint") {
			return true
		}
	}
	return false
}
