package biosym

import (
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/syntax"
)

// Config is the lexical description of BIOSYM restraints.
var Config = &syntax.LexConfig{
	LineComments: []string{"!", "#"},
	Punct:        ":",
}

// Detect reports whether the leading tokens of an input look like a
// BIOSYM atom: an optional chain, a colon, a residue such as LEU_12, a
// colon and an atom name.
func Detect(toks []syntax.Token) bool {
	for i := 0; i+3 < len(toks) && i < 2; i++ {
		if toks[i].Val == ":" && toks[i+2].Val == ":" {
			_, _, ok := residue(toks[i+1].Val)
			return ok && toks[i+3].IsWord()
		}
	}
	return false
}
