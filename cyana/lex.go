package cyana

import (
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/syntax"
)

// Config is the lexical description of CYANA input.
var Config = &syntax.LexConfig{
	LineComments: []string{"#"},
	Reserved:     map[string]bool{"or": true},
}

// Detect reports whether the leading tokens of an input look like CYANA
// restraints: a residue number, a residue name and an atom or angle name,
// followed by either another atom or two numbers.
func Detect(toks []syntax.Token) bool {
	if len(toks) < 5 {
		return false
	}
	if toks[0].Type != syntax.TokInt || !isName(toks[1]) || !isName(toks[2]) {
		return false
	}
	if toks[3].IsNumber() && toks[4].IsNumber() {
		return isAngle(toks[2].Val)
	}
	i := 3
	if isName(toks[i]) {
		i++ // chain
	}
	return len(toks) > i+2 && toks[i].Type == syntax.TokInt &&
		isName(toks[i+1]) && isName(toks[i+2])
}

func isName(t syntax.Token) bool {
	return t.Type == syntax.TokName || t.Type == syntax.TokReserved
}
