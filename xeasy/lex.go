package xeasy

import (
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/syntax"
)

// Config is the lexical description of XEASY atom lists.
var Config = &syntax.LexConfig{
	LineComments: []string{"#"},
}

// Detect reports whether the leading tokens of an input look like an atom
// list: an atom number, a shift, an error, an atom name and a residue
// number.
func Detect(toks []syntax.Token) bool {
	if len(toks) < 5 {
		return false
	}
	return toks[0].Type == syntax.TokInt && toks[1].Type == syntax.TokFloat &&
		toks[2].IsNumber() && toks[3].Type == syntax.TokName &&
		toks[4].Type == syntax.TokInt
}
