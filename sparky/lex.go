package sparky

import (
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/syntax"
)

// Config is the lexical description of Sparky lists.
var Config = &syntax.LexConfig{
	Reserved: map[string]bool{"assignment": true, "group": true},
}

// Detect reports whether the leading tokens of an input look like a Sparky
// peak or resonance list header.
func Detect(toks []syntax.Token) bool {
	for i, t := range toks {
		if i+1 >= len(toks) {
			break
		}
		next := toks[i+1].Val
		if t.Is("assignment") && isDim(next) {
			return true
		}
		if t.Is("group") && next == "Atom" {
			return true
		}
	}
	return false
}
