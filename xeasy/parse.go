package xeasy

import (
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/syntax"
)

// Rules of the tree built by Parse. A shift node holds the tokens of one
// line.
const (
	RuleFile  = "file"
	RuleShift = "shift"
)

// Parse reads an atom list and returns the syntax tree. Lines with syntax
// errors are skipped; the errors are added to errs.
func Parse(input string, errs *syntax.ErrorList) *syntax.Node {
	s := syntax.NewScanner(input, Config, errs)
	root := syntax.NewNode(RuleFile)
lines:
	for toks := s.Line(); len(toks) > 0; toks = s.Line() {
		if len(toks) < 5 {
			s.Errorf(toks[len(toks)-1], "Expected an atom number, a shift, an error, an atom and a residue.")
			continue
		}
		for i, want := range []bool{true, true, true, false, true} {
			t := toks[i]
			switch {
			case want && !t.IsNumber():
				s.Errorf(t, "Expected a number but found '%s'.", t.Val)
				continue lines
			case !want && !t.IsWord():
				s.Errorf(t, "Expected an atom name but found '%s'.", t.Val)
				continue lines
			}
		}
		if _, ok := syntax.Int(toks[4].Val); !ok {
			s.Errorf(toks[4], "Expected a residue number but found '%s'.", toks[4].Val)
			continue
		}
		root.Add(syntax.NewNode(RuleShift, toks...))
	}
	return root
}
