package rosetta

import (
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/syntax"
)

// Rules of the tree built by Parse.
const (
	RuleFile      = "file"
	RuleAtomPair  = "atom_pair"
	RuleDihedral  = "dihedral"
	RuleAmbiguous = "ambiguous"
	RuleAtom      = "atom"
	RuleFunc      = "func"

	ruleEnd = "end"
)

type parseError struct{}

type parser struct {
	s    *syntax.Scanner
	toks []syntax.Token
	pos  int
}

// Parse reads Rosetta constraints and returns the syntax tree. Lines with
// syntax errors are skipped; the errors are added to errs.
func Parse(input string, errs *syntax.ErrorList) *syntax.Node {
	p := &parser{s: syntax.NewScanner(input, Config, errs)}
	root := syntax.NewNode(RuleFile)
	var amb *syntax.Node
	var last syntax.Token
	for toks := p.s.Line(); len(toks) > 0; toks = p.s.Line() {
		last = toks[len(toks)-1]
		n := p.line(toks)
		if n == nil {
			continue
		}
		switch n.Rule {
		case RuleAmbiguous:
			if amb != nil {
				p.s.Errorf(toks[0], "AmbiguousConstraint blocks cannot be nested.")
				continue
			}
			amb = n
		case ruleEnd:
			if amb == nil {
				p.s.Errorf(toks[0], "END without AmbiguousConstraint.")
				continue
			}
			root.Add(amb)
			amb = nil
		case RuleDihedral:
			if amb != nil {
				p.s.Errorf(toks[0], "A Dihedral cannot be part of an AmbiguousConstraint.")
				continue
			}
			root.Add(n)
		default:
			if amb != nil {
				amb.Add(n)
			} else {
				root.Add(n)
			}
		}
	}
	if amb != nil {
		p.s.Errorf(last, "AmbiguousConstraint on line %d is not closed by END.", amb.Line())
	}
	return root
}

func (p *parser) errorf(t syntax.Token, format string, v ...interface{}) {
	p.s.Errorf(t, format, v...)
	panic(parseError{})
}

func (p *parser) more() bool {
	return p.pos < len(p.toks)
}

func (p *parser) next() syntax.Token {
	if !p.more() {
		last := p.toks[len(p.toks)-1]
		p.errorf(syntax.Token{Type: syntax.TokNewline, Line: last.Line,
			Col: last.Col + len(last.Val)}, "Unexpected end of line.")
	}
	t := p.toks[p.pos]
	p.pos++
	return t
}

func (p *parser) line(toks []syntax.Token) (n *syntax.Node) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); !ok {
				panic(r)
			}
			n = nil
		}
	}()
	p.toks, p.pos = toks, 0

	t := p.next()
	switch {
	case t.Is("atompair"):
		n = syntax.NewNode(RuleAtomPair, t).Add(p.atom(), p.atom(), p.function())
	case t.Is("dihedral"):
		n = syntax.NewNode(RuleDihedral, t).Add(p.atom(), p.atom(), p.atom(), p.atom(), p.function())
	case t.Is("ambiguousconstraint"):
		n = syntax.NewNode(RuleAmbiguous, t)
	case t.Is("end"):
		n = syntax.NewNode(ruleEnd, t)
	default:
		p.errorf(t, "Unknown constraint type '%s'.", t.Val)
	}
	if p.more() {
		t := p.next()
		p.errorf(t, "Unexpected '%s'.", t.Val)
	}
	return n
}

// atom reads an atom name and a residue number with an optional chain
// letter.
func (p *parser) atom() *syntax.Node {
	name, res := p.next(), p.next()
	if !name.IsWord() {
		p.errorf(name, "Expected an atom name but found '%s'.", name.Val)
	}
	if _, _, ok := residue(res.Val); !ok {
		p.errorf(res, "Expected a residue number but found '%s'.", res.Val)
	}
	return syntax.NewNode(RuleAtom, name, res)
}

// function reads a function name, its numeric parameters and an optional
// tag. SCALARWEIGHTEDFUNC wraps another function.
func (p *parser) function() *syntax.Node {
	name := p.next()
	if name.Type != syntax.TokName {
		p.errorf(name, "Expected a function name but found '%s'.", name.Val)
	}
	n := syntax.NewNode(RuleFunc, name)
	if arity, ok := arities[upper(name.Val)]; ok && arity < 0 {
		n.Tokens = append(n.Tokens, p.number())
		return n.Add(p.function())
	}
	for p.more() && p.toks[p.pos].IsNumber() {
		n.Tokens = append(n.Tokens, p.next())
	}
	if p.more() && p.toks[p.pos].Type == syntax.TokName {
		n.Tokens = append(n.Tokens, p.next())
	}
	return n
}

func (p *parser) number() syntax.Token {
	t := p.next()
	if !t.IsNumber() {
		p.errorf(t, "Expected a number but found '%s'.", t.Val)
	}
	return t
}
