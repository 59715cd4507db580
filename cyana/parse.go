package cyana

import (
	"strings"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/syntax"
)

// Rules of the tree built by Parse.
const (
	RuleFile   = "file"
	RulePair   = "pair"   // two atoms: a distance or a coupling
	RuleSingle = "single" // one atom: a pseudocontact shift
	RuleAngle  = "angle"  // residue and angle name
	RuleOr     = "or"
	RuleAtom   = "atom"
	RuleValues = "values"
)

// isAngle reports whether name is a dihedral angle name.
func isAngle(name string) bool {
	name = strings.ToUpper(name)
	switch name {
	case "PHI", "PSI", "OMEGA":
		return true
	}
	return strings.HasPrefix(name, "CHI") && len(name) > 3
}

type parseError struct{}

type parser struct {
	s    *syntax.Scanner
	toks []syntax.Token
	pos  int
}

// Parse reads CYANA restraints and returns the syntax tree. Lines with
// syntax errors are skipped; the errors are added to errs.
func Parse(input string, errs *syntax.ErrorList) *syntax.Node {
	p := &parser{s: syntax.NewScanner(input, Config, errs)}
	root := syntax.NewNode(RuleFile)
	var last *syntax.Node
	for toks := p.s.Line(); len(toks) > 0; toks = p.s.Line() {
		n := p.line(toks)
		switch {
		case n == nil:
		case n.Rule == RuleOr:
			if last == nil || last.Rule != RulePair {
				p.s.Errorf(toks[0], "An OR line must follow a restraint between two atoms.")
				continue
			}
			last.Add(n)
		default:
			root.Add(n)
			last = n
		}
	}
	return root
}

func (p *parser) errorf(t syntax.Token, format string, v ...interface{}) {
	p.s.Errorf(t, format, v...)
	panic(parseError{})
}

func (p *parser) peek(i int) syntax.Token {
	if p.pos+i >= len(p.toks) {
		last := p.toks[len(p.toks)-1]
		return syntax.Token{Type: syntax.TokNewline, Line: last.Line,
			Col: last.Col + len(last.Val)}
	}
	return p.toks[p.pos+i]
}

func (p *parser) next() syntax.Token {
	t := p.peek(0)
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

	if t := p.peek(0); t.Is("or") {
		p.next()
		n = syntax.NewNode(RuleOr, t).Add(p.atom(), p.atom())
		p.end()
		return n
	}
	if p.peek(3).IsNumber() && p.peek(4).IsNumber() && isAngle(p.peek(2).Val) {
		seq := p.integer()
		n = syntax.NewNode(RuleAngle, seq, p.name("a residue name"), p.next())
		return n.Add(p.values(2))
	}

	first := p.atom()
	if p.peek(0).Type == syntax.TokInt && isName(p.peek(1)) {
		return syntax.NewNode(RulePair).Add(first, p.atom(), p.values(1))
	}
	return syntax.NewNode(RuleSingle).Add(first, p.values(1))
}

func (p *parser) integer() syntax.Token {
	t := p.next()
	if t.Type != syntax.TokInt {
		p.errorf(t, "Expected a residue number but found '%s'.", t.Val)
	}
	return t
}

func (p *parser) name(what string) syntax.Token {
	t := p.next()
	if !isName(t) {
		p.errorf(t, "Expected %s but found '%s'.", what, t.Val)
	}
	return t
}

// atom reads a residue number, a residue name, an atom name and an optional
// chain identifier.
func (p *parser) atom() *syntax.Node {
	n := syntax.NewNode(RuleAtom, p.integer(), p.name("a residue name"), p.name("an atom name"))
	if t := p.peek(0); t.Type == syntax.TokName && p.peek(1).Type != syntax.TokName {
		n.Tokens = append(n.Tokens, p.next())
	}
	return n
}

func (p *parser) values(min int) *syntax.Node {
	n := syntax.NewNode(RuleValues)
	for p.pos < len(p.toks) {
		t := p.next()
		if !t.IsNumber() {
			p.errorf(t, "Expected a number but found '%s'.", t.Val)
		}
		n.Tokens = append(n.Tokens, t)
	}
	if len(n.Tokens) < min {
		p.errorf(p.peek(0), "Expected at least %d numbers but found %d.", min, len(n.Tokens))
	}
	return n
}

func (p *parser) end() {
	if p.pos < len(p.toks) {
		t := p.next()
		p.errorf(t, "Unexpected '%s'.", t.Val)
	}
}
