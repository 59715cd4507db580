package biosym

import (
	"strings"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/syntax"
)

// Rules of the tree built by Parse. An atom node holds the chain (possibly
// absent), the residue and the atom name tokens.
const (
	RuleFile     = "file"
	RuleDistance = "distance_restraint"
	RuleAtom     = "atom"
	RuleValues   = "values"
)

// residue splits a residue such as LEU_12 into its name and number.
func residue(s string) (compID string, seq int, ok bool) {
	i := strings.LastIndexByte(s, '_')
	if i <= 0 {
		return "", 0, false
	}
	seq, ok = syntax.Int(s[i+1:])
	return s[:i], seq, ok
}

type parseError struct{}

type parser struct {
	s    *syntax.Scanner
	toks []syntax.Token
	pos  int
}

// Parse reads BIOSYM restraints and returns the syntax tree. Lines with
// syntax errors are skipped; the errors are added to errs.
func Parse(input string, errs *syntax.ErrorList) *syntax.Node {
	p := &parser{s: syntax.NewScanner(input, Config, errs)}
	root := syntax.NewNode(RuleFile)
	for toks := p.s.Line(); len(toks) > 0; toks = p.s.Line() {
		if n := p.line(toks); n != nil {
			root.Add(n)
		}
	}
	return root
}

func (p *parser) errorf(t syntax.Token, format string, v ...interface{}) {
	p.s.Errorf(t, format, v...)
	panic(parseError{})
}

func (p *parser) peek() syntax.Token {
	if p.pos >= len(p.toks) {
		last := p.toks[len(p.toks)-1]
		return syntax.Token{Type: syntax.TokNewline, Line: last.Line,
			Col: last.Col + len(last.Val)}
	}
	return p.toks[p.pos]
}

func (p *parser) next() syntax.Token {
	t := p.peek()
	if t.Type == syntax.TokNewline {
		p.errorf(t, "Unexpected end of line.")
	}
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

	n = syntax.NewNode(RuleDistance).Add(p.atom(), p.atom())
	values := syntax.NewNode(RuleValues)
	for p.pos < len(p.toks) {
		t := p.next()
		if !t.IsNumber() {
			p.errorf(t, "Expected a number but found '%s'.", t.Val)
		}
		values.Tokens = append(values.Tokens, t)
	}
	if len(values.Tokens) < 2 {
		p.errorf(p.peek(), "Expected a lower and an upper limit.")
	}
	return n.Add(values)
}

func (p *parser) colon() {
	if t := p.next(); t.Val != ":" {
		p.errorf(t, "Expected ':' but found '%s'.", t.Val)
	}
}

func (p *parser) atom() *syntax.Node {
	n := syntax.NewNode(RuleAtom)
	if p.peek().Val != ":" {
		n.Tokens = append(n.Tokens, p.next())
	}
	p.colon()
	res := p.next()
	if _, _, ok := residue(res.Val); !ok {
		p.errorf(res, "Expected a residue such as LEU_12 but found '%s'.", res.Val)
	}
	p.colon()
	name := p.next()
	if !name.IsWord() {
		p.errorf(name, "Expected an atom name but found '%s'.", name.Val)
	}
	n.Tokens = append(n.Tokens, res, name)
	return n
}
