package xplor

import (
	"strings"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/syntax"
)

// Rules of the tree built by Parse.
const (
	RuleFile     = "file"
	RuleDistance = "distance_restraint"
	RuleDihedral = "dihedral_restraint"
	RuleRDC      = "rdc_restraint"
	RulePCS      = "pcs_restraint"
	RuleValues   = "values"
	RuleOr       = "or"
	RuleAnd      = "and"
	RuleNot      = "not"
	RuleSel      = "selection"
	RuleSegid    = "segid"
	RuleResid    = "resid"
	RuleResname  = "resname"
	RuleName     = "name"
	RuleAtom     = "atom"
	RuleAll      = "all"
)

// shape is what an assign statement looks like inside a block.
type shape struct {
	rule       string
	selections int
	values     int // minimum
}

var shapes = map[string]shape{
	"noe":      {RuleDistance, 2, 1},
	"dihedral": {RuleDihedral, 4, 3},
	"sani":     {RuleRDC, 6, 2},
	"xpcs":     {RulePCS, 5, 2},
}

// shapeOf guesses the kind of an assign statement outside of any block from
// its number of selections.
var shapeOf = map[int]shape{
	2: shapes["noe"],
	4: shapes["dihedral"],
	5: shapes["xpcs"],
	6: shapes["sani"],
}

// options are block settings that are read and ignored.
var options = map[string]bool{
	"nrestraints": true, "ceiling": true, "averaging": true,
	"potential": true, "scale": true, "sqconstant": true,
	"sqexponent": true, "soexponent": true, "rswitch": true,
	"sqoffset": true, "asymptote": true, "coefficients": true,
	"forceconstant": true, "tolerance": true, "save": true,
	"fmed": true, "grid": true, "tensor": true, "reset": true,
}

type parseError struct{}

type parser struct {
	s     *syntax.Scanner
	block string
}

// Parse reads XPLOR-NIH or CNS restraints and returns the syntax tree.
// Statements with syntax errors are skipped; the errors are added to errs.
func Parse(input string, errs *syntax.ErrorList) *syntax.Node {
	p := &parser{s: syntax.NewScanner(input, Config, errs)}
	root := syntax.NewNode(RuleFile)
	for p.peek().Type != syntax.TokEOF {
		if n := p.statement(); n != nil {
			root.Add(n)
		}
	}
	return root
}

func (p *parser) peek() syntax.Token {
	p.s.SkipNewlines()
	return p.s.Peek()
}

func (p *parser) next() syntax.Token {
	p.s.SkipNewlines()
	return p.s.Next()
}

func (p *parser) errorf(t syntax.Token, format string, v ...interface{}) {
	p.s.Errorf(t, format, v...)
	panic(parseError{})
}

func (p *parser) expect(punct string) syntax.Token {
	t := p.next()
	if t.Type != syntax.TokPunct || t.Val != punct {
		p.errorf(t, "Expected '%s' but found '%s'.", punct, t.Val)
	}
	return t
}

func (p *parser) word(what string) syntax.Token {
	t := p.next()
	if !t.IsWord() {
		p.errorf(t, "Expected %s but found '%s'.", what, t.Val)
	}
	return t
}

// statement reads one statement. It returns nil for statements that do not
// add to the tree.
func (p *parser) statement() (n *syntax.Node) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); !ok {
				panic(r)
			}
			p.skip()
			n = nil
		}
	}()

	t := p.peek()
	switch {
	case t.Is("assign") || t.Is("assi"):
		return p.assign()
	case t.Is("noe") || t.Is("dihedral") || t.Is("sani") || t.Is("xpcs"):
		p.next()
		p.block = strings.ToLower(t.Val)
	case t.Is("restraints"):
		p.next()
	case t.Is("end"):
		p.next()
		p.block = ""
	case t.Is("set"):
		for t := p.next(); !t.Is("end"); t = p.next() {
			if t.Type == syntax.TokEOF {
				p.errorf(t, "Unterminated 'set' statement.")
			}
		}
	case t.Is("class"):
		p.next()
		p.word("a class name")
	case t.Type == syntax.TokReserved && options[strings.ToLower(t.Val)]:
		p.next()
		for !p.boundary(p.peek()) {
			p.next()
		}
	default:
		p.next()
		p.errorf(t, "Unexpected '%s'.", t.Val)
	}
	return nil
}

// boundary reports whether t can start a statement.
func (p *parser) boundary(t syntax.Token) bool {
	if t.Type == syntax.TokEOF {
		return true
	}
	if t.Type != syntax.TokReserved {
		return false
	}
	switch strings.ToLower(t.Val) {
	case "assign", "assi", "end", "class", "set", "noe", "restraints",
		"dihedral", "sani", "xpcs":
		return true
	}
	return options[strings.ToLower(t.Val)]
}

// skip discards tokens up to the next assign or end.
func (p *parser) skip() {
	for {
		t := p.peek()
		if t.Type == syntax.TokEOF || t.Is("assign") || t.Is("assi") || t.Is("end") {
			return
		}
		p.next()
	}
}

func (p *parser) assign() *syntax.Node {
	start := p.next()
	var sels []*syntax.Node
	for p.isOpen(p.peek()) {
		sels = append(sels, p.selection())
	}

	sh, ok := shapes[p.block]
	if !ok {
		if sh, ok = shapeOf[len(sels)]; !ok {
			p.errorf(start, "An assign statement takes 2, 4, 5 or 6 selections, not %d.",
				len(sels))
		}
	}
	if len(sels) != sh.selections {
		p.errorf(start, "Expected %d selections in '%s' but found %d.",
			sh.selections, p.block, len(sels))
	}

	n := syntax.NewNode(sh.rule, start).Add(sels...)
	values := syntax.NewNode(RuleValues)
	for p.peek().IsNumber() {
		values.Tokens = append(values.Tokens, p.next())
	}
	if len(values.Tokens) < sh.values {
		p.errorf(p.peek(), "Expected at least %d numbers but found %d.",
			sh.values, len(values.Tokens))
	}
	n.Add(values)

	for sh.rule == RuleDistance && p.peek().Is("or") {
		or := syntax.NewNode(RuleOr, p.next())
		or.Add(p.selection(), p.selection())
		n.Add(or)
	}
	return n
}

func (p *parser) isOpen(t syntax.Token) bool {
	return t.Type == syntax.TokPunct && t.Val == "("
}

func (p *parser) selection() *syntax.Node {
	open := p.expect("(")
	n := syntax.NewNode(RuleSel, open)
	n.Add(p.or())
	p.expect(")")
	return n
}

func (p *parser) or() *syntax.Node {
	left := p.and()
	for p.peek().Is("or") {
		left = syntax.NewNode(RuleOr, p.next()).Add(left, p.and())
	}
	return left
}

func (p *parser) and() *syntax.Node {
	left := p.unary()
	for p.peek().Is("and") {
		left = syntax.NewNode(RuleAnd, p.next()).Add(left, p.unary())
	}
	return left
}

func (p *parser) unary() *syntax.Node {
	t := p.next()
	switch {
	case t.Is("not"):
		return syntax.NewNode(RuleNot, t).Add(p.unary())
	case p.isOpen(t):
		n := p.or()
		p.expect(")")
		return n
	case t.Is("all"):
		return syntax.NewNode(RuleAll, t)
	case t.Is("segid"):
		return syntax.NewNode(RuleSegid, t, p.word("a segment name"))
	case t.Is("resname"):
		return syntax.NewNode(RuleResname, t, p.word("a residue name"))
	case t.Is("name"):
		return syntax.NewNode(RuleName, t, p.word("an atom name"))
	case t.Is("resid"):
		n := syntax.NewNode(RuleResid, t, p.word("a residue number"))
		if u := p.peek(); u.Type == syntax.TokPunct && u.Val == ":" {
			p.next()
			n.Tokens = append(n.Tokens, p.word("a residue number"))
		}
		return n
	case t.Is("atom"):
		return syntax.NewNode(RuleAtom, t,
			p.word("a segment name"), p.word("a residue number"), p.word("an atom name"))
	}
	p.errorf(t, "Expected a selection term but found '%s'.", t.Val)
	panic("unreachable")
}
