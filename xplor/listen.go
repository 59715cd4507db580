package xplor

import (
	"fmt"
	"strings"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/listener"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/report"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/syntax"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/validate"
)

// maxResidRange bounds the number of residues a "resid a:b" term expands to.
const maxResidRange = 1000

// Listener turns the statements of a parsed file into records of a
// listener.Context.
type Listener struct {
	ctx *listener.Context
	ids map[string]int
}

// NewListener returns a listener that emits into ctx.
func NewListener(ctx *listener.Context) *Listener {
	return &Listener{ctx: ctx, ids: make(map[string]int)}
}

var kinds = map[string]string{
	RuleDistance: "distance",
	RuleDihedral: "dihedral",
	RuleRDC:      "rdc",
	RulePCS:      "pcs",
}

func (l *Listener) EnterRule(n *syntax.Node) {
	if kind, ok := kinds[n.Rule]; ok {
		l.ids[n.Rule]++
		l.ctx.Reset(fmt.Sprintf("%s restraint %d", kind, l.ids[n.Rule]))
	}
}

func (l *Listener) ExitRule(n *syntax.Node) {
	switch n.Rule {
	case RuleDistance:
		l.distance(n)
	case RuleDihedral:
		l.dihedral(n)
	case RuleRDC:
		l.rdc(n)
	case RulePCS:
		l.pcs(n)
	}
}

func (l *Listener) values(n *syntax.Node) []float64 {
	vals := n.Child(RuleValues)
	fs := make([]float64, 0, len(vals.Tokens))
	for _, t := range vals.Tokens {
		f, ok := syntax.Float(t.Val)
		if !ok {
			l.ctx.Warnf(report.InvalidData, "'%s' is not a number.", t.Val)
			return nil
		}
		fs = append(fs, f)
	}
	return fs
}

func (l *Listener) distance(n *syntax.Node) {
	vals := l.values(n)
	if vals == nil {
		return
	}
	b := validate.NewBounds()
	b.Target = vals[0]
	if len(vals) >= 3 {
		b.Lower, b.Upper = vals[0]-vals[1], vals[0]+vals[2]
	}
	f, ok := l.ctx.ValidateDistance(b)
	if !ok {
		return
	}

	for _, sel := range n.ChildrenOf(RuleSel) {
		l.selection(sel)
	}
	for _, or := range n.ChildrenOf(RuleOr) {
		for _, sel := range or.ChildrenOf(RuleSel) {
			l.selection(sel)
		}
	}
	l.ctx.EmitDistanceRow(l.ids[n.Rule], f)
}

func (l *Listener) dihedral(n *syntax.Node) {
	vals := l.values(n)
	if vals == nil {
		return
	}
	// energy constant, target, range[, exponent]
	b := validate.NewBounds()
	b.Target = vals[1]
	b.Lower, b.Upper = vals[1]-vals[2], vals[1]+vals[2]
	f, ok := l.ctx.ValidateAngle(b)
	if !ok {
		return
	}
	for _, sel := range n.ChildrenOf(RuleSel) {
		l.selection(sel)
	}
	l.ctx.EmitDihedralRow(l.ids[n.Rule], "", f)
}

// oriented reads a restraint on a value measured against an alignment or
// susceptibility tensor: the value, its error and an optional upper error.
func oriented(vals []float64) validate.Bounds {
	b := validate.NewBounds()
	b.Target = vals[0]
	minus, plus := vals[1], vals[1]
	if len(vals) >= 3 {
		plus = vals[2]
	}
	b.Lower, b.Upper = vals[0]-minus, vals[0]+plus
	return b
}

func (l *Listener) rdc(n *syntax.Node) {
	vals := l.values(n)
	if vals == nil {
		return
	}
	f, ok := l.ctx.ValidateRdc(oriented(vals))
	if !ok {
		return
	}
	// The first four selections are the tensor axes.
	for _, sel := range n.ChildrenOf(RuleSel)[4:] {
		l.selection(sel)
	}
	l.ctx.EmitRdcRow(l.ids[n.Rule], f)
}

func (l *Listener) pcs(n *syntax.Node) {
	vals := l.values(n)
	if vals == nil {
		return
	}
	f, ok := l.ctx.ValidatePcs(oriented(vals))
	if !ok {
		return
	}
	for _, sel := range n.ChildrenOf(RuleSel)[4:] {
		l.selection(sel)
	}
	l.ctx.EmitPcsRow(l.ids[n.Rule], f)
}

// selection resolves a selection expression and pushes the atoms it names
// as one selection of the current row.
func (l *Listener) selection(n *syntax.Node) {
	depth := len(l.ctx.Selections())
	cls, ok := l.clauses(n.Children[0])
	if !ok {
		l.ctx.PushSelection(nil)
		return
	}
	for _, c := range cls {
		l.resolve(c)
	}
	l.ctx.MergeSelections(depth)
}

// resolve selects the atoms of one clause. Each selected residue is pushed
// as its own selection.
func (l *Listener) resolve(c clause) {
	if len(c.name) == 0 {
		l.ctx.Warnf(report.AtomNotFound, "The selection %s names no atom.", c)
		return
	}
	if !c.hasResid {
		l.ctx.Warnf(report.AtomNotFound, "The selection %s names no residue.", c)
		return
	}
	lo, hi := c.resid[0], c.resid[1]
	if hi-lo >= maxResidRange {
		l.ctx.Warnf(report.InvalidData, "The residue range %d:%d is too wide.", lo, hi)
		return
	}
	for seq := lo; seq <= hi; seq++ {
		n := len(l.ctx.Selections())
		a := listener.Assignment{
			ChainID: c.segid,
			SeqID:   seq,
			CompID:  c.resname,
			AtomID:  c.name,
		}
		if !l.ctx.Select(a, true) || len(c.exclude) == 0 {
			continue
		}
		sel := l.ctx.Selections()[n]
		kept := sel[:0]
		for _, at := range sel {
			if !c.exclude[at.AtomID] {
				kept = append(kept, at)
			}
		}
		l.ctx.Selections()[n] = kept
	}
}

// clause is a conjunction of selection terms.
type clause struct {
	segid    string
	resname  string
	name     string
	hasResid bool
	resid    [2]int
	exclude  map[string]bool
}

func (c clause) String() string {
	var terms []string
	if len(c.segid) > 0 {
		terms = append(terms, "segid "+c.segid)
	}
	if c.hasResid {
		if c.resid[0] == c.resid[1] {
			terms = append(terms, fmt.Sprintf("resid %d", c.resid[0]))
		} else {
			terms = append(terms, fmt.Sprintf("resid %d:%d", c.resid[0], c.resid[1]))
		}
	}
	if len(c.resname) > 0 {
		terms = append(terms, "resname "+c.resname)
	}
	if len(c.name) > 0 {
		terms = append(terms, "name "+c.name)
	}
	return "(" + strings.Join(terms, " and ") + ")"
}

// merge returns the conjunction of two clauses. It fails when they cannot
// both hold.
func merge(a, b clause) (clause, bool) {
	str := func(x, y string) (string, bool) {
		switch {
		case len(x) == 0:
			return y, true
		case len(y) == 0 || strings.EqualFold(x, y):
			return x, true
		}
		return "", false
	}
	var ok bool
	c := a
	if c.segid, ok = str(a.segid, b.segid); !ok {
		return c, false
	}
	if c.resname, ok = str(a.resname, b.resname); !ok {
		return c, false
	}
	if c.name, ok = str(a.name, b.name); !ok {
		return c, false
	}
	if b.hasResid {
		if !a.hasResid {
			c.hasResid, c.resid = true, b.resid
		} else {
			c.resid[0] = max(a.resid[0], b.resid[0])
			c.resid[1] = min(a.resid[1], b.resid[1])
			if c.resid[0] > c.resid[1] {
				return c, false
			}
		}
	}
	if len(b.exclude) > 0 {
		c.exclude = make(map[string]bool)
		for k := range a.exclude {
			c.exclude[k] = true
		}
		for k := range b.exclude {
			c.exclude[k] = true
		}
	}
	return c, true
}

// clauses rewrites a selection expression as a disjunction of clauses.
func (l *Listener) clauses(n *syntax.Node) ([]clause, bool) {
	switch n.Rule {
	case RuleOr:
		a, ok := l.clauses(n.Children[0])
		if !ok {
			return nil, false
		}
		b, ok := l.clauses(n.Children[1])
		if !ok {
			return nil, false
		}
		return append(a, b...), true
	case RuleAnd:
		a, ok := l.clauses(n.Children[0])
		if !ok {
			return nil, false
		}
		b, ok := l.clauses(n.Children[1])
		if !ok {
			return nil, false
		}
		var cls []clause
		for _, x := range a {
			for _, y := range b {
				if c, ok := merge(x, y); ok {
					cls = append(cls, c)
				}
			}
		}
		return cls, true
	case RuleNot:
		if name := n.Children[0]; name.Rule == RuleName {
			ex := map[string]bool{strings.ToUpper(name.Tokens[1].Val): true}
			return []clause{{exclude: ex}}, true
		}
		l.ctx.Warnf(report.InvalidData,
			"Negation is only supported on atom names (line %d).", n.Line())
		return nil, false
	case RuleAll:
		return []clause{{}}, true
	case RuleSegid:
		return []clause{{segid: strings.TrimSpace(n.Tokens[1].Val)}}, true
	case RuleResname:
		return []clause{{resname: n.Tokens[1].Val}}, true
	case RuleName:
		return []clause{{name: n.Tokens[1].Val}}, true
	case RuleResid:
		c, ok := l.resid(n.Tokens[1:])
		return []clause{c}, ok
	case RuleAtom:
		c, ok := l.resid(n.Tokens[2:3])
		c.segid = strings.TrimSpace(n.Tokens[1].Val)
		c.name = n.Tokens[3].Val
		return []clause{c}, ok
	}
	panic(fmt.Sprintf("unknown selection rule %q", n.Rule))
}

func (l *Listener) resid(toks []syntax.Token) (clause, bool) {
	c := clause{hasResid: true}
	for i, t := range toks {
		seq, ok := syntax.Int(t.Val)
		if !ok {
			l.ctx.Warnf(report.InvalidData, "'%s' is not a residue number.", t.Val)
			return c, false
		}
		c.resid[i] = seq
	}
	if len(toks) == 1 {
		c.resid[1] = c.resid[0]
	}
	if c.resid[0] > c.resid[1] {
		c.resid[0], c.resid[1] = c.resid[1], c.resid[0]
	}
	return c, true
}
