package rosetta

import (
	"fmt"
	"math"
	"strings"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/listener"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/report"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/syntax"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/validate"
)

var upper = strings.ToUpper

// arities gives the minimum number of parameters of each function. A
// negative arity marks a function wrapping another one.
var arities = map[string]int{
	"HARMONIC":           2,
	"BOUNDED":            3,
	"FLAT_HARMONIC":      3,
	"CIRCULARHARMONIC":   2,
	"SCALARWEIGHTEDFUNC": -1,
}

// residue splits a residue such as "12" or "12A" into its number and
// chain.
func residue(s string) (seq int, chain string, ok bool) {
	i := len(s)
	for i > 0 && (s[i-1] < '0' || s[i-1] > '9') {
		i--
	}
	seq, ok = syntax.Int(s[:i])
	return seq, s[i:], ok
}

// Listener turns the constraints of a parsed file into records of a
// listener.Context.
type Listener struct {
	ctx       *listener.Context
	ids       map[string]int
	ambiguous bool
}

// NewListener returns a listener that emits into ctx.
func NewListener(ctx *listener.Context) *Listener {
	return &Listener{ctx: ctx, ids: make(map[string]int)}
}

func (l *Listener) start(kind string) {
	l.ids[kind]++
	l.ctx.Reset(fmt.Sprintf("%s restraint %d", kind, l.ids[kind]))
}

func (l *Listener) EnterRule(n *syntax.Node) {
	switch n.Rule {
	case RuleAmbiguous:
		l.ambiguous = true
		l.start("distance")
	case RuleAtomPair:
		if !l.ambiguous {
			l.start("distance")
		}
	case RuleDihedral:
		l.start("dihedral")
	}
}

func (l *Listener) ExitRule(n *syntax.Node) {
	switch n.Rule {
	case RuleAmbiguous:
		l.ambiguous = false
		l.distance(n.ChildrenOf(RuleAtomPair))
	case RuleAtomPair:
		if !l.ambiguous {
			l.distance([]*syntax.Node{n})
		}
	case RuleDihedral:
		l.dihedral(n)
	}
}

// distance emits the atom pairs as the alternatives of one restraint. The
// function of the first pair applies.
func (l *Listener) distance(pairs []*syntax.Node) {
	if len(pairs) == 0 {
		return
	}
	b, ok := l.bounds(pairs[0].Child(RuleFunc), false)
	if !ok {
		return
	}
	f, ok := l.ctx.ValidateDistance(b)
	if !ok {
		return
	}
	for _, pair := range pairs {
		for _, atom := range pair.ChildrenOf(RuleAtom) {
			l.selectAtom(atom)
		}
	}
	l.ctx.EmitDistanceRow(l.ids["distance"], f)
}

func (l *Listener) dihedral(n *syntax.Node) {
	b, ok := l.bounds(n.Child(RuleFunc), true)
	if !ok {
		return
	}
	f, ok := l.ctx.ValidateAngle(b)
	if !ok {
		return
	}
	for _, atom := range n.ChildrenOf(RuleAtom) {
		l.selectAtom(atom)
	}
	l.ctx.EmitDihedralRow(l.ids["dihedral"], "", f)
}

func (l *Listener) selectAtom(atom *syntax.Node) {
	seq, chain, _ := residue(atom.Tokens[1].Val)
	l.ctx.Select(listener.Assignment{ChainID: chain, SeqID: seq, AtomID: atom.Tokens[0].Val}, true)
}

func params(fn *syntax.Node) []float64 {
	var ps []float64
	for _, t := range fn.Tokens[1:] {
		if t.IsNumber() {
			v, _ := syntax.Float(t.Val)
			ps = append(ps, v)
		}
	}
	return ps
}

// bounds reads the restraint bounds off a constraint function. Angles are
// converted from radians.
func (l *Listener) bounds(fn *syntax.Node, angle bool) (validate.Bounds, bool) {
	b := validate.NewBounds()
	name := upper(fn.Tokens[0].Val)
	arity, ok := arities[name]
	if !ok {
		l.ctx.Warnf(report.InvalidData, "The function %s is not supported.", name)
		return b, false
	}
	ps := params(fn)
	if len(ps) < arity {
		l.ctx.Warnf(report.InvalidData, "The function %s takes %d parameters, not %d.",
			name, arity, len(ps))
		return b, false
	}

	unit := func(v float64) float64 { return v }
	if angle {
		unit = func(v float64) float64 { return v * 180 / math.Pi }
	}
	switch name {
	case "HARMONIC", "CIRCULARHARMONIC":
		b.Target = unit(ps[0])
		b.Lower, b.Upper = unit(ps[0]-ps[1]), unit(ps[0]+ps[1])
	case "FLAT_HARMONIC":
		b.Target = unit(ps[0])
		b.Lower, b.Upper = unit(ps[0]-ps[2]), unit(ps[0]+ps[2])
	case "BOUNDED":
		b.Lower, b.Upper = unit(ps[0]), unit(ps[1])
		if len(ps) > 3 {
			b.UpperLinear = unit(ps[1] + ps[2]*ps[3])
		}
	case "SCALARWEIGHTEDFUNC":
		inner, ok := l.bounds(fn.Child(RuleFunc), angle)
		inner.Weight = ps[0]
		return inner, ok
	}
	return b, true
}
