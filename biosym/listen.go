package biosym

import (
	"fmt"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/listener"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/syntax"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/validate"
)

// Listener turns the restraints of a parsed file into distance records of
// a listener.Context.
type Listener struct {
	ctx *listener.Context
	n   int
}

// NewListener returns a listener that emits into ctx.
func NewListener(ctx *listener.Context) *Listener {
	return &Listener{ctx: ctx}
}

func (l *Listener) EnterRule(n *syntax.Node) {
	if n.Rule == RuleDistance {
		l.n++
		l.ctx.Reset(fmt.Sprintf("distance restraint %d", l.n))
	}
}

func (l *Listener) ExitRule(n *syntax.Node) {
	if n.Rule != RuleDistance {
		return
	}
	vals := n.Child(RuleValues).Tokens
	b := validate.NewBounds()
	b.Lower, _ = syntax.Float(vals[0].Val)
	b.Upper, _ = syntax.Float(vals[1].Val)
	f, ok := l.ctx.ValidateDistance(b)
	if !ok {
		return
	}
	for _, atom := range n.ChildrenOf(RuleAtom) {
		l.ctx.Select(assignment(atom), true)
	}
	l.ctx.EmitDistanceRow(l.n, f)
}

func assignment(atom *syntax.Node) listener.Assignment {
	toks := atom.Tokens
	var a listener.Assignment
	if len(toks) == 3 {
		a.ChainID, toks = toks[0].Val, toks[1:]
	}
	a.CompID, a.SeqID, _ = residue(toks[0].Val)
	a.AtomID = toks[1].Val
	return a
}
