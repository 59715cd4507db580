package xeasy

import (
	"fmt"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/emit"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/listener"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/syntax"
)

// Unassigned is the shift XEASY writes for an atom it has no shift for.
const Unassigned = 999.0

// Listener turns the lines of a parsed atom list into chemical shifts of a
// listener.Context.
type Listener struct {
	ctx *listener.Context
	n   int
}

// NewListener returns a listener that emits into ctx.
func NewListener(ctx *listener.Context) *Listener {
	return &Listener{ctx: ctx}
}

func (l *Listener) EnterRule(n *syntax.Node) {
	switch n.Rule {
	case RuleFile:
		l.ctx.NewList(emit.ChemShift)
	case RuleShift:
		l.n++
		l.ctx.Reset(fmt.Sprintf("chemical shift %d", l.n))
	}
}

func (l *Listener) ExitRule(n *syntax.Node) {
	if n.Rule != RuleShift {
		return
	}
	value, _ := syntax.Float(n.Tokens[1].Val)
	if value == Unassigned {
		return
	}
	sdev, _ := syntax.Float(n.Tokens[2].Val)
	f, ok := l.ctx.ValidateShift(value, sdev)
	if !ok {
		return
	}
	id, _ := syntax.Int(n.Tokens[0].Val)
	seq, _ := syntax.Int(n.Tokens[4].Val)

	// Pseudo atoms such as QB stand for several protons.
	l.ctx.Select(listener.Assignment{SeqID: seq, AtomID: n.Tokens[3].Val}, true)
	l.ctx.AddCsRow(id, f)
}
