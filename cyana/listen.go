package cyana

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/listener"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/report"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/syntax"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/validate"
)

// Mode says how the numbers of a line between two atoms are read.
type Mode int

const (
	// Upper distance limit.
	Upl Mode = iota

	// Lower distance limit.
	Lol

	// Upper, then lower distance limit.
	UplWLol

	// Lower, then upper distance limit.
	LolWUpl

	// Dipolar coupling: value, error, weight.
	Coupling
)

var modeNames = []string{
	Upl:      "upl",
	Lol:      "lol",
	UplWLol:  "upl-w-lol",
	LolWUpl:  "lol-w-upl",
	Coupling: "rdc",
}

func (m Mode) String() string {
	return modeNames[m]
}

// ParseMode parses the name of a mode.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(m), nil
		}
	}
	return Upl, fmt.Errorf("unknown CYANA mode %q", s)
}

// ModeOf returns the mode implied by the extension of a file name.
func ModeOf(path string) Mode {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lol":
		return Lol
	case ".rdc":
		return Coupling
	}
	return Upl
}

// Listener turns the lines of a parsed file into records of a
// listener.Context.
type Listener struct {
	ctx  *listener.Context
	mode Mode
	ids  map[string]int
}

// NewListener returns a listener that emits into ctx and reads distance
// lines according to mode.
func NewListener(ctx *listener.Context, mode Mode) *Listener {
	return &Listener{ctx: ctx, mode: mode, ids: make(map[string]int)}
}

func (l *Listener) kind(rule string) string {
	switch rule {
	case RulePair:
		if l.mode == Coupling {
			return "rdc"
		}
		return "distance"
	case RuleSingle:
		return "pcs"
	case RuleAngle:
		return "dihedral"
	}
	return ""
}

func (l *Listener) EnterRule(n *syntax.Node) {
	if kind := l.kind(n.Rule); len(kind) > 0 {
		l.ids[kind]++
		l.ctx.Reset(fmt.Sprintf("%s restraint %d", kind, l.ids[kind]))
	}
}

func (l *Listener) ExitRule(n *syntax.Node) {
	switch kind := l.kind(n.Rule); kind {
	case "distance":
		l.distance(n, l.ids[kind])
	case "rdc":
		l.rdc(n, l.ids[kind])
	case "pcs":
		l.pcs(n, l.ids[kind])
	case "dihedral":
		l.dihedral(n, l.ids[kind])
	}
}

func values(n *syntax.Node) []float64 {
	vals := n.Child(RuleValues)
	fs := make([]float64, len(vals.Tokens))
	for i, t := range vals.Tokens {
		fs[i], _ = syntax.Float(t.Val)
	}
	return fs
}

// compID strips the charge suffix of CYANA residue names such as LYS+ or
// ASP- and maps CYANA specific residue variants.
func compID(name string) string {
	name = strings.ToUpper(strings.TrimRight(name, "+-"))
	switch name {
	case "CYSS":
		return "CYS"
	case "HIST", "HISE", "HISD":
		return "HIS"
	}
	return name
}

func assignment(atom *syntax.Node) listener.Assignment {
	seq, _ := syntax.Int(atom.Tokens[0].Val)
	a := listener.Assignment{
		SeqID:  seq,
		CompID: compID(atom.Tokens[1].Val),
		AtomID: atom.Tokens[2].Val,
	}
	if len(atom.Tokens) > 3 {
		a.ChainID = atom.Tokens[3].Val
	}
	return a
}

func (l *Listener) selectAtoms(n *syntax.Node, allowAmbig bool) {
	for _, atom := range n.ChildrenOf(RuleAtom) {
		l.ctx.Select(assignment(atom), allowAmbig)
	}
}

func (l *Listener) distance(n *syntax.Node, id int) {
	vals := values(n)
	b := validate.NewBounds()
	switch l.mode {
	case Upl:
		b.Upper = vals[0]
	case Lol:
		b.Lower = vals[0]
	case UplWLol:
		b.Upper = vals[0]
		if len(vals) > 1 {
			b.Lower = vals[1]
		}
	case LolWUpl:
		b.Lower = vals[0]
		if len(vals) > 1 {
			b.Upper = vals[1]
		}
	}
	f, ok := l.ctx.ValidateDistance(b)
	if !ok {
		return
	}
	l.selectAtoms(n, true)
	for _, or := range n.ChildrenOf(RuleOr) {
		l.selectAtoms(or, true)
	}
	l.ctx.EmitDistanceRow(id, f)
}

// coupled reads value, error and weight.
func coupled(vals []float64) validate.Bounds {
	b := validate.NewBounds()
	b.Target = vals[0]
	if len(vals) > 1 {
		b.Lower, b.Upper = vals[0]-vals[1], vals[0]+vals[1]
	}
	if len(vals) > 2 {
		b.Weight = vals[2]
	}
	return b
}

func (l *Listener) rdc(n *syntax.Node, id int) {
	f, ok := l.ctx.ValidateRdc(coupled(values(n)))
	if !ok {
		return
	}
	l.selectAtoms(n, false)
	l.ctx.EmitRdcRow(id, f)
}

func (l *Listener) pcs(n *syntax.Node, id int) {
	f, ok := l.ctx.ValidatePcs(coupled(values(n)))
	if !ok {
		return
	}
	l.selectAtoms(n, false)
	l.ctx.EmitPcsRow(id, f)
}

func (l *Listener) dihedral(n *syntax.Node, id int) {
	vals := values(n)
	b := validate.NewBounds()
	b.Lower, b.Upper = vals[0], vals[1]
	f, ok := l.ctx.ValidateAngle(b)
	if !ok {
		return
	}

	seq, _ := syntax.Int(n.Tokens[0].Val)
	comp := compID(n.Tokens[1].Val)
	name := strings.ToUpper(n.Tokens[2].Val)
	atoms, offsets, ok := l.ctx.AngleAtoms(name, comp)
	if !ok {
		l.ctx.Warnf(report.InvalidData, "%s is not a dihedral angle of %s.", name, comp)
		return
	}
	for i, atom := range atoms {
		a := listener.Assignment{SeqID: seq + offsets[i], AtomID: atom}
		if offsets[i] == 0 {
			a.CompID = comp
		}
		l.ctx.Select(a, false)
	}
	l.ctx.EmitDihedralRow(id, name, f)
}
