package sparky

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/TuftsBCB/seq"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/chemcomp"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/emit"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/listener"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/report"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/reparse"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/spectral"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/syntax"
)

var (
	matchPart  = regexp.MustCompile(`^([A-Za-z]{1,4})(-?[0-9]+)([A-Za-z].*)$`)
	matchGroup = regexp.MustCompile(`^([A-Za-z]{1,4})(-?[0-9]+)$`)
)

// residue is the residue part of an assignment.
type residue struct {
	seq  int
	comp string
	ok   bool
}

// compOf expands a one-letter amino acid code. One-letter codes of
// nucleotides are ambiguous with amino acids and are left to the model.
func compOf(code string) string {
	switch len(code) {
	case 1:
		if comp, ok := chemcomp.FromOneLetter(seq.Residue(strings.ToUpper(code)[0])); ok {
			return comp
		}
		return ""
	case 3:
		return strings.ToUpper(code)
	}
	return ""
}

// Listener turns the lists of a parsed file into records of a
// listener.Context.
type Listener struct {
	ctx   *listener.Context
	cols  Columns
	peaks int
	shift int

	// Volumes are kept only once a pass has seen one that is not zero.
	realVol bool
}

// NewListener returns a listener that emits into ctx.
func NewListener(ctx *listener.Context) *Listener {
	return &Listener{
		ctx:     ctx,
		realVol: ctx.Plan.Has(reparse.HasRealVol, ctx.Options.Source),
	}
}

func (l *Listener) EnterRule(n *syntax.Node) {
	switch n.Rule {
	case RulePeakList:
		l.cols = ColumnsOf(n.Tokens)
		l.ctx.NewList(emit.Peak)
	case RuleShiftList:
		l.ctx.NewList(emit.ChemShift)
	case RulePeak:
		l.peaks++
		l.ctx.Reset(fmt.Sprintf("peak %d", l.peaks))
	case RuleShift:
		l.shift++
		l.ctx.Reset(fmt.Sprintf("chemical shift %d", l.shift))
	}
}

func (l *Listener) ExitRule(n *syntax.Node) {
	switch n.Rule {
	case RulePeak:
		l.peak(n)
	case RuleShift:
		l.chemShift(n)
	}
}

// column returns the value of a column after the assignment, or NaN.
func column(n *syntax.Node, i int) float64 {
	if i < 0 || 1+i >= len(n.Tokens) {
		return math.NaN()
	}
	v, ok := syntax.Float(n.Tokens[1+i].Val)
	if !ok {
		return math.NaN()
	}
	return v
}

func (l *Listener) peak(n *syntax.Node) {
	positions := make([]float64, l.cols.Dims)
	for i := range positions {
		positions[i] = column(n, i)
	}
	height, volume := column(n, l.cols.Height), column(n, l.cols.Volume)
	if !math.IsNaN(volume) && volume != 0 && !l.realVol {
		l.ctx.Reason(reparse.HasRealVol, l.ctx.Options.Source, "true")
	}
	if !l.realVol {
		volume = math.NaN()
	}

	l.assign(n.Tokens[0].Val, l.cols.Dims)
	l.ctx.AddAssignedPkRow(l.peaks, positions, height, volume)
}

// assign selects the atoms of a peak assignment, one selection per
// dimension.
func (l *Listener) assign(s string, dims int) {
	parts, ok := l.ctx.SplitAssignment(s, dims)
	if !ok {
		if strings.Trim(s, "?-") != "" {
			l.ctx.Warnf(report.InvalidData,
				"The assignment %q does not name %d atoms.", s, dims)
		}
		for i := 0; i < dims; i++ {
			l.ctx.PushSelection(nil)
		}
		return
	}
	var res residue
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "?" || part == "" {
			l.ctx.PushSelection(nil)
			continue
		}
		atom := part
		if m := matchPart.FindStringSubmatch(part); m != nil {
			seq, _ := syntax.Int(m[2])
			res = residue{seq, compOf(m[1]), true}
			atom = m[3]
		}
		if !res.ok {
			l.ctx.Warnf(report.AtomNotFound, "The assignment %q names no residue.", s)
			l.ctx.PushSelection(nil)
			continue
		}
		l.ctx.Select(listener.Assignment{SeqID: res.seq, CompID: res.comp, AtomID: atom}, false)
	}
}

func (l *Listener) chemShift(n *syntax.Node) {
	m := matchGroup.FindStringSubmatch(n.Tokens[0].Val)
	if m == nil {
		l.ctx.Warnf(report.InvalidData, "'%s' is not a residue.", n.Tokens[0].Val)
		return
	}
	seq, _ := syntax.Int(m[2])
	value, _ := syntax.Float(n.Tokens[3].Val)
	sdev := math.NaN()
	if len(n.Tokens) > 4 {
		if v, ok := syntax.Float(n.Tokens[4].Val); ok {
			sdev = v
		}
	}

	atom := n.Tokens[1].Val
	if elem, _, ok := spectral.ParseIsotope(n.Tokens[2].Val); ok &&
		!strings.HasPrefix(strings.ToUpper(atom), elem) && !strings.HasPrefix(strings.ToUpper(atom), "Q") {
		l.ctx.Warnf(report.InvalidData, "Atom %s is not a %s nucleus.", atom, n.Tokens[2].Val)
		return
	}
	f, ok := l.ctx.ValidateShift(value, sdev)
	if !ok {
		return
	}
	l.ctx.Select(listener.Assignment{SeqID: seq, CompID: compOf(m[1]), AtomID: atom}, false)
	l.ctx.AddCsRow(l.shift, f)
}
