package listener

import (
	"fmt"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/chemcomp"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/emit"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/nomenclature"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/pdbx"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/reparse"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/report"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/seqmap"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/shiftstat"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/spectral"
)

// ChainPolicy decides what happens when a residue without a usable chain
// identifier matches residues in more than one chain.
type ChainPolicy int

const (
	// Use the first matching chain and warn.
	ChainFirst ChainPolicy = iota

	// Use every matching chain.
	ChainAll

	// Drop the assignment.
	ChainError
)

func (p ChainPolicy) String() string {
	switch p {
	case ChainAll:
		return "all"
	case ChainError:
		return "error"
	}
	return "first"
}

// ParseChainPolicy parses "first", "all" or "error".
func ParseChainPolicy(s string) (ChainPolicy, error) {
	switch s {
	case "", "first":
		return ChainFirst, nil
	case "all":
		return ChainAll, nil
	case "error":
		return ChainError, nil
	}
	return ChainFirst, fmt.Errorf("unknown chain policy %q", s)
}

// Options tune a pass.
type Options struct {
	ChainPolicy ChainPolicy

	// Solid-state experiments acquire on 13C as well as 1H.
	SolidState bool

	// Identifier of the first list created. Lists created afterwards are
	// numbered consecutively.
	FirstListID int

	// Name of the input, used for list names and reasons.
	Source string

	// Checks curator style atom names, such as the targets of atom name
	// mapping hints. Nil means the context's normalizer.
	Validator nomenclature.Validator
}

// Context is the state of one pass over one input.
type Context struct {
	Entry        *pdbx.Entry
	Dict         chemcomp.Dictionary
	Norm         *nomenclature.Normalizer
	Stats        shiftstat.Stats
	Nomenclature nomenclature.Nomenclature
	Options      Options

	// Read only during the pass.
	Plan *reparse.Plan

	// Write only during the pass.
	Reasons *reparse.Reasons

	Log *report.Log

	// Number of records emitted, by subtype ("distance", "peak3d", ...).
	Counts map[string]int

	resolver *seqmap.Resolver
	scheme   seqmap.SchemeTracker
	offsets  seqmap.OffsetInferrer

	id         string
	selections []emit.Selection
	lists      []*emit.List
	current    map[emit.Category]*emit.List
}

// New returns a context for a pass under plan. dict may be nil, in which
// case the built-in dictionary of standard residues is used.
func New(entry *pdbx.Entry, dict chemcomp.Dictionary, nom nomenclature.Nomenclature,
	plan *reparse.Plan, opts Options) *Context {

	if dict == nil {
		dict = chemcomp.Standard
	}
	if opts.FirstListID == 0 {
		opts.FirstListID = 1
	}
	norm := nomenclature.New(dict)
	if opts.Validator == nil {
		opts.Validator = norm
	}
	return &Context{
		Entry:        entry,
		Dict:         dict,
		Norm:         norm,
		Stats:        shiftstat.New(dict),
		Nomenclature: nom,
		Options:      opts,
		Plan:         plan,
		Reasons:      reparse.NewReasons(plan),
		Log:          new(report.Log),
		Counts:       make(map[string]int),
		resolver:     seqmap.New(entry),
		current:      make(map[emit.Category]*emit.List),
	}
}

// Result is what a pass produced.
type Result struct {
	Lists   []*emit.List
	Log     *report.Log
	Counts  map[string]int
	Reasons *reparse.Reasons
}

// Records returns the number of records over all lists.
func (r *Result) Records() int {
	n := 0
	for _, l := range r.Lists {
		n += l.Len()
	}
	return n
}

// Finish ends the pass: spectral dimensions are inferred, and the numbering
// observations of the pass become reasons.
func (c *Context) Finish() *Result {
	for _, l := range c.lists {
		if l.Category == emit.Peak {
			spectral.Infer(l.Dims, c.Options.SolidState)
		}
	}

	label := make(map[string]bool)
	for _, chain := range c.scheme.LabelChains() {
		label[chain] = true
		c.Reason(reparse.LabelSeqScheme, chain, "true")
	}
	for chain, d := range c.offsets.Infer(c.Entry) {
		if !label[chain] {
			c.Reason(reparse.SeqOffset, chain, fmt.Sprint(d))
		}
	}

	var lists []*emit.List
	for _, l := range c.lists {
		if l.Len() > 0 {
			lists = append(lists, l)
		}
	}
	return &Result{Lists: lists, Log: c.Log, Counts: c.Counts, Reasons: c.Reasons}
}

// Reason records a reason for another pass. Keys are those of package
// reparse.
func (c *Context) Reason(key reparse.Key, subject, value string) {
	if err := c.Reasons.Set(key, subject, value); err != nil {
		panic(err)
	}
}

// Count bumps the counter of a record subtype.
func (c *Context) Count(subtype string) {
	c.Counts[subtype]++
}

// Warnf adds a message about the current row.
func (c *Context) Warnf(kind report.Kind, format string, v ...interface{}) {
	c.Log.Add(kind, c.id, format, v...)
}

// Reset starts a new row. id identifies the row in messages.
func (c *Context) Reset(id string) {
	c.id = id
	c.selections = c.selections[:0]
}

// Selections returns the selections made for the current row.
func (c *Context) Selections() []emit.Selection {
	return c.selections
}

// PushSelection adds an already resolved selection to the current row.
// An empty selection stands for an unassigned position.
func (c *Context) PushSelection(sel emit.Selection) {
	c.selections = append(c.selections, sel)
}

// list returns the open list of a category, creating it.
func (c *Context) list(cat emit.Category) *emit.List {
	if l, ok := c.current[cat]; ok {
		return l
	}
	l := emit.NewList(c.Options.FirstListID+len(c.lists), cat, c.Options.Source)
	c.current[cat] = l
	c.lists = append(c.lists, l)
	return l
}

// NewList closes the open list of a category, so that the next record of
// that category starts a new list.
func (c *Context) NewList(cat emit.Category) {
	delete(c.current, cat)
}

// MergeSelections joins the selections pushed since the stack held n
// entries into a single selection. Atoms selected twice are kept once.
func (c *Context) MergeSelections(n int) {
	if n > len(c.selections) {
		n = len(c.selections)
	}
	var merged emit.Selection
	type atomKey struct {
		chain string
		seq   int
		atom  string
	}
	seen := make(map[atomKey]bool)
	for _, sel := range c.selections[n:] {
		for _, a := range sel {
			key := atomKey{a.ChainID, a.SeqID, a.AtomID}
			if !seen[key] {
				seen[key] = true
				merged = append(merged, a)
			}
		}
	}
	c.selections = append(c.selections[:n], merged)
}
