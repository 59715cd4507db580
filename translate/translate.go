package translate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/chemcomp"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/emit"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/listener"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/nomenclature"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/pdbx"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/reparse"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/report"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/shiftstat"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/syntax"
)

// ErrUnknownDialect is returned when the dialect of an input cannot be
// guessed.
var ErrUnknownDialect = errors.New("unknown input dialect")

// Result is the translation of one input.
type Result struct {
	Path    string
	Dialect *Dialect
	Lists   []*emit.List
	Log     *report.Log
	Counts  map[string]int

	// Syntax errors, capped at Options.MaxErrors. SyntaxErrors counts the
	// ones dropped as well.
	Syntax       []syntax.Error
	SyntaxErrors int

	// Whether a second pass ran, and the plan of the last pass.
	Reparsed bool
	Plan     *reparse.Plan
}

// Records returns the number of records over all lists.
func (r *Result) Records() int {
	n := 0
	for _, l := range r.Lists {
		n += l.Len()
	}
	return n
}

// Translator translates inputs against one coordinate entry. It may be
// used from several goroutines at once.
type Translator struct {
	Entry   *pdbx.Entry
	Dict    chemcomp.Dictionary
	Options Options
}

// New returns a translator. dict may be nil, in which case the built-in
// dictionary of standard residues is used.
func New(entry *pdbx.Entry, dict chemcomp.Dictionary, opts Options) *Translator {
	if dict == nil {
		dict = chemcomp.Standard
	}
	return &Translator{Entry: entry, Dict: dict, Options: opts}
}

// Translate translates input, read from path, in dialect d. A nil d is
// guessed with Sniff.
func (t *Translator) Translate(path, input string, d *Dialect) (*Result, error) {
	if d == nil {
		var ok bool
		if d, ok = Sniff(path, input); !ok {
			return nil, fmt.Errorf("%s: %w", path, ErrUnknownDialect)
		}
	}
	errs := syntax.NewErrorList(t.Options.MaxErrors)
	tree := d.Parse(input, errs)

	pass := func(plan *reparse.Plan) (interface{}, *reparse.Reasons, error) {
		ctx := listener.New(t.Entry, t.Dict, d.Nomenclature, plan, listener.Options{
			ChainPolicy: t.Options.ChainPolicy,
			SolidState:  t.Options.SolidState,
			Source:      path,
		})
		syntax.Walk(tree, d.NewListener(ctx, path, t.Options))
		res := ctx.Finish()
		return res, res.Reasons, nil
	}
	ctl := reparse.Controller{NoReparse: t.Options.NoReparse, Initial: t.Options.Plan}
	out, err := ctl.Run(pass)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	pres := out.Result.(*listener.Result)

	log := new(report.Log)
	for _, e := range errs.Errors() {
		log.Add(report.SyntaxError, "", "%s", e)
	}
	if n := errs.Len() - len(errs.Errors()); n > 0 {
		log.Add(report.SyntaxError, "", "%d more syntax errors were not reported.", n)
	}
	log.Append(pres.Log.Messages()...)
	if out.NotConverged {
		log.Add(report.ReparseNotConverged, "", "%s", reparse.NotConverged)
	}
	return &Result{
		Path:         path,
		Dialect:      d,
		Lists:        pres.Lists,
		Log:          log,
		Counts:       pres.Counts,
		Syntax:       errs.Errors(),
		SyntaxErrors: errs.Len(),
		Reparsed:     out.Reparsed,
		Plan:         out.Plan,
	}, nil
}

// TranslateFile reads and translates the file at path.
func (t *Translator) TranslateFile(path string, d *Dialect) (*Result, error) {
	input, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return t.Translate(path, input, d)
}

// Job is one input of TranslateAll. A nil Dialect is guessed.
type Job struct {
	Path    string
	Dialect *Dialect
}

// TranslateAll translates the files of jobs in parallel. Results are in
// the order of jobs. The first error cancels the jobs not yet started.
func (t *Translator) TranslateAll(ctx context.Context, jobs []Job) ([]*Result, error) {
	results := make([]*Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := t.TranslateFile(job.Path, job.Dialect)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Lists returns the lists of every result, renumbered consecutively from 1
// in the order of results.
func Lists(results []*Result) []*emit.List {
	var lists []*emit.List
	for _, res := range results {
		for _, l := range res.Lists {
			l.ID = len(lists) + 1
			lists = append(lists, l)
		}
	}
	return lists
}

// Write writes the lists of every result to w as one document in the
// style of the translator's options.
func (t *Translator) Write(w io.Writer, results []*Result) error {
	id := ""
	if t.Entry != nil {
		id = t.Entry.Id
	}
	ew := emit.Writer{
		Style:      t.Options.Style,
		EntryID:    id,
		Normalizer: nomenclature.New(t.Dict),
		Stats:      shiftstat.New(t.Dict),
	}
	return ew.Write(w, Lists(results))
}
