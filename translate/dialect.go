package translate

import (
	"path/filepath"
	"strings"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/biosym"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/cyana"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/listener"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/nomenclature"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/rosetta"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/sparky"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/syntax"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/xeasy"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/xplor"
)

// SniffTokens is the number of leading tokens Sniff looks at.
const SniffTokens = 64

// Dialect ties the lexer, parser and listener of one input format
// together.
type Dialect struct {
	Name         string
	Extensions   []string
	Nomenclature nomenclature.Nomenclature
	Config       *syntax.LexConfig
	Detect       func(toks []syntax.Token) bool
	Parse        func(input string, errs *syntax.ErrorList) *syntax.Node

	// NewListener returns the listener of one pass over the file at path.
	NewListener func(ctx *listener.Context, path string, opts Options) syntax.Listener
}

// Dialects lists the supported dialects in the order Sniff tries them.
// CYANA comes last since its shape is the least distinctive.
var Dialects = []*Dialect{
	{
		Name:         "xplor",
		Extensions:   []string{".tbl", ".xplor", ".cns", ".mr"},
		Nomenclature: nomenclature.XPLOR,
		Config:       xplor.Config,
		Detect:       xplor.Detect,
		Parse:        xplor.Parse,
		NewListener: func(ctx *listener.Context, _ string, _ Options) syntax.Listener {
			return xplor.NewListener(ctx)
		},
	},
	{
		Name:         "rosetta",
		Extensions:   []string{".cst"},
		Nomenclature: nomenclature.Rosetta,
		Config:       rosetta.Config,
		Detect:       rosetta.Detect,
		Parse:        rosetta.Parse,
		NewListener: func(ctx *listener.Context, _ string, _ Options) syntax.Listener {
			return rosetta.NewListener(ctx)
		},
	},
	{
		Name:         "sparky",
		Extensions:   []string{".list", ".sparky"},
		Nomenclature: nomenclature.Sparky,
		Config:       sparky.Config,
		Detect:       sparky.Detect,
		Parse:        sparky.Parse,
		NewListener: func(ctx *listener.Context, _ string, _ Options) syntax.Listener {
			return sparky.NewListener(ctx)
		},
	},
	{
		Name:         "biosym",
		Extensions:   []string{".bsm", ".biosym"},
		Nomenclature: nomenclature.BIOSYM,
		Config:       biosym.Config,
		Detect:       biosym.Detect,
		Parse:        biosym.Parse,
		NewListener: func(ctx *listener.Context, _ string, _ Options) syntax.Listener {
			return biosym.NewListener(ctx)
		},
	},
	{
		Name:         "xeasy",
		Extensions:   []string{".prot"},
		Nomenclature: nomenclature.XEASY,
		Config:       xeasy.Config,
		Detect:       xeasy.Detect,
		Parse:        xeasy.Parse,
		NewListener: func(ctx *listener.Context, _ string, _ Options) syntax.Listener {
			return xeasy.NewListener(ctx)
		},
	},
	{
		Name:         "cyana",
		Extensions:   []string{".upl", ".lol", ".aco", ".rdc", ".pcs", ".cya"},
		Nomenclature: nomenclature.CYANA,
		Config:       cyana.Config,
		Detect:       cyana.Detect,
		Parse:        cyana.Parse,
		NewListener: func(ctx *listener.Context, path string, opts Options) syntax.Listener {
			mode := cyana.ModeOf(path)
			if opts.CyanaMode != nil {
				mode = *opts.CyanaMode
			}
			return cyana.NewListener(ctx, mode)
		},
	},
}

// Lookup returns the dialect with the given name.
func Lookup(name string) (*Dialect, bool) {
	for _, d := range Dialects {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return nil, false
}

// Sniff guesses the dialect of an input: first from the extension of path,
// then from the first SniffTokens tokens of input. A trailing ".gz" is
// ignored.
func Sniff(path, input string) (*Dialect, bool) {
	ext := strings.ToLower(filepath.Ext(strings.TrimSuffix(path, ".gz")))
	for _, d := range Dialects {
		for _, e := range d.Extensions {
			if ext == e {
				return d, true
			}
		}
	}
	for _, d := range Dialects {
		if d.Detect(syntax.Tokens(input, d.Config, SniffTokens)) {
			return d, true
		}
	}
	return nil, false
}
