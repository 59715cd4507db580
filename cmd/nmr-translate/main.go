// Command nmr-translate translates NMR restraint, chemical shift and peak
// list files into curator (NMR-STAR) or community (NEF) style loops,
// resolving every atom against a coordinate file.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"sort"

	"github.com/TuftsBCB/tools/util"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/chemcomp"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/cyana"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/emit"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/listener"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/pdbx"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/syntax"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/translate"
)

var (
	flagStyle       = "curator"
	flagNoReparse   = false
	flagUpl         = false
	flagLol         = false
	flagUplWLol     = false
	flagLolWUpl     = false
	flagMaxErrors   = syntax.MaxErrorReport
	flagConfig      = ""
	flagOut         = ""
	flagDialect     = ""
	flagChainPolicy = ""
	flagSolidState  = false
	flagCCDDir      = ""
	flagQuiet       = false
)

func init() {
	log.SetFlags(0)

	flag.StringVar(&flagStyle, "output-style", flagStyle,
		"Either 'curator' (NMR-STAR loops) or 'community' (NEF loops).")
	flag.BoolVar(&flagNoReparse, "no-reparse", flagNoReparse,
		"When set, inputs are never read a second time.")
	flag.BoolVar(&flagUpl, "upl", flagUpl,
		"Read CYANA distances as upper limits.")
	flag.BoolVar(&flagLol, "lol", flagLol,
		"Read CYANA distances as lower limits.")
	flag.BoolVar(&flagUplWLol, "upl-w-lol", flagUplWLol,
		"Read CYANA distances as an upper limit followed by a lower limit.")
	flag.BoolVar(&flagLolWUpl, "lol-w-upl", flagLolWUpl,
		"Read CYANA distances as a lower limit followed by an upper limit.")
	flag.IntVar(&flagMaxErrors, "max-errors", flagMaxErrors,
		"The number of syntax errors reported per input.")
	flag.StringVar(&flagConfig, "config", flagConfig,
		"A TOML file with default options and initial re-parse reasons.")
	flag.StringVar(&flagOut, "o", flagOut,
		"The output file. Standard output is used when empty.")
	flag.StringVar(&flagDialect, "dialect", flagDialect,
		"The dialect of every input. It is guessed per input when empty.")
	flag.StringVar(&flagChainPolicy, "chain-policy", flagChainPolicy,
		"What to do with a residue found in several chains: "+
			"'first', 'all' or 'error'.")
	flag.BoolVar(&flagSolidState, "solid-state", flagSolidState,
		"Peak lists come from solid-state experiments.")
	flag.StringVar(&flagCCDDir, "ccd-dir", flagCCDDir,
		"A directory of Chemical Component Dictionary files used for\n"+
			"residues other than the standard ones.")
	flag.BoolVar(&flagQuiet, "quiet", flagQuiet,
		"When set, only errors are reported.")
}

// setFlags returns the names of the flags given on the command line.
func setFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return set
}

// options merges the configuration file with the command line, which wins.
func options() (translate.Options, string) {
	opts := translate.Options{MaxErrors: syntax.MaxErrorReport}
	ccdDir := ""
	if len(flagConfig) > 0 {
		cfg, err := translate.LoadConfig(flagConfig)
		util.Assert(err, "Could not read configuration '%s'", flagConfig)
		if err := cfg.Apply(&opts); err != nil {
			Usagef("Invalid configuration '%s': %s.", flagConfig, err)
		}
		ccdDir = cfg.CCDDir
	}

	set := setFlags()
	var err error
	if set["output-style"] {
		if opts.Style, err = emit.ParseStyle(flagStyle); err != nil {
			Usagef("%s.", err)
		}
	}
	if set["chain-policy"] {
		if opts.ChainPolicy, err = listener.ParseChainPolicy(flagChainPolicy); err != nil {
			Usagef("%s.", err)
		}
	}
	if set["max-errors"] {
		if flagMaxErrors <= 0 {
			Usagef("-max-errors must be positive, not %d.", flagMaxErrors)
		}
		opts.MaxErrors = flagMaxErrors
	}
	modes := map[string]cyana.Mode{
		"upl": cyana.Upl, "lol": cyana.Lol,
		"upl-w-lol": cyana.UplWLol, "lol-w-upl": cyana.LolWUpl,
	}
	var names []string
	for name := range modes {
		if set[name] {
			names = append(names, name)
		}
	}
	switch len(names) {
	case 0:
	case 1:
		mode := modes[names[0]]
		opts.CyanaMode = &mode
	default:
		sort.Strings(names)
		Usagef("Only one of -upl, -lol, -upl-w-lol and -lol-w-upl may be given, not %v.", names)
	}
	opts.NoReparse = opts.NoReparse || flagNoReparse
	opts.SolidState = opts.SolidState || flagSolidState
	if set["ccd-dir"] {
		ccdDir = flagCCDDir
	}
	return opts, ccdDir
}

func main() {
	util.FlagParse("input-file [input-file ...] coordinate-file",
		"Translates NMR data files against the atoms of a coordinate file.")
	if util.NArg() < 2 {
		flag.Usage()
		os.Exit(exitUsage)
	}
	opts, ccdDir := options()

	var dialect *translate.Dialect
	if len(flagDialect) > 0 {
		var ok bool
		if dialect, ok = translate.Lookup(flagDialect); !ok {
			Usagef("Unknown dialect '%s'.", flagDialect)
		}
	}

	coordPath := flag.Arg(flag.NArg() - 1)
	entry, err := pdbx.Open(coordPath)
	util.Assert(err, "Could not read coordinate file '%s'", coordPath)

	var dict chemcomp.Dictionary = chemcomp.Standard
	if len(ccdDir) > 0 {
		dict = chemcomp.NewDir(ccdDir, chemcomp.Standard)
	}
	tr := translate.New(entry, dict, opts)

	var jobs []translate.Job
	for _, path := range flag.Args()[:flag.NArg()-1] {
		jobs = append(jobs, translate.Job{Path: path, Dialect: dialect})
	}
	results, err := tr.TranslateAll(context.Background(), jobs)
	util.Assert(err, "Could not translate")

	records := 0
	for _, res := range results {
		records += res.Records()
		report(res)
	}
	if records == 0 {
		util.Fatalf("Nothing could be translated.")
	}

	if len(flagOut) == 0 {
		util.Assert(tr.Write(os.Stdout, results), "Could not write output")
		return
	}
	err = writeFile(flagOut, func(w io.Writer) error {
		return tr.Write(w, results)
	})
	util.Assert(err, "Could not write '%s'", flagOut)
}

// writeFile creates path, writes to it and closes it. A failed close is
// returned like a failed write.
func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// report logs the messages and statistics of one result.
func report(res *translate.Result) {
	for _, m := range res.Log.Messages() {
		if flagQuiet && !m.Kind.IsError() {
			continue
		}
		util.Warnf("%s: %s", res.Path, m)
	}
	if flagQuiet {
		return
	}
	subtypes := make([]string, 0, len(res.Counts))
	for subtype := range res.Counts {
		subtypes = append(subtypes, subtype)
	}
	sort.Strings(subtypes)
	for _, subtype := range subtypes {
		util.Warnf("%s: %s (%s): %d", res.Path, subtype, res.Dialect.Name, res.Counts[subtype])
	}
	if res.Reparsed {
		util.Warnf("%s: read twice under %s", res.Path, res.Plan)
	}
}
