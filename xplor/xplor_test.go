package xplor

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/emit"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/listener"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/nomenclature"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/pdbx/pdbxtest"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/report"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/syntax"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/validate"
)

var chain = pdbxtest.Chain{
	Auth: "A", Label: "A", Start: 1,
	Comps: []string{"MET", "CYS", "TRP", "ALA", "LEU", "GLY", "SER", "LYS"},
}

const restraints = `! distance restraints
noe
  class all
  assign (segid A and resid 2 and name HA) (segid A and resid 4 and name HB#) 3.0 1.2 1.2
  assign (resid 2 and name HN) (resid 5 and name HA) 4.0 2.2 1.0
     or (resid 2 and name HN) (resid 7 and name HA)
end
{ dihedral
  angles }
restraints dihedral
  assign (resid 1 and name C) (resid 2 and name N)
         (resid 2 and name CA) (resid 2 and name C) 1.0 -60.0 20.0 2
end
sani
  coefficients 0.0 9.2 0.2
  assign (resid 999 and name OO) (resid 999 and name Z)
         (resid 999 and name X) (resid 999 and name Y)
         (resid 4 and name N) (resid 4 and name HN) 9.2 0.2
end
xpcs
  assign (resid 999 and name OO) (resid 999 and name Z)
         (resid 999 and name X) (resid 999 and name Y)
         (resid 8 and name HA) 0.43 0.05
end
`

func parse(t *testing.T, input string) *syntax.Node {
	errs := syntax.NewErrorList(0)
	tree := Parse(input, errs)
	if errs.Len() > 0 {
		t.Fatalf("Unexpected syntax errors: %v", errs.Errors())
	}
	return tree
}

func run(t *testing.T, input string) *listener.Result {
	ctx := listener.New(pdbxtest.Entry("test", []pdbxtest.Chain{chain}), nil,
		nomenclature.XPLOR, nil, listener.Options{Source: "test"})
	syntax.Walk(parse(t, input), NewListener(ctx))
	return ctx.Finish()
}

func TestParse(t *testing.T) {
	tree := parse(t, restraints)
	var rules []string
	for _, n := range tree.Children {
		rules = append(rules, n.Rule)
	}
	want := []string{RuleDistance, RuleDistance, RuleDihedral, RuleRDC, RulePCS}
	if diff := cmp.Diff(want, rules); diff != "" {
		t.Fatalf("rules (-want +got):\n%s", diff)
	}
	if n := len(tree.Children[1].ChildrenOf(RuleOr)); n != 1 {
		t.Fatalf("Expected one alternative but got %d.", n)
	}
	if l := tree.Children[2].Line(); l != 11 {
		t.Fatalf("Expected the dihedral on line 11 but got %d.", l)
	}
}

func TestParseRecovery(t *testing.T) {
	input := "assign (resid 2 and nam HA) (resid 3 and name HA) 3.0 1.0 1.0\n" +
		"assign (resid 2 and name HA) (resid 3 and name HA) 3.0 1.0 1.0\n" +
		"assign (resid 2 and name HA) 3.0\n"
	errs := syntax.NewErrorList(0)
	tree := Parse(input, errs)
	if len(tree.Children) != 1 {
		t.Fatalf("Expected one statement but got %d.", len(tree.Children))
	}
	if errs.Len() != 2 {
		t.Fatalf("Expected two errors but got %v.", errs.Errors())
	}
	if e := errs.Errors()[0]; e.Line != 1 || e.Offending != "nam" {
		t.Fatalf("Unexpected error %v.", e)
	}
	if e := errs.Errors()[1]; e.Line != 3 {
		t.Fatalf("Expected an error on line 3 but got %v.", e)
	}
}

func TestListen(t *testing.T) {
	res := run(t, restraints)
	if res.Log.Len() > 0 {
		t.Fatalf("Unexpected messages:\n%s", res.Log)
	}
	want := map[string]int{"distance": 2, "dihedral": 1, "rdc": 1, "pcs": 1}
	if diff := cmp.Diff(want, res.Counts); diff != "" {
		t.Fatalf("counts (-want +got):\n%s", diff)
	}
	if len(res.Lists) != 4 {
		t.Fatalf("Expected 4 lists but got %d.", len(res.Lists))
	}

	dist := res.Lists[0]
	if dist.Category != emit.Distance || dist.Len() != 2 {
		t.Fatalf("Unexpected first list %v with %d records.", dist.Category, dist.Len())
	}
	first := dist.Records[0]
	wantFunc := validate.Func{
		validate.TargetValue: "3.000",
		validate.LowerLimit:  "1.800",
		validate.UpperLimit:  "4.200",
	}
	if diff := cmp.Diff(wantFunc, first.Func); diff != "" {
		t.Fatalf("function (-want +got):\n%s", diff)
	}
	methyl := first.Combinations[0][1]
	if len(methyl) != 3 || methyl[0].AtomID != "HB1" || methyl[0].Ambiguity != 1 {
		t.Fatalf("Expected the three methyl protons but got %+v.", methyl)
	}
	if n := len(dist.Records[1].Combinations); n != 2 {
		t.Fatalf("Expected two alternatives but got %d.", n)
	}
	if a := dist.Records[1].Combinations[0][0][0]; a.AtomID != "H" || a.AuthAtomID != "HN" {
		t.Fatalf("Expected HN to become H but got %+v.", a)
	}

	dihed := res.Lists[1].Records[0]
	if dihed.Name != "PHI" {
		t.Fatalf("Expected PHI but got %q.", dihed.Name)
	}
	if lo, _ := dihed.Func.Float(validate.LowerLimit); lo != -80 {
		t.Fatalf("Expected a lower limit of -80 but got %f.", lo)
	}

	rdc := res.Lists[2].Records[0]
	if sels := rdc.Combinations[0]; sels[0][0].AtomID != "N" || sels[1][0].AtomID != "H" {
		t.Fatalf("Expected the N-H vector but got %+v.", sels)
	}
	if up, _ := rdc.Func.Float(validate.UpperLimit); up != 9.4 {
		t.Fatalf("Expected an upper limit of 9.4 but got %f.", up)
	}
}

func TestSelectionExpressions(t *testing.T) {
	tests := []struct {
		expr string
		want []string
	}{
		{"(resid 2:3 and (name HA or name HB#))",
			[]string{"2 HA", "2 HB2", "2 HB3", "3 HA", "3 HB2", "3 HB3"}},
		{"(resid 4 and name HB# and not name HB1)", []string{"4 HB2", "4 HB3"}},
		{"(atom A 5 CA)", []string{"5 CA"}},
		{"(resid 5 and resname LEU and name CA or resid 6 and name CA)",
			[]string{"5 CA", "6 CA"}},
		{"(resid 50 and name CA)", nil},
	}
	for _, test := range tests {
		input := "assign " + test.expr + " (resid 1 and name CA) 3.0 1.0 1.0\n"
		res := run(t, input)
		var got []string
		for _, l := range res.Lists {
			for _, a := range l.Records[0].Combinations[0][0] {
				got = append(got, strconv.Itoa(a.SeqID)+" "+a.AtomID)
			}
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Fatalf("%s (-want +got):\n%s", test.expr, diff)
		}
	}
}

func TestOutOfRange(t *testing.T) {
	res := run(t, "assign (resid 2 and name HA) (resid 3 and name HA) 1500.0 1.0 1.0\n")
	if res.Records() != 0 {
		t.Fatalf("Expected the restraint to be dropped.")
	}
	if res.Log.Count(report.RangeValueError) == 0 {
		t.Fatalf("Expected a range error but got:\n%s", res.Log)
	}
}

func TestDetect(t *testing.T) {
	if !Detect(syntax.Tokens(restraints, Config, 64)) {
		t.Fatalf("XPLOR input was not detected.")
	}
	if Detect(syntax.Tokens("2 CYS HA 3 TRP HB2 4.2\n", Config, 64)) {
		t.Fatalf("CYANA input was detected as XPLOR.")
	}
}
