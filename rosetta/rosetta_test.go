package rosetta

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/listener"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/nomenclature"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/pdbx/pdbxtest"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/report"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/syntax"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/validate"
)

var chains = []pdbxtest.Chain{
	{Auth: "A", Label: "A", Start: 1, Comps: []string{"MET", "CYS", "TRP", "ALA", "LEU", "GLY"}},
	{Auth: "B", Label: "B", Start: 1, Comps: []string{"SER", "LYS", "VAL"}},
}

const constraints = `# NOE
AtomPair HA 2A HB2 3A BOUNDED 1.8 4.5 0.5 NOE
AtomPair H 3A 1HB 2A HARMONIC 3.0 0.5
AmbiguousConstraint
  AtomPair HA 2A 2HD1 5A BOUNDED 1.8 5.0 0.5 NOE
  AtomPair HA 2A HA 1B BOUNDED 1.8 5.0 0.5 NOE
END
Dihedral C 1A N 2A CA 2A C 2A SCALARWEIGHTEDFUNC 2.0 CIRCULARHARMONIC -1.0471976 0.3490659
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
	ctx := listener.New(pdbxtest.Entry("test", chains), nil,
		nomenclature.Rosetta, nil, listener.Options{Source: "test"})
	syntax.Walk(parse(t, input), NewListener(ctx))
	return ctx.Finish()
}

func TestParse(t *testing.T) {
	tree := parse(t, constraints)
	var rules []string
	for _, n := range tree.Children {
		rules = append(rules, n.Rule)
	}
	want := []string{RuleAtomPair, RuleAtomPair, RuleAmbiguous, RuleDihedral}
	if diff := cmp.Diff(want, rules); diff != "" {
		t.Fatalf("rules (-want +got):\n%s", diff)
	}
	if n := len(tree.Children[2].ChildrenOf(RuleAtomPair)); n != 2 {
		t.Fatalf("Expected two ambiguous pairs but got %d.", n)
	}
	fn := tree.Children[3].Child(RuleFunc)
	if fn.Tokens[0].Val != "SCALARWEIGHTEDFUNC" || fn.Child(RuleFunc) == nil {
		t.Fatalf("Expected a weighted function but got %v.", fn.Tokens)
	}
}

func TestParseErrors(t *testing.T) {
	input := "AtomPair HA 2A HB2\n" +
		"CoordinateConstraint CA 1 CA 2 0 0 0 HARMONIC 0 1\n" +
		"END\n" +
		"AmbiguousConstraint\n" +
		"AtomPair HA 2 HB2 3 HARMONIC 3.0 0.5\n"
	errs := syntax.NewErrorList(0)
	Parse(input, errs)
	if errs.Len() != 4 {
		t.Fatalf("Expected four errors but got %v.", errs.Errors())
	}
	lines := []int{1, 2, 3, 5}
	for i, e := range errs.Errors() {
		if e.Line != lines[i] {
			t.Fatalf("Expected error %d on line %d but got %v.", i, lines[i], e)
		}
	}
}

func TestListen(t *testing.T) {
	res := run(t, constraints)
	if res.Log.Len() > 0 {
		t.Fatalf("Unexpected messages:\n%s", res.Log)
	}
	want := map[string]int{"distance": 3, "dihedral": 1}
	if diff := cmp.Diff(want, res.Counts); diff != "" {
		t.Fatalf("counts (-want +got):\n%s", diff)
	}

	dist := res.Lists[0].Records
	if f := dist[0].Func; f[validate.LowerLimit] != "1.800" || f[validate.UpperLimit] != "4.500" {
		t.Fatalf("Unexpected bounds %v.", f)
	}
	if a := dist[1].Combinations[0][1][0]; a.AtomID != "HB3" || a.AuthAtomID != "1HB" {
		t.Fatalf("Expected 1HB to become HB3 but got %+v.", a)
	}
	if n := len(dist[2].Combinations); n != 2 {
		t.Fatalf("Expected two alternatives but got %d.", n)
	}
	if a := dist[2].Combinations[1][1][0]; a.ChainID != "B" || a.AtomID != "HA" {
		t.Fatalf("Expected HA of chain B but got %+v.", a)
	}

	dihed := res.Lists[1].Records[0]
	wantFunc := validate.Func{
		validate.TargetValue: "-60.000",
		validate.LowerLimit:  "-80.000",
		validate.UpperLimit:  "-40.000",
		validate.Weight:      "2.000",
	}
	if diff := cmp.Diff(wantFunc, dihed.Func); diff != "" {
		t.Fatalf("function (-want +got):\n%s", diff)
	}
	if dihed.Name != "PHI" {
		t.Fatalf("Expected PHI but got %q.", dihed.Name)
	}
}

func TestUnsupportedFunction(t *testing.T) {
	res := run(t, "AtomPair HA 2 HB2 3 GAUSSIANFUNC 3.0 0.5\nAtomPair HA 2 HB2 3 BOUNDED 1.8\n")
	if res.Records() != 0 || res.Log.Count(report.InvalidData) != 2 {
		t.Fatalf("Expected two rejected constraints but got:\n%s", res.Log)
	}
}

func TestResidue(t *testing.T) {
	tests := []struct {
		in    string
		seq   int
		chain string
		ok    bool
	}{
		{"12", 12, "", true},
		{"12A", 12, "A", true},
		{"-3B", -3, "B", true},
		{"A", 0, "", false},
	}
	for _, test := range tests {
		seq, chain, ok := residue(test.in)
		if ok != test.ok || (ok && (seq != test.seq || chain != test.chain)) {
			t.Fatalf("%q: expected (%d, %q, %v) but got (%d, %q, %v).",
				test.in, test.seq, test.chain, test.ok, seq, chain, ok)
		}
	}
}
