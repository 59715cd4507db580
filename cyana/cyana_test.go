package cyana

import (
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

func run(t *testing.T, input string, mode Mode) *listener.Result {
	errs := syntax.NewErrorList(0)
	tree := Parse(input, errs)
	if errs.Len() > 0 {
		t.Fatalf("Unexpected syntax errors: %v", errs.Errors())
	}
	ctx := listener.New(pdbxtest.Entry("test", []pdbxtest.Chain{chain}), nil,
		nomenclature.CYANA, nil, listener.Options{Source: "test"})
	syntax.Walk(tree, NewListener(ctx, mode))
	return ctx.Finish()
}

func TestUpperLimit(t *testing.T) {
	res := run(t, "# upper limits\n    2 CYS  HA     4 ALA  QB    4.2\n", Upl)
	if res.Records() != 1 {
		t.Fatalf("Expected one restraint but got %d:\n%s", res.Records(), res.Log)
	}
	want := validate.Func{
		validate.TargetValue: "3.000",
		validate.LowerLimit:  "1.800",
		validate.UpperLimit:  "4.200",
	}
	r := res.Lists[0].Records[0]
	if diff := cmp.Diff(want, r.Func); diff != "" {
		t.Fatalf("function (-want +got):\n%s", diff)
	}
	if n := len(r.Combinations[0][1]); n != 3 {
		t.Fatalf("Expected QB to stand for 3 protons but got %d.", n)
	}
}

func TestModes(t *testing.T) {
	line := "2 CYS HA 4 ALA HA 3.0 5.0\n"
	tests := []struct {
		mode         Mode
		lower, upper string
	}{
		{Lol, "3.000", "5.500"},
		{UplWLol, "5.000", "3.000"},
		{LolWUpl, "3.000", "5.000"},
	}
	for _, test := range tests {
		res := run(t, line, test.mode)
		if test.mode == UplWLol {
			// upper below lower
			if res.Records() != 0 || res.Log.Count(report.RangeValueError) == 0 {
				t.Fatalf("%s: expected a range error but got:\n%s", test.mode, res.Log)
			}
			continue
		}
		f := res.Lists[0].Records[0].Func
		if f[validate.LowerLimit] != test.lower || f[validate.UpperLimit] != test.upper {
			t.Fatalf("%s: expected [%s, %s] but got %v.", test.mode, test.lower, test.upper, f)
		}
	}
}

func TestAlternatives(t *testing.T) {
	input := "   2 CYS  HA     5 LEU  QD1   4.50\n" +
		"OR 2 CYS  HA     5 LEU  QD2\n" +
		"   7 SER  HA     8 LYS+ HA    5.0\n"
	res := run(t, input, Upl)
	recs := res.Lists[0].Records
	if len(recs) != 2 || len(recs[0].Combinations) != 2 {
		t.Fatalf("Expected two restraints, the first with two alternatives.")
	}
	if a := recs[1].Combinations[0][1][0]; a.CompID != "LYS" || a.AuthCompID != "LYS" {
		t.Fatalf("Expected LYS but got %+v.", a)
	}
}

func TestOrWithoutRestraint(t *testing.T) {
	errs := syntax.NewErrorList(0)
	tree := Parse("OR 2 CYS HA 5 LEU QD2\n2 CYS HA 5 LEU QD2 4.0 extra\n", errs)
	if len(tree.Children) != 0 || errs.Len() != 2 {
		t.Fatalf("Expected two errors but got %v.", errs.Errors())
	}
	if e := errs.Errors()[1]; e.Line != 2 || e.Offending != "extra" {
		t.Fatalf("Unexpected error %v.", e)
	}
}

func TestDihedral(t *testing.T) {
	input := "  2 CYS  PHI   -80.0  -40.0\n  7 SER  CHI1  160.0 -160.0\n  4 ALA  CHI1  0.0 10.0\n"
	res := run(t, input, Upl)
	l := res.Lists[0]
	if l.Category != emit.Dihedral || l.Len() != 2 {
		t.Fatalf("Expected two dihedral restraints but got %d.", l.Len())
	}
	phi := l.Records[0]
	var got []string
	for _, sel := range phi.Combinations[0] {
		got = append(got, sel[0].AtomID)
	}
	if diff := cmp.Diff([]string{"C", "N", "CA", "C"}, got); diff != "" {
		t.Fatalf("PHI atoms (-want +got):\n%s", diff)
	}
	if phi.Combinations[0][0][0].SeqID != 1 || phi.Name != "PHI" {
		t.Fatalf("Unexpected PHI restraint %+v.", phi)
	}
	if target := l.Records[1].Func[validate.TargetValue]; target != "180.000" {
		t.Fatalf("Expected the wrapped range to center on 180 but got %s.", target)
	}
	if res.Log.Count(report.InvalidData) != 1 {
		t.Fatalf("Expected ALA to have no CHI1 but got:\n%s", res.Log)
	}
}

func TestCouplings(t *testing.T) {
	res := run(t, "  4 ALA  N     4 ALA  H   -5.23  1.0  1.0\n", Coupling)
	if res.Counts["rdc"] != 1 {
		t.Fatalf("Expected one coupling but got:\n%s", res.Log)
	}
	f := res.Lists[0].Records[0].Func
	if f[validate.Weight] != "1.000" || f[validate.LowerLimit] != "-6.230" {
		t.Fatalf("Unexpected function %v.", f)
	}

	res = run(t, "  8 LYS  HA   0.43  0.05\n", Upl)
	if res.Counts["pcs"] != 1 {
		t.Fatalf("Expected one pseudocontact shift but got:\n%s", res.Log)
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"  2 CYS HA  4 ALA QB 4.2\n", true},
		{"  2 CYS HA A  4 ALA QB A 4.2\n", true},
		{"  2 CYS PHI -80.0 -40.0\n", true},
		{"assign (resid 2 and name HA) (resid 4 and name HB#) 3.0 1.2 1.2\n", false},
		{"  1 4.123 0.020 HA 2\n", false},
	}
	for _, test := range tests {
		if got := Detect(syntax.Tokens(test.input, Config, 64)); got != test.want {
			t.Fatalf("%q: expected %v but got %v.", test.input, test.want, got)
		}
	}
}

func TestModeOf(t *testing.T) {
	if ModeOf("x/ab.LOL") != Lol || ModeOf("ab.rdc") != Coupling || ModeOf("ab.upl") != Upl {
		t.Fatalf("Unexpected modes from extensions.")
	}
	if m, err := ParseMode("lol-w-upl"); err != nil || m != LolWUpl {
		t.Fatalf("Expected lol-w-upl but got %v (%v).", m, err)
	}
	if _, err := ParseMode("both"); err == nil {
		t.Fatalf("Expected an error for an unknown mode.")
	}
}
