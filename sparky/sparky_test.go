package sparky

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/emit"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/listener"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/nomenclature"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/pdbx/pdbxtest"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/reparse"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/report"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/syntax"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/validate"
)

var chains = []pdbxtest.Chain{
	{Auth: "A", Label: "A", Start: 10, Comps: []string{"SER", "ALA", "LYS", "LEU", "VAL", "THR", "GLY", "GLU"}},
}

const peaks = `      Assignment         w1         w2   Data Height     Volume

          G16N-H    119.400      8.201       1.23e+05   2.10e+06 ga
          E17N-H    121.020      8.532       9.80e+04   1.70e+06 ga
             ?-?    120.100      7.900       4.00e+04   0.00e+00 --
`

const shifts = ` Group   Atom  Nuc    Shift   SDev  Assignments

   G16      N  15N  119.400  0.012            3
   G16      H   1H    8.201  0.002            3
   T15     HA   1H    4.400
`

func parse(t *testing.T, input string) *syntax.Node {
	errs := syntax.NewErrorList(0)
	tree := Parse(input, errs)
	if errs.Len() > 0 {
		t.Fatalf("Unexpected syntax errors: %v", errs.Errors())
	}
	return tree
}

func run(t *testing.T, input string, plan *reparse.Plan) *listener.Result {
	ctx := listener.New(pdbxtest.Entry("test", chains), nil,
		nomenclature.Sparky, plan, listener.Options{Source: "peaks.list"})
	syntax.Walk(parse(t, input), NewListener(ctx))
	return ctx.Finish()
}

func TestColumnsOf(t *testing.T) {
	tests := []struct {
		header string
		want   Columns
	}{
		{"Assignment w1 w2 Data Height Volume", Columns{2, 2, 3}},
		{"Assignment w1 w2 w3", Columns{3, -1, -1}},
		{"Assignment w1 w2 Volume", Columns{2, -1, 2}},
	}
	for _, test := range tests {
		toks := syntax.Tokens(test.header, Config, 64)
		if got := ColumnsOf(toks); got != test.want {
			t.Fatalf("%q: expected %+v but got %+v.", test.header, test.want, got)
		}
	}
}

func TestParse(t *testing.T) {
	tree := parse(t, peaks+"\n"+shifts)
	if n := len(tree.Children); n != 2 {
		t.Fatalf("Expected two lists but got %d.", n)
	}
	if n := len(tree.Children[0].ChildrenOf(RulePeak)); n != 3 {
		t.Fatalf("Expected three peaks but got %d.", n)
	}
	if n := len(tree.Children[1].ChildrenOf(RuleShift)); n != 3 {
		t.Fatalf("Expected three shifts but got %d.", n)
	}
}

func TestParseErrors(t *testing.T) {
	input := "G16N-H 119.4 8.2\n" +
		"Assignment w1\n" +
		"Assignment w1 w2\n" +
		"G16N-H 119.4\n" +
		"G16N-H 119.4 x\n"
	errs := syntax.NewErrorList(0)
	Parse(input, errs)
	lines := []int{1, 2, 4, 5}
	if errs.Len() != len(lines) {
		t.Fatalf("Expected %d errors but got %v.", len(lines), errs.Errors())
	}
	for i, e := range errs.Errors() {
		if e.Line != lines[i] {
			t.Fatalf("Expected error %d on line %d but got %v.", i, lines[i], e)
		}
	}
}

func TestPeaks(t *testing.T) {
	res := run(t, peaks, nil)
	if n := res.Counts["peak2d"]; n != 3 {
		t.Fatalf("Expected three 2D peaks but got %d.", n)
	}
	l := res.Lists[0]
	if l.Category != emit.Peak {
		t.Fatalf("Expected a peak list but got %s.", l.Category)
	}
	first := l.Records[0]
	n, h := first.Combinations[0][0][0], first.Combinations[0][1][0]
	if n.AtomID != "N" || n.SeqID != 7 || n.CompID != "GLY" || h.AtomID != "H" || h.AuthSeqID != 16 {
		t.Fatalf("Unexpected assignment %+v / %+v.", n, h)
	}
	if first.Height != 1.23e5 {
		t.Fatalf("Expected height 1.23e+05 but got %g.", first.Height)
	}

	// Volumes wait for a pass that knows they are real.
	if !math.IsNaN(first.Volume) {
		t.Fatalf("Expected no volume in the first pass but got %g.", first.Volume)
	}
	if v, ok := res.Reasons.Freeze().Get(reparse.HasRealVol, "peaks.list"); !ok || v != "true" {
		t.Fatalf("Expected a real volume reason but got %q.", v)
	}

	unassigned := l.Records[2]
	if len(unassigned.Combinations[0][0]) != 0 || len(unassigned.Combinations[0][1]) != 0 {
		t.Fatalf("Expected an unassigned peak but got %+v.", unassigned.Combinations)
	}

	// 119.4 ppm on the first axis is an amide nitrogen.
	dim := l.Dims[0]
	got := []interface{}{dim.AtomType, dim.Isotope, dim.AxisCode}
	if diff := cmp.Diff([]interface{}{"N", 15, "N_ami"}, got); diff != "" {
		t.Fatalf("first dimension (-want +got):\n%s", diff)
	}
}

func TestRealVolumes(t *testing.T) {
	plan, err := reparse.PlanFrom(map[string]map[string]string{
		string(reparse.HasRealVol): {"peaks.list": "true"},
	})
	if err != nil {
		t.Fatal(err)
	}
	res := run(t, peaks, plan)
	if v := res.Lists[0].Records[1].Volume; v != 1.7e6 {
		t.Fatalf("Expected volume 1.70e+06 but got %g.", v)
	}
}

func TestSeparatorFallback(t *testing.T) {
	res := run(t, "Assignment w1 w2\nG16N/H 119.4 8.2\n", nil)
	if res.Counts["peak2d"] != 1 || res.Log.Count(report.SeparatorFallback) != 1 {
		t.Fatalf("Expected one peak with a fallback warning but got:\n%s", res.Log)
	}
}

func TestShifts(t *testing.T) {
	res := run(t, shifts, nil)
	if n := res.Counts["shift"]; n != 3 {
		t.Fatalf("Expected three shifts but got %d:\n%s", n, res.Log)
	}
	r := res.Lists[0].Records[0]
	if r.Func[validate.TargetValue] != "119.400" {
		t.Fatalf("Expected 119.400 but got %v.", r.Func)
	}
	if a := r.Combinations[0][0][0]; a.AtomID != "N" || a.CompID != "GLY" {
		t.Fatalf("Unexpected atom %+v.", a)
	}
}

func TestWrongNucleus(t *testing.T) {
	res := run(t, "Group Atom Nuc Shift\nG16 N 1H 119.4\n", nil)
	if res.Records() != 0 || res.Log.Count(report.InvalidData) != 1 {
		t.Fatalf("Expected a rejected shift but got:\n%s", res.Log)
	}
}

func TestDetect(t *testing.T) {
	for input, want := range map[string]bool{
		peaks:                      true,
		shifts:                     true,
		"assign (resid 1) 3.0 1 1": false,
	} {
		if got := Detect(syntax.Tokens(input, Config, 64)); got != want {
			t.Fatalf("%q: expected %v but got %v.", input, want, got)
		}
	}
}
