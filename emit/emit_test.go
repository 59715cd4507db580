package emit

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/chemcomp"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/nomenclature"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/shiftstat"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/spectral"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/validate"
)

func atoms(seq int, comp, auth string, amb int, names ...string) Selection {
	sel := make(Selection, len(names))
	for i, name := range names {
		sel[i] = Atom{
			EntityAssemblyID: 1, EntityID: "1", ChainID: "A", SeqID: seq,
			CompID: comp, AtomID: name, Element: name[:1],
			AuthChainID: "A", AuthSeqID: seq + 100, AuthCompID: comp,
			AuthAtomID: auth, Ambiguity: amb,
		}
	}
	return sel
}

func distanceList() *List {
	l := NewList(1, Distance, "test.upl")
	r := NewRecord(7,
		atoms(2, "CYS", "HB%", 1, "HB3", "HB2"),
		atoms(5, "ASN", "HD21", 0, "HD21"))
	r.Func = validate.CheckDistance("7", validate.Bounds{
		Target: validate.Missing, Lower: validate.Missing, Upper: 4.2,
		LowerLinear: validate.Missing, UpperLinear: validate.Missing,
		Weight: validate.Missing,
	}).Func
	l.Add(r)
	r2 := NewRecord(0, atoms(3, "TRP", "CEX", 2, "CE2"), atoms(4, "ALA", "HA", 0, "HA"))
	r2.Func = validate.Func{validate.UpperLimit: "5.000"}
	l.Add(r2)
	return l
}

func TestRows(t *testing.T) {
	l := distanceList()
	rows := l.Rows()
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	type key struct {
		index, id, member int
		atom1, logic      string
	}
	var got []key
	for _, r := range rows {
		got = append(got, key{r.IndexID, r.ID, r.MemberID, r.Atoms[0].AtomID, r.LogicCode()})
	}
	want := []key{
		{1, 7, 1, "HB2", "OR"},
		{1, 7, 2, "HB3", "OR"},
		{2, 2, 1, "CE2", ""},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(key{})); diff != "" {
		t.Fatalf("rows (-want +got):\n%s", diff)
	}
	for _, r := range rows[:2] {
		if r.Func[validate.LowerLimit] != "1.800" || r.Func[validate.TargetValue] != "3.000" {
			t.Fatalf("func %v", r.Func)
		}
	}
}

func TestCombinations(t *testing.T) {
	r := NewRecord(1, atoms(1, "ALA", "HA", 0, "HA"), atoms(2, "GLY", "HA%", 1, "HA2", "HA3"))
	r.Combinations = append(r.Combinations,
		Combination{atoms(1, "ALA", "H", 0, "H"), atoms(2, "GLY", "H", 0, "H")})
	rows := r.Rows()
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i, want := range []int{1, 1, 2} {
		if rows[i].CombinationID != want || rows[i].MemberID != i+1 {
			t.Errorf("row %d: combination %d member %d", i, rows[i].CombinationID, rows[i].MemberID)
		}
	}
}

func TestEmptySelection(t *testing.T) {
	r := NewRecord(1, atoms(1, "ALA", "H", 0, "H"), nil)
	rows := r.Rows()
	if len(rows) != 1 || rows[0].Atoms[1].AtomID != "" {
		t.Fatalf("rows %v", rows)
	}
}

func TestRoundTrip(t *testing.T) {
	n := nomenclature.New(chemcomp.Standard)
	l := distanceList()

	comm := ToCommunity(l, n)
	names := []string{}
	for _, r := range comm.Records {
		for _, sel := range r.Combinations[0] {
			for _, a := range sel {
				names = append(names, a.AtomID)
			}
		}
	}
	if diff := cmp.Diff([]string{"HB%", "HD21", "CEx", "HA"}, names); diff != "" {
		t.Fatalf("community names (-want +got):\n%s", diff)
	}

	back, err := FromCommunity(comm, n)
	if err != nil {
		t.Fatal(err)
	}
	stripped := l.copyWith(func(sel Selection) Selection {
		out := append(Selection(nil), sel...)
		for i := range out {
			out[i].AuthChainID, out[i].AuthSeqID = "", 0
			out[i].AuthCompID, out[i].AuthAtomID = "", ""
		}
		return out
	})
	if diff := cmp.Diff(stripped, back, cmpopts.EquateNaNs()); diff != "" {
		t.Fatalf("round trip (-want +got):\n%s", diff)
	}
}

func TestCuratorDocument(t *testing.T) {
	w := Writer{EntryID: "1abc", Stats: shiftstat.New(chemcomp.Standard)}
	cs := NewList(2, ChemShift, "test.prot")
	r := NewRecord(0, atoms(2, "CYS", "HB%", 1, "HB2", "HB3"))
	r.Func = validate.CheckShift("1", 2.95, 0.02).Func
	cs.Add(r)

	doc, err := w.Document([]*List{distanceList(), cs})
	if err != nil {
		t.Fatal(err)
	}
	f := doc.FindFrame("distance_constraint_list_1")
	if f == nil {
		t.Fatal("missing distance frame")
	}
	lp := f.FindLoop("Gen_dist_constraint")
	for _, tag := range []string{"ID", "Index_ID", "Entity_assembly_ID_1", "Comp_index_ID_1",
		"Comp_ID_1", "Atom_ID_1", "Auth_asym_ID_1", "Auth_seq_ID_1", "Auth_comp_ID_1",
		"Auth_atom_ID_1", "Member_ID", "Distance_upper_bound_val"} {
		if lp.Column(tag) < 0 {
			t.Errorf("missing column %s", tag)
		}
	}
	if lp.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", lp.Len())
	}
	if got := lp.Rows[1][lp.Column("Auth_atom_ID_1")]; got != "HB%" {
		t.Errorf("Auth_atom_ID_1 = %q", got)
	}

	shifts := doc.FindFrame("assigned_chem_shift_list_2").FindLoop("Atom_chem_shift")
	if shifts.Len() != 2 {
		t.Fatalf("expected 2 shift rows, got %d", shifts.Len())
	}
	if got := shifts.Rows[0][shifts.Column("Ambiguity_code")]; got != "2" {
		t.Errorf("Ambiguity_code = %q", got)
	}
	if got := shifts.Rows[0][shifts.Column("Val_err")]; got != "0.020" {
		t.Errorf("Val_err = %q", got)
	}

	if _, err := w.Document([]*List{distanceList(), distanceList()}); err == nil {
		t.Fatal("duplicate list ids must fail")
	}
}

func TestCommunityDocument(t *testing.T) {
	w := Writer{Style: Community, EntryID: "1abc",
		Normalizer: nomenclature.New(chemcomp.Standard)}
	pk := NewList(3, Peak, "test.list")
	pk.Dims = spectral.NewDims(2)
	r := NewRecord(0, atoms(4, "ALA", "H", 0, "H"), Selection{{
		EntityAssemblyID: 1, ChainID: "A", SeqID: 4, CompID: "ALA", AtomID: "N", Element: "N"}})
	r.Positions = []float64{8.1, 119.4}
	pk.Add(r)
	pk.Dims[1].Observe(119.4)
	pk.Dims[0].Observe(8.1)
	spectral.Infer(pk.Dims, false)

	var b strings.Builder
	if err := w.Write(&b, []*List{distanceList(), pk}); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, want := range []string{
		"data_nef_1abc", "save_nef_distance_restraint_list_1", "_nef_distance_restraint.chain_code_1",
		"HB%", "CEx", "_nef_spectrum_dimension.axis_code", "N_ami", "119.400",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q", want)
		}
	}
	if strings.Contains(out, "HB2") {
		t.Error("community output should collapse HB2/HB3")
	}
}
