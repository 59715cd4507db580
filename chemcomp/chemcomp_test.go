package chemcomp

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStandardAmino(t *testing.T) {
	cys, ok := Standard.Component("cys")
	if !ok {
		t.Fatalf("CYS missing from the standard dictionary.")
	}
	if !cys.Has("HB2") || !cys.Has("HB3") || cys.Has("HB1") {
		t.Fatalf("Unexpected CYS atoms: %v", cys.AtomIDs())
	}
	if diff := cmp.Diff([]string{"HB2", "HB3"}, cys.Hydrogens("CB")); diff != "" {
		t.Fatalf("CB hydrogens differ (-want +got):\n%s", diff)
	}
	if !cys.Bonded("N", "H") || cys.Bonded("N", "CB") {
		t.Fatalf("Unexpected CYS bonds.")
	}
	if cys.OneLetter != 'C' || !cys.IsPeptide() {
		t.Fatalf("CYS should be a peptide with code C.")
	}

	leu, _ := Standard.Component("LEU")
	if !leu.IsMethyl("CD1") || !leu.IsMethyl("CD2") || leu.IsMethyl("CG") {
		t.Fatalf("LEU methyl groups misclassified.")
	}
	if p, _ := leu.Parent("HD12"); p != "CD1" {
		t.Fatalf("Expected HD12 on CD1 but got %s.", p)
	}
}

func TestStandardNucleotide(t *testing.T) {
	dt, ok := Standard.Component("DT")
	if !ok || !dt.IsNucleotide() {
		t.Fatalf("DT should be a nucleotide.")
	}
	if !dt.IsMethyl("C7") {
		t.Fatalf("DT C7 is a methyl group.")
	}
	if dt.Has("O2'") {
		t.Fatalf("DT has no 2' oxygen.")
	}
	u, _ := Standard.Component("U")
	if !u.Has("HO2'") || !u.Bonded("C2'", "O2'") {
		t.Fatalf("U lacks its 2' hydroxyl.")
	}
}

func TestEveryHydrogenHasParent(t *testing.T) {
	ids := append([]string{}, standardAmino...)
	ids = append(ids, "A", "C", "G", "U", "DA", "DC", "DG", "DT")
	for _, id := range ids {
		c, ok := Standard.Component(id)
		if !ok {
			t.Fatalf("%s missing.", id)
		}
		for _, a := range c.Atoms {
			if a.TypeSymbol != "H" {
				continue
			}
			if _, ok := c.Parent(a.ID); !ok {
				t.Errorf("%s %s has no parent.", id, a.ID)
			}
		}
	}
}

func TestOneLetter(t *testing.T) {
	if OneLetter("TRP") != 'W' || OneLetter("DG") != 'G' || OneLetter("HOH") != 'X' {
		t.Fatalf("Unexpected one letter codes.")
	}
	if id, ok := FromOneLetter('w'); !ok || id != "TRP" {
		t.Fatalf("Expected TRP but got %s.", id)
	}
}

const atpDef = `data_ATP
_chem_comp.id ATP
_chem_comp.type NON-POLYMER
_chem_comp.one_letter_code ?
loop_
_chem_comp_atom.comp_id
_chem_comp_atom.atom_id
_chem_comp_atom.type_symbol
_chem_comp_atom.pdbx_leaving_atom_flag
ATP PG P N
ATP O1G O N
ATP C8 C N
ATP H8 H N
loop_
_chem_comp_bond.comp_id
_chem_comp_bond.atom_id_1
_chem_comp_bond.atom_id_2
_chem_comp_bond.value_order
ATP PG O1G DOUB
ATP C8 H8 SING
`

func TestDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "A"), 0755); err != nil {
		t.Fatal(err)
	}
	err := os.WriteFile(filepath.Join(dir, "A", "ATP.cif"), []byte(atpDef), 0644)
	if err != nil {
		t.Fatal(err)
	}

	d := NewDir(dir, Standard)
	var wg sync.WaitGroup
	comps := make([]*Component, 8)
	for i := range comps {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			comps[i], _ = d.Component("atp")
		}(i)
	}
	wg.Wait()
	for _, c := range comps {
		if c != comps[0] || c == nil {
			t.Fatalf("Concurrent lookups returned different components.")
		}
	}
	atp := comps[0]
	if atp.Type != TypeNonPolymer || atp.IsPolymer() {
		t.Fatalf("Unexpected type %q.", atp.Type)
	}
	if !atp.Bonded("H8", "C8") || atp.Element("PG") != "P" {
		t.Fatalf("ATP definition read incorrectly: %+v", atp)
	}
	if _, ok := d.Component("ALA"); !ok {
		t.Fatalf("Fallback dictionary not consulted.")
	}
	if _, ok := d.Component("ZZZ"); ok {
		t.Fatalf("Unknown component found.")
	}
}

func TestRead(t *testing.T) {
	c, err := Read(strings.NewReader(atpDef))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"PG", "O1G", "C8", "H8"}, c.AtomIDs()); diff != "" {
		t.Fatalf("atoms differ (-want +got):\n%s", diff)
	}
}
