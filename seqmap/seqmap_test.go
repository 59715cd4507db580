package seqmap

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/pdbx"
)

// chain builds a polymer numbered from authStart (author) and 1 (label).
func chain(auth, label string, authStart int, comps ...string) *pdbx.PolySeq {
	ps := &pdbx.PolySeq{EntityID: "1", AuthChainID: auth, LabelChainID: label}
	for i, c := range comps {
		ps.AuthSeqIDs = append(ps.AuthSeqIDs, authStart+i)
		ps.LabelSeqIDs = append(ps.LabelSeqIDs, i+1)
		ps.CompIDs = append(ps.CompIDs, c)
	}
	return ps
}

func testEntry() *pdbx.Entry {
	return pdbx.NewEntry("test",
		[]*pdbx.PolySeq{
			chain("A", "A", 101, "MET", "GLY", "SER", "CYS", "TRP", "LYS", "ALA", "HIS"),
			chain("B", "B", 1, "GLY", "ALA"),
		},
		[]*pdbx.NonPoly{
			{EntityID: "2", AuthChainID: "A", LabelChainID: "C", AuthSeqID: 201, CompID: "ZN"},
			{EntityID: "3", AuthChainID: "A", LabelChainID: "D", AuthSeqID: 301, CompID: "HEM"},
			{EntityID: "3", AuthChainID: "B", LabelChainID: "E", AuthSeqID: 302, CompID: "HEM"},
		}, nil)
}

func TestLookup(t *testing.T) {
	r := New(testEntry())
	ps, _ := r.Entry().Polymer("A")

	res, ok := ByAuth(ps, 104)
	if !ok {
		t.Fatal("auth 104 not found")
	}
	want := Residue{AuthChainID: "A", AuthSeqID: 104, LabelChainID: "A", LabelSeqID: 4, CompID: "CYS"}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Fatalf("ByAuth (-want +got):\n%s", diff)
	}
	if res2, ok := ByLabel(ps, 4); !ok || res2 != res {
		t.Fatalf("ByLabel(4) = %v, %v", res2, ok)
	}
	if _, ok := ByAuth(ps, 4); ok {
		t.Fatal("auth 4 should not exist")
	}

	if chains, aliased := r.Chains(""); len(chains) != 2 || aliased {
		t.Fatalf("empty chain: %d chains, aliased %v", len(chains), aliased)
	}
	if chains, aliased := r.Chains("Q"); len(chains) != 2 || !aliased {
		t.Fatalf("unknown chain: %d chains, aliased %v", len(chains), aliased)
	}
	if chains, _ := r.Chains("B"); len(chains) != 1 || chains[0].AuthChainID != "B" {
		t.Fatalf("chain B: %v", chains)
	}
}

func TestNonPolymer(t *testing.T) {
	r := New(testEntry())
	tests := []struct {
		chain    string
		seq      int
		comp     string
		want     int
		remapped bool
		ok       bool
	}{
		{"A", 201, "ZN", 201, false, true},
		{"", 1, "ZN", 201, true, true},
		{"", 1, "zn", 201, true, true},
		{"B", 302, "HEM", 302, false, true},
		{"", 5, "HEM", 0, false, false},
		{"", 1, "MG", 0, false, false},
	}
	for _, test := range tests {
		res, remapped, ok := r.NonPolymer(test.chain, test.seq, test.comp)
		if ok != test.ok || remapped != test.remapped || (ok && res.AuthSeqID != test.want) {
			t.Errorf("NonPolymer(%q, %d, %s) = %v, %v, %v",
				test.chain, test.seq, test.comp, res, remapped, ok)
		}
	}
}

func TestSchemeTracker(t *testing.T) {
	var tr SchemeTracker
	tr.Observe("A", false, true)
	if tr.Scheme("A") != PreferAuth {
		t.Fatal("one label-only success must not switch")
	}
	tr.Observe("A", false, true)
	if tr.Scheme("A") != PreferLabel {
		t.Fatal("two label-only successes must switch")
	}
	tr.Observe("A", true, true)
	if tr.Scheme("A") != PreferLabel {
		t.Fatal("ambiguous lookup must not switch")
	}
	tr.Observe("B", true, false)
	if diff := cmp.Diff([]string{"A"}, tr.LabelChains()); diff != "" {
		t.Fatalf("LabelChains (-want +got):\n%s", diff)
	}
	tr.Observe("A", true, false)
	if tr.Scheme("A") != PreferAuth {
		t.Fatal("failure under label numbering must revert")
	}
	if len(tr.LabelChains()) != 0 {
		t.Fatal("no chain should prefer label numbering")
	}
}

// A file numbered from 1 against a chain numbered from 101.
func TestSchemeRestart(t *testing.T) {
	comps := make([]string, 214)
	for i := range comps {
		comps[i] = []string{"ALA", "GLY", "LEU", "SER"}[i%4]
	}
	// Author lookups fail outright for the first hundred residues.
	e := pdbx.NewEntry("restart", []*pdbx.PolySeq{chain("A", "A", 101, comps...)}, nil, nil)
	ps, _ := e.Polymer("A")

	var tr SchemeTracker
	for n := 1; n <= 214; n++ {
		comp := comps[n-1]
		a, aok := ByAuth(ps, n)
		authOK := aok && SameComp(a.CompID, comp)
		l, lok := ByLabel(ps, n)
		labelOK := lok && SameComp(l.CompID, comp)
		tr.Observe("A", authOK, labelOK)
	}
	if tr.Scheme("A") != PreferLabel {
		t.Fatal("chain A should prefer label numbering")
	}
}

func TestInferOffset(t *testing.T) {
	e := testEntry()
	var o OffsetInferrer
	// The file numbers chain A from 1.
	o.Record("A", 4, "CYS")
	o.Record("A", 5, "TRP")
	o.Record("A", 5, "TRP")
	o.Record("A", 8, "HIS")
	o.Record("A", 9, "") // no evidence
	o.Record("B", 7, "GLY")

	got := o.Infer(e)
	if diff := cmp.Diff(map[string]int{"A": 100}, got); diff != "" {
		t.Fatalf("Infer (-want +got):\n%s", diff)
	}
}

func TestInferOffsetInconsistent(t *testing.T) {
	var o OffsetInferrer
	o.Record("A", 4, "CYS")
	o.Record("A", 6, "CYS")
	if got := o.Infer(testEntry()); len(got) != 0 {
		t.Fatalf("expected no offset, got %v", got)
	}
}

func TestInferOffsetTie(t *testing.T) {
	// Residues repeat with period 2, so several offsets fit.
	e := pdbx.NewEntry("tie", []*pdbx.PolySeq{
		chain("A", "A", 1, "ALA", "GLY", "ALA", "GLY", "ALA", "GLY", "ALA", "GLY"),
	}, nil, nil)
	var o OffsetInferrer
	o.Record("A", 3, "GLY")
	o.Record("A", 4, "ALA")
	got := o.Infer(e)
	if d, ok := got["A"]; !ok || (d != -1 && d != 1 && d != 3) {
		t.Fatalf("Infer = %v", got)
	}
}
