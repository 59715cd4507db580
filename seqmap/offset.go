package seqmap

import (
	"sort"
	"strings"

	"github.com/TuftsBCB/seq"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/chemcomp"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/pdbx"
)

// minFailures is the smallest number of failed lookups in a chain for which
// an offset is inferred.
const minFailures = 2

type failure struct {
	seq  int
	comp string
}

// OffsetInferrer collects failed lookups, per chain, and infers a constant
// offset between the author's numbering and the coordinate model's.
// The zero value is ready to use.
type OffsetInferrer struct {
	failures map[string][]failure
	seen     map[string]map[int]bool
}

// Record notes that residue seq with component comp was not found in chain.
// Lookups without a component carry no evidence and are ignored.
func (o *OffsetInferrer) Record(chain string, seqID int, comp string) {
	if len(comp) == 0 {
		return
	}
	if o.failures == nil {
		o.failures = make(map[string][]failure)
		o.seen = make(map[string]map[int]bool)
	}
	if o.seen[chain] == nil {
		o.seen[chain] = make(map[int]bool)
	}
	if o.seen[chain][seqID] {
		return
	}
	o.seen[chain][seqID] = true
	o.failures[chain] = append(o.failures[chain],
		failure{seqID, strings.ToUpper(comp)})
}

// Infer returns, for each chain with at least two failures, the offset d
// such that every failed residue n is residue n+d of the chain (by author
// number). When several offsets qualify, the one agreeing with a global
// alignment of the failed residues against the chain wins, then the one
// with the smallest magnitude.
func (o *OffsetInferrer) Infer(e *pdbx.Entry) map[string]int {
	offsets := make(map[string]int)
	for chain, fs := range o.failures {
		if len(fs) < minFailures {
			continue
		}
		ps, ok := e.Polymer(chain)
		if !ok {
			continue
		}
		if d, ok := inferChain(ps, fs); ok {
			offsets[chain] = d
		}
	}
	return offsets
}

func inferChain(ps *pdbx.PolySeq, fs []failure) (int, bool) {
	votes := make(map[int]int)
	for _, f := range fs {
		counted := make(map[int]bool)
		for i, comp := range ps.CompIDs {
			if comp != f.comp {
				continue
			}
			d := ps.AuthSeqIDs[i] - f.seq
			if d == 0 || counted[d] {
				continue
			}
			counted[d] = true
			votes[d]++
		}
	}
	var all []int
	for d, n := range votes {
		if n == len(fs) {
			all = append(all, d)
		}
	}
	if len(all) == 0 {
		return 0, false
	}
	sort.Slice(all, func(i, j int) bool {
		ai, aj := abs(all[i]), abs(all[j])
		return ai < aj || (ai == aj && all[i] < all[j])
	})
	if len(all) > 1 {
		if d, ok := alignedOffset(ps, fs); ok {
			for _, cand := range all {
				if cand == d {
					return d, true
				}
			}
		}
	}
	return all[0], true
}

// alignedOffset aligns the failed residues, in numbering order, against
// the chain and returns the most common offset among aligned pairs with
// the same residue.
func alignedOffset(ps *pdbx.PolySeq, fs []failure) (int, bool) {
	sorted := append([]failure(nil), fs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].seq < sorted[j].seq })
	frag := make([]seq.Residue, len(sorted))
	for i, f := range sorted {
		frag[i] = chemcomp.OneLetter(f.comp)
	}
	chain := ps.Residues()
	aligned := seq.NeedlemanWunsch(chain, frag, seq.SubstBlosum62)

	counts := make(map[int]int)
	ci, fi := 0, 0
	for i := range aligned.A {
		a, b := aligned.A[i], aligned.B[i]
		if a != '-' && b != '-' && a == b && ci < len(ps.AuthSeqIDs) && fi < len(sorted) {
			counts[ps.AuthSeqIDs[ci]-sorted[fi].seq]++
		}
		if a != '-' {
			ci++
		}
		if b != '-' {
			fi++
		}
	}
	best, bestN := 0, 0
	for d, n := range counts {
		if n > bestN || (n == bestN && abs(d) < abs(best)) {
			best, bestN = d, n
		}
	}
	return best, bestN > 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
