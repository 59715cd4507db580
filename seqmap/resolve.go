package seqmap

import (
	"strings"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/pdbx"
)

// Residue is a residue of the coordinate model under both numbering schemes.
type Residue struct {
	AuthChainID  string
	AuthSeqID    int
	LabelChainID string
	LabelSeqID   int
	CompID       string
	NonPolymer   bool
}

// Resolver answers residue lookups against one coordinate entry.
type Resolver struct {
	entry *pdbx.Entry
}

// New returns a resolver over e.
func New(e *pdbx.Entry) *Resolver {
	return &Resolver{entry: e}
}

// Entry returns the underlying coordinate entry.
func (r *Resolver) Entry() *pdbx.Entry {
	return r.entry
}

// Chains returns the polymer chains whose author or label chain id is
// chain. When chain is empty, or matches nothing, every polymer chain is
// returned and aliased is set.
func (r *Resolver) Chains(chain string) (chains []*pdbx.PolySeq, aliased bool) {
	if len(chain) > 0 {
		for _, ps := range r.entry.Polymers {
			if ps.AuthChainID == chain {
				chains = append(chains, ps)
			}
		}
		if len(chains) == 0 {
			for _, ps := range r.entry.Polymers {
				if ps.LabelChainID == chain {
					chains = append(chains, ps)
				}
			}
		}
		if len(chains) > 0 {
			return chains, false
		}
	}
	return r.entry.Polymers, len(chain) > 0
}

// ByAuth looks up a residue of ps by author number.
func ByAuth(ps *pdbx.PolySeq, seq int) (Residue, bool) {
	i, ok := ps.AuthIndex(seq)
	if !ok {
		return Residue{}, false
	}
	return at(ps, i), true
}

// ByLabel looks up a residue of ps by label number.
func ByLabel(ps *pdbx.PolySeq, seq int) (Residue, bool) {
	i, ok := ps.LabelIndex(seq)
	if !ok {
		return Residue{}, false
	}
	return at(ps, i), true
}

func at(ps *pdbx.PolySeq, i int) Residue {
	return Residue{
		AuthChainID:  ps.AuthChainID,
		AuthSeqID:    ps.AuthSeqIDs[i],
		LabelChainID: ps.LabelChainID,
		LabelSeqID:   ps.LabelSeqIDs[i],
		CompID:       ps.CompIDs[i],
	}
}

// Canonical returns the label identifiers of an author residue.
func (r *Resolver) Canonical(authChain string, authSeq int) (Residue, bool) {
	ps, ok := r.entry.Polymer(authChain)
	if !ok {
		return Residue{}, false
	}
	return ByAuth(ps, authSeq)
}

// SameComp compares component identifiers case insensitively. An empty
// identifier matches anything.
func SameComp(a, b string) bool {
	return len(a) == 0 || len(b) == 0 || strings.EqualFold(a, b)
}

// NonPolymer finds the non-polymer residue meant by (seq, compID). An exact
// match on number and component wins. Otherwise, when exactly one
// non-polymer has the component, it is returned with remapped set. Chain
// restricts the search when it names a chain of the entry.
func (r *Resolver) NonPolymer(chain string, seq int, compID string) (res Residue, remapped, ok bool) {
	var byComp, exact []*pdbx.NonPoly
	for _, np := range r.entry.NonPolymers {
		if !strings.EqualFold(np.CompID, compID) {
			continue
		}
		byComp = append(byComp, np)
		if np.AuthSeqID == seq {
			exact = append(exact, np)
		}
	}
	if len(exact) > 1 && len(chain) > 0 {
		var inChain []*pdbx.NonPoly
		for _, np := range exact {
			if np.AuthChainID == chain || np.LabelChainID == chain {
				inChain = append(inChain, np)
			}
		}
		exact = inChain
	}
	switch {
	case len(exact) == 1:
		return nonPoly(exact[0]), false, true
	case len(exact) == 0 && len(byComp) == 1:
		return nonPoly(byComp[0]), true, true
	}
	return Residue{}, false, false
}

func nonPoly(np *pdbx.NonPoly) Residue {
	return Residue{
		AuthChainID:  np.AuthChainID,
		AuthSeqID:    np.AuthSeqID,
		LabelChainID: np.LabelChainID,
		LabelSeqID:   np.AuthSeqID,
		CompID:       np.CompID,
		NonPolymer:   true,
	}
}
