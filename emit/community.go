package emit

import (
	"fmt"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/nomenclature"
)

// ToCommunity returns a copy of l whose selections use community atom
// names: the atoms a wildcard or stereo name stood for collapse back to a
// single name such as HB% or CEx. Author identifiers are dropped.
func ToCommunity(l *List, n *nomenclature.Normalizer) *List {
	out := l.copyWith(func(sel Selection) Selection {
		return collapse(sel, n)
	})
	return out
}

// FromCommunity is the inverse of ToCommunity. Community names are expanded
// to the atoms they stand for.
func FromCommunity(l *List, n *nomenclature.Normalizer) (*List, error) {
	var err error
	out := l.copyWith(func(sel Selection) Selection {
		var exp Selection
		for _, a := range sel {
			if err != nil {
				return nil
			}
			var more Selection
			more, err = expand(a, n)
			exp = append(exp, more...)
		}
		exp.sort()
		return exp
	})
	return out, err
}

func (l *List) copyWith(f func(Selection) Selection) *List {
	out := &List{ID: l.ID, Category: l.Category, Name: l.Name, Dims: l.Dims}
	for _, r := range l.Records {
		cp := *r
		cp.Combinations = make([]Combination, len(r.Combinations))
		for i, comb := range r.Combinations {
			cp.Combinations[i] = make(Combination, len(comb))
			for j, sel := range comb {
				cp.Combinations[i][j] = f(sel)
			}
		}
		out.Records = append(out.Records, &cp)
	}
	return out
}

type residue struct {
	chain string
	seq   int
	comp  string
}

// collapse groups the atoms of sel by residue and names each group.
func collapse(sel Selection, n *nomenclature.Normalizer) Selection {
	var order []residue
	groups := make(map[residue]Selection)
	for _, a := range sel {
		a.AuthChainID, a.AuthSeqID, a.AuthCompID, a.AuthAtomID = "", 0, "", ""
		k := residue{a.ChainID, a.SeqID, a.CompID}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], a)
	}
	var out Selection
	for _, k := range order {
		g := groups[k]
		if g[0].Asis || len(g[0].AtomID) == 0 {
			out = append(out, g...)
			continue
		}
		ids := make([]string, len(g))
		for i, a := range g {
			ids[i] = a.AtomID
		}
		names, ok := n.ToCommunity(k.comp, ids, g[0].Ambiguity)
		if !ok {
			out = append(out, g...)
			continue
		}
		for _, name := range names {
			a := g[0]
			a.AtomID = name
			out = append(out, a)
		}
	}
	return out
}

func expand(a Atom, n *nomenclature.Normalizer) (Selection, error) {
	if a.Asis || len(a.AtomID) == 0 {
		return Selection{a}, nil
	}
	res, err := n.Normalize(a.CompID, a.AtomID, nomenclature.Community)
	if err != nil {
		return nil, fmt.Errorf("%s %d %s %s: %w",
			a.ChainID, a.SeqID, a.CompID, a.AtomID, err)
	}
	if len(res.Atoms) == 1 && res.Atoms[0] == a.AtomID {
		return Selection{a}, nil
	}
	sel := make(Selection, len(res.Atoms))
	for i, name := range res.Atoms {
		sel[i] = a
		sel[i].AtomID = name
	}
	return sel, nil
}
