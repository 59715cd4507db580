// Package pdbxtest builds small coordinate entries for tests.
package pdbxtest

import (
	"github.com/TuftsBCB/structure"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/chemcomp"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/pdbx"
)

// Chain describes a polymer chain. Residues are numbered from Start by
// author and from 1 by label.
type Chain struct {
	Auth, Label string
	Start       int
	Comps       []string

	// Alternative components of microheterogeneous residues, by author
	// number.
	Alt map[int]string
}

// Ligand describes a non-polymer residue.
type Ligand struct {
	Auth, Label string
	Seq         int
	Comp        string
	Atoms       []string
}

// Entry builds an entry whose residues carry every non-leaving atom of the
// standard dictionary. Atom coordinates are placed 3.8 Å apart per residue
// along x and 0.5 Å apart per atom along y.
func Entry(id string, chains []Chain, ligands ...Ligand) *pdbx.Entry {
	var polys []*pdbx.PolySeq
	var sites []*pdbx.Site
	for ci, ch := range chains {
		ps := &pdbx.PolySeq{
			EntityID:     string(rune('1' + ci)),
			AuthChainID:  ch.Auth,
			LabelChainID: ch.Label,
		}
		for i, comp := range ch.Comps {
			auth := ch.Start + i
			ps.AuthSeqIDs = append(ps.AuthSeqIDs, auth)
			ps.LabelSeqIDs = append(ps.LabelSeqIDs, i+1)
			ps.CompIDs = append(ps.CompIDs, comp)

			site := &pdbx.Site{
				ResidueKey:   pdbx.ResidueKey{Chain: ch.Auth, Seq: auth},
				CompID:       comp,
				LabelChainID: ch.Label,
				LabelSeqID:   i + 1,
			}
			altComp, hasAlt := ch.Alt[auth]
			alt, _ := chemcomp.Standard.Component(altComp)
			k := 0
			for _, a := range atoms(comp) {
				altID := ""
				if hasAlt && (alt == nil || !alt.Has(a.ID)) {
					altID = "A"
				}
				site.Atoms = append(site.Atoms, pdbx.Atom{
					Name:    a.ID,
					Element: a.TypeSymbol,
					AltID:   altID,
					Coords:  structure.Coords{X: 3.8 * float64(i), Y: 0.5 * float64(k)},
				})
				k++
			}
			if hasAlt {
				site.Alt = make(map[string][]pdbx.Atom)
				for _, a := range atoms(altComp) {
					if c, ok := chemcomp.Standard.Component(comp); ok && c.Has(a.ID) {
						continue
					}
					site.Alt[altComp] = append(site.Alt[altComp], pdbx.Atom{
						Name:    a.ID,
						Element: a.TypeSymbol,
						AltID:   "B",
						Coords:  structure.Coords{X: 3.8 * float64(i), Y: -0.5 * float64(k)},
					})
					k++
				}
			}
			sites = append(sites, site)
		}
		polys = append(polys, ps)
	}
	var nps []*pdbx.NonPoly
	for li, lig := range ligands {
		nps = append(nps, &pdbx.NonPoly{
			EntityID:     string(rune('1' + len(chains) + li)),
			AuthChainID:  lig.Auth,
			LabelChainID: lig.Label,
			AuthSeqID:    lig.Seq,
			CompID:       lig.Comp,
		})
		site := &pdbx.Site{
			ResidueKey:   pdbx.ResidueKey{Chain: lig.Auth, Seq: lig.Seq},
			CompID:       lig.Comp,
			LabelChainID: lig.Label,
		}
		for k, name := range lig.Atoms {
			site.Atoms = append(site.Atoms, pdbx.Atom{
				Name:    name,
				Element: name,
				Coords:  structure.Coords{Z: 10 + float64(k)},
			})
		}
		sites = append(sites, site)
	}
	e := pdbx.NewEntry(id, polys, nps, sites)
	for ci, ch := range chains {
		if len(ch.Alt) == 0 {
			continue
		}
		ps := polys[ci]
		alt := &pdbx.PolySeq{
			EntityID:     ps.EntityID,
			AuthChainID:  ps.AuthChainID,
			LabelChainID: ps.LabelChainID,
			AuthSeqIDs:   ps.AuthSeqIDs,
			LabelSeqIDs:  ps.LabelSeqIDs,
			CompIDs:      make([]string, len(ps.CompIDs)),
		}
		for i, comp := range ps.CompIDs {
			if a, ok := ch.Alt[ps.AuthSeqIDs[i]]; ok {
				comp = a
			}
			alt.CompIDs[i] = comp
		}
		e.AddAltPolymer(alt)
	}
	return e
}

// atoms returns the non-leaving atoms of a standard component.
func atoms(comp string) []chemcomp.Atom {
	c, ok := chemcomp.Standard.Component(comp)
	if !ok {
		return nil
	}
	var as []chemcomp.Atom
	for _, a := range c.Atoms {
		if !a.Leaving {
			as = append(as, a)
		}
	}
	return as
}

// Repeat returns n residue names cycling through comps.
func Repeat(n int, comps ...string) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = comps[i%len(comps)]
	}
	return out
}
