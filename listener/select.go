package listener

import (
	"errors"
	"sort"
	"strings"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/emit"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/nomenclature"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/reparse"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/report"
)

// SelectCoordAtoms resolves atomID in each of the residues of assigns and
// pushes the atoms found onto the current row as one selection. It
// reports whether any atom was found. allowAmbig false means the position
// should name a single atom; more than one gives a warning.
//
// chain, seqID and compID are kept as the author identifiers of the atoms.
func (c *Context) SelectCoordAtoms(assigns []ChainAssign, asis bool, a Assignment, allowAmbig bool) bool {
	var sel emit.Selection
	for _, ca := range assigns {
		sel = append(sel, c.selectInResidue(ca, asis, a)...)
	}
	if len(sel) == 0 {
		c.selections = append(c.selections, nil)
		return false
	}
	if !allowAmbig && len(sel) > 1 {
		names := make([]string, len(sel))
		for i, at := range sel {
			names[i] = at.AtomID
		}
		c.Warnf(report.AmbiguousAssignment,
			"%s stands for %d atoms (%s).", a, len(sel), strings.Join(names, ", "))
	}
	c.selections = append(c.selections, sel)
	return true
}

// Select is AssignCoordPolymerSequence followed by SelectCoordAtoms.
func (c *Context) Select(a Assignment, allowAmbig bool) bool {
	assigns, asis := c.AssignCoordPolymerSequence(a.ChainID, a.SeqID, a.CompID, a.AtomID)
	if len(assigns) == 0 {
		c.selections = append(c.selections, nil)
		return false
	}
	return c.SelectCoordAtoms(assigns, asis, a, allowAmbig)
}

func (c *Context) selectInResidue(ca ChainAssign, asis bool, a Assignment) emit.Selection {
	raw := strings.ToUpper(strings.TrimSpace(a.AtomID))
	var names []string
	var amb int
	var ok bool
	if hint, found := c.Plan.Get(reparse.AtomNameMappingHint, ca.CompID+":"+raw); found {
		names, amb, ok = c.hinted(ca, hint)
	} else {
		names, amb, ok = c.atomNames(ca, raw)
	}
	if !ok {
		return nil
	}
	observed := !c.Entry.IsUnobserved(ca.AuthChainID, ca.AuthSeqID)
	site, hasSite := c.Entry.AtomSite(ca.AuthChainID, ca.AuthSeqID)

	var sel emit.Selection
	for _, name := range names {
		element, inModel := "", false
		if hasSite {
			for _, at := range site.AtomsOf(ca.CompID) {
				if at.Name == name {
					element, inModel = at.Element, true
				}
			}
		}
		if !inModel && observed && hasSite && !asis {
			// Atoms the model lacks, such as a terminal OXT.
			continue
		}
		if len(element) == 0 {
			if comp, ok := c.Dict.Component(ca.CompID); ok {
				element = comp.Element(name)
			}
		}
		sel = append(sel, emit.Atom{
			EntityAssemblyID: c.Entry.EntityAssemblyID(ca.LabelChainID),
			EntityID:         ca.EntityID,
			ChainID:          ca.LabelChainID,
			SeqID:            ca.LabelSeqID,
			CompID:           ca.CompID,
			AtomID:           name,
			Element:          strings.ToUpper(element),
			AuthChainID:      orValue(a.ChainID, ca.AuthChainID),
			AuthSeqID:        a.SeqID,
			AuthCompID:       orValue(a.CompID, ca.CompID),
			AuthAtomID:       a.AtomID,
			Ambiguity:        amb,
			Asis:             asis || !inModel,
		})
	}
	if len(sel) == 0 {
		c.Warnf(report.AtomNotFound,
			"%s is not present in the coordinates.", a)
	}
	return sel
}

func orValue(s, def string) string {
	if len(s) == 0 {
		return def
	}
	return s
}

// hinted maps an atom name through the curator style name an atom name
// mapping hint gives for it.
func (c *Context) hinted(ca ChainAssign, hint string) ([]string, int, bool) {
	v := c.Options.Validator
	if v.ValidateCompAtom(ca.CompID, hint) {
		return []string{hint}, nomenclature.AmbigNone, true
	}
	atoms, amb, details := v.ValidStarAtom(ca.CompID, hint)
	if len(details) > 0 {
		c.Warnf(report.AtomNotFound, "The mapping hint %s does not apply: %s.", hint, details)
		return nil, 0, false
	}
	return atoms, amb, true
}

// atomNames maps raw onto atom names of the residue. Residue types missing
// from the dictionary fall back to the atom names of the coordinates.
func (c *Context) atomNames(ca ChainAssign, raw string) ([]string, int, bool) {
	res, err := c.Norm.Normalize(ca.CompID, raw, c.Nomenclature)
	if err == nil {
		return res.Atoms, res.Ambiguity, true
	}
	if !errors.Is(err, nomenclature.ErrUnknownComponent) {
		c.Warnf(report.AtomNotFound, "%s.", err)
		return nil, 0, false
	}

	coord := c.Entry.AtomNames(ca.AuthChainID, ca.AuthSeqID)
	stem := strings.TrimRight(raw, "%*#")
	var names []string
	for _, name := range coord {
		if name == raw || (len(stem) < len(raw) && strings.HasPrefix(name, stem)) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		c.Warnf(report.AtomNotFound,
			"%s is not an atom of %s %d %s.", raw, ca.AuthChainID, ca.AuthSeqID, ca.CompID)
		return nil, 0, false
	}
	sort.Strings(names)
	amb := nomenclature.AmbigNone
	if len(stem) < len(raw) {
		amb = nomenclature.AmbigWildcard
	}
	return names, amb, true
}
