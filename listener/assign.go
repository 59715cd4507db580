package listener

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/nomenclature"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/pdbx"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/reparse"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/report"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/seqmap"
)

// Assignment is an atom as the input names it. ChainID and CompID may be
// empty.
type Assignment struct {
	ChainID string
	SeqID   int
	CompID  string
	AtomID  string
}

func (a Assignment) String() string {
	var parts []string
	if len(a.ChainID) > 0 {
		parts = append(parts, a.ChainID)
	}
	parts = append(parts, fmt.Sprint(a.SeqID))
	if len(a.CompID) > 0 {
		parts = append(parts, a.CompID)
	}
	if len(a.AtomID) > 0 {
		parts = append(parts, a.AtomID)
	}
	return strings.Join(parts, ":")
}

// ChainAssign is a residue of the coordinate model an assignment resolved
// to.
type ChainAssign struct {
	seqmap.Residue
	EntityID string
}

// AssignCoordPolymerSequence finds the residues of the coordinate model
// meant by (chain, seqID, compID). atomID, when given, settles which
// residues fit when compID is empty. asis is set when the residue was found
// among the non-polymers.
//
// Polymer residues are tried by author number (corrected by an offset from
// the plan), by label number when the plan says the chain is numbered that
// way, and in the alternative sequence of a microheterogeneous chain. A
// residue present at the author number with another component is taken
// with a warning when atomID is one of its atoms.
func (c *Context) AssignCoordPolymerSequence(chain string, seqID int, compID, atomID string) (assigns []ChainAssign, asis bool) {
	compID = strings.ToUpper(compID)
	a := Assignment{chain, seqID, compID, atomID}
	candidates, aliased := c.resolver.Chains(chain)

	lookups := make([]lookup, len(candidates))
	anyAuth := false
	for i, ps := range candidates {
		lookups[i] = c.lookup(ps, a)
		anyAuth = anyAuth || lookups[i].authOK
	}

	// Numbering evidence comes from the chain the input names, or, when
	// it names none, from the chains that resolved by author number. If
	// none did, every candidate chain is evidence.
	named := len(chain) > 0 && !aliased
	var fallback []ChainAssign
	for _, l := range lookups {
		if named || !anyAuth || l.authOK {
			c.observe(l, a)
		}
		if res, ok := c.resolve(l, a); ok {
			assigns = append(assigns, ChainAssign{res, l.ps.EntityID})
		} else if res, ok := c.unmatched(l.ps, a); ok {
			fallback = append(fallback, ChainAssign{res, l.ps.EntityID})
		}
	}
	if len(assigns) == 0 && len(fallback) > 0 {
		for _, ca := range fallback {
			c.Warnf(report.UnmatchedResidueName,
				"%s is not %s but %s %d in chain %s of the coordinates.",
				a, orDash(compID), ca.CompID, ca.AuthSeqID, ca.AuthChainID)
		}
		assigns = fallback
	}
	if len(assigns) == 0 {
		if res, ok := c.assignNonPolymer(a); ok {
			return []ChainAssign{res}, true
		}
		c.Warnf(report.AtomNotFound,
			"%s is not present in the coordinates.", a)
		return nil, false
	}

	if len(assigns) > 1 && (len(chain) == 0 || aliased) {
		switch c.Options.ChainPolicy {
		case ChainFirst:
			c.Warnf(report.AmbiguousAssignment,
				"%s matches %d chains; chain %s is used.",
				a, len(assigns), assigns[0].AuthChainID)
			assigns = assigns[:1]
		case ChainError:
			c.Warnf(report.AmbiguousAssignment,
				"%s matches %d chains; the assignment is dropped.", a, len(assigns))
			return nil, false
		}
	}
	for _, ca := range assigns {
		if c.Entry.IsUnobserved(ca.AuthChainID, ca.AuthSeqID) {
			c.Warnf(report.UnobservedResidue,
				"%s %d %s of chain %s has no coordinates.",
				a, ca.AuthSeqID, ca.CompID, ca.AuthChainID)
		}
	}
	return assigns, false
}

func orDash(s string) string {
	if len(s) == 0 {
		return "-"
	}
	return s
}

// lookup is an assignment looked up in one chain under both numbering
// schemes.
type lookup struct {
	ps        *pdbx.PolySeq
	offset    int
	hasOffset bool

	byAuth, byLabel seqmap.Residue
	authOK, labelOK bool
}

func (c *Context) lookup(ps *pdbx.PolySeq, a Assignment) lookup {
	l := lookup{ps: ps}
	l.offset, l.hasOffset = c.Plan.Int(reparse.SeqOffset, ps.AuthChainID)

	var found bool
	l.byAuth, found = c.resolver.Canonical(ps.AuthChainID, a.SeqID+l.offset)
	l.authOK = found && c.fits(l.byAuth.CompID, a)
	l.byLabel, found = seqmap.ByLabel(ps, a.SeqID)
	l.labelOK = found && c.fits(l.byLabel.CompID, a)
	return l
}

// observe feeds the numbering trackers with the outcome of a lookup.
func (c *Context) observe(l lookup, a Assignment) {
	if len(a.CompID) == 0 && len(a.AtomID) == 0 {
		return
	}
	c.scheme.Observe(l.ps.AuthChainID, l.authOK, l.labelOK)
	if !l.authOK && !l.hasOffset {
		c.offsets.Record(l.ps.AuthChainID, a.SeqID, a.CompID)
	}
}

// resolve picks the residue of a lookup under the numbering schemes the
// plan allows, falling back to the alternative sequence of a
// microheterogeneous chain.
func (c *Context) resolve(l lookup, a Assignment) (seqmap.Residue, bool) {
	chain := l.ps.AuthChainID
	if c.Plan.Has(reparse.LabelSeqScheme, chain) && l.labelOK {
		return l.byLabel, true
	}
	if l.authOK {
		return l.byAuth, true
	}
	if alt, ok := c.Entry.AltPolymer(chain); ok {
		if res, found := seqmap.ByAuth(alt, a.SeqID+l.offset); found &&
			len(a.CompID) > 0 && seqmap.SameComp(res.CompID, a.CompID) &&
			!seqmap.SameComp(l.byAuth.CompID, a.CompID) {

			subject := fmt.Sprintf("%s:%d", chain, res.AuthSeqID)
			if c.Plan.Has(reparse.PreferAltCompID, subject) {
				return res, true
			}
			c.Reason(reparse.PreferAltCompID, subject, res.CompID)
		}
	}
	return seqmap.Residue{}, false
}

// unmatched returns the residue at the author number when the input's
// component differs but the atom belongs to the residue present.
func (c *Context) unmatched(ps *pdbx.PolySeq, a Assignment) (seqmap.Residue, bool) {
	if len(a.CompID) == 0 || len(a.AtomID) == 0 {
		return seqmap.Residue{}, false
	}
	offset, _ := c.Plan.Int(reparse.SeqOffset, ps.AuthChainID)
	res, ok := c.resolver.Canonical(ps.AuthChainID, a.SeqID+offset)
	if !ok {
		return seqmap.Residue{}, false
	}
	if _, err := c.Norm.Normalize(res.CompID, a.AtomID, c.Nomenclature); err != nil {
		return seqmap.Residue{}, false
	}
	return res, true
}

// fits reports whether a residue of type compID is what a names. Without a
// component, the atom name decides.
func (c *Context) fits(compID string, a Assignment) bool {
	if len(a.CompID) > 0 {
		return seqmap.SameComp(compID, a.CompID)
	}
	if len(a.AtomID) == 0 {
		return true
	}
	_, err := c.Norm.Normalize(compID, a.AtomID, c.Nomenclature)
	return err == nil || errors.Is(err, nomenclature.ErrUnknownComponent)
}

func (c *Context) assignNonPolymer(a Assignment) (ChainAssign, bool) {
	if len(a.CompID) == 0 {
		return ChainAssign{}, false
	}
	res, remapped, ok := c.resolver.NonPolymer(a.ChainID, a.SeqID, a.CompID)
	if !ok {
		return ChainAssign{}, false
	}
	if remapped {
		subject := fmt.Sprintf("%s:%d", a.CompID, a.SeqID)
		value := fmt.Sprintf("%s:%d", res.AuthChainID, res.AuthSeqID)
		if !c.Plan.Has(reparse.NonPolyRemap, subject) {
			c.Reason(reparse.NonPolyRemap, subject, value)
			return ChainAssign{}, false
		}
	}
	entity := ""
	for _, np := range c.Entry.NonPolymers {
		if np.LabelChainID == res.LabelChainID && np.AuthSeqID == res.AuthSeqID {
			entity = np.EntityID
		}
	}
	return ChainAssign{res, entity}, true
}
