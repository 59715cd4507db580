package pdbx

import (
	"sort"

	"github.com/BurntSushi/cif"
	"github.com/TuftsBCB/seq"
	"github.com/TuftsBCB/structure"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/chemcomp"
)

// Entry is the part of a PDBx/mmCIF data block that restraint translation
// needs: polymer and non-polymer sequences under both numbering schemes,
// the atoms of the representative model and the residues without
// coordinates. An Entry is read once and never modified afterwards, so it
// may be shared freely between goroutines.
type Entry struct {
	// The underlying CIF data block. It is nil for entries built with
	// NewEntry.
	CIF *cif.DataBlock

	// The PDB identifier, e.g. "2la6".
	Id string

	// Corresponds to "struct.title".
	Title string

	// Polymer chains in the order of pdbx_poly_seq_scheme.
	Polymers []*PolySeq

	// Micro-heterogeneity: for each polymer chain with alternative residues,
	// a sequence carrying the alternative component at the affected
	// positions (and the regular component elsewhere).
	AltPolymers []*PolySeq

	// Non-polymer residues in the order of pdbx_nonpoly_scheme.
	NonPolymers []*NonPoly

	// Residues listed in pdbx_unobs_or_zero_occ_residues.
	Unobserved []ResidueKey

	// Number of models in atom_site. Only the first one is kept.
	NumModels int

	sites      map[ResidueKey]*Site
	siteOrder  []ResidueKey
	unobserved map[ResidueKey]bool
	assembly   map[string]int
}

// ResidueKey identifies a residue by author chain and author sequence
// number.
type ResidueKey struct {
	Chain string
	Seq   int
}

// PolySeq is a polymer chain. The slices are parallel.
type PolySeq struct {
	EntityID     string
	AuthChainID  string
	LabelChainID string
	AuthSeqIDs   []int
	LabelSeqIDs  []int
	CompIDs      []string
	AuthCompIDs  []string

	auth  map[int]int
	label map[int]int
}

// NonPoly is a non-polymer residue.
type NonPoly struct {
	EntityID     string
	AuthChainID  string
	LabelChainID string
	AuthSeqID    int
	CompID       string
}

// Site is the set of atoms of one residue of the representative model.
type Site struct {
	ResidueKey
	CompID       string
	LabelChainID string
	LabelSeqID   int // 0 for non-polymers
	Atoms        []Atom

	// Atoms of the other components of a microheterogeneous residue, by
	// component. Atoms of Atoms without an AltID are shared with them.
	Alt map[string][]Atom
}

// AtomsOf returns the atoms of the residue as component compID.
func (s *Site) AtomsOf(compID string) []Atom {
	own, ok := s.Alt[compID]
	if !ok {
		return s.Atoms
	}
	var atoms []Atom
	for _, a := range s.Atoms {
		if len(a.AltID) == 0 {
			atoms = append(atoms, a)
		}
	}
	return append(atoms, own...)
}

// Atom is a single atom site.
type Atom struct {
	Name    string
	Element string
	AltID   string // label_alt_id, empty when there is none
	structure.Coords
}

// NewEntry builds an entry from already assembled parts.
func NewEntry(id string, polymers []*PolySeq, nonPolymers []*NonPoly, sites []*Site) *Entry {
	e := &Entry{Id: id, Polymers: polymers, NonPolymers: nonPolymers, NumModels: 1}
	e.sites = make(map[ResidueKey]*Site, len(sites))
	for _, s := range sites {
		e.sites[s.ResidueKey] = s
	}
	e.index()
	return e
}

// MarkUnobserved adds residues to the unobserved list of an entry built
// with NewEntry. It must not be called once the entry is shared.
func (e *Entry) MarkUnobserved(keys ...ResidueKey) {
	e.Unobserved = append(e.Unobserved, keys...)
	for _, k := range keys {
		e.unobserved[k] = true
	}
}

// AddAltPolymer adds the alternative chain of a microheterogeneous polymer
// to an entry built with NewEntry. It must not be called once the entry is
// shared.
func (e *Entry) AddAltPolymer(ps *PolySeq) {
	ps.index()
	e.AltPolymers = append(e.AltPolymers, ps)
}

// index builds the lookup tables. It must run before the entry is shared.
func (e *Entry) index() {
	for _, ps := range append(append([]*PolySeq{}, e.Polymers...), e.AltPolymers...) {
		ps.index()
	}
	if e.sites == nil {
		e.sites = make(map[ResidueKey]*Site)
	}
	e.unobserved = make(map[ResidueKey]bool, len(e.Unobserved))
	for _, k := range e.Unobserved {
		e.unobserved[k] = true
	}
	e.assembly = make(map[string]int)
	next := 1
	add := func(label string) {
		if _, ok := e.assembly[label]; !ok && len(label) > 0 {
			e.assembly[label] = next
			next++
		}
	}
	for _, ps := range e.Polymers {
		add(ps.LabelChainID)
	}
	for _, np := range e.NonPolymers {
		add(np.LabelChainID)
	}
}

func (ps *PolySeq) index() {
	ps.auth = make(map[int]int, len(ps.AuthSeqIDs))
	ps.label = make(map[int]int, len(ps.LabelSeqIDs))
	for i := range ps.CompIDs {
		if _, ok := ps.auth[ps.AuthSeqIDs[i]]; !ok {
			ps.auth[ps.AuthSeqIDs[i]] = i
		}
		if _, ok := ps.label[ps.LabelSeqIDs[i]]; !ok {
			ps.label[ps.LabelSeqIDs[i]] = i
		}
	}
	if ps.AuthCompIDs == nil {
		ps.AuthCompIDs = ps.CompIDs
	}
}

// AuthIndex returns the position of the residue with author number seq.
func (ps *PolySeq) AuthIndex(seq int) (int, bool) {
	i, ok := ps.auth[seq]
	return i, ok
}

// LabelIndex returns the position of the residue with label number seq.
func (ps *PolySeq) LabelIndex(seq int) (int, bool) {
	i, ok := ps.label[seq]
	return i, ok
}

// Len returns the number of residues.
func (ps *PolySeq) Len() int {
	return len(ps.CompIDs)
}

// Residues returns the chain as one letter codes.
func (ps *PolySeq) Residues() []seq.Residue {
	return chemcomp.Sequence(ps.CompIDs)
}

// PolymerSequence returns the polymer chains.
func (e *Entry) PolymerSequence() []*PolySeq {
	return e.Polymers
}

// AltPolymerSequence returns the alternative polymer chains.
func (e *Entry) AltPolymerSequence() []*PolySeq {
	return e.AltPolymers
}

// Polymer returns the polymer chain with the given author chain id.
func (e *Entry) Polymer(authChain string) (*PolySeq, bool) {
	for _, ps := range e.Polymers {
		if ps.AuthChainID == authChain {
			return ps, true
		}
	}
	return nil, false
}

// PolymerByLabel returns the polymer chain with the given label chain id.
func (e *Entry) PolymerByLabel(labelChain string) (*PolySeq, bool) {
	for _, ps := range e.Polymers {
		if ps.LabelChainID == labelChain {
			return ps, true
		}
	}
	return nil, false
}

// AltPolymer returns the alternative chain for an author chain id.
func (e *Entry) AltPolymer(authChain string) (*PolySeq, bool) {
	for _, ps := range e.AltPolymers {
		if ps.AuthChainID == authChain {
			return ps, true
		}
	}
	return nil, false
}

// LabelToAuth translates a label residue id to an author residue id.
func (e *Entry) LabelToAuth(labelChain string, labelSeq int) (string, int, bool) {
	ps, ok := e.PolymerByLabel(labelChain)
	if !ok {
		return "", 0, false
	}
	i, ok := ps.LabelIndex(labelSeq)
	if !ok {
		return "", 0, false
	}
	return ps.AuthChainID, ps.AuthSeqIDs[i], true
}

// AuthToLabel translates an author residue id to a label residue id.
func (e *Entry) AuthToLabel(authChain string, authSeq int) (string, int, bool) {
	ps, ok := e.Polymer(authChain)
	if !ok {
		return "", 0, false
	}
	i, ok := ps.AuthIndex(authSeq)
	if !ok {
		return "", 0, false
	}
	return ps.LabelChainID, ps.LabelSeqIDs[i], true
}

// AtomSite returns the atoms of a residue of the representative model.
func (e *Entry) AtomSite(authChain string, authSeq int) (*Site, bool) {
	s, ok := e.sites[ResidueKey{authChain, authSeq}]
	return s, ok
}

// Atom returns a single atom of a residue.
func (e *Entry) Atom(authChain string, authSeq int, name string) (Atom, bool) {
	s, ok := e.AtomSite(authChain, authSeq)
	if !ok {
		return Atom{}, false
	}
	for _, a := range s.Atoms {
		if a.Name == name {
			return a, true
		}
	}
	return Atom{}, false
}

// HasAtom reports whether the representative model has the atom.
func (e *Entry) HasAtom(authChain string, authSeq int, name string) bool {
	_, ok := e.Atom(authChain, authSeq, name)
	return ok
}

// AtomNames returns the atom names of a residue, sorted.
func (e *Entry) AtomNames(authChain string, authSeq int) []string {
	s, ok := e.AtomSite(authChain, authSeq)
	if !ok {
		return nil
	}
	names := make([]string, len(s.Atoms))
	for i, a := range s.Atoms {
		names[i] = a.Name
	}
	sort.Strings(names)
	return names
}

// IsUnobserved reports whether a residue is listed as unobserved or with
// zero occupancy.
func (e *Entry) IsUnobserved(authChain string, authSeq int) bool {
	return e.unobserved[ResidueKey{authChain, authSeq}]
}

// UnobservedResidues returns the residues without coordinates.
func (e *Entry) UnobservedResidues() []ResidueKey {
	return e.Unobserved
}

// EntityAssemblyID returns the 1-based ordinal of a label chain: polymer
// chains first, then non-polymer chains. It is 0 for unknown chains.
func (e *Entry) EntityAssemblyID(labelChain string) int {
	return e.assembly[labelChain]
}

// LabelChain returns the label chain with the given ordinal.
func (e *Entry) LabelChain(entityAssemblyID int) (string, bool) {
	for c, id := range e.assembly {
		if id == entityAssemblyID {
			return c, true
		}
	}
	return "", false
}
