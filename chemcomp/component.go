package chemcomp

import (
	"sort"
	"strings"

	"github.com/TuftsBCB/seq"
)

// Component types, as in chem_comp.type.
const (
	TypePeptide    = "L-PEPTIDE LINKING"
	TypeDNA        = "DNA LINKING"
	TypeRNA        = "RNA LINKING"
	TypeNonPolymer = "NON-POLYMER"
)

// Atom is a single atom of a component.
type Atom struct {
	ID         string
	TypeSymbol string
	Leaving    bool
}

// Bond is a covalent bond between two atoms of a component.
type Bond struct {
	Atom1, Atom2 string
	Order        string
}

// Component is the definition of a residue type.
type Component struct {
	ID        string
	Type      string
	OneLetter seq.Residue
	Atoms     []Atom
	Bonds     []Bond

	index     map[string]int
	neighbors map[string][]string
}

// Dictionary looks up component definitions by their identifier.
type Dictionary interface {
	Component(compID string) (*Component, bool)
}

// finish builds the lookup tables of c. It must be called before c is
// shared.
func (c *Component) finish() *Component {
	c.index = make(map[string]int, len(c.Atoms))
	for i, a := range c.Atoms {
		c.index[a.ID] = i
	}
	c.neighbors = make(map[string][]string, len(c.Atoms))
	for _, b := range c.Bonds {
		c.neighbors[b.Atom1] = append(c.neighbors[b.Atom1], b.Atom2)
		c.neighbors[b.Atom2] = append(c.neighbors[b.Atom2], b.Atom1)
	}
	return c
}

// Has reports whether atomID is an atom of c.
func (c *Component) Has(atomID string) bool {
	_, ok := c.index[atomID]
	return ok
}

// Atom returns the atom named atomID.
func (c *Component) Atom(atomID string) (Atom, bool) {
	i, ok := c.index[atomID]
	if !ok {
		return Atom{}, false
	}
	return c.Atoms[i], true
}

// AtomIDs returns the atom names of c in definition order.
func (c *Component) AtomIDs() []string {
	ids := make([]string, len(c.Atoms))
	for i, a := range c.Atoms {
		ids[i] = a.ID
	}
	return ids
}

// Element returns the element symbol of atomID, or "" if there is no such
// atom.
func (c *Component) Element(atomID string) string {
	a, ok := c.Atom(atomID)
	if !ok {
		return ""
	}
	return a.TypeSymbol
}

// Bonded reports whether a and b are covalently bonded.
func (c *Component) Bonded(a, b string) bool {
	for _, n := range c.neighbors[a] {
		if n == b {
			return true
		}
	}
	return false
}

// Neighbors returns the atoms bonded to atomID.
func (c *Component) Neighbors(atomID string) []string {
	return c.neighbors[atomID]
}

// Hydrogens returns the hydrogens bonded to atomID, sorted by name.
func (c *Component) Hydrogens(atomID string) []string {
	var hs []string
	for _, n := range c.neighbors[atomID] {
		if c.Element(n) == "H" {
			hs = append(hs, n)
		}
	}
	sort.Strings(hs)
	return hs
}

// Parent returns the heavy atom a hydrogen is bonded to.
func (c *Component) Parent(hydrogen string) (string, bool) {
	for _, n := range c.neighbors[hydrogen] {
		if c.Element(n) != "H" {
			return n, true
		}
	}
	return "", false
}

// IsMethyl reports whether atomID is a carbon carrying three hydrogens.
func (c *Component) IsMethyl(atomID string) bool {
	return c.Element(atomID) == "C" && len(c.Hydrogens(atomID)) == 3
}

// IsPolymer reports whether c links into a polypeptide or a nucleic acid.
func (c *Component) IsPolymer() bool {
	return c.IsPeptide() || c.IsNucleotide()
}

// IsPeptide reports whether c is an amino acid.
func (c *Component) IsPeptide() bool {
	return strings.Contains(c.Type, "PEPTIDE")
}

// IsNucleotide reports whether c is a DNA or RNA residue.
func (c *Component) IsNucleotide() bool {
	return strings.Contains(c.Type, "DNA") || strings.Contains(c.Type, "RNA")
}
