package nomenclature

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/chemcomp"
)

// Ambiguity codes.
const (
	AmbigNone     = 0
	AmbigWildcard = 1
	AmbigStereo   = 2
)

// Nomenclature identifies the naming convention of an input.
type Nomenclature int

const (
	Curator Nomenclature = iota
	Community
	XPLOR
	CYANA
	Rosetta
	Sparky
	XEASY
	BIOSYM
)

var nomenclatureNames = []string{
	Curator:   "curator",
	Community: "community",
	XPLOR:     "XPLOR-NIH",
	CYANA:     "CYANA",
	Rosetta:   "ROSETTA",
	Sparky:    "SPARKY",
	XEASY:     "XEASY",
	BIOSYM:    "BIOSYM",
}

func (n Nomenclature) String() string {
	if n < 0 || int(n) >= len(nomenclatureNames) {
		return fmt.Sprintf("Nomenclature(%d)", int(n))
	}
	return nomenclatureNames[n]
}

var (
	// ErrUnknownNomenclature is returned when an atom name cannot be
	// mapped onto the atoms of its residue.
	ErrUnknownNomenclature = errors.New("unknown nomenclature")

	// ErrUnknownComponent is returned when the residue type itself is not
	// in the dictionary.
	ErrUnknownComponent = errors.New("unknown residue type")
)

// Result is a normalized atom name.
type Result struct {
	// The author's name, upper cased, with wildcards and selectors intact.
	Base string

	// Dictionary atoms, sorted by name.
	Atoms []string

	Ambiguity int
}

// Normalizer normalizes atom names against a component dictionary.
type Normalizer struct {
	Dict chemcomp.Dictionary
}

// New returns a normalizer over dict.
func New(dict chemcomp.Dictionary) *Normalizer {
	return &Normalizer{Dict: dict}
}

// Normalize maps raw, an atom name of residue type compID written in
// nomenclature nom, to dictionary atoms.
func (n *Normalizer) Normalize(compID, raw string, nom Nomenclature) (Result, error) {
	base := strings.ToUpper(strings.Trim(strings.TrimSpace(raw), `"`))
	res := Result{Base: base}
	c, ok := n.Dict.Component(compID)
	if !ok {
		return res, fmt.Errorf("%w: %s", ErrUnknownComponent, compID)
	}
	if len(base) == 0 {
		return res, fmt.Errorf("%w: empty atom name", ErrUnknownNomenclature)
	}

	if atoms, amb, ok := normalize(c, base, nom); ok {
		sort.Strings(atoms)
		res.Atoms, res.Ambiguity = atoms, amb
		return res, nil
	}
	return res, fmt.Errorf("%w: %s %s (%s)", ErrUnknownNomenclature,
		c.ID, raw, nom)
}

func normalize(c *chemcomp.Component, name string, nom Nomenclature) ([]string, int, bool) {
	if c.Has(name) {
		return []string{name}, AmbigNone, true
	}
	if a, ok := alias(c, name); ok {
		return []string{a}, AmbigNone, true
	}

	stem := strings.TrimRight(name, "%*#")
	wild := len(stem) < len(name)
	if len(stem) == 0 {
		return nil, 0, false
	}
	if last := stem[len(stem)-1]; len(stem) > 1 && (last == 'X' || last == 'Y') {
		if atoms := stereo(c, stem[:len(stem)-1], last == 'X'); atoms != nil {
			return atoms, AmbigStereo, true
		}
	}
	if wild {
		if atoms := family(c, stem); atoms != nil {
			return atoms, AmbigWildcard, true
		}
		return nil, 0, false
	}
	if atoms := pseudo(c, stem); atoms != nil {
		return atoms, AmbigWildcard, true
	}
	if atoms := group(c, stem); atoms != nil {
		return atoms, AmbigWildcard, true
	}
	return nil, 0, false
}

// alias handles legacy and program specific spellings of single atoms.
func alias(c *chemcomp.Component, name string) (string, bool) {
	try := func(candidates ...string) (string, bool) {
		for _, a := range candidates {
			if c.Has(a) {
				return a, true
			}
		}
		return "", false
	}
	switch name {
	case "HN", "H1", "HT1":
		return try("H")
	case "HT2":
		return try("H2")
	case "OT1", "O1", "O'":
		return try("O")
	case "OT2", "O2", "O''", "OT":
		return try("OXT")
	}
	if c.IsNucleotide() {
		// Old prime notation: C1* -> C1', H2'1 -> H2', H2'2 -> H2''.
		if strings.HasSuffix(name, "*") {
			if a, ok := try(strings.Replace(name, "*", "'", -1)); ok {
				return a, true
			}
		}
		switch {
		case strings.HasSuffix(name, "'1"):
			return try(name[:len(name)-1])
		case strings.HasSuffix(name, "'2"):
			return try(name[:len(name)-1] + "'")
		case name == "HO'2":
			return try("HO2'")
		case name == "H5T":
			return try("HO5'")
		case name == "H3T":
			return try("HO3'")
		}
	}
	// PDB version 2 names put the proton number first: 1HB, 2HD1.
	if len(name) > 2 && name[0] >= '1' && name[0] <= '9' {
		name = name[1:] + name[:1]
		if c.Has(name) {
			return name, true
		}
	}
	// Methylene protons numbered 1 and 2 instead of 2 and 3.
	if strings.HasSuffix(name, "1") && len(name) > 2 {
		prefix := name[:len(name)-1]
		p2, ok2 := c.Parent(prefix + "2")
		p3, ok3 := c.Parent(prefix + "3")
		if ok2 && ok3 && p2 == p3 {
			return prefix + "3", true
		}
	}
	return "", false
}

// family returns every non-leaving atom whose name starts with prefix.
func family(c *chemcomp.Component, prefix string) []string {
	var atoms []string
	for _, a := range c.Atoms {
		if strings.HasPrefix(a.ID, prefix) && (!a.Leaving || a.ID == prefix) {
			atoms = append(atoms, a.ID)
		}
	}
	return atoms
}

// digitGroups splits the atoms named prefix + digit + ... by that digit.
func digitGroups(c *chemcomp.Component, prefix string) (keys []byte, groups map[byte][]string) {
	groups = make(map[byte][]string)
	for _, a := range c.Atoms {
		if a.Leaving || len(a.ID) <= len(prefix) || !strings.HasPrefix(a.ID, prefix) {
			continue
		}
		d := a.ID[len(prefix)]
		if d < '0' || d > '9' {
			continue
		}
		if _, ok := groups[d]; !ok {
			keys = append(keys, d)
		}
		groups[d] = append(groups[d], a.ID)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys, groups
}

// stereo resolves the x (lower) or y (higher) member of the prochiral pair
// named by prefix.
func stereo(c *chemcomp.Component, prefix string, x bool) []string {
	keys, groups := digitGroups(c, prefix)
	if len(keys) != 2 {
		return nil
	}
	if x {
		return groups[keys[0]]
	}
	return groups[keys[1]]
}

// pseudo expands pseudo atoms: QB, MG1, QQD, QR.
func pseudo(c *chemcomp.Component, name string) []string {
	if len(name) < 2 || (name[0] != 'Q' && name[0] != 'M') {
		return nil
	}
	if name == "QR" {
		return ring(c)
	}
	rest := name[1:]
	if name[0] == 'Q' && strings.HasPrefix(rest, "Q") {
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return nil
	}
	atoms := family(c, "H"+rest)
	var hs []string
	for _, a := range atoms {
		if c.Element(a) == "H" {
			hs = append(hs, a)
		}
	}
	if len(hs) < 2 {
		return nil
	}
	return hs
}

// ring returns the protons of an aromatic ring.
func ring(c *chemcomp.Component) []string {
	var hs []string
	for _, a := range c.Atoms {
		if a.TypeSymbol != "H" {
			continue
		}
		p, _ := c.Parent(a.ID)
		switch p {
		case "CD1", "CD2", "CE1", "CE2", "CZ":
			if c.ID == "PHE" || c.ID == "TYR" {
				hs = append(hs, a.ID)
			}
		}
	}
	return hs
}

// group expands a bare group name, e.g. HB on ALA or HD1 on LEU.
func group(c *chemcomp.Component, name string) []string {
	keys, groups := digitGroups(c, name)
	if len(keys) < 2 {
		return nil
	}
	var atoms []string
	for _, k := range keys {
		atoms = append(atoms, groups[k]...)
	}
	return atoms
}

// ValidStarAtom normalizes raw as a curator style name. details describes
// a failure and is empty on success.
func (n *Normalizer) ValidStarAtom(compID, raw string) (atoms []string, ambiguity int, details string) {
	res, err := n.Normalize(compID, raw, Curator)
	if err != nil {
		return nil, 0, err.Error()
	}
	return res.Atoms, res.Ambiguity, ""
}

// ValidateCompAtom reports whether atomID is an atom of compID.
func (n *Normalizer) ValidateCompAtom(compID, atomID string) bool {
	c, ok := n.Dict.Component(compID)
	return ok && c.Has(atomID)
}

// Validator is the pair of nomenclature checks the rest of the translator
// depends on.
type Validator interface {
	ValidStarAtom(compID, raw string) (atoms []string, ambiguity int, details string)
	ValidateCompAtom(compID, atomID string) bool
}
