package emit

import (
	"math"
	"sort"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/spectral"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/validate"
)

// Category is the kind of data a list holds.
type Category int

const (
	ChemShift Category = iota
	Distance
	Dihedral
	RDC
	PCS
	Peak
)

var categoryNames = []string{
	ChemShift: "chemical shift",
	Distance:  "distance",
	Dihedral:  "dihedral angle",
	RDC:       "RDC",
	PCS:       "PCS",
	Peak:      "peak",
}

func (c Category) String() string {
	return categoryNames[c]
}

// Positions returns the number of atom positions of a row, or 0 for peak
// lists, where it is the number of dimensions.
func (c Category) Positions() int {
	switch c {
	case ChemShift, PCS:
		return 1
	case Distance, RDC:
		return 2
	case Dihedral:
		return 4
	}
	return 0
}

// Atom is a resolved atom. The label identifiers (ChainID, SeqID) and
// CompID/AtomID are those of the coordinate model; the Auth fields are
// what the input file said.
type Atom struct {
	EntityAssemblyID int
	EntityID         string
	ChainID          string
	SeqID            int
	CompID           string
	AtomID           string
	Element          string

	AuthChainID string
	AuthSeqID   int
	AuthCompID  string
	AuthAtomID  string

	// Nomenclature ambiguity of the name the atom was selected by.
	Ambiguity int

	// Set for atoms taken as given, without a coordinate match.
	Asis bool
}

// Selection is the set of atoms one atom position of a record resolves
// to.
type Selection []Atom

// Combination is one alternative of a record: a selection per position.
type Combination []Selection

// Record is one restraint, shift or peak.
type Record struct {
	// Position in the list, starting at 1. Set by List.Add.
	IndexID int

	// Restraint identifier given by the input, or IndexID.
	ID int

	// Alternatives joined by OR. Almost every record has exactly one.
	Combinations []Combination

	Func validate.Func

	// Dihedral angle name, e.g. PHI.
	Name string

	// Peak positions, one per dimension, and intensities. Missing values
	// are NaN.
	Positions []float64
	Height    float64
	Volume    float64

	Details string
}

// NewRecord returns a record with a single combination of the given
// selections.
func NewRecord(id int, sels ...Selection) *Record {
	return &Record{
		ID:           id,
		Combinations: []Combination{sels},
		Func:         validate.Func{},
		Height:       math.NaN(),
		Volume:       math.NaN(),
	}
}

// List is a list of records of one category.
type List struct {
	// Unique within an output document.
	ID       int
	Category Category

	// Name of the input the list came from.
	Name string

	Records []*Record

	// Spectral dimensions of a peak list.
	Dims []*spectral.Dim
}

// NewList returns an empty list.
func NewList(id int, cat Category, name string) *List {
	return &List{ID: id, Category: cat, Name: name}
}

// Add appends r, numbering it and sorting the atoms of each selection.
func (l *List) Add(r *Record) {
	r.IndexID = len(l.Records) + 1
	if r.ID == 0 {
		r.ID = r.IndexID
	}
	for _, comb := range r.Combinations {
		for _, sel := range comb {
			sel.sort()
		}
	}
	l.Records = append(l.Records, r)
}

// Len returns the number of records.
func (l *List) Len() int {
	return len(l.Records)
}

// Positions returns the number of atom positions of the list's rows.
func (l *List) Positions() int {
	if l.Category == Peak {
		return len(l.Dims)
	}
	return l.Category.Positions()
}

// sort orders atoms by residue, then by name.
func (s Selection) sort() {
	sort.SliceStable(s, func(i, j int) bool {
		a, b := s[i], s[j]
		if a.ChainID != b.ChainID {
			return a.ChainID < b.ChainID
		}
		if a.SeqID != b.SeqID {
			return a.SeqID < b.SeqID
		}
		return a.AtomID < b.AtomID
	})
}
