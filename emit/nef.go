package emit

import (
	"strconv"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/star"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/validate"
)

type nefLayout struct {
	frameTag  string
	loop      string
	framecode string
}

// NEF has no pseudocontact shift category; PCS lists use the restraint
// layout under nef_pcs_restraint.
var nefLayouts = map[Category]nefLayout{
	ChemShift: {"nef_chemical_shift_list", "nef_chemical_shift", "nef_chemical_shift_list"},
	Distance:  {"nef_distance_restraint_list", "nef_distance_restraint", "nef_distance_restraint_list"},
	Dihedral:  {"nef_dihedral_restraint_list", "nef_dihedral_restraint", "nef_dihedral_restraint_list"},
	RDC:       {"nef_rdc_restraint_list", "nef_rdc_restraint", "nef_rdc_restraint_list"},
	PCS:       {"nef_pcs_restraint_list", "nef_pcs_restraint", "nef_pcs_restraint_list"},
	Peak:      {"nef_nmr_spectrum", "nef_peak", "nef_nmr_spectrum"},
}

func nefAtomColumns(n, i int) []column {
	s := suffix(n, i)
	atom := func(row Row) Atom { return row.Atoms[i] }
	return []column{
		{"chain_code" + s, func(r Row) string { return atom(r).ChainID }},
		{"sequence_code" + s, func(r Row) string { return itoa(atom(r).SeqID) }},
		{"residue_name" + s, func(r Row) string { return atom(r).CompID }},
		{"atom_name" + s, func(r Row) string { return atom(r).AtomID }},
	}
}

var nefRestraintValues = []column{
	{"weight", funcVal(validate.Weight)},
	{"target_value", funcVal(validate.TargetValue)},
	{"target_value_uncertainty", func(Row) string { return "" }},
	{"lower_linear_limit", funcVal(validate.LowerLinearLimit)},
	{"lower_limit", funcVal(validate.LowerLimit)},
	{"upper_limit", funcVal(validate.UpperLimit)},
	{"upper_linear_limit", funcVal(validate.UpperLinearLimit)},
}

func nefColumns(l *List) []column {
	n := l.Positions()
	var cols []column
	switch l.Category {
	case ChemShift:
		cols = append(nefAtomColumns(1, 0),
			column{"value", funcVal(validate.TargetValue)},
			column{"value_uncertainty", funcVal(validate.UpperLimit)},
			column{"element", func(r Row) string { return elementOf(r.Atoms[0]) }},
			column{"isotope_number", func(r Row) string { return isotope(elementOf(r.Atoms[0])) }},
		)
		return cols
	case Peak:
		cols = []column{
			{"index", func(r Row) string { return itoa(r.IndexID) }},
			{"peak_id", func(r Row) string { return itoa(r.ID) }},
			{"volume", func(r Row) string { return ftoa(validate.PeakPosition, r.Volume) }},
			{"volume_uncertainty", func(Row) string { return "" }},
			{"height", func(r Row) string { return ftoa(validate.PeakPosition, r.Height) }},
			{"height_uncertainty", func(Row) string { return "" }},
		}
		for i := 0; i < n; i++ {
			cols = append(cols,
				column{"position_" + strconv.Itoa(i+1), func(r Row) string { return position(r, i) }},
				column{"position_uncertainty_" + strconv.Itoa(i+1), func(Row) string { return "" }},
			)
		}
		for i := 0; i < n; i++ {
			cols = append(cols, nefAtomColumns(n, i)...)
		}
		return cols
	}
	cols = []column{
		{"index", func(r Row) string { return itoa(r.IndexID) }},
		{"restraint_id", func(r Row) string { return itoa(r.ID) }},
		{"restraint_combination_id", func(r Row) string { return itoa(r.CombinationID) }},
	}
	for i := 0; i < n; i++ {
		cols = append(cols, nefAtomColumns(n, i)...)
	}
	cols = append(cols, nefRestraintValues...)
	if l.Category == Dihedral {
		cols = append(cols, column{"name", func(r Row) string { return r.Name }})
	}
	return cols
}

func addCommunityList(doc *star.Document, l *List) {
	lay := nefLayouts[l.Category]
	f := doc.Frame(lay.framecode+"_"+strconv.Itoa(l.ID), lay.frameTag)
	f.Add("sf_category", lay.frameTag)
	f.Add("sf_framecode", f.Name)
	switch l.Category {
	case ChemShift:
	case Peak:
		f.Add("num_dimensions", strconv.Itoa(len(l.Dims)))
		f.Add("chemical_shift_list", "")
		dims := f.Loop("nef_spectrum_dimension", "dimension_id", "axis_unit",
			"axis_code", "spectral_width", "folding", "is_acquisition")
		for _, d := range l.Dims {
			width := ""
			if d.Width > 0 {
				width = ftoa(validate.PeakPosition, d.Width)
			}
			dims.Append(strconv.Itoa(d.ID), "ppm", d.AxisCode, width,
				nefFolding[d.UnderSampling], boolStr(d.Acquisition))
		}
	default:
		f.Add("potential_type", potentialType(l.Category))
		f.Add("restraint_origin", restraintOrigin(l.Category))
	}
	addLoop(f, lay.loop, nefColumns(l), l.Rows())
}

func potentialType(c Category) string {
	if c == Dihedral {
		return "square-well-parabolic"
	}
	return "undefined"
}

func restraintOrigin(c Category) string {
	switch c {
	case Distance:
		return "noe"
	case RDC:
		return "measured"
	}
	return ""
}
