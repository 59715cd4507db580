package emit

import (
	"strconv"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/shiftstat"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/star"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/validate"
)

type curatorLayout struct {
	sfCategory string // save frame category
	frameTag   string // save frame tag category
	loop       string
	framecode  string
}

var curatorLayouts = map[Category]curatorLayout{
	ChemShift: {"assigned_chemical_shifts", "Assigned_chem_shift_list", "Atom_chem_shift", "assigned_chem_shift_list"},
	Distance:  {"general_distance_constraints", "Gen_dist_constraint_list", "Gen_dist_constraint", "distance_constraint_list"},
	Dihedral:  {"torsion_angle_constraints", "Torsion_angle_constraint_list", "Torsion_angle_constraint", "torsion_angle_constraint_list"},
	RDC:       {"RDC_constraints", "RDC_constraint_list", "RDC_constraint", "RDC_constraint_list"},
	PCS:       {"pseudocontact_shift_constraints", "PCS_constraint_list", "PCS_constraint", "PCS_constraint_list"},
	Peak:      {"spectral_peak_list", "Spectral_peak_list", "Peak_row_format", "spectral_peak_list"},
}

// curatorAtomColumns returns the atom columns of position i of n.
func curatorAtomColumns(n, i int, cat Category, stats shiftstat.Stats) []column {
	s := suffix(n, i)
	atom := func(row Row) Atom { return row.Atoms[i] }
	cols := []column{
		{"Entity_assembly_ID" + s, func(r Row) string { return itoa(atom(r).EntityAssemblyID) }},
		{"Entity_ID" + s, func(r Row) string { return atom(r).EntityID }},
		{"Comp_index_ID" + s, func(r Row) string { return itoa(atom(r).SeqID) }},
		{"Seq_ID" + s, func(r Row) string { return itoa(atom(r).SeqID) }},
		{"Comp_ID" + s, func(r Row) string { return atom(r).CompID }},
		{"Atom_ID" + s, func(r Row) string { return atom(r).AtomID }},
		{"Atom_type" + s, func(r Row) string { return elementOf(atom(r)) }},
	}
	if cat == ChemShift {
		cols = append(cols,
			column{"Atom_isotope_number", func(r Row) string { return isotope(elementOf(atom(r))) }},
			column{"Val", funcVal(validate.TargetValue)},
			column{"Val_err", funcVal(validate.UpperLimit)},
			column{"Ambiguity_code", func(r Row) string { return shiftAmbiguity(atom(r), stats) }},
		)
	} else {
		cols = append(cols, column{"Ambiguity_code" + s, func(r Row) string {
			return itoa(atom(r).Ambiguity)
		}})
	}
	return append(cols,
		column{"Auth_asym_ID" + s, func(r Row) string { return atom(r).AuthChainID }},
		column{"Auth_seq_ID" + s, func(r Row) string { return itoa(atom(r).AuthSeqID) }},
		column{"Auth_comp_ID" + s, func(r Row) string { return atom(r).AuthCompID }},
		column{"Auth_atom_ID" + s, func(r Row) string { return atom(r).AuthAtomID }},
	)
}

// shiftAmbiguity returns the ambiguity code of an assigned chemical shift:
// 1 for a unique assignment, otherwise the largest code the atom allows.
func shiftAmbiguity(a Atom, stats shiftstat.Stats) string {
	if len(a.AtomID) == 0 {
		return ""
	}
	if a.Ambiguity == 0 || stats == nil || a.Asis {
		return strconv.Itoa(shiftstat.AmbigUnique)
	}
	return strconv.Itoa(stats.MaxAmbigCodeWoSetID(a.CompID, a.AtomID))
}

func curatorColumns(l *List, stats shiftstat.Stats) []column {
	n := l.Positions()
	cols := []column{
		{"Index_ID", func(r Row) string { return itoa(r.IndexID) }},
		{"ID", func(r Row) string { return itoa(r.ID) }},
	}
	if l.Category != ChemShift {
		cols = append(cols,
			column{"Combination_ID", func(r Row) string { return itoa(r.CombinationID) }},
			column{"Member_ID", func(r Row) string { return itoa(r.MemberID) }},
			column{"Member_logic_code", func(r Row) string { return r.LogicCode() }},
		)
	}
	if l.Category == Peak {
		for i := 0; i < n; i++ {
			cols = append(cols, column{"Position_" + strconv.Itoa(i+1), func(r Row) string {
				return position(r, i)
			}})
		}
		cols = append(cols,
			column{"Height_val", func(r Row) string { return ftoa(validate.PeakPosition, r.Height) }},
			column{"Volume", func(r Row) string { return ftoa(validate.PeakPosition, r.Volume) }},
		)
	}
	if l.Category == Dihedral {
		cols = append(cols, column{"Torsion_angle_name", func(r Row) string { return r.Name }})
	}
	for i := 0; i < n; i++ {
		cols = append(cols, curatorAtomColumns(n, i, l.Category, stats)...)
	}
	switch l.Category {
	case Distance:
		cols = append(cols,
			column{"Target_val", funcVal(validate.TargetValue)},
			column{"Lower_linear_limit", funcVal(validate.LowerLinearLimit)},
			column{"Distance_lower_bound_val", funcVal(validate.LowerLimit)},
			column{"Distance_upper_bound_val", funcVal(validate.UpperLimit)},
			column{"Upper_linear_limit", funcVal(validate.UpperLinearLimit)},
			column{"Weight", funcVal(validate.Weight)},
		)
	case Dihedral:
		cols = append(cols,
			column{"Angle_target_val", funcVal(validate.TargetValue)},
			column{"Angle_lower_linear_limit", funcVal(validate.LowerLinearLimit)},
			column{"Angle_lower_bound_val", funcVal(validate.LowerLimit)},
			column{"Angle_upper_bound_val", funcVal(validate.UpperLimit)},
			column{"Angle_upper_linear_limit", funcVal(validate.UpperLinearLimit)},
			column{"Weight", funcVal(validate.Weight)},
		)
	case RDC:
		cols = append(cols,
			column{"RDC_val", funcVal(validate.TargetValue)},
			column{"RDC_lower_linear_limit", funcVal(validate.LowerLinearLimit)},
			column{"RDC_lower_bound", funcVal(validate.LowerLimit)},
			column{"RDC_upper_bound", funcVal(validate.UpperLimit)},
			column{"RDC_upper_linear_limit", funcVal(validate.UpperLinearLimit)},
			column{"Weight", funcVal(validate.Weight)},
		)
	case PCS:
		cols = append(cols,
			column{"PCS_val", funcVal(validate.TargetValue)},
			column{"PCS_lower_bound", funcVal(validate.LowerLimit)},
			column{"PCS_upper_bound", funcVal(validate.UpperLimit)},
			column{"Weight", funcVal(validate.Weight)},
		)
	}
	listTag := curatorLayouts[l.Category].frameTag + "_ID"
	if l.Category == ChemShift {
		listTag = "Assigned_chem_shift_list_ID"
	}
	id := strconv.Itoa(l.ID)
	return append(cols, column{listTag, func(Row) string { return id }})
}

func addCuratorList(doc *star.Document, entryID string, l *List, stats shiftstat.Stats) {
	lay := curatorLayouts[l.Category]
	f := doc.Frame(lay.framecode+"_"+strconv.Itoa(l.ID), lay.frameTag)
	f.Add("Sf_category", lay.sfCategory)
	f.Add("Sf_framecode", f.Name)
	f.Add("Entry_ID", entryID)
	f.Add("ID", strconv.Itoa(l.ID))
	f.Add("Data_file_name", l.Name)
	switch l.Category {
	case Distance:
		f.Add("Constraint_type", "NOE")
	case Peak:
		f.Add("Number_of_spectral_dimensions", strconv.Itoa(len(l.Dims)))
		dims := f.Loop("Spectral_dim", "ID", "Atom_type", "Atom_isotope_number",
			"Spectral_region", "Sweep_width", "Sweep_width_units",
			"Under_sampling_type", "Acquisition", "Spectral_peak_list_ID")
		for _, d := range l.Dims {
			width := ""
			if d.Width > 0 {
				width = ftoa(validate.PeakPosition, d.Width)
			}
			dims.Append(strconv.Itoa(d.ID), d.AtomType, itoa(d.Isotope),
				d.AxisCode, width, "ppm", d.UnderSampling,
				yesNo(d.Acquisition), strconv.Itoa(l.ID))
		}
	}
	addLoop(f, lay.loop, curatorColumns(l, stats), l.Rows())
}

func addLoop(f *star.Frame, category string, cols []column, rows []Row) {
	tags := make([]string, len(cols))
	for i, c := range cols {
		tags[i] = c.tag
	}
	lp := f.Loop(category, tags...)
	for _, row := range rows {
		vals := make([]string, len(cols))
		for i, c := range cols {
			vals[i] = c.val(row)
		}
		lp.Append(vals...)
	}
}
