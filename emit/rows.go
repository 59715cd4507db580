package emit

// Row is one output row: a record with one atom per position.
type Row struct {
	*Record

	// 1 based. CombinationID is 0 when the record has a single
	// combination.
	CombinationID int
	MemberID      int

	// Number of rows of the record.
	Members int

	// One atom per position. An unassigned position holds the zero Atom.
	Atoms []Atom
}

// Rows expands the record into rows: the cartesian product of its
// selections, one combination after the other.
func (r *Record) Rows() []Row {
	var rows []Row
	for ci, comb := range r.Combinations {
		cid := 0
		if len(r.Combinations) > 1 {
			cid = ci + 1
		}
		product(comb, func(atoms []Atom) {
			rows = append(rows, Row{
				Record:        r,
				CombinationID: cid,
				MemberID:      len(rows) + 1,
				Atoms:         atoms,
			})
		})
	}
	for i := range rows {
		rows[i].Members = len(rows)
	}
	return rows
}

// Rows expands every record of the list.
func (l *List) Rows() []Row {
	var rows []Row
	for _, r := range l.Records {
		rows = append(rows, r.Rows()...)
	}
	return rows
}

// product calls f for every choice of one atom per selection. Empty
// selections contribute the zero Atom.
func product(comb Combination, f func([]Atom)) {
	cur := make([]Atom, len(comb))
	var rec func(i int)
	rec = func(i int) {
		if i == len(comb) {
			f(append([]Atom(nil), cur...))
			return
		}
		if len(comb[i]) == 0 {
			cur[i] = Atom{}
			rec(i + 1)
			return
		}
		for _, a := range comb[i] {
			cur[i] = a
			rec(i + 1)
		}
	}
	rec(0)
}

// LogicCode returns "OR" for rows of a record with several members.
func (row Row) LogicCode() string {
	if row.Members > 1 {
		return "OR"
	}
	return ""
}
