package emit

import (
	"strconv"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/spectral"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/validate"
)

// column is one column of an output loop.
type column struct {
	tag string
	val func(row Row) string
}

func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func ftoa(c validate.Class, v float64) string {
	if validate.IsMissing(v) {
		return ""
	}
	return validate.Format(c, v)
}

func funcVal(k validate.Key) func(Row) string {
	return func(row Row) string { return row.Func[k] }
}

// suffix returns "_i" for multi-position loops.
func suffix(n, i int) string {
	if n == 1 {
		return ""
	}
	return "_" + strconv.Itoa(i+1)
}

var isotopes = map[string]int{"H": 1, "C": 13, "N": 15, "P": 31, "F": 19, "D": 2}

func isotope(element string) string {
	return itoa(isotopes[element])
}

func elementOf(a Atom) string {
	if len(a.Element) > 0 {
		return a.Element
	}
	if len(a.AtomID) > 0 {
		return a.AtomID[:1]
	}
	return ""
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

var nefFolding = map[string]string{
	spectral.NotObserved: "none",
	spectral.Aliased:     "mirror",
	spectral.Folded:      "circular",
}

func position(r Row, i int) string {
	if i >= len(r.Positions) {
		return ""
	}
	return ftoa(validate.PeakPosition, r.Positions[i])
}
