package sparky

import (
	"regexp"
	"strings"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/syntax"
)

// Rules of the tree built by Parse. A peak list node holds its header
// tokens; each peak node holds the tokens of one line.
const (
	RuleFile      = "file"
	RulePeakList  = "peak_list"
	RulePeak      = "peak"
	RuleShiftList = "shift_list"
	RuleShift     = "shift"
)

var matchDim = regexp.MustCompile(`^[wW][1-4]$`)

func isDim(s string) bool {
	return matchDim.MatchString(s)
}

// Columns locates the columns of a peak list from its header. Indexes count
// the columns after the assignment; -1 marks an absent column.
type Columns struct {
	Dims   int
	Height int
	Volume int
}

// ColumnsOf reads the header of a peak list.
func ColumnsOf(header []syntax.Token) Columns {
	cols := Columns{Height: -1, Volume: -1}
	i := 0
	for _, t := range header[1:] {
		switch v := strings.ToLower(t.Val); {
		case v == "data":
			continue // "Data Height" names one column
		case isDim(v):
			cols.Dims++
		case v == "height":
			cols.Height = i
		case v == "volume":
			cols.Volume = i
		}
		i++
	}
	return cols
}

// Parse reads Sparky lists and returns the syntax tree. Lines with syntax
// errors are skipped; the errors are added to errs.
func Parse(input string, errs *syntax.ErrorList) *syntax.Node {
	s := syntax.NewScanner(input, Config, errs)
	root := syntax.NewNode(RuleFile)
	var list *syntax.Node
	var cols Columns
	for toks := s.Line(); len(toks) > 0; toks = s.Line() {
		switch {
		case toks[0].Is("assignment"):
			list = syntax.NewNode(RulePeakList, toks...)
			if cols = ColumnsOf(toks); cols.Dims < 2 {
				s.Errorf(toks[0], "A peak list needs at least 2 dimensions, not %d.", cols.Dims)
				list = nil
				continue
			}
			root.Add(list)
		case toks[0].Is("group"):
			list = syntax.NewNode(RuleShiftList, toks...)
			root.Add(list)
		case list == nil:
			s.Errorf(toks[0], "Expected a list header but found '%s'.", toks[0].Val)
		case list.Rule == RulePeakList:
			if len(toks) < 1+cols.Dims {
				s.Errorf(toks[len(toks)-1], "Expected %d peak positions.", cols.Dims)
				continue
			}
			if !numbers(s, toks[1:1+cols.Dims]) {
				continue
			}
			list.Add(syntax.NewNode(RulePeak, toks...))
		default:
			if len(toks) < 4 {
				s.Errorf(toks[len(toks)-1], "Expected a group, an atom, a nucleus and a shift.")
				continue
			}
			if !numbers(s, toks[3:4]) {
				continue
			}
			list.Add(syntax.NewNode(RuleShift, toks...))
		}
	}
	return root
}

func numbers(s *syntax.Scanner, toks []syntax.Token) bool {
	for _, t := range toks {
		if !t.IsNumber() {
			s.Errorf(t, "Expected a number but found '%s'.", t.Val)
			return false
		}
	}
	return true
}
