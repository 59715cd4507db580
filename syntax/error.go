package syntax

import (
	"fmt"
	"strings"
)

var sf = fmt.Sprintf

// MaxErrorReport is the default cap on the number of syntax errors kept.
const MaxErrorReport = 20

// Error is a syntax error with enough context to point at the offending
// input.
type Error struct {
	Line      int
	Column    int
	Offending string
	Input     string // the source line
	Message   string
}

func (e Error) Error() string {
	return sf("Error on line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// Caret returns the offending source line with a marker under the column
// of the error.
func (e Error) Caret() string {
	col := e.Column - 1
	if col < 0 {
		col = 0
	}
	width := len(e.Offending)
	if width == 0 {
		width = 1
	}
	return e.Input + "\n" + strings.Repeat(" ", col) + strings.Repeat("^", width)
}

// ErrorList collects syntax errors up to a cap. Errors beyond the cap are
// counted but not kept; parsing goes on regardless.
type ErrorList struct {
	Max        int
	errs       []Error
	suppressed int
}

// NewErrorList returns a list keeping at most max errors. A max of zero or
// less means MaxErrorReport.
func NewErrorList(max int) *ErrorList {
	if max <= 0 {
		max = MaxErrorReport
	}
	return &ErrorList{Max: max}
}

// Add records e, or counts it as suppressed when the list is full.
func (l *ErrorList) Add(e Error) {
	max := l.Max
	if max <= 0 {
		max = MaxErrorReport
	}
	if len(l.errs) >= max {
		l.suppressed++
		return
	}
	l.errs = append(l.errs, e)
}

// Errors returns the kept errors in the order they were found.
func (l *ErrorList) Errors() []Error {
	return l.errs
}

// Len returns the number of errors seen, kept or not.
func (l *ErrorList) Len() int {
	return len(l.errs) + l.suppressed
}

// Suppressed returns the number of errors dropped over the cap.
func (l *ErrorList) Suppressed() int {
	return l.suppressed
}
