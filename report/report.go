package report

import (
	"fmt"
	"strings"
)

// Kind classifies a message.
type Kind int

const (
	SyntaxError Kind = iota
	AtomNotFound
	UnmatchedResidueName
	RangeValueError
	RangeValueWarning
	InvalidVector
	InvalidData
	IoError
	AmbiguousAssignment
	SeparatorFallback
	ReparseNotConverged
	UnobservedResidue
)

var kindNames = []string{
	SyntaxError:          "Syntax error",
	AtomNotFound:         "Atom not found",
	UnmatchedResidueName: "Unmatched residue name",
	RangeValueError:      "Range value error",
	RangeValueWarning:    "Range value warning",
	InvalidVector:        "Invalid vector",
	InvalidData:          "Invalid data",
	IoError:              "I/O error",
	AmbiguousAssignment:  "Ambiguous assignment",
	SeparatorFallback:    "Separator fallback",
	ReparseNotConverged:  "Re-parse not converged",
	UnobservedResidue:    "Unobserved residue",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Disposition says what happens to the data that raised a message.
type Disposition int

const (
	Collect Disposition = iota
	DropAssignment
	AcceptCoordinate
	DropRow
	Annotate
	Fatal
)

// Disposition returns the fixed disposition of k.
func (k Kind) Disposition() Disposition {
	switch k {
	case AtomNotFound:
		return DropAssignment
	case UnmatchedResidueName:
		return AcceptCoordinate
	case RangeValueError, InvalidVector, InvalidData:
		return DropRow
	case RangeValueWarning, AmbiguousAssignment, SeparatorFallback,
		ReparseNotConverged, UnobservedResidue:
		return Annotate
	case IoError:
		return Fatal
	}
	return Collect
}

// IsError reports whether a message of kind k means that some data did not
// make it to the output.
func (k Kind) IsError() bool {
	switch k.Disposition() {
	case DropAssignment, DropRow, Fatal:
		return true
	}
	return k == SyntaxError
}

// Message is a single warning or error. RestraintID identifies the record
// that raised it (for example "[Check the 12th row of distance restraints]")
// and may be empty.
type Message struct {
	Kind        Kind
	RestraintID string
	Text        string
}

func (m Message) String() string {
	if len(m.RestraintID) == 0 {
		return fmt.Sprintf("[%s] %s", m.Kind, m.Text)
	}
	return fmt.Sprintf("[%s] %s %s", m.Kind, m.RestraintID, m.Text)
}

// Log is an ordered set of messages. Adding a message that is already in
// the log is a no-op, so the first occurrence fixes its position.
// The zero value is ready to use.
type Log struct {
	msgs []Message
	seen map[Message]bool
}

// Add appends a message unless an identical one was added before.
func (l *Log) Add(kind Kind, restraintID, format string, v ...interface{}) {
	m := Message{kind, restraintID, fmt.Sprintf(format, v...)}
	l.Append(m)
}

// Append adds each message to the log, skipping duplicates.
func (l *Log) Append(msgs ...Message) {
	if l.seen == nil {
		l.seen = make(map[Message]bool, 16)
	}
	for _, m := range msgs {
		if l.seen[m] {
			continue
		}
		l.seen[m] = true
		l.msgs = append(l.msgs, m)
	}
}

// Messages returns the messages in first-seen order.
func (l *Log) Messages() []Message {
	return l.msgs
}

// Len returns the number of distinct messages.
func (l *Log) Len() int {
	return len(l.msgs)
}

// Count returns the number of messages of the given kind.
func (l *Log) Count(kind Kind) int {
	n := 0
	for _, m := range l.msgs {
		if m.Kind == kind {
			n++
		}
	}
	return n
}

// Filter returns the messages of the given kinds, in order.
func (l *Log) Filter(kinds ...Kind) []Message {
	var out []Message
	for _, m := range l.msgs {
		for _, k := range kinds {
			if m.Kind == k {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

func (l *Log) String() string {
	lines := make([]string, len(l.msgs))
	for i, m := range l.msgs {
		lines[i] = m.String()
	}
	return strings.Join(lines, "\n")
}
