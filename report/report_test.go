package report

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLogDedup(t *testing.T) {
	var l Log
	l.Add(AtomNotFound, "[row 1]", "atom %s not found", "HB1")
	l.Add(RangeValueWarning, "[row 2]", "value %.1f out of range", 120.0)
	l.Add(AtomNotFound, "[row 1]", "atom %s not found", "HB1")
	l.Add(AtomNotFound, "[row 3]", "atom %s not found", "HB1")

	want := []Message{
		{AtomNotFound, "[row 1]", "atom HB1 not found"},
		{RangeValueWarning, "[row 2]", "value 120.0 out of range"},
		{AtomNotFound, "[row 3]", "atom HB1 not found"},
	}
	if diff := cmp.Diff(want, l.Messages()); diff != "" {
		t.Fatalf("messages differ (-want +got):\n%s", diff)
	}
	if n := l.Count(AtomNotFound); n != 2 {
		t.Fatalf("Expected 2 AtomNotFound messages but got %d.", n)
	}
}

func TestDisposition(t *testing.T) {
	tests := []struct {
		kind Kind
		want Disposition
	}{
		{SyntaxError, Collect},
		{AtomNotFound, DropAssignment},
		{UnmatchedResidueName, AcceptCoordinate},
		{RangeValueError, DropRow},
		{RangeValueWarning, Annotate},
		{InvalidVector, DropRow},
		{InvalidData, DropRow},
		{IoError, Fatal},
	}
	for _, test := range tests {
		if got := test.kind.Disposition(); got != test.want {
			t.Errorf("%s: expected disposition %d but got %d.",
				test.kind, test.want, got)
		}
	}
}

func ExampleMessage() {
	m := Message{InvalidVector, "[Check the 3rd row of RDC restraints]",
		"Non-bonded atom pair."}
	fmt.Println(m)
	// Output:
	// [Invalid vector] [Check the 3rd row of RDC restraints] Non-bonded atom pair.
}
