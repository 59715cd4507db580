package validate

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/report"
)

func bounds(target, lower, upper float64) Bounds {
	b := NewBounds()
	b.Target, b.Lower, b.Upper = target, lower, upper
	return b
}

func TestDistanceUpperOnly(t *testing.T) {
	res := CheckDistance("r1", bounds(Missing, Missing, 4.2))
	if !res.OK {
		t.Fatalf("Expected a valid restraint, got %v.", res.Messages)
	}
	want := Func{TargetValue: "3.000", LowerLimit: "1.800", UpperLimit: "4.200"}
	if diff := cmp.Diff(want, res.Func); diff != "" {
		t.Fatalf("restraint function differs (-want +got):\n%s", diff)
	}
}

func TestDistanceLowerOnly(t *testing.T) {
	res := CheckDistance("r1", bounds(Missing, 2.5, Missing))
	want := Func{TargetValue: "4.000", LowerLimit: "2.500", UpperLimit: "5.500"}
	if diff := cmp.Diff(want, res.Func); diff != "" {
		t.Fatalf("restraint function differs (-want +got):\n%s", diff)
	}
}

func TestDistanceMidpoint(t *testing.T) {
	res := CheckDistance("r1", bounds(Missing, 2.0, 5.0))
	if got := res.Func[TargetValue]; got != "3.500" {
		t.Fatalf("Expected target 3.500 but got %s.", got)
	}
}

func TestDistanceOrder(t *testing.T) {
	tests := []Bounds{
		bounds(3.0, 3.5, 5.0),
		bounds(6.0, 2.0, 5.0),
	}
	for _, b := range tests {
		res := CheckDistance("r1", b)
		if res.OK {
			t.Fatalf("Expected %+v to be rejected.", b)
		}
		if res.Messages[0].Kind != report.RangeValueError {
			t.Fatalf("Expected a range error but got %s.", res.Messages[0])
		}
	}
}

func TestRanges(t *testing.T) {
	tests := []struct {
		class Class
		v     float64
		ok    bool
		warn  bool
	}{
		{Distance, 0.0, false, false},
		{Distance, 0.5, true, true},
		{Distance, 150.0, true, true},
		{Distance, 1000.0, false, false},
		{Angle, -200.0, true, true},
		{Angle, 360.0, false, false},
		{RDC, 150.0, true, true},
		{RDC, 1.0e4, false, false},
		{PCS, -25.0, true, true},
		{PCS, 100.0, false, false},
		{PCS, 3.0, true, false},
	}
	for _, test := range tests {
		res := validate(test.class, "r", bounds(test.v, Missing, Missing), false)
		if res.OK != test.ok {
			t.Errorf("%s %f: expected ok=%v but got %v (%v).",
				test.class, test.v, test.ok, res.OK, res.Messages)
			continue
		}
		warned := len(res.Messages) > 0 &&
			res.Messages[0].Kind == report.RangeValueWarning
		if warned != test.warn {
			t.Errorf("%s %f: expected warning=%v but got %v.",
				test.class, test.v, test.warn, res.Messages)
		}
	}
}

func TestAngleWrapped(t *testing.T) {
	res := CheckAngle("r1", bounds(Missing, 170.0, -170.0))
	if !res.OK {
		t.Fatalf("Wrapped range rejected: %v", res.Messages)
	}
	if got := res.Func[TargetValue]; got != "180.000" {
		t.Fatalf("Expected target 180.000 but got %s.", got)
	}
}

func TestWeight(t *testing.T) {
	b := bounds(3.0, 2.0, 4.0)
	b.Weight = 0
	res := CheckDistance("r1", b)
	if res.OK || res.Messages[0].Kind != report.InvalidData {
		t.Fatalf("Expected zero weight to be invalid data, got %v.", res.Messages)
	}
}

func TestOneSidedNonDistance(t *testing.T) {
	res := CheckRDC("r1", bounds(Missing, Missing, 12.0))
	if got := res.Func[TargetValue]; got != "12.000" {
		t.Fatalf("Expected target 12.000 but got %s.", got)
	}
}
