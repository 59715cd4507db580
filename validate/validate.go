package validate

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/report"
)

// Class is the kind of quantity a restraint constrains.
type Class int

const (
	Distance Class = iota
	Angle
	RDC
	PCS
	Shift
	PeakPosition
)

func (c Class) String() string {
	switch c {
	case Distance:
		return "distance"
	case Angle:
		return "dihedral angle"
	case RDC:
		return "RDC"
	case PCS:
		return "PCS"
	case Shift:
		return "chemical shift"
	case PeakPosition:
		return "peak position"
	}
	return "Class(" + strconv.Itoa(int(c)) + ")"
}

// Range holds the soft (inclusive) and hard (exclusive) limits of a class.
type Range struct {
	SoftMin, SoftMax float64
	HardMin, HardMax float64
	Precision        int
}

var ranges = map[Class]Range{
	Distance:     {1.2, 100.0, 0.0, 1000.0, 3},
	Angle:        {-180.0, 180.0, -360.0, 360.0, 3},
	RDC:          {-100.0, 100.0, -1.0e4, 1.0e4, 3},
	PCS:          {-20.0, 20.0, -100.0, 100.0, 3},
	Shift:        {-5.0, 240.0, -300.0, 300.0, 3},
	PeakPosition: {-10.0, 250.0, -1000.0, 1000.0, 3},
}

// Default limits used for a distance restraint with only one bound.
const (
	DefaultLowerLimit = 1.8
	DefaultUpperLimit = 5.5
)

// Missing is the sentinel for an absent value.
var Missing = math.NaN()

// IsMissing reports whether v is the Missing sentinel.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Bounds are the raw numbers read for one restraint. Absent values must be
// Missing.
type Bounds struct {
	Target      float64
	Lower       float64
	Upper       float64
	LowerLinear float64
	UpperLinear float64
	Weight      float64
}

// NewBounds returns bounds with every value missing.
func NewBounds() Bounds {
	return Bounds{Missing, Missing, Missing, Missing, Missing, Missing}
}

// Key is a restraint function key.
type Key int

const (
	Weight Key = iota
	TargetValue
	LowerLimit
	UpperLimit
	LowerLinearLimit
	UpperLinearLimit
	Orientation
	Magnitude
	Rhombicity
)

var keyNames = []string{
	Weight:           "weight",
	TargetValue:      "target_value",
	LowerLimit:       "lower_limit",
	UpperLimit:       "upper_limit",
	LowerLinearLimit: "lower_linear_limit",
	UpperLinearLimit: "upper_linear_limit",
	Orientation:      "orientation",
	Magnitude:        "magnitude",
	Rhombicity:       "rhombicity",
}

func (k Key) String() string {
	return keyNames[k]
}

// Func is a validated restraint function. Values are stored already
// formatted so that output is byte stable.
type Func map[Key]string

// Keys returns the keys of f in enumeration order.
func (f Func) Keys() []Key {
	keys := make([]Key, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Float returns the value of k as a number.
func (f Func) Float(k Key) (float64, bool) {
	s, ok := f[k]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

// Format formats v with the precision of class c.
func Format(c Class, v float64) string {
	return strconv.FormatFloat(v, 'f', ranges[c].Precision, 64)
}

// Result carries the outcome of a validation. When OK is false the row
// must be dropped; Messages explain why and may be non-empty either way.
type Result struct {
	Func     Func
	OK       bool
	Messages []report.Message
}

type checker struct {
	class Class
	id    string
	res   *Result
}

func (c *checker) errorf(kind report.Kind, format string, v ...interface{}) {
	c.res.Messages = append(c.res.Messages,
		report.Message{Kind: kind, RestraintID: c.id, Text: fmt.Sprintf(format, v...)})
	if kind.IsError() {
		c.res.OK = false
	}
}

// check applies the range table to one value.
func (c *checker) check(k Key, v float64) {
	if IsMissing(v) {
		return
	}
	r := ranges[c.class]
	if v <= r.HardMin || v >= r.HardMax {
		c.errorf(report.RangeValueError,
			"The %s value '%s=%s' must be within range (%s, %s).",
			c.class, k, Format(c.class, v),
			Format(c.class, r.HardMin), Format(c.class, r.HardMax))
		return
	}
	if v < r.SoftMin || v > r.SoftMax {
		c.errorf(report.RangeValueWarning,
			"The %s value '%s=%s' should be within range [%s, %s].",
			c.class, k, Format(c.class, v),
			Format(c.class, r.SoftMin), Format(c.class, r.SoftMax))
	}
}
