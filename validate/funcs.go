package validate

import (
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/report"
)

// CheckDistance validates a distance restraint. A single bound gets the other
// one from DefaultLowerLimit or DefaultUpperLimit and the target becomes
// the midpoint.
func CheckDistance(id string, b Bounds) Result {
	if IsMissing(b.Target) {
		switch {
		case IsMissing(b.Lower) && !IsMissing(b.Upper):
			if b.Upper > DefaultLowerLimit {
				b.Lower = DefaultLowerLimit
			}
		case !IsMissing(b.Lower) && IsMissing(b.Upper):
			if b.Lower < DefaultUpperLimit {
				b.Upper = DefaultUpperLimit
			}
		}
	}
	return validate(Distance, id, b, false)
}

// CheckAngle validates a dihedral angle restraint. A lower limit greater than
// the upper limit is a range wrapping through 180 degrees.
func CheckAngle(id string, b Bounds) Result {
	return validate(Angle, id, b, true)
}

// CheckRDC validates a residual dipolar coupling restraint.
func CheckRDC(id string, b Bounds) Result {
	return validate(RDC, id, b, false)
}

// CheckPCS validates a pseudocontact shift restraint.
func CheckPCS(id string, b Bounds) Result {
	return validate(PCS, id, b, false)
}

// CheckShift validates a chemical shift and its error. The error, when
// present, must not be negative and is stored under UpperLimit.
func CheckShift(id string, value, err float64) Result {
	res := Result{Func: Func{}, OK: true}
	c := &checker{Shift, id, &res}
	if IsMissing(value) {
		c.errorf(report.InvalidData, "Chemical shift value is missing.")
		return res
	}
	c.check(TargetValue, value)
	if !IsMissing(err) && err < 0 {
		c.errorf(report.InvalidData,
			"Chemical shift error '%s' must not be negative.", Format(Shift, err))
	}
	if !res.OK {
		return res
	}
	res.Func[TargetValue] = Format(Shift, value)
	if !IsMissing(err) {
		res.Func[UpperLimit] = Format(Shift, err)
	}
	return res
}

// CheckPeak validates the positions of a peak, one per dimension.
func CheckPeak(id string, positions []float64) Result {
	res := Result{Func: Func{}, OK: true}
	c := &checker{PeakPosition, id, &res}
	for i, p := range positions {
		if IsMissing(p) {
			c.errorf(report.InvalidData, "Position of dimension %d is missing.", i+1)
			continue
		}
		c.check(TargetValue, p)
	}
	return res
}

func validate(class Class, id string, b Bounds, wrap bool) Result {
	res := Result{Func: Func{}, OK: true}
	c := &checker{class, id, &res}

	if !IsMissing(b.Weight) && b.Weight <= 0 {
		c.errorf(report.InvalidData,
			"The relative weight value of '%s' should be a positive value.",
			Format(class, b.Weight))
		return res
	}
	if IsMissing(b.Target) && IsMissing(b.Lower) && IsMissing(b.Upper) &&
		IsMissing(b.LowerLinear) && IsMissing(b.UpperLinear) {
		c.errorf(report.InvalidData, "No %s value is given.", class)
		return res
	}

	wrapped := wrap && !IsMissing(b.Lower) && !IsMissing(b.Upper) &&
		b.Lower > b.Upper
	if IsMissing(b.Target) {
		switch {
		case !IsMissing(b.Lower) && !IsMissing(b.Upper):
			b.Target = midpoint(b.Lower, b.Upper, wrapped)
		case !IsMissing(b.Lower):
			b.Target = b.Lower
		case !IsMissing(b.Upper):
			b.Target = b.Upper
		}
	}

	c.check(TargetValue, b.Target)
	c.check(LowerLimit, b.Lower)
	c.check(UpperLimit, b.Upper)
	c.check(LowerLinearLimit, b.LowerLinear)
	c.check(UpperLinearLimit, b.UpperLinear)
	if !res.OK {
		return res
	}

	order := func(lo Key, lv float64, hi Key, hv float64) {
		if IsMissing(lv) || IsMissing(hv) || lv <= hv {
			return
		}
		c.errorf(report.RangeValueError,
			"The %s lower bound '%s=%s' must be less than or equal to '%s=%s'.",
			class, lo, Format(class, lv), hi, Format(class, hv))
	}
	if !wrapped {
		order(LowerLimit, b.Lower, TargetValue, b.Target)
		order(TargetValue, b.Target, UpperLimit, b.Upper)
		order(LowerLimit, b.Lower, UpperLimit, b.Upper)
		order(LowerLinearLimit, b.LowerLinear, UpperLinearLimit, b.UpperLinear)
	}
	order(LowerLinearLimit, b.LowerLinear, LowerLimit, b.Lower)
	order(UpperLimit, b.Upper, UpperLinearLimit, b.UpperLinear)
	if !res.OK {
		return res
	}

	set := func(k Key, v float64) {
		if !IsMissing(v) {
			res.Func[k] = Format(class, v)
		}
	}
	set(TargetValue, b.Target)
	set(LowerLimit, b.Lower)
	set(UpperLimit, b.Upper)
	set(LowerLinearLimit, b.LowerLinear)
	set(UpperLinearLimit, b.UpperLinear)
	set(Weight, b.Weight)
	return res
}

// midpoint returns the middle of [lo, hi]. For a wrapped angular range the
// result is folded back into (-180, 180].
func midpoint(lo, hi float64, wrapped bool) float64 {
	if !wrapped {
		return (lo + hi) / 2
	}
	m := (lo + hi + 360) / 2
	if m > 180 {
		m -= 360
	}
	return m
}

