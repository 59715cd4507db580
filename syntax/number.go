package syntax

import (
	"math"
	"strconv"
	"strings"
)

// Float converts the text of a numeric token to a float64. Fortran style
// exponents ("1.5D+02") are accepted. Infinities and NaN are rejected.
func Float(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "dD"); i >= 0 {
		s = s[:i] + "e" + s[i+1:]
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Int converts the text of an integer token. A float with no fractional
// part ("12.0") is accepted.
func Int(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(strings.TrimPrefix(s, "+")); err == nil {
		return n, true
	}
	f, ok := Float(s)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
