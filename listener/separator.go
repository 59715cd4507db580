package listener

import (
	"strings"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/report"
)

// separators are tried in order when splitting a peak assignment.
var separators = []string{"-", "/", ","}

// SplitAssignment splits a peak assignment such as "G16N-H" into n parts.
// Separators other than "-" are tried in turn, each with a warning.
func (c *Context) SplitAssignment(s string, n int) ([]string, bool) {
	for i, sep := range separators {
		parts := strings.Split(s, sep)
		if len(parts) != n {
			continue
		}
		if i > 0 {
			c.Warnf(report.SeparatorFallback,
				"Assignment %q is not separated by %q; %q is used.", s, separators[0], sep)
		}
		return parts, true
	}
	if n == 1 {
		return []string{s}, true
	}
	return nil, false
}
