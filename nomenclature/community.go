package nomenclature

import (
	"sort"
	"strings"
)

// ToCommunity returns a community style name standing for exactly the
// given atoms of compID with the given ambiguity, so that normalizing the
// name gives the atoms and ambiguity back. When no single name does, the
// atoms are returned unchanged and ok is false.
func (n *Normalizer) ToCommunity(compID string, atoms []string, ambiguity int) (names []string, ok bool) {
	sorted := append([]string(nil), atoms...)
	sort.Strings(sorted)
	if len(sorted) == 0 {
		return nil, false
	}
	if ambiguity == AmbigNone && len(sorted) == 1 {
		return sorted, true
	}
	c, found := n.Dict.Component(compID)
	if !found {
		return sorted, false
	}

	var suffixes []string
	switch ambiguity {
	case AmbigWildcard:
		suffixes = []string{"%"}
	case AmbigStereo:
		suffixes = []string{"x", "y", "x%", "y%"}
		if len(sorted) > 1 {
			suffixes = []string{"x%", "y%", "x", "y"}
		}
	default:
		return sorted, false
	}
	first := sorted[0]
	for k := len(first); k >= 1; k-- {
		for _, suf := range suffixes {
			name := first[:k] + suf
			got, amb, ok := normalize(c, strings.ToUpper(name), Community)
			if !ok || amb != ambiguity {
				continue
			}
			sort.Strings(got)
			if equal(got, sorted) {
				return []string{name}, true
			}
		}
	}
	return sorted, false
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
