package seqmap

import "sort"

// Scheme is a residue numbering scheme.
type Scheme int

const (
	PreferAuth Scheme = iota
	PreferLabel
)

func (s Scheme) String() string {
	if s == PreferLabel {
		return "label"
	}
	return "auth"
}

// labelStreak is the number of consecutive lookups that succeed only under
// label numbering needed to switch a chain to label numbering.
const labelStreak = 2

// SchemeTracker follows, per chain, which numbering scheme lookups succeed
// under. The zero value is ready to use.
type SchemeTracker struct {
	state  map[string]Scheme
	streak map[string]int
}

// Observe records the outcome of one lookup in chain under both schemes.
func (t *SchemeTracker) Observe(chain string, authOK, labelOK bool) {
	if t.state == nil {
		t.state = make(map[string]Scheme)
		t.streak = make(map[string]int)
	}
	switch {
	case labelOK && !authOK:
		t.streak[chain]++
		if t.streak[chain] >= labelStreak {
			t.state[chain] = PreferLabel
		}
	case authOK && !labelOK:
		t.streak[chain] = 0
		t.state[chain] = PreferAuth
	case !authOK && !labelOK:
		t.streak[chain] = 0
	}
}

// Scheme returns the preferred scheme of chain.
func (t *SchemeTracker) Scheme(chain string) Scheme {
	return t.state[chain]
}

// LabelChains returns the chains that prefer label numbering, sorted.
func (t *SchemeTracker) LabelChains() []string {
	var chains []string
	for c, s := range t.state {
		if s == PreferLabel {
			chains = append(chains, c)
		}
	}
	sort.Strings(chains)
	return chains
}
