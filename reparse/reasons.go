package reparse

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Key names a kind of reason. The set of keys is closed.
type Key string

const (
	LabelSeqScheme      Key = "label_seq_scheme"
	SeqOffset           Key = "seq_offset"
	NonPolyRemap        Key = "non_poly_remap"
	HasRealVol          Key = "has_real_vol"
	AtomNameMappingHint Key = "atom_name_mapping_hint"
	PreferAltCompID     Key = "prefer_alt_comp_id"
)

// Keys lists every valid key.
var Keys = []Key{
	LabelSeqScheme, SeqOffset, NonPolyRemap, HasRealVol,
	AtomNameMappingHint, PreferAltCompID,
}

// ErrUnknownKey is returned for a key outside of Keys.
var ErrUnknownKey = errors.New("unknown reparse key")

// Valid reports whether k is one of Keys.
func (k Key) Valid() bool {
	for _, v := range Keys {
		if k == v {
			return true
		}
	}
	return false
}

// entries maps a subject (a chain, a residue, a list) to a value.
type entries map[string]string

// Reasons accumulate during a pass. Values already present in the plan the
// pass runs under are not recorded again.
type Reasons struct {
	plan *Plan
	m    map[Key]entries
}

// NewReasons returns an empty set of reasons for a pass running under plan.
// plan may be nil.
func NewReasons(plan *Plan) *Reasons {
	return &Reasons{plan: plan, m: make(map[Key]entries)}
}

// Set records value for subject under key.
func (r *Reasons) Set(key Key, subject, value string) error {
	if !key.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if v, ok := r.plan.Get(key, subject); ok && v == value {
		return nil
	}
	es, ok := r.m[key]
	if !ok {
		es = make(entries)
		r.m[key] = es
	}
	es[subject] = value
	return nil
}

// Empty reports whether nothing was recorded.
func (r *Reasons) Empty() bool {
	for _, es := range r.m {
		if len(es) > 0 {
			return false
		}
	}
	return true
}

// Freeze returns a read-only plan holding the reasons of the plan r was
// created under merged with r itself.
func (r *Reasons) Freeze() *Plan {
	p := &Plan{m: make(map[Key]entries)}
	merge := func(src map[Key]entries) {
		for k, es := range src {
			for s, v := range es {
				if p.m[k] == nil {
					p.m[k] = make(entries)
				}
				p.m[k][s] = v
			}
		}
	}
	if r.plan != nil {
		merge(r.plan.m)
	}
	merge(r.m)
	return p
}

func (r *Reasons) String() string {
	return format(r.m)
}

// Plan is a frozen set of reasons. A nil *Plan is an empty plan.
type Plan struct {
	m map[Key]entries
}

// Get returns the value of subject under key.
func (p *Plan) Get(key Key, subject string) (string, bool) {
	if p == nil {
		return "", false
	}
	v, ok := p.m[key][subject]
	return v, ok
}

// Has reports whether subject has any value under key.
func (p *Plan) Has(key Key, subject string) bool {
	_, ok := p.Get(key, subject)
	return ok
}

// Int returns the value of subject under key as an integer.
func (p *Plan) Int(key Key, subject string) (int, bool) {
	v, ok := p.Get(key, subject)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
}

// Empty reports whether the plan holds no reasons.
func (p *Plan) Empty() bool {
	if p == nil {
		return true
	}
	for _, es := range p.m {
		if len(es) > 0 {
			return false
		}
	}
	return true
}

func (p *Plan) String() string {
	if p == nil {
		return ""
	}
	return format(p.m)
}

// PlanFrom builds a plan from key -> subject -> value tables, as read from
// a configuration file. Unknown keys are rejected.
func PlanFrom(tables map[string]map[string]string) (*Plan, error) {
	r := NewReasons(nil)
	for k, es := range tables {
		for s, v := range es {
			if err := r.Set(Key(k), s, v); err != nil {
				return nil, err
			}
		}
	}
	return r.Freeze(), nil
}

func format(m map[Key]entries) string {
	var lines []string
	for k, es := range m {
		for s, v := range es {
			lines = append(lines, fmt.Sprintf("%s[%s]=%s", k, s, v))
		}
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}
