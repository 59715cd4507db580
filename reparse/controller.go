package reparse

import (
	"fmt"
)

// NotConverged is the text of the warning issued when the second pass still
// records reasons.
const NotConverged = "re-parse did not converge"

// PassFunc runs one pass over an input under plan and returns the pass
// result along with the reasons the pass recorded.
type PassFunc func(plan *Plan) (result interface{}, reasons *Reasons, err error)

// Outcome is what a controller run produced.
type Outcome struct {
	// Result of the last pass that ran.
	Result interface{}

	// The plan the last pass ran under.
	Plan *Plan

	// Whether a second pass ran.
	Reparsed bool

	// Set when the second pass recorded reasons of its own. They are
	// discarded.
	NotConverged bool
}

// Controller decides whether to run a second pass.
type Controller struct {
	// Disable the second pass.
	NoReparse bool

	// Reasons known before the first pass, e.g. from configuration.
	Initial *Plan
}

// Run runs pass once, and once more if the first pass recorded reasons.
func (c Controller) Run(pass PassFunc) (*Outcome, error) {
	if err := c.Initial.check(); err != nil {
		return nil, err
	}
	result, reasons, err := pass(c.Initial)
	if err != nil {
		return nil, err
	}
	out := &Outcome{Result: result, Plan: c.Initial}
	if c.NoReparse || reasons == nil || reasons.Empty() {
		return out, nil
	}

	plan := reasons.Freeze()
	result, again, err := pass(plan)
	if err != nil {
		return nil, err
	}
	out.Result, out.Plan, out.Reparsed = result, plan, true
	out.NotConverged = again != nil && !again.Empty()
	return out, nil
}

func (p *Plan) check() error {
	if p == nil {
		return nil
	}
	for k := range p.m {
		if !k.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownKey, k)
		}
	}
	return nil
}
