package harness

import (
	"github.com/roach88/cinder/internal/reconcile"
	"github.com/roach88/cinder/internal/render"
)

// Result is the outcome of running a scenario.
type Result struct {
	// Pass is true if every expectation and built-in check held.
	Pass bool `json:"pass"`

	// Trace is the ops of the pass under test, in application order.
	Trace []render.Op `json:"trace"`

	// Instructions is the instruction sequence of the pass under test.
	Instructions []string `json:"instructions"`

	// Keys are the rendered keys after the pass.
	Keys []string `json:"keys"`

	// Components are the component IDs after the pass, in order.
	Components []string `json:"components"`

	// Counts tallies the pass under test.
	Counts reconcile.Counts `json:"counts"`

	// TraceHash identifies the trace for replay comparison.
	TraceHash string `json:"trace_hash"`

	// Errors contains failed checks. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:         true,
		Trace:        []render.Op{},
		Instructions: []string{},
		Keys:         []string{},
		Components:   []string{},
		Errors:       []string{},
	}
}

// AddError records a failed check and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
