package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/cinder/internal/item"
	"github.com/roach88/cinder/internal/render"
)

// Assertion types, used to categorize failures.
const (
	AssertFinal        = "final"
	AssertKept         = "kept"
	AssertInserted     = "inserted"
	AssertRemoved      = "removed"
	AssertInstructions = "instructions"
	AssertCounts       = "counts"
	AssertTotality     = "totality"
	AssertReplay       = "replay"
)

// AssertionError describes one failed check.
type AssertionError struct {
	Type     string   // Assertion type for categorization
	Expected string   // Human-readable expected outcome
	Actual   string   // Human-readable actual outcome
	Trace    []string // Instruction names for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nInstructions:\n")
		for i, name := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s\n", i+1, name)
		}
	}

	return buf.String()
}

func fail(result *Result, kind, expected, actual string) {
	result.AddError((&AssertionError{
		Type:     kind,
		Expected: expected,
		Actual:   actual,
		Trace:    result.Instructions,
	}).Error())
}

// checkTotality verifies that every old component was consumed exactly once
// and that the rendered keys are the new keys.
func checkTotality(pass *render.Pass, result *Result) {
	if got := pass.Counts.Old(); got != len(pass.Old) {
		fail(result, AssertTotality,
			fmt.Sprintf("%d old components recycled or removed", len(pass.Old)),
			fmt.Sprintf("%d", got))
	}
	if got := pass.Counts.New(); got != len(pass.New) {
		fail(result, AssertTotality,
			fmt.Sprintf("%d new values recycled or added", len(pass.New)),
			fmt.Sprintf("%d", got))
	}
	if want := item.KeysOf(pass.New); !slices.Equal(want, result.Keys) {
		fail(result, AssertTotality,
			fmt.Sprintf("rendered keys %v", want),
			fmt.Sprintf("%v", result.Keys))
	}

	seen := make(map[string]bool, len(pass.Ops))
	for _, op := range pass.Ops {
		if op.Kind == render.OpInsert {
			continue
		}
		if seen[op.ComponentID] {
			fail(result, AssertTotality,
				"each old component used once",
				fmt.Sprintf("component %s (%s) used twice", op.ComponentID, op.Key))
		}
		seen[op.ComponentID] = true
	}
}

// checkExpect evaluates the scenario's expectations.
func checkExpect(e *Expect, pass *render.Pass, result *Result) {
	if e.Final != "" && e.Final != pass.Final {
		fail(result, AssertFinal, e.Final, pass.Final)
	}
	checkKeys(result, AssertKept, e.Kept, pass.Kept())
	checkKeys(result, AssertInserted, e.Inserted, pass.Inserted())
	checkKeys(result, AssertRemoved, e.Removed, pass.Removed())
	checkKeys(result, AssertInstructions, e.Instructions, result.Instructions)

	if e.Counts != nil {
		got := ExpectCounts{
			Recycled: pass.Counts.Recycled,
			Removed:  pass.Counts.Removed,
			Added:    pass.Counts.Added,
		}
		if got != *e.Counts {
			fail(result, AssertCounts, fmt.Sprintf("%+v", *e.Counts), fmt.Sprintf("%+v", got))
		}
	}
}

// checkKeys compares ordered string lists. A nil want is not checked.
func checkKeys(result *Result, kind string, want, got []string) {
	if want == nil {
		return
	}
	if len(want) == 0 && len(got) == 0 {
		return
	}
	if !slices.Equal(want, got) {
		fail(result, kind, fmt.Sprintf("%v", want), fmt.Sprintf("%v", got))
	}
}
