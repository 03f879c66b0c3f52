package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/cinder/internal/item"
)

// Snapshot returns the canonical golden form of a result. Component IDs are
// included, so goldens also pin which component ended up where.
func Snapshot(name string, result *Result) ([]byte, error) {
	ops := make([]any, len(result.Trace))
	for i, op := range result.Trace {
		m := map[string]any{
			"step":         op.Step,
			"kind":         string(op.Kind),
			"key":          op.Key,
			"component_id": op.ComponentID,
			"from":         op.From,
			"to":           op.To,
		}
		if op.OldEnd != "" {
			m["old_end"] = op.OldEnd
		}
		if op.NewEnd != "" {
			m["new_end"] = op.NewEnd
		}
		if op.Changed {
			m["changed"] = true
		}
		ops[i] = m
	}

	return item.Canonical(map[string]any{
		"scenario":     name,
		"instructions": toAny(result.Instructions),
		"ops":          ops,
		"components":   toAny(result.Components),
	})
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

// RunWithGolden executes a scenario and compares its trace against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails. Test failure (via goldie)
// occurs if the trace doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}
	newGoldie(t).Assert(t, scenarioName, data)
	return nil
}
