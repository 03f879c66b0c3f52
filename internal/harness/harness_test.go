package harness

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cinder/internal/item"
)

func TestScenarios_Golden(t *testing.T) {
	files, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, path := range files {
		name := strings.TrimSuffix(filepath.Base(path), ".yaml")
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)
			assert.Equal(t, name, scenario.Name)

			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Equal(t, item.KeysOf(scenario.New), result.Keys)
		})
	}
}

func TestRun_ReportsFailedExpectations(t *testing.T) {
	scenario := &Scenario{
		Name:        "wrong",
		Description: "expectations that do not hold",
		Old:         item.Keys("a", "b"),
		New:         item.Keys("b", "a"),
		Expect: &Expect{
			Final:    "add_remaining",
			Kept:     []string{"a"},
			Inserted: []string{},
			Counts:   &ExpectCounts{Recycled: 1},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "Assertion failed: final")
	assert.Contains(t, result.Errors[1], "Assertion failed: kept")
	assert.Contains(t, result.Errors[2], "Assertion failed: counts")
}

func TestRun_NoExpectationsStillChecksTotality(t *testing.T) {
	scenario := &Scenario{
		Name:        "bare",
		Description: "no expect block",
		Old:         item.Keys("a", "b", "c"),
		New:         item.Keys("c", "x", "a"),
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, []string{"c", "x", "a"}, result.Keys)
	assert.Equal(t, 3, result.Counts.Old())
	assert.Equal(t, 3, result.Counts.New())
	assert.Len(t, result.TraceHash, 64)
}

func TestRun_Deterministic(t *testing.T) {
	scenario := &Scenario{
		Name:        "twice",
		Description: "same scenario twice",
		Token:       "fixed",
		Old:         item.Keys("a", "b", "c", "d"),
		New:         item.Keys("d", "b", "e"),
	}

	r1, err := Run(scenario)
	require.NoError(t, err)
	r2, err := Run(scenario)
	require.NoError(t, err)

	assert.Equal(t, r1.TraceHash, r2.TraceHash)
	assert.Equal(t, r1.Trace, r2.Trace)
	assert.Equal(t, r1.Components, r2.Components)
}

func TestRun_InvalidItems(t *testing.T) {
	scenario := &Scenario{
		Name:        "bad",
		Description: "float prop",
		New:         []item.Item{item.New("a", map[string]any{"w": 1.5})},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.True(t, item.IsValidationError(err))
}

func TestAssertionError_Format(t *testing.T) {
	err := &AssertionError{
		Type:     AssertKept,
		Expected: "[a]",
		Actual:   "[b]",
		Trace:    []string{"remove_head", "done"},
	}

	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: kept")
	assert.Contains(t, msg, "Expected: [a]")
	assert.Contains(t, msg, "Actual: [b]")
	assert.Contains(t, msg, "[2] done")
}
