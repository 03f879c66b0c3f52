package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTest_HarnessScenariosPass(t *testing.T) {
	out, _, err := execute(t, "test", filepath.Join("..", "harness", "testdata", "scenarios"))
	require.NoError(t, err, out)

	assert.Contains(t, out, "✓ move-and-insert")
	assert.Contains(t, out, "✓ swap-ends")
	assert.Contains(t, out, "0 failed")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestTest_UpdateWritesGoldenThenMatches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "swap.yaml"), swapScenario)

	out, _, err := execute(t, "test", dir, "--update")
	require.NoError(t, err, out)

	golden := filepath.Join(dir, "golden", "swap.golden")
	data, err := os.ReadFile(golden)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scenario":"swap"`)

	out, _, err = execute(t, "test", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ swap")
}

func TestTest_GoldenMismatchFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "swap.yaml"), swapScenario)
	writeFile(t, filepath.Join(dir, "golden", "swap.golden"), `{"scenario":"swap"}`)

	out, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ swap")
	assert.Contains(t, out, "does not match golden file")
}

func TestTest_FailedExpectation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "broken.yaml"), brokenExpectScenario)
	writeFile(t, filepath.Join(dir, "swap.yaml"), swapScenario)

	out, _, err := execute(t, "test", dir, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	env := decode[TestResult](t, out)
	assert.Equal(t, "error", env.Status)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeTestFailed, env.Error.Code)
	assert.Equal(t, 2, env.Data.Total)
	assert.Equal(t, 1, env.Data.Passed)
	assert.Equal(t, 1, env.Data.Failed)

	for _, s := range env.Data.Scenarios {
		if s.Name == "broken" {
			assert.False(t, s.Pass)
			assert.NotEmpty(t, s.Errors)
		}
	}
}

func TestTest_Filter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "broken.yaml"), brokenExpectScenario)
	writeFile(t, filepath.Join(dir, "swap.yaml"), swapScenario)

	out, _, err := execute(t, "test", dir, "--filter", "sw*", "--format", "json")
	require.NoError(t, err, out)

	env := decode[TestResult](t, out)
	require.Len(t, env.Data.Scenarios, 1)
	assert.Equal(t, "swap", env.Data.Scenarios[0].Name)
}

func TestTest_LoadErrorReported(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.yaml"), "name: bad\n")

	out, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ bad.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestTest_EmptyDirectory(t *testing.T) {
	out, _, err := execute(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

func TestTest_MissingDirectory(t *testing.T) {
	_, _, err := execute(t, "test", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestFindScenarioFiles_SkipsGolden(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.yaml"), swapScenario)
	writeFile(t, filepath.Join(dir, "nested", "b.yml"), swapScenario)
	writeFile(t, filepath.Join(dir, "golden", "c.yaml"), swapScenario)
	writeFile(t, filepath.Join(dir, "notes.txt"), "")

	files, err := findScenarioFiles(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.yaml"),
		filepath.Join(dir, "nested", "b.yml"),
	}, files)

	_, err = findScenarioFiles(dir, "[")
	assert.ErrorContains(t, err, "invalid filter pattern")
}

func TestGoldenFilePath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("scenarios", "golden", "swap.golden"),
		goldenFilePath(filepath.Join("scenarios", "swap.yaml")))
}
