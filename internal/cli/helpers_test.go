package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and captures both streams.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

type envelope[T any] struct {
	Status string    `json:"status"`
	Data   T         `json:"data"`
	Error  *CLIError `json:"error"`
}

func decode[T any](t *testing.T, out string) envelope[T] {
	t.Helper()

	var env envelope[T]
	require.NoError(t, json.Unmarshal([]byte(out), &env), "output: %s", out)
	return env
}

func writeFile(t *testing.T, path, body string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const swapScenario = `name: swap
description: first and last rows trade places
old: [a, b, c]
new: [c, b, a]
expect:
  final: done
  kept: [c, b, a]
  instructions: [recycle_head_tail, recycle_head_tail, recycle_head_head, done]
`

const brokenExpectScenario = `name: broken
description: expects an insert that never happens
old: [a]
new: [a]
expect:
  inserted: [z]
`

// recordDiff runs a diff against the database at path.
func recordDiff(t *testing.T, path, list, oldKeys, newKeys string) {
	t.Helper()

	_, _, err := execute(t, "diff", "--db", path, "--list", list, "--old", oldKeys, "--new", newKeys)
	require.NoError(t, err)
}
