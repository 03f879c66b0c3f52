package cli

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cinder/internal/store"
)

func TestReplayMissingDatabaseFlag(t *testing.T) {
	_, _, err := execute(t, "replay")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestReplayNonExistentDatabase(t *testing.T) {
	_, _, err := execute(t, "replay", "--db", filepath.Join(t.TempDir(), "missing.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to open database")
}

func TestReplayEmptyDatabase(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cinder.db")
	st, err := store.Open(db)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, _, err := execute(t, "replay", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No passes found in database.")
}

func TestReplayDeterministic(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cinder.db")
	recordDiff(t, db, "todo", "a,b,c,d", "a,c,b,e,d")
	recordDiff(t, db, "done", "x", "")

	out, _, err := execute(t, "replay", "--db", db)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Replay Summary: 2 list(s), 4 pass(es)")
	assert.Contains(t, out, "✓ List: todo (2 passes)")
	assert.Contains(t, out, "✓ All passes verified deterministic")

	out, _, err = execute(t, "replay", "--db", db, "--list", "done", "--format", "json")
	require.NoError(t, err)
	env := decode[ReplayResult](t, out)
	assert.Equal(t, "ok", env.Status)
	assert.True(t, env.Data.AllDeterministic)
	require.Len(t, env.Data.Lists, 1)
	assert.Equal(t, "done", env.Data.Lists[0].List)
	assert.Len(t, env.Data.Lists[0].Passes, 2)
}

func TestReplayDetectsDivergence(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cinder.db")
	recordDiff(t, db, "todo", "a,b", "b,a")

	raw, err := sql.Open("sqlite3", db)
	require.NoError(t, err)
	_, err = raw.Exec("UPDATE passes SET trace_hash = 'bogus' WHERE seq = 2")
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	out, _, err := execute(t, "replay", "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ List: todo")
	assert.Contains(t, out, "seq 2: recorded bogus")
	assert.Contains(t, out, "Non-deterministic replay detected")

	out, _, err = execute(t, "replay", "--db", db, "--format", "json")
	require.Error(t, err)
	env := decode[ReplayResult](t, out)
	assert.Equal(t, "error", env.Status)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeDeterminism, env.Error.Code)
	assert.False(t, env.Data.AllDeterministic)
}
