package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplayList_AllMatch(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	writeAll(t, s, renderPasses(t, "rows",
		[]string{"a", "b", "c", "d"},
		[]string{"a", "c", "b", "e", "d"},
		[]string{"e", "d"},
		[]string{},
	))

	results, err := s.ReplayList(ctx, "rows")
	require.NoError(t, err)
	require.Len(t, results, 4)
	for _, r := range results {
		assert.True(t, r.Match, "seq %d: expected %s, got %s", r.Seq, r.Expected, r.Actual)
	}
}

func TestReplayList_DetectsTamperedTrace(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	ids := writeAll(t, s, renderPasses(t, "rows", []string{"a"}, []string{"b", "a"}))
	_, err := s.db.Exec("UPDATE passes SET trace_hash = 'bogus' WHERE id = ?", ids[1])
	require.NoError(t, err)

	results, err := s.ReplayList(ctx, "rows")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Match)
	assert.False(t, results[1].Match)
	assert.Equal(t, "bogus", results[1].Expected)
}

func TestReplayList_CanceledContext(t *testing.T) {
	s := createTestStore(t)
	writeAll(t, s, renderPasses(t, "rows", []string{"a"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ReplayList(ctx, "rows")
	require.Error(t, err)
}
