package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/cinder/internal/item"
	"github.com/roach88/cinder/internal/render"
	"github.com/roach88/cinder/internal/testutil"
)

// createTestStore creates a new store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// renderPasses renders each key list in turn on one list and returns the
// passes.
func renderPasses(t *testing.T, list string, keyLists ...[]string) []*render.Pass {
	t.Helper()
	l := render.NewList(list,
		render.WithIDs(testutil.NewSequenceIDs("c")),
		render.WithTokens(testutil.FixedToken("tok-"+list)),
		render.WithClock(testutil.NewDeterministicClock()),
	)
	passes := make([]*render.Pass, 0, len(keyLists))
	for _, keys := range keyLists {
		p, err := l.Render(item.Keys(keys...))
		if err != nil {
			t.Fatalf("Render(%v) failed: %v", keys, err)
		}
		passes = append(passes, p)
	}
	return passes
}
