package testutil

import (
	"fmt"
	"sync"
)

// SequenceIDs generates "<prefix>-1", "<prefix>-2", ... in order.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequenceIDs struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequenceIDs creates a generator. An empty prefix means "c".
func NewSequenceIDs(prefix string) *SequenceIDs {
	if prefix == "" {
		prefix = "c"
	}
	return &SequenceIDs{prefix: prefix}
}

// Generate returns the next ID.
func (g *SequenceIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}

// Reset restarts numbering at 1.
func (g *SequenceIDs) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n = 0
}

// FixedToken returns the same pass token every time.
//
// Thread-safety: FixedToken is stateless and safe for concurrent use.
type FixedToken string

// DefaultToken is used when a scenario does not pin one.
const DefaultToken = "test-pass-default"

// Generate returns the token, or DefaultToken if it is empty.
func (t FixedToken) Generate() string {
	if t == "" {
		return DefaultToken
	}
	return string(t)
}
