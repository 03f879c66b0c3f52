package reconcile

// endState is the per-end state of an underlying sequence.
type endState uint8

const (
	endActive endState = iota
	endExhausted
)

// slot holds at most one item taken from a sequence but not yet consumed.
type slot[T any] struct {
	item T
	full bool
}

// cursor is the two-pointer view over one sequence: the underlying source,
// the active/exhausted state of each end, and one held-back slot per end.
type cursor[T any] struct {
	seq   Sequence[T]
	state [2]endState
	slots [2]slot[T]
}

func newCursor[T any](seq Sequence[T]) *cursor[T] {
	return &cursor[T]{seq: seq}
}

// pull draws a fresh element from the underlying sequence at end. The end
// moves to exhausted the first time it comes back empty and must never be
// pulled again.
func (c *cursor[T]) pull(end End) (T, bool) {
	if c.state[end] == endExhausted {
		violate(ErrCodeEndExhausted, end, "pull from exhausted end")
	}
	var (
		v  T
		ok bool
	)
	if end == Head {
		v, ok = c.seq.Front()
	} else {
		v, ok = c.seq.Back()
	}
	if !ok {
		c.state[end] = endExhausted
	}
	return v, ok
}

// unslot empties the slot at end and returns what it held.
func (c *cursor[T]) unslot(end End) (T, bool) {
	s := &c.slots[end]
	if !s.full {
		var zero T
		return zero, false
	}
	v := s.item
	*s = slot[T]{}
	return v, true
}

// take returns the next element at end: the held-back slot first, then the
// underlying sequence, then the opposite slot (the last element left is both
// head and tail).
func (c *cursor[T]) take(end End) (T, bool) {
	if v, ok := c.unslot(end); ok {
		return v, true
	}
	if c.state[end] == endActive {
		if v, ok := c.pull(end); ok {
			return v, true
		}
	}
	return c.unslot(end.opposite())
}

// put holds v back at end for the next step.
func (c *cursor[T]) put(end End, v T) {
	if c.slots[end].full {
		violate(ErrCodeSlotOccupied, end, "slot already holds an item")
	}
	c.slots[end] = slot[T]{item: v, full: true}
}

// drain removes and returns every remaining element in sequence order.
func (c *cursor[T]) drain() []T {
	var out []T
	if v, ok := c.unslot(Head); ok {
		out = append(out, v)
	}
	// An empty underlying sequence is empty from both ends, so either end
	// being exhausted means there is nothing in the middle.
	if c.state[Head] == endActive && c.state[Tail] == endActive {
		for {
			v, ok := c.pull(Head)
			if !ok {
				break
			}
			out = append(out, v)
		}
	}
	if v, ok := c.unslot(Tail); ok {
		out = append(out, v)
	}
	return out
}

// held reports how many items are held back.
func (c *cursor[T]) held() int {
	n := 0
	for _, s := range c.slots {
		if s.full {
			n++
		}
	}
	return n
}
