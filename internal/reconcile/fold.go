package reconcile

// Placement tracks where the next output element goes in a positional array
// that is filled from both ends at once.
type Placement struct {
	head int
	tail int
}

// NewPlacement returns a placement for an output of length n.
func NewPlacement(n int) Placement {
	return Placement{head: 0, tail: n - 1}
}

// Next returns the index for an element placed at end and advances that end.
func (p *Placement) Next(end End) int {
	if end == Tail {
		i := p.tail
		p.tail--
		return i
	}
	i := p.head
	p.head++
	return i
}

// Remaining returns how many positions are still unfilled.
func (p Placement) Remaining() int {
	return p.tail - p.head + 1
}

// Sink receives the effects of a reconciliation and produces output elements.
type Sink[C, V, R, T any] interface {
	// Recycled converts a recycled result into an output element.
	Recycled(result R, oldEnd, newEnd End) T
	// Added creates an output element for a value with no recycled component.
	Added(value V) T
	// Removed disposes of a component that is not part of the output.
	Removed(component C)
}

// Fold drives s to completion and writes every element into an array of
// length n, the length of the new sequence. Recycled results land at the
// write-head or write-tail according to their new end; added values fill the
// gap between the two in order.
func Fold[C, V, R, T any](s *Stream[C, V, R], n int, sink Sink[C, V, R, T]) []T {
	out := make([]T, n)
	place := NewPlacement(n)
	for in := range s.All() {
		switch in.Kind {
		case KindRecycle:
			out[place.Next(in.NewEnd)] = sink.Recycled(in.Result, in.OldEnd, in.NewEnd)
		case KindRemove:
			sink.Removed(in.Component)
		case KindAddRemaining:
			for _, v := range in.Values {
				out[place.Next(Head)] = sink.Added(v)
			}
		case KindRemoveRemaining:
			for _, c := range in.Components {
				sink.Removed(c)
			}
		}
	}
	return out
}

// Reconcile folds old against next in one call.
func Reconcile[C, V, R, T any](old []C, next []V, rec Recycler[C, V, R], sink Sink[C, V, R, T]) []T {
	return Fold(NewStream(FromSlice(old), FromSlice(next), rec), len(next), sink)
}

// Counts tallies what a stream consumed.
type Counts struct {
	Recycled int  `json:"recycled"`
	Removed  int  `json:"removed"`
	Added    int  `json:"added"`
	Final    Kind `json:"-"`
}

// Add records one instruction.
func (c *Counts) Add(kind Kind, payload int) {
	switch kind {
	case KindRecycle:
		c.Recycled++
	case KindRemove:
		c.Removed++
	case KindAddRemaining:
		c.Added += payload
	case KindRemoveRemaining:
		c.Removed += payload
	}
	if kind.Final() {
		c.Final = kind
	}
}

// Old returns how many old components were consumed.
func (c Counts) Old() int {
	return c.Recycled + c.Removed
}

// New returns how many new values were consumed.
func (c Counts) New() int {
	return c.Recycled + c.Added
}

// Tally drains s and counts its instructions.
func Tally[C, V, R any](s *Stream[C, V, R]) Counts {
	var c Counts
	for in := range s.All() {
		c.Add(in.Kind, len(in.Values)+len(in.Components))
	}
	return c
}
