package reconcile

// Sequence is a finite double-ended source. Front and Back each remove and
// return one element; both report false once the sequence is empty.
type Sequence[T any] interface {
	Front() (T, bool)
	Back() (T, bool)
}

// SliceSequence is a Sequence over a slice. It never copies or mutates the
// backing array.
type SliceSequence[T any] struct {
	items []T
	lo    int
	hi    int
}

// FromSlice returns a Sequence yielding items in order from the front and in
// reverse order from the back.
func FromSlice[T any](items []T) *SliceSequence[T] {
	return &SliceSequence[T]{items: items, hi: len(items)}
}

// Front implements Sequence.
func (s *SliceSequence[T]) Front() (T, bool) {
	if s.lo >= s.hi {
		var zero T
		return zero, false
	}
	v := s.items[s.lo]
	s.lo++
	return v, true
}

// Back implements Sequence.
func (s *SliceSequence[T]) Back() (T, bool) {
	if s.lo >= s.hi {
		var zero T
		return zero, false
	}
	s.hi--
	return s.items[s.hi], true
}

// Len returns the number of elements not yet taken.
func (s *SliceSequence[T]) Len() int {
	return s.hi - s.lo
}
