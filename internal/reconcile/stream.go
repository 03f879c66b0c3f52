package reconcile

import "iter"

// Stream lazily produces the instructions that turn the old components into
// the new values. It is driven by a single caller and is not restartable.
type Stream[C, V, R any] struct {
	rec      Recycler[C, V, R]
	old      *cursor[C]
	new      *cursor[V]
	finished bool
}

// NewStream prepares a reconciliation of old against next. Nothing is read
// from either sequence until the first call to Next.
func NewStream[C, V, R any](old Sequence[C], next Sequence[V], rec Recycler[C, V, R]) *Stream[C, V, R] {
	return &Stream[C, V, R]{
		rec: rec,
		old: newCursor(old),
		new: newCursor(next),
	}
}

// Next performs one step and returns its instruction. After the terminal
// instruction has been returned, Next reports false.
func (s *Stream[C, V, R]) Next() (Instruction[C, V, R], bool) {
	if s.finished {
		return Instruction[C, V, R]{}, false
	}
	in := s.step()
	if in.Kind.Final() {
		s.finish()
	}
	return in, true
}

// All returns an iterator over the remaining instructions. Breaking out of
// the loop leaves the unconsumed components and values with their sequences.
func (s *Stream[C, V, R]) All() iter.Seq[Instruction[C, V, R]] {
	return func(yield func(Instruction[C, V, R]) bool) {
		for {
			in, ok := s.Next()
			if !ok || !yield(in) {
				return
			}
		}
	}
}

// Finished reports whether the terminal instruction has been emitted.
func (s *Stream[C, V, R]) Finished() bool {
	return s.finished
}

func (s *Stream[C, V, R]) finish() {
	if n := s.old.held() + s.new.held(); n != 0 {
		violate(ErrCodeStreamFinished, Head, "%d item(s) still held after terminal instruction", n)
	}
	s.finished = true
}

// step is one macro-step of the four-corner scan.
func (s *Stream[C, V, R]) step() Instruction[C, V, R] {
	oldHead, ok := s.old.take(Head)
	if !ok {
		newHead, ok := s.new.take(Head)
		if !ok {
			return Instruction[C, V, R]{Kind: KindDone}
		}
		return Instruction[C, V, R]{
			Kind:   KindAddRemaining,
			Values: append([]V{newHead}, s.new.drain()...),
		}
	}

	newHead, ok := s.new.take(Head)
	if !ok {
		return Instruction[C, V, R]{
			Kind:       KindRemoveRemaining,
			Components: append([]C{oldHead}, s.old.drain()...),
		}
	}

	out := s.rec.Recycle(oldHead, newHead)
	if out.IsRecycled() {
		return recycled[C, V](Head, Head, out.Result())
	}
	oldHead, newHead = out.Rejected()

	newTail, ok := s.new.take(Tail)
	if !ok {
		// newHead is the last value and oldHead cannot represent it.
		s.new.put(Head, newHead)
		return removed[V, R](oldHead)
	}

	oldTail, ok := s.old.take(Tail)
	if !ok {
		// oldHead is the last component.
		s.new.put(Head, newHead)
		s.new.put(Tail, newTail)
		return removed[V, R](oldHead)
	}

	out = s.rec.Recycle(oldTail, newTail)
	if out.IsRecycled() {
		s.old.put(Head, oldHead)
		s.new.put(Head, newHead)
		return recycled[C, V](Tail, Tail, out.Result())
	}
	oldTail, newTail = out.Rejected()

	out = s.rec.Recycle(oldHead, newTail)
	if out.IsRecycled() {
		s.old.put(Tail, oldTail)
		s.new.put(Head, newHead)
		return recycled[C, V](Head, Tail, out.Result())
	}
	oldHead, newTail = out.Rejected()

	out = s.rec.Recycle(oldTail, newHead)
	if out.IsRecycled() {
		s.old.put(Head, oldHead)
		s.new.put(Tail, newTail)
		return recycled[C, V](Tail, Head, out.Result())
	}
	oldTail, newHead = out.Rejected()

	s.old.put(Tail, oldTail)
	s.new.put(Head, newHead)
	s.new.put(Tail, newTail)
	return removed[V, R](oldHead)
}

func recycled[C, V, R any](oldEnd, newEnd End, result R) Instruction[C, V, R] {
	return Instruction[C, V, R]{Kind: KindRecycle, OldEnd: oldEnd, NewEnd: newEnd, Result: result}
}

func removed[V, R, C any](component C) Instruction[C, V, R] {
	return Instruction[C, V, R]{Kind: KindRemove, OldEnd: Head, Component: component}
}
