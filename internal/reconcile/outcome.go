package reconcile

// End identifies one end of a sequence.
type End uint8

const (
	// Head is the front of a sequence.
	Head End = iota
	// Tail is the back of a sequence.
	Tail
)

// String returns "head" or "tail".
func (e End) String() string {
	if e == Tail {
		return "tail"
	}
	return "head"
}

// opposite returns the other end.
func (e End) opposite() End {
	return 1 - e
}

// Outcome is the result of one recycle attempt: either Recycled with a result,
// or Rejected with the original component and value handed back.
type Outcome[C, V, R any] struct {
	recycled  bool
	result    R
	component C
	value     V
}

// Recycled builds a successful outcome.
func Recycled[C, V, R any](result R) Outcome[C, V, R] {
	return Outcome[C, V, R]{recycled: true, result: result}
}

// Rejected builds a failed outcome that returns both inputs to the caller.
// Implementations must pass back the component and value exactly as received.
func Rejected[C, V, R any](component C, value V) Outcome[C, V, R] {
	return Outcome[C, V, R]{component: component, value: value}
}

// IsRecycled reports whether the component accepted the value.
func (o Outcome[C, V, R]) IsRecycled() bool { return o.recycled }

// Result returns the recycled result. It is the zero R for a rejection.
func (o Outcome[C, V, R]) Result() R { return o.result }

// Rejected returns the handed-back pair. Both are zero for a success.
func (o Outcome[C, V, R]) Rejected() (C, V) { return o.component, o.value }

// Recycler tests one component against one value.
//
// On success the component has been updated to represent the value. On
// failure nothing may have been mutated: the same component and value will be
// tried against other candidates.
type Recycler[C, V, R any] interface {
	Recycle(component C, value V) Outcome[C, V, R]
}

// RecycleFunc adapts a predicate-with-result into a Recycler. The function is
// only allowed to mutate the component when it returns ok == true.
type RecycleFunc[C, V, R any] func(component C, value V) (result R, ok bool)

// Recycle implements Recycler.
func (f RecycleFunc[C, V, R]) Recycle(component C, value V) Outcome[C, V, R] {
	if result, ok := f(component, value); ok {
		return Recycled[C, V](result)
	}
	return Rejected[C, V, R](component, value)
}
