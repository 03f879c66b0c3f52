package reconcile

// Kind distinguishes instruction variants.
type Kind uint8

const (
	// KindRecycle means a component was updated in place to represent a value.
	KindRecycle Kind = iota + 1
	// KindRemove means a component has no counterpart and is discarded.
	KindRemove
	// KindAddRemaining means the old sequence ran out; the remaining values are inserted. Terminal.
	KindAddRemaining
	// KindRemoveRemaining means the new sequence ran out; the remaining components are removed. Terminal.
	KindRemoveRemaining
	// KindDone means both sequences ran out together. Terminal.
	KindDone
)

var kindNames = map[Kind]string{
	KindRecycle:         "recycle",
	KindRemove:          "remove",
	KindAddRemaining:    "add_remaining",
	KindRemoveRemaining: "remove_remaining",
	KindDone:            "done",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind returns the kind named name.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Final reports whether k ends a stream.
func (k Kind) Final() bool {
	return k == KindAddRemaining || k == KindRemoveRemaining || k == KindDone
}

// Instruction is one outcome of the scan. Which fields are meaningful depends
// on Kind:
//
//   - KindRecycle: OldEnd, NewEnd, Result
//   - KindRemove: OldEnd, Component
//   - KindAddRemaining: Values (never empty)
//   - KindRemoveRemaining: Components (never empty)
//   - KindDone: nothing
type Instruction[C, V, R any] struct {
	Kind       Kind
	OldEnd     End
	NewEnd     End
	Result     R
	Component  C
	Values     []V
	Components []C
}

// Name returns a compact label such as "recycle_tail_head" or "remove_head".
func (in Instruction[C, V, R]) Name() string {
	switch in.Kind {
	case KindRecycle:
		return "recycle_" + in.OldEnd.String() + "_" + in.NewEnd.String()
	case KindRemove:
		return "remove_" + in.OldEnd.String()
	default:
		return in.Kind.String()
	}
}
