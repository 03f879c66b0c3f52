package reconcile

import (
	"errors"
	"fmt"
)

// InvariantCode identifies which internal invariant was broken.
type InvariantCode string

const (
	// ErrCodeSlotOccupied means a value was held back into a slot that already holds one.
	ErrCodeSlotOccupied InvariantCode = "SLOT_OCCUPIED"

	// ErrCodeEndExhausted means an exhausted end of a sequence was pulled again.
	ErrCodeEndExhausted InvariantCode = "END_EXHAUSTED"

	// ErrCodeStreamFinished means a finished stream was asked to step again internally.
	ErrCodeStreamFinished InvariantCode = "STREAM_FINISHED"
)

// InvariantError is the panic value used when the state machine reaches a
// state that correct code can never reach.
type InvariantError struct {
	Code    InvariantCode
	Message string
	End     End
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	return fmt.Sprintf("reconcile: %s: %s (end=%s)", e.Code, e.Message, e.End)
}

// IsInvariantError reports whether err (or a recovered panic value that is an
// error) is an InvariantError.
func IsInvariantError(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}

func violate(code InvariantCode, end End, format string, args ...any) {
	panic(&InvariantError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		End:     end,
	})
}
