// internal/events/errors.go
package events

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation error")

// ValidationError reports malformed input to an operation.
type ValidationError struct {
	Op    string // operation that rejected the input
	Field string // offending field, may be empty
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Field, e.Msg)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Invalid builds a *ValidationError.
func Invalid(op, field, format string, a ...any) error {
	return &ValidationError{Op: op, Field: field, Msg: fmt.Sprintf(format, a...)}
}

// ContiguityError describes the first pair of events that do not abut.
// It is informational: callers decide whether it is fatal.
type ContiguityError struct {
	Index     int // event whose end does not meet the next start
	End       float64
	NextStart float64
}

func (e *ContiguityError) Error() string {
	return fmt.Sprintf("event %d ends at %g but event %d starts at %g", e.Index, e.End, e.Index+1, e.NextStart)
}
