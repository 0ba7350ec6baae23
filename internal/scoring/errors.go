package scoring

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError reports a batch the engine refuses to score.
// Index is the offending record's input position, or -1 for batch-level
// problems.
type ValidationError struct {
	Index int
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return e.Msg
	}
	return fmt.Sprintf("tasks[%d].%s: %s", e.Index, e.Field, e.Msg)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
