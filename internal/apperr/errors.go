package apperr

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks malformed caller arguments. Callers check it with
// errors.Is; the concrete error is usually an *InputError.
var ErrInvalidInput = errors.New("invalid input")

// ErrNotFound indicates an id lookup missed.
var ErrNotFound = errors.New("not found")

// InputError describes which operation rejected its input and why.
type InputError struct {
	Op     string
	Reason string
}

func (e *InputError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("invalid input: %s", e.Reason)
	}
	return fmt.Sprintf("%s: invalid input: %s", e.Op, e.Reason)
}

// Is reports true for ErrInvalidInput so errors.Is works through wrapping.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// InvalidInput returns an *InputError for op with a formatted reason.
func InvalidInput(op, format string, args ...any) error {
	return &InputError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// NotFound wraps ErrNotFound with the kind and id that missed.
func NotFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}
