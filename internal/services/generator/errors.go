package generator

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the sentinel for every rejected generator request.
var ErrInvalidInput = errors.New("invalid input")

// InputError describes which request field was rejected and why.
type InputError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s %q: %s", e.Field, e.Value, e.Reason)
}

// Unwrap lets errors.Is(err, ErrInvalidInput) match.
func (e *InputError) Unwrap() error { return ErrInvalidInput }

func invalid(field, value, reason string) error {
	return &InputError{Field: field, Value: value, Reason: reason}
}
