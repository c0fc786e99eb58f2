package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested book id does not exist.
var ErrNotFound = errors.New("book not found")

// ValidationError reports a malformed or missing query term. Handlers map it
// to a client error; everything else coming out of the service is a
// dependency failure.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
