package field

import (
	"errors"
	"fmt"
)

// Sentinel kinds for field validation and codec errors.
var (
	ErrInvalidField = errors.New("invalid field")
	ErrBadCriteria  = errors.New("malformed criteria document")
)

// InvalidFieldError reports which field failed validation and why.
// It unwraps to ErrInvalidField so callers can test with errors.Is.
type InvalidFieldError struct {
	ID     string
	Name   string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	label := e.ID
	if label == "" {
		label = e.Name
	}
	return fmt.Sprintf("invalid field %q: %s", label, e.Reason)
}

func (e *InvalidFieldError) Unwrap() error { return ErrInvalidField }

func invalid(f Field, reason string) error {
	return &InvalidFieldError{ID: f.ID, Name: f.Name, Reason: reason}
}
