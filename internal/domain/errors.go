package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a travel record or a storage key does not exist.
// Handlers map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a business rule
// (missing location, end date before start date, non-numeric budget).
// Handlers map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrParse is returned when the persisted collection cannot be decoded.
var ErrParse = errors.New("parse error")

// FieldError is a validation failure tied to one form field.
// errors.Is(err, ErrValidation) holds for every FieldError.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Message)
}

func (e *FieldError) Unwrap() error { return ErrValidation }

// ParseError reports a malformed value stored under Key.
type ParseError struct {
	Key string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: key %q: %v", ErrParse, e.Key, e.Err)
}

// Unwrap exposes both the sentinel and the decoder error.
func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }
