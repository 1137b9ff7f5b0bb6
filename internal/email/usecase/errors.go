package usecase

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput is returned when an upload is not valid JSON.
	ErrMalformedInput = errors.New("invalid file format")
	// ErrNotAList is returned when an upload decodes to something other than an array.
	ErrNotAList = errors.New("data must be an array of email objects")

	ErrNoEmails           = errors.New("no emails loaded")
	ErrIndexingInProgress = errors.New("indexing already in progress")
	ErrEmptyQuestion      = errors.New("question must not be empty")
)

// MissingFieldError reports the first record/field pair lacking a value.
type MissingFieldError struct {
	Index int // position of the record in the batch
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// InvalidFieldError reports a present field whose value is not a string.
type InvalidFieldError struct {
	Index  int
	Field  string
	Detail string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid field %s in email %d: %s", e.Field, e.Index, e.Detail)
}

// IsValidationError reports whether err came from batch validation.
func IsValidationError(err error) bool {
	var missing *MissingFieldError
	var invalid *InvalidFieldError
	return errors.Is(err, ErrMalformedInput) ||
		errors.Is(err, ErrNotAList) ||
		errors.As(err, &missing) ||
		errors.As(err, &invalid)
}
