package service

import "errors"

// Service outcome errors. All are terminal and non-retryable: the caller
// maps them straight to a response status.
var (
	// ErrNotFound is returned when a resource id does not resolve
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden is returned when the actor is authenticated but the
	// action is denied
	ErrForbidden = errors.New("forbidden")
)

// ValidationError reports a field-level constraint violation, such as an
// invalid enum value or an assignee who is not a board member.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func validationErr(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
