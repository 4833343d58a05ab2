package order

import "fmt"

// ValidationError rejects one field of operator input. It is never retried;
// the operator has to correct the value.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func newValidationError(field, value, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Invalid %s: '%s'. %s", e.Field, e.Value, e.Reason)
}
