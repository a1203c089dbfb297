package program

import (
	"errors"
	"fmt"
)

// ErrDuplicateTransition is returned by Apply when two transitions share a configuration.
var ErrDuplicateTransition = errors.New("duplicate transition")

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Key    string // Field name, e.g. "transitions[2]"
	Reason string // Human-readable reason for failure
	Err    error  // Underlying cause, if any
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("field %q: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("field %q: %s: %v", e.Key, e.Reason, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
