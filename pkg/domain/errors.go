package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPrecondition is matched by every lifecycle violation, e.g. configuring a running machine.
var ErrPrecondition = errors.New("precondition violated")

// ErrInvalidArgument is matched by errors caused by malformed caller input.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrProgramNotFound is returned when a program name cannot be found in the store.
var ErrProgramNotFound = errors.New("program not found")

// PreconditionError reports an operation that is not legal in the current status.
// The machine is left untouched when it is returned.
type PreconditionError struct {
	Op     string // Operation that was attempted, e.g. "build"
	Status Status // Status of the machine at the time of the call
	Reason string // Human-readable requirement
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s (machine is %s)", e.Op, e.Reason, e.Status)
}

func (e *PreconditionError) Unwrap() error {
	return ErrPrecondition
}

// InvalidMoveError is returned when a head motion token cannot be parsed.
type InvalidMoveError struct {
	Token   string
	Allowed []string
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("invalid tape move %q (expected one of %s)", e.Token, strings.Join(e.Allowed, ", "))
}

func (e *InvalidMoveError) Unwrap() error {
	return ErrInvalidArgument
}
