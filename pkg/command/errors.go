package command

import (
	"errors"
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/program"
)

var (
	// ErrUnknownCommand is wrapped by UsageError when no command matches.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrNoStore is wrapped by UsageError when a program command runs without a store.
	ErrNoStore = errors.New("no program store configured")
)

// UsageError reports a mistake of the user, as opposed to an internal failure.
type UsageError struct {
	Command string
	Reason  string
	Err     error
}

func (e *UsageError) Error() string {
	if e.Command == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Command, e.Reason)
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

func usagef(cmd string, format string, args ...any) *UsageError {
	return &UsageError{Command: cmd, Reason: fmt.Sprintf(format, args...)}
}

// classify turns errors caused by user input into UsageErrors.
func classify(cmd string, err error) error {
	if err == nil {
		return nil
	}
	var usage *UsageError
	if errors.As(err, &usage) {
		return err
	}
	if errors.Is(err, domain.ErrPrecondition) ||
		errors.Is(err, domain.ErrInvalidArgument) ||
		errors.Is(err, domain.ErrProgramNotFound) ||
		errors.Is(err, program.ErrDuplicateTransition) ||
		len(program.ValidationErrors(err)) > 0 {
		return &UsageError{Command: cmd, Reason: err.Error(), Err: err}
	}
	return err
}
