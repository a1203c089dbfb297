package runner

import (
	"log/slog"

	"github.com/aretw0/turing/pkg/ports"
)

// DefaultMaxSteps is the step ceiling used when none is configured.
const DefaultMaxSteps = 10000

// Observer is called after every step performed by the runner.
type Observer func(step int, m ports.Machine)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithMaxSteps sets the step ceiling. Values below 1 select DefaultMaxSteps.
func WithMaxSteps(n int) Option {
	return func(r *Runner) {
		r.MaxSteps = n
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithObserver registers a callback invoked after each step, e.g. for tracing.
func WithObserver(obs Observer) Option {
	return func(r *Runner) {
		r.Observer = obs
	}
}
