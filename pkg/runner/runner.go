package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
)

// ErrStepLimitExceeded is matched by StepLimitError.
var ErrStepLimitExceeded = errors.New("step limit exceeded")

// StepLimitError signals a possible infinite loop: the machine was still running when
// the ceiling was reached. Result holds the partial computation.
type StepLimitError struct {
	Limit  int
	Result *Result
}

func (e *StepLimitError) Error() string {
	return fmt.Sprintf("machine still running after %d steps, possible infinite loop", e.Limit)
}

func (e *StepLimitError) Unwrap() error {
	return ErrStepLimitExceeded
}

// Result summarizes a run.
type Result struct {
	Status    domain.Status `json:"status"`
	State     domain.State  `json:"state"`
	Steps     int           `json:"steps"` // PerformStep calls made by this run
	Input     domain.Word   `json:"input"`
	Tape      domain.Word   `json:"tape"`
	HeadIndex int           `json:"head_index"`
	AutoBuilt bool          `json:"auto_built,omitempty"`
}

// Halted reports whether the machine reached Accepting or Denying.
func (r *Result) Halted() bool {
	return r.Status.Terminal()
}

// Runner drives machines until they halt.
type Runner struct {
	// MaxSteps bounds a single Run. Values below 1 select DefaultMaxSteps.
	MaxSteps int

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Observer, if set, sees the machine after every step.
	Observer Observer
}

// NewRunner creates a Runner with the given options.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		MaxSteps: DefaultMaxSteps,
		Logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run builds m if it is still unbuilt and steps it until it halts, the step ceiling
// is reached or ctx is done. A machine that already halted is reported as is.
func (r *Runner) Run(ctx context.Context, m ports.Machine) (*Result, error) {
	autoBuilt, err := r.ensureBuilt(m)
	if err != nil {
		return nil, err
	}

	limit := r.limit()
	steps := 0
	for m.IsRunning() {
		if steps >= limit {
			res := r.result(m, steps, autoBuilt)
			r.logger().Warn("step limit reached", "limit", limit, "state", res.State)
			return res, &StepLimitError{Limit: limit, Result: res}
		}
		if err := ctx.Err(); err != nil {
			return r.result(m, steps, autoBuilt), err
		}

		if err := m.PerformStep(); err != nil {
			return r.result(m, steps, autoBuilt), fmt.Errorf("step %d: %w", steps+1, err)
		}
		steps++

		if r.Observer != nil {
			r.Observer(steps, m)
		}
	}

	res := r.result(m, steps, autoBuilt)
	r.logger().Debug("run finished", "status", res.Status, "steps", steps)
	return res, nil
}

// Step builds m if needed and performs a single step.
func (r *Runner) Step(m ports.Machine) (*Result, error) {
	autoBuilt, err := r.ensureBuilt(m)
	if err != nil {
		return nil, err
	}
	if err := m.PerformStep(); err != nil {
		return nil, err
	}
	if r.Observer != nil {
		r.Observer(1, m)
	}
	return r.result(m, 1, autoBuilt), nil
}

// Run drives m with a default Runner configured by opts.
func Run(ctx context.Context, m ports.Machine, opts ...Option) (*Result, error) {
	return NewRunner(opts...).Run(ctx, m)
}

func (r *Runner) ensureBuilt(m ports.Machine) (bool, error) {
	if !m.IsUnbuilt() {
		return false, nil
	}
	if err := m.Build(); err != nil {
		return false, fmt.Errorf("auto build: %w", err)
	}
	r.logger().Debug("machine built automatically")
	return true, nil
}

func (r *Runner) result(m ports.Machine, steps int, autoBuilt bool) *Result {
	res := &Result{
		Status:    m.Status(),
		State:     m.CurrentState(),
		Steps:     steps,
		Input:     m.Input(),
		AutoBuilt: autoBuilt,
	}
	// The machine is built at this point, so the tape queries cannot fail.
	res.Tape, _ = m.TapeContent()
	res.HeadIndex, _ = m.HeadIndex()
	return res
}

func (r *Runner) limit() int {
	if r.MaxSteps < 1 {
		return DefaultMaxSteps
	}
	return r.MaxSteps
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return logging.NewNop()
	}
	return r.Logger
}
