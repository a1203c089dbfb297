package turing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/program"
	"github.com/aretw0/turing/pkg/runner"
)

// Engine is the high-level entry point for the library.
// It pairs a machine with the runner that drives it.
type Engine struct {
	machine *machine.Deterministic
	runner  *runner.Runner
	hooks   domain.LifecycleHooks
	logger  *slog.Logger

	maxSteps int
	observer runner.Observer

	// Name is the name of the program the engine was loaded from, if any.
	Name string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMaxSteps sets the step ceiling of Run.
func WithMaxSteps(n int) Option {
	return func(e *Engine) {
		e.maxSteps = n
	}
}

// WithObserver is called after every step performed by Run or Step.
func WithObserver(obs runner.Observer) Option {
	return func(e *Engine) {
		e.observer = obs
	}
}

// New creates an engine around an empty, modifiable machine.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("program", eng.Name)
	}

	eng.machine = machine.New(
		machine.WithLogger(eng.logger),
		machine.WithLifecycleHooks(eng.hooks),
	)
	eng.runner = runner.NewRunner(
		runner.WithMaxSteps(eng.maxSteps),
		runner.WithLogger(eng.logger),
		runner.WithObserver(eng.observer),
	)
	return eng
}

// FromProgram creates an engine whose machine is configured by prog.
func FromProgram(prog *program.Program, opts ...Option) (*Engine, error) {
	if err := prog.Validate(); err != nil {
		return nil, err
	}
	eng := New(append([]Option{withName(prog.Name)}, opts...)...)
	if err := prog.Apply(eng.machine); err != nil {
		return nil, fmt.Errorf("failed to apply program %q: %w", prog.Name, err)
	}
	return eng, nil
}

// Load reads a YAML program file and creates an engine for it.
func Load(path string, opts ...Option) (*Engine, error) {
	prog, err := program.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return FromProgram(prog, opts...)
}

func withName(name string) Option {
	return func(e *Engine) {
		e.Name = name
	}
}

// Machine returns the underlying machine, e.g. to configure it call by call.
func (e *Engine) Machine() *machine.Deterministic {
	return e.machine
}

// Run drives the machine until it halts, see runner.Runner.Run.
func (e *Engine) Run(ctx context.Context) (*runner.Result, error) {
	return e.runner.Run(ctx, e.machine)
}

// Step performs a single step, building the machine first if needed.
func (e *Engine) Step() (*runner.Result, error) {
	return e.runner.Step(e.machine)
}

// Snapshot returns a copy of the machine's configuration and tape.
func (e *Engine) Snapshot() machine.Snapshot {
	return e.machine.Snapshot()
}
