package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/command"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/program"
	"github.com/aretw0/turing/pkg/runner"
)

// RunOptions configures a one-shot program run.
type RunOptions struct {
	Path     string
	Input    *string // Overrides the program input when set
	MaxSteps int
	Trace    bool // Print the tape after every step
	Out      io.Writer
	Color    bool
	Hooks    domain.LifecycleHooks
	Logger   *slog.Logger
}

// RunProgram loads the program at opts.Path and runs it to completion.
// A run stopped by the step ceiling is reported and returned as a runner.StepLimitError.
func RunProgram(ctx context.Context, opts RunOptions) (*runner.Result, error) {
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}

	prog, err := program.LoadFile(opts.Path)
	if err != nil {
		return nil, err
	}
	if opts.Input != nil {
		prog.Input = *opts.Input
	}

	out := tui.NewOutput(opts.Out, opts.Color)
	printer := tui.NewPrinter(out, nil)

	var eng *turing.Engine
	engineOpts := []turing.Option{
		turing.WithLogger(opts.Logger),
		turing.WithMaxSteps(opts.MaxSteps),
		turing.WithLifecycleHooks(opts.Hooks),
	}
	if opts.Trace {
		engineOpts = append(engineOpts, turing.WithObserver(func(step int, _ ports.Machine) {
			snap := eng.Snapshot()
			fmt.Fprintf(out, "%5d  %s  %s\n", step, tui.RenderTape(out, snap), tui.RenderState(out, snap))
		}))
	}

	eng, err = turing.FromProgram(prog, engineOpts...)
	if err != nil {
		return nil, err
	}
	opts.Logger.Info("running program", "program", prog.Name, "input", prog.Input)

	res, err := eng.Run(ctx)
	var limitErr *runner.StepLimitError
	switch {
	case errors.As(err, &limitErr):
		printer.Reply(command.Reply{
			Title:   "Run interrupted",
			Body:    tui.RenderTape(out, eng.Snapshot()),
			Notices: []string{fmt.Sprintf("The machine is still running after %d steps, possibly an infinite loop.", limitErr.Limit)},
		})
		return res, err
	case err != nil:
		return res, err
	}

	printer.Reply(command.Reply{
		Title:  string(res.Status),
		Body:   command.TerminationMessage(eng.Machine()),
		Status: res.Status,
		Halted: true,
	})
	fmt.Fprintf(out, "Steps: %d\n", res.Steps)
	return res, nil
}
