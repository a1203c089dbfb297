package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/command"
	"github.com/aretw0/turing/pkg/machine"
)

// ReplOptions configures an interactive session.
type ReplOptions struct {
	In          io.Reader
	Out         io.Writer
	Dispatcher  *command.Dispatcher
	Machine     *machine.Deterministic // A fresh machine is created when nil
	Interactive bool                   // Print the banner and prompts
	Color       bool
	Version     string
	Logger      *slog.Logger
}

// REPL reads command lines from opts.In until EOF, "exit" or cancellation.
// A line ending in a backslash continues on the next line, e.g. to add several transitions.
func REPL(ctx context.Context, opts ReplOptions) error {
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	m := opts.Machine
	if m == nil {
		m = machine.New(machine.WithLogger(opts.Logger))
	}

	out := tui.NewOutput(opts.Out, opts.Color)
	printer := tui.NewPrinter(out, tui.NewRenderer(opts.Color))
	if opts.Interactive {
		tui.PrintBanner(out, opts.Version)
		printer.System("Type 'help' for the command list, 'exit' to quit.")
	}

	scanner := bufio.NewScanner(NewInterruptibleReader(opts.In, ctx.Done()))
	var pending []string
	for {
		if opts.Interactive {
			if len(pending) > 0 {
				io.WriteString(out, "... ")
			} else {
				io.WriteString(out, "> ")
			}
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return HandleExecutionError(err)
			}
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if cont, ok := strings.CutSuffix(line, "\\"); ok {
			pending = append(pending, strings.TrimSpace(cont))
			continue
		}
		line = strings.Join(append(pending, line), "\n")
		pending = nil

		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			if opts.Interactive {
				printer.System("Bye!")
			}
			return nil
		}

		reply, err := opts.Dispatcher.Dispatch(ctx, m, line)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			printer.Error(err)
			continue
		}
		printer.Reply(reply)

		name, _ := command.Split(line)
		if c, ok := opts.Dispatcher.Lookup(name); ok && (c.Name == "step" || c.Name == "run") {
			snap := m.Snapshot()
			printer.System("%s   %s", tui.RenderTape(out, snap), tui.RenderState(out, snap))
		}
	}
}
