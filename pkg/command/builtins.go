package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/notation"
	"github.com/aretw0/turing/pkg/program"
	"github.com/aretw0/turing/pkg/runner"
)

const terminatedTitle = "The Turing machine terminated."

func builtins() []Command {
	return []Command{
		{
			Name:    "help",
			Aliases: []string{"?"},
			Summary: "Lists the commands, or explains one of them.",
			Usage:   "help [command]",
			Run:     runHelp,
		},
		{
			Name:    "add",
			Summary: "Adds transitions to the machine, one per line.",
			Usage:   "add (state, symbol) -> (next state, printed symbol, L|R|N)",
			Run:     runAdd,
		},
		{
			Name: "accept",
			Summary: "Defines the set of final, accepting states. The states are separated by " +
				"whitespace and/or commas.",
			Usage: "accept <state> [state...]",
			Run:   runAccept,
		},
		{
			Name:    "initial",
			Summary: "Sets the state the machine starts in. It can only be set once.",
			Usage:   "initial <state>",
			Run:     runInitial,
		},
		{
			Name: "blank",
			Summary: "Sets the blank symbol the empty tape is filled with. Surround it with " +
				"quotes to use whitespace.",
			Usage: "blank <symbol>",
			Run:   runBlank,
		},
		{
			Name:    "input",
			Summary: "Sets the input word written to the tape when the machine is built.",
			Usage:   "input [word]",
			Run:     runInput,
		},
		{
			Name: "build",
			Summary: "Builds the machine. Once built it can no longer be modified. Missing " +
				"initial/accepting states and blank symbol fall back to the defaults.",
			Usage: "build",
			Run:   runBuild,
		},
		{
			Name:    "step",
			Aliases: []string{"s"},
			Summary: "Performs one calculation step, building the machine first if needed.",
			Usage:   "step",
			Run:     runStep,
		},
		{
			Name:    "run",
			Aliases: []string{"r"},
			Summary: "Executes the machine until it terminates or the step limit is reached.",
			Usage:   "run [max steps]",
			Run:     runRun,
		},
		{
			Name:    "config",
			Aliases: []string{"show"},
			Summary: "Prints the current configuration: tape content, head position and state.",
			Usage:   "config",
			Run:     runConfig,
		},
		{
			Name:    "restart",
			Summary: "Runs the same machine again on a fresh tape.",
			Usage:   "restart",
			Run:     runRestart,
		},
		{
			Name:    "clear",
			Aliases: []string{"new"},
			Summary: "Discards the configuration and the tape, keeping the blank symbol.",
			Usage:   "clear",
			Run:     runClear,
		},
		{
			Name:    "save",
			Summary: "Stores the machine configuration as a named program.",
			Usage:   "save <name>",
			Run:     runSave,
		},
		{
			Name:    "load",
			Summary: "Replaces the machine with a stored program.",
			Usage:   "load <name>",
			Run:     runLoad,
		},
		{
			Name:    "programs",
			Aliases: []string{"ls"},
			Summary: "Lists the stored programs.",
			Usage:   "programs",
			Run:     runPrograms,
		},
	}
}

func runHelp(_ context.Context, d *Dispatcher, _ *machine.Deterministic, arg string) (Reply, error) {
	if arg != "" {
		c, ok := d.Lookup(arg)
		if !ok {
			return Reply{}, &UsageError{Command: arg, Reason: "unknown command", Err: ErrUnknownCommand}
		}
		return Reply{Title: c.Name, Body: fmt.Sprintf("`%s`\n\n%s", c.Usage, c.Summary), Markdown: true}, nil
	}
	return Reply{Title: "Commands", Body: d.Help(), Markdown: true}, nil
}

// Help renders the command list as Markdown.
func (d *Dispatcher) Help() string {
	var sb strings.Builder
	for i, c := range d.Commands() {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "- `%s`: %s", c.Usage, c.Summary)
	}
	return sb.String()
}

func runAdd(_ context.Context, _ *Dispatcher, m *machine.Deterministic, arg string) (Reply, error) {
	var parsed []domain.Transition
	for _, line := range strings.Split(arg, "\n") {
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		t, err := notation.ParseTransition(line)
		if err != nil {
			return Reply{}, err
		}
		parsed = append(parsed, t)
	}
	if len(parsed) == 0 {
		return Reply{}, usagef("add", "no transition given")
	}

	var reply Reply
	added := 0
	for _, t := range parsed {
		ok, err := m.AddTransition(t)
		if err != nil {
			return Reply{}, err
		}
		if !ok {
			reply.Notices = append(reply.Notices, fmt.Sprintf(
				"A transition for (%s, %s) is already defined, %s was ignored.",
				t.Current, t.Scanned, notation.FormatTransition(t)))
			continue
		}
		added++
	}

	reply.Title = "Transition added"
	if added != 1 {
		reply.Title = fmt.Sprintf("%d transitions added", added)
	}
	return reply, nil
}

func runAccept(_ context.Context, _ *Dispatcher, m *machine.Deterministic, arg string) (Reply, error) {
	states, err := notation.ParseStates(arg)
	if err != nil {
		return Reply{}, err
	}
	if err := m.SetAcceptingStates(states...); err != nil {
		return Reply{}, err
	}
	return Reply{Title: "Accepting states set"}, nil
}

func runInitial(_ context.Context, _ *Dispatcher, m *machine.Deterministic, arg string) (Reply, error) {
	states, err := notation.ParseStates(arg)
	if err != nil {
		return Reply{}, err
	}
	if len(states) != 1 {
		return Reply{}, usagef("initial", "exactly one state expected, got %d", len(states))
	}

	ok, err := m.AddInitialState(states[0])
	if err != nil {
		return Reply{}, err
	}
	if !ok {
		return Reply{
			Title:   "Initial state unchanged",
			Notices: []string{fmt.Sprintf("The initial state is already %s.", m.Snapshot().Initial)},
		}, nil
	}
	return Reply{Title: "Initial state set"}, nil
}

func runBlank(_ context.Context, _ *Dispatcher, m *machine.Deterministic, arg string) (Reply, error) {
	if arg == "" {
		return Reply{}, usagef("blank", "the blank symbol cannot be empty; surround whitespace with quotes")
	}
	blank := unquote(arg)
	if utf8.RuneCountInString(blank) != 1 {
		return Reply{}, usagef("blank", "the blank symbol must be a single character, got %q", blank)
	}
	if err := m.SetBlankSymbol(domain.BlankSymbol(blank)); err != nil {
		return Reply{}, err
	}
	return Reply{Title: "Blank symbol set"}, nil
}

func runInput(_ context.Context, _ *Dispatcher, m *machine.Deterministic, arg string) (Reply, error) {
	if err := m.SetInput(unquote(arg)); err != nil {
		return Reply{}, err
	}
	return Reply{Title: "Input set"}, nil
}

func runBuild(_ context.Context, _ *Dispatcher, m *machine.Deterministic, _ string) (Reply, error) {
	if err := m.Build(); err != nil {
		return Reply{}, err
	}
	return Reply{Title: "Machine built", Body: configuration(m)}, nil
}

func runStep(_ context.Context, d *Dispatcher, m *machine.Deterministic, _ string) (Reply, error) {
	res, err := runner.NewRunner(runner.WithLogger(d.logger)).Step(m)
	if err != nil {
		return Reply{}, err
	}

	var reply Reply
	if res.AutoBuilt {
		reply.Notices = append(reply.Notices, "Executed Turing machine build automatically.")
	}
	if res.Halted() {
		reply.Title = terminatedTitle
		reply.Body = TerminationMessage(m)
		reply.Halted = true
		return reply, nil
	}
	reply.Title = "Step performed"
	reply.Body = configuration(m)
	return reply, nil
}

func runRun(ctx context.Context, d *Dispatcher, m *machine.Deterministic, arg string) (Reply, error) {
	limit := d.maxSteps
	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			return Reply{}, usagef("run", "max steps must be a positive number, got %q", arg)
		}
		limit = n
	}
	if m.Status().Terminal() {
		return Reply{}, &domain.PreconditionError{
			Op:     "run",
			Status: m.Status(),
			Reason: "machine already halted, use restart to run it again",
		}
	}

	res, err := runner.Run(ctx, m, runner.WithMaxSteps(limit), runner.WithLogger(d.logger))

	var reply Reply
	if res != nil && res.AutoBuilt {
		reply.Notices = append(reply.Notices, "Executed Turing machine build automatically.")
	}

	var limitErr *runner.StepLimitError
	if errors.As(err, &limitErr) {
		if d.metrics != nil {
			d.metrics.ObserveStepLimit()
		}
		reply.Title = "Run interrupted"
		reply.Body = configuration(m)
		reply.Notices = append(reply.Notices, fmt.Sprintf(
			"The machine is still running after %d steps, possibly an infinite loop. "+
				"Use run again to continue.", limitErr.Limit))
		return reply, nil
	}
	if err != nil {
		return Reply{}, err
	}

	reply.Title = terminatedTitle
	reply.Body = TerminationMessage(m)
	reply.Halted = true
	return reply, nil
}

func runConfig(_ context.Context, _ *Dispatcher, m *machine.Deterministic, _ string) (Reply, error) {
	if m.IsUnbuilt() {
		return Reply{Title: "The machine is not built yet", Body: Describe(m.Snapshot())}, nil
	}
	return Reply{Title: "The current configuration of the Turing machine:", Body: configuration(m)}, nil
}

func runRestart(_ context.Context, _ *Dispatcher, m *machine.Deterministic, _ string) (Reply, error) {
	if err := m.Restart(); err != nil {
		return Reply{}, err
	}
	return Reply{Title: "Machine restarted", Body: configuration(m)}, nil
}

func runClear(_ context.Context, _ *Dispatcher, m *machine.Deterministic, _ string) (Reply, error) {
	m.Clear()
	return Reply{Title: "Machine cleared"}, nil
}

func runSave(ctx context.Context, d *Dispatcher, m *machine.Deterministic, arg string) (Reply, error) {
	if d.store == nil {
		return Reply{}, &UsageError{Command: "save", Reason: ErrNoStore.Error(), Err: ErrNoStore}
	}
	if arg == "" {
		return Reply{}, usagef("save", "no program name given")
	}

	prog := program.FromSnapshot(arg, m.Snapshot())
	if err := prog.Validate(); err != nil {
		return Reply{}, err
	}
	if err := d.store.Save(ctx, prog); err != nil {
		return Reply{}, fmt.Errorf("failed to save program %q: %w", arg, err)
	}
	return Reply{
		Title: "Program saved",
		Body:  fmt.Sprintf("Saved %d transitions as %q.", len(prog.Transitions), prog.Name),
	}, nil
}

func runLoad(ctx context.Context, d *Dispatcher, m *machine.Deterministic, arg string) (Reply, error) {
	if d.store == nil {
		return Reply{}, &UsageError{Command: "load", Reason: ErrNoStore.Error(), Err: ErrNoStore}
	}
	if arg == "" {
		return Reply{}, usagef("load", "no program name given")
	}

	prog, err := d.store.Load(ctx, arg)
	if err != nil {
		return Reply{}, err
	}

	m.Clear()
	if prog.Blank == "" {
		prog.Blank = string(domain.DefaultBlankSymbol)
	}
	if err := prog.Apply(m); err != nil {
		m.Clear()
		return Reply{}, err
	}
	return Reply{Title: fmt.Sprintf("Program %q loaded", prog.Name), Body: Describe(m.Snapshot())}, nil
}

func runPrograms(ctx context.Context, d *Dispatcher, _ *machine.Deterministic, _ string) (Reply, error) {
	if d.store == nil {
		return Reply{}, &UsageError{Command: "programs", Reason: ErrNoStore.Error(), Err: ErrNoStore}
	}
	names, err := d.store.List(ctx)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to list programs: %w", err)
	}
	if len(names) == 0 {
		return Reply{Title: "Programs", Body: "No programs saved yet."}, nil
	}
	return Reply{Title: "Programs", Body: "- " + strings.Join(names, "\n- ")}, nil
}
