package command

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"unicode"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/runner"
)

// Reply is the user-facing outcome of a command.
type Reply struct {
	Title   string        `json:"title"`
	Body    string        `json:"body,omitempty"`
	Notices []string      `json:"notices,omitempty"`
	Status  domain.Status `json:"status"`
	Halted  bool          `json:"halted,omitempty"` // The machine halted during this command

	// Markdown marks a body meant to be rendered rather than printed verbatim.
	Markdown bool `json:"markdown,omitempty"`
}

// Handler executes a command against a machine. arg is everything after the name.
type Handler func(ctx context.Context, d *Dispatcher, m *machine.Deterministic, arg string) (Reply, error)

// Command is one entry of the vocabulary.
type Command struct {
	Name    string
	Aliases []string
	Summary string
	Usage   string
	Run     Handler
}

// Dispatcher routes command lines to registered commands.
type Dispatcher struct {
	commands map[string]*Command
	names    map[string]*Command // names and aliases

	store    ports.ProgramStore
	maxSteps int
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// Option configures the Dispatcher.
type Option func(*Dispatcher)

// WithStore enables the save, load and programs commands.
func WithStore(store ports.ProgramStore) Option {
	return func(d *Dispatcher) {
		d.store = store
	}
}

// WithMaxSteps sets the default ceiling of the run command.
func WithMaxSteps(n int) Option {
	return func(d *Dispatcher) {
		d.maxSteps = n
	}
}

// WithMetrics counts dispatched commands and step ceiling hits.
func WithMetrics(metrics *observability.Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = metrics
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDispatcher creates a dispatcher with the built-in commands registered.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		commands: make(map[string]*Command),
		names:    make(map[string]*Command),
		maxSteps: runner.DefaultMaxSteps,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	for _, c := range builtins() {
		d.Register(c)
	}
	return d
}

// Register adds or replaces a command.
func (d *Dispatcher) Register(c Command) {
	cmd := c
	d.commands[cmd.Name] = &cmd
	d.names[cmd.Name] = &cmd
	for _, alias := range cmd.Aliases {
		d.names[alias] = &cmd
	}
}

// Commands returns the registered commands sorted by name.
func (d *Dispatcher) Commands() []Command {
	out := make([]Command, 0, len(d.commands))
	for _, c := range d.commands {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup finds a command by name or alias, case-insensitively.
func (d *Dispatcher) Lookup(name string) (Command, bool) {
	c, ok := d.names[strings.ToLower(name)]
	if !ok {
		return Command{}, false
	}
	return *c, true
}

// Dispatch parses line and runs the matching command against m.
// The caller must hold exclusive access to m.
func (d *Dispatcher) Dispatch(ctx context.Context, m *machine.Deterministic, line string) (Reply, error) {
	name, arg := Split(line)
	if name == "" {
		return Reply{}, &UsageError{Reason: "no command given, try help"}
	}

	cmd, ok := d.Lookup(name)
	if !ok {
		err := &UsageError{Command: name, Reason: "unknown command, try help", Err: ErrUnknownCommand}
		d.observe("unknown", err)
		return Reply{}, err
	}

	reply, err := cmd.Run(ctx, d, m, arg)
	err = classify(cmd.Name, err)
	d.observe(cmd.Name, err)
	if err != nil {
		d.logger.Debug("command failed", "command", cmd.Name, "err", err)
		return Reply{}, err
	}

	reply.Status = m.Status()
	return reply, nil
}

func (d *Dispatcher) observe(name string, err error) {
	if d.metrics == nil {
		return
	}
	result := observability.ResultOK
	var usage *UsageError
	switch {
	case errors.As(err, &usage):
		result = observability.ResultUsage
	case err != nil:
		result = observability.ResultError
	}
	d.metrics.ObserveCommand(name, result)
}

// Split separates the command name from its argument.
// A leading "/" or "!tm" prefix, as typed in chat clients, is ignored.
func Split(line string) (name, arg string) {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "/")
	if rest, ok := cutPrefixFold(line, "!tm"); ok {
		line = strings.TrimSpace(rest)
	}

	name, arg = line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		name, arg = line[:i], line[i:]
	}
	return strings.ToLower(name), strings.TrimSpace(arg)
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	rest := s[len(prefix):]
	if rest != "" && !unicode.IsSpace(rune(rest[0])) {
		return s, false
	}
	return rest, true
}
