// Package machine implements the deterministic single-tape Turing machine.
package machine

import (
	"log/slog"
	"time"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/tape"
)

// Deterministic is a single-tape deterministic Turing machine.
//
// It is created Modifiable, enters Running through Build and halts in Accepting or
// Denying. Restart and Clear are the only ways back. It is not safe for concurrent use.
type Deterministic struct {
	status domain.Status

	table      *Table
	accepting  []domain.State
	initial    domain.State
	hasInitial bool
	blank      domain.BlankSymbol
	hasBlank   bool
	input      domain.Word

	tape    *tape.Tape
	current domain.State
	steps   int

	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// New creates an unbuilt machine with an empty configuration.
func New(opts ...Option) *Deterministic {
	m := &Deterministic{
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.Clear()
	return m
}

// Clear returns the machine to Modifiable, discarding transitions, accepting and
// initial states, input and tape. The blank symbol is kept. Legal in any status.
func (m *Deterministic) Clear() {
	m.status = domain.StatusModifiable
	m.table = NewTable()
	m.accepting = nil
	m.initial, m.hasInitial = "", false
	m.input = nil
	m.tape = nil
	m.current = ""
	m.steps = 0
}

// AddTransition adds t to the table. It returns false if a transition for the same
// (state, scanned symbol) already exists.
func (m *Deterministic) AddTransition(t domain.Transition) (bool, error) {
	if err := m.modifiableOrFail("add transition"); err != nil {
		return false, err
	}
	return m.table.Add(t), nil
}

// AddAcceptingState adds s to the accepting states. It returns false if s already is one.
func (m *Deterministic) AddAcceptingState(s domain.State) (bool, error) {
	if err := m.modifiableOrFail("add accepting state"); err != nil {
		return false, err
	}
	if m.isAcceptingState(s) {
		return false, nil
	}
	m.accepting = append(m.accepting, s)
	return true, nil
}

// SetAcceptingStates replaces the accepting states. Duplicates are collapsed.
func (m *Deterministic) SetAcceptingStates(states ...domain.State) error {
	if err := m.modifiableOrFail("set accepting states"); err != nil {
		return err
	}
	m.accepting = nil
	for _, s := range states {
		if !m.isAcceptingState(s) {
			m.accepting = append(m.accepting, s)
		}
	}
	return nil
}

// AddInitialState sets the initial state. It returns false if one is already configured.
func (m *Deterministic) AddInitialState(s domain.State) (bool, error) {
	if err := m.modifiableOrFail("add initial state"); err != nil {
		return false, err
	}
	if m.hasInitial {
		return false, nil
	}
	m.initial, m.hasInitial = s, true
	return true, nil
}

// SetBlankSymbol sets the fill value used for the tape created by Build.
func (m *Deterministic) SetBlankSymbol(b domain.BlankSymbol) error {
	if err := m.modifiableOrFail("set blank symbol"); err != nil {
		return err
	}
	m.blank, m.hasBlank = b, true
	return nil
}

// SetInput sets the input word, one symbol per rune.
func (m *Deterministic) SetInput(input string) error {
	return m.setInput("set input", domain.WordFromString(input))
}

// SetInputWord sets the input word from explicit symbols.
func (m *Deterministic) SetInputWord(word domain.Word) error {
	return m.setInput("set input", append(domain.Word(nil), word...))
}

func (m *Deterministic) setInput(op string, word domain.Word) error {
	if err := m.modifiableOrFail(op); err != nil {
		return err
	}
	m.input = word
	return nil
}

// Build resolves defaults for everything left unconfigured (DefaultBlankSymbol,
// DefaultInitialState, DefaultAcceptingState), writes the input onto a fresh tape and
// enters Running.
func (m *Deterministic) Build() error {
	if err := m.modifiableOrFail("build"); err != nil {
		return err
	}

	if !m.hasBlank {
		m.blank, m.hasBlank = domain.DefaultBlankSymbol, true
	}
	if !m.hasInitial {
		m.initial, m.hasInitial = domain.DefaultInitialState, true
	}
	if len(m.accepting) == 0 {
		m.accepting = []domain.State{domain.DefaultAcceptingState}
	}

	m.start(false)
	return nil
}

// Restart runs the same configuration again on a fresh tape holding the original input.
// The machine must have been built.
func (m *Deterministic) Restart() error {
	if m.status == domain.StatusModifiable {
		return &domain.PreconditionError{Op: "restart", Status: m.status, Reason: "machine must be built"}
	}
	m.start(true)
	return nil
}

func (m *Deterministic) start(restart bool) {
	m.tape = tape.New(m.blank)
	m.tape.WriteWord(m.input)
	m.current = m.initial
	m.steps = 0
	m.status = domain.StatusRunning

	m.logger.Debug("machine running",
		"initial", m.initial,
		"input", m.input.String(),
		"transitions", m.table.Len(),
		"restart", restart,
	)

	if m.hooks.OnBuild != nil {
		m.hooks.OnBuild(&domain.BuildEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventBuild},
			Initial:   m.initial,
			Input:     append(domain.Word(nil), m.input...),
			Restart:   restart,
		})
	}
}

// PerformStep reads the symbol under the head and applies the matching transition.
// Without a matching transition the machine denies. After a transition was applied
// the machine accepts if the new state is an accepting state.
func (m *Deterministic) PerformStep() error {
	if m.status != domain.StatusRunning {
		return &domain.PreconditionError{Op: "step", Status: m.status, Reason: "machine is not running"}
	}

	scanned := m.tape.Read()
	t, ok := m.table.Lookup(m.current, scanned)
	if !ok {
		m.halt(domain.StatusDenying, scanned)
		return nil
	}

	m.tape.Write(t.Print)
	m.tape.MoveHead(t.Move)
	m.current = t.Next
	m.steps++

	if m.hooks.OnStep != nil {
		m.hooks.OnStep(&domain.StepEvent{
			EventBase:  domain.EventBase{Timestamp: time.Now(), Type: domain.EventStep},
			Step:       m.steps,
			Transition: t,
			HeadIndex:  m.tape.HeadIndex(),
		})
	}

	if m.isAcceptingState(m.current) {
		m.halt(domain.StatusAccepting, m.tape.Read())
	}
	return nil
}

func (m *Deterministic) halt(status domain.Status, scanned domain.Symbol) {
	m.status = status
	m.logger.Debug("machine halted",
		"status", status,
		"state", m.current,
		"scanned", scanned,
		"steps", m.steps,
	)

	if m.hooks.OnHalt != nil {
		m.hooks.OnHalt(&domain.HaltEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventHalt},
			Status:    status,
			State:     m.current,
			Scanned:   scanned,
			Steps:     m.steps,
		})
	}
}

// TapeContent returns the visited part of the tape with blank cells trimmed from both
// ends, i.e. the word the computation left behind. Blanks between symbols are kept.
// It fails before the first Build.
func (m *Deterministic) TapeContent() (domain.Word, error) {
	if err := m.tapeOrFail("tape content"); err != nil {
		return nil, err
	}
	return trimBlanks(m.tape.Content(), m.blank.Symbol()), nil
}

func trimBlanks(word domain.Word, blank domain.Symbol) domain.Word {
	start, end := 0, len(word)
	for start < end && word[start] == blank {
		start++
	}
	for end > start && word[end-1] == blank {
		end--
	}
	return word[start:end]
}

// HeadIndex returns the head position relative to the first input cell.
// It fails before the first Build.
func (m *Deterministic) HeadIndex() (int, error) {
	if err := m.tapeOrFail("head index"); err != nil {
		return 0, err
	}
	return m.tape.HeadIndex(), nil
}

// CurrentState returns the control state. It is empty until the machine is built.
func (m *Deterministic) CurrentState() domain.State {
	return m.current
}

// Input returns a copy of the configured input word.
func (m *Deterministic) Input() domain.Word {
	return append(domain.Word(nil), m.input...)
}

// Status returns the lifecycle status.
func (m *Deterministic) Status() domain.Status { return m.status }

// Steps returns the number of transitions applied since the last Build or Restart.
func (m *Deterministic) Steps() int { return m.steps }

// IsUnbuilt reports whether the machine is still modifiable.
func (m *Deterministic) IsUnbuilt() bool { return m.status == domain.StatusModifiable }

// IsRunning reports whether steps may be performed.
func (m *Deterministic) IsRunning() bool { return m.status == domain.StatusRunning }

// IsAccepting reports whether the machine halted in an accepting state.
func (m *Deterministic) IsAccepting() bool { return m.status == domain.StatusAccepting }

// IsDenying reports whether the machine halted without a matching transition.
func (m *Deterministic) IsDenying() bool { return m.status == domain.StatusDenying }

func (m *Deterministic) isAcceptingState(s domain.State) bool {
	for _, a := range m.accepting {
		if a == s {
			return true
		}
	}
	return false
}

func (m *Deterministic) modifiableOrFail(op string) error {
	if m.status != domain.StatusModifiable {
		return &domain.PreconditionError{Op: op, Status: m.status, Reason: "machine must be modifiable"}
	}
	return nil
}

func (m *Deterministic) tapeOrFail(op string) error {
	if m.tape == nil {
		return &domain.PreconditionError{Op: op, Status: m.status, Reason: "machine has not been built"}
	}
	return nil
}
