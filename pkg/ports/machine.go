package ports

import "github.com/aretw0/turing/pkg/domain"

// Machine is the lifecycle and query capability of a single-tape Turing machine.
// Implementations are not safe for concurrent use; callers serialize access per instance.
type Machine interface {
	// Build freezes the configuration, materializes the tape from the input and
	// enters Running. Only legal while the machine is unbuilt.
	Build() error

	// PerformStep applies at most one transition. A missing transition halts the
	// machine in Denying; it is not an error.
	PerformStep() error

	// Restart re-runs the same configuration on a fresh tape.
	Restart() error

	// Clear discards the configuration and the tape, keeping only the blank symbol.
	Clear()

	TapeContent() (domain.Word, error)
	HeadIndex() (int, error)
	CurrentState() domain.State
	Input() domain.Word
	Status() domain.Status

	IsUnbuilt() bool
	IsRunning() bool
	IsAccepting() bool
	IsDenying() bool
}

// Configurable is the configuration capability, legal only while the machine is unbuilt.
// Duplicate additions report false rather than an error.
type Configurable interface {
	AddTransition(t domain.Transition) (bool, error)
	AddAcceptingState(s domain.State) (bool, error)
	SetAcceptingStates(states ...domain.State) error
	AddInitialState(s domain.State) (bool, error)
	SetBlankSymbol(b domain.BlankSymbol) error
	SetInput(input string) error
	SetInputWord(word domain.Word) error
}

// ConfigurableMachine is a machine that can also be configured.
type ConfigurableMachine interface {
	Machine
	Configurable
}
