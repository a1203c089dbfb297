package machine

import "github.com/aretw0/turing/pkg/domain"

// Snapshot is a read-only copy of a machine's configuration and runtime view.
type Snapshot struct {
	Status      domain.Status       `json:"status"`
	State       domain.State        `json:"state,omitempty"`
	Initial     domain.State        `json:"initial,omitempty"`
	Accepting   []domain.State      `json:"accepting,omitempty"`
	Blank       domain.BlankSymbol  `json:"blank,omitempty"`
	Input       domain.Word         `json:"input"`
	Transitions []domain.Transition `json:"transitions"`

	// Tape and HeadIndex are only meaningful when Built is true.
	// Tape holds every visited cell; its first element sits at index TapeStart.
	Built     bool        `json:"built"`
	Tape      domain.Word `json:"tape,omitempty"`
	TapeStart int         `json:"tape_start"`
	HeadIndex int         `json:"head_index"`
	Steps     int         `json:"steps"`
}

// Snapshot copies the current configuration and, once built, the tape.
// Unset initial state and blank symbol are reported empty while the machine is unbuilt.
func (m *Deterministic) Snapshot() Snapshot {
	snap := Snapshot{
		Status:      m.status,
		State:       m.current,
		Accepting:   append([]domain.State(nil), m.accepting...),
		Input:       m.Input(),
		Transitions: m.table.All(),
		Steps:       m.steps,
	}
	if m.hasInitial {
		snap.Initial = m.initial
	}
	if m.hasBlank {
		snap.Blank = m.blank
	}
	if m.tape != nil {
		snap.Built = true
		snap.Tape = m.tape.Content()
		snap.TapeStart, _ = m.tape.Bounds()
		snap.HeadIndex = m.tape.HeadIndex()
	}
	return snap
}
