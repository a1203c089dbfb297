package domain

// Configuration is the (state, scanned symbol) pair a transition is looked up by.
type Configuration struct {
	State  State  `json:"state" yaml:"state"`
	Symbol Symbol `json:"symbol" yaml:"symbol"`
}

// Transition is the rule (Current, Scanned) -> (Next, Print, Move).
// A deterministic machine holds at most one transition per Configuration.
type Transition struct {
	Current State    `json:"current" yaml:"current"`
	Scanned Symbol   `json:"scanned" yaml:"scanned"`
	Print   Symbol   `json:"print" yaml:"print"`
	Move    TapeMove `json:"move" yaml:"move"`
	Next    State    `json:"next" yaml:"next"`
}

// NewTransition builds a transition from its five components.
func NewTransition(current State, scanned, print Symbol, move TapeMove, next State) Transition {
	return Transition{
		Current: current,
		Scanned: scanned,
		Print:   print,
		Move:    move,
		Next:    next,
	}
}

// Configuration returns the lookup key of the transition.
func (t Transition) Configuration() Configuration {
	return Configuration{State: t.Current, Symbol: t.Scanned}
}

// Matches reports whether the transition applies to the given state and scanned symbol.
func (t Transition) Matches(state State, scanned Symbol) bool {
	return t.Current == state && t.Scanned == scanned
}
