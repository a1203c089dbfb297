package domain

// Default control states used when a machine is built without explicit configuration.
const (
	DefaultInitialState   State = "S"
	DefaultAcceptingState State = "F"
)

// State is a named control state. Two states are equal if their names are equal.
type State string

// String returns the name of the state.
func (s State) String() string {
	return string(s)
}

// Status describes where a machine is in its lifecycle.
type Status string

const (
	StatusModifiable Status = "modifiable" // Configuration is open, no tape exists yet
	StatusRunning    Status = "running"    // Built, steps may be performed
	StatusAccepting  Status = "accepting"  // Halted in an accepting state
	StatusDenying    Status = "denying"    // Halted because no transition matched
)

// Terminal reports whether the status is one of the two halting outcomes.
func (s Status) Terminal() bool {
	return s == StatusAccepting || s == StatusDenying
}
