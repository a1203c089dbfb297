package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventBuild EventType = "build"
	EventStep  EventType = "step"
	EventHalt  EventType = "halt"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// BuildEvent is emitted when a machine enters Running through Build or Restart.
type BuildEvent struct {
	EventBase
	Initial State `json:"initial"`
	Input   Word  `json:"input"`
	Restart bool  `json:"restart,omitempty"`
}

// StepEvent describes one applied transition.
type StepEvent struct {
	EventBase
	Step       int        `json:"step"`
	Transition Transition `json:"transition"`
	HeadIndex  int        `json:"head_index"` // Head position after the move
}

// HaltEvent is emitted once per run when the machine accepts or denies.
type HaltEvent struct {
	EventBase
	Status  Status `json:"status"`
	State   State  `json:"state"`
	Scanned Symbol `json:"scanned"`
	Steps   int    `json:"steps"`
}

// LifecycleHooks defines callbacks for engine observability.
// They run synchronously inside the machine operation that triggered them.
type LifecycleHooks struct {
	OnBuild func(*BuildEvent)
	OnStep  func(*StepEvent)
	OnHalt  func(*HaltEvent)
}
