package domain

// StepEvent describes one applied transition.
type StepEvent struct {
	Step       int        `json:"step"`
	From       State      `json:"-"`
	Read       Symbol     `json:"read"`
	Transition Transition `json:"-"`
	Head       int        `json:"head"` // head position after the movement
}

// HaltEvent describes the end of a run, including errored and non-halting runs.
type HaltEvent struct {
	Status Status `json:"status"`
	Steps  int    `json:"steps"`
	State  State  `json:"-"`
	Err    error  `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run synchronously inside the run loop and must not retain the events.
type LifecycleHooks struct {
	OnStep func(*StepEvent)
	OnHalt func(*HaltEvent)
}
