package domain

// State is an opaque control state.
// States are issued by a machine registry and compare by (registry, ordinal),
// so two registries never produce equal states even for equal names.
type State struct {
	registry uint64
	ordinal  uint32
	name     string
}

// Reserved terminal pseudo-states. No registry ever issues registry id 0.
var (
	Accept = State{registry: 0, ordinal: 1, name: KeyAccept}
	Reject = State{registry: 0, ordinal: 2, name: KeyReject}
)

// NewState builds a state token. It is meant for registries; callers should use
// machine.Registry.State instead.
func NewState(registry uint64, ordinal uint32, name string) State {
	return State{registry: registry, ordinal: ordinal, name: name}
}

// Name returns the display name the state was registered with.
func (s State) Name() string {
	return s.name
}

// Registry returns the id of the registry that issued the state.
func (s State) Registry() uint64 {
	return s.registry
}

// IsZero reports whether s is the invalid zero State.
func (s State) IsZero() bool {
	return s == State{}
}

// IsTerminal reports whether s is Accept or Reject.
func (s State) IsTerminal() bool {
	return s == Accept || s == Reject
}

func (s State) String() string {
	if s.IsZero() {
		return "<invalid>"
	}
	return s.name
}

// Status defines the lifecycle of a single run.
type Status string

const (
	StatusRunning  Status = "running"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusErrored  Status = "errored"
)

// IsTerminal reports whether the run has stopped.
func (s Status) IsTerminal() bool {
	return s != StatusRunning
}
