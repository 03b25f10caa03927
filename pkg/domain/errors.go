package domain

import (
	"errors"
	"fmt"
)

// ErrTerminalLookup is returned when a transition function is consulted for Accept or Reject.
var ErrTerminalLookup = errors.New("terminal state has no transitions")

// ErrReservedInput is returned when an input contains the Null wildcard symbol.
var ErrReservedInput = errors.New("input contains the reserved NULL symbol")

// ErrMachineNotFound is returned when a machine name cannot be found in a catalog.
var ErrMachineNotFound = errors.New("machine not found")

// ErrVerdictNotFound is returned when a verdict is not present in a store.
var ErrVerdictNotFound = errors.New("verdict not found")

// DefinitionError reports an invalid machine definition. It is raised at construction only.
type DefinitionError struct {
	State  State
	Reason string
}

func (e *DefinitionError) Error() string {
	if e.State.IsZero() {
		return fmt.Sprintf("invalid machine definition: %s", e.Reason)
	}
	return fmt.Sprintf("invalid machine definition: state '%s': %s", e.State, e.Reason)
}

// MalformedTableError reports a transition table that is not a proper mapping of mappings.
type MalformedTableError struct {
	State  State
	Symbol Symbol
	Path   string // document path, set when decoding raw tables
	Reason string
}

func (e *MalformedTableError) Error() string {
	switch {
	case e.Path != "":
		return fmt.Sprintf("malformed transition table at %s: %s", e.Path, e.Reason)
	case !e.State.IsZero() && e.Symbol != Blank:
		return fmt.Sprintf("malformed transition table at (%s, %s): %s", e.State, e.Symbol, e.Reason)
	case !e.State.IsZero():
		return fmt.Sprintf("malformed transition table at '%s': %s", e.State, e.Reason)
	}
	return fmt.Sprintf("malformed transition table: %s", e.Reason)
}

// MissingTransitionError is raised mid-run when neither an exact entry nor a
// Null fallback exists for the pair being read.
type MissingTransitionError struct {
	State  State
	Symbol Symbol
}

func (e *MissingTransitionError) Error() string {
	return fmt.Sprintf("no transition for state '%s' reading '%s'", e.State, e.Symbol)
}

// NonHaltingError is raised when a run exceeds its step ceiling.
// Callers should read it as "undetermined", not as a crash.
type NonHaltingError struct {
	Steps int
	State State
}

func (e *NonHaltingError) Error() string {
	return fmt.Sprintf("machine did not halt within %d steps (last state '%s')", e.Steps, e.State)
}

// IsUndetermined reports whether err means the run hit its step ceiling.
func IsUndetermined(err error) bool {
	var nh *NonHaltingError
	return errors.As(err, &nh)
}
