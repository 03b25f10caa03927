package domain

import "fmt"

// Movement is the head displacement applied after a transition.
type Movement int

const (
	// Stay leaves the head in place. It is the default when a transition omits a movement.
	Stay Movement = iota
	Left
	Right
)

func (m Movement) String() string {
	switch m {
	case Stay:
		return "stay"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("movement(%d)", int(m))
}

// Valid reports whether m is one of Stay, Left or Right.
func (m Movement) Valid() bool {
	return m == Stay || m == Left || m == Right
}

// Delta returns the head offset for m.
func (m Movement) Delta() int {
	switch m {
	case Left:
		return -1
	case Right:
		return 1
	}
	return 0
}

// ParseMovement accepts the document spellings of a movement.
func ParseMovement(s string) (Movement, error) {
	switch s {
	case "", "S", "s", "stay", "STAY", "N", "none":
		return Stay, nil
	case "L", "l", "left", "LEFT":
		return Left, nil
	case "R", "r", "right", "RIGHT":
		return Right, nil
	}
	return Stay, fmt.Errorf("unknown movement %q", s)
}

// Transition is the value returned by a transition function.
// Writes distinguishes "write Blank" from "leave the cell unchanged".
type Transition struct {
	Next   State
	Move   Movement
	Write  Symbol
	Writes bool
}

// To returns a transition to next with no movement and no write.
func To(next State) Transition {
	return Transition{Next: next}
}

// Moving returns a copy of t with the given movement.
func (t Transition) Moving(m Movement) Transition {
	t.Move = m
	return t
}

// Writing returns a copy of t that writes sym before moving.
func (t Transition) Writing(sym Symbol) Transition {
	t.Write = sym
	t.Writes = true
	return t
}

func (t Transition) String() string {
	if t.Writes {
		return fmt.Sprintf("[%s %s %s]", t.Next, t.Move, t.Write)
	}
	if t.Move != Stay {
		return fmt.Sprintf("[%s %s]", t.Next, t.Move)
	}
	return fmt.Sprintf("[%s]", t.Next)
}

// Shorthand builds a transition from the variable-arity encoding
// [next], [next, move] and [next, move, write].
func Shorthand(next State, parts ...any) (Transition, error) {
	t := To(next)
	if len(parts) > 2 {
		return Transition{}, &MalformedTableError{
			State:  next,
			Reason: fmt.Sprintf("transition has %d elements, want 1 to 3", len(parts)+1),
		}
	}
	if len(parts) >= 1 {
		m, ok := parts[0].(Movement)
		if !ok {
			return Transition{}, &MalformedTableError{
				State:  next,
				Reason: fmt.Sprintf("second element must be a Movement, got %T", parts[0]),
			}
		}
		t = t.Moving(m)
	}
	if len(parts) == 2 {
		switch w := parts[1].(type) {
		case Symbol:
			t = t.Writing(w)
		case string:
			t = t.Writing(Symbol(w))
		default:
			return Transition{}, &MalformedTableError{
				State:  next,
				Reason: fmt.Sprintf("third element must be a Symbol, got %T", parts[1]),
			}
		}
	}
	return t, nil
}

// TransitionFunc resolves the transition for a state and the symbol under the head.
// Implementations must be pure and safe for concurrent use.
type TransitionFunc func(state State, sym Symbol) (Transition, error)
