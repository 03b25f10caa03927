// Package tape implements the unbounded bidirectional tape of a Turing machine.
package tape

import (
	"github.com/aretw0/turing/pkg/domain"
)

// Tape maps integer positions to symbols. Cells never written read as Blank.
// A Tape is owned by a single run and is not safe for concurrent use.
type Tape struct {
	cells map[int]domain.Symbol
	head  int

	// written extent, valid only when len(cells) > 0
	lo, hi int
}

// New creates an empty tape with the head at position 0.
func New() *Tape {
	return &Tape{cells: make(map[int]domain.Symbol)}
}

// FromSymbols seeds a tape with input written left to right from position 0.
// The head is left at position 0.
func FromSymbols(input []domain.Symbol) *Tape {
	t := New()
	for i, sym := range input {
		t.head = i
		t.Write(sym)
	}
	t.head = 0
	return t
}

// Read returns the symbol under the head.
func (t *Tape) Read() domain.Symbol {
	return t.cells[t.head]
}

// Write sets the symbol under the head. Writing Blank is recorded like any other write.
func (t *Tape) Write(sym domain.Symbol) {
	if len(t.cells) == 0 {
		t.lo, t.hi = t.head, t.head
	} else {
		t.lo = min(t.lo, t.head)
		t.hi = max(t.hi, t.head)
	}
	t.cells[t.head] = sym
}

// MoveLeft shifts the head one cell to the left.
func (t *Tape) MoveLeft() {
	t.head--
}

// MoveRight shifts the head one cell to the right.
func (t *Tape) MoveRight() {
	t.head++
}

// Move applies a movement to the head.
func (t *Tape) Move(m domain.Movement) {
	t.head += m.Delta()
}

// Head returns the current head position.
func (t *Tape) Head() int {
	return t.head
}

// Cells returns the written extent in position order with leading and trailing
// Blanks trimmed. The second value is the position of the first returned cell.
func (t *Tape) Cells() ([]domain.Symbol, int) {
	if len(t.cells) == 0 {
		return nil, 0
	}
	lo, hi := t.lo, t.hi
	for lo <= hi && t.cells[lo] == domain.Blank {
		lo++
	}
	for hi >= lo && t.cells[hi] == domain.Blank {
		hi--
	}
	if lo > hi {
		return nil, 0
	}
	out := make([]domain.Symbol, 0, hi-lo+1)
	for p := lo; p <= hi; p++ {
		out = append(out, t.cells[p])
	}
	return out, lo
}

// Snapshot copies the tape contents for results and tracing.
func (t *Tape) Snapshot() domain.TapeSnapshot {
	cells, offset := t.Cells()
	return domain.TapeSnapshot{Head: t.head, Offset: offset, Cells: cells}
}

// String renders the written cells, Blank shown as an underscore.
func (t *Tape) String() string {
	cells, _ := t.Cells()
	return domain.Join(cells)
}
