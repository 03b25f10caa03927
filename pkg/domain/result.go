package domain

// TapeSnapshot is an immutable copy of a tape's written extent.
// Offset is the position of Cells[0].
type TapeSnapshot struct {
	Head   int      `json:"head"`
	Offset int      `json:"offset"`
	Cells  []Symbol `json:"cells"`
}

// String renders the cells with Blank shown as BlankGlyph.
func (s TapeSnapshot) String() string {
	return Join(s.Cells)
}

// Equal reports whether two snapshots hold the same cells at the same positions.
func (s TapeSnapshot) Equal(o TapeSnapshot) bool {
	if s.Head != o.Head || len(s.Cells) != len(o.Cells) {
		return false
	}
	if len(s.Cells) > 0 && s.Offset != o.Offset {
		return false
	}
	for i := range s.Cells {
		if s.Cells[i] != o.Cells[i] {
			return false
		}
	}
	return true
}

// Result is the terminal snapshot of a run.
type Result struct {
	Status     Status       `json:"status"`
	Steps      int          `json:"steps"`
	FinalState State        `json:"-"`
	Tape       TapeSnapshot `json:"tape"`
}

// Accepted reports whether the run halted in Accept.
func (r *Result) Accepted() bool {
	return r != nil && r.Status == StatusAccepted
}

// Verdict is a cached, serialisable outcome of running a named machine on an input.
type Verdict struct {
	Machine string `json:"machine"`
	Input   string `json:"input"`
	Status  Status `json:"status"`
	Steps   int    `json:"steps"`
	Tape    string `json:"tape"`

	// Fingerprint identifies the definition that produced the verdict.
	Fingerprint string `json:"fingerprint,omitempty"`
}

// Key identifies the verdict in a store.
func (v *Verdict) Key() string {
	return VerdictKey(v.Machine, v.Input)
}

// VerdictKey builds the store key for a machine/input pair.
func VerdictKey(machine, input string) string {
	return machine + "\x1f" + input
}
