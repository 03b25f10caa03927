package machine

import (
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/table"
)

// Description is a serialisable summary of a definition.
type Description struct {
	Name     string   `json:"name"`
	Start    string   `json:"start"`
	States   []string `json:"states"`
	Alphabet []string `json:"alphabet,omitempty"`
	Rows     []Row    `json:"rows,omitempty"`
}

// Row is one table entry. Read and Write use the rendered symbol names
// (BlankGlyph for Blank, "NULL" for the fallback).
type Row struct {
	State string `json:"state"`
	Read  string `json:"read"`
	Next  string `json:"next"`
	Move  string `json:"move"`
	Write string `json:"write,omitempty"`
}

// Describe summarises d. Rows are only present when d was built from a table;
// they are ordered by state name with the NULL entry last in each row.
func (d *Definition) Describe() Description {
	desc := Description{
		Name:  d.name,
		Start: d.start.Name(),
	}
	for _, s := range d.order {
		desc.States = append(desc.States, s.Name())
	}
	for _, sym := range d.Alphabet() {
		desc.Alphabet = append(desc.Alphabet, sym.String())
	}

	for _, state := range table.States(d.source) {
		row := d.source[state]
		for _, sym := range table.RowSymbols(row) {
			tr := row[sym]
			r := Row{
				State: state.Name(),
				Read:  sym.String(),
				Next:  tr.Next.Name(),
				Move:  tr.Move.String(),
			}
			if tr.Writes {
				r.Write = tr.Write.String()
			}
			desc.Rows = append(desc.Rows, r)
		}
	}
	return desc
}

// Targets returns the distinct next states reachable in one step from s,
// ordered as they appear in the row. Definitions without a table return nil.
func (d *Definition) Targets(s domain.State) []domain.State {
	row, ok := d.source[s]
	if !ok {
		return nil
	}
	seen := make(map[domain.State]bool)
	var out []domain.State
	for _, sym := range table.RowSymbols(row) {
		next := row[sym].Next
		if !seen[next] {
			seen[next] = true
			out = append(out, next)
		}
	}
	return out
}
