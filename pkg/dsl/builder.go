package dsl

import (
	"fmt"

	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/table"
)

// Names of the halting pseudo-states, usable as Go targets.
const (
	Accept = domain.KeyAccept
	Reject = domain.KeyReject
)

// Builder manages the table construction.
type Builder struct {
	name     string
	start    string
	alphabet []domain.Symbol
	fallback table.FallbackPolicy

	order  []string
	states map[string]*StateBuilder
}

// New creates a new builder for a machine called name.
func New(name string) *Builder {
	return &Builder{
		name:   name,
		states: make(map[string]*StateBuilder),
	}
}

// Start sets the start state. Defaults to the first state added.
func (b *Builder) Start(state string) *Builder {
	b.start = state
	return b
}

// Alphabet declares the input alphabet.
func (b *Builder) Alphabet(symbols ...string) *Builder {
	b.alphabet = domain.SymbolsOf(symbols...)
	return b
}

// Fallback sets which scanned symbols the NULL entry answers for.
func (b *Builder) Fallback(p table.FallbackPolicy) *Builder {
	b.fallback = p
	return b
}

// State returns the builder for a row of the table.
// If the state already exists, it returns the existing builder.
func (b *Builder) State(name string) *StateBuilder {
	if sb, ok := b.states[name]; ok {
		return sb
	}
	sb := &StateBuilder{name: name, builder: b}
	b.states[name] = sb
	b.order = append(b.order, name)
	return sb
}

// Build compiles the table into a validated machine definition.
// The first invalid rule recorded while building is returned as a MalformedTableError.
func (b *Builder) Build() (*machine.Definition, error) {
	start := b.start
	if start == "" && len(b.order) > 0 {
		start = b.order[0]
	}
	if start == "" {
		return nil, &domain.DefinitionError{Reason: "machine has no states"}
	}

	reg := machine.NewRegistry()
	reg.States(b.order...)
	tbl := make(table.Table, len(b.order))
	for _, name := range b.order {
		sb := b.states[name]
		if sb.err != nil {
			return nil, sb.err
		}
		row := make(table.Row, len(sb.rules))
		for _, r := range sb.rules {
			tr := domain.To(reg.State(r.next)).Moving(r.move)
			if r.writes {
				tr = tr.Writing(r.write)
			}
			row[r.read] = tr
		}
		tbl[reg.State(name)] = row
	}

	opts := []machine.Option{machine.WithName(b.name)}
	if len(b.alphabet) > 0 {
		opts = append(opts, machine.WithAlphabet(b.alphabet...))
	}
	return machine.FromTableWith(reg.State(start), tbl, []table.Option{table.WithFallback(b.fallback)}, opts...)
}

// Load builds every machine into a memory loader.
func Load(builders ...*Builder) (*memory.Loader, error) {
	defs := make([]*machine.Definition, 0, len(builders))
	for _, b := range builders {
		def, err := b.Build()
		if err != nil {
			return nil, fmt.Errorf("failed to build %q: %w", b.name, err)
		}
		defs = append(defs, def)
	}
	return memory.NewLoader(defs...)
}
