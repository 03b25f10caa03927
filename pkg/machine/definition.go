// Package machine holds validated, immutable Turing machine definitions.
package machine

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/table"
)

// Definition bundles the declared states, the transition function and the start state.
// It is immutable after construction and safe to share between concurrent runs.
type Definition struct {
	name       string
	states     map[domain.State]struct{}
	order      []domain.State
	transition domain.TransitionFunc
	start      domain.State
	alphabet   map[domain.Symbol]struct{}
	source     table.Table
	fallback   table.FallbackPolicy

	// fingerprint identifies the table contents; empty for bare transition functions.
	fingerprint string
}

// Option configures a Definition at construction.
type Option func(*Definition)

// WithName labels the definition for logs, stores and catalogs.
func WithName(name string) Option {
	return func(d *Definition) {
		d.name = name
	}
}

// WithTable attaches the source table, enabling eager validation of its keys and targets.
func WithTable(t table.Table) Option {
	return func(d *Definition) {
		d.source = table.Clone(t)
	}
}

// WithFallback records the Null fallback policy the transition function was built with.
// FromTableWith sets it from its table options.
func WithFallback(p table.FallbackPolicy) Option {
	return func(d *Definition) {
		d.fallback = p
	}
}

// WithAlphabet declares the input alphabet. Inputs are not checked against it at run time;
// it is used for validation and introspection.
func WithAlphabet(symbols ...domain.Symbol) Option {
	return func(d *Definition) {
		if d.alphabet == nil {
			d.alphabet = make(map[domain.Symbol]struct{})
		}
		for _, s := range symbols {
			d.alphabet[s] = struct{}{}
		}
	}
}

// New validates and builds a Definition. All failures are *domain.DefinitionError.
func New(states []domain.State, fn domain.TransitionFunc, start domain.State, opts ...Option) (*Definition, error) {
	d := &Definition{
		states:     make(map[domain.State]struct{}, len(states)),
		transition: fn,
		start:      start,
	}
	for _, opt := range opts {
		opt(d)
	}

	if fn == nil {
		return nil, &domain.DefinitionError{Reason: "transition function is nil"}
	}

	for _, s := range states {
		switch {
		case s.IsZero():
			return nil, &domain.DefinitionError{Reason: "declared states contain an invalid (zero) state"}
		case s.IsTerminal():
			return nil, &domain.DefinitionError{State: s, Reason: "terminal pseudo-states cannot be declared"}
		}
		if _, dup := d.states[s]; dup {
			continue
		}
		d.states[s] = struct{}{}
		d.order = append(d.order, s)
	}

	if start.IsZero() {
		return nil, &domain.DefinitionError{Reason: "start state is not set"}
	}
	if _, ok := d.states[start]; !ok {
		return nil, &domain.DefinitionError{State: start, Reason: "start state is not a declared state"}
	}

	for sym := range d.alphabet {
		if sym == domain.Blank || sym == domain.Null {
			return nil, &domain.DefinitionError{Reason: fmt.Sprintf("alphabet cannot contain reserved symbol %s", sym)}
		}
	}

	if d.source != nil {
		if err := d.checkTable(); err != nil {
			return nil, err
		}
		d.fingerprint = d.digest()
	}

	return d, nil
}

// digest hashes the start state, the fallback policy and every table entry.
// Symbols are quoted so that Blank, Null and "_" stay distinct.
func (d *Definition) digest() string {
	h := sha256.New()
	fmt.Fprintf(h, "start %q\nfallback %s\n", d.start.Name(), d.fallback)
	for _, state := range table.States(d.source) {
		row := d.source[state]
		for _, sym := range table.RowSymbols(row) {
			tr := row[sym]
			fmt.Fprintf(h, "%q %q -> %q %s", state.Name(), string(sym), tr.Next.Name(), tr.Move)
			if tr.Writes {
				fmt.Fprintf(h, " %q", string(tr.Write))
			}
			h.Write([]byte{'\n'})
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (d *Definition) checkTable() error {
	for _, s := range table.States(d.source) {
		if _, ok := d.states[s]; !ok {
			return &domain.DefinitionError{State: s, Reason: "table has an entry for an undeclared state"}
		}
	}
	for _, next := range table.Targets(d.source) {
		if next.IsTerminal() {
			continue
		}
		if _, ok := d.states[next]; !ok {
			return &domain.DefinitionError{State: next, Reason: "table targets an undeclared state"}
		}
	}
	return nil
}

// FromTable builds the transition function from t and declares every state
// that appears as a key or a non-terminal target. Validation is eager.
func FromTable(start domain.State, t table.Table, opts ...Option) (*Definition, error) {
	return FromTableWith(start, t, nil, opts...)
}

// FromTableWith is FromTable with options for the transition function builder.
func FromTableWith(start domain.State, t table.Table, tableOpts []table.Option, opts ...Option) (*Definition, error) {
	states := table.States(t)
	for _, next := range table.Targets(t) {
		if !next.IsTerminal() {
			states = append(states, next)
		}
	}
	return NewFromTable(states, start, t, tableOpts, opts...)
}

// NewFromTable builds a definition over an explicit state set from t.
// A row keyed by Accept or Reject is a *domain.DefinitionError; other structural
// problems of t are *domain.MalformedTableError.
func NewFromTable(states []domain.State, start domain.State, t table.Table, tableOpts []table.Option, opts ...Option) (*Definition, error) {
	for _, s := range table.States(t) {
		if s.IsTerminal() {
			return nil, &domain.DefinitionError{State: s, Reason: "terminal pseudo-states cannot be declared"}
		}
	}

	fn, err := table.MakeTransitionFn(t, tableOpts...)
	if err != nil {
		return nil, err
	}

	opts = append(opts, WithTable(t), WithFallback(table.Policy(tableOpts...)))
	return New(states, fn, start, opts...)
}

// Fingerprint identifies the behaviour of a table-built definition: two definitions
// with the same fingerprint compute the same results. It is empty when the
// definition was built from a bare transition function.
func (d *Definition) Fingerprint() string {
	return d.fingerprint
}

// Fallback returns the Null fallback policy of a table-built definition.
func (d *Definition) Fallback() table.FallbackPolicy {
	return d.fallback
}

// Name returns the definition label, or "" when unnamed.
func (d *Definition) Name() string {
	return d.name
}

// Start returns the start state.
func (d *Definition) Start() domain.State {
	return d.start
}

// States returns the declared states in declaration order.
func (d *Definition) States() []domain.State {
	out := make([]domain.State, len(d.order))
	copy(out, d.order)
	return out
}

// Has reports whether s is a declared state.
func (d *Definition) Has(s domain.State) bool {
	_, ok := d.states[s]
	return ok
}

// Transition resolves the transition for (state, sym).
func (d *Definition) Transition(state domain.State, sym domain.Symbol) (domain.Transition, error) {
	return d.transition(state, sym)
}

// Alphabet returns the declared input alphabet, or the symbols read by the source table.
func (d *Definition) Alphabet() []domain.Symbol {
	if len(d.alphabet) == 0 {
		if d.source == nil {
			return nil
		}
		return table.Symbols(d.source)
	}
	out := make([]domain.Symbol, 0, len(d.alphabet))
	for s := range d.alphabet {
		out = append(out, s)
	}
	sortSymbols(out)
	return out
}

// Table returns a copy of the source table, or nil when the definition was built
// from a bare transition function.
func (d *Definition) Table() table.Table {
	if d.source == nil {
		return nil
	}
	return table.Clone(d.source)
}
