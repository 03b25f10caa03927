// Package table builds transition functions from two-level transition tables.
//
// A Table maps each non-terminal state to a Row, and each Row maps a read symbol
// to the Transition to apply. The domain.Null key of a Row is its wildcard fallback.
package table

import (
	"fmt"
	"sort"

	"github.com/aretw0/turing/pkg/domain"
)

// Row maps read symbols (or domain.Null) to transitions for a single state.
type Row map[domain.Symbol]domain.Transition

// Table maps states to their rows. Accept and Reject never appear as keys.
type Table map[domain.State]Row

// FallbackPolicy decides when the Null entry of a row applies.
type FallbackPolicy int

const (
	// FallbackAny applies Null to any symbol without an explicit entry.
	FallbackAny FallbackPolicy = iota
	// FallbackBlankOnly applies Null only when the read symbol is Blank.
	FallbackBlankOnly
)

func (p FallbackPolicy) String() string {
	switch p {
	case FallbackAny:
		return "any"
	case FallbackBlankOnly:
		return "blank"
	}
	return fmt.Sprintf("fallback(%d)", int(p))
}

// ParseFallback accepts "any" (or empty) and "blank".
func ParseFallback(s string) (FallbackPolicy, error) {
	switch s {
	case "", "any":
		return FallbackAny, nil
	case "blank":
		return FallbackBlankOnly, nil
	}
	return FallbackAny, fmt.Errorf("unknown fallback policy %q (expected any or blank)", s)
}

type config struct {
	fallback FallbackPolicy
}

// Option configures MakeTransitionFn.
type Option func(*config)

// WithFallback selects the Null fallback policy. The default is FallbackAny.
func WithFallback(p FallbackPolicy) Option {
	return func(c *config) {
		c.fallback = p
	}
}

// Policy resolves the fallback policy selected by opts.
func Policy(opts ...Option) FallbackPolicy {
	cfg := config{fallback: FallbackAny}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg.fallback
}

// MakeTransitionFn validates t and returns a pure lookup over a private copy of it.
// Lookups try the exact symbol first and the Null entry second.
func MakeTransitionFn(t Table, opts ...Option) (domain.TransitionFunc, error) {
	cfg := config{fallback: FallbackAny}
	for _, opt := range opts {
		opt(&cfg)
	}

	if t == nil {
		return nil, &domain.MalformedTableError{Reason: "table is nil"}
	}
	if err := Check(t); err != nil {
		return nil, err
	}

	frozen := Clone(t)
	policy := cfg.fallback

	return func(state domain.State, sym domain.Symbol) (domain.Transition, error) {
		if state.IsTerminal() {
			return domain.Transition{}, fmt.Errorf("%w: %s", domain.ErrTerminalLookup, state)
		}
		row, ok := frozen[state]
		if ok {
			if tr, ok := row[sym]; ok {
				return tr, nil
			}
			if policy == FallbackAny || sym == domain.Blank {
				if tr, ok := row[domain.Null]; ok {
					return tr, nil
				}
			}
		}
		return domain.Transition{}, &domain.MissingTransitionError{State: state, Symbol: sym}
	}, nil
}

// Check reports the first structural problem found in t, in a stable order.
func Check(t Table) error {
	for _, state := range States(t) {
		row := t[state]
		switch {
		case state.IsZero():
			return &domain.MalformedTableError{Reason: "table has an invalid (zero) state key"}
		case state.IsTerminal():
			return &domain.MalformedTableError{State: state, Reason: "terminal state cannot have transitions"}
		case row == nil:
			return &domain.MalformedTableError{State: state, Reason: "state entry is not a mapping"}
		}
		for _, sym := range RowSymbols(row) {
			tr := row[sym]
			if tr.Next.IsZero() {
				return &domain.MalformedTableError{State: state, Symbol: sym, Reason: "transition has no next state"}
			}
			if !tr.Move.Valid() {
				return &domain.MalformedTableError{State: state, Symbol: sym, Reason: fmt.Sprintf("invalid movement %s", tr.Move)}
			}
			if tr.Writes && tr.Write == domain.Null {
				return &domain.MalformedTableError{State: state, Symbol: sym, Reason: "cannot write the NULL wildcard"}
			}
		}
	}
	return nil
}

// Clone deep-copies t.
func Clone(t Table) Table {
	out := make(Table, len(t))
	for state, row := range t {
		cp := make(Row, len(row))
		for sym, tr := range row {
			cp[sym] = tr
		}
		out[state] = cp
	}
	return out
}

// States returns the keys of t ordered by name.
func States(t Table) []domain.State {
	out := make([]domain.State, 0, len(t))
	for s := range t {
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name() < out[j].Name()
	})
	return out
}

// Targets returns every distinct next state referenced by t, ordered by name.
func Targets(t Table) []domain.State {
	seen := make(map[domain.State]struct{})
	var out []domain.State
	for _, state := range States(t) {
		for _, sym := range RowSymbols(t[state]) {
			next := t[state][sym].Next
			if _, ok := seen[next]; ok {
				continue
			}
			seen[next] = struct{}{}
			out = append(out, next)
		}
	}
	return out
}

// Symbols returns every symbol a table reads or writes, excluding Null and Blank.
func Symbols(t Table) []domain.Symbol {
	seen := make(map[domain.Symbol]struct{})
	add := func(s domain.Symbol) {
		if s != domain.Null && s != domain.Blank {
			seen[s] = struct{}{}
		}
	}
	for _, row := range t {
		for sym, tr := range row {
			add(sym)
			if tr.Writes {
				add(tr.Write)
			}
		}
	}
	out := make([]domain.Symbol, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RowSymbols returns the keys of a row in a stable order with Null last.
func RowSymbols(row Row) []domain.Symbol {
	out := make([]domain.Symbol, 0, len(row))
	hasNull := false
	for s := range row {
		if s == domain.Null {
			hasNull = true
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	if hasNull {
		out = append(out, domain.Null)
	}
	return out
}
