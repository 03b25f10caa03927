package dsl

import (
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
)

// StateBuilder provides a fluent API for configuring one row of the table.
type StateBuilder struct {
	name    string
	builder *Builder
	rules   []rule
	err     error
}

type rule struct {
	read   domain.Symbol
	next   string
	move   domain.Movement
	write  domain.Symbol
	writes bool
}

// On starts the entry for the scanned symbol sym.
func (s *StateBuilder) On(sym domain.Symbol) *RuleBuilder {
	return &RuleBuilder{state: s, rule: rule{read: sym}}
}

// Blank starts the entry for the Blank symbol.
func (s *StateBuilder) Blank() *RuleBuilder {
	return s.On(domain.Blank)
}

// Otherwise starts the NULL wildcard entry.
func (s *StateBuilder) Otherwise() *RuleBuilder {
	return s.On(domain.Null)
}

// Builder returns the parent builder.
func (s *StateBuilder) Builder() *Builder {
	return s.builder
}

func (s *StateBuilder) add(r rule) {
	for _, existing := range s.rules {
		if existing.read == r.read && s.err == nil {
			s.err = &domain.MalformedTableError{
				Path:   fmt.Sprintf("%s.%s", s.name, r.read),
				Reason: "duplicate symbol entry",
			}
			return
		}
	}
	s.rules = append(s.rules, r)
}

// RuleBuilder configures a single entry. Go completes it.
type RuleBuilder struct {
	state *StateBuilder
	rule  rule
}

// Write sets the symbol written before the head moves.
func (r *RuleBuilder) Write(sym domain.Symbol) *RuleBuilder {
	r.rule.write = sym
	r.rule.writes = true
	return r
}

// Left moves the head one cell left.
func (r *RuleBuilder) Left() *RuleBuilder {
	r.rule.move = domain.Left
	return r
}

// Right moves the head one cell right.
func (r *RuleBuilder) Right() *RuleBuilder {
	r.rule.move = domain.Right
	return r
}

// Go sets the next state and records the entry.
func (r *RuleBuilder) Go(next string) *StateBuilder {
	if next == "" && r.state.err == nil {
		r.state.err = &domain.MalformedTableError{
			Path:   fmt.Sprintf("%s.%s", r.state.name, r.rule.read),
			Reason: "next state must be a non-empty name",
		}
		return r.state
	}
	r.rule.next = next
	r.state.add(r.rule)
	return r.state
}
