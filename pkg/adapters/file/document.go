// Package file loads machine definitions from YAML documents.
//
// A document looks like:
//
//	name: contains-11
//	start: q1
//	fallback: any # or "blank"
//	table:
//	  q1: { "0": [q1, R], "1": [q2, R], _: [reject, R] }
//	  q2: { "0": [q1, R], "1": [accept, R], _: [reject, R] }
//
// Row keys "_" and "~" address the NULL fallback; "blank" addresses the Blank symbol.
package file

import (
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/table"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Document is the decoded header and table of a machine file.
type Document struct {
	Name        string         `mapstructure:"name"`
	Description string         `mapstructure:"description"`
	Start       string         `mapstructure:"start"`
	Fallback    string         `mapstructure:"fallback"`
	States      []string       `mapstructure:"states"`
	Alphabet    []string       `mapstructure:"alphabet"`
	MaxSteps    int            `mapstructure:"max_steps"`
	Table       map[string]any `mapstructure:"table"`
}

// ParseDocument decodes YAML into a Document. Unknown top-level keys are rejected.
func ParseDocument(data []byte) (*Document, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("empty machine document")
	}

	var doc Document
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &doc,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid machine document: %w", err)
	}

	if doc.Start == "" {
		return nil, &domain.DefinitionError{Reason: "document has no start state"}
	}
	if doc.Table == nil {
		return nil, &domain.MalformedTableError{Reason: "document has no table"}
	}
	return &doc, nil
}

// Definition builds and validates the machine described by the document.
// When States is listed, every table key and target must be one of them.
func (d *Document) Definition() (*machine.Definition, error) {
	policy, err := table.ParseFallback(d.Fallback)
	if err != nil {
		return nil, &domain.DefinitionError{Reason: err.Error()}
	}

	reg := machine.NewRegistry()
	declared := reg.States(d.States...)

	tbl, err := machine.Decode(d.Table, reg)
	if err != nil {
		return nil, err
	}
	start := reg.State(d.Start)

	opts := []machine.Option{machine.WithName(d.Name)}
	if len(d.Alphabet) > 0 {
		opts = append(opts, machine.WithAlphabet(domain.SymbolsOf(d.Alphabet...)...))
	}
	tableOpts := []table.Option{table.WithFallback(policy)}

	if len(declared) == 0 {
		return machine.FromTableWith(start, tbl, tableOpts, opts...)
	}

	return machine.NewFromTable(declared, start, tbl, tableOpts, opts...)
}

// Parse decodes a YAML machine document straight into a Definition.
func Parse(data []byte) (*machine.Definition, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}
	return doc.Definition()
}
