package memory

import (
	"fmt"
	"sort"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
)

// Loader implements ports.DefinitionLoader using an in-memory map.
type Loader struct {
	defs map[string]*machine.Definition
}

// NewLoader creates a loader from named definitions.
// Every definition must carry a unique, non-empty name.
func NewLoader(defs ...*machine.Definition) (*Loader, error) {
	l := &Loader{defs: make(map[string]*machine.Definition, len(defs))}
	for _, d := range defs {
		if d.Name() == "" {
			return nil, fmt.Errorf("definition missing name")
		}
		if _, dup := l.defs[d.Name()]; dup {
			return nil, fmt.Errorf("duplicate machine name: %s", d.Name())
		}
		l.defs[d.Name()] = d
	}
	return l, nil
}

// Get retrieves a definition by name.
func (l *Loader) Get(name string) (*machine.Definition, error) {
	d, ok := l.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, name)
	}
	return d, nil
}

// List returns all machine names.
func (l *Loader) List() ([]string, error) {
	keys := make([]string, 0, len(l.defs))
	for k := range l.defs {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
