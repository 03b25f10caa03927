package ports

import "github.com/aretw0/turing/pkg/machine"

// DefinitionLoader resolves machine definitions by name.
type DefinitionLoader interface {
	// Get returns the definition registered under name.
	// It returns domain.ErrMachineNotFound if there is none.
	Get(name string) (*machine.Definition, error)

	// List returns the names of all available machines, sorted.
	List() ([]string, error)
}
