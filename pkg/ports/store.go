package ports

import (
	"context"

	"github.com/aretw0/turing/pkg/domain"
)

// VerdictStore persists verdicts of halted runs.
// Runs are deterministic, so a stored verdict stays valid for as long as the
// machine definition under that name does not change.
type VerdictStore interface {
	// Save persists the verdict under its machine/input key.
	Save(ctx context.Context, v *domain.Verdict) error

	// Load retrieves the verdict for a machine and input.
	// Returns domain.ErrVerdictNotFound if it does not exist.
	Load(ctx context.Context, machine, input string) (*domain.Verdict, error)

	// Delete removes a verdict.
	Delete(ctx context.Context, machine, input string) error

	// List returns the inputs with a stored verdict for a machine.
	List(ctx context.Context, machine string) ([]string, error)
}
