package memory

import (
	"context"
	"sync"

	"github.com/aretw0/turing/pkg/domain"
)

// Store implements ports.VerdictStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.Verdict
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Verdict),
	}
}

// Save persists a copy of the verdict.
func (s *Store) Save(ctx context.Context, v *domain.Verdict) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[v.Key()] = *v
	return nil
}

// Load retrieves a copy of the verdict so callers can't mutate the store by pointer.
func (s *Store) Load(ctx context.Context, machine, input string) (*domain.Verdict, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[domain.VerdictKey(machine, input)]
	if !ok {
		return nil, domain.ErrVerdictNotFound
	}
	return &v, nil
}

// Delete removes the verdict.
func (s *Store) Delete(ctx context.Context, machine, input string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, domain.VerdictKey(machine, input))
	return nil
}

// List returns the inputs with a stored verdict for machine.
func (s *Store) List(ctx context.Context, machine string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inputs := make([]string, 0)
	for _, v := range s.data {
		if v.Machine == machine {
			inputs = append(inputs, v.Input)
		}
	}
	return inputs, nil
}
