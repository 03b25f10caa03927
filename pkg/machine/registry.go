package machine

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/aretw0/turing/pkg/domain"
)

// registryIDs issues process-unique registry ids. Id 0 is reserved for Accept and Reject.
var registryIDs atomic.Uint64

// Registry interns state names into opaque domain.State tokens.
// States from different registries never compare equal.
// Safe for concurrent use.
type Registry struct {
	id     uint64
	mu     sync.RWMutex
	byName map[string]domain.State
	order  []domain.State
}

// NewRegistry creates an empty registry with a fresh id.
func NewRegistry() *Registry {
	return &Registry{
		id:     registryIDs.Add(1),
		byName: make(map[string]domain.State),
	}
}

// State returns the token for name, issuing it on first use.
// The reserved names "accept" and "reject" resolve to domain.Accept and domain.Reject.
func (r *Registry) State(name string) domain.State {
	switch name {
	case domain.KeyAccept:
		return domain.Accept
	case domain.KeyReject:
		return domain.Reject
	}

	r.mu.RLock()
	s, ok := r.byName[name]
	r.mu.RUnlock()
	if ok {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.byName[name]; ok {
		return s
	}
	s = domain.NewState(r.id, uint32(len(r.order)+1), name)
	r.byName[name] = s
	r.order = append(r.order, s)
	return s
}

// States issues one token per name, in order.
func (r *Registry) States(names ...string) []domain.State {
	out := make([]domain.State, len(names))
	for i, n := range names {
		out[i] = r.State(n)
	}
	return out
}

// Lookup returns a previously issued state without issuing a new one.
func (r *Registry) Lookup(name string) (domain.State, bool) {
	switch name {
	case domain.KeyAccept:
		return domain.Accept, true
	case domain.KeyReject:
		return domain.Reject, true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byName[name]
	return s, ok
}

// Issued returns every state issued so far, in issue order.
func (r *Registry) Issued() []domain.State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.State, len(r.order))
	copy(out, r.order)
	return out
}

// Names returns the names of every issued state, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.byName))
	for n := range r.byName {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Owns reports whether s was issued by this registry.
func (r *Registry) Owns(s domain.State) bool {
	return s.Registry() == r.id && !s.IsZero()
}
