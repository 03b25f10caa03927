package turing

import (
	"io"
	"log/slog"

	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
)

// DefaultStepLimit is the step ceiling applied when none is configured.
const DefaultStepLimit = runtime.DefaultStepLimit

// Machine is the high-level entry point of the library.
// It pairs an immutable definition with run options and is safe for concurrent use;
// every call allocates its own run.
type Machine struct {
	def    *machine.Definition
	limit  int
	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// Option defines a functional option for configuring a Machine.
type Option func(*Machine)

// WithStepLimit sets the step ceiling after which a run fails with *domain.NonHaltingError.
func WithStepLimit(n int) Option {
	return func(m *Machine) {
		m.limit = n
	}
}

// WithLifecycleHooks registers observability hooks applied to every run.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// New wraps a definition. The definition is borrowed read-only for every run.
func New(def *machine.Definition, opts ...Option) *Machine {
	m := &Machine{
		def:   def,
		limit: DefaultStepLimit,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		m.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	return m
}

// Definition returns the wrapped definition.
func (m *Machine) Definition() *machine.Definition {
	return m.def
}

// Name returns the definition name.
func (m *Machine) Name() string {
	return m.def.Name()
}

// StepLimit returns the configured step ceiling.
func (m *Machine) StepLimit() int {
	if m.limit <= 0 {
		return DefaultStepLimit
	}
	return m.limit
}

// NewRun creates a fresh run on input for callers that want to drive Step themselves.
func (m *Machine) NewRun(input string) *runtime.Engine {
	return m.NewRunSymbols(domain.Symbols(input))
}

// NewRunSymbols is NewRun for pre-split input.
func (m *Machine) NewRunSymbols(input []domain.Symbol) *runtime.Engine {
	return runtime.NewEngine(m.def, input,
		runtime.WithStepLimit(m.limit),
		runtime.WithLifecycleHooks(m.hooks),
		runtime.WithLogger(m.logger),
	)
}

// Run executes the machine on input to completion.
// It fails with *domain.MissingTransitionError or *domain.NonHaltingError.
func (m *Machine) Run(input string) (*domain.Result, error) {
	return m.NewRun(input).Run()
}

// Accepts reports whether the machine halts in Accept on input.
func (m *Machine) Accepts(input string) (bool, error) {
	res, err := m.Run(input)
	if err != nil {
		return false, err
	}
	return res.Status == domain.StatusAccepted, nil
}

// Rejects reports whether the machine halts in Reject on input.
// Errors are returned as is and never reported as a rejection.
func (m *Machine) Rejects(input string) (bool, error) {
	res, err := m.Run(input)
	if err != nil {
		return false, err
	}
	return res.Status == domain.StatusRejected, nil
}
