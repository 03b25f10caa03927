package runtime

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/tape"
)

// DefaultStepLimit is the step ceiling used when none is configured.
const DefaultStepLimit = 1_000_000

// Definition is the read-only view of a machine the engine needs.
// *machine.Definition satisfies it.
type Definition interface {
	Name() string
	Start() domain.State
	Transition(state domain.State, sym domain.Symbol) (domain.Transition, error)
}

// Engine is a single run of a machine on one input.
// It owns its tape and current state and must not be reused across inputs.
type Engine struct {
	def   Definition
	tape  *tape.Tape
	state domain.State

	status domain.Status
	err    error
	steps  int

	limit  int
	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithStepLimit sets the step ceiling. Values <= 0 select DefaultStepLimit.
func WithStepLimit(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.limit = n
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger. A nil logger keeps the default.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates a run with a fresh tape seeded with input from position 0.
// Input holding domain.Null leaves the run errored with domain.ErrReservedInput
// before any step, so the wildcard never reaches the tape.
func NewEngine(def Definition, input []domain.Symbol, opts ...EngineOption) *Engine {
	e := &Engine{
		def:    def,
		state:  def.Start(),
		status: domain.StatusRunning,
		limit:  DefaultStepLimit,
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}

	for i, sym := range input {
		if sym == domain.Null {
			e.tape = tape.New()
			e.status = domain.StatusErrored
			e.err = fmt.Errorf("%w at position %d", domain.ErrReservedInput, i)
			return e
		}
	}
	e.tape = tape.FromSymbols(input)
	return e
}

// Step applies a single transition.
// Once the run has halted or exceeded its ceiling, Step keeps returning the
// same status and error.
func (e *Engine) Step() (domain.Status, error) {
	if e.status.IsTerminal() || e.err != nil {
		return e.status, e.err
	}

	switch e.state {
	case domain.Accept:
		e.halt(domain.StatusAccepted, nil)
		return e.status, nil
	case domain.Reject:
		e.halt(domain.StatusRejected, nil)
		return e.status, nil
	}

	read := e.tape.Read()
	tr, err := e.def.Transition(e.state, read)
	if err != nil {
		e.halt(domain.StatusErrored, err)
		return e.status, err
	}

	if tr.Writes {
		e.tape.Write(tr.Write)
	}
	e.tape.Move(tr.Move)

	from := e.state
	e.state = tr.Next
	e.steps++

	if e.hooks.OnStep != nil {
		e.hooks.OnStep(&domain.StepEvent{
			Step:       e.steps,
			From:       from,
			Read:       read,
			Transition: tr,
			Head:       e.tape.Head(),
		})
	}

	return e.status, nil
}

// Run steps until the machine halts or the step ceiling is exceeded.
// Exceeding the ceiling returns *domain.NonHaltingError and leaves the run unfinished.
// OnHalt fires once per run; calling Run again returns the recorded error.
func (e *Engine) Run() (*domain.Result, error) {
	if e.err != nil {
		return nil, e.err
	}
	for !e.status.IsTerminal() {
		if !e.state.IsTerminal() && e.steps >= e.limit {
			err := &domain.NonHaltingError{Steps: e.steps, State: e.state}
			e.logger.Debug("step ceiling exceeded",
				"machine", e.def.Name(),
				"steps", e.steps,
				"state", e.state.String(),
			)
			e.err = err
			e.emitHalt(domain.StatusRunning, err)
			return nil, err
		}
		if _, err := e.Step(); err != nil {
			return nil, err
		}
	}
	return e.Result(), nil
}

// Result snapshots the run. It can be called at any point.
func (e *Engine) Result() *domain.Result {
	return &domain.Result{
		Status:     e.status,
		Steps:      e.steps,
		FinalState: e.state,
		Tape:       e.tape.Snapshot(),
	}
}

// State returns the current control state.
func (e *Engine) State() domain.State {
	return e.state
}

// Status returns the run status.
func (e *Engine) Status() domain.Status {
	return e.status
}

// StepLimit returns the step ceiling enforced by Run.
func (e *Engine) StepLimit() int {
	return e.limit
}

// Err returns the error that halted the run, if any.
func (e *Engine) Err() error {
	return e.err
}

// Steps returns the number of transitions applied so far.
func (e *Engine) Steps() int {
	return e.steps
}

// Tape exposes the run's tape for diagnostics. Callers must not mutate it.
func (e *Engine) Tape() *tape.Tape {
	return e.tape
}

func (e *Engine) halt(status domain.Status, err error) {
	e.status = status
	e.err = err
	if err != nil {
		e.logger.Debug("run failed",
			"machine", e.def.Name(),
			"steps", e.steps,
			"state", e.state.String(),
			"err", err,
		)
	} else {
		e.logger.Debug("run halted",
			"machine", e.def.Name(),
			"status", string(status),
			"steps", e.steps,
		)
	}
	e.emitHalt(status, err)
}

func (e *Engine) emitHalt(status domain.Status, err error) {
	if e.hooks.OnHalt == nil {
		return
	}
	e.hooks.OnHalt(&domain.HaltEvent{
		Status: status,
		Steps:  e.steps,
		State:  e.state,
		Err:    err,
	})
}
