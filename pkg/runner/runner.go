package runner

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Outcome is the result of running the machine on one input.
type Outcome struct {
	Input  string
	Status domain.Status
	Steps  int
	Tape   string

	// Undetermined is set when the run hit the step ceiling.
	// Status stays StatusRunning and Err holds the *domain.NonHaltingError.
	Undetermined bool

	// Cached is set when the verdict was served from the store.
	Cached bool

	Err error
}

// Label is the short verdict used in reports: accepted, rejected, undetermined or error.
func (o Outcome) Label() string {
	switch {
	case o.Undetermined:
		return "undetermined"
	case o.Err != nil:
		return "error"
	}
	return string(o.Status)
}

// Summary counts outcomes by label.
type Summary struct {
	Accepted     int `json:"accepted"`
	Rejected     int `json:"rejected"`
	Undetermined int `json:"undetermined"`
	Errored      int `json:"errored"`
	Cached       int `json:"cached"`
}

// Summarize tallies a batch.
func Summarize(outcomes []Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		switch o.Label() {
		case "accepted":
			s.Accepted++
		case "rejected":
			s.Rejected++
		case "undetermined":
			s.Undetermined++
		default:
			s.Errored++
		}
		if o.Cached {
			s.Cached++
		}
	}
	return s
}

// Runner runs a single machine against many inputs.
// The machine definition is shared read-only by every worker.
type Runner struct {
	machine *turing.Machine
	store   ports.VerdictStore
	workers int
	logger  *slog.Logger

	// fingerprint ties stored verdicts to the definition that produced them.
	fingerprint string

	// inflight collapses concurrent runs of the same input.
	inflight singleflight.Group
}

// New creates a Runner for m.
func New(m *turing.Machine, opts ...Option) *Runner {
	r := &Runner{
		machine:     m,
		workers:     DefaultWorkers,
		fingerprint: m.Definition().Fingerprint(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return r
}

// Machine returns the machine being run.
func (r *Runner) Machine() *turing.Machine {
	return r.machine
}

// Run executes the machine on a single input, consulting the store first.
// Only accepted and rejected verdicts are written back. Concurrent calls with
// the same input share one execution. Definitions without a fingerprint are
// never cached.
func (r *Runner) Run(ctx context.Context, input string) Outcome {
	if o, ok := r.cached(ctx, input); ok {
		return o
	}

	v, _, _ := r.inflight.Do(input, func() (any, error) {
		return r.execute(ctx, input), nil
	})
	return v.(Outcome)
}

func (r *Runner) execute(ctx context.Context, input string) Outcome {
	o := Outcome{Input: input}
	res, err := r.machine.Run(input)

	var nonHalting *domain.NonHaltingError
	switch {
	case err == nil:
		o.Status = res.Status
		o.Steps = res.Steps
		o.Tape = res.Tape.String()
		r.save(ctx, o)
	case errors.As(err, &nonHalting):
		o.Status = domain.StatusRunning
		o.Steps = nonHalting.Steps
		o.Undetermined = true
		o.Err = err
	default:
		o.Status = domain.StatusErrored
		o.Err = err
	}

	return o
}

// RunAll runs every input on the worker pool and returns outcomes in input order.
// Run failures are reported per Outcome; the returned error is only set when ctx
// is cancelled, in which case inputs that never started carry ctx.Err().
func (r *Runner) RunAll(ctx context.Context, inputs []string) ([]Outcome, error) {
	outcomes := make([]Outcome, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, input := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				outcomes[i] = Outcome{Input: input, Status: domain.StatusErrored, Err: err}
				return err
			}
			outcomes[i] = r.Run(gctx, input)
			return nil
		})
	}

	err := g.Wait()
	r.logger.Debug("batch finished", "inputs", len(inputs), "workers", r.workers)
	return outcomes, err
}

func (r *Runner) cached(ctx context.Context, input string) (Outcome, bool) {
	name := r.machine.Name()
	if r.store == nil || name == "" || r.fingerprint == "" {
		return Outcome{}, false
	}

	v, err := r.store.Load(ctx, name, input)
	if err != nil {
		if !errors.Is(err, domain.ErrVerdictNotFound) {
			r.logger.Warn("verdict lookup failed", "input", input, "err", err)
		}
		return Outcome{}, false
	}

	if v.Status != domain.StatusAccepted && v.Status != domain.StatusRejected {
		return Outcome{}, false
	}
	if v.Fingerprint != r.fingerprint {
		r.logger.Debug("stale verdict ignored", "input", input)
		return Outcome{}, false
	}
	// A verdict that took more steps than the current ceiling allows would be
	// undetermined under it.
	if v.Steps > r.machine.StepLimit() {
		return Outcome{}, false
	}

	r.logger.Debug("verdict cache hit", "input", input, "status", v.Status)
	return Outcome{
		Input:  input,
		Status: v.Status,
		Steps:  v.Steps,
		Tape:   v.Tape,
		Cached: true,
	}, true
}

func (r *Runner) save(ctx context.Context, o Outcome) {
	name := r.machine.Name()
	if r.store == nil || name == "" || r.fingerprint == "" {
		return
	}

	err := r.store.Save(ctx, &domain.Verdict{
		Machine: name,
		Input:   o.Input,
		Status:  o.Status,
		Steps:   o.Steps,
		Tape:    o.Tape,

		Fingerprint: r.fingerprint,
	})
	if err != nil {
		r.logger.Warn("verdict save failed", "input", o.Input, "err", err)
	}
}
