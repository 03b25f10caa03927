package runner

import (
	"log/slog"

	"github.com/aretw0/turing/pkg/ports"
)

// DefaultWorkers is the worker pool size used when none is configured.
const DefaultWorkers = 4

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithStore configures the VerdictStore used as a cache of halted runs.
// The machine must be named for the store to be consulted.
func WithStore(store ports.VerdictStore) Option {
	return func(r *Runner) {
		r.store = store
	}
}

// WithWorkers bounds the number of concurrent runs. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}
