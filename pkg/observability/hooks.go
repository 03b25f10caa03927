package observability

import (
	"log/slog"

	"github.com/aretw0/turing/pkg/domain"
)

// Combine merges hook sets. Callbacks run in the order the sets are given.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var steps []func(*domain.StepEvent)
	var halts []func(*domain.HaltEvent)
	for _, s := range sets {
		if s.OnStep != nil {
			steps = append(steps, s.OnStep)
		}
		if s.OnHalt != nil {
			halts = append(halts, s.OnHalt)
		}
	}

	var out domain.LifecycleHooks
	if len(steps) > 0 {
		out.OnStep = func(e *domain.StepEvent) {
			for _, fn := range steps {
				fn(e)
			}
		}
	}
	if len(halts) > 0 {
		out.OnHalt = func(e *domain.HaltEvent) {
			for _, fn := range halts {
				fn(e)
			}
		}
	}
	return out
}

// LoggingHooks logs every step at debug level and every halt at info level
// (warn for errored and undetermined runs).
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(e *domain.StepEvent) {
			logger.Debug("step",
				"step", e.Step,
				"state", e.From.String(),
				"read", e.Read.String(),
				"next", e.Transition.Next.String(),
				"head", e.Head,
			)
		},
		OnHalt: func(e *domain.HaltEvent) {
			attrs := []any{"status", StatusLabel(e), "steps", e.Steps, "state", e.State.String()}
			if e.Err != nil {
				logger.Warn("run halted", append(attrs, "err", e.Err)...)
				return
			}
			logger.Info("run halted", attrs...)
		},
	}
}
