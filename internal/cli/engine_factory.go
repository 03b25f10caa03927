package cli

import (
	"log/slog"
	"time"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/adapters/redis"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/persistence/middleware"
	"github.com/aretw0/turing/pkg/ports"
)

// createMachine wraps a loaded entry with standard CLI conventions:
// the --max-steps flag wins over the document's max_steps, and debug mode
// logs every step.
func createMachine(entry *file.Entry, maxSteps int, debug bool, logger *slog.Logger, hooks ...domain.LifecycleHooks) *turing.Machine {
	limit := stepLimit(entry, maxSteps)

	if debug {
		hooks = append(hooks, observability.LoggingHooks(logger))
	}

	return turing.New(entry.Definition,
		turing.WithStepLimit(limit),
		turing.WithLogger(logger),
		turing.WithLifecycleHooks(observability.Combine(hooks...)),
	)
}

func stepLimit(entry *file.Entry, maxSteps int) int {
	if maxSteps > 0 {
		return maxSteps
	}
	if entry != nil && entry.Document != nil && entry.Document.MaxSteps > 0 {
		return entry.Document.MaxSteps
	}
	return turing.DefaultStepLimit
}

// createStore returns a Redis verdict store when addr is set, an in-memory one otherwise.
// A non-empty key (base64, 32 bytes) encrypts the tapes cached in Redis.
// The returned close function is never nil.
func createStore(addr string, ttl time.Duration, key string, logger *slog.Logger) (ports.VerdictStore, func() error, error) {
	noop := func() error { return nil }
	if addr == "" {
		return memory.NewStore(), noop, nil
	}

	var mws []middleware.Middleware
	if key != "" {
		active, err := middleware.ParseKey(key)
		if err != nil {
			return nil, noop, &ExitError{Code: ExitFailure, Err: err}
		}
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: active}))
	}

	logger.Info("Using Redis verdict store", "addr", addr, "ttl", ttl, "encrypted", key != "")
	store := redis.New(addr, "", 0, redis.WithTTL(ttl))
	return middleware.Chain(store, mws...), store.Close, nil
}
