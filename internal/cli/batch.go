package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/runner"
)

// BatchOptions contains all the configuration for the Batch command.
type BatchOptions struct {
	File      string
	Inputs    []string
	Stdin     io.Reader // read one input per line when Inputs is empty
	JSON      bool
	Workers   int
	MaxSteps  int
	RedisAddr string
	RedisTTL  time.Duration
	CacheKey  string // base64 AES-256 key encrypting cached tapes
	LogOptions
}

// Batch runs one machine file on many inputs concurrently and prints every outcome.
// Any run error exits with ExitFailure; otherwise any undetermined run exits with
// ExitUndetermined.
func Batch(ctx context.Context, opts BatchOptions, w io.Writer) error {
	logger, closeLog, err := createLogger(opts.LogOptions, logging.LevelOff)
	if err != nil {
		return err
	}
	defer closeLog()

	entry, err := loadMachine(opts.File)
	if err != nil {
		return err
	}

	inputs := opts.Inputs
	if len(inputs) == 0 && opts.Stdin != nil {
		inputs, err = runner.ReadInputs(opts.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read inputs: %w", err)
		}
	}

	store, closeStore, err := createStore(opts.RedisAddr, opts.RedisTTL, opts.CacheKey, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	r := runner.New(createMachine(entry, opts.MaxSteps, opts.Debug, logger),
		runner.WithStore(store),
		runner.WithWorkers(opts.Workers),
		runner.WithLogger(logger),
	)

	outcomes, err := r.RunAll(ctx, inputs)
	if err != nil {
		return err
	}

	var handler runner.OutputHandler = runner.NewTextHandler(w)
	if opts.JSON {
		handler = runner.NewJSONHandler(w)
	}
	if err := runner.Report(ctx, handler, outcomes); err != nil {
		return err
	}

	summary := runner.Summarize(outcomes)
	switch {
	case summary.Errored > 0:
		return &ExitError{Code: ExitFailure, Err: fmt.Errorf("%d of %d runs failed", summary.Errored, len(outcomes))}
	case summary.Undetermined > 0:
		return &ExitError{Code: ExitUndetermined, Err: fmt.Errorf("%d of %d runs undetermined", summary.Undetermined, len(outcomes))}
	}
	return nil
}
