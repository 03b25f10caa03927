package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/adapters/file"
	httpAdapter "github.com/aretw0/turing/pkg/adapters/http"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ServeOptions contains all the configuration for the Serve command.
type ServeOptions struct {
	Dir       string
	Addr      string
	RedisAddr string
	RedisTTL  time.Duration
	CacheKey  string // base64 AES-256 key encrypting cached tapes
	MaxSteps  int
	Workers   int
	Quiet     bool
	LogOptions
}

// Serve exposes every machine file in a directory over HTTP until ctx is cancelled.
func Serve(ctx context.Context, opts ServeOptions, w io.Writer) error {
	logger, closeLog, err := createLogger(opts.LogOptions, slog.LevelWarn)
	if err != nil {
		return err
	}
	defer closeLog()

	catalog, err := file.NewCatalog(opts.Dir)
	if err != nil {
		return &ExitError{Code: ExitFailure, Err: err}
	}

	store, closeStore, err := createStore(opts.RedisAddr, opts.RedisTTL, opts.CacheKey, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return err
	}

	handler := httpAdapter.NewHandler(catalog,
		httpAdapter.WithStore(store),
		httpAdapter.WithMetrics(metrics),
		httpAdapter.WithLogger(logger),
		httpAdapter.WithStepLimit(opts.MaxSteps),
		httpAdapter.WithWorkers(opts.Workers),
		httpAdapter.WithRequestValidation(),
	)

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	if !opts.Quiet {
		tui.PrintBanner(w)
		names, _ := catalog.List()
		printSystemMessage(w, "Serving %d machines from %s on %s", len(names), catalog.Dir(), opts.Addr)
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("Shutting down server")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		if !opts.Quiet {
			printSystemMessage(w, "Server stopped gracefully")
		}
		return nil
	}
}
