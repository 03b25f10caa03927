package cli

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/adapters/mcp"
)

// MCPOptions contains all the configuration for the MCP command.
type MCPOptions struct {
	Dir       string
	RedisAddr string
	RedisTTL  time.Duration
	CacheKey  string // base64 AES-256 key encrypting cached tapes
	MaxSteps  int
	LogOptions
}

// ServeMCP exposes every machine file in a directory as MCP tools over stdio.
// Logs always go to Stderr so they cannot corrupt JSON-RPC on Stdout.
func ServeMCP(ctx context.Context, opts MCPOptions) error {
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

	srv := mcp.NewServer(catalog,
		mcp.WithStore(store),
		mcp.WithStepLimit(opts.MaxSteps),
		mcp.WithLogger(logger),
	)

	logger.Info("Starting Turing MCP Server (Stdio)", "dir", catalog.Dir())
	if err := srv.Listen(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		logger.Error("MCP Server execution failed", "err", err)
		return err
	}
	return nil
}
