package main

import (
	"os"
	"time"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve [dir]",
	Short: "Start the HTTP server",
	Long: `Serves every machine file in a directory as a JSON API over HTTP,
with Prometheus metrics on /metrics.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts cli.ServeOptions
		opts.Dir, _ = cmd.Flags().GetString("dir")
		if !cmd.Flags().Changed("dir") && len(args) > 0 {
			opts.Dir = args[0]
		}
		opts.Addr, _ = cmd.Flags().GetString("addr")
		opts.RedisAddr, _ = cmd.Flags().GetString("redis")
		opts.RedisTTL, _ = cmd.Flags().GetDuration("redis-ttl")
		opts.CacheKey, _ = cmd.Flags().GetString("cache-key")
		opts.MaxSteps, _ = cmd.Flags().GetInt("max-steps")
		opts.Workers, _ = cmd.Flags().GetInt("workers")
		opts.Quiet, _ = cmd.Flags().GetBool("quiet")
		opts.LogOptions = logOptions(cmd)

		return cli.Serve(cmd.Context(), opts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("dir", ".", "Directory containing machine files")
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
	serveCmd.Flags().String("redis", os.Getenv("TURING_REDIS_ADDR"), "Redis address for the verdict cache (env TURING_REDIS_ADDR)")
	serveCmd.Flags().Duration("redis-ttl", 24*time.Hour, "Expiry of cached verdicts (0 keeps them forever)")
	serveCmd.Flags().String("cache-key", os.Getenv("TURING_CACHE_KEY"), "Base64 AES-256 key encrypting tapes cached in Redis (env TURING_CACHE_KEY)")
	serveCmd.Flags().IntP("workers", "w", runner.DefaultWorkers, "Concurrent runs per batch request")
	serveCmd.Flags().BoolP("quiet", "q", false, "Skip the banner")
}
