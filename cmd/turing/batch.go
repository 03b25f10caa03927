package main

import (
	"os"
	"time"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch <machine.yaml> [input...]",
	Short: "Run a machine on many inputs concurrently",
	Long: `Runs every input on a worker pool and prints the outcomes in input order.
Without input arguments, inputs are read from Stdin, one per line.

Verdicts of halted runs are cached in memory, or in Redis when --redis is set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.BatchOptions{File: args[0], Inputs: args[1:]}
		if len(opts.Inputs) == 0 {
			opts.Stdin = cmd.InOrStdin()
		}
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Workers, _ = cmd.Flags().GetInt("workers")
		opts.MaxSteps, _ = cmd.Flags().GetInt("max-steps")
		opts.RedisAddr, _ = cmd.Flags().GetString("redis")
		opts.RedisTTL, _ = cmd.Flags().GetDuration("redis-ttl")
		opts.CacheKey, _ = cmd.Flags().GetString("cache-key")
		opts.LogOptions = logOptions(cmd)

		return cli.Batch(cmd.Context(), opts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().Bool("json", false, "Print outcomes as JSON Lines")
	batchCmd.Flags().IntP("workers", "w", runner.DefaultWorkers, "Number of concurrent runs")
	batchCmd.Flags().String("redis", os.Getenv("TURING_REDIS_ADDR"), "Redis address for the verdict cache (env TURING_REDIS_ADDR)")
	batchCmd.Flags().Duration("redis-ttl", 24*time.Hour, "Expiry of cached verdicts (0 keeps them forever)")
	batchCmd.Flags().String("cache-key", os.Getenv("TURING_CACHE_KEY"), "Base64 AES-256 key encrypting tapes cached in Redis (env TURING_CACHE_KEY)")
}
