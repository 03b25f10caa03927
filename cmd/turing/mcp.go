package main

import (
	"os"
	"time"

	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp [dir]",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes every machine file in a directory as MCP tools over Stdin/Stdout.
This allows AI agents to list, describe and run machines.

Logs go to Stderr.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts cli.MCPOptions
		opts.Dir, _ = cmd.Flags().GetString("dir")
		if !cmd.Flags().Changed("dir") && len(args) > 0 {
			opts.Dir = args[0]
		}
		opts.RedisAddr, _ = cmd.Flags().GetString("redis")
		opts.RedisTTL, _ = cmd.Flags().GetDuration("redis-ttl")
		opts.CacheKey, _ = cmd.Flags().GetString("cache-key")
		opts.MaxSteps, _ = cmd.Flags().GetInt("max-steps")
		opts.LogOptions = logOptions(cmd)

		return cli.ServeMCP(cmd.Context(), opts)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("dir", ".", "Directory containing machine files")
	mcpCmd.Flags().String("redis", os.Getenv("TURING_REDIS_ADDR"), "Redis address for the verdict cache (env TURING_REDIS_ADDR)")
	mcpCmd.Flags().Duration("redis-ttl", 24*time.Hour, "Expiry of cached verdicts (0 keeps them forever)")
	mcpCmd.Flags().String("cache-key", os.Getenv("TURING_CACHE_KEY"), "Base64 AES-256 key encrypting tapes cached in Redis (env TURING_CACHE_KEY)")
}
