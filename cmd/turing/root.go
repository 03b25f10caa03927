package main

import (
	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "turing",
	Short: "Turing runs deterministic single-tape Turing machines",
	Long: `Turing loads machine definitions from YAML files and runs them on input strings.
A run accepts, rejects, or is reported as undetermined once it exceeds the step ceiling.

Exit codes: 0 halted, 1 error, 2 undetermined.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Bool("debug", false, "Log every step to Stderr")
	rootCmd.PersistentFlags().String("log-file", "", "Append JSON logs to this file")
	rootCmd.PersistentFlags().String("log-level", "info", "Level of the file log: debug, info, warn or error")
	rootCmd.PersistentFlags().Int("max-steps", 0, "Step ceiling (0 uses the file's max_steps, then the default)")
}

func logOptions(cmd *cobra.Command) cli.LogOptions {
	var o cli.LogOptions
	o.Debug, _ = cmd.Flags().GetBool("debug")
	o.LogFile, _ = cmd.Flags().GetString("log-file")
	o.LogLevel, _ = cmd.Flags().GetString("log-level")
	return o
}
