package main

import (
	"errors"

	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

var errTraceJSON = errors.New("--trace and --json cannot be used together")

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <machine.yaml> [input]",
	Short: "Run a machine on one input",
	Long: `Writes the input on the tape, one symbol per character, and runs the machine
until it accepts, rejects or exceeds the step ceiling.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.RunOptions{File: args[0]}
		if len(args) > 1 {
			opts.Input = args[1]
		}
		opts.Trace, _ = cmd.Flags().GetBool("trace")
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.MaxSteps, _ = cmd.Flags().GetInt("max-steps")
		opts.LogOptions = logOptions(cmd)

		if opts.Trace && opts.JSON {
			return &cli.ExitError{Code: cli.ExitFailure, Err: errTraceJSON}
		}
		return cli.Run(cmd.Context(), opts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("trace", "t", false, "Print every configuration as the machine runs")
	runCmd.Flags().Bool("json", false, "Print the verdict as JSON")
}
