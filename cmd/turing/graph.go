package main

import (
	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <machine.yaml>",
	Short: "Export the state diagram",
	Long: `Outputs a Mermaid diagram (graph TD) of the transition table.
With --input, the states visited by the run are highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.GraphOptions{File: args[0]}
		opts.Input, _ = cmd.Flags().GetString("input")
		opts.MaxSteps, _ = cmd.Flags().GetInt("max-steps")
		return cli.Graph(opts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("input", "i", "", "Overlay the run on this input")
}
