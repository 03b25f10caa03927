/*
Package runner executes one machine against many inputs.

It sits between a turing.Machine and the outside world: inputs are run
concurrently on a bounded worker pool against the same shared definition,
halted verdicts are read from and written to a ports.VerdictStore, and the
outcomes are reported through pluggable handlers.

# Key Components

  - Runner: The batch orchestrator.
  - Outcome: The per-input result. Non-halting runs are Undetermined, not failures.
  - OutputHandler: Decouples how outcomes are reported (text table, JSON lines).

# Usage

	r := runner.New(m,
		runner.WithStore(memory.NewStore()),
		runner.WithWorkers(8),
	)

	outcomes, err := r.RunAll(ctx, []string{"0011", "0101"})
	if err != nil {
		log.Fatal(err)
	}
	for _, o := range outcomes {
		fmt.Println(o.Input, o.Status)
	}
*/
package runner
