/*
Package turing is a deterministic single-tape Turing machine engine.

A machine is described by a transition table (state -> symbol -> transition) and a
start state. The engine runs it on an input string until it halts in Accept or Reject,
or until a step ceiling declares the run undetermined.

# Concept

Definitions are immutable and may be shared by any number of concurrent runs. Every run
owns a fresh tape that is infinite in both directions and reads Blank wherever it was
never written. Each row of the table may carry a NULL entry that is used when the read
symbol has no explicit entry.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/turing"
		"github.com/aretw0/turing/pkg/domain"
		"github.com/aretw0/turing/pkg/machine"
		"github.com/aretw0/turing/pkg/table"
	)

	func main() {
		reg := machine.NewRegistry()
		q0 := reg.State("q0")

		// Accept only the empty string.
		def, err := machine.FromTable(q0, table.Table{
			q0: {
				"0":         domain.To(domain.Reject),
				domain.Null: domain.To(domain.Accept),
			},
		})
		if err != nil {
			log.Fatal(err)
		}

		m := turing.New(def, turing.WithStepLimit(10_000))

		ok, err := m.Accepts("")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(ok) // true
	}
*/
package turing
