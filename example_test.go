package turing_test

import (
	"fmt"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/table"
)

// Example shows the minimal setup: a registry, a table and a verdict.
func Example() {
	reg := machine.NewRegistry()
	q0 := reg.State("q0")

	def, err := machine.FromTable(q0, table.Table{
		q0: {
			"0":         domain.To(domain.Reject),
			domain.Null: domain.To(domain.Accept),
		},
	})
	if err != nil {
		panic(err)
	}

	m := turing.New(def)
	empty, _ := m.Accepts("")
	zero, _ := m.Accepts("0")
	fmt.Println(empty, zero)
	// Output: true false
}

// ExampleMachine_Run inspects the final tape of a run that rewrites its input.
func ExampleMachine_Run() {
	reg := machine.NewRegistry()
	flip := reg.State("flip")

	def, err := machine.FromTable(flip, table.Table{
		flip: {
			"0":         domain.To(flip).Moving(domain.Right).Writing("1"),
			"1":         domain.To(flip).Moving(domain.Right).Writing("0"),
			domain.Null: domain.To(domain.Accept),
		},
	})
	if err != nil {
		panic(err)
	}

	res, err := turing.New(def).Run("0110")
	if err != nil {
		panic(err)
	}
	fmt.Println(res.Status, res.Steps, res.Tape)
	// Output: accepted 5 1001
}

// ExampleMachine_Accepts_nonHalting treats a step-ceiling failure as undetermined.
func ExampleMachine_Accepts_nonHalting() {
	reg := machine.NewRegistry()
	spin := reg.State("spin")

	def, _ := machine.FromTable(spin, table.Table{
		spin: {domain.Null: domain.To(spin).Moving(domain.Left)},
	})

	_, err := turing.New(def, turing.WithStepLimit(100)).Accepts("")
	fmt.Println(domain.IsUndetermined(err))
	// Output: true
}
