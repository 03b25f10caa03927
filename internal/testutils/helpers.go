// Package testutils provides fixture machines and helpers shared by tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/table"
	"github.com/stretchr/testify/require"
)

// Case is a single input/verdict expectation.
type Case struct {
	Input string
	Want  bool
}

// Trivial accepts only the empty string: 0 -> reject, NULL -> accept.
func Trivial(t *testing.T) *machine.Definition {
	t.Helper()
	reg := machine.NewRegistry()
	q0, q1 := reg.State("q0"), reg.State("q1")

	tbl := table.Table{
		q0: {
			"0":         domain.To(domain.Reject),
			domain.Null: domain.To(domain.Accept),
		},
		q1: {
			"0":         domain.To(domain.Reject),
			domain.Null: domain.To(domain.Accept),
		},
	}

	def, err := machine.FromTable(q0, tbl, machine.WithName("trivial"))
	require.NoError(t, err)
	return def
}

// TrivialCases are the expectations for Trivial.
var TrivialCases = []Case{
	{"", true},
	{"0", false},
}

// ContainsOneOne accepts strings over {0,1} that contain "11".
func ContainsOneOne(t *testing.T) *machine.Definition {
	t.Helper()
	reg := machine.NewRegistry()
	q1, q2, q3 := reg.State("q1"), reg.State("q2"), reg.State("q3")

	tbl := table.Table{
		q1: {
			"0":         domain.To(q1).Moving(domain.Right),
			"1":         domain.To(q2).Moving(domain.Right),
			domain.Null: domain.To(domain.Reject).Moving(domain.Right),
		},
		q2: {
			"0":         domain.To(q1).Moving(domain.Right),
			"1":         domain.To(domain.Accept).Moving(domain.Right),
			domain.Null: domain.To(domain.Reject).Moving(domain.Right),
		},
		q3: {
			"0":         domain.To(q1).Moving(domain.Right),
			"1":         domain.To(domain.Accept).Moving(domain.Right),
			domain.Null: domain.To(domain.Reject).Moving(domain.Right),
		},
	}

	def, err := machine.FromTable(q1, tbl, machine.WithName("contains-11"), machine.WithAlphabet("0", "1"))
	require.NoError(t, err)
	return def
}

// ContainsOneOneCases are the expectations for ContainsOneOne.
var ContainsOneOneCases = []Case{
	{"", false},
	{"00", false},
	{"11", true},
	{"011", true},
	{"0101", false},
}

// ZeroNOneN recognizes 0^n1^n for n >= 0.
func ZeroNOneN(t *testing.T) *machine.Definition {
	t.Helper()
	reg := machine.NewRegistry()
	q0, q1, q2, q3 := reg.State("q0"), reg.State("q1"), reg.State("q2"), reg.State("q3")

	tbl := table.Table{
		q0: {
			"0":         domain.To(q1).Moving(domain.Right).Writing(domain.Blank),
			"1":         domain.To(domain.Reject),
			domain.Null: domain.To(domain.Accept),
		},
		q1: {
			"0":         domain.To(q1).Moving(domain.Right).Writing("0"),
			"1":         domain.To(q1).Moving(domain.Right).Writing("1"),
			domain.Null: domain.To(q2).Moving(domain.Left),
		},
		q2: {
			"0":         domain.To(domain.Reject),
			"1":         domain.To(q3).Moving(domain.Left).Writing(domain.Blank),
			domain.Null: domain.To(domain.Reject),
		},
		q3: {
			"0":         domain.To(q3).Moving(domain.Left).Writing("0"),
			"1":         domain.To(q3).Moving(domain.Left).Writing("1"),
			domain.Null: domain.To(q0).Moving(domain.Right),
		},
	}

	def, err := machine.FromTable(q0, tbl, machine.WithName("zero-n-one-n"), machine.WithAlphabet("0", "1"))
	require.NoError(t, err)
	return def
}

// ZeroNOneNCases are the expectations for ZeroNOneN.
var ZeroNOneNCases = []Case{
	{"", true},
	{"0", false},
	{"1", false},
	{"10", false},
	{"01", true},
	{"0000011111", true},
	{"000001111", false},
	{"000011111", false},
	{"0101", false},
}

// Looping never halts on "1": it moves right forever.
func Looping(t *testing.T) *machine.Definition {
	t.Helper()
	reg := machine.NewRegistry()
	q0 := reg.State("loop")

	tbl := table.Table{
		q0: {
			"0":         domain.To(domain.Accept),
			domain.Null: domain.To(q0).Moving(domain.Right),
		},
	}

	def, err := machine.FromTable(q0, tbl, machine.WithName("looping"))
	require.NoError(t, err)
	return def
}

// ZeroNOneNYAML is the document form of ZeroNOneN.
const ZeroNOneNYAML = `name: zero-n-one-n
description: Recognizes 0^n1^n by erasing matching outer pairs.
start: q0
alphabet: ["0", "1"]
table:
  q0:
    "0": [q1, R, blank]
    "1": [reject]
    _: [accept]
  q1:
    "0": [q1, R, "0"]
    "1": [q1, R, "1"]
    _: [q2, L]
  q2:
    "0": [reject]
    "1": [q3, L, blank]
    _: [reject]
  q3:
    "0": [q3, L, "0"]
    "1": [q3, L, "1"]
    _: [q0, R]
`

// ContainsOneOneYAML is the document form of ContainsOneOne.
const ContainsOneOneYAML = `name: contains-11
start: q1
table:
  q1: { "0": [q1, R], "1": [q2, R], _: [reject, R] }
  q2: { "0": [q1, R], "1": [accept, R], _: [reject, R] }
`

// WriteFile writes content into dir/name and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
