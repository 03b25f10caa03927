package table_test

import (
	"errors"
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeTransitionFn_ResolutionOrder(t *testing.T) {
	reg := machine.NewRegistry()
	q0, q1 := reg.State("q0"), reg.State("q1")

	tbl := table.Table{
		q0: {
			"a":         domain.To(q1).Moving(domain.Right),
			domain.Null: domain.To(domain.Accept),
		},
		q1: {
			"a": domain.To(domain.Reject),
		},
	}

	fn, err := table.MakeTransitionFn(tbl)
	require.NoError(t, err)

	t.Run("Exact entry wins", func(t *testing.T) {
		tr, err := fn(q0, "a")
		require.NoError(t, err)
		assert.Equal(t, q1, tr.Next)
		assert.Equal(t, domain.Right, tr.Move)
	})

	t.Run("Null fallback for blank", func(t *testing.T) {
		tr, err := fn(q0, domain.Blank)
		require.NoError(t, err)
		assert.Equal(t, domain.Accept, tr.Next)
	})

	t.Run("Null fallback for unregistered symbol", func(t *testing.T) {
		tr, err := fn(q0, "z")
		require.NoError(t, err)
		assert.Equal(t, domain.Accept, tr.Next)
	})

	t.Run("Missing transition", func(t *testing.T) {
		_, err := fn(q1, "b")
		var missing *domain.MissingTransitionError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, q1, missing.State)
		assert.Equal(t, domain.Symbol("b"), missing.Symbol)
	})

	t.Run("Unknown state", func(t *testing.T) {
		_, err := fn(reg.State("q9"), "a")
		var missing *domain.MissingTransitionError
		assert.ErrorAs(t, err, &missing)
	})

	t.Run("Terminal lookup", func(t *testing.T) {
		_, err := fn(domain.Accept, "a")
		assert.ErrorIs(t, err, domain.ErrTerminalLookup)
		_, err = fn(domain.Reject, domain.Blank)
		assert.ErrorIs(t, err, domain.ErrTerminalLookup)
	})
}

func TestMakeTransitionFn_BlankOnlyFallback(t *testing.T) {
	reg := machine.NewRegistry()
	q0 := reg.State("q0")

	tbl := table.Table{
		q0: {domain.Null: domain.To(domain.Accept)},
	}

	fn, err := table.MakeTransitionFn(tbl, table.WithFallback(table.FallbackBlankOnly))
	require.NoError(t, err)

	tr, err := fn(q0, domain.Blank)
	require.NoError(t, err)
	assert.Equal(t, domain.Accept, tr.Next)

	_, err = fn(q0, "x")
	var missing *domain.MissingTransitionError
	assert.ErrorAs(t, err, &missing)
}

func TestMakeTransitionFn_ExplicitBlankEntry(t *testing.T) {
	reg := machine.NewRegistry()
	q0 := reg.State("q0")

	tbl := table.Table{
		q0: {
			domain.Blank: domain.To(domain.Reject),
			domain.Null:  domain.To(domain.Accept),
		},
	}

	fn, err := table.MakeTransitionFn(tbl)
	require.NoError(t, err)

	tr, err := fn(q0, domain.Blank)
	require.NoError(t, err)
	assert.Equal(t, domain.Reject, tr.Next, "an explicit Blank entry shadows the fallback")
}

func TestMakeTransitionFn_IsolatedFromCallerMutation(t *testing.T) {
	reg := machine.NewRegistry()
	q0 := reg.State("q0")

	tbl := table.Table{q0: {"a": domain.To(domain.Accept)}}
	fn, err := table.MakeTransitionFn(tbl)
	require.NoError(t, err)

	tbl[q0]["a"] = domain.To(domain.Reject)

	tr, err := fn(q0, "a")
	require.NoError(t, err)
	assert.Equal(t, domain.Accept, tr.Next)
}

func TestMakeTransitionFn_Malformed(t *testing.T) {
	reg := machine.NewRegistry()
	q0 := reg.State("q0")

	tests := []struct {
		name  string
		table table.Table
	}{
		{"Nil table", nil},
		{"Nil row", table.Table{q0: nil}},
		{"Terminal key", table.Table{domain.Accept: {"a": domain.To(q0)}}},
		{"Zero key", table.Table{domain.State{}: {"a": domain.To(q0)}}},
		{"Zero next", table.Table{q0: {"a": domain.Transition{}}}},
		{"Bad movement", table.Table{q0: {"a": domain.To(q0).Moving(domain.Movement(7))}}},
		{"Writes NULL", table.Table{q0: {"a": domain.To(q0).Writing(domain.Null)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := table.MakeTransitionFn(tt.table)
			var malformed *domain.MalformedTableError
			assert.True(t, errors.As(err, &malformed), "expected MalformedTableError, got %v", err)
		})
	}
}

func TestTargetsAndSymbols(t *testing.T) {
	reg := machine.NewRegistry()
	a, b := reg.State("a"), reg.State("b")

	tbl := table.Table{
		a: {
			"0":         domain.To(b).Writing("x"),
			domain.Null: domain.To(domain.Accept),
		},
		b: {
			"1": domain.To(a),
		},
	}

	assert.ElementsMatch(t, []domain.State{a, b, domain.Accept}, table.Targets(tbl))
	assert.Equal(t, []domain.Symbol{"0", "1", "x"}, table.Symbols(tbl))
	assert.Equal(t, []domain.State{a, b}, table.States(tbl))
	assert.Equal(t, []domain.Symbol{"0", domain.Null}, table.RowSymbols(tbl[a]))
}

func TestParseFallback(t *testing.T) {
	p, err := table.ParseFallback("blank")
	require.NoError(t, err)
	assert.Equal(t, table.FallbackBlankOnly, p)

	p, err = table.ParseFallback("")
	require.NoError(t, err)
	assert.Equal(t, table.FallbackAny, p)

	_, err = table.ParseFallback("sometimes")
	assert.Error(t, err)
}
