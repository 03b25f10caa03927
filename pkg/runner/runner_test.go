package runner_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/testutils"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/aretw0/turing/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Save(ctx context.Context, v *domain.Verdict) error {
	return m.Called(ctx, v).Error(0)
}

func (m *mockStore) Load(ctx context.Context, machine, input string) (*domain.Verdict, error) {
	args := m.Called(ctx, machine, input)
	v, _ := args.Get(0).(*domain.Verdict)
	return v, args.Error(1)
}

func (m *mockStore) Delete(ctx context.Context, machine, input string) error {
	return m.Called(ctx, machine, input).Error(0)
}

func (m *mockStore) List(ctx context.Context, machine string) ([]string, error) {
	args := m.Called(ctx, machine)
	return args.Get(0).([]string), args.Error(1)
}

func TestRunner_RunAll_PreservesOrder(t *testing.T) {
	m := turing.New(testutils.ZeroNOneN(t))
	r := runner.New(m, runner.WithWorkers(3))

	inputs := make([]string, 0, len(testutils.ZeroNOneNCases))
	for _, c := range testutils.ZeroNOneNCases {
		inputs = append(inputs, c.Input)
	}

	outcomes, err := r.RunAll(t.Context(), inputs)
	require.NoError(t, err)
	require.Len(t, outcomes, len(inputs))

	for i, c := range testutils.ZeroNOneNCases {
		o := outcomes[i]
		assert.Equal(t, c.Input, o.Input)
		assert.NoError(t, o.Err)
		assert.Equal(t, c.Want, o.Status == domain.StatusAccepted, "input %q", c.Input)
	}
}

func TestRunner_Run_Undetermined(t *testing.T) {
	store := memory.NewStore()
	m := turing.New(testutils.Looping(t), turing.WithStepLimit(50))
	r := runner.New(m, runner.WithStore(store))

	o := r.Run(t.Context(), "1")
	assert.True(t, o.Undetermined)
	assert.Equal(t, domain.StatusRunning, o.Status)
	assert.Equal(t, "undetermined", o.Label())
	assert.True(t, domain.IsUndetermined(o.Err))

	_, err := store.Load(t.Context(), "looping", "1")
	assert.ErrorIs(t, err, domain.ErrVerdictNotFound, "non-halting runs are never cached")
}

func TestRunner_Run_Errors(t *testing.T) {
	reg := machine.NewRegistry()
	q0 := reg.State("q0")
	def, err := machine.FromTable(q0, table.Table{
		q0: {"0": domain.To(domain.Accept)},
	})
	require.NoError(t, err)

	o := runner.New(turing.New(def)).Run(t.Context(), "1")
	var missing *domain.MissingTransitionError
	require.ErrorAs(t, o.Err, &missing)
	assert.Equal(t, domain.StatusErrored, o.Status)
	assert.Equal(t, "error", o.Label())
}

func TestRunner_Cache(t *testing.T) {
	store := &mockStore{}
	m := turing.New(testutils.ZeroNOneN(t))
	r := runner.New(m, runner.WithStore(store))

	store.On("Load", mock.Anything, "zero-n-one-n", "01").Return(nil, domain.ErrVerdictNotFound).Once()
	store.On("Save", mock.Anything, mock.MatchedBy(func(v *domain.Verdict) bool {
		return v.Machine == "zero-n-one-n" && v.Input == "01" && v.Status == domain.StatusAccepted &&
			v.Fingerprint == m.Definition().Fingerprint()
	})).Return(nil).Once()

	first := r.Run(t.Context(), "01")
	assert.False(t, first.Cached)
	assert.Equal(t, domain.StatusAccepted, first.Status)

	store.On("Load", mock.Anything, "zero-n-one-n", "01").Return(&domain.Verdict{
		Machine: "zero-n-one-n", Input: "01", Status: domain.StatusAccepted, Steps: first.Steps, Tape: first.Tape,
		Fingerprint: m.Definition().Fingerprint(),
	}, nil).Once()

	second := r.Run(t.Context(), "01")
	assert.True(t, second.Cached)
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.Steps, second.Steps)

	store.AssertExpectations(t)
}

func TestRunner_Cache_EditedDefinition(t *testing.T) {
	build := func(verdict domain.State) *turing.Machine {
		reg := machine.NewRegistry()
		q0 := reg.State("q0")
		def, err := machine.FromTable(q0, table.Table{q0: {domain.Null: domain.To(verdict)}}, machine.WithName("m"))
		require.NoError(t, err)
		return turing.New(def)
	}
	store := memory.NewStore()

	before := runner.New(build(domain.Accept), runner.WithStore(store)).Run(t.Context(), "01")
	require.Equal(t, domain.StatusAccepted, before.Status)

	after := runner.New(build(domain.Reject), runner.WithStore(store)).Run(t.Context(), "01")
	assert.False(t, after.Cached, "a verdict of the previous table is not reused")
	assert.Equal(t, domain.StatusRejected, after.Status)

	v, err := store.Load(t.Context(), "m", "01")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, v.Status, "the stale verdict is replaced")

	again := runner.New(build(domain.Reject), runner.WithStore(store)).Run(t.Context(), "01")
	assert.True(t, again.Cached)
}

func TestRunner_Cache_BareFunctionIsNotCached(t *testing.T) {
	reg := machine.NewRegistry()
	q0 := reg.State("q0")
	def, err := machine.New([]domain.State{q0}, func(domain.State, domain.Symbol) (domain.Transition, error) {
		return domain.To(domain.Accept), nil
	}, q0, machine.WithName("bare"))
	require.NoError(t, err)

	store := memory.NewStore()
	o := runner.New(turing.New(def), runner.WithStore(store)).Run(t.Context(), "1")
	assert.Equal(t, domain.StatusAccepted, o.Status)

	_, err = store.Load(t.Context(), "bare", "1")
	assert.ErrorIs(t, err, domain.ErrVerdictNotFound)
}

func TestRunner_Cache_RespectsStepLimit(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Save(t.Context(), &domain.Verdict{
		Machine: "zero-n-one-n", Input: "0011", Status: domain.StatusAccepted, Steps: 10_000,
	}))

	m := turing.New(testutils.ZeroNOneN(t), turing.WithStepLimit(100))
	o := runner.New(m, runner.WithStore(store)).Run(t.Context(), "0011")

	assert.False(t, o.Cached, "a verdict beyond the step ceiling is recomputed")
	assert.Equal(t, domain.StatusAccepted, o.Status)
	assert.Less(t, o.Steps, 100)
}

func TestRunner_Cache_StoreFailureIsNotFatal(t *testing.T) {
	store := &mockStore{}
	store.On("Load", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))
	store.On("Save", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	m := turing.New(testutils.ZeroNOneN(t))
	o := runner.New(m, runner.WithStore(store)).Run(t.Context(), "0")

	assert.NoError(t, o.Err)
	assert.Equal(t, domain.StatusRejected, o.Status)
}

func TestRunner_RunAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	m := turing.New(testutils.ZeroNOneN(t))
	outcomes, err := runner.New(m, runner.WithWorkers(1)).RunAll(ctx, []string{"01", "0011"})

	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, outcomes, 2)
	for _, o := range outcomes {
		assert.ErrorIs(t, o.Err, context.Canceled)
	}
}

func TestSummarize(t *testing.T) {
	s := runner.Summarize([]runner.Outcome{
		{Status: domain.StatusAccepted, Cached: true},
		{Status: domain.StatusRejected},
		{Status: domain.StatusRunning, Undetermined: true, Err: &domain.NonHaltingError{Steps: 5}},
		{Status: domain.StatusErrored, Err: errors.New("boom")},
	})
	assert.Equal(t, runner.Summary{Accepted: 1, Rejected: 1, Undetermined: 1, Errored: 1, Cached: 1}, s)
}

func TestReport(t *testing.T) {
	outcomes := []runner.Outcome{
		{Input: "01", Status: domain.StatusAccepted, Steps: 6, Tape: "__"},
		{Input: "", Status: domain.StatusRunning, Undetermined: true, Steps: 50, Err: &domain.NonHaltingError{Steps: 50}},
	}

	t.Run("Text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, runner.Report(t.Context(), runner.NewTextHandler(&buf), outcomes))
		out := buf.String()
		assert.Contains(t, out, "01")
		assert.Contains(t, out, "accepted")
		assert.Contains(t, out, "(empty)")
		assert.Contains(t, out, "undetermined")
		assert.Contains(t, out, "accepted: 1, rejected: 0, undetermined: 1, errors: 0")
	})

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, runner.Report(t.Context(), runner.NewJSONHandler(&buf), outcomes))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 3)

		var first map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
		assert.Equal(t, "accepted", first["result"])
		assert.Equal(t, float64(6), first["steps"])

		var second map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
		assert.Equal(t, "undetermined", second["result"])
		assert.Contains(t, second["error"], "did not halt")

		assert.Contains(t, lines[2], `"summary"`)
	})
}

func TestReadInputs(t *testing.T) {
	inputs, err := runner.ReadInputs(strings.NewReader("01\r\n\n0011\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"01", "", "0011"}, inputs)
}

func TestReadInputs_LongLine(t *testing.T) {
	long := strings.Repeat("01", 100*1024)
	inputs, err := runner.ReadInputs(strings.NewReader(long + "\n0\n"))
	require.NoError(t, err)
	require.Len(t, inputs, 2)
	assert.Len(t, inputs[0], len(long))
	assert.Equal(t, "0", inputs[1])

	_, err = runner.ReadInputs(strings.NewReader(strings.Repeat("0", runner.MaxInputLine+1)))
	assert.ErrorIs(t, err, bufio.ErrTooLong)
}
