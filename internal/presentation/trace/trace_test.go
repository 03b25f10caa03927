package trace_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/trace"
	"github.com/aretw0/turing/internal/testutils"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinter_Run(t *testing.T) {
	var buf bytes.Buffer
	m := turing.New(testutils.ContainsOneOne(t))
	p := trace.New(&buf, trace.WithProfile(termenv.Ascii))

	res, err := p.Run(m.NewRun("011"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, res.Status)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5, buf.String())
	assert.Contains(t, lines[0], "[0] 1  1")
	assert.Contains(t, lines[1], "q1")
	assert.Contains(t, lines[1], " 0 [1] 1")
	assert.Contains(t, lines[1], "<- q1 0")
	assert.Contains(t, lines[3], "accept")
	assert.Equal(t, "accepted in 3 steps", lines[4])
}

func TestPrinter_Run_MatchesPlainRun(t *testing.T) {
	m := turing.New(testutils.ZeroNOneN(t))
	for _, c := range testutils.ZeroNOneNCases {
		want, err := m.Run(c.Input)
		require.NoError(t, err)

		got, err := trace.New(&bytes.Buffer{}, trace.WithProfile(termenv.Ascii)).Run(m.NewRun(c.Input))
		require.NoError(t, err)
		assert.Equal(t, want.Status, got.Status, "input %q", c.Input)
		assert.Equal(t, want.Steps, got.Steps, "input %q", c.Input)
		assert.True(t, want.Tape.Equal(got.Tape), "input %q", c.Input)
	}
}

func TestPrinter_Run_Undetermined(t *testing.T) {
	var buf bytes.Buffer
	m := turing.New(testutils.Looping(t), turing.WithStepLimit(5))

	_, err := trace.New(&buf, trace.WithProfile(termenv.Ascii)).Run(m.NewRun("1"))
	assert.True(t, domain.IsUndetermined(err))
	assert.Contains(t, buf.String(), "undetermined after 5 steps")
}

func TestPrinter_Run_ReservedInput(t *testing.T) {
	var buf bytes.Buffer
	m := turing.New(testutils.ContainsOneOne(t))

	res, err := trace.New(&buf, trace.WithProfile(termenv.Ascii)).Run(m.NewRun("1\x001"))
	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrReservedInput)
	assert.Contains(t, buf.String(), "error: input contains the reserved NULL symbol")
}

func TestPrinter_Window(t *testing.T) {
	var buf bytes.Buffer
	m := turing.New(testutils.Looping(t), turing.WithStepLimit(30))

	_, _ = trace.New(&buf, trace.WithProfile(termenv.Ascii), trace.WithWindow(2)).Run(m.NewRun("1111111111"))
	lines := strings.Split(buf.String(), "\n")
	assert.Contains(t, lines[0], "[1] 1  1 ")
	assert.NotContains(t, lines[0], " 1  1  1 ")
}
