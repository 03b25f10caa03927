package tui

import (
	"bytes"
	"testing"

	"github.com/aretw0/turing/internal/testutils"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeMarkdown(t *testing.T) {
	md := DescribeMarkdown(testutils.ZeroNOneN(t).Describe(), "Recognizes 0^n1^n.")

	assert.Contains(t, md, "# zero-n-one-n")
	assert.Contains(t, md, "Recognizes 0^n1^n.")
	assert.Contains(t, md, "- **Start:** `q0`")
	assert.Contains(t, md, "- **Alphabet:** `0`, `1`")
	assert.Contains(t, md, "| `q2` | `1` | `_` | left | `q3` |")
	assert.Contains(t, md, "| `q0` | `NULL` | `-` | stay | `accept` |")
}

func TestDescribeMarkdown_NoTable(t *testing.T) {
	md := DescribeMarkdown(machine.Description{Start: "q0", States: []string{"q0"}}, "")

	assert.Contains(t, md, "# (unnamed machine)")
	assert.Contains(t, md, "No transition table")
	assert.NotContains(t, md, "| State |")
}

func TestPlainRenderer(t *testing.T) {
	render := NewPlainRenderer()

	out, err := render(DescribeMarkdown(testutils.Trivial(t).Describe(), ""))
	require.NoError(t, err)
	assert.Contains(t, out, "trivial")
	assert.Contains(t, out, "accept")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|___/")
}
