package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/machine"
)

// DescribeMarkdown renders a machine description as a markdown document:
// a header, the optional free-text summary and the transition table.
func DescribeMarkdown(desc machine.Description, summary string) string {
	var sb strings.Builder

	name := desc.Name
	if name == "" {
		name = "(unnamed machine)"
	}
	fmt.Fprintf(&sb, "# %s\n\n", name)
	if summary != "" {
		fmt.Fprintf(&sb, "%s\n\n", strings.TrimSpace(summary))
	}

	fmt.Fprintf(&sb, "- **Start:** `%s`\n", desc.Start)
	fmt.Fprintf(&sb, "- **States:** %s\n", codeList(desc.States))
	if len(desc.Alphabet) > 0 {
		fmt.Fprintf(&sb, "- **Alphabet:** %s\n", codeList(desc.Alphabet))
	}

	if len(desc.Rows) == 0 {
		sb.WriteString("\n_No transition table: the machine was built from a function._\n")
		return sb.String()
	}

	sb.WriteString("\n| State | Read | Write | Move | Next |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, r := range desc.Rows {
		write := r.Write
		if write == "" {
			write = "-"
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
			cell(r.State), cell(r.Read), cell(write), r.Move, cell(r.Next))
	}
	return sb.String()
}

func codeList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "`" + s + "`"
	}
	return strings.Join(quoted, ", ")
}

func cell(s string) string {
	return "`" + strings.ReplaceAll(s, "|", "\\|") + "`"
}
