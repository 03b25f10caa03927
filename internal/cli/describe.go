package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/turing/internal/presentation/tui"
)

// Describe renders a machine file as a markdown document.
// Plain mode skips terminal styling.
func Describe(path string, plain bool, w io.Writer) error {
	entry, err := loadMachine(path)
	if err != nil {
		return err
	}

	render := tui.NewRenderer()
	if plain {
		render = tui.NewPlainRenderer()
	}

	out, err := render(tui.DescribeMarkdown(entry.Definition.Describe(), entry.Document.Description))
	if err != nil {
		return fmt.Errorf("failed to render description: %w", err)
	}
	fmt.Fprint(w, out)
	return nil
}
