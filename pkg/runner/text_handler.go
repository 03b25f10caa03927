package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
)

// TextHandler writes outcomes as an aligned table.
type TextHandler struct {
	w *tabwriter.Writer
}

// NewTextHandler creates a handler writing to w (os.Stdout when nil).
func NewTextHandler(w io.Writer) *TextHandler {
	if w == nil {
		w = os.Stdout
	}
	return &TextHandler{w: tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)}
}

func (h *TextHandler) Emit(ctx context.Context, o Outcome) error {
	input := o.Input
	if input == "" {
		input = "(empty)"
	}

	detail := o.Tape
	if o.Err != nil {
		detail = o.Err.Error()
	}
	if o.Cached {
		detail += " (cached)"
	}

	_, err := fmt.Fprintf(h.w, "%s\t%s\t%d\t%s\n", input, o.Label(), o.Steps, detail)
	return err
}

func (h *TextHandler) Close(ctx context.Context, s Summary) error {
	fmt.Fprintf(h.w, "\naccepted: %d, rejected: %d, undetermined: %d, errors: %d\n",
		s.Accepted, s.Rejected, s.Undetermined, s.Errored)
	return h.w.Flush()
}
