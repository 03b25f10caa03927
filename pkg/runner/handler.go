package runner

import (
	"context"
)

// OutputHandler defines how outcomes are reported.
// This allows switching between Text (CLI) and JSON (structured) modes.
type OutputHandler interface {
	// Emit reports a single outcome.
	Emit(ctx context.Context, o Outcome) error

	// Close reports the batch summary and flushes any buffered output.
	Close(ctx context.Context, s Summary) error
}

// Report emits every outcome through h, followed by the summary.
func Report(ctx context.Context, h OutputHandler, outcomes []Outcome) error {
	for _, o := range outcomes {
		if err := h.Emit(ctx, o); err != nil {
			return err
		}
	}
	return h.Close(ctx, Summarize(outcomes))
}
