package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/pkg/domain"
)

// GraphOptions contains all the configuration for the Graph command.
type GraphOptions struct {
	File     string
	Input    string // when set, the run is overlaid on the diagram
	MaxSteps int
}

// Graph prints the Mermaid diagram of a machine file.
func Graph(opts GraphOptions, w io.Writer) error {
	entry, err := loadMachine(opts.File)
	if err != nil {
		return err
	}

	var overlay *graph.GraphOverlay
	if opts.Input != "" {
		overlay = &graph.GraphOverlay{VisitedStates: []string{entry.Definition.Start().Name()}}
		hooks := domain.LifecycleHooks{
			OnStep: func(e *domain.StepEvent) {
				overlay.VisitedStates = append(overlay.VisitedStates, e.Transition.Next.Name())
			},
			OnHalt: func(e *domain.HaltEvent) {
				overlay.CurrentState = e.State.Name()
			},
		}

		m := createMachine(entry, opts.MaxSteps, false, logging.NewNop(), hooks)
		if _, err := m.Run(opts.Input); err != nil && !domain.IsUndetermined(err) {
			return &ExitError{Code: ExitFailure, Err: err}
		}
	}

	fmt.Fprint(w, graph.GenerateMermaid(entry.Definition.Describe(), overlay))
	return nil
}
