package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/presentation/trace"
	"github.com/aretw0/turing/pkg/domain"
)

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	File     string
	Input    string
	Trace    bool
	JSON     bool
	MaxSteps int
	LogOptions
}

type runReport struct {
	Machine string `json:"machine"`
	Input   string `json:"input"`
	Result  string `json:"result"`
	Steps   int    `json:"steps"`
	Tape    string `json:"tape,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Run executes one machine file on one input and prints the verdict.
// Undetermined runs exit with ExitUndetermined, run errors with ExitFailure.
func Run(ctx context.Context, opts RunOptions, w io.Writer) error {
	logger, closeLog, err := createLogger(opts.LogOptions, logging.LevelOff)
	if err != nil {
		return err
	}
	defer closeLog()

	entry, err := loadMachine(opts.File)
	if err != nil {
		return err
	}
	m := createMachine(entry, opts.MaxSteps, opts.Debug, logger)

	var res *domain.Result
	if opts.Trace {
		res, err = trace.New(w).Run(m.NewRun(opts.Input))
	} else {
		res, err = m.Run(opts.Input)
	}

	report := runReport{Machine: m.Name(), Input: opts.Input}
	switch {
	case err == nil:
		report.Result = string(res.Status)
		report.Steps = res.Steps
		report.Tape = res.Tape.String()
	case domain.IsUndetermined(err):
		report.Result = "undetermined"
		report.Steps = m.StepLimit()
		report.Error = err.Error()
	default:
		report.Result = "error"
		report.Error = err.Error()
	}

	if opts.JSON {
		if encErr := json.NewEncoder(w).Encode(report); encErr != nil {
			return encErr
		}
	} else if !opts.Trace || err == nil {
		printReport(w, report)
	}

	switch {
	case err == nil:
		return nil
	case domain.IsUndetermined(err):
		return &ExitError{Code: ExitUndetermined, Err: err}
	}
	return &ExitError{Code: ExitFailure, Err: err}
}

func printReport(w io.Writer, r runReport) {
	fmt.Fprintf(w, "result: %s\n", r.Result)
	fmt.Fprintf(w, "steps:  %d\n", r.Steps)
	if r.Tape != "" {
		fmt.Fprintf(w, "tape:   %s\n", r.Tape)
	}
	if r.Error != "" {
		fmt.Fprintf(w, "error:  %s\n", r.Error)
	}
}
