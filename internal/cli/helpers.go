package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/adapters/file"
)

// Exit codes shared by every command.
const (
	ExitFailure      = 1
	ExitUndetermined = 2
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// LogOptions selects where command logs go. Embedded in every command's options.
type LogOptions struct {
	Debug    bool   // log every step to Stderr
	LogFile  string // append JSON logs to this file
	LogLevel string // level of the file log; debug when Debug is set
}

// createLogger configures the application logger.
// Stderr (to separate from Stdout verdicts) only carries records at or above
// stderrLevel, or everything in debug mode. The returned close function is never nil.
func createLogger(o LogOptions, stderrLevel slog.Level) (*slog.Logger, func() error, error) {
	noop := func() error { return nil }

	if o.Debug {
		stderrLevel = slog.LevelDebug
	}
	sinks := []logging.Sink{{W: os.Stderr, Level: stderrLevel}}

	if o.LogFile == "" {
		return logging.NewFanout(sinks...), noop, nil
	}

	level, err := logging.ParseLevel(o.LogLevel)
	if err != nil {
		return nil, noop, &ExitError{Code: ExitFailure, Err: err}
	}
	if o.Debug {
		level = slog.LevelDebug
	}
	f, err := os.OpenFile(o.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, noop, &ExitError{Code: ExitFailure, Err: fmt.Errorf("failed to open log file: %w", err)}
	}

	sinks = append(sinks, logging.Sink{W: f, Level: level, JSON: true})
	return logging.NewFanout(sinks...), f.Close, nil
}

// loadMachine reads a machine file, reporting definition problems as failures.
func loadMachine(path string) (*file.Entry, error) {
	entry, err := file.Load(path)
	if err != nil {
		return nil, &ExitError{Code: ExitFailure, Err: err}
	}
	return entry, nil
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}
