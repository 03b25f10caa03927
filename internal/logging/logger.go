package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// LevelOff is above every level the application logs at.
const LevelOff = slog.Level(100)

// Sink is one destination of a fan-out logger.
type Sink struct {
	W     io.Writer
	Level slog.Level
	JSON  bool
}

// New creates a configured application logger.
// It writes to Stderr (to separate from Stdout verdicts and JSON-RPC).
// It standardizes common keys (e.g., "error" -> "err").
func New(level slog.Level) *slog.Logger {
	return NewWithWriter(os.Stderr, level, false)
}

// NewWithWriter creates a logger writing text, or JSON when asJSON is set, to w.
func NewWithWriter(w io.Writer, level slog.Level, asJSON bool) *slog.Logger {
	return slog.New(newHandler(Sink{W: w, Level: level, JSON: asJSON}))
}

// NewFanout creates a logger that writes every record to each sink at or above
// the sink's own level. Sinks at LevelOff are skipped; with none left it is a no-op.
func NewFanout(sinks ...Sink) *slog.Logger {
	handlers := make([]slog.Handler, 0, len(sinks))
	for _, s := range sinks {
		if s.W == nil || s.Level >= LevelOff {
			continue
		}
		handlers = append(handlers, newHandler(s))
	}

	switch len(handlers) {
	case 0:
		return NewNop()
	case 1:
		return slog.New(handlers[0])
	}
	return slog.New(slogmulti.Fanout(handlers...))
}

func newHandler(s Sink) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: s.Level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Standardize 'error' key to 'err'
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}
	if s.JSON {
		return slog.NewJSONHandler(s.W, opts)
	}
	return slog.NewTextHandler(s.W, opts)
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: LevelOff}))
}

// ParseLevel maps debug, info, warn and error (case-insensitive) to a level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
