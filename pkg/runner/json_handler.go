package runner

import (
	"context"
	"encoding/json"
	"io"
	"os"
)

// JSONHandler writes outcomes as JSON Lines, followed by a summary line.
type JSONHandler struct {
	Encoder *json.Encoder
}

// NewJSONHandler creates a handler writing to w (os.Stdout when nil).
func NewJSONHandler(w io.Writer) *JSONHandler {
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{Encoder: json.NewEncoder(w)}
}

type outcomeRecord struct {
	Input  string `json:"input"`
	Result string `json:"result"`
	Steps  int    `json:"steps"`
	Tape   string `json:"tape,omitempty"`
	Cached bool   `json:"cached,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (h *JSONHandler) Emit(ctx context.Context, o Outcome) error {
	rec := outcomeRecord{
		Input:  o.Input,
		Result: o.Label(),
		Steps:  o.Steps,
		Tape:   o.Tape,
		Cached: o.Cached,
	}
	if o.Err != nil {
		rec.Error = o.Err.Error()
	}
	return h.Encoder.Encode(rec)
}

func (h *JSONHandler) Close(ctx context.Context, s Summary) error {
	return h.Encoder.Encode(map[string]Summary{"summary": s})
}
