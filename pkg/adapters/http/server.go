package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// MaxBatchInputs bounds the number of inputs accepted by a single batch request.
const MaxBatchInputs = 10_000

// DefaultMaxBodyBytes bounds request bodies unless WithMaxBodyBytes says otherwise.
const DefaultMaxBodyBytes = 8 << 20

// Server serves a catalog of machines over HTTP.
type Server struct {
	Loader    ports.DefinitionLoader
	Store     ports.VerdictStore
	Metrics   *observability.Metrics
	Logger    *slog.Logger
	StepLimit int
	Workers   int

	MaxBodyBytes int64

	// ValidateRequests checks request bodies and parameters against the OpenAPI document.
	ValidateRequests bool
}

// Option configures the Server.
type Option func(*Server)

// WithStore caches verdicts of halted runs.
func WithStore(store ports.VerdictStore) Option {
	return func(s *Server) {
		s.Store = store
	}
}

// WithMetrics records every run and exposes GET /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.Metrics = m
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithStepLimit sets the step ceiling applied to every run.
func WithStepLimit(n int) Option {
	return func(s *Server) {
		s.StepLimit = n
	}
}

// WithWorkers bounds concurrent runs within a batch request.
func WithWorkers(n int) Option {
	return func(s *Server) {
		s.Workers = n
	}
}

// WithMaxBodyBytes bounds request bodies; larger bodies answer 413.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		s.MaxBodyBytes = n
	}
}

// WithRequestValidation rejects requests that do not match the OpenAPI document.
func WithRequestValidation() Option {
	return func(s *Server) {
		s.ValidateRequests = true
	}
}

// NewHandler creates the HTTP handler for the machines served by loader.
func NewHandler(loader ports.DefinitionLoader, opts ...Option) http.Handler {
	s := &Server{Loader: loader, MaxBodyBytes: DefaultMaxBodyBytes}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.limitBody)

	doc, err := OpenAPI(context.Background())
	if err != nil {
		s.Logger.Error("API document unavailable", "err", err)
	}
	if doc != nil && s.ValidateRequests {
		validate, err := s.validateRequests(doc)
		if err != nil {
			s.Logger.Error("request validation disabled", "err", err)
		} else {
			r.Use(validate)
		}
	}

	if doc != nil {
		r.Get("/openapi.json", func(w http.ResponseWriter, r *http.Request) {
			s.writeJSON(w, http.StatusOK, doc)
		})
	}
	r.Get("/machines", s.ListMachines)
	r.Get("/machines/{name}", s.GetMachine)
	r.Post("/machines/{name}/run", s.RunMachine)
	r.Post("/machines/{name}/batch", s.RunBatch)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	}

	return enableCORS(r)
}

func (s *Server) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil && s.MaxBodyBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, s.MaxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// MachineSummary is an entry of GET /machines.
type MachineSummary struct {
	Name   string `json:"name"`
	Start  string `json:"start"`
	States int    `json:"states"`
}

// RunRequest is the body of POST /machines/{name}/run.
type RunRequest struct {
	Input string `json:"input"`
}

// BatchRequest is the body of POST /machines/{name}/batch.
type BatchRequest struct {
	Inputs []string `json:"inputs"`
}

// RunResponse reports a single run. Status is accepted, rejected or undetermined.
type RunResponse struct {
	Machine string `json:"machine"`
	Input   string `json:"input"`
	Status  string `json:"status"`
	Steps   int    `json:"steps"`
	Tape    string `json:"tape,omitempty"`
	Cached  bool   `json:"cached,omitempty"`
	Error   string `json:"error,omitempty"`
}

// BatchResponse reports a batch in input order.
type BatchResponse struct {
	Machine string         `json:"machine"`
	Results []RunResponse  `json:"results"`
	Summary runner.Summary `json:"summary"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ListMachines handles GET /machines.
func (s *Server) ListMachines(w http.ResponseWriter, r *http.Request) {
	names, err := s.Loader.List()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]MachineSummary, 0, len(names))
	for _, name := range names {
		def, err := s.Loader.Get(name)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}
		out = append(out, MachineSummary{Name: name, Start: def.Start().Name(), States: len(def.States())})
	}
	s.writeJSON(w, http.StatusOK, out)
}

// GetMachine handles GET /machines/{name}.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request) {
	def, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, def.Describe())
}

// RunMachine handles POST /machines/{name}/run.
// A missing transition answers 422; a run that hits the step ceiling answers 200
// with status "undetermined".
func (s *Server) RunMachine(w http.ResponseWriter, r *http.Request) {
	def, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var body RunRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.Logger.Warn("RunMachine: invalid request body", "err", err)
		s.writeBodyError(w, err)
		return
	}

	o := s.runner(def).Run(r.Context(), body.Input)
	resp := toResponse(def.Name(), o)
	if o.Err != nil && !o.Undetermined {
		s.writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// RunBatch handles POST /machines/{name}/batch. Per-input failures are reported
// in the results; the request itself succeeds.
func (s *Server) RunBatch(w http.ResponseWriter, r *http.Request) {
	def, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var body BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.Logger.Warn("RunBatch: invalid request body", "err", err)
		s.writeBodyError(w, err)
		return
	}
	if len(body.Inputs) > MaxBatchInputs {
		s.writeError(w, http.StatusRequestEntityTooLarge, errors.New("too many inputs"))
		return
	}

	outcomes, err := s.runner(def).RunAll(r.Context(), body.Inputs)
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	resp := BatchResponse{
		Machine: def.Name(),
		Results: make([]RunResponse, len(outcomes)),
		Summary: runner.Summarize(outcomes),
	}
	for i, o := range outcomes {
		resp.Results[i] = toResponse(def.Name(), o)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*machine.Definition, bool) {
	name := chi.URLParam(r, "name")
	def, err := s.Loader.Get(name)
	if err != nil {
		if errors.Is(err, domain.ErrMachineNotFound) {
			s.writeError(w, http.StatusNotFound, err)
			return nil, false
		}
		s.writeError(w, http.StatusInternalServerError, err)
		return nil, false
	}
	return def, true
}

func (s *Server) runner(def *machine.Definition) *runner.Runner {
	opts := []turing.Option{
		turing.WithStepLimit(s.StepLimit),
		turing.WithLogger(s.Logger),
	}
	if s.Metrics != nil {
		opts = append(opts, turing.WithLifecycleHooks(s.Metrics.Hooks(def.Name())))
	}

	return runner.New(turing.New(def, opts...),
		runner.WithStore(s.Store),
		runner.WithWorkers(s.Workers),
		runner.WithLogger(s.Logger),
	)
}

func toResponse(name string, o runner.Outcome) RunResponse {
	resp := RunResponse{
		Machine: name,
		Input:   o.Input,
		Status:  o.Label(),
		Steps:   o.Steps,
		Tape:    o.Tape,
		Cached:  o.Cached,
	}
	if o.Err != nil {
		resp.Error = o.Err.Error()
	}
	return resp
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		s.writeError(w, http.StatusRequestEntityTooLarge, errors.New("request body too large"))
		return
	}
	s.writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
}

func (s *Server) writeError(w http.ResponseWriter, code int, err error) {
	if code >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "err", err)
	}
	s.writeJSON(w, code, errorResponse{Error: err.Error()})
}
