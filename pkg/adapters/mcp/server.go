package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ResourceURI is the resource listing every machine description.
const ResourceURI = "turing://machines"

// ListResponse is the output of list_machines.
type ListResponse struct {
	Machines []string `json:"machines" jsonschema_description:"Names of the machines that can be run"`
}

// RunArgs are the arguments of run_machine.
type RunArgs struct {
	Name  string `json:"name"`
	Input string `json:"input"`
}

// DescribeArgs are the arguments of describe_machine.
type DescribeArgs struct {
	Name string `json:"name"`
}

// RunResponse is the output of run_machine.
type RunResponse struct {
	Machine string `json:"machine" jsonschema_description:"Machine name"`
	Input   string `json:"input" jsonschema_description:"Input written on the tape"`
	Status  string `json:"status" jsonschema_description:"accepted, rejected or undetermined"`
	Steps   int    `json:"steps" jsonschema_description:"Transitions applied"`
	Tape    string `json:"tape,omitempty" jsonschema_description:"Final tape contents, blanks shown as _"`
	Cached  bool   `json:"cached,omitempty" jsonschema_description:"Served from the verdict store"`
}

// Server exposes a machine catalog as an MCP server.
type Server struct {
	loader    ports.DefinitionLoader
	store     ports.VerdictStore
	stepLimit int
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithStore caches verdicts of halted runs.
func WithStore(store ports.VerdictStore) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithStepLimit sets the step ceiling applied to every run.
func WithStepLimit(n int) Option {
	return func(s *Server) {
		s.stepLimit = n
	}
}

// WithLogger configures the structured logger. MCP over stdio owns stdout,
// so the logger must not write there.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(loader ports.DefinitionLoader, opts ...Option) *Server {
	s := &Server{
		loader:    loader,
		mcpServer: server.NewMCPServer("turing-mcp", strings.TrimSpace(turing.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, for transports other than stdio.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// Listen serves JSON-RPC over the given streams until ctx is cancelled or in is closed.
func (s *Server) Listen(ctx context.Context, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s.mcpServer).Listen(ctx, in, out)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_machines",
		mcp.WithDescription("List the Turing machines that can be run."),
		mcp.WithOutputSchema[ListResponse](),
	), mcp.NewStructuredToolHandler(s.handleList))

	s.mcpServer.AddTool(mcp.NewTool("describe_machine",
		mcp.WithDescription("Describe a machine: start state, states, alphabet and transition table."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Machine name")),
		mcp.WithOutputSchema[machine.Description](),
	), mcp.NewStructuredToolHandler(s.handleDescribe))

	s.mcpServer.AddTool(mcp.NewTool("run_machine",
		mcp.WithDescription("Run a machine on an input string until it accepts, rejects or exceeds the step ceiling."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Machine name")),
		mcp.WithString("input", mcp.Required(), mcp.Description("Input string, one symbol per character")),
		mcp.WithOutputSchema[RunResponse](),
	), mcp.NewStructuredToolHandler(s.handleRun))
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (ListResponse, error) {
	names, err := s.loader.List()
	if err != nil {
		return ListResponse{}, fmt.Errorf("list failed: %w", err)
	}
	return ListResponse{Machines: names}, nil
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest, args DescribeArgs) (machine.Description, error) {
	def, err := s.loader.Get(args.Name)
	if err != nil {
		return machine.Description{}, err
	}
	return def.Describe(), nil
}

// handleRun reports non-halting runs as "undetermined"; a missing transition is a tool error.
func (s *Server) handleRun(ctx context.Context, request mcp.CallToolRequest, args RunArgs) (RunResponse, error) {
	def, err := s.loader.Get(args.Name)
	if err != nil {
		return RunResponse{}, err
	}

	m := turing.New(def, turing.WithStepLimit(s.stepLimit), turing.WithLogger(s.logger))
	o := runner.New(m, runner.WithStore(s.store), runner.WithLogger(s.logger)).Run(ctx, args.Input)
	if o.Err != nil && !o.Undetermined {
		s.logger.Warn("MCP run_machine failed", "machine", args.Name, "err", o.Err)
		return RunResponse{}, fmt.Errorf("run failed: %w", o.Err)
	}

	return RunResponse{
		Machine: def.Name(),
		Input:   o.Input,
		Status:  o.Label(),
		Steps:   o.Steps,
		Tape:    o.Tape,
		Cached:  o.Cached,
	}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(ResourceURI, "Machine Catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		text, err := s.catalogJSON()
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      ResourceURI,
				MIMEType: "application/json",
				Text:     text,
			},
		}, nil
	})
}

func (s *Server) catalogJSON() (string, error) {
	names, err := s.loader.List()
	if err != nil {
		return "", fmt.Errorf("failed to list machines: %w", err)
	}

	descs := make([]machine.Description, 0, len(names))
	for _, name := range names {
		def, err := s.loader.Get(name)
		if err != nil {
			return "", err
		}
		descs = append(descs, def.Describe())
	}

	data, err := json.Marshal(descs)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
