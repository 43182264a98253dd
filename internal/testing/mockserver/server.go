package mockserver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/giantswarm/mcpbind/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"
)

// Server represents a mock MCP server for testing
type Server struct {
	config    Config
	handlers  map[string]*ToolHandler
	mcpServer *server.MCPServer

	mu    sync.Mutex
	calls []Call
}

// Load creates a mock server from a YAML configuration file. The server
// name defaults to the file name.
func Load(path string) (*Server, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mock config file %s: %w", path, err)
	}
	cfg, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mock config file %s: %w", path, err)
	}
	if cfg.Name == "" {
		cfg.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return New(cfg)
}

// Parse decodes a YAML mock server configuration.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// New builds a mock server. Capability classes with no entries are not
// advertised.
func New(cfg Config) (*Server, error) {
	if cfg.Name == "" {
		cfg.Name = "mock"
	}
	if cfg.Version == "" {
		cfg.Version = "1.0.0"
	}

	var opts []server.ServerOption
	if len(cfg.Tools) > 0 {
		opts = append(opts, server.WithToolCapabilities(false))
	}
	if len(cfg.Resources) > 0 {
		opts = append(opts, server.WithResourceCapabilities(false, false))
	}
	if len(cfg.Prompts) > 0 {
		opts = append(opts, server.WithPromptCapabilities(false))
	}

	s := &Server{
		config:    cfg,
		handlers:  make(map[string]*ToolHandler),
		mcpServer: server.NewMCPServer(cfg.Name, cfg.Version, opts...),
	}

	for _, tc := range cfg.Tools {
		tool, err := buildTool(tc)
		if err != nil {
			return nil, err
		}
		s.handlers[tc.Name] = NewToolHandler(tc)
		s.mcpServer.AddTool(tool, s.toolHandler(tc.Name))
	}
	for _, rc := range cfg.Resources {
		s.mcpServer.AddResource(buildResource(rc), resourceHandler(rc))
	}
	for _, pc := range cfg.Prompts {
		s.mcpServer.AddPrompt(buildPrompt(pc), promptHandler(pc))
	}

	logging.Debug("MockServer", "mock server %s initialized with %d tools, %d resources, %d prompts",
		cfg.Name, len(cfg.Tools), len(cfg.Resources), len(cfg.Prompts))
	return s, nil
}

// MCPServer returns the underlying server, for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// Name returns the advertised server name.
func (s *Server) Name() string {
	return s.config.Name
}

// Calls returns the tool calls received so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// ServeStdio serves the mock server on stdin/stdout until ctx is cancelled
// or stdin closes.
func (s *Server) ServeStdio(ctx context.Context) error {
	logging.Debug("MockServer", "starting mock server %s on stdio", s.config.Name)
	return server.NewStdioServer(s.mcpServer).Listen(ctx, os.Stdin, os.Stdout)
}

func (s *Server) toolHandler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()

		s.mu.Lock()
		s.calls = append(s.calls, Call{Tool: name, Args: args})
		s.mu.Unlock()

		h, ok := s.handlers[name]
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("tool %s not found", name)), nil
		}
		return h.HandleCall(ctx, args)
	}
}

func buildTool(tc ToolConfig) (mcp.Tool, error) {
	if len(tc.InputSchema) == 0 {
		return mcp.NewTool(tc.Name, mcp.WithDescription(tc.Description)), nil
	}
	schema, err := json.Marshal(tc.InputSchema)
	if err != nil {
		return mcp.Tool{}, fmt.Errorf("tool %s: invalid input_schema: %w", tc.Name, err)
	}
	return mcp.NewToolWithRawSchema(tc.Name, tc.Description, schema), nil
}

func buildResource(rc ResourceConfig) mcp.Resource {
	opts := []mcp.ResourceOption{mcp.WithResourceDescription(rc.Description)}
	if rc.MIMEType != "" {
		opts = append(opts, mcp.WithMIMEType(rc.MIMEType))
	}
	return mcp.NewResource(rc.URI, rc.Name, opts...)
}

func resourceHandler(rc ResourceConfig) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		if rc.Blob != "" {
			return []mcp.ResourceContents{
				mcp.BlobResourceContents{URI: rc.URI, MIMEType: rc.MIMEType, Blob: rc.Blob},
			}, nil
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: rc.URI, MIMEType: rc.MIMEType, Text: rc.Text},
		}, nil
	}
}

func buildPrompt(pc PromptConfig) mcp.Prompt {
	opts := []mcp.PromptOption{mcp.WithPromptDescription(pc.Description)}
	for _, a := range pc.Arguments {
		argOpts := []mcp.ArgumentOption{mcp.ArgumentDescription(a.Description)}
		if a.Required {
			argOpts = append(argOpts, mcp.RequiredArgument())
		}
		opts = append(opts, mcp.WithArgument(a.Name, argOpts...))
	}
	return mcp.NewPrompt(pc.Name, opts...)
}

func promptHandler(pc PromptConfig) server.PromptHandlerFunc {
	return func(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		data := make(map[string]any, len(req.Params.Arguments))
		for k, v := range req.Params.Arguments {
			data[k] = v
		}
		for _, a := range pc.Arguments {
			if _, ok := data[a.Name]; a.Required && !ok {
				return nil, fmt.Errorf("missing required argument %q", a.Name)
			}
		}
		text, err := render(pc.Template, data)
		if err != nil {
			return nil, fmt.Errorf("failed to render prompt %s: %w", pc.Name, err)
		}
		return mcp.NewGetPromptResult(pc.Description, []mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		}), nil
	}
}
