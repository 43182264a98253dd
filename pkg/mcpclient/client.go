package mcpclient

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/giantswarm/mcpbind/pkg/logging"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

const (
	// ClientName is announced to servers during the handshake.
	ClientName = "mcpbind"
	// ClientVersion is announced to servers during the handshake.
	ClientVersion = "1.0.0"

	// DefaultInitTimeout bounds initialization when the caller's context has no deadline.
	DefaultInitTimeout = 30 * time.Second
)

// ErrNotConnected is returned by operations on a client that is not (or no
// longer) initialized.
var ErrNotConnected = errors.New("client not connected")

// Client is an initialized MCP session.
type Client interface {
	// Initialize establishes the connection and performs the protocol handshake.
	Initialize(ctx context.Context) error
	// Close shuts the session down. It is safe to call more than once and on
	// a client that never initialized.
	Close() error

	ListTools(ctx context.Context) ([]mcp.Tool, error)
	CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error)
	ListResources(ctx context.Context) ([]mcp.Resource, error)
	ReadResource(ctx context.Context, uri string) (*mcp.ReadResourceResult, error)
	ListPrompts(ctx context.Context) ([]mcp.Prompt, error)
	GetPrompt(ctx context.Context, name string, args map[string]any) (*mcp.GetPromptResult, error)
	Ping(ctx context.Context) error

	// ServerCapabilities returns what the server advertised during the handshake.
	ServerCapabilities() mcp.ServerCapabilities
	// ServerInfo returns the server's name and version.
	ServerInfo() mcp.Implementation
}

// Compile-time interface compliance checks
var (
	_ Client = (*StdioClient)(nil)
	_ Client = (*SSEClient)(nil)
	_ Client = (*StreamableHTTPClient)(nil)
	_ Client = (*InProcessClient)(nil)
)

// baseClient holds the mcp-go client once the handshake completed and
// implements the operations that are the same for every transport.
type baseClient struct {
	mu         sync.RWMutex
	client     client.MCPClient
	connected  bool
	closed     bool
	initResult *mcp.InitializeResult
}

// handshake performs the initialize exchange on a started mcp-go client and
// adopts it. Caller must hold mu. On failure the mcp-go client is closed.
func (b *baseClient) handshake(ctx context.Context, c client.MCPClient, target string) error {
	initCtx := ctx
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		initCtx, cancel = context.WithTimeout(ctx, DefaultInitTimeout)
		defer cancel()
	}

	req := mcp.InitializeRequest{}
	req.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcp.Implementation{
		Name:    ClientName,
		Version: ClientVersion,
	}
	req.Params.Capabilities = mcp.ClientCapabilities{}

	initResult, err := c.Initialize(initCtx, req)
	if err != nil {
		if closeErr := c.Close(); closeErr != nil {
			logging.Debug("MCPClient", "Error closing failed client for %s: %v", target, closeErr)
		}
		return fmt.Errorf("failed to initialize MCP protocol: %w", err)
	}

	b.client = c
	b.connected = true
	b.initResult = initResult

	logging.Debug("MCPClient", "Initialized %s: server %s %s (protocol %s)",
		target, initResult.ServerInfo.Name, initResult.ServerInfo.Version, initResult.ProtocolVersion)
	return nil
}

// beginInitialize reports whether a handshake is still needed. Caller must hold mu.
func (b *baseClient) beginInitialize() (bool, error) {
	if b.closed {
		return false, fmt.Errorf("client closed")
	}
	return !b.connected, nil
}

// session returns the live mcp-go client. The lock is released before the
// request is sent so Close never waits for an outstanding response.
func (b *baseClient) session() (client.MCPClient, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.connected || b.client == nil {
		return nil, ErrNotConnected
	}
	return b.client, nil
}

// Close cleanly shuts down the client connection
func (b *baseClient) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	if !b.connected || b.client == nil {
		return nil
	}

	err := b.client.Close()
	b.connected = false
	b.client = nil
	return err
}

// ServerCapabilities returns the capabilities advertised by the server.
func (b *baseClient) ServerCapabilities() mcp.ServerCapabilities {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.initResult == nil {
		return mcp.ServerCapabilities{}
	}
	return b.initResult.Capabilities
}

// ServerInfo returns the server implementation info.
func (b *baseClient) ServerInfo() mcp.Implementation {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.initResult == nil {
		return mcp.Implementation{}
	}
	return b.initResult.ServerInfo
}

// ListTools returns all available tools from the server
func (b *baseClient) ListTools(ctx context.Context) ([]mcp.Tool, error) {
	c, err := b.session()
	if err != nil {
		return nil, err
	}

	result, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}
	return result.Tools, nil
}

// CallTool executes a specific tool and returns the result
func (b *baseClient) CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	c, err := b.session()
	if err != nil {
		return nil, err
	}

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := c.CallTool(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to call tool: %w", err)
	}
	return result, nil
}

// ListResources returns all available resources from the server
func (b *baseClient) ListResources(ctx context.Context) ([]mcp.Resource, error) {
	c, err := b.session()
	if err != nil {
		return nil, err
	}

	result, err := c.ListResources(ctx, mcp.ListResourcesRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	return result.Resources, nil
}

// ReadResource retrieves a specific resource
func (b *baseClient) ReadResource(ctx context.Context, uri string) (*mcp.ReadResourceResult, error) {
	c, err := b.session()
	if err != nil {
		return nil, err
	}

	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri

	result, err := c.ReadResource(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource: %w", err)
	}
	return result, nil
}

// ListPrompts returns all available prompts from the server
func (b *baseClient) ListPrompts(ctx context.Context) ([]mcp.Prompt, error) {
	c, err := b.session()
	if err != nil {
		return nil, err
	}

	result, err := c.ListPrompts(ctx, mcp.ListPromptsRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}
	return result.Prompts, nil
}

// GetPrompt renders a specific prompt. Prompt arguments are strings on the
// wire; other values are formatted with %v.
func (b *baseClient) GetPrompt(ctx context.Context, name string, args map[string]any) (*mcp.GetPromptResult, error) {
	c, err := b.session()
	if err != nil {
		return nil, err
	}

	stringArgs := make(map[string]string, len(args))
	for k, v := range args {
		if str, ok := v.(string); ok {
			stringArgs[k] = str
		} else {
			stringArgs[k] = fmt.Sprintf("%v", v)
		}
	}

	req := mcp.GetPromptRequest{}
	req.Params.Name = name
	req.Params.Arguments = stringArgs

	result, err := c.GetPrompt(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to get prompt: %w", err)
	}
	return result, nil
}

// Ping checks if the server is responsive
func (b *baseClient) Ping(ctx context.Context) error {
	c, err := b.session()
	if err != nil {
		return err
	}
	return c.Ping(ctx)
}
