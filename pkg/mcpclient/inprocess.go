package mcpclient

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/server"
)

// InProcessClient talks to an mcp-go server living in the same process. It
// is used to embed servers and by tests.
type InProcessClient struct {
	baseClient
	server *server.MCPServer
}

// NewInProcessClient creates a client bound to srv.
func NewInProcessClient(srv *server.MCPServer) *InProcessClient {
	return &InProcessClient{server: srv}
}

// Initialize performs the protocol handshake.
func (c *InProcessClient) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	needed, err := c.beginInitialize()
	if err != nil || !needed {
		return err
	}
	if c.server == nil {
		return fmt.Errorf("no in-process server configured")
	}

	mcpClient, err := client.NewInProcessClient(c.server)
	if err != nil {
		return fmt.Errorf("failed to create in-process client: %w", err)
	}

	if err := mcpClient.Start(context.WithoutCancel(ctx)); err != nil {
		_ = mcpClient.Close()
		return fmt.Errorf("failed to start in-process transport: %w", err)
	}

	return c.handshake(ctx, mcpClient, "in-process")
}
