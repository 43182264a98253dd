package mcpclient

import (
	"context"
	"fmt"

	"github.com/giantswarm/mcpbind/pkg/logging"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
)

// SSEClient connects to a remote server using Server-Sent Events.
type SSEClient struct {
	baseClient
	url     string
	headers map[string]string
}

// NewSSEClient creates an SSE client. headers are sent with every request.
func NewSSEClient(url string, headers map[string]string) *SSEClient {
	if headers == nil {
		headers = make(map[string]string)
	}
	return &SSEClient{
		url:     url,
		headers: headers,
	}
}

// Initialize opens the event stream and performs the protocol handshake.
func (c *SSEClient) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	needed, err := c.beginInitialize()
	if err != nil || !needed {
		return err
	}

	logging.Debug("MCPClient", "Creating SSE client for URL: %s", c.url)

	var opts []transport.ClientOption
	if len(c.headers) > 0 {
		opts = append(opts, transport.WithHeaders(c.headers))
	}

	mcpClient, err := client.NewSSEMCPClient(c.url, opts...)
	if err != nil {
		return fmt.Errorf("failed to create SSE client: %w", err)
	}

	// The event stream outlives the call that opened it.
	if err := mcpClient.Start(context.WithoutCancel(ctx)); err != nil {
		_ = mcpClient.Close()
		return fmt.Errorf("failed to start SSE transport: %w", err)
	}

	return c.handshake(ctx, mcpClient, c.url)
}
