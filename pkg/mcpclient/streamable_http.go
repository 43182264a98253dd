package mcpclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/giantswarm/mcpbind/pkg/logging"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
)

// StreamableHTTPClient connects to a remote server using the streamable HTTP transport.
type StreamableHTTPClient struct {
	baseClient
	url        string
	headers    map[string]string
	httpClient *http.Client
}

// NewStreamableHTTPClient creates a streamable HTTP client. httpClient may be
// nil to use the default.
func NewStreamableHTTPClient(url string, headers map[string]string, httpClient *http.Client) *StreamableHTTPClient {
	if headers == nil {
		headers = make(map[string]string)
	}
	return &StreamableHTTPClient{
		url:        url,
		headers:    headers,
		httpClient: httpClient,
	}
}

// Initialize performs the protocol handshake.
func (c *StreamableHTTPClient) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	needed, err := c.beginInitialize()
	if err != nil || !needed {
		return err
	}

	logging.Debug("MCPClient", "Creating StreamableHTTP client for URL: %s", c.url)

	var opts []transport.StreamableHTTPCOption
	if len(c.headers) > 0 {
		opts = append(opts, transport.WithHTTPHeaders(c.headers))
	}
	if c.httpClient != nil {
		opts = append(opts, transport.WithHTTPBasicClient(c.httpClient))
	}

	mcpClient, err := client.NewStreamableHttpClient(c.url, opts...)
	if err != nil {
		return fmt.Errorf("failed to create StreamableHTTP client: %w", err)
	}

	if err := mcpClient.Start(context.WithoutCancel(ctx)); err != nil {
		_ = mcpClient.Close()
		return fmt.Errorf("failed to start StreamableHTTP transport: %w", err)
	}

	return c.handshake(ctx, mcpClient, c.url)
}
