package mcpclient

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/giantswarm/mcpbind/pkg/logging"

	"github.com/mark3labs/mcp-go/client"
)

// StdioClient runs the server as a local subprocess speaking MCP over
// stdin/stdout. The subprocess is started by Initialize and stopped by Close.
type StdioClient struct {
	baseClient
	command string
	args    []string
	env     map[string]string
}

// NewStdioClient creates a stdio client. env is added to the inherited environment.
func NewStdioClient(command string, args []string, env map[string]string) *StdioClient {
	return &StdioClient{
		command: command,
		args:    args,
		env:     env,
	}
}

// Initialize starts the subprocess and performs the protocol handshake.
func (c *StdioClient) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	needed, err := c.beginInitialize()
	if err != nil || !needed {
		return err
	}

	logging.Debug("MCPClient", "Starting stdio server: %s %v", c.command, c.args)

	mcpClient, err := client.NewStdioMCPClient(c.command, envList(c.env), c.args...)
	if err != nil {
		return fmt.Errorf("failed to start %s: %w", c.command, err)
	}

	if stderr, ok := client.GetStderr(mcpClient); ok {
		go drainStderr(c.command, stderr)
	}

	return c.handshake(ctx, mcpClient, c.command)
}

// envList converts the environment map to KEY=value entries in stable order.
func envList(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, fmt.Sprintf("%s=%s", k, env[k]))
	}
	return out
}

// drainStderr forwards the subprocess' stderr to the debug log so a chatty
// server can never block on a full pipe.
func drainStderr(command string, r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		logging.Debug("MCPClient", "[%s stderr] %s", command, scanner.Text())
	}
}
