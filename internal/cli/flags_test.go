package cli

import (
	"testing"

	"github.com/giantswarm/mcpbind/internal/config"
	"github.com/giantswarm/mcpbind/pkg/bind"
	"github.com/giantswarm/mcpbind/pkg/mcpclient"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configWith(servers map[string]config.ServerDefinition) config.Config {
	cfg := config.Default()
	cfg.Servers = servers
	return cfg
}

func TestTarget(t *testing.T) {
	weather := config.ServerDefinition{Type: "stdio", Command: "weather-server", Args: []string{"--fast"}}
	remote := config.ServerDefinition{Type: "sse", URL: "http://localhost:9000/sse"}

	tests := []struct {
		name     string
		flags    CommandFlags
		servers  map[string]config.ServerDefinition
		want     mcpclient.Config
		wantName string
	}{
		{
			name:     "configured server by name",
			flags:    CommandFlags{Server: "remote"},
			servers:  map[string]config.ServerDefinition{"weather": weather, "remote": remote},
			want:     mcpclient.Config{Type: mcpclient.TransportSSE, URL: "http://localhost:9000/sse"},
			wantName: "remote",
		},
		{
			name:     "only configured server is the default",
			servers:  map[string]config.ServerDefinition{"weather": weather},
			want:     mcpclient.Config{Type: mcpclient.TransportStdio, Command: "weather-server", Args: []string{"--fast"}},
			wantName: "weather",
		},
		{
			name:     "command line",
			flags:    CommandFlags{Command: `npx -y "@acme/server" --port 1`, Env: map[string]string{"TOKEN": "x"}},
			want:     mcpclient.Config{Type: mcpclient.TransportStdio, Command: "npx", Args: []string{"-y", "@acme/server", "--port", "1"}, Env: map[string]string{"TOKEN": "x"}},
			wantName: "npx -y @acme/server --port 1",
		},
		{
			name:     "url with transport",
			flags:    CommandFlags{URL: "http://localhost:8080/mcp", Transport: "streamable-http", Headers: map[string]string{"Authorization": "Bearer t"}},
			want:     mcpclient.Config{Type: mcpclient.TransportStreamableHTTP, URL: "http://localhost:8080/mcp", Headers: map[string]string{"Authorization": "Bearer t"}},
			wantName: "http://localhost:8080/mcp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, name, err := tt.flags.Target(configWith(tt.servers))
			require.NoError(t, err)
			assert.Equal(t, tt.want.Type, got.Type)
			assert.Equal(t, tt.want.Command, got.Command)
			assert.Equal(t, tt.want.Args, got.Args)
			assert.Equal(t, tt.want.URL, got.URL)
			assert.Equal(t, tt.want.Env, got.Env)
			assert.Equal(t, tt.want.Headers, got.Headers)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestTargetErrors(t *testing.T) {
	two := map[string]config.ServerDefinition{
		"a": {Type: "stdio", Command: "a"},
		"b": {Type: "stdio", Command: "b"},
	}

	tests := []struct {
		name     string
		flags    CommandFlags
		servers  map[string]config.ServerDefinition
		contains string
	}{
		{name: "mutually exclusive", flags: CommandFlags{Server: "a", URL: "http://x"}, contains: "mutually exclusive"},
		{name: "nothing configured", contains: "no server selected"},
		{name: "ambiguous default", servers: two, contains: "one of: a, b"},
		{name: "unknown server", flags: CommandFlags{Server: "c"}, servers: two, contains: "no such server"},
		{name: "bad transport", flags: CommandFlags{URL: "http://x", Transport: "carrier-pigeon"}, contains: "unsupported MCP server type"},
		{name: "unterminated quote", flags: CommandFlags{Command: `run "oops`}, contains: "--command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.flags.Target(configWith(tt.servers))
			require.Error(t, err)
			assert.True(t, bind.IsConfig(err))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestRegisterCommonFlags(t *testing.T) {
	var flags CommandFlags
	cmd := &cobra.Command{Use: "test"}
	RegisterCommonFlags(cmd, &flags)

	err := cmd.PersistentFlags().Parse([]string{
		"--url", "http://localhost/mcp",
		"--transport", "sse",
		"--header", "X-Team=core",
		"-o", "json",
		"-q",
	})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost/mcp", flags.URL)
	assert.Equal(t, "sse", flags.Transport)
	assert.Equal(t, map[string]string{"X-Team": "core"}, flags.Headers)
	assert.Equal(t, "json", flags.OutputFormat)
	assert.True(t, flags.Quiet)
}
