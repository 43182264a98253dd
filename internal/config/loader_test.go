package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/giantswarm/mcpbind/pkg/bind"
	"github.com/giantswarm/mcpbind/pkg/mcpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// isolate points the default location at an empty directory and clears
// the environment overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	original := osUserHomeDir
	osUserHomeDir = func() (string, error) { return home, nil }
	t.Cleanup(func() { osUserHomeDir = original })

	t.Setenv("MCPBIND_CONFIG", "")
	t.Setenv("MCPBIND_LOG_LEVEL", "")
	t.Setenv("MCPBIND_INIT_TIMEOUT", "")
	return home
}

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadDefaultLocation(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".config", "mcpbind")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("logLevel: debug\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.Path)
}

func TestLoadFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
logLevel: warn
initTimeout: 10s
servers:
  weather:
    command: npx
    args: ["-y", "@h1deya/mcp-server-weather"]
    env:
      DEBUG: "1"
  inline:
    command: "python server.py --port 0"
  remote:
    type: streamable-http
    url: https://example.com/mcp
    headers:
      Authorization: Bearer abc
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.InitTimeout)
	assert.Equal(t, []string{"inline", "remote", "weather"}, cfg.ServerNames())

	weather, err := cfg.Server("weather")
	require.NoError(t, err)
	assert.Equal(t, mcpclient.TransportStdio, weather.Transport())
	assert.Equal(t, "npx", weather.Command)
	assert.Equal(t, []string{"-y", "@h1deya/mcp-server-weather"}, weather.Args)
	assert.Equal(t, map[string]string{"DEBUG": "1"}, weather.Env)

	inline, err := cfg.Server("inline")
	require.NoError(t, err)
	assert.Equal(t, "python", inline.Command)
	assert.Equal(t, []string{"server.py", "--port", "0"}, inline.Args)

	remote, err := cfg.Server("remote")
	require.NoError(t, err)
	assert.Equal(t, mcpclient.TransportStreamableHTTP, remote.Transport())
	assert.Equal(t, "Bearer abc", remote.Headers["Authorization"])
}

func TestEnvironmentOverrides(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "logLevel: warn\ninitTimeout: 10s\n")
	t.Setenv("MCPBIND_CONFIG", path)
	t.Setenv("MCPBIND_LOG_LEVEL", "debug")
	t.Setenv("MCPBIND_INIT_TIMEOUT", "3s")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.InitTimeout)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		path       string
		env        map[string]string
		wantServer string
		wantErr    string
	}{
		{
			name:    "explicit file missing",
			path:    filepath.Join(os.TempDir(), "mcpbind-does-not-exist", "config.yaml"),
			wantErr: "cannot read file",
		},
		{
			name:    "malformed yaml",
			content: "servers: [unclosed",
			wantErr: "malformed YAML",
		},
		{
			name:    "bad log level",
			content: "logLevel: chatty\n",
			wantErr: "chatty",
		},
		{
			name:       "unknown transport",
			content:    "servers:\n  weird:\n    type: carrier-pigeon\n    url: http://x\n",
			wantServer: "weird",
			wantErr:    "unsupported MCP server type",
		},
		{
			name:       "missing command",
			content:    "servers:\n  empty:\n    type: stdio\n",
			wantServer: "empty",
			wantErr:    "command is required",
		},
		{
			name:       "missing url",
			content:    "servers:\n  remote:\n    type: sse\n",
			wantServer: "remote",
			wantErr:    "url is required",
		},
		{
			name:       "unterminated quote",
			content:    "servers:\n  q:\n    command: \"python 'server.py\"\n",
			wantServer: "q",
			wantErr:    "unterminated quote",
		},
		{
			name:    "bad timeout in environment",
			content: "logLevel: info\n",
			env:     map[string]string{"MCPBIND_INIT_TIMEOUT": "soon"},
			wantErr: "invalid environment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := tt.path
			if path == "" {
				path = writeConfig(t, tt.content)
			}

			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, bind.IsConfig(err))
			assert.Contains(t, err.Error(), tt.wantErr)

			var cfgErr *bind.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantServer, cfgErr.Server)
		})
	}
}

func TestUnknownServer(t *testing.T) {
	cfg := Default()
	_, err := cfg.Server("weather")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no servers are configured")

	cfg.Servers["echo"] = ServerDefinition{Command: "echo-server"}
	_, err = cfg.Server("weather")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configured servers: echo")
}
