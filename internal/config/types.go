package config

import (
	"time"

	"github.com/giantswarm/mcpbind/pkg/mcpclient"
)

// Config is the top-level configuration structure for mcpbind.
type Config struct {
	LogLevel    string                      `yaml:"logLevel,omitempty"`
	InitTimeout time.Duration               `yaml:"initTimeout,omitempty"`
	Servers     map[string]ServerDefinition `yaml:"servers,omitempty"`

	// Path is the file the configuration was loaded from, empty for defaults.
	Path string `yaml:"-"`
}

// ServerDefinition describes how to reach one MCP server.
type ServerDefinition struct {
	Type        mcpclient.TransportType `yaml:"type,omitempty"`
	Description string                  `yaml:"description,omitempty"`

	// Command may hold a whole command line when Args is empty.
	Command string            `yaml:"command,omitempty"`
	Args    []string          `yaml:"args,omitempty"`
	Env     map[string]string `yaml:"env,omitempty"`

	URL     string            `yaml:"url,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty"`
}

// envOverrides are decoded from the environment by envdecode.
type envOverrides struct {
	ConfigPath  string        `env:"MCPBIND_CONFIG"`
	LogLevel    string        `env:"MCPBIND_LOG_LEVEL"`
	InitTimeout time.Duration `env:"MCPBIND_INIT_TIMEOUT,strict"`
}
