package config

import (
	"github.com/giantswarm/mcpbind/pkg/mcpclient"
)

const (
	// DefaultLogLevel applies when neither file nor environment set one.
	DefaultLogLevel = "info"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LogLevel:    DefaultLogLevel,
		InitTimeout: mcpclient.DefaultInitTimeout,
		Servers:     map[string]ServerDefinition{},
	}
}
