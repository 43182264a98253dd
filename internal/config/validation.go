package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/giantswarm/mcpbind/pkg/bind"
	"github.com/giantswarm/mcpbind/pkg/logging"
	"github.com/giantswarm/mcpbind/pkg/mcpclient"
)

// Validate checks the log level, timeout and every server definition. The
// first problem found, in server name order, is returned as *bind.ConfigError.
func (c Config) Validate() error {
	if c.LogLevel != "" {
		if _, err := logging.ParseLevel(c.LogLevel); err != nil {
			return &bind.ConfigError{
				Path:        c.Path,
				Message:     err.Error(),
				Suggestions: []string{"use one of: debug, info, warn, error"},
				Err:         err,
			}
		}
	}
	if c.InitTimeout < 0 {
		return &bind.ConfigError{Path: c.Path, Message: fmt.Sprintf("initTimeout must not be negative, got %s", c.InitTimeout)}
	}

	for _, name := range c.ServerNames() {
		if _, err := c.Servers[name].ClientConfig(); err != nil {
			return c.serverError(name, err)
		}
	}
	return nil
}

// ServerNames returns the configured server names, sorted.
func (c Config) ServerNames() []string {
	names := make([]string, 0, len(c.Servers))
	for name := range c.Servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Server returns the client configuration of the named server.
func (c Config) Server(name string) (mcpclient.Config, error) {
	def, ok := c.Servers[name]
	if !ok {
		suggestion := "no servers are configured"
		if len(c.Servers) > 0 {
			suggestion = "configured servers: " + strings.Join(c.ServerNames(), ", ")
		}
		return mcpclient.Config{}, &bind.ConfigError{
			Path:        c.Path,
			Server:      name,
			Message:     "no such server",
			Suggestions: []string{suggestion},
		}
	}
	cfg, err := def.ClientConfig()
	if err != nil {
		return mcpclient.Config{}, c.serverError(name, err)
	}
	return cfg, nil
}

func (c Config) serverError(name string, err error) *bind.ConfigError {
	var suggestions []string
	def := c.Servers[name]
	switch {
	case def.Type != "" && !knownTransport(def.Type):
		suggestions = append(suggestions, fmt.Sprintf("set 'type' to one of: %s", joinTransports()))
	case def.Command == "" && def.URL == "":
		suggestions = append(suggestions,
			"set 'command' (and 'args') for a local stdio server",
			"set 'url' for a remote sse or streamable-http server")
	}
	return &bind.ConfigError{
		Path:        c.Path,
		Server:      name,
		Message:     err.Error(),
		Suggestions: suggestions,
		Err:         err,
	}
}

// ClientConfig converts the definition into a transport configuration. A
// command given as a whole command line is split into executable and args.
func (d ServerDefinition) ClientConfig() (mcpclient.Config, error) {
	cfg := mcpclient.Config{
		Type:    d.Type,
		Command: d.Command,
		Args:    d.Args,
		Env:     d.Env,
		URL:     d.URL,
		Headers: d.Headers,
	}
	if len(d.Args) == 0 && strings.ContainsAny(strings.TrimSpace(d.Command), " \t") {
		cmd, args, err := mcpclient.ParseCommand(d.Command)
		if err != nil {
			return mcpclient.Config{}, err
		}
		cfg.Command, cfg.Args = cmd, args
	}
	if err := cfg.Validate(); err != nil {
		return mcpclient.Config{}, err
	}
	return cfg, nil
}

func knownTransport(t mcpclient.TransportType) bool {
	for _, known := range mcpclient.Transports {
		if t == known {
			return true
		}
	}
	return false
}

func joinTransports() string {
	names := make([]string, 0, len(mcpclient.Transports))
	for _, t := range mcpclient.Transports {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
