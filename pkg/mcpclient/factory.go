package mcpclient

import (
	"fmt"
	"net/http"
	"strings"
)

// TransportType selects how a client reaches its server.
type TransportType string

const (
	// TransportStdio starts the server as a subprocess.
	TransportStdio TransportType = "stdio"
	// TransportSSE connects using Server-Sent Events.
	TransportSSE TransportType = "sse"
	// TransportStreamableHTTP connects using the streamable HTTP transport.
	TransportStreamableHTTP TransportType = "streamable-http"
)

// Transports lists the supported transport types.
var Transports = []TransportType{TransportStdio, TransportSSE, TransportStreamableHTTP}

// Config describes how to reach one MCP server.
type Config struct {
	// Type is the transport. Empty means stdio when Command is set and
	// streamable-http when URL is set.
	Type TransportType
	// Command is the executable for stdio servers
	Command string
	// Args are the command line arguments for stdio servers
	Args []string
	// Env is added to the environment of stdio servers
	Env map[string]string
	// URL is the endpoint of remote servers
	URL string
	// Headers are sent to remote servers
	Headers map[string]string
	// HTTPClient replaces the default HTTP client for streamable-http servers.
	HTTPClient *http.Client
}

// Transport returns the effective transport type.
func (c Config) Transport() TransportType {
	if c.Type != "" {
		return c.Type
	}
	if c.URL != "" {
		return TransportStreamableHTTP
	}
	return TransportStdio
}

// Target describes the server for log and error messages.
func (c Config) Target() string {
	if c.Transport() == TransportStdio {
		return strings.TrimSpace(c.Command + " " + strings.Join(c.Args, " "))
	}
	return c.URL
}

// Validate checks that the fields the transport needs are present.
func (c Config) Validate() error {
	switch c.Transport() {
	case TransportStdio:
		if c.Command == "" {
			return fmt.Errorf("command is required for stdio type")
		}
	case TransportStreamableHTTP:
		if c.URL == "" {
			return fmt.Errorf("url is required for streamable-http type")
		}
	case TransportSSE:
		if c.URL == "" {
			return fmt.Errorf("url is required for sse type")
		}
	default:
		return fmt.Errorf("unsupported MCP server type: %s (supported: %s, %s, %s)",
			c.Type, TransportStdio, TransportStreamableHTTP, TransportSSE)
	}
	return nil
}

// New creates the client for cfg. The client still has to be initialized.
func New(cfg Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Transport() {
	case TransportSSE:
		return NewSSEClient(cfg.URL, cfg.Headers), nil
	case TransportStreamableHTTP:
		return NewStreamableHTTPClient(cfg.URL, cfg.Headers, cfg.HTTPClient), nil
	default:
		return NewStdioClient(cfg.Command, cfg.Args, cfg.Env), nil
	}
}

// ParseCommand splits a command line such as "npx -y server" into the
// executable and its arguments. Arguments are separated by whitespace;
// single or double quotes group words.
func ParseCommand(line string) (string, []string, error) {
	var (
		fields  []string
		current strings.Builder
		quote   rune
		inField bool
	)

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inField = true
		case r == ' ' || r == '\t' || r == '\n':
			if inField {
				fields = append(fields, current.String())
				current.Reset()
				inField = false
			}
		default:
			current.WriteRune(r)
			inField = true
		}
	}
	if quote != 0 {
		return "", nil, fmt.Errorf("unterminated quote in command %q", line)
	}
	if inField {
		fields = append(fields, current.String())
	}
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("empty command")
	}
	return fields[0], fields[1:], nil
}
