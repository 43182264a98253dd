package cli

import (
	"fmt"
	"strings"

	"github.com/giantswarm/mcpbind/internal/config"
	"github.com/giantswarm/mcpbind/internal/formatting"
	"github.com/giantswarm/mcpbind/pkg/bind"
	"github.com/giantswarm/mcpbind/pkg/mcpclient"

	"github.com/spf13/cobra"
)

// CommandFlags holds the flag values shared by all commands that bind a
// server.
type CommandFlags struct {
	// ConfigPath overrides the configuration file location
	ConfigPath string
	// LogLevel overrides the configured log level
	LogLevel string
	// LogFormat selects text or json log output
	LogFormat string
	// OutputFormat specifies the desired output format (text, json, yaml)
	OutputFormat string
	// Quiet suppresses progress indicators
	Quiet bool
	// NoColor disables ANSI colours
	NoColor bool

	// Server names a configured server
	Server string
	// Command is a stdio server command line
	Command string
	// URL is a remote server endpoint
	URL string
	// Transport selects sse or streamable-http for URL
	Transport string
	// Headers are sent with every HTTP request to URL
	Headers map[string]string
	// Env is added to the environment of Command
	Env map[string]string
}

// RegisterCommonFlags registers the common flags as persistent flags of cmd.
func RegisterCommonFlags(cmd *cobra.Command, flags *CommandFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.ConfigPath, "config", "", "Configuration file (default $HOME/.config/mcpbind/config.yaml, env: MCPBIND_CONFIG)")
	pf.StringVar(&flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error (env: MCPBIND_LOG_LEVEL)")
	pf.StringVar(&flags.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVarP(&flags.OutputFormat, "output", "o", string(formatting.FormatText), "Output format (text, json, yaml)")
	pf.BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress progress indicators")
	pf.BoolVar(&flags.NoColor, "no-color", false, "Disable coloured output")

	pf.StringVarP(&flags.Server, "server", "s", "", "Configured server to bind")
	pf.StringVarP(&flags.Command, "command", "c", "", "Command line of a stdio MCP server, e.g. \"npx -y server\"")
	pf.StringVar(&flags.URL, "url", "", "URL of a remote MCP server")
	pf.StringVar(&flags.Transport, "transport", string(mcpclient.TransportStreamableHTTP), "Transport for --url: sse or streamable-http")
	pf.StringToStringVar(&flags.Headers, "header", nil, "HTTP header for --url as Key=Value (repeatable)")
	pf.StringToStringVar(&flags.Env, "env", nil, "Environment variable for --command as KEY=VALUE (repeatable)")
}

// Target resolves the flags into a transport configuration and a display
// name for the selected server.
func (f *CommandFlags) Target(cfg config.Config) (mcpclient.Config, string, error) {
	selected := 0
	for _, v := range []string{f.Server, f.Command, f.URL} {
		if v != "" {
			selected++
		}
	}
	if selected > 1 {
		return mcpclient.Config{}, "", &bind.ConfigError{
			Message:     "--server, --command and --url are mutually exclusive",
			Suggestions: []string{"pick one way of selecting the server"},
		}
	}

	switch {
	case f.Server != "":
		c, err := cfg.Server(f.Server)
		return c, f.Server, err

	case f.Command != "":
		command, args, err := mcpclient.ParseCommand(f.Command)
		if err != nil {
			return mcpclient.Config{}, "", &bind.ConfigError{Message: fmt.Sprintf("--command: %v", err), Err: err}
		}
		c := mcpclient.Config{Type: mcpclient.TransportStdio, Command: command, Args: args, Env: f.Env}
		return c, c.Target(), nil

	case f.URL != "":
		c := mcpclient.Config{Type: mcpclient.TransportType(f.Transport), URL: f.URL, Headers: f.Headers}
		if err := c.Validate(); err != nil {
			return mcpclient.Config{}, "", &bind.ConfigError{
				Message:     err.Error(),
				Suggestions: []string{"use --transport sse or --transport streamable-http"},
				Err:         err,
			}
		}
		return c, f.URL, nil
	}

	names := cfg.ServerNames()
	if len(names) == 1 {
		c, err := cfg.Server(names[0])
		return c, names[0], err
	}

	suggestions := []string{"use --command \"<cmd>\" for a local server or --url for a remote one"}
	if len(names) > 1 {
		suggestions = append([]string{"use --server with one of: " + strings.Join(names, ", ")}, suggestions...)
	}
	return mcpclient.Config{}, "", &bind.ConfigError{
		Path:        cfg.Path,
		Message:     "no server selected",
		Suggestions: suggestions,
	}
}
