// Package config loads the mcpbind binding configuration.
//
// Configuration is read from a single YAML file, by default
// ~/.config/mcpbind/config.yaml. A missing default file means defaults; a
// missing file given explicitly is an error.
//
//	logLevel: info
//	initTimeout: 30s
//	servers:
//	  weather:
//	    type: stdio
//	    command: npx
//	    args: ["-y", "@h1deya/mcp-server-weather"]
//	  remote:
//	    type: streamable-http
//	    url: https://example.com/mcp
//	    headers:
//	      Authorization: Bearer token
//
// # Environment
//
// The following variables override the file:
//   - MCPBIND_CONFIG: path of the configuration file
//   - MCPBIND_LOG_LEVEL: debug, info, warn or error
//   - MCPBIND_INIT_TIMEOUT: handshake timeout, e.g. 10s
//
// The configuration is read-only; mcpbind never writes it.
//
// Invalid configuration is reported as *bind.ConfigError, naming the file and
// server entry at fault along with suggestions for fixing it.
package config
