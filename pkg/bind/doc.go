// Package bind exposes the tools, resources and prompts of an MCP server as
// ordinary Go values.
//
// A Server is created from an initialised client with New, or directly from
// a transport configuration with Connect. Names are resolved with Get, which
// tries tools first, then resources, then prompts, and accepts both the
// server's native names and their snake_case form:
//
//	srv, err := bind.Connect(ctx, mcpclient.Config{Command: "npx", Args: []string{"-y", "weather-server"}})
//	if err != nil {
//	    return err
//	}
//	defer srv.Close()
//
//	m, err := srv.Get("get_weather")
//	if err != nil {
//	    return err
//	}
//	forecast, err := m.Tool.Call(map[string]any{"state": "CA"})
//
// Calls block until the server answers. They are executed on a per-session
// background worker (see package bridge), so a Server can be used from any
// number of goroutines.
//
// Errors are typed by capability class: ConnectionError, ToolError,
// ResourceError, PromptError, ValidationError, ConfigError and NotFoundError.
// Use the Is* helpers or errors.As to tell them apart.
package bind
