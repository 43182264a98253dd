// Package mcpclient provides the transport clients mcpbind binds against.
//
// Every transport (stdio subprocess, SSE, streamable HTTP and an in-process
// server used by tests) implements the Client interface: initialize the
// session, list the three capability catalogs, call tools, read resources,
// render prompts and close. The protocol itself is handled by
// github.com/mark3labs/mcp-go; this package only creates, initializes and
// guards those clients.
//
// Clients are safe for concurrent use. Close may be called at any time, also
// while requests are in flight (they fail) and on a client that never
// finished initializing.
//
//	c, err := mcpclient.New(mcpclient.Config{
//		Type:    mcpclient.TransportStdio,
//		Command: "npx",
//		Args:    []string{"-y", "@h1deya/mcp-server-weather"},
//	})
//	if err != nil {
//		return err
//	}
//	if err := c.Initialize(ctx); err != nil {
//		return err
//	}
//	defer c.Close()
package mcpclient
