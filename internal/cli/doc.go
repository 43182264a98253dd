// Package cli holds the pieces shared by the mcpbind commands: the common
// flag set and its resolution into a transport configuration, parsing of
// key=value call arguments, and progress spinners for slow operations.
//
// # Target selection
//
// Exactly one of the following selects the server to bind:
//   - --server NAME: a server from the configuration file
//   - --command "CMD ARGS": a local stdio server
//   - --url URL (with --transport sse|streamable-http): a remote server
//
// Without any of them the only configured server is used, if there is
// exactly one.
//
// # Arguments
//
// Call arguments are given as key=value pairs. Values are converted to the
// parameter's declared type; for undeclared parameters JSON literals are
// decoded and anything else is sent as a string. A whole JSON object can be
// passed with --args instead.
package cli
