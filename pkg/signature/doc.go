// Package signature turns the JSON Schema an MCP server advertises for a tool
// (or the argument list of a prompt) into a callable signature: named,
// typed parameters with required/optional status and defaults.
//
// Signatures are used twice. Before a call is transmitted, Bind checks the
// caller's arguments against the signature, fills schema defaults and drops
// absent (nil) values. For introspection, String renders the signature in a
// compact form and Param.Parse converts command line strings into values of
// the declared type.
//
// JSON Schema types map onto Go types as follows:
//
//	string  -> string
//	integer -> int64
//	number  -> float64
//	boolean -> bool
//	array   -> []any
//	object  -> map[string]any
//	other   -> any
//
// Property order in a schema carries no meaning. Parameters are ordered with
// required ones first, each group in schema order.
package signature
