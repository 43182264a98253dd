// Package repl implements the interactive shell of mcpbind. A session is
// bound to one server; its tools, resources and prompts can be listed,
// described and invoked by local or native name, with tab completion and a
// persistent history.
//
//	mcpbind> list tools
//	mcpbind> describe get_weather
//	mcpbind> get_weather state=CA days=3
//	mcpbind> call station_list
package repl
