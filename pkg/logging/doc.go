// Package logging provides the leveled, subsystem-tagged logger used across
// mcpbind.
//
// It is a thin layer over log/slog. Every record carries a "subsystem"
// attribute so output from the execution bridge, the dispatcher and the
// transport clients can be told apart:
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Dispatcher", "Bound %d tools", n)
//	logging.Debug("Bridge", "Submitting call %s", id)
//	logging.Error("MCPClient", err, "Failed to initialize %s", url)
//
// Nothing is written until InitForCLI or InitWithFormat is called. This keeps
// the binding packages silent when they are embedded as a library.
//
// Subsystems in use:
//
//   - Bridge: background execution context and call submission
//   - Dispatcher: capability resolution and calls
//   - MCPClient: transport clients
//   - Config: configuration loading
//   - Shutdown: process-wide shutdown hooks
//   - CLI: command line frontend
package logging
