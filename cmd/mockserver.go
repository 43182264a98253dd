package cmd

import (
	"github.com/giantswarm/mcpbind/internal/testing/mockserver"
	"github.com/giantswarm/mcpbind/pkg/logging"

	"github.com/spf13/cobra"
)

// newMockServerCmd serves a YAML-defined mock MCP server on stdio. It is
// hidden; tests and demos start it with --command "mcpbind mock-server FILE".
func newMockServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "mock-server <file>",
		Short:  "Serve a mock MCP server defined in a YAML file over stdio",
		Hidden: true,
		Args:   cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := mockserver.Load(args[0])
			if err != nil {
				return err
			}
			logging.Info("MockServer", "Serving %s on stdio", srv.Name())
			return srv.ServeStdio(cmd.Context())
		},
	}
}
