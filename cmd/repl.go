package cmd

import (
	"github.com/giantswarm/mcpbind/internal/repl"
	"github.com/giantswarm/mcpbind/pkg/bind"

	"github.com/spf13/cobra"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive shell on a server",
		Long: `Start an interactive shell bound to the selected server. Members can be
listed, described and called by name, with tab completion of names and
parameters and a persistent history.

Examples:
  mcpbind repl --server weather
  mcpbind repl --url http://localhost:8080/mcp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			formatter, err := newFormatter("")
			if err != nil {
				return err
			}
			return withServer(cmd, func(srv *bind.Server, name string) error {
				return repl.New(srv, name, formatter).Run(cmd.Context())
			})
		},
	}
}
