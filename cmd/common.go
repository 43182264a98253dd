package cmd

import (
	"github.com/giantswarm/mcpbind/internal/cli"
	"github.com/giantswarm/mcpbind/pkg/bind"

	"github.com/spf13/cobra"
)

// withServer binds the selected server for the duration of fn and closes
// it afterwards, also when fn panics.
func withServer(cmd *cobra.Command, fn func(srv *bind.Server, name string) error) error {
	srv, name, err := cli.Connect(cmd.Context(), &rootFlags, loadedConfig, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer srv.Close()
	return fn(srv, name)
}
