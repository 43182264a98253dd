package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/giantswarm/mcpbind/internal/config"
	"github.com/giantswarm/mcpbind/pkg/bind"
	"github.com/giantswarm/mcpbind/pkg/logging"
)

// Connect resolves the target selected by flags and binds it. It returns
// the server and its display name. Progress is reported on progressOut.
func Connect(ctx context.Context, flags *CommandFlags, cfg config.Config, progressOut io.Writer) (*bind.Server, string, error) {
	target, name, err := flags.Target(cfg)
	if err != nil {
		return nil, "", err
	}

	logging.Debug("CLI", "Binding server %s (%s)", name, target.Transport())

	p := StartProgress(progressOut, fmt.Sprintf("Connecting to %s...", name), flags.Quiet)
	srv, err := bind.Connect(ctx, target, bind.InitTimeout(cfg.InitTimeout))
	p.Stop(err)
	if err != nil {
		return nil, "", err
	}
	return srv, name, nil
}
