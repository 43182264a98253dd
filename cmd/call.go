package cmd

import (
	"github.com/giantswarm/mcpbind/internal/cli"
	"github.com/giantswarm/mcpbind/pkg/bind"

	"github.com/spf13/cobra"
)

var (
	callArgs     string
	callTemplate string
)

func newCallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call <name> [key=value ...]",
		Short: "Call a tool, read a resource or render a prompt",
		Long: `Call resolves a local or native name on the selected server, tools
first, then resources, then prompts, and invokes it.

Arguments are given as key=value pairs and converted to the declared
parameter types. Undeclared values are decoded as JSON when possible.

Examples:
  mcpbind call get_weather state=CA days=3
  mcpbind call getWeather --args '{"state":"CA"}'
  mcpbind call station_list -o json
  mcpbind call get_weather state=CA --template '{{ .Result }}'`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCall,
	}
	cmd.Flags().StringVar(&callArgs, "args", "", "Arguments as a JSON object; key=value pairs override its keys")
	cmd.Flags().StringVar(&callTemplate, "template", "", "Go template for the result (sprig functions available)")
	return cmd
}

func runCall(cmd *cobra.Command, args []string) error {
	formatter, err := newFormatter(callTemplate)
	if err != nil {
		return err
	}

	return withServer(cmd, func(srv *bind.Server, _ string) error {
		p := cli.StartProgress(cmd.ErrOrStderr(), "Calling "+args[0]+"...", rootFlags.Quiet)
		result, err := cli.Invoke(srv, args[0], callArgs, args[1:])
		p.Stop(err)
		if err != nil {
			return err
		}
		return formatter.Result(cmd.OutOrStdout(), result)
	})
}
