package cmd

import (
	"fmt"
	"io"

	"github.com/giantswarm/mcpbind/internal/cli"
	"github.com/giantswarm/mcpbind/internal/formatting"
	"github.com/giantswarm/mcpbind/pkg/bind"

	"github.com/spf13/cobra"
)

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <name>",
		Short: "Show the signature and documentation of a tool, resource or prompt",
		Long: `Describe resolves a local or native name the same way call does and
prints its signature, its documentation and its parameters.

Examples:
  mcpbind describe get_weather
  mcpbind describe getWeather -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: runDescribe,
	}
}

// describeOutput is the structured form of describe.
type describeOutput struct {
	formatting.Entry
	Parameters []parameterOutput `json:"parameters,omitempty"`
}

type parameterOutput struct {
	Name        string `json:"name"`
	NativeName  string `json:"nativeName"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Default     any    `json:"default,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
	Description string `json:"description,omitempty"`
}

func runDescribe(cmd *cobra.Command, args []string) error {
	formatter, err := newFormatter("")
	if err != nil {
		return err
	}

	return withServer(cmd, func(srv *bind.Server, name string) error {
		if rootFlags.OutputFormat == string(formatting.FormatText) {
			return describeText(cmd.OutOrStdout(), srv, args[0])
		}
		out, err := describeMember(srv, name, args[0])
		if err != nil {
			return err
		}
		return formatter.Result(cmd.OutOrStdout(), out)
	})
}

func describeText(w io.Writer, srv *bind.Server, name string) error {
	summary, err := srv.Describe(name)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, summary)

	sig := cli.SignatureOf(srv, name)
	if sig == nil {
		return nil
	}
	if sig.Description != "" {
		fmt.Fprintf(w, "\n%s\n", sig.Description)
	}
	if len(sig.Params) > 0 {
		fmt.Fprintln(w, "\nParameters:")
		for _, p := range sig.Params {
			fmt.Fprintf(w, "  %s\n", p)
			if p.Description != "" {
				fmt.Fprintf(w, "      %s\n", p.Description)
			}
		}
	}
	return nil
}

func describeMember(srv *bind.Server, server, name string) (describeOutput, error) {
	catalog := formatting.CatalogFrom(server, srv)

	var class bind.Class
	var local string
	if t, err := srv.Tool(name); err == nil {
		class, local = bind.ClassTool, t.Name()
	} else if r, err := srv.Resource(name); err == nil {
		class, local = bind.ClassResource, r.Name()
	} else if p, err := srv.Prompt(name); err == nil {
		class, local = bind.ClassPrompt, p.Name()
	} else {
		return describeOutput{}, err
	}

	var out describeOutput
	for _, e := range catalog.Entries {
		if e.Class == class && e.Name == local {
			out.Entry = e
			break
		}
	}
	if sig := cli.SignatureOf(srv, name); sig != nil {
		for _, p := range sig.Params {
			out.Parameters = append(out.Parameters, parameterOutput{
				Name:        p.DisplayName,
				NativeName:  p.Name,
				Type:        string(p.Kind),
				Required:    p.Required,
				Default:     p.Default,
				Enum:        p.Enum,
				Description: p.Description,
			})
		}
	}
	return out, nil
}
