package cmd

import (
	"path"
	"strings"

	"github.com/giantswarm/mcpbind/internal/cli"
	"github.com/giantswarm/mcpbind/internal/formatting"
	"github.com/giantswarm/mcpbind/pkg/bind"

	"github.com/spf13/cobra"
)

var (
	listFilter      string
	listDescription string
)

// listFilterOptions contains filter criteria for catalog entries.
type listFilterOptions struct {
	// Pattern is a wildcard pattern matched against local and native names (* and ? supported)
	Pattern string
	// Description is a case-insensitive substring matched against descriptions
	Description string
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list [tools|resources|prompts]",
		Aliases: []string{"ls"},
		Short:   "List the tools, resources and prompts of a server",
		Long: `List what the selected server offers, under the local names it is
bound to, with the synthesized signatures.

Examples:
  mcpbind list --command "npx -y @modelcontextprotocol/server-everything"
  mcpbind list tools --server weather
  mcpbind list --filter "get_*" -o json`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"tools", "resources", "prompts"},
		RunE:      runList,
	}
	cmd.Flags().StringVar(&listFilter, "filter", "", "Only show names matching this wildcard pattern")
	cmd.Flags().StringVar(&listDescription, "description", "", "Only show entries whose description contains this text")
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	var kind string
	if len(args) > 0 {
		kind = args[0]
	}
	classes, err := cli.ParseClass(kind)
	if err != nil {
		return err
	}

	formatter, err := newFormatter("")
	if err != nil {
		return err
	}

	return withServer(cmd, func(srv *bind.Server, name string) error {
		catalog := formatting.CatalogFrom(name, srv).Only(classes...)
		catalog = filterCatalog(catalog, listFilterOptions{Pattern: listFilter, Description: listDescription})
		return formatter.Catalog(cmd.OutOrStdout(), catalog)
	})
}

func filterCatalog(c formatting.Catalog, opts listFilterOptions) formatting.Catalog {
	if opts.Pattern == "" && opts.Description == "" {
		return c
	}
	out := formatting.Catalog{Server: c.Server, Entries: []formatting.Entry{}}
	for _, e := range c.Entries {
		if opts.Pattern != "" && !matchesPattern(opts.Pattern, e.Name) && !matchesPattern(opts.Pattern, e.NativeName) {
			continue
		}
		if opts.Description != "" && !strings.Contains(strings.ToLower(e.Description), strings.ToLower(opts.Description)) {
			continue
		}
		out.Entries = append(out.Entries, e)
	}
	return out
}

// matchesPattern reports a wildcard match; malformed patterns match nothing.
func matchesPattern(pattern, name string) bool {
	ok, err := path.Match(pattern, name)
	return err == nil && ok
}
