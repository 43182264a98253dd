// Package formatting renders bound catalogs and call results for the CLI,
// as coloured tables and text, JSON, YAML or a user supplied Go template.
package formatting

import (
	"fmt"
	"io"

	"github.com/giantswarm/mcpbind/pkg/bind"
)

// OutputFormat represents the desired output format
type OutputFormat string

const (
	FormatText OutputFormat = "text" // Tables and plain text
	FormatJSON OutputFormat = "json" // Indented JSON
	FormatYAML OutputFormat = "yaml" // YAML converted from JSON
)

// ValidOutputFormats contains all valid output format values.
var ValidOutputFormats = []OutputFormat{FormatText, FormatJSON, FormatYAML}

// ValidateOutputFormat returns an error listing the valid formats when
// format is not one of them.
func ValidateOutputFormat(format string) error {
	switch OutputFormat(format) {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %q (valid: text, json, yaml)", format)
	}
}

// Options configures the formatter behavior
type Options struct {
	Format OutputFormat
	// Color enables ANSI colours in text output.
	Color bool
	// Template, when set, renders call results with this Go template
	// instead of Format.
	Template string
}

// Formatter writes catalogs and results to w.
type Formatter interface {
	// Catalog writes the members of a bound server.
	Catalog(w io.Writer, c Catalog) error
	// Result writes the value returned by a tool, resource or prompt.
	Result(w io.Writer, v any) error
}

// New creates the formatter selected by options.
func New(options Options) (Formatter, error) {
	if options.Format == "" {
		options.Format = FormatText
	}
	if err := ValidateOutputFormat(string(options.Format)); err != nil {
		return nil, err
	}

	var f Formatter
	switch options.Format {
	case FormatJSON:
		f = &jsonFormatter{}
	case FormatYAML:
		f = &yamlFormatter{}
	default:
		f = &textFormatter{color: options.Color}
	}

	if options.Template != "" {
		tmpl, err := parseTemplate(options.Template)
		if err != nil {
			return nil, fmt.Errorf("invalid template: %w", err)
		}
		f = &templateFormatter{Formatter: f, tmpl: tmpl}
	}
	return f, nil
}

// Entry is one member of a Catalog.
type Entry struct {
	Class       bind.Class `json:"class"`
	Name        string     `json:"name"`
	NativeName  string     `json:"nativeName"`
	Signature   string     `json:"signature,omitempty"`
	URI         string     `json:"uri,omitempty"`
	Description string     `json:"description,omitempty"`
}

// Catalog lists the members of a bound server.
type Catalog struct {
	Server  string  `json:"server,omitempty"`
	Entries []Entry `json:"entries"`
}

// CatalogFrom collects the tools, resources and prompts of s, in that order.
func CatalogFrom(name string, s *bind.Server) Catalog {
	c := Catalog{Server: name, Entries: []Entry{}}
	for _, t := range s.Tools() {
		c.Entries = append(c.Entries, Entry{
			Class:       bind.ClassTool,
			Name:        t.Name(),
			NativeName:  t.NativeName(),
			Signature:   t.Signature().String(),
			Description: t.Description(),
		})
	}
	for _, r := range s.Resources() {
		c.Entries = append(c.Entries, Entry{
			Class:       bind.ClassResource,
			Name:        r.Name(),
			NativeName:  r.NativeName(),
			URI:         r.URI(),
			Description: r.Description(),
		})
	}
	for _, p := range s.Prompts() {
		c.Entries = append(c.Entries, Entry{
			Class:       bind.ClassPrompt,
			Name:        p.Name(),
			NativeName:  p.NativeName(),
			Signature:   p.Signature().String(),
			Description: p.Description(),
		})
	}
	return c
}

// Only returns the entries of the given classes. Without classes the
// catalog is returned unchanged.
func (c Catalog) Only(classes ...bind.Class) Catalog {
	if len(classes) == 0 {
		return c
	}
	out := Catalog{Server: c.Server, Entries: []Entry{}}
	for _, e := range c.Entries {
		for _, class := range classes {
			if e.Class == class {
				out.Entries = append(out.Entries, e)
				break
			}
		}
	}
	return out
}
