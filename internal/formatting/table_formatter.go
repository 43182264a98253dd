package formatting

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/giantswarm/mcpbind/pkg/bind"
	pkgstrings "github.com/giantswarm/mcpbind/pkg/strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mark3labs/mcp-go/mcp"
)

// textFormatter renders catalogs as tables and results as plain text.
type textFormatter struct {
	color bool
}

func (f *textFormatter) paint(c text.Color, s string) string {
	if !f.color {
		return s
	}
	return c.Sprint(s)
}

func (f *textFormatter) Catalog(w io.Writer, c Catalog) error {
	if len(c.Entries) == 0 {
		_, err := fmt.Fprintln(w, f.paint(text.FgYellow, "No tools, resources or prompts found"))
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	if !f.color {
		t.Style().Color = table.ColorOptions{}
	}
	t.AppendHeader(table.Row{
		f.paint(text.FgHiCyan, "CLASS"),
		f.paint(text.FgHiCyan, "NAME"),
		f.paint(text.FgHiCyan, "SIGNATURE"),
		f.paint(text.FgHiCyan, "DESCRIPTION"),
	})

	for _, e := range c.Entries {
		usage := e.Signature
		if e.Class == bind.ClassResource {
			usage = e.URI
		}
		name := e.Name
		if e.NativeName != e.Name {
			name = fmt.Sprintf("%s (%s)", e.Name, e.NativeName)
		}
		t.AppendRow(table.Row{
			f.paint(classColor(e.Class), string(e.Class)),
			name,
			usage,
			pkgstrings.TruncateDescription(e.Description, pkgstrings.DefaultDescriptionMaxLen),
		})
	}
	t.Render()

	_, err := fmt.Fprintf(w, "%s %d\n", f.paint(text.FgHiBlue, "Total:"), len(c.Entries))
	return err
}

func classColor(c bind.Class) text.Color {
	switch c {
	case bind.ClassTool:
		return text.FgGreen
	case bind.ClassResource:
		return text.FgBlue
	default:
		return text.FgMagenta
	}
}

func (f *textFormatter) Result(w io.Writer, v any) error {
	switch r := v.(type) {
	case string:
		_, err := fmt.Fprintln(w, r)
		return err
	case []mcp.Content:
		if len(r) == 0 {
			_, err := fmt.Fprintln(w, f.paint(text.FgYellow, "No results"))
			return err
		}
		for _, c := range r {
			if _, err := fmt.Fprintln(w, f.content(c)); err != nil {
				return err
			}
		}
		return nil
	case []mcp.ResourceContents:
		if len(r) == 0 {
			_, err := fmt.Fprintln(w, f.paint(text.FgYellow, "No contents"))
			return err
		}
		for _, c := range r {
			if _, err := fmt.Fprintln(w, f.resourceContents(c)); err != nil {
				return err
			}
		}
		return nil
	case []mcp.PromptMessage:
		for _, m := range r {
			role := f.paint(text.FgHiCyan, string(m.Role)+":")
			if _, err := fmt.Fprintf(w, "%s %s\n", role, f.content(m.Content)); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := fmt.Fprintln(w, PrettyJSON(v))
		return err
	}
}

func (f *textFormatter) content(c mcp.Content) string {
	if t, ok := mcp.AsTextContent(c); ok {
		return t.Text
	}
	if img, ok := mcp.AsImageContent(c); ok {
		return f.paint(text.FgHiBlack, fmt.Sprintf("[image %s, %d bytes]", img.MIMEType, decodedLen(img.Data)))
	}
	if audio, ok := mcp.AsAudioContent(c); ok {
		return f.paint(text.FgHiBlack, fmt.Sprintf("[audio %s, %d bytes]", audio.MIMEType, decodedLen(audio.Data)))
	}
	if res, ok := mcp.AsEmbeddedResource(c); ok {
		return f.resourceContents(res.Resource)
	}
	return PrettyJSON(c)
}

func (f *textFormatter) resourceContents(c mcp.ResourceContents) string {
	if t, ok := mcp.AsTextResourceContents(c); ok {
		return t.Text
	}
	if b, ok := mcp.AsBlobResourceContents(c); ok {
		return f.paint(text.FgHiBlack, fmt.Sprintf("[blob %s %s, %d bytes]", b.URI, b.MIMEType, decodedLen(b.Blob)))
	}
	return PrettyJSON(c)
}

func decodedLen(b64 string) int {
	n, err := base64.StdEncoding.DecodeString(strings.TrimSpace(b64))
	if err != nil {
		return len(b64)
	}
	return len(n)
}
