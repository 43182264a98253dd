package formatting

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// templateFormatter renders results with a user template and leaves
// catalogs to the wrapped formatter.
//
// The template sees the result as JSON-shaped data in .Result. When the
// result is a string holding JSON, the decoded value is in .JSON.
type templateFormatter struct {
	Formatter
	tmpl *template.Template
}

type templateData struct {
	Result any
	JSON   any
}

func parseTemplate(text string) (*template.Template, error) {
	return template.New("output").Funcs(sprig.TxtFuncMap()).Parse(text)
}

func (f *templateFormatter) Result(w io.Writer, v any) error {
	data, err := plain(v)
	if err != nil {
		return err
	}
	td := templateData{Result: data}
	if s, ok := data.(string); ok {
		var decoded any
		if json.Unmarshal([]byte(s), &decoded) == nil {
			td.JSON = decoded
		}
	}

	var b strings.Builder
	if err := f.tmpl.Execute(&b, td); err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}
	out := b.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err = io.WriteString(w, out)
	return err
}
