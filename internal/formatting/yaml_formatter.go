package formatting

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlFormatter converts values to JSON-shaped data first so the YAML uses
// the same field names as the protocol.
type yamlFormatter struct{}

func (f *yamlFormatter) Catalog(w io.Writer, c Catalog) error {
	return f.write(w, c)
}

func (f *yamlFormatter) Result(w io.Writer, v any) error {
	return f.write(w, v)
}

func (f *yamlFormatter) write(w io.Writer, v any) error {
	data, err := plain(v)
	if err != nil {
		return fmt.Errorf("failed to convert to YAML: %w", err)
	}
	out, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to convert to YAML: %w", err)
	}
	_, err = w.Write(out)
	return err
}
