package formatting

import (
	"fmt"
	"io"
)

// jsonFormatter provides structured JSON output formatting
type jsonFormatter struct{}

func (f *jsonFormatter) Catalog(w io.Writer, c Catalog) error {
	_, err := fmt.Fprintln(w, PrettyJSON(c))
	return err
}

func (f *jsonFormatter) Result(w io.Writer, v any) error {
	_, err := fmt.Fprintln(w, PrettyJSON(v))
	return err
}
