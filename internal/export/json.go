package export

import (
	"encoding/json"
	"io"

	"github.com/siteharvest/siteharvest/internal/model"
)

// JSONWriter outputs records as a pretty-printed JSON array.
// Non-ASCII text is preserved as-is rather than escaped, so titles and
// descriptions in any language stay readable in the output file.
//
// Design decision: We use standard encoding/json rather than a
// third-party JSON library because it is sufficient for our needs and
// behaves consistently across Go versions.
type JSONWriter struct {
	baseWriter
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{baseWriter: newBaseWriter(output)}
}

// WriteResources outputs resources as a JSON array of objects.
func (w *JSONWriter) WriteResources(records []model.Resource) (int, error) {
	if records == nil {
		records = []model.Resource{}
	}
	return w.writeJSON(records)
}

// WriteArticles outputs articles as a JSON array of objects.
func (w *JSONWriter) WriteArticles(records []model.Article) (int, error) {
	if records == nil {
		records = []model.Article{}
	}
	return w.writeJSON(records)
}

// writeJSON encodes the value pretty-printed with HTML escaping off
// (URLs with & and non-ASCII text stay literal).
func (w *JSONWriter) writeJSON(v any) (int, error) {
	counter := &countingWriter{w: w.output}
	enc := json.NewEncoder(counter)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	err := enc.Encode(v)
	return counter.n, err
}
