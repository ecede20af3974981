package export

import (
	"encoding/csv"
	"io"

	"github.com/siteharvest/siteharvest/internal/model"
)

// Column orders are part of the output contract and never change:
// downstream spreadsheets and scripts rely on them.
var (
	resourceColumns = []string{
		"page_url",
		"page_title",
		"resource_url",
		"resource_title",
		"resource_type",
		"description",
	}

	articleColumns = []string{
		"title",
		"url",
		"summary",
		"published",
	}
)

// CSVWriter outputs records as CSV with a header row.
// Missing optional fields serialize as empty cells. An empty result set
// still produces the header row, so consumers always see the schema.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{baseWriter: newBaseWriter(output)}
}

// WriteResources outputs resources in the fixed column order.
func (w *CSVWriter) WriteResources(records []model.Resource) (int, error) {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.PageURL,
			r.PageTitle,
			r.ResourceURL,
			r.ResourceTitle,
			r.ResourceType,
			r.Description,
		})
	}
	return w.writeCSV(resourceColumns, rows)
}

// WriteArticles outputs articles in the fixed column order.
func (w *CSVWriter) WriteArticles(records []model.Article) (int, error) {
	rows := make([][]string, 0, len(records))
	for _, a := range records {
		rows = append(rows, []string{a.Title, a.URL, a.Summary, a.Published})
	}
	return w.writeCSV(articleColumns, rows)
}

// writeCSV writes a header row followed by the record rows.
func (w *CSVWriter) writeCSV(header []string, rows [][]string) (int, error) {
	counter := &countingWriter{w: w.output}
	cw := csv.NewWriter(counter)

	if err := cw.Write(header); err != nil {
		return counter.n, err
	}
	if err := cw.WriteAll(rows); err != nil {
		return counter.n, err
	}
	cw.Flush()
	return counter.n, cw.Error()
}
