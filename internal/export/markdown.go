package export

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/siteharvest/siteharvest/internal/model"
)

// MarkdownWriter outputs records as a Markdown report.
// This format is designed for sharing results in documentation, issues,
// and pull requests rather than for machine consumption.
type MarkdownWriter struct {
	baseWriter

	// summary, when set, is rendered as a run-information table above
	// the records.
	summary *model.RunSummary
}

// MarkdownOption configures a MarkdownWriter.
type MarkdownOption func(*MarkdownWriter)

// WithRunSummary includes run information (start URL, pages visited,
// duration) at the top of the report.
func WithRunSummary(summary *model.RunSummary) MarkdownOption {
	return func(w *MarkdownWriter) {
		w.summary = summary
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownOption) *MarkdownWriter {
	w := &MarkdownWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteResources outputs a resource report with one table row per record.
func (w *MarkdownWriter) WriteResources(records []model.Resource) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Harvested Resources")
	w.writeSummary(md, len(records))

	if len(records) == 0 {
		md.PlainText("No resources were found.")
		return len(md.String()), md.Build()
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			"[" + cell(r.ResourceTitle) + "](" + r.ResourceURL + ")",
			r.ResourceType,
			"[" + cell(r.PageTitle) + "](" + r.PageURL + ")",
			cell(r.Description),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Resource", "Type", "Found On", "Description"},
		Rows:   rows,
	})

	return len(md.String()), md.Build()
}

// WriteArticles outputs an article report with one table row per record.
func (w *MarkdownWriter) WriteArticles(records []model.Article) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Harvested Articles")
	w.writeSummary(md, len(records))

	if len(records) == 0 {
		md.PlainText("No articles were found.")
		return len(md.String()), md.Build()
	}

	rows := make([][]string, 0, len(records))
	for _, a := range records {
		rows = append(rows, []string{
			"[" + cell(a.Title) + "](" + a.URL + ")",
			cell(a.Published),
			cell(a.Summary),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Article", "Published", "Summary"},
		Rows:   rows,
	})

	return len(md.String()), md.Build()
}

// writeSummary renders the optional run-information table.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, recordCount int) {
	if w.summary == nil {
		return
	}
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Start URL", "`" + w.summary.StartURL + "`"},
			{"Run", string(w.summary.Kind)},
			{"Pages Visited", strconv.Itoa(w.summary.PagesVisited)},
			{"Records", strconv.Itoa(recordCount)},
			{"Started", w.summary.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", w.summary.Duration.Round(time.Millisecond).String()},
		},
	})
	md.PlainText("")
}

// cell makes a value safe for a single Markdown table cell.
// Pipes would break the table; an empty value renders as a dash.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '|':
			out = append(out, '\\', '|')
		case '\n':
			out = append(out, ' ')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
