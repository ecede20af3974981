package export

import (
	"io"

	"github.com/siteharvest/siteharvest/internal/model"
)

// Writer outputs harvest records in some serialization format.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// WriteResources outputs a resource result set.
	// Returns the number of bytes written and any error encountered.
	WriteResources(records []model.Resource) (int, error)

	// WriteArticles outputs an article result set.
	WriteArticles(records []model.Article) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteResources outputs the records to all configured Writers.
// Returns the total bytes written; stops on the first error.
func (m *MultiWriter) WriteResources(records []model.Resource) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteResources(records)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteArticles outputs the records to all configured Writers.
func (m *MultiWriter) WriteArticles(records []model.Article) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteArticles(records)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for record writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// countingWriter wraps an io.Writer and tracks bytes written, so
// writers built on encoders that don't report counts can still satisfy
// the Writer interface.
type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
