// Package export serializes harvest records to CSV, JSON, and Markdown.
//
// All writers implement the same Writer interface so the CLI can fan a
// single result set out to several destinations (terminal plus files)
// through a MultiWriter without caring about formats.
package export
