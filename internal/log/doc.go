// Package log provides logging for siteharvest, built on top of the
// standard slog package.
//
// This package extends slog to provide:
//   - Automatic truncation of oversized string attributes (page text,
//     descriptions, raw HTML snippets)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// Harvested pages can carry arbitrarily long titles and descriptions.
// Logging them unbounded makes log lines unreadable and can balloon log
// storage, so the TruncatingHandler caps every string attribute at a
// fixed length and marks the cut with an ellipsis.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	logger.Info("page fetched",
//	    "url", "https://www.example.org/library",
//	    "title", veryLongTitle, // truncated if oversized
//	)
package log
