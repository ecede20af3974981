// Package fetch wraps an HTTP client for page retrieval.
//
// The traversal engines only need decoded text plus enough metadata to
// classify a failure: network error, non-success status, or non-HTML
// content. Everything else about HTTP stays inside this package.
//
// Fetched bodies are decoded to UTF-8 using the charset declared in the
// Content-Type header, so extraction code never sees raw legacy
// encodings.
package fetch
