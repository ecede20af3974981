package fetch

import (
	"errors"
	"fmt"
)

// Fetch failure sentinels.
//
// Design decision: We define specific error values rather than wrapping
// all failures generically. The two traversal engines apply different
// policies per failure (fatal for the paginator, skip-and-continue for
// the crawler), and errors.Is against these sentinels is how callers and
// tests distinguish the cases.
var (
	// ErrHTTPStatus is returned when the server responds with a
	// non-success status code (anything outside 2xx).
	ErrHTTPStatus = errors.New("unexpected HTTP status")

	// ErrNotHTML is returned when the response is not HTML content.
	// The crawler skips such pages; they cannot contain anchors.
	ErrNotHTML = errors.New("response is not HTML")
)

// Error describes a failed fetch with enough context to diagnose it.
// It wraps an underlying cause (a transport error or one of the
// sentinels above) and always carries the failing URL.
type Error struct {
	// URL is the address whose fetch failed.
	URL string

	// StatusCode is the HTTP status code, or zero when the request
	// never produced a response.
	StatusCode int

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: %v (status %d)", e.URL, e.Err, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Err }
