package fetch

import (
	"context"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Default client settings. These match the values the CLI exposes as
// flag defaults; the constructor applies them when no option overrides.
const (
	// DefaultTimeout bounds a single request end to end. Thirty seconds
	// is generous for cooperative servers without hanging a run forever.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies siteharvest in HTTP requests.
	// A descriptive User-Agent lets site operators identify the traffic.
	DefaultUserAgent = "siteharvest/1.0 (+https://github.com/siteharvest/siteharvest)"

	// DefaultMaxBodySize limits how much of a response body is read.
	// 5MB covers any realistic HTML page while preventing memory
	// exhaustion from unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024
)

// Client fetches pages over HTTP and decodes them to UTF-8 text.
//
// Design decision: The timeout lives on the embedded http.Client rather
// than on per-request contexts because:
//  1. Every request in a run shares the same budget
//  2. It matches how net/http expresses a whole-request deadline
//  3. Context stays free for caller-driven cancellation only
type Client struct {
	// httpClient performs the actual requests.
	httpClient *http.Client

	// userAgent is the User-Agent header sent with every request.
	userAgent string

	// headers are extra headers applied to every request.
	headers map[string]string

	// maxBodySize caps how many bytes of a response body are read.
	maxBodySize int64
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithHeaders sets extra headers applied to every request.
func WithHeaders(h map[string]string) Option {
	return func(c *Client) {
		c.headers = h
	}
}

// WithMaxBodySize sets the maximum response body size to read.
func WithMaxBodySize(n int64) Option {
	return func(c *Client) {
		c.maxBodySize = n
	}
}

// WithHTTPClient replaces the underlying http.Client.
// Tests use this to inject transports; WithTimeout applied after this
// option mutates the replacement client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a Client with the given options applied over the
// package defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result is a successfully fetched page.
type Result struct {
	// URL is the address that was requested.
	URL string

	// StatusCode is the HTTP status code (always 2xx here).
	StatusCode int

	// ContentType is the media type from the Content-Type header,
	// without parameters.
	ContentType string

	// Body is the response body decoded to UTF-8 text.
	Body string
}

// Fetch performs a GET request and returns the decoded page text.
//
// A transport failure, a non-2xx status, or a non-HTML content type all
// return a *Error; callers pick their policy with errors.Is against the
// package sentinels. The context cancels the request when done.
func (c *Client) Fetch(ctx context.Context, pageURL string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &Error{URL: pageURL, Err: err}
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{URL: pageURL, StatusCode: resp.StatusCode, Err: ErrHTTPStatus}
	}

	mediaType, params := parseContentType(resp.Header.Get("Content-Type"))
	if !isHTML(mediaType) {
		return nil, &Error{URL: pageURL, StatusCode: resp.StatusCode, Err: ErrNotHTML}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return nil, &Error{URL: pageURL, StatusCode: resp.StatusCode, Err: err}
	}

	text, err := decodeBody(body, params["charset"])
	if err != nil {
		return nil, &Error{URL: pageURL, StatusCode: resp.StatusCode, Err: err}
	}

	return &Result{
		URL:         pageURL,
		StatusCode:  resp.StatusCode,
		ContentType: mediaType,
		Body:        text,
	}, nil
}

// parseContentType splits a Content-Type header into media type and
// parameters, tolerating a missing or malformed header.
func parseContentType(header string) (string, map[string]string) {
	if header == "" {
		return "", nil
	}
	mediaType, params, err := mime.ParseMediaType(header)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(header)), nil
	}
	return mediaType, params
}

// isHTML reports whether a media type is an HTML document.
// An empty media type is treated as HTML: some minimal servers omit the
// header entirely and those pages are almost always markup.
func isHTML(mediaType string) bool {
	switch mediaType {
	case "", "text/html", "application/xhtml+xml":
		return true
	}
	return false
}

// decodeBody converts a response body to UTF-8 using the declared
// charset. An unknown or absent charset falls back to the bytes as-is,
// which is correct for UTF-8 and ASCII content.
func decodeBody(body []byte, charset string) (string, error) {
	if charset == "" {
		return string(body), nil
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		// Unknown label; serve the bytes untranslated rather than fail.
		return string(body), nil
	}

	decoded, _, err := transform.Bytes(enc.NewDecoder(), body)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
