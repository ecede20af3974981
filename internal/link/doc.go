// Package link resolves and normalizes URLs against a crawl's base
// address and classifies them as internal or external to the base host.
//
// All functions are pure and best-effort: malformed input never produces
// an error, only the closest sensible string. This keeps the traversal
// engines free of URL error handling; a link that cannot be resolved
// simply fails the internal check and is never enqueued.
package link
