// Package scraper contains the extraction and traversal core of
// siteharvest.
//
// # Architecture
//
//   - Document: a thin read-only wrapper over a parsed HTML tree with the
//     handful of capabilities extraction needs (find by tag, attributes,
//     flattened text, ancestor walk)
//   - ParseListing: extracts articles and the pagination "next" link from
//     a listing page
//   - ResourceExtractor: classifies anchors as downloadable resources or
//     resource pages and discovers internal links for traversal
//   - Paginator: follows a single next-page chain, guarding against
//     pagination cycles
//   - Spider: bounded breadth-first crawl over internal links
//
// Design decision: We implement the traversal loops ourselves rather than
// using a crawling framework because:
//  1. The termination rules (visited-set cycle guard, page-count bound)
//     are the whole point and must be explicit
//  2. Execution is deliberately single-threaded and sequential; a
//     framework's concurrency model would be dead weight
//  3. Extraction rules are site-shape specific, not selector-generic
//
// # Failure policy
//
// The paginator treats any fetch or parse failure as fatal and returns it
// wrapped with the failing URL. The spider logs the failure at warning
// level and continues with the next frontier entry; a single bad page
// never aborts a crawl.
package scraper
