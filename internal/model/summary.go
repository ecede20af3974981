package model

import "time"

// RunKind identifies which traversal engine produced a run.
type RunKind string

const (
	// RunKindCrawl is a bounded breadth-first resource crawl.
	RunKindCrawl RunKind = "crawl"

	// RunKindScrape is a paginated article-listing scrape.
	RunKindScrape RunKind = "scrape"
)

// RunSummary describes a completed crawl or scrape run.
// It is embedded in Markdown reports and persisted alongside records.
type RunSummary struct {
	// Kind is the traversal variant that produced this run.
	Kind RunKind `json:"kind"`

	// StartURL is the address the run was seeded with.
	StartURL string `json:"start_url"`

	// PagesVisited is the number of pages successfully fetched.
	PagesVisited int `json:"pages_visited"`

	// Records is the number of records the run emitted.
	Records int `json:"records"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Duration is the wall-clock time the run took.
	Duration time.Duration `json:"duration"`
}
