package model

// Article represents a single article discovered on a paginated listing.
//
// Design decision: The URL is the deduplication key rather than the title
// because listing pages frequently repeat titles (e.g. "Read more" style
// duplicates) while the canonical article URL is stable across pages.
type Article struct {
	// Title is the visible title text. Always non-empty; articles
	// without a title are excluded during extraction.
	Title string `json:"title"`

	// URL is the absolute, resolved article URL. This is the
	// deduplication key across an entire scrape run.
	URL string `json:"url"`

	// Summary is the flattened text of the first paragraph-like element
	// inside the article, or empty when none exists.
	Summary string `json:"summary"`

	// Published is date-like text taken verbatim from the source:
	// the machine-readable datetime attribute of the nearest time
	// element, falling back to its visible text. Empty when absent.
	Published string `json:"published"`
}
