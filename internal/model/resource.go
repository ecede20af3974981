package model

// TypePage is the sentinel resource type for anchors that do not point at
// a downloadable file but whose text suggests a resource landing page.
const TypePage = "page"

// Resource represents a downloadable asset or resource page discovered
// during a crawl.
//
// Equality is structural: two resources are the same only if every field
// matches. The same resource URL with different surrounding text (title,
// description) yields distinct records on purpose; per-page suppression
// uses the full struct as the key.
type Resource struct {
	// PageURL is the normalized address of the page containing the anchor.
	PageURL string `json:"page_url"`

	// PageTitle is the containing page's title, or empty when the page
	// has none.
	PageTitle string `json:"page_title"`

	// ResourceURL is the normalized address of the resource itself.
	ResourceURL string `json:"resource_url"`

	// ResourceTitle is the anchor's visible text, falling back to the
	// containing page's title when the anchor text is empty.
	ResourceTitle string `json:"resource_title"`

	// ResourceType is a short tag classifying the asset: a file
	// extension without the leading dot (pdf, mp3, ...) or TypePage.
	ResourceType string `json:"resource_type"`

	// Description is the flattened text of the nearest enclosing
	// paragraph, list item, or block container, or empty when no
	// usable text surrounds the anchor.
	Description string `json:"description"`
}
