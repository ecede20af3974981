package scraper

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/siteharvest/siteharvest/internal/link"
	"github.com/siteharvest/siteharvest/internal/model"
)

// resourceExtensions are the file extensions recognized as downloadable
// resources: documents, spreadsheets, presentations, archives, and the
// common audio/video formats.
var resourceExtensions = []string{
	".pdf",
	".doc",
	".docx",
	".ppt",
	".pptx",
	".xls",
	".xlsx",
	".zip",
	".mp3",
	".mp4",
	".wav",
	".m4a",
}

// keywordHints are anchor-text fragments that mark an internal link as a
// resource page even without a recognized file extension.
var keywordHints = []string{
	"download",
	"free",
	"resource",
	"handout",
	"worksheet",
	"guide",
	"ebook",
	"podcast",
	"video",
	"audio",
	"pdf",
}

// blockTags are the ancestor elements whose flattened text serves as a
// resource description, nearest first.
var blockTags = []string{"p", "li", "div"}

// ClassKind is the outcome of classifying an anchor.
type ClassKind int

const (
	// NotAResource means the anchor points at neither a downloadable
	// file nor a recognizable resource page.
	NotAResource ClassKind = iota

	// ResourceFile means the anchor points at a downloadable file; the
	// classification carries its extension tag.
	ResourceFile

	// InternalPage means the anchor text suggests a resource and the
	// target is internal to the crawl's domain.
	InternalPage
)

// Classification is the result of ClassifyAnchor: the kind plus, for
// ResourceFile, the extension tag without its leading dot. For
// InternalPage the type is always model.TypePage.
type Classification struct {
	Kind ClassKind
	Type string
}

// ResourceExtractor turns anchors on a parsed page into resource
// records and discovers internal links for the traversal frontier.
//
// Design decision: Classification is one explicit predicate
// (ClassifyAnchor) rather than conditions scattered through the
// extraction loop, so the heuristic stays centralized and testable on
// bare tag/attribute/text values.
type ResourceExtractor struct {
	// resolver carries the crawl's base address for internal checks.
	resolver *link.Resolver

	// extensions holds recognized file extensions, leading dot included.
	extensions []string

	// keywords holds lowercase anchor-text hints.
	keywords []string
}

// ResourceOption configures a ResourceExtractor.
type ResourceOption func(*ResourceExtractor)

// WithExtraExtensions adds file extensions (with or without the leading
// dot) to the recognized set. Matching stays case-insensitive.
func WithExtraExtensions(exts []string) ResourceOption {
	return func(e *ResourceExtractor) {
		for _, ext := range exts {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			e.extensions = append(e.extensions, ext)
		}
	}
}

// WithExtraKeywords adds anchor-text hints to the keyword set.
func WithExtraKeywords(keywords []string) ResourceOption {
	return func(e *ResourceExtractor) {
		for _, kw := range keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				e.keywords = append(e.keywords, kw)
			}
		}
	}
}

// NewResourceExtractor creates an extractor bound to the crawl's base
// resolver, with the default extension and keyword sets plus any
// site-specific additions.
func NewResourceExtractor(resolver *link.Resolver, opts ...ResourceOption) *ResourceExtractor {
	e := &ResourceExtractor{
		resolver:   resolver,
		extensions: resourceExtensions,
		keywords:   keywordHints,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ClassifyAnchor classifies a resolved anchor address plus its visible
// text. Non-http(s) addresses are never resources. The keyword rule
// only applies to internal addresses: an external page with enticing
// anchor text is not this site's resource.
func (e *ResourceExtractor) ClassifyAnchor(resolvedURL, anchorText string) Classification {
	u, err := url.Parse(resolvedURL)
	if err != nil || !strings.HasPrefix(u.Scheme, "http") {
		return Classification{Kind: NotAResource}
	}

	lowerPath := strings.ToLower(u.Path)
	for _, ext := range e.extensions {
		if strings.HasSuffix(lowerPath, ext) {
			return Classification{Kind: ResourceFile, Type: strings.TrimPrefix(ext, ".")}
		}
	}

	lowerText := strings.ToLower(anchorText)
	for _, kw := range e.keywords {
		if strings.Contains(lowerText, kw) {
			if e.resolver.IsInternal(resolvedURL) {
				return Classification{Kind: InternalPage, Type: model.TypePage}
			}
			return Classification{Kind: NotAResource}
		}
	}

	return Classification{Kind: NotAResource}
}

// Extract produces the page's resource records in document order.
// pageTitle may be empty; it backfills the record title when an anchor
// has no visible text. Records structurally identical to one already
// emitted for this page are suppressed.
func (e *ResourceExtractor) Extract(doc *Document, pageURL, pageTitle string) []model.Resource {
	pageResolver := link.NewResolver(pageURL)

	var records []model.Resource
	seen := make(map[model.Resource]bool)

	for _, anchor := range doc.Anchors() {
		href := strings.TrimSpace(attr(anchor, "href"))
		if href == "" {
			continue
		}

		resourceURL := pageResolver.Resolve(href)
		text := collapseText(anchor)

		class := e.ClassifyAnchor(resourceURL, text)
		if class.Kind == NotAResource {
			continue
		}

		title := text
		if title == "" {
			title = pageTitle
		}

		record := model.Resource{
			PageURL:       link.Normalize(pageURL),
			PageTitle:     pageTitle,
			ResourceURL:   link.Normalize(resourceURL),
			ResourceTitle: title,
			ResourceType:  class.Type,
			Description:   describeAnchor(anchor),
		}

		if seen[record] {
			continue
		}
		seen[record] = true
		records = append(records, record)
	}

	return records
}

// describeAnchor captures a short description near the anchor: the
// flattened text of its nearest paragraph, list-item, or block-container
// ancestor, falling back to the anchor's own text. Empty when neither
// has usable text.
func describeAnchor(anchor *html.Node) string {
	if parent := blockAncestor(anchor, blockTags...); parent != nil {
		if text := collapseText(parent); text != "" {
			return text
		}
	}
	return collapseText(anchor)
}

// InternalLinks returns every anchor href resolved against the page
// address, normalized, and kept only when internal to the crawl's
// domain. Duplicates within the page are dropped; order is preserved.
func (e *ResourceExtractor) InternalLinks(doc *Document, pageURL string) []string {
	pageResolver := link.NewResolver(pageURL)

	var links []string
	seen := make(map[string]bool)
	for _, anchor := range doc.Anchors() {
		href := strings.TrimSpace(attr(anchor, "href"))
		if href == "" {
			continue
		}
		resolved := pageResolver.Resolve(href)
		if !e.resolver.IsInternal(resolved) {
			continue
		}
		normalized := link.Normalize(resolved)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		links = append(links, normalized)
	}
	return links
}
