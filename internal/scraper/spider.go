package scraper

import (
	"context"
	"log/slog"
	"time"

	"github.com/siteharvest/siteharvest/internal/fetch"
	"github.com/siteharvest/siteharvest/internal/link"
	"github.com/siteharvest/siteharvest/internal/model"
)

// Spider performs a bounded breadth-first crawl over a site's internal
// links, collecting resource records from every page it visits.
//
// Design decision: We call it "Spider" rather than "Crawler" because:
//  1. "Spider" is the traditional term for web crawlers
//  2. It distinguishes the component from the crawl operation itself
//  3. Clearer in code: scraper.NewSpider() reads better than
//     scraper.NewCrawler()
type Spider struct {
	// client fetches pages.
	client *fetch.Client

	// resolver is bound to the crawl's base address.
	resolver *link.Resolver

	// extractor turns pages into resource records and internal links.
	extractor *ResourceExtractor

	// maxPages bounds the total number of pages visited. The crawl
	// truncates gracefully when the bound is reached, even with a
	// non-empty frontier.
	maxPages int

	// delay is a fixed pause between fetches. A politeness courtesy,
	// not a correctness requirement.
	delay time.Duration

	// logger records progress and recoverable failures.
	logger *slog.Logger

	// visited tracks normalized addresses of successfully fetched
	// pages. It only ever grows; a page is fetched at most once per
	// crawl.
	visited map[string]bool
}

// SpiderOption configures a Spider.
type SpiderOption func(*Spider)

// WithMaxPages sets the maximum number of pages to visit.
func WithMaxPages(n int) SpiderOption {
	return func(s *Spider) {
		s.maxPages = n
	}
}

// WithDelay sets the pause between fetches.
func WithDelay(d time.Duration) SpiderOption {
	return func(s *Spider) {
		s.delay = d
	}
}

// WithSpiderLogger sets the logger used for progress and warnings.
func WithSpiderLogger(logger *slog.Logger) SpiderOption {
	return func(s *Spider) {
		s.logger = logger
	}
}

// WithExtractorOptions forwards options to the resource extractor,
// such as site-specific extra keywords or extensions.
func WithExtractorOptions(opts ...ResourceOption) SpiderOption {
	return func(s *Spider) {
		s.extractor = NewResourceExtractor(s.resolver, opts...)
	}
}

// DefaultMaxPages bounds a crawl when no limit is configured.
const DefaultMaxPages = 200

// NewSpider creates a Spider rooted at baseURL.
//
// Design decision: We require an external fetch client rather than
// constructing one because:
//  1. Timeout and User-Agent policy belong to the caller
//  2. It keeps this package free of HTTP configuration
//  3. Tests can point the same spider at httptest servers
func NewSpider(client *fetch.Client, baseURL string, opts ...SpiderOption) *Spider {
	resolver := link.NewResolver(baseURL)
	s := &Spider{
		client:    client,
		resolver:  resolver,
		extractor: NewResourceExtractor(resolver),
		maxPages:  DefaultMaxPages,
		logger:    slog.Default(),
		visited:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Crawl runs the breadth-first traversal from the base address and
// returns every resource record discovered, in visitation order.
//
// Per-page failures (network errors, non-success status, non-HTML
// content) are logged at warning level and skipped; they do not consume
// the page budget and never abort the crawl. There is deliberately no
// cross-page deduplication: a resource may legitimately appear once per
// distinct source page.
func (s *Spider) Crawl(ctx context.Context) ([]model.Resource, error) {
	start := link.Normalize(s.resolver.Base())

	queue := []string{start}
	queued := map[string]bool{start: true}
	var resources []model.Resource

	for len(queue) > 0 && len(s.visited) < s.maxPages {
		select {
		case <-ctx.Done():
			return resources, ctx.Err()
		default:
		}

		pageURL := queue[0]
		queue = queue[1:]
		delete(queued, pageURL)

		if s.visited[pageURL] {
			continue
		}

		s.logger.Debug("fetching page", "url", pageURL)
		result, err := s.client.Fetch(ctx, pageURL)
		if err != nil {
			s.logger.Warn("skipping page", "url", pageURL, "error", err)
			continue
		}

		doc, err := ParseDocument(result.Body)
		if err != nil {
			s.logger.Warn("skipping unparseable page", "url", pageURL, "error", err)
			continue
		}

		s.visited[pageURL] = true

		pageTitle := doc.Title()
		resources = append(resources, s.extractor.Extract(doc, pageURL, pageTitle)...)

		for _, internal := range s.extractor.InternalLinks(doc, pageURL) {
			if s.visited[internal] || queued[internal] {
				continue
			}
			queued[internal] = true
			queue = append(queue, internal)
		}

		if s.delay > 0 && len(queue) > 0 {
			select {
			case <-ctx.Done():
				return resources, ctx.Err()
			case <-time.After(s.delay):
			}
		}
	}

	return resources, nil
}

// Stats reports the crawl's progress counters.
func (s *Spider) Stats() SpiderStats {
	return SpiderStats{PagesVisited: len(s.visited)}
}

// SpiderStats contains crawl statistics.
type SpiderStats struct {
	// PagesVisited is the number of pages successfully fetched.
	PagesVisited int
}
