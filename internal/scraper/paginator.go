package scraper

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/siteharvest/siteharvest/internal/fetch"
	"github.com/siteharvest/siteharvest/internal/model"
)

// Paginator collects article records across a paginated listing by
// following the "next" link from page to page.
//
// The engine is a two-state machine: it is either at a page or done.
// It becomes done when a page has no next link, when the next link
// points at a page already visited in this run (cycle guard), or when
// the next link is the current page itself.
type Paginator struct {
	// client fetches listing pages.
	client *fetch.Client

	// baseURL is the default starting address.
	baseURL string

	// logger records per-page progress.
	logger *slog.Logger

	// pagesVisited counts listing pages fetched by the last Scrape call.
	pagesVisited int
}

// PaginatorStats summarizes a completed scrape run.
type PaginatorStats struct {
	// PagesVisited is the number of listing pages fetched.
	PagesVisited int
}

// PaginatorOption configures a Paginator.
type PaginatorOption func(*Paginator)

// WithPaginatorLogger sets the logger used for progress output.
func WithPaginatorLogger(logger *slog.Logger) PaginatorOption {
	return func(p *Paginator) {
		p.logger = logger
	}
}

// NewPaginator creates a Paginator that starts at baseURL by default.
func NewPaginator(client *fetch.Client, baseURL string, opts ...PaginatorOption) *Paginator {
	p := &Paginator{
		client:  client,
		baseURL: baseURL,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Scrape walks the next-page chain starting at startURL (the base
// address when empty) and returns the accumulated articles in
// first-discovery order.
//
// Articles whose URL was already emitted earlier in the run are
// skipped: deduplication is global across pages, not per page. Any
// fetch or parse failure is fatal and returns with the failing URL in
// the error chain; visited pages are never refetched, so the loop
// terminates even on cyclic pagination graphs.
func (p *Paginator) Scrape(ctx context.Context, startURL string) ([]model.Article, error) {
	next := startURL
	if next == "" {
		next = p.baseURL
	}

	visited := make(map[string]bool)
	seen := make(map[string]bool)
	var collected []model.Article
	p.pagesVisited = 0

	for next != "" && !visited[next] {
		select {
		case <-ctx.Done():
			return collected, ctx.Err()
		default:
		}

		visited[next] = true
		p.logger.Debug("fetching listing page", "url", next)

		result, err := p.client.Fetch(ctx, next)
		if err != nil {
			return nil, err
		}

		doc, err := ParseDocument(result.Body)
		if err != nil {
			return nil, fmt.Errorf("parse listing %s: %w", next, err)
		}
		p.pagesVisited++

		listing := ParseListing(doc, next)
		for _, article := range listing.Articles {
			if seen[article.URL] {
				continue
			}
			seen[article.URL] = true
			collected = append(collected, article)
		}

		if listing.NextURL == "" || visited[listing.NextURL] {
			break
		}
		next = listing.NextURL
	}

	return collected, nil
}

// Stats returns counters from the most recent Scrape call.
func (p *Paginator) Stats() PaginatorStats {
	return PaginatorStats{PagesVisited: p.pagesVisited}
}
