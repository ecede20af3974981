package scraper

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/siteharvest/siteharvest/internal/link"
	"github.com/siteharvest/siteharvest/internal/model"
)

// headingTags are the heading-level elements an article title anchor may
// be nested in.
var headingTags = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

// Listing is the result of parsing one article-listing page.
type Listing struct {
	// Articles holds the page's articles in document order.
	Articles []model.Article

	// NextURL is the resolved absolute address of the pagination "next"
	// link, or empty when the page has none.
	NextURL string
}

// ParseListing extracts articles and the next-page link from a listing
// page. pageURL is the address the page was fetched from; hrefs resolve
// against it.
//
// An article element must contain an anchor nested inside a heading
// element supplying both visible title text and an href; the first
// heading that actually contains an anchor wins, so anchor-less
// headings earlier in the article do not disqualify it. Articles
// lacking a titled, linked heading are silently skipped; omissions are
// not errors.
func ParseListing(doc *Document, pageURL string) *Listing {
	resolver := link.NewResolver(pageURL)
	listing := &Listing{}

	seen := make(map[string]bool)
	for _, articleEl := range findAll(doc.root, "article") {
		heading, anchor := titleAnchor(articleEl)
		if anchor == nil {
			continue
		}

		title := collapseText(anchor)
		if title == "" {
			title = collapseText(heading)
		}
		href := strings.TrimSpace(attr(anchor, "href"))
		if title == "" || href == "" {
			continue
		}

		articleURL := link.Normalize(resolver.Resolve(href))
		if seen[articleURL] {
			continue
		}
		seen[articleURL] = true

		article := model.Article{
			Title: title,
			URL:   articleURL,
		}

		if p := findFirst(articleEl, "p"); p != nil {
			article.Summary = flattenText(p)
		}
		if timeEl := findFirst(articleEl, "time"); timeEl != nil {
			article.Published = attr(timeEl, "datetime")
			if article.Published == "" {
				article.Published = flattenText(timeEl)
			}
		}

		listing.Articles = append(listing.Articles, article)
	}

	listing.NextURL = findNextLink(doc, resolver)
	return listing
}

// titleAnchor returns the first heading element that contains an anchor,
// together with that anchor, in document order. Headings without an
// anchor (category labels, section markers) are passed over rather than
// disqualifying the article.
func titleAnchor(articleEl *html.Node) (heading, anchor *html.Node) {
	walk(articleEl, func(n *html.Node) bool {
		if !isHeading(n.Data) {
			return true
		}
		if a := findFirst(n, "a"); a != nil {
			heading = n
			anchor = a
			return false
		}
		return true
	})
	return heading, anchor
}

// isHeading reports whether tag names a heading-level element.
func isHeading(tag string) bool {
	for _, h := range headingTags {
		if tag == h {
			return true
		}
	}
	return false
}

// findNextLink returns the resolved address of the first anchor whose
// rel or class token list contains the token "next", or empty when the
// page has no pagination link.
func findNextLink(doc *Document, resolver *link.Resolver) string {
	for _, anchor := range doc.Anchors() {
		if !hasToken(attr(anchor, "rel"), "next") && !hasToken(attr(anchor, "class"), "next") {
			continue
		}
		if href := strings.TrimSpace(attr(anchor, "href")); href != "" {
			return resolver.Resolve(href)
		}
	}
	return ""
}
