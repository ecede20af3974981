package scraper

import (
	"strings"

	"golang.org/x/net/html"
)

// Document is a parsed HTML page.
//
// Design decision: We wrap golang.org/x/net/html rather than exposing
// html.Node throughout the package because extraction only needs a small
// read-only surface: find descendants by tag, read attributes, flatten
// text, and walk up to a block ancestor. Keeping that surface in one
// place keeps the extractors about records, not tree mechanics.
type Document struct {
	root *html.Node
}

// ParseDocument parses HTML text into a Document.
// The underlying parser tolerates malformed markup the way browsers do,
// so an error here is rare (truncated or non-HTML input).
func ParseDocument(text string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// Title returns the page title from the <title> element, trimmed.
// Empty when the page has no title.
func (d *Document) Title() string {
	if n := findFirst(d.root, "title"); n != nil {
		return flattenText(n)
	}
	return ""
}

// Anchors returns every <a> element in document order.
func (d *Document) Anchors() []*html.Node {
	return findAll(d.root, "a")
}

// findFirst returns the first descendant element matching any of the
// given tag names, in document order, or nil.
func findFirst(n *html.Node, tags ...string) *html.Node {
	var match *html.Node
	walk(n, func(el *html.Node) bool {
		for _, tag := range tags {
			if el.Data == tag {
				match = el
				return false
			}
		}
		return true
	})
	return match
}

// findAll returns all descendant elements with the given tag name,
// in document order.
func findAll(n *html.Node, tag string) []*html.Node {
	var matches []*html.Node
	walk(n, func(el *html.Node) bool {
		if el.Data == tag {
			matches = append(matches, el)
		}
		return true
	})
	return matches
}

// walk visits every element node under n in document order.
// The visitor returns false to stop the walk early.
func walk(n *html.Node, visit func(*html.Node) bool) {
	var rec func(*html.Node) bool
	rec = func(node *html.Node) bool {
		if node.Type == html.ElementNode && node != n {
			if !visit(node) {
				return false
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if !rec(c) {
				return false
			}
		}
		return true
	}
	rec(n)
}

// attr returns the value of the named attribute, or empty string.
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// flattenText recursively concatenates an element's own text, each
// child's flattened text, and each child's trailing text in document
// order, then trims surrounding whitespace. Inline markup inside the
// element contributes its text without separators.
func flattenText(n *html.Node) string {
	var b strings.Builder
	var rec func(*html.Node)
	rec = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	rec(n)
	return strings.TrimSpace(b.String())
}

// collapseText flattens an element's text and collapses all interior
// whitespace runs to single spaces. Used where the surrounding markup
// structure (line breaks, nested blocks) should not leak into a record
// field, such as anchor titles and descriptions.
func collapseText(n *html.Node) string {
	return strings.Join(strings.Fields(flattenText(n)), " ")
}

// blockAncestor walks up from n to the nearest ancestor whose tag is in
// tags, or nil when no such ancestor exists.
func blockAncestor(n *html.Node, tags ...string) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		for _, tag := range tags {
			if p.Data == tag {
				return p
			}
		}
	}
	return nil
}

// hasToken reports whether a whitespace-separated attribute value (rel,
// class) contains the given token, case-insensitively.
func hasToken(attrValue, token string) bool {
	for _, t := range strings.Fields(attrValue) {
		if strings.EqualFold(t, token) {
			return true
		}
	}
	return false
}
