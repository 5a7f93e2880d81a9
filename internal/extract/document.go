// Package extract carves an accessibility-statement HTML document into
// semantic sections and derives structured fields from them. It is pure:
// no I/O, no shared state, safe to run concurrently across documents.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document is a parsed statement page. Headings are held in document order;
// the underlying tree is read-only for the lifetime of the extraction.
type Document struct {
	headings []*html.Node
}

// ParseDocument parses raw HTML into a Document.
func ParseDocument(htmlContent string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	d := &Document{}
	doc.Find("h1, h2, h3, h4, h5").Each(func(_ int, s *goquery.Selection) {
		d.headings = append(d.headings, s.Nodes...)
	})
	return d, nil
}

// Headings returns the heading nodes (h1..h5) in document order.
func (d *Document) Headings() []*html.Node {
	return d.headings
}

// textAfter accumulates the trimmed text of every text node that follows h
// in document order, joined by newline. When stopAtHeading is true the walk
// ends at the first subsequent heading of any level; otherwise it runs to
// the end of the document, so later headings' own text is included too.
func (d *Document) textAfter(h *html.Node, stopAtHeading bool) string {
	var parts []string

	n := skipSubtree(h)
	for n != nil {
		if n.Type == html.ElementNode {
			if stopAtHeading && isHeading(n) {
				break
			}
			if isInvisible(n) {
				n = skipSubtree(n)
				continue
			}
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		}
		n = next(n)
	}

	return strings.Join(parts, "\n")
}

// next returns the document-order successor of n, descending into children.
func next(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	return skipSubtree(n)
}

// skipSubtree returns the document-order successor of n without entering
// n's own subtree.
func skipSubtree(n *html.Node) *html.Node {
	for n != nil {
		if n.NextSibling != nil {
			return n.NextSibling
		}
		n = n.Parent
	}
	return nil
}

func isHeading(n *html.Node) bool {
	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5":
		return true
	}
	return false
}

// isInvisible reports whether an element's text never renders on the page.
func isInvisible(n *html.Node) bool {
	switch n.Data {
	case "script", "style", "noscript", "template":
		return true
	}
	return false
}

// nodeText returns the trimmed text content of a node's subtree.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
