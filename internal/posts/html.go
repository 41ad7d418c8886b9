package posts

import (
	"strings"

	"golang.org/x/net/html"
)

// HTMLExtractor finds metadata by parsing the post with golang.org/x/net/html.
// Heading and paragraph text is the concatenated text of all descendants,
// so nested markup does not hide a title.
type HTMLExtractor struct{}

// Extract implements Extractor.
func (HTMLExtractor) Extract(markup string) Metadata {
	var meta Metadata

	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		// html.Parse only fails on reader errors.
		return meta
	}

	var h1, h2, p, date *html.Node
	walk(doc, func(n *html.Node) bool {
		switch n.Data {
		case "h1":
			if h1 == nil {
				h1 = n
			}
		case "h2":
			if h2 == nil {
				h2 = n
			}
		case "p":
			if p == nil {
				p = n
			}
		case "meta":
			if date == nil && strings.EqualFold(getAttr(n, "name"), "date") {
				if _, ok := lookupAttr(n, "content"); ok {
					date = n
				}
			}
		}
		return h1 == nil || p == nil || date == nil
	})

	heading := h1
	if heading == nil {
		heading = h2
	}
	if heading != nil {
		title := strings.TrimSpace(textContent(heading))
		meta.Title = &title
	}
	if date != nil {
		d := strings.TrimSpace(getAttr(date, "content"))
		meta.Date = &d
	}
	if p != nil {
		meta.Description = truncate(strings.TrimSpace(textContent(p)))
	}
	return meta
}

// FirstHeading returns the text content of the first h1 or h2 element in
// document order, whichever comes first. Whitespace is kept as is.
func FirstHeading(markup string) (string, bool) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return "", false
	}

	var found *html.Node
	walk(doc, func(n *html.Node) bool {
		if n.Data == "h1" || n.Data == "h2" {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		return "", false
	}
	return textContent(found), true
}

// walk visits element nodes depth-first in document order until visit
// returns false.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if n.Type == html.ElementNode && !visit(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

// textContent concatenates all text below n.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return sb.String()
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	v, _ := lookupAttr(n, key)
	return v
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}
