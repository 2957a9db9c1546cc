// Package table locates and snapshots table elements inside a parsed HTML
// document. The snapshot is a fully detached deep copy, so every later
// pipeline step mutates private state and the caller's document survives
// the export untouched.
package table

import (
	"io"
	"strings"

	"github.com/JohannesKaufmann/dom"
	"golang.org/x/net/html"
)

// Parse parses a complete HTML document.
func Parse(r io.Reader) (*html.Node, error) {
	return html.Parse(r)
}

// ParseString parses a complete HTML document from a string.
func ParseString(s string) (*html.Node, error) {
	return html.Parse(strings.NewReader(s))
}

// FindByID returns the first element in document order whose id attribute
// equals id, or nil.
func FindByID(doc *html.Node, id string) *html.Node {
	return dom.FindFirstNode(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && dom.GetAttributeOr(n, "id", "") == id
	})
}

// Clone returns a detached deep copy of n. Attribute slices are copied, not
// aliased, so mutating the clone can never reach the source tree.
func Clone(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}

	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(Clone(child))
	}
	return c
}

// Render returns the markup of n.
func Render(n *html.Node) (string, error) {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}
