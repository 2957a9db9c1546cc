// Package serialize turns a sanitized table clone into the two clipboard
// representations: its markup, and a tab/newline-delimited plain-text form
// that downstream paste targets (spreadsheets, editors) expect.
package serialize

import (
	"strings"

	"github.com/JohannesKaufmann/dom"
	"golang.org/x/net/html"
)

// DefaultMarkers are the class tokens identifying structural control cells
// excluded from the plain-text form.
var DefaultMarkers = []string{"split", "join"}

// ToMarkup returns the markup of n as-is.
func ToMarkup(n *html.Node) (string, error) {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}

// ToPlainText serializes the table rooted at n: rows in document order, each
// row's header/data cells tab-joined after dropping empty values, one line
// per row that contributed anything. Cells carrying one of the marker class
// tokens are structural controls and contribute nothing. The result carries
// a trailing newline after the last emitted row. A nil markers slice means
// DefaultMarkers.
func ToPlainText(n *html.Node, markers []string) string {
	if markers == nil {
		markers = DefaultMarkers
	}

	rows := dom.FindAllNodes(n, func(c *html.Node) bool {
		return dom.NodeName(c) == "tr"
	})

	var b strings.Builder
	for _, row := range rows {
		values := []string{}
		for _, cell := range dom.AllChildNodes(row) {
			name := dom.NodeName(cell)
			if name != "td" && name != "th" {
				continue
			}
			if hasMarker(cell, markers) {
				continue
			}
			if text := strings.TrimSpace(textContent(cell)); text != "" {
				values = append(values, text)
			}
		}
		if len(values) > 0 {
			b.WriteString(strings.Join(values, "\t"))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// hasMarker reports whether any class token of cell matches a marker.
func hasMarker(cell *html.Node, markers []string) bool {
	for _, token := range strings.Fields(dom.GetAttributeOr(cell, "class", "")) {
		for _, m := range markers {
			if token == m {
				return true
			}
		}
	}
	return false
}

// textContent concatenates all descendant text nodes.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}
