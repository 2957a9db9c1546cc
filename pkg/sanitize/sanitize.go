// Package sanitize normalizes a working clone for copying: interactive form
// controls are replaced with the static text they currently display, so the
// clipboard payload carries data instead of widget markup.
package sanitize

import (
	"strings"

	"tabclip/pkg/logger"

	"github.com/JohannesKaufmann/dom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// MarkerClass tags the static spans substituted for text inputs, so style
// and serialization steps downstream can recognize them.
const MarkerClass = "input-value"

// Inputs replaces every descendant <input type="text"> of clone with a
// <span class="input-value"> holding the input's current value as a text
// node. Other control types are left in place. Returns the number of
// substitutions. The clone is mutated in place; it must not alias a live
// source tree.
func Inputs(clone *html.Node) int {
	inputs := dom.FindAllNodes(clone, func(n *html.Node) bool {
		if dom.NodeName(n) != "input" {
			return false
		}
		inputType := dom.GetAttributeOr(n, "type", "")
		if !strings.EqualFold(inputType, "text") {
			logger.Debug().Str("type", inputType).Msg("leaving non-text input in place")
			return false
		}
		return true
	})

	replaced := 0
	for _, input := range inputs {
		parent := input.Parent
		if parent == nil {
			continue
		}

		span := &html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.Span,
			Data:     "span",
			Attr:     []html.Attribute{{Key: "class", Val: MarkerClass}},
		}
		span.AppendChild(&html.Node{
			Type: html.TextNode,
			Data: dom.GetAttributeOr(input, "value", ""),
		})

		parent.InsertBefore(span, input)
		parent.RemoveChild(input)
		replaced++
	}

	return replaced
}
