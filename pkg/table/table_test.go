package table

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

const sampleDoc = `<html><body>
<table id="calc">
<tr><th>Network</th><th>Hosts</th></tr>
<tr><td class="addr">10.0.0.0/24</td><td>254</td></tr>
</table>
<div id="other">text</div>
</body></html>`

func TestFindByID(t *testing.T) {
	doc, err := ParseString(sampleDoc)
	if err != nil {
		t.Fatalf("ParseString() returned error: %v", err)
	}

	tests := []struct {
		name    string
		id      string
		wantTag string
		found   bool
	}{
		{"table present", "calc", "table", true},
		{"div present", "other", "div", true},
		{"missing id", "nope", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := FindByID(doc, tt.id)
			if !tt.found {
				if n != nil {
					t.Fatalf("FindByID(%q) = %v, want nil", tt.id, n)
				}
				return
			}
			if n == nil {
				t.Fatalf("FindByID(%q) = nil, want element", tt.id)
			}
			if n.Data != tt.wantTag {
				t.Errorf("FindByID(%q).Data = %q, want %q", tt.id, n.Data, tt.wantTag)
			}
		})
	}
}

func TestClone_Detached(t *testing.T) {
	doc, err := ParseString(sampleDoc)
	if err != nil {
		t.Fatalf("ParseString() returned error: %v", err)
	}
	src := FindByID(doc, "calc")

	clone := Clone(src)
	if clone.Parent != nil {
		t.Error("clone should have no parent")
	}
	if clone.NextSibling != nil || clone.PrevSibling != nil {
		t.Error("clone should have no siblings")
	}

	srcMarkup, err := Render(src)
	if err != nil {
		t.Fatalf("Render(src) returned error: %v", err)
	}
	cloneMarkup, err := Render(clone)
	if err != nil {
		t.Fatalf("Render(clone) returned error: %v", err)
	}
	if srcMarkup != cloneMarkup {
		t.Errorf("clone markup differs from source:\n%s\nvs\n%s", cloneMarkup, srcMarkup)
	}
}

func TestClone_MutationDoesNotReachSource(t *testing.T) {
	doc, err := ParseString(sampleDoc)
	if err != nil {
		t.Fatalf("ParseString() returned error: %v", err)
	}
	src := FindByID(doc, "calc")
	before, err := Render(src)
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}

	clone := Clone(src)
	clone.Attr = append(clone.Attr, html.Attribute{Key: "data-mutated", Val: "yes"})
	cell := findByClass(clone, "addr")
	if cell != nil {
		cell.FirstChild.Data = "overwritten"
	}
	clone.AppendChild(&html.Node{Type: html.TextNode, Data: "extra"})

	after, err := Render(src)
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if before != after {
		t.Errorf("source mutated through clone:\nbefore: %s\nafter:  %s", before, after)
	}
	if !strings.Contains(after, "10.0.0.0/24") {
		t.Error("source cell text should be intact")
	}
}

// findByClass walks the subtree for the first element with the class.
func findByClass(n *html.Node, class string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "class" && a.Val == class {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByClass(c, class); found != nil {
			return found
		}
	}
	return nil
}
