package sanitize

import (
	"strings"
	"testing"

	"tabclip/pkg/table"

	"golang.org/x/net/html"
)

func mustTable(t *testing.T, doc string) *html.Node {
	t.Helper()
	parsed, err := table.ParseString(doc)
	if err != nil {
		t.Fatalf("ParseString() returned error: %v", err)
	}
	n := table.FindByID(parsed, "calc")
	if n == nil {
		t.Fatal("sample document should contain #calc")
	}
	return table.Clone(n)
}

func render(t *testing.T, n *html.Node) string {
	t.Helper()
	markup, err := table.Render(n)
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	return markup
}

func TestInputs_ReplacesTextInput(t *testing.T) {
	clone := mustTable(t, `<table id="calc"><tr>
<td><input type="text" value="10.0.0.0/24"></td>
</tr></table>`)

	if got := Inputs(clone); got != 1 {
		t.Fatalf("Inputs() = %d, want 1", got)
	}

	markup := render(t, clone)
	if strings.Contains(markup, "<input") {
		t.Errorf("input element should be gone, got %s", markup)
	}
	if !strings.Contains(markup, `<span class="input-value">10.0.0.0/24</span>`) {
		t.Errorf("expected substituted span, got %s", markup)
	}
}

func TestInputs_EmptyValue(t *testing.T) {
	clone := mustTable(t, `<table id="calc"><tr><td><input type="text"></td></tr></table>`)

	if got := Inputs(clone); got != 1 {
		t.Fatalf("Inputs() = %d, want 1", got)
	}

	markup := render(t, clone)
	if !strings.Contains(markup, `<span class="input-value"></span>`) {
		t.Errorf("expected empty span, got %s", markup)
	}
}

func TestInputs_TypeMatching(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		replaced int
	}{
		{"uppercase type", `<input type="TEXT" value="v">`, 1},
		{"checkbox untouched", `<input type="checkbox" checked>`, 0},
		{"radio untouched", `<input type="radio">`, 0},
		{"missing type untouched", `<input value="v">`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clone := mustTable(t, `<table id="calc"><tr><td>`+tt.input+`</td></tr></table>`)
			if got := Inputs(clone); got != tt.replaced {
				t.Errorf("Inputs() = %d, want %d", got, tt.replaced)
			}
			if tt.replaced == 0 && !strings.Contains(render(t, clone), "<input") {
				t.Error("non-text input should remain in place")
			}
		})
	}
}

func TestInputs_MultipleAndNested(t *testing.T) {
	clone := mustTable(t, `<table id="calc">
<tr><td><input type="text" value="a"></td><td><div><input type="text" value="b"></div></td></tr>
<tr><td>plain</td></tr>
</table>`)

	if got := Inputs(clone); got != 2 {
		t.Fatalf("Inputs() = %d, want 2", got)
	}

	markup := render(t, clone)
	for _, want := range []string{">a</span>", ">b</span>"} {
		if !strings.Contains(markup, want) {
			t.Errorf("markup should contain %q, got %s", want, markup)
		}
	}
}
