package filter

import (
	"strings"
	"testing"
)

func TestNewStringFilter(t *testing.T) {
	tests := []struct {
		name      string
		pattern   string
		mode      FilterMode
		wantErr   bool
		errString string
	}{
		{
			name:    "valid exact filter",
			pattern: "test",
			mode:    FilterModeExact,
			wantErr: false,
		},
		{
			name:    "valid contains filter",
			pattern: "test",
			mode:    FilterModeContains,
			wantErr: false,
		},
		{
			name:    "valid regex filter",
			pattern: "^test$",
			mode:    FilterModeRegex,
			wantErr: false,
		},
		{
			name:      "invalid regex filter",
			pattern:   "[invalid(",
			mode:      FilterModeRegex,
			wantErr:   true,
			errString: "invalid regex pattern",
		},
		{
			name:    "valid fuzzy filter",
			pattern: "tst",
			mode:    FilterModeFuzzy,
			wantErr: false,
		},
		{
			name:    "none mode",
			pattern: "",
			mode:    FilterModeNone,
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := NewStringFilter(tt.pattern, tt.mode)
			if tt.wantErr {
				if err == nil {
					t.Fatal("NewStringFilter() should return an error")
				}
				if !strings.Contains(err.Error(), tt.errString) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errString)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewStringFilter() returned error: %v", err)
			}
			if filter == nil {
				t.Fatal("NewStringFilter() returned nil filter")
			}
		})
	}
}

func TestStringFilter_Match(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		mode    FilterMode
		input   string
		want    bool
	}{
		{"none matches everything", "", FilterModeNone, "anything", true},
		{"exact case-insensitive", "Calc", FilterModeExact, "calc", true},
		{"exact mismatch", "calc", FilterModeExact, "calc2", false},
		{"contains", "alc", FilterModeContains, "CALC", true},
		{"regex", "^calc[0-9]+$", FilterModeRegex, "calc42", true},
		{"fuzzy subsequence", "clc", FilterModeFuzzy, "calc", true},
		{"fuzzy no match", "xyz", FilterModeFuzzy, "calc", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewStringFilter(tt.pattern, tt.mode)
			if err != nil {
				t.Fatalf("NewStringFilter() returned error: %v", err)
			}
			if got := f.Match(tt.input); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFuzzyMatch(t *testing.T) {
	tests := []struct {
		pattern string
		text    string
		want    bool
	}{
		{"", "anything", true},
		{"abc", "", false},
		{"net", "network", true},
		{"nwk", "network", true},
		{"won", "network", false},
	}

	for _, tt := range tests {
		if got := FuzzyMatch(tt.pattern, tt.text); got != tt.want {
			t.Errorf("FuzzyMatch(%q, %q) = %v, want %v", tt.pattern, tt.text, got, tt.want)
		}
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		s1, s2 string
		want   int
	}{
		{"", "abc", 3},
		{"abc", "", 3},
		{"calc", "calc", 0},
		{"calc", "Calc", 0}, // case-insensitive
		{"kitten", "sitting", 3},
	}

	for _, tt := range tests {
		if got := LevenshteinDistance(tt.s1, tt.s2); got != tt.want {
			t.Errorf("LevenshteinDistance(%q, %q) = %d, want %d", tt.s1, tt.s2, got, tt.want)
		}
	}
}

func TestEntryFilter_Matches(t *testing.T) {
	tests := []struct {
		name    string
		filter  EntryFilter
		tableID string
		plain   string
		want    bool
		wantErr bool
	}{
		{
			name:    "empty filter matches",
			filter:  EntryFilter{},
			tableID: "calc",
			plain:   "a\tb\n",
			want:    true,
		},
		{
			name:    "table regex match",
			filter:  EntryFilter{TableRegex: "^calc$"},
			tableID: "calc",
			want:    true,
		},
		{
			name:    "table regex mismatch",
			filter:  EntryFilter{TableRegex: "^results$"},
			tableID: "calc",
			want:    false,
		},
		{
			name:    "invalid regex",
			filter:  EntryFilter{TableRegex: "[("},
			tableID: "calc",
			wantErr: true,
		},
		{
			name:    "fuzzy table id",
			filter:  EntryFilter{TableFuzzy: "clc"},
			tableID: "calc",
			want:    true,
		},
		{
			name:    "payload contains",
			filter:  EntryFilter{Contains: "10.0.0"},
			tableID: "calc",
			plain:   "10.0.0.0/24\t254\n",
			want:    true,
		},
		{
			name:    "payload does not contain",
			filter:  EntryFilter{Contains: "192.168"},
			tableID: "calc",
			plain:   "10.0.0.0/24\t254\n",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.filter.Matches(tt.tableID, tt.plain)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Matches() should return an error")
				}
				if !strings.Contains(err.Error(), "invalid regex pattern") {
					t.Errorf("error %q should come from the string filter", err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("Matches() returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
