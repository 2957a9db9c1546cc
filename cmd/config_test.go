package cmd

import (
	"testing"

	"tabclip/pkg/config"
)

func TestApplyConfigSet(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
		check   func(*config.Config) bool
	}{
		{
			name:  "table id",
			key:   "table.id",
			value: "results",
			check: func(c *config.Config) bool { return c.Table.ID == "results" },
		},
		{
			name:  "exclude markers list",
			key:   "table.exclude_markers",
			value: "split, join ,noise",
			check: func(c *config.Config) bool {
				return len(c.Table.ExcludeMarkers) == 3 && c.Table.ExcludeMarkers[2] == "noise"
			},
		},
		{
			name:  "fallback tools list",
			key:   "clipboard.fallback_tools",
			value: "wl-copy,xsel",
			check: func(c *config.Config) bool {
				return len(c.Clipboard.FallbackTools) == 2 && c.Clipboard.FallbackTools[0] == "wl-copy"
			},
		},
		{
			name:  "visible ms",
			key:   "notify.visible_ms",
			value: "1500",
			check: func(c *config.Config) bool { return c.Notify.VisibleMs == 1500 },
		},
		{
			name:    "negative visible ms rejected",
			key:     "notify.visible_ms",
			value:   "-5",
			wantErr: true,
		},
		{
			name:    "non-numeric fade ms rejected",
			key:     "notify.fade_ms",
			value:   "soon",
			wantErr: true,
		},
		{
			name:  "notify disabled",
			key:   "notify.disabled",
			value: "true",
			check: func(c *config.Config) bool { return c.Notify.Disabled },
		},
		{
			name:  "history path",
			key:   "history.path",
			value: "/tmp/exports.db",
			check: func(c *config.Config) bool { return c.History.Path == "/tmp/exports.db" },
		},
		{
			name:    "bad bool rejected",
			key:     "history.disabled",
			value:   "maybe",
			wantErr: true,
		},
		{
			name:    "unknown key rejected",
			key:     "table.color",
			value:   "red",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			err := applyConfigSet(cfg, tt.key, tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatal("applyConfigSet() should return an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("applyConfigSet() returned error: %v", err)
			}
			if !tt.check(cfg) {
				t.Errorf("config not updated for key %s: %+v", tt.key, cfg)
			}
		})
	}
}
