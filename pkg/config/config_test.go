package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TABCLIP_TABLE_ID", "")
	t.Setenv("TABCLIP_HISTORY_PATH", "")
	t.Setenv("TABCLIP_HISTORY_DISABLED", "")
	t.Setenv("TABCLIP_NOTIFY_DISABLED", "")
	// Setenv with "" still leaves the key present; os.Getenv returns "" so
	// the overrides are inert, which is what these tests need.
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := loadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("loadFromPath() with missing file returned error: %v", err)
	}

	if cfg.Table.ID != DefaultTableID {
		t.Errorf("Table.ID = %q, want %q", cfg.Table.ID, DefaultTableID)
	}
	if len(cfg.Table.ExcludeMarkers) != 2 {
		t.Errorf("ExcludeMarkers = %v, want split+join", cfg.Table.ExcludeMarkers)
	}
	if cfg.Notify.VisibleMs != DefaultNotifyVisibleMs {
		t.Errorf("Notify.VisibleMs = %d, want %d", cfg.Notify.VisibleMs, DefaultNotifyVisibleMs)
	}
	if cfg.Notify.FadeMs != DefaultNotifyFadeMs {
		t.Errorf("Notify.FadeMs = %d, want %d", cfg.Notify.FadeMs, DefaultNotifyFadeMs)
	}
}

func TestLoad_FromFile(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `table:
  id: results
  exclude_markers:
    - noise
notify:
  visible_ms: 1500
history:
  disabled: true
`)

	cfg, err := loadFromPath(path)
	if err != nil {
		t.Fatalf("loadFromPath() returned error: %v", err)
	}

	if cfg.Table.ID != "results" {
		t.Errorf("Table.ID = %q, want 'results'", cfg.Table.ID)
	}
	if len(cfg.Table.ExcludeMarkers) != 1 || cfg.Table.ExcludeMarkers[0] != "noise" {
		t.Errorf("ExcludeMarkers = %v, want [noise]", cfg.Table.ExcludeMarkers)
	}
	if cfg.Notify.VisibleMs != 1500 {
		t.Errorf("Notify.VisibleMs = %d, want 1500", cfg.Notify.VisibleMs)
	}
	if cfg.Notify.FadeMs != DefaultNotifyFadeMs {
		t.Errorf("Notify.FadeMs = %d, want default %d", cfg.Notify.FadeMs, DefaultNotifyFadeMs)
	}
	if !cfg.History.Disabled {
		t.Error("History.Disabled should be true")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TABCLIP_TABLE_ID", "env-table")
	t.Setenv("TABCLIP_HISTORY_DISABLED", "true")

	path := writeConfig(t, `table:
  id: file-table
`)

	cfg, err := loadFromPath(path)
	if err != nil {
		t.Fatalf("loadFromPath() returned error: %v", err)
	}

	if cfg.Table.ID != "env-table" {
		t.Errorf("Table.ID = %q, env override should win", cfg.Table.ID)
	}
	if !cfg.History.Disabled {
		t.Error("History.Disabled should be set from env")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, "table: [unclosed")

	if _, err := loadFromPath(path); err == nil {
		t.Fatal("loadFromPath() should fail on invalid YAML")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	clearEnv(t)
	// os.UserConfigDir honors XDG_CONFIG_HOME on Linux, keeping the write
	// inside the test sandbox.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{}
	cfg.Table.ID = "results"
	cfg.Notify.VisibleMs = 1200

	if err := Save(cfg); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	loaded, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile() returned error: %v", err)
	}
	if loaded.Table.ID != "results" {
		t.Errorf("Table.ID = %q, want 'results'", loaded.Table.ID)
	}
	if loaded.Notify.VisibleMs != 1200 {
		t.Errorf("Notify.VisibleMs = %d, want 1200", loaded.Notify.VisibleMs)
	}
	// The saved file carries only what was set, not defaults.
	if loaded.History.Path != "" {
		t.Errorf("History.Path = %q, should not be persisted", loaded.History.Path)
	}
}

func TestLoad_NegativeDurations(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `notify:
  visible_ms: -5
`)

	if _, err := loadFromPath(path); err == nil {
		t.Fatal("loadFromPath() should reject negative durations")
	}
}
