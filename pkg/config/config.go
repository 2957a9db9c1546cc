package config

import (
	"os"
	"path/filepath"
	"strconv"

	"tabclip/pkg/errors"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultTableID is the element id the exporter looks up when no
	// override is given.
	DefaultTableID = "calc"

	// Banner timing: visible phase, then a short dim-out before erase.
	DefaultNotifyVisibleMs = 3000
	DefaultNotifyFadeMs    = 300
)

// DefaultExcludeMarkers are the class tokens marking structural control
// cells (row split/join handles) that carry no data and are excluded from
// the plain-text serialization.
var DefaultExcludeMarkers = []string{"split", "join"}

// Config holds the complete tabclip configuration.
type Config struct {
	Table     TableConfig     `yaml:"table"`
	Clipboard ClipboardConfig `yaml:"clipboard"`
	Notify    NotifyConfig    `yaml:"notify"`
	History   HistoryConfig   `yaml:"history"`
}

type TableConfig struct {
	ID             string   `yaml:"id"`
	ExcludeMarkers []string `yaml:"exclude_markers"`
}

type ClipboardConfig struct {
	// FallbackTools is the preference order for the legacy copy path.
	// Recognized names: wl-copy, xclip, xsel, pbcopy, clip.exe.
	FallbackTools []string `yaml:"fallback_tools"`
}

type NotifyConfig struct {
	VisibleMs int  `yaml:"visible_ms"`
	FadeMs    int  `yaml:"fade_ms"`
	Disabled  bool `yaml:"disabled"`
}

type HistoryConfig struct {
	Path     string `yaml:"path"`
	Disabled bool   `yaml:"disabled"`
}

// Load loads the configuration from the default path, applying environment
// overrides and defaults. A missing config file is not an error.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, errors.NewWithError(errors.ExitCodeConfig, "failed to get config path", err)
	}
	return loadFromPath(configPath)
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "tabclip", "config.yaml"), nil
}

// LoadFile loads only the config file, without environment overrides or
// defaults applied. Callers that rewrite the file use this so ambient state
// is not baked into it. A missing file yields a zero config.
func LoadFile() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, errors.NewWithError(errors.ExitCodeConfig, "failed to get config path", err)
	}

	cfg := &Config{}
	if err := loadConfigFile(configPath, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultHistoryPath returns the default location of the export history db.
func DefaultHistoryPath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "tabclip", "history.db"), nil
}

// Save saves the configuration to the default path.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return errors.NewWithError(errors.ExitCodeFileOperation, "failed to create config directory", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.NewWithError(errors.ExitCodeConfig, "failed to marshal config", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return errors.NewWithError(errors.ExitCodeFileOperation, "failed to write config file", err)
	}

	return nil
}

func loadFromPath(configPath string) (*Config, error) {
	cfg := &Config{}

	if err := loadConfigFile(configPath, cfg); err != nil {
		return nil, err
	}

	applyEnvironmentOverrides(cfg)
	applyDefaults(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadConfigFile reads and parses the config file from the given path
func loadConfigFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		// File doesn't exist, that's okay - defaults and env vars cover it
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewWithError(errors.ExitCodeFileOperation, "failed to read config file", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.NewWithError(errors.ExitCodeConfig, "failed to parse config file", err)
	}

	return nil
}

// applyEnvironmentOverrides applies environment variable overrides to the config
func applyEnvironmentOverrides(cfg *Config) {
	if v := os.Getenv("TABCLIP_TABLE_ID"); v != "" {
		cfg.Table.ID = v
	}
	if v := os.Getenv("TABCLIP_HISTORY_PATH"); v != "" {
		cfg.History.Path = v
	}
	if v := os.Getenv("TABCLIP_HISTORY_DISABLED"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			cfg.History.Disabled = parsed
		}
	}
	if v := os.Getenv("TABCLIP_NOTIFY_DISABLED"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			cfg.Notify.Disabled = parsed
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Table.ID == "" {
		cfg.Table.ID = DefaultTableID
	}
	if len(cfg.Table.ExcludeMarkers) == 0 {
		cfg.Table.ExcludeMarkers = append([]string(nil), DefaultExcludeMarkers...)
	}
	if cfg.Notify.VisibleMs == 0 {
		cfg.Notify.VisibleMs = DefaultNotifyVisibleMs
	}
	if cfg.Notify.FadeMs == 0 {
		cfg.Notify.FadeMs = DefaultNotifyFadeMs
	}
	if cfg.History.Path == "" {
		if p, err := DefaultHistoryPath(); err == nil {
			cfg.History.Path = p
		}
	}
}

// validateConfig ensures the configuration is usable
func validateConfig(cfg *Config) error {
	if cfg.Table.ID == "" {
		return errors.ConfigError("table id not configured. Set table.id in the config file or TABCLIP_TABLE_ID")
	}
	if cfg.Notify.VisibleMs < 0 || cfg.Notify.FadeMs < 0 {
		return errors.ConfigError("notify durations must not be negative")
	}
	return nil
}
