package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"tabclip/pkg/config"
	"tabclip/pkg/errors"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Config prints the effective configuration after defaults, the config file
and TABCLIP_* environment overrides have been applied, together with the
config file location.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}

		exists := "missing, defaults in effect"
		if _, statErr := os.Stat(path); statErr == nil {
			exists = "present"
		}
		fmt.Printf("# config file: %s (%s)\n", path, exists)
		fmt.Print(string(data))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value and write the config file",
	Long: `Set updates one key in the config file. List values are comma-separated.

Keys:
  table.id                  id of the table element to export
  table.exclude_markers     class tokens excluded from plain text (comma list)
  clipboard.fallback_tools  legacy copy tool preference (comma list)
  notify.visible_ms         banner visible phase in milliseconds
  notify.fade_ms            banner fade phase in milliseconds
  notify.disabled           suppress the outcome banner (true/false)
  history.path              history database location
  history.disabled          do not record exports (true/false)`,
	Example: `  tabclip config set table.id results
  tabclip config set notify.visible_ms 1500
  tabclip config set clipboard.fallback_tools wl-copy,xsel`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Only the file's own contents are rewritten; env overrides and
		// defaults never end up persisted.
		cfg, err := config.LoadFile()
		if err != nil {
			return err
		}
		if err := applyConfigSet(cfg, args[0], args[1]); err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Printf("Set %s = %s\n", args[0], args[1])
		return nil
	},
}

func applyConfigSet(cfg *config.Config, key, value string) error {
	switch key {
	case "table.id":
		cfg.Table.ID = value
	case "table.exclude_markers":
		cfg.Table.ExcludeMarkers = splitList(value)
	case "clipboard.fallback_tools":
		cfg.Clipboard.FallbackTools = splitList(value)
	case "notify.visible_ms":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return errors.ValidationError("notify.visible_ms must be a non-negative integer")
		}
		cfg.Notify.VisibleMs = n
	case "notify.fade_ms":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return errors.ValidationError("notify.fade_ms must be a non-negative integer")
		}
		cfg.Notify.FadeMs = n
	case "notify.disabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.ValidationError("notify.disabled must be true or false")
		}
		cfg.Notify.Disabled = b
	case "history.path":
		cfg.History.Path = value
	case "history.disabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.ValidationError("history.disabled must be true or false")
		}
		cfg.History.Disabled = b
	default:
		return errors.ValidationError(fmt.Sprintf("unknown config key '%s'", key))
	}
	return nil
}

func splitList(value string) []string {
	parts := []string{}
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
