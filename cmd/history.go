package cmd

import (
	"database/sql"
	"fmt"
	"strings"

	"tabclip/pkg/clipboard"
	"tabclip/pkg/config"
	"tabclip/pkg/errors"
	"tabclip/pkg/filter"
	"tabclip/pkg/history"
	"tabclip/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	historyLimit      int
	historyTableRegex string
	historyTableFuzzy string
	historyContains   string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and replay past exports",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded exports",
	Example: `  # Show the ten most recent exports
  tabclip history list --limit 10

  # Machine-readable listing
  tabclip history list --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := GetContext()
		defer cancel()

		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.List(ctx, historyLimit)
		if err != nil {
			return errors.WrapWithCode(err, errors.ExitCodeGeneral, errors.ErrMsgHistoryFailed)
		}

		entryFilter := &filter.EntryFilter{
			TableRegex: historyTableRegex,
			TableFuzzy: historyTableFuzzy,
			Contains:   historyContains,
		}
		filtered := entries[:0]
		for _, e := range entries {
			ok, matchErr := entryFilter.Matches(e.TableID, e.Plain)
			if matchErr != nil {
				return errors.NewWithError(errors.ExitCodeValidation, errors.ErrMsgInvalidInput, matchErr)
			}
			if ok {
				filtered = append(filtered, e)
			}
		}
		entries = filtered

		writer := NewOutputWriter(outputFormat)
		if writer.IsStructured() {
			type listed struct {
				ID        string `json:"id" yaml:"id"`
				CreatedAt string `json:"created_at" yaml:"created_at"`
				TableID   string `json:"table_id" yaml:"table_id"`
				Lines     int    `json:"lines" yaml:"lines"`
			}
			out := make([]listed, 0, len(entries))
			for _, e := range entries {
				out = append(out, listed{
					ID:        e.ID,
					CreatedAt: e.CreatedAt.Format("2006-01-02 15:04:05"),
					TableID:   e.TableID,
					Lines:     strings.Count(e.Plain, "\n"),
				})
			}
			return writer.Write(out)
		}

		if len(entries) == 0 {
			fmt.Println("No exports recorded yet.")
			return nil
		}
		fmt.Printf("%-36s  %-19s  %-10s  %s\n", "ID", "CREATED", "TABLE", "LINES")
		for _, e := range entries {
			fmt.Printf("%-36s  %-19s  %-10s  %d\n",
				e.ID, e.CreatedAt.Format("2006-01-02 15:04:05"), e.TableID, strings.Count(e.Plain, "\n"))
		}
		return nil
	},
}

var historyCopyCmd = &cobra.Command{
	Use:   "copy <id>",
	Short: "Copy a recorded export back to the clipboard",
	Long: `Copy re-publishes a past export through the same clipboard pipeline as a
fresh export: multi-format write first, legacy fallback second. The id may
be abbreviated to a unique prefix.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := GetContext()
		defer cancel()

		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		entry, err := store.Get(ctx, args[0])
		if err != nil {
			if err == sql.ErrNoRows {
				return errors.NotFoundError("Export entry")
			}
			return errors.WrapWithCode(err, errors.ExitCodeGeneral, errors.ErrMsgHistoryFailed)
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if err := clipboard.WriteMultiFormat(entry.HTML, entry.Plain); err != nil {
			logger.Debug().Err(err).Msg("primary clipboard write failed, taking fallback")
			if fbErr := clipboard.FallbackCopyWith(cfg.Clipboard.FallbackTools, entry.Plain); fbErr != nil {
				return errors.ClipboardError(fbErr)
			}
		}

		fmt.Printf("✓ Export %s copied to clipboard\n", entry.ID[:8])
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded exports",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := GetContext()
		defer cancel()

		confirmed, err := ConfirmPrompt("Delete all recorded exports")
		if err != nil {
			return err
		}
		if !confirmed {
			return errors.CancelledError("history clear")
		}

		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.Clear(ctx)
		if err != nil {
			return errors.WrapWithCode(err, errors.ExitCodeGeneral, errors.ErrMsgHistoryFailed)
		}
		fmt.Printf("Removed %d export(s).\n", n)
		return nil
	},
}

func openHistory() (*history.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ExitCodeGeneral, errors.ErrMsgHistoryFailed)
	}
	return store, nil
}

func init() {
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of entries to list (0 for all)")
	historyListCmd.Flags().StringVar(&historyTableRegex, "table-regex", "", "Filter entries by table id regex")
	historyListCmd.Flags().StringVar(&historyTableFuzzy, "table-fuzzy", "", "Filter entries by fuzzy table id match")
	historyListCmd.Flags().StringVar(&historyContains, "contains", "", "Filter entries whose plain-text payload contains this string")

	historyListCmd.MarkFlagsMutuallyExclusive("table-regex", "table-fuzzy")
}
