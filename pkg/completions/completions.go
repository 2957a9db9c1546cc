package completions

import (
	"strings"

	"tabclip/pkg/config"
	"tabclip/pkg/history"

	"github.com/spf13/cobra"
)

type Completer struct{}

func NewCompleter() *Completer {
	return &Completer{}
}

func (c *Completer) CompleteFormat(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	formats := []string{
		"table\tHuman-readable table output",
		"json\tJSON output",
		"yaml\tYAML output",
	}
	return c.filterPrefix(formats, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func (c *Completer) CompleteLogLevel(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	levels := []string{"debug", "info", "warn", "error"}
	return c.filterPrefix(levels, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// CompleteHistoryIDs completes export entry ids for 'history copy' from the
// history database. Failures complete to nothing rather than erroring.
func (c *Completer) CompleteHistoryIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := config.Load()
	if err != nil {
		return []string{}, cobra.ShellCompDirectiveNoFileComp
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return []string{}, cobra.ShellCompDirectiveNoFileComp
	}
	defer store.Close()

	entries, err := store.List(cmd.Context(), 50)
	if err != nil {
		return []string{}, cobra.ShellCompDirectiveNoFileComp
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID+"\t"+e.TableID+" "+e.CreatedAt.Format("2006-01-02 15:04"))
	}
	return c.filterPrefix(ids, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func (c *Completer) filterPrefix(items []string, prefix string) []string {
	var result []string
	for _, item := range items {
		itemName := strings.Split(item, "\t")[0]
		if strings.HasPrefix(strings.ToLower(itemName), strings.ToLower(prefix)) {
			result = append(result, item)
		}
	}
	return result
}

func RegisterCompletions(rootCmd *cobra.Command) {
	completer := NewCompleter()

	rootCmd.RegisterFlagCompletionFunc("format", completer.CompleteFormat)
	rootCmd.RegisterFlagCompletionFunc("log-level", completer.CompleteLogLevel)

	historyCopyCmd, _, _ := rootCmd.Find([]string{"history", "copy"})
	if historyCopyCmd != nil {
		historyCopyCmd.ValidArgsFunction = completer.CompleteHistoryIDs
	}
}
