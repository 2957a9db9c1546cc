package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"tabclip/pkg/config"
	"tabclip/pkg/errors"
	"tabclip/pkg/export"
	"tabclip/pkg/history"
	"tabclip/pkg/logger"
	"tabclip/pkg/notify"
	"tabclip/pkg/table"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	mdtable "github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"
)

var (
	exportTableID   string
	exportOutput    string
	exportNoHistory bool
	exportNoNotify  bool
	exportQuiet     bool
	exportPlainOnly bool
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Copy a table from an HTML document to the clipboard",
	Long: `Export reads an HTML document from a file (or stdin when the argument is
omitted or '-'), locates the table by id, and copies it to the clipboard as
both rich HTML and tab-separated plain text. Interactive text inputs inside
the table are replaced by their current values; structural split/join
control cells are excluded from the plain-text form.`,
	Example: `  # Copy the #calc table from a saved page
  tabclip export page.html

  # Read the document from stdin
  curl -s https://example.test/subnets | tabclip export

  # Copy a different table and keep the HTML payload in a file
  tabclip export page.html --table-id results --output payload.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := GetContext()
		defer cancel()

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		tableID := cfg.Table.ID
		if cmd.Flags().Changed("table-id") {
			tableID = exportTableID
		}

		doc, err := readDocument(args)
		if err != nil {
			return err
		}

		exp := export.New(doc, tableID)
		exp.Markers = cfg.Table.ExcludeMarkers
		exp.Pub = export.SystemPublisher{
			FallbackTools: cfg.Clipboard.FallbackTools,
			PlainOnly:     exportPlainOnly,
		}

		var notifier *notify.Notifier
		if !exportNoNotify && !cfg.Notify.Disabled {
			notifier = notify.NewWithOptions(os.Stderr,
				time.Duration(cfg.Notify.VisibleMs)*time.Millisecond,
				time.Duration(cfg.Notify.FadeMs)*time.Millisecond)
			exp.Notify = notifier
		}

		if !exportNoHistory && !cfg.History.Disabled {
			store, storeErr := history.Open(cfg.History.Path)
			if storeErr != nil {
				logger.Warn().Err(storeErr).Msg("history disabled: could not open store")
			} else {
				defer store.Close()
				exp.History = store
			}
		}

		res, err := exp.Export(ctx)
		waitForBanner(notifier, cfg)
		if err != nil {
			return err
		}

		if exportOutput != "" {
			if writeErr := os.WriteFile(exportOutput, []byte(res.HTML), 0600); writeErr != nil {
				return errors.FileError("error writing HTML payload", writeErr)
			}
			fmt.Printf("HTML payload saved to %s\n", exportOutput)
		}

		if !exportQuiet {
			fmt.Println(previewMarkdown(res.HTML, res.Plain))
		}

		return nil
	},
}

func readDocument(args []string) (*html.Node, error) {
	var r io.Reader = os.Stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, errors.FileError("error reading input document", err)
		}
		defer f.Close()
		r = f
	}

	doc, err := table.Parse(r)
	if err != nil {
		return nil, errors.NewWithError(errors.ExitCodeValidation, errors.ErrMsgDocumentParse, err)
	}
	return doc, nil
}

// previewMarkdown renders the copied table as Markdown for the terminal.
// When conversion fails the plain-text form is shown instead.
func previewMarkdown(html, plain string) string {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			mdtable.NewTablePlugin(),
		),
	)

	markdown, err := conv.ConvertString(html)
	if err != nil {
		return plain
	}
	return strings.TrimSpace(markdown)
}

// waitForBanner keeps the process alive until the outcome banner has played
// out its visible and fade phases.
func waitForBanner(n *notify.Notifier, cfg *config.Config) {
	if n == nil {
		return
	}
	time.Sleep(time.Duration(cfg.Notify.VisibleMs+cfg.Notify.FadeMs)*time.Millisecond + 50*time.Millisecond)
}

func init() {
	exportCmd.Flags().StringVar(&exportTableID, "table-id", config.DefaultTableID, "Id of the table element to export")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "Also write the HTML clipboard payload to this file")
	exportCmd.Flags().BoolVar(&exportNoHistory, "no-history", false, "Do not record this export in the history database")
	exportCmd.Flags().BoolVar(&exportNoNotify, "no-notify", false, "Suppress the outcome banner")
	exportCmd.Flags().BoolVar(&exportPlainOnly, "plain-only", false, "Copy only the tab-separated plain text, no HTML representation")
	exportCmd.Flags().BoolVarP(&exportQuiet, "quiet", "q", false, "Suppress the Markdown preview on stdout")
}
