// Package export orchestrates one table-to-clipboard operation: snapshot
// the source table into a private host, sanitize the clone, serialize it to
// HTML and plain text, publish both to the clipboard, and surface the
// outcome as a banner. The source document is never touched and the host is
// released on every exit path.
package export

import (
	"context"
	"fmt"

	"tabclip/pkg/clipboard"
	"tabclip/pkg/errors"
	"tabclip/pkg/logger"
	"tabclip/pkg/notify"
	"tabclip/pkg/sanitize"
	"tabclip/pkg/serialize"
	"tabclip/pkg/table"

	"golang.org/x/net/html"
)

// Publisher writes the payload to the system clipboard. WriteMultiFormat is
// the primary path; FallbackCopy is the terminal legacy path taken when the
// primary one is unavailable or rejected.
type Publisher interface {
	WriteMultiFormat(html, plain string) error
	FallbackCopy(plain string) error
}

// Banner surfaces the outcome to the user.
type Banner interface {
	Show(message string, kind notify.Kind)
}

// Recorder persists a successful export. Implemented by history.Store.
type Recorder interface {
	Record(ctx context.Context, tableID, html, plain string) (string, error)
}

// Result carries the payload of a completed export for preview or file
// output. The clipboard already holds both representations.
type Result struct {
	HTML          string
	Plain         string
	Substitutions int
	HistoryID     string
}

// Exporter runs export operations against a parsed document. Each Export
// call is independent; the only state shared between calls is the banner
// slot and the untouched document.
type Exporter struct {
	Doc     *html.Node
	TableID string
	Markers []string
	Pub     Publisher
	Notify  Banner
	History Recorder

	// sanitizeFn is the sanitize step, swappable in tests.
	sanitizeFn func(*html.Node) int
	// hostHook observes the freshly created host, for tests.
	hostHook func(*Host)
}

// New returns an Exporter over doc using the system clipboard.
func New(doc *html.Node, tableID string) *Exporter {
	return &Exporter{
		Doc:     doc,
		TableID: tableID,
		Pub:     SystemPublisher{},
	}
}

// Export performs one complete export attempt. Failures are surfaced on the
// banner and returned as coded errors; nothing panics out of this method.
func (e *Exporter) Export(ctx context.Context) (res *Result, err error) {
	src := table.FindByID(e.Doc, e.TableID)
	if src == nil {
		err = errors.MissingSourceError(e.TableID)
		e.show(err.Error(), notify.KindError)
		return nil, err
	}

	host, hostErr := NewHost(src)
	if hostErr != nil {
		err = errors.FileError("failed to stage export", hostErr)
		e.show(errors.ErrMsgCopyFailed, notify.KindError)
		return nil, err
	}
	if e.hostHook != nil {
		e.hostHook(host)
	}
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = errors.NewWithError(errors.ExitCodeGeneral,
				errors.ErrMsgCopyFailed, fmt.Errorf("panic: %v", r))
			e.show(errors.ErrMsgCopyFailed, notify.KindError)
		}
		if relErr := host.Release(); relErr != nil {
			logger.Warn().Err(relErr).Msg("failed to release export host")
		}
	}()

	sanitizeFn := e.sanitizeFn
	if sanitizeFn == nil {
		sanitizeFn = sanitize.Inputs
	}
	substitutions := sanitizeFn(host.Clone)

	markup, renderErr := serialize.ToMarkup(host.Clone)
	if renderErr != nil {
		err = errors.NewWithError(errors.ExitCodeGeneral, errors.ErrMsgCopyFailed, renderErr)
		e.show(errors.ErrMsgCopyFailed, notify.KindError)
		return nil, err
	}
	plain := serialize.ToPlainText(host.Clone, e.Markers)
	htmlPayload := clipboard.WrapHTML(markup)

	// Staged payloads back the detached host for the duration of publish;
	// they disappear with the host.
	if _, stageErr := host.Stage("payload.html", []byte(htmlPayload)); stageErr != nil {
		logger.Debug().Err(stageErr).Msg("could not stage html payload")
	}
	if _, stageErr := host.Stage("payload.txt", []byte(plain)); stageErr != nil {
		logger.Debug().Err(stageErr).Msg("could not stage plain payload")
	}

	if pubErr := e.Pub.WriteMultiFormat(htmlPayload, plain); pubErr != nil {
		logger.Debug().Err(pubErr).Msg("primary clipboard write failed, taking fallback")
		if fbErr := e.Pub.FallbackCopy(plain); fbErr != nil {
			err = errors.ClipboardError(fbErr)
			e.show(errors.ErrMsgCopyFailed, notify.KindError)
			return nil, err
		}
	}

	res = &Result{HTML: htmlPayload, Plain: plain, Substitutions: substitutions}

	if e.History != nil {
		id, recErr := e.History.Record(ctx, e.TableID, htmlPayload, plain)
		if recErr != nil {
			logger.Warn().Err(recErr).Msg("failed to record export history")
		} else {
			res.HistoryID = id
		}
	}

	e.show("Table copied to clipboard", notify.KindSuccess)
	return res, nil
}

func (e *Exporter) show(message string, kind notify.Kind) {
	if e.Notify != nil {
		e.Notify.Show(message, kind)
	}
}

// SystemPublisher publishes through the real system clipboard.
type SystemPublisher struct {
	// FallbackTools overrides the legacy tool preference order.
	FallbackTools []string
	// PlainOnly skips the HTML representation entirely.
	PlainOnly bool
}

func (p SystemPublisher) WriteMultiFormat(html, plain string) error {
	if p.PlainOnly {
		return clipboard.WritePlain(plain)
	}
	return clipboard.WriteMultiFormat(html, plain)
}

func (p SystemPublisher) FallbackCopy(plain string) error {
	return clipboard.FallbackCopyWith(p.FallbackTools, plain)
}
