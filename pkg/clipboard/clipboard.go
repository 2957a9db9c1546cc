// Package clipboard publishes the export payload to the system clipboard in
// two representations at once: text/html for rich-paste targets and
// text/plain for editors and spreadsheets. On Linux/Wayland a detached
// clipboard-owner process serves both MIME types simultaneously; elsewhere
// the native plain-text path is used. A legacy fallback pipes the plain text
// through an external copy tool when the native path is unavailable or
// rejected.
package clipboard

import (
	"errors"

	atotto "github.com/atotto/clipboard"
)

// ErrUnavailable reports that no native multi-format clipboard capability
// exists on this platform. Callers recover by taking the fallback path.
var ErrUnavailable = errors.New("clipboard: native clipboard capability unavailable")

// WritePlain copies only the plain-text representation, skipping the
// multi-format path entirely.
func WritePlain(plain string) error {
	if atotto.Unsupported {
		return ErrUnavailable
	}
	return atotto.WriteAll(plain)
}

// WrapHTML wraps a markup fragment into a minimal document for the
// text/html clipboard representation.
func WrapHTML(fragment string) string {
	return "<html><body>" + fragment + "</body></html>"
}
