//go:build !linux

package clipboard

import atotto "github.com/atotto/clipboard"

// WriteMultiFormat copies the payload to the clipboard. Outside Linux only
// the plain-text representation is written natively. Returns ErrUnavailable
// when the platform has no clipboard support.
func WriteMultiFormat(html, plain string) error {
	if atotto.Unsupported {
		return ErrUnavailable
	}
	return atotto.WriteAll(plain)
}

// ServeClipboard is only meaningful on Linux/Wayland.
func ServeClipboard(html, plain string) error {
	return nil
}
