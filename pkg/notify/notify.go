// Package notify renders a transient status banner on the terminal. At most
// one banner is visible at a time: showing a new one tears the prior banner
// down first. A banner dismisses itself in two timed phases, a visible
// phase followed by a short dimmed fade before the line is erased.
package notify

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

type Kind int

const (
	KindSuccess Kind = iota
	KindError
)

const (
	DefaultVisible = 3000 * time.Millisecond
	DefaultFade    = 300 * time.Millisecond
)

// eraseLine returns the cursor to column 0 and clears the line.
const eraseLine = "\r\x1b[2K"

type banner struct {
	message   string
	kind      Kind
	fadeTimer *time.Timer
	dropTimer *time.Timer
}

// Notifier owns the single banner slot. The zero value is not usable; call
// New or NewWithOptions.
type Notifier struct {
	mu      sync.Mutex
	w       io.Writer
	visible time.Duration
	fade    time.Duration
	active  *banner

	success *color.Color
	failure *color.Color
	dim     *color.Color
}

// New returns a Notifier writing to stderr with the default timings.
func New() *Notifier {
	return NewWithOptions(os.Stderr, DefaultVisible, DefaultFade)
}

// NewWithOptions returns a Notifier with an explicit writer and phase
// durations. Tests shrink the durations and capture the writer.
func NewWithOptions(w io.Writer, visible, fade time.Duration) *Notifier {
	return &Notifier{
		w:       w,
		visible: visible,
		fade:    fade,
		success: color.New(color.FgGreen, color.Bold),
		failure: color.New(color.FgRed, color.Bold),
		dim:     color.New(color.Faint),
	}
}

// Show displays a banner, replacing any banner currently on screen. The
// banner dims after the visible duration and is erased after the fade
// duration on top of that.
func (n *Notifier) Show(message string, kind Kind) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.dropLocked()

	b := &banner{message: message, kind: kind}
	n.active = b
	n.render(b, false)

	b.fadeTimer = time.AfterFunc(n.visible, func() { n.fadeOut(b) })
}

// Active reports whether a banner is currently on screen.
func (n *Notifier) Active() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.active != nil
}

// Dismiss erases the current banner immediately, if any.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.dropLocked()
}

func (n *Notifier) fadeOut(b *banner) {
	n.mu.Lock()
	defer n.mu.Unlock()

	// A newer banner may have replaced this one in the meantime.
	if n.active != b {
		return
	}
	n.render(b, true)
	b.dropTimer = time.AfterFunc(n.fade, func() { n.drop(b) })
}

func (n *Notifier) drop(b *banner) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.active != b {
		return
	}
	fmt.Fprint(n.w, eraseLine)
	n.active = nil
}

// dropLocked stops the active banner's timers and erases its line. Callers
// hold the mutex.
func (n *Notifier) dropLocked() {
	if n.active == nil {
		return
	}
	if n.active.fadeTimer != nil {
		n.active.fadeTimer.Stop()
	}
	if n.active.dropTimer != nil {
		n.active.dropTimer.Stop()
	}
	fmt.Fprint(n.w, eraseLine)
	n.active = nil
}

func (n *Notifier) render(b *banner, faded bool) {
	c := n.success
	prefix := "✓"
	if b.kind == KindError {
		c = n.failure
		prefix = "✗"
	}
	if faded {
		c = n.dim
	}

	fmt.Fprint(n.w, eraseLine)
	c.Fprintf(n.w, "%s %s", prefix, b.message)
}
