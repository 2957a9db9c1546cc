//go:build linux

package clipboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"tabclip/pkg/clipboard/internal/wayland"

	atotto "github.com/atotto/clipboard"
)

// ownerReadyTimeout bounds how long the parent waits for the detached owner
// to confirm it holds the selection.
const ownerReadyTimeout = 3 * time.Second

// WriteMultiFormat copies the payload to the clipboard as both HTML and
// plain text. On Wayland it spawns a background clipboard-owner process
// serving both MIME types; on X11 only the plain representation can be
// offered natively. Returns ErrUnavailable when no native path exists at
// all.
func WriteMultiFormat(html, plain string) error {
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return spawnClipboardOwner(html, plain)
	}
	if atotto.Unsupported {
		return ErrUnavailable
	}
	// X11: plain text only.
	return atotto.WriteAll(plain)
}

func spawnClipboardOwner(html, plain string) error {
	payload, err := json.Marshal(struct{ HTML, Plain string }{html, plain})
	if err != nil {
		return err
	}

	// Readiness pipe: the owner writes one byte once it holds the
	// selection. A claim rejected by the compositor (no data-control
	// support, protocol error) closes the pipe without the byte, which the
	// caller turns into a fallback.
	r, w, err := os.Pipe()
	if err != nil {
		return err
	}
	defer r.Close()

	// Re-exec this binary as a daemonised subprocess.
	cmd := exec.Command(os.Args[0], "__clipboard-serve")
	cmd.Stdin = bytes.NewReader(payload)
	cmd.ExtraFiles = []*os.File{w} // fd 3 in the child
	// Detach from the parent's process group so the owner survives parent exit.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		w.Close()
		return err
	}
	w.Close() // the child holds the only write end now

	return awaitOwnerReady(r, ownerReadyTimeout)
}

// awaitOwnerReady blocks until the owner signals that the selection claim
// succeeded, or reports an error when the owner exits or stalls without
// claiming it.
func awaitOwnerReady(r *os.File, timeout time.Duration) error {
	if err := r.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return err
	}

	buf := make([]byte, 1)
	n, err := r.Read(buf)
	if n == 1 {
		return nil
	}
	if err == io.EOF {
		return fmt.Errorf("clipboard: owner exited before claiming the selection")
	}
	if err != nil {
		return fmt.Errorf("clipboard: owner readiness: %w", err)
	}
	return fmt.Errorf("clipboard: owner readiness: empty read")
}

// ServeClipboard runs the Wayland clipboard owner for the __clipboard-serve
// hidden command, blocking until another process takes the selection. Once
// the selection claim is confirmed it signals the parent on the readiness
// pipe (fd 3, when present).
func ServeClipboard(html, plain string) error {
	formats := map[string][]byte{
		"text/html":                []byte(html),
		"text/plain;charset=utf-8": []byte(plain),
		"text/plain":               []byte(plain),
		"UTF8_STRING":              []byte(plain),
		"STRING":                   []byte(plain),
	}

	ready := os.NewFile(3, "ready")
	return wayland.Serve(formats, func() {
		if ready != nil {
			ready.Write([]byte{1}) //nolint:errcheck
			ready.Close()          //nolint:errcheck
		}
	})
}
