package clipboard

import (
	"fmt"
	"os/exec"
	"strings"
)

// fallbackTools maps a configurable tool name to its argv. The order in
// DefaultFallbackOrder is a preference, not a retry chain: once a tool is
// found on PATH its result is final.
var fallbackTools = map[string][]string{
	"wl-copy":  {"wl-copy"},
	"xclip":    {"xclip", "-selection", "clipboard"},
	"xsel":     {"xsel", "--clipboard", "--input"},
	"pbcopy":   {"pbcopy"},
	"clip.exe": {"clip.exe"},
}

// DefaultFallbackOrder is the tool preference used when none is configured.
var DefaultFallbackOrder = []string{"wl-copy", "xclip", "xsel", "pbcopy", "clip.exe"}

// FallbackCopy pipes the plain-text payload into the first available
// external copy tool. This is the terminal path: a failure here is reported
// to the user, there is nothing further to try.
func FallbackCopy(plain string) error {
	return FallbackCopyWith(nil, plain)
}

// FallbackCopyWith is FallbackCopy with an explicit tool preference order.
// An empty order means DefaultFallbackOrder; unrecognized names are skipped.
func FallbackCopyWith(order []string, plain string) error {
	if len(order) == 0 {
		order = DefaultFallbackOrder
	}

	for _, name := range order {
		argv, ok := fallbackTools[name]
		if !ok {
			continue
		}
		path, err := exec.LookPath(argv[0])
		if err != nil {
			continue
		}

		cmd := exec.Command(path, argv[1:]...)
		cmd.Stdin = strings.NewReader(plain)
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("clipboard: %s failed: %w", name, err)
		}
		return nil
	}

	return fmt.Errorf("clipboard: no copy tool available (tried %s)", strings.Join(order, ", "))
}
