package export

import (
	"os"
	"path/filepath"
	"sync"

	"tabclip/pkg/table"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Host owns the working clone for one export operation: a detached
// container element holding the deep copy of the source table, plus a
// staging directory for payload files. It is released exactly once per
// operation, on every exit path.
type Host struct {
	// Container is the detached element the clone hangs off. It never
	// joins the source document.
	Container *html.Node
	// Clone is the working copy of the source table.
	Clone *html.Node

	dir     string
	release sync.Once
}

// NewHost deep-clones src into a fresh detached container and creates the
// staging directory.
func NewHost(src *html.Node) (*Host, error) {
	dir, err := os.MkdirTemp("", "tabclip-")
	if err != nil {
		return nil, err
	}

	container := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Div,
		Data:     "div",
		Attr: []html.Attribute{
			{Key: "aria-hidden", Val: "true"},
			{Key: "style", Val: "position:absolute;left:-99999px;top:0"},
		},
	}
	clone := table.Clone(src)
	container.AppendChild(clone)

	return &Host{Container: container, Clone: clone, dir: dir}, nil
}

// Dir returns the staging directory path.
func (h *Host) Dir() string {
	return h.dir
}

// Stage writes a payload file into the staging directory and returns its
// path.
func (h *Host) Stage(name string, data []byte) (string, error) {
	path := filepath.Join(h.dir, name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", err
	}
	return path, nil
}

// Release detaches the clone and removes the staging directory. Safe to
// call more than once; only the first call does anything.
func (h *Host) Release() error {
	var err error
	h.release.Do(func() {
		if h.Clone != nil && h.Clone.Parent == h.Container {
			h.Container.RemoveChild(h.Clone)
		}
		err = os.RemoveAll(h.dir)
	})
	return err
}
