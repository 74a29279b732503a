// Package artifact abstracts where the reference dataset and the fitted model
// exports are read from.
package artifact

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var ErrNotExist = errors.New("artifact does not exist")

// Source opens named artifacts for reading.
type Source interface {
	Open(name string) (io.ReadCloser, error)
}

// Dir reads artifacts from the filesystem. Relative names are resolved against Root.
type Dir struct {
	Root string
}

func NewDir(root string) *Dir {
	return &Dir{Root: root}
}

func (d *Dir) Open(name string) (io.ReadCloser, error) {
	path := name
	if !filepath.IsAbs(path) && d.Root != "" {
		path = filepath.Join(d.Root, name)
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, path)
		}
		return nil, fmt.Errorf("open artifact %s: %w", path, err)
	}
	return f, nil
}
