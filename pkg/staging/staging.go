// Package staging holds inbound upload streams in a scoped temporary file
// between receipt and the forward to blob storage. Callers must defer Release
// so the temporary file is removed on every exit path.
package staging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type File struct {
	path     string
	name     string
	released bool
}

// Stage copies the full stream into a temporary file, preserving the original
// extension so downstream naming keeps the media suffix.
func Stage(r io.Reader, originalName string) (*File, error) {
	tmp, err := os.CreateTemp("", "snapfeed-*"+filepath.Ext(originalName))
	if err != nil {
		return nil, fmt.Errorf("failed to create staging file: %w", err)
	}

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to stage upload stream: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to finalize staging file: %w", err)
	}

	return &File{path: tmp.Name(), name: originalName}, nil
}

// Name returns the client-supplied file name, not the temporary path.
func (f *File) Name() string {
	return f.name
}

func (f *File) Path() string {
	return f.path
}

// Open re-reads the staged content. The caller closes the returned handle.
func (f *File) Open() (*os.File, error) {
	if f.released {
		return nil, fmt.Errorf("staging file already released")
	}
	return os.Open(f.path)
}

// Release deletes the temporary file. It is idempotent so a defer and an
// explicit call cannot double-remove.
func (f *File) Release() {
	if f.released {
		return
	}
	f.released = true
	os.Remove(f.path)
}
