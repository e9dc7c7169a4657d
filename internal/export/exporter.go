// Package export writes the serialized note collection to its destination.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// FileExporter replaces <dir>/<name> with each exported blob.
type FileExporter struct {
	dir  string
	name string
	mu   sync.Mutex
}

func NewFileExporter(dir, name string) *FileExporter {
	return &FileExporter{dir: dir, name: name}
}

// Export writes blob through a temp file and a rename, so the export file is
// never left half written.
func (e *FileExporter) Export(blob []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	return writeAtomic(e.Path(), blob)
}

// ReadBack returns the current export file contents.
func (e *FileExporter) ReadBack() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, err := os.ReadFile(e.Path())
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", e.Path(), err)
	}
	return b, nil
}

func (e *FileExporter) Path() string {
	return filepath.Join(e.dir, e.name)
}

func (e *FileExporter) Location() string {
	return e.Path()
}

// WriterExporter streams the blob to w, e.g. stdout.
type WriterExporter struct {
	w    io.Writer
	name string
}

func NewWriterExporter(w io.Writer, name string) *WriterExporter {
	return &WriterExporter{w: w, name: name}
}

func (e *WriterExporter) Export(blob []byte) error {
	_, err := e.w.Write(blob)
	return err
}

func (e *WriterExporter) Location() string {
	return e.name
}

func writeAtomic(path string, blob []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("error replacing %s: %w", path, err)
	}
	return nil
}
