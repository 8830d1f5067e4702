// Package fs provides file-based export of rendered articles.
package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/clanko"
)

// Ensure Writer implements clanko.Exporter at compile time.
var _ clanko.Exporter = (*Writer)(nil)

// Writer writes rendered articles as markdown files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// Export writes content to <baseDir>/<name>.md and returns the path.
// The file is written to <name>.md.tmp first and renamed into place, so an
// interrupted run never leaves a truncated article behind.
func (w *Writer) Export(ctx context.Context, content, name string) (string, error) {
	if err := clanko.ValidateName(name); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", clanko.Errorf(clanko.EINTERNAL, "failed to create output directory: %v", err)
	}

	path := filepath.Join(w.baseDir, name+".md")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0644); err != nil {
		return "", clanko.Errorf(clanko.EINTERNAL, "failed to write %s: %v", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", clanko.Errorf(clanko.EINTERNAL, "failed to move %s into place: %v", path, err)
	}

	return path, nil
}
