// Package pandoc converts rendered articles to other formats by running the
// pandoc command-line tool.
package pandoc

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fwojciec/clanko"
)

// DefaultCommand is the pandoc executable looked up on PATH.
const DefaultCommand = "pandoc"

// DefaultExtension is the output format pandoc infers from the file name.
const DefaultExtension = "pdf"

// Runner executes an external command.
type Runner func(ctx context.Context, name string, args ...string) error

// Ensure Exporter implements clanko.Exporter at compile time.
var _ clanko.Exporter = (*Exporter)(nil)

// Exporter writes the markdown to a temporary file and asks pandoc to
// convert it into <dir>/<name>.<ext>.
type Exporter struct {
	dir       string
	command   string
	extension string
	run       Runner
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithCommand sets the pandoc executable.
func WithCommand(cmd string) Option {
	return func(e *Exporter) {
		e.command = cmd
	}
}

// WithExtension sets the output extension, e.g. "pdf", "docx" or "epub".
func WithExtension(ext string) Option {
	return func(e *Exporter) {
		e.extension = strings.TrimPrefix(ext, ".")
	}
}

// WithRunner replaces the command runner.
func WithRunner(r Runner) Option {
	return func(e *Exporter) {
		e.run = r
	}
}

// NewExporter creates an Exporter writing into dir.
func NewExporter(dir string, opts ...Option) *Exporter {
	e := &Exporter{
		dir:       dir,
		command:   DefaultCommand,
		extension: DefaultExtension,
		run:       execRunner,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export converts content and returns the path of the produced file.
func (e *Exporter) Export(ctx context.Context, content, name string) (string, error) {
	if err := clanko.ValidateName(name); err != nil {
		return "", err
	}

	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", clanko.Errorf(clanko.EINTERNAL, "failed to create output directory: %v", err)
	}

	tmp, err := os.CreateTemp("", "clanko-*.md")
	if err != nil {
		return "", clanko.Errorf(clanko.EINTERNAL, "failed to create temporary file: %v", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return "", clanko.Errorf(clanko.EINTERNAL, "failed to write temporary file: %v", err)
	}
	if err := tmp.Close(); err != nil {
		return "", clanko.Errorf(clanko.EINTERNAL, "failed to write temporary file: %v", err)
	}

	out := filepath.Join(e.dir, name+"."+e.extension)
	if err := e.run(ctx, e.command, tmp.Name(), "-o", out); err != nil {
		return "", clanko.Errorf(clanko.EINTERNAL, "%s failed: %v", e.command, err)
	}

	return out, nil
}

func execRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
