package slog_test

import (
	"bytes"
	"log/slog"
	"testing"
)

// newLogger returns a debug-level text logger writing into a buffer.
func newLogger(t *testing.T) (*slog.Logger, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}
