package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/clanko"
	"github.com/fwojciec/clanko/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Export(t *testing.T) {
	t.Parallel()

	t.Run("writes markdown file named after slug", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		content := "---\ntitle: tesla\n---\n\nHello"

		path, err := fs.NewWriter(dir).Export(context.Background(), content, "tesla")

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "tesla.md"), path)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, content, string(data))
	})

	t.Run("leaves no temporary file behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		_, err := fs.NewWriter(dir).Export(context.Background(), "x", "a")
		require.NoError(t, err)

		_, err = os.Stat(filepath.Join(dir, "a.md.tmp"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("creates missing output directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "out", "articles")

		path, err := fs.NewWriter(dir).Export(context.Background(), "x", "a")

		require.NoError(t, err)
		assert.FileExists(t, path)
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir)

		_, err := w.Export(context.Background(), "old", "a")
		require.NoError(t, err)
		path, err := w.Export(context.Background(), "new", "a")
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})

	t.Run("rejects name with path separator", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewWriter(t.TempDir()).Export(context.Background(), "x", "../escape")

		assert.Equal(t, clanko.EINVALID, clanko.ErrorCode(err))
	})

	t.Run("respects cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fs.NewWriter(t.TempDir()).Export(ctx, "x", "a")

		require.ErrorIs(t, err, context.Canceled)
	})
}
