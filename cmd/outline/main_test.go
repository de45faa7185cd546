package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, fsys afero.Fs, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd(fsys)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRunCommand(t *testing.T) {
	t.Run("Should write outlines for every matching document", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/docs/a.md", []byte("# Alpha\n\n## One\n"), 0o644))
		require.NoError(t, afero.WriteFile(fsys, "/docs/nested/b.md", []byte("# Beta\n"), 0o644))

		_, _, err := execute(t, fsys, "run", "--input", "/docs", "--output", "/out", "--pattern", "**/*.md")
		require.NoError(t, err)

		data, err := afero.ReadFile(fsys, filepath.Join("/out", "a.json"))
		require.NoError(t, err)
		doc, err := outline.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, "Alpha", doc.Title)
		assert.Len(t, doc.Outline, 2)

		exists, err := afero.Exists(fsys, filepath.Join("/out", "nested", "b.json"))
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Should fail when any document fails", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/docs/good.md", []byte("# Good\n"), 0o644))
		require.NoError(t, afero.WriteFile(fsys, "/docs/bad.txt", []byte("plain"), 0o644))

		_, _, err := execute(t, fsys, "run", "--input", "/docs", "--output", "/out", "--pattern", "*")
		require.ErrorIs(t, err, errDocumentsFailed)

		exists, err := afero.Exists(fsys, filepath.Join("/out", "good.json"))
		require.NoError(t, err)
		assert.True(t, exists, "successful documents are still written")
	})

	t.Run("Should exit cleanly when nothing matches", func(t *testing.T) {
		_, stderr, err := execute(t, afero.NewMemMapFs(), "run", "--input", "/empty", "--output", "/out")
		require.NoError(t, err)
		assert.Contains(t, stderr, "nothing to process")
	})

	t.Run("Should reject invalid heading levels", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/docs/a.md", []byte("# A\n"), 0o644))
		_, _, err := execute(t, fsys, "run", "--input", "/docs", "--output", "/out", "--levels", "0")
		require.Error(t, err)
	})
}

func TestFileCommand(t *testing.T) {
	t.Run("Should print one outline as JSON", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/docs/guide.md", []byte("# Guide\n\n## Setup\n\n### Linux\n"), 0o644))

		stdout, _, err := execute(t, fsys, "file", "/docs/guide.md", "--levels", "2")
		require.NoError(t, err)

		doc, err := outline.Decode(bytes.NewReader([]byte(stdout)))
		require.NoError(t, err)
		assert.Equal(t, "Guide", doc.Title)
		require.Len(t, doc.Outline, 2)
		assert.Equal(t, "H2", doc.Outline[1].Level)
	})

	t.Run("Should report a missing file", func(t *testing.T) {
		_, _, err := execute(t, afero.NewMemMapFs(), "file", "/nope.md")
		require.Error(t, err)
	})

	t.Run("Should require exactly one argument", func(t *testing.T) {
		_, _, err := execute(t, afero.NewMemMapFs(), "file")
		require.Error(t, err)
	})
}
