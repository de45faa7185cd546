package batch

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/parser"
	"github.com/dgallion1/docoutline/internal/pipeline"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, fsys afero.Fs, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fsys, name, []byte(content), 0o644))
	}
}

func newRunner(fsys afero.Fs) *Runner {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &Runner{
		Fs:        fsys,
		InputDir:  "/in",
		OutputDir: "/out",
		Config:    outline.DefaultConfig(),
		Workers:   2,
		Processor: pipeline.NewProcessor(nil, nil, log),
		Log:       log,
	}
}

func TestDiscover(t *testing.T) {
	t.Run("Should return matching files sorted", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		writeFiles(t, fsys, map[string]string{
			"/in/b.pdf":        "x",
			"/in/a.pdf":        "x",
			"/in/sub/c.pdf":    "x",
			"/in/notes.md":     "x",
			"/in/sub/deep.txt": "x",
		})

		paths, err := Discover(fsys, "/in", "**/*.pdf")
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join("/in", "a.pdf"),
			filepath.Join("/in", "b.pdf"),
			filepath.Join("/in", "sub", "c.pdf"),
		}, paths)
	})

	t.Run("Should skip directories that match the pattern", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, fsys.MkdirAll("/in/archive.pdf", 0o755))
		writeFiles(t, fsys, map[string]string{"/in/real.pdf": "x"})

		paths, err := Discover(fsys, "/in", "*.pdf")
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join("/in", "real.pdf")}, paths)
	})

	t.Run("Should report no input for a missing directory", func(t *testing.T) {
		_, err := Discover(afero.NewMemMapFs(), "/missing", "**/*.pdf")
		assert.ErrorIs(t, err, ErrNoInput)
	})

	t.Run("Should report no input when nothing matches", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		writeFiles(t, fsys, map[string]string{"/in/readme.md": "x"})

		_, err := Discover(fsys, "/in", "**/*.pdf")
		assert.ErrorIs(t, err, ErrNoInput)
	})

	t.Run("Should reject an invalid pattern", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		writeFiles(t, fsys, map[string]string{"/in/a.pdf": "x"})

		_, err := Discover(fsys, "/in", "[")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoInput)
	})
}

func TestRunner_Run(t *testing.T) {
	t.Run("Should write one outline per document and isolate failures", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		writeFiles(t, fsys, map[string]string{
			"/in/guide.md":      "# Guide\n\nIntro.\n\n## Setup\n",
			"/in/broken.txt":    "not a document",
			"/in/sub/manual.md": "# Manual\n\n## Usage\n\n### Flags\n",
		})
		require.NoError(t, PrepareOutputDir(fsys, "/out"))

		paths := []string{
			filepath.Join("/in", "guide.md"),
			filepath.Join("/in", "broken.txt"),
			filepath.Join("/in", "sub", "manual.md"),
		}
		results := newRunner(fsys).Run(context.Background(), paths)
		require.Len(t, results, 3)

		for i, p := range paths {
			assert.Equal(t, p, results[i].Source)
		}

		require.NoError(t, results[0].Err)
		assert.Equal(t, filepath.Join("/out", "guide.json"), results[0].Output)
		assert.Equal(t, "Guide", results[0].Outline.Title)

		var ee *parser.ExtractionError
		require.ErrorAs(t, results[1].Err, &ee)
		assert.Empty(t, results[1].Output)
		exists, err := afero.Exists(fsys, filepath.Join("/out", "broken.json"))
		require.NoError(t, err)
		assert.False(t, exists, "failed documents must not produce output")

		require.NoError(t, results[2].Err)
		assert.Equal(t, filepath.Join("/out", "sub", "manual.json"), results[2].Output)

		f, err := fsys.Open(results[2].Output)
		require.NoError(t, err)
		defer f.Close()
		decoded, err := outline.Decode(f)
		require.NoError(t, err)
		assert.Equal(t, results[2].Outline, decoded)
		assert.Len(t, decoded.Outline, 3)

		assert.Equal(t, Summary{Total: 3, Succeeded: 2, Failed: 1}, Summarize(results))
	})

	t.Run("Should leave no temporary files behind", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		writeFiles(t, fsys, map[string]string{"/in/a.md": "# A\n"})

		results := newRunner(fsys).Run(context.Background(), []string{filepath.Join("/in", "a.md")})
		require.NoError(t, results[0].Err)

		entries, err := afero.ReadDir(fsys, "/out")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "a.json", entries[0].Name())
		assert.False(t, strings.HasSuffix(entries[0].Name(), ".tmp"))
	})

	t.Run("Should report a write error when output cannot be created", func(t *testing.T) {
		mem := afero.NewMemMapFs()
		writeFiles(t, mem, map[string]string{"/in/a.md": "# A\n"})

		r := newRunner(afero.NewReadOnlyFs(mem))
		results := r.Run(context.Background(), []string{filepath.Join("/in", "a.md")})

		var we *WriteError
		require.ErrorAs(t, results[0].Err, &we)
		assert.Equal(t, filepath.Join("/out", "a.json"), we.Path)
		assert.Empty(t, results[0].Output)
	})

	t.Run("Should report a read error for a missing file", func(t *testing.T) {
		results := newRunner(afero.NewMemMapFs()).Run(context.Background(), []string{"/in/gone.md"})
		require.Error(t, results[0].Err)
		assert.ErrorIs(t, results[0].Err, fs.ErrNotExist)
	})

	t.Run("Should return no results for no paths", func(t *testing.T) {
		results := newRunner(afero.NewMemMapFs()).Run(context.Background(), nil)
		assert.Empty(t, results)
		assert.Equal(t, Summary{}, Summarize(results))
	})
}

func TestRunner_OutputPath(t *testing.T) {
	r := &Runner{InputDir: "/in", OutputDir: "/out"}

	t.Run("Should mirror the relative location", func(t *testing.T) {
		assert.Equal(t, filepath.Join("/out", "a", "b.json"), r.OutputPath(filepath.Join("/in", "a", "b.pdf")))
	})

	t.Run("Should fall back to the base name outside the input dir", func(t *testing.T) {
		assert.Equal(t, filepath.Join("/out", "c.json"), r.OutputPath("/elsewhere/c.pdf"))
	})
}

func TestPrepareOutputDir(t *testing.T) {
	t.Run("Should create nested directories", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, PrepareOutputDir(fsys, "/out/nested"))
		ok, err := afero.DirExists(fsys, "/out/nested")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
