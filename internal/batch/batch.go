// Package batch drives outline inference over a directory of documents and
// writes one JSON result per document.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/pipeline"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// ErrNoInput reports that discovery found nothing to process. It is not a
// processing failure.
var ErrNoInput = errors.New("no input documents found")

// WriteError reports an outline that could not be persisted.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Discover returns the files under dir matching the doublestar pattern,
// sorted by path. It wraps ErrNoInput when dir is missing or nothing matches.
func Discover(fsys afero.Fs, dir, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern %q", pattern)
	}
	info, err := fsys.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist", ErrNoInput, dir)
		}
		return nil, fmt.Errorf("stat input dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input %s is not a directory", dir)
	}

	root := afero.NewIOFS(afero.NewBasePathFs(fsys, dir))
	matches, err := doublestar.Glob(root, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: nothing in %s matches %q", ErrNoInput, dir, pattern)
	}

	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = filepath.Join(dir, filepath.FromSlash(m))
	}
	slices.Sort(paths)
	return paths, nil
}

// PrepareOutputDir creates the output directory if needed.
func PrepareOutputDir(fsys afero.Fs, dir string) error {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return nil
}

// Result is the outcome for one input document. Output is set only when the
// outline was written.
type Result struct {
	Source  string
	Output  string
	Outline doctree.DocumentOutline
	Err     error
}

// Runner processes documents concurrently. Each document is isolated: a
// failure is recorded in its Result and never stops the others.
type Runner struct {
	Fs        afero.Fs
	InputDir  string
	OutputDir string
	Config    outline.Config
	Workers   int
	Processor *pipeline.Processor
	Log       *slog.Logger
}

// Run processes paths and returns one Result per path, in input order.
func (r *Runner) Run(ctx context.Context, paths []string) []Result {
	results := make([]Result, len(paths))
	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(r.Workers, 1))
	for idx, path := range paths {
		group.Go(func() error {
			res := r.processOne(groupCtx, path)
			mu.Lock()
			results[idx] = res
			mu.Unlock()
			return nil
		})
	}
	_ = group.Wait()
	return results
}

func (r *Runner) processOne(ctx context.Context, path string) Result {
	log := r.logger().With("source", path)
	res := Result{Source: path}

	data, err := afero.ReadFile(r.Fs, path)
	if err != nil {
		res.Err = fmt.Errorf("read %s: %w", path, err)
		log.Error("read failed", "error", err)
		return res
	}

	out, err := r.Processor.Process(ctx, data, filepath.Base(path), r.Config)
	if err != nil {
		res.Err = err
		log.Error("outline failed", "error", err)
		return res
	}
	res.Outline = out.Outline

	dest := r.OutputPath(path)
	if err := writeAtomic(r.Fs, dest, out.Outline); err != nil {
		res.Err = err
		log.Error("write failed", "output", dest, "error", err)
		return res
	}
	res.Output = dest
	log.Info("outline written",
		"output", dest,
		"headings", len(out.Outline.Outline),
		"duration_ms", out.Duration.Milliseconds(),
	)
	return res
}

// OutputPath maps a source document to its JSON result, mirroring the
// source's location relative to InputDir.
func (r *Runner) OutputPath(source string) string {
	rel, err := filepath.Rel(r.InputDir, source)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = filepath.Base(source)
	}
	stem := strings.TrimSuffix(rel, filepath.Ext(rel))
	return filepath.Join(r.OutputDir, stem+".json")
}

func (r *Runner) logger() *slog.Logger {
	if r.Log == nil {
		return slog.Default()
	}
	return r.Log
}

// writeAtomic encodes doc to a temp file beside dest and renames it into
// place, so a failed write never leaves a partial result.
func writeAtomic(fsys afero.Fs, dest string, doc doctree.DocumentOutline) (err error) {
	dir := filepath.Dir(dest)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return &WriteError{Path: dest, Err: err}
	}
	tmp, err := afero.TempFile(fsys, dir, "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return &WriteError{Path: dest, Err: err}
	}
	defer func() {
		if err != nil {
			_ = fsys.Remove(tmp.Name())
		}
	}()

	if err := outline.Encode(tmp, doc); err != nil {
		_ = tmp.Close()
		return &WriteError{Path: dest, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &WriteError{Path: dest, Err: err}
	}
	if err := fsys.Chmod(tmp.Name(), 0o644); err != nil {
		return &WriteError{Path: dest, Err: err}
	}
	if err := fsys.Rename(tmp.Name(), dest); err != nil {
		return &WriteError{Path: dest, Err: err}
	}
	return nil
}

// Summary counts batch outcomes.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
}

// Summarize tallies results.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
		} else {
			s.Succeeded++
		}
	}
	return s
}
