package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dgallion1/docoutline/internal/batch"
	"github.com/dgallion1/docoutline/internal/config"
	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/pipeline"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type runOptions struct {
	input   string
	output  string
	pattern string
	workers int
}

func newRunCmd(fsys afero.Fs, cfg config.Config) *cobra.Command {
	opts := runOptions{
		input:   cfg.InputDir,
		output:  cfg.OutputDir,
		pattern: cfg.InputPattern,
		workers: cfg.WorkerCount,
	}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Outline every matching document in a directory",
		Long: "Discovers documents under --input, infers each outline and writes " +
			"<output>/<name>.json. Exits non-zero if any document failed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatch(cmd, fsys, opts)
		},
	}
	cmd.Flags().StringVar(&opts.input, "input", opts.input, "directory to scan for documents")
	cmd.Flags().StringVar(&opts.output, "output", opts.output, "directory for JSON outlines")
	cmd.Flags().StringVar(&opts.pattern, "pattern", opts.pattern, "doublestar glob relative to --input")
	cmd.Flags().IntVar(&opts.workers, "workers", opts.workers, "documents processed concurrently")
	return cmd
}

func runBatch(cmd *cobra.Command, fsys afero.Fs, opts runOptions) error {
	log, err := newLogger(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	oc, err := outlineConfig(cmd)
	if err != nil {
		return err
	}

	paths, err := batch.Discover(fsys, opts.input, opts.pattern)
	if errors.Is(err, batch.ErrNoInput) {
		log.Warn("nothing to process", "input", opts.input, "pattern", opts.pattern, "reason", err)
		return nil
	}
	if err != nil {
		return err
	}
	if err := batch.PrepareOutputDir(fsys, opts.output); err != nil {
		return err
	}

	log.Info("starting batch", "documents", len(paths), "output", opts.output, "workers", opts.workers)
	start := time.Now()
	runner := &batch.Runner{
		Fs:        fsys,
		InputDir:  opts.input,
		OutputDir: opts.output,
		Config:    oc,
		Workers:   opts.workers,
		Processor: pipeline.NewProcessor(nil, nil, log),
		Log:       log,
	}
	results := runner.Run(cmd.Context(), paths)

	summary := batch.Summarize(results)
	for _, r := range results {
		if r.Err != nil {
			log.Error("document failed", "source", filepath.ToSlash(r.Source), "error", r.Err)
		}
	}
	log.Info("batch complete",
		"total", summary.Total,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	if summary.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", errDocumentsFailed, summary.Failed, summary.Total)
	}
	return nil
}

// outlineConfig reads the shared inference flags.
func outlineConfig(cmd *cobra.Command) (outline.Config, error) {
	oc := outline.DefaultConfig()
	maxPages, err := cmd.Flags().GetInt("max-pages")
	if err != nil {
		return oc, fmt.Errorf("failed to get max-pages flag: %w", err)
	}
	levels, err := cmd.Flags().GetInt("levels")
	if err != nil {
		return oc, fmt.Errorf("failed to get levels flag: %w", err)
	}
	oc.MaxPages = maxPages
	oc.HeadingLevels = levels
	if err := oc.Validate(); err != nil {
		return oc, err
	}
	return oc, nil
}
