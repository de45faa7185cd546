// Command outline infers document outlines in batch from the command line.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	charmlog "github.com/charmbracelet/log"
	"github.com/dgallion1/docoutline/internal/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// errDocumentsFailed is returned when at least one document in a run failed.
var errDocumentsFailed = errors.New("documents failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd(afero.NewOsFs())
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errDocumentsFailed) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(fsys afero.Fs) *cobra.Command {
	cfg := config.Load()

	root := &cobra.Command{
		Use:           "outline",
		Short:         "Infer titles and heading outlines from documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().Bool("log-json", false, "emit logs as JSON")
	root.PersistentFlags().Int("max-pages", cfg.MaxPages, "pages scanned per document")
	root.PersistentFlags().Int("levels", cfg.HeadingLevels, "heading levels recognized per page (1-6)")

	root.AddCommand(newRunCmd(fsys, cfg), newFileCmd(fsys))
	return root
}

// newLogger builds a slog logger backed by charm log, writing to w.
func newLogger(cmd *cobra.Command, w io.Writer) (*slog.Logger, error) {
	levelName, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	logJSON, err := cmd.Flags().GetBool("log-json")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-json flag: %w", err)
	}
	level, err := charmlog.ParseLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", levelName, err)
	}

	opts := charmlog.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	}
	if logJSON {
		opts.Formatter = charmlog.JSONFormatter
	}
	return slog.New(charmlog.NewWithOptions(w, opts)), nil
}
