package main

import (
	"fmt"
	"path/filepath"

	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/pipeline"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newFileCmd(fsys afero.Fs) *cobra.Command {
	return &cobra.Command{
		Use:   "file <path>",
		Short: "Print the outline of a single document to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			oc, err := outlineConfig(cmd)
			if err != nil {
				return err
			}

			path := args[0]
			data, err := afero.ReadFile(fsys, path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			out, err := pipeline.NewProcessor(nil, nil, log).Process(cmd.Context(), data, filepath.Base(path), oc)
			if err != nil {
				return err
			}
			return outline.Encode(cmd.OutOrStdout(), out.Outline)
		},
	}
}
