package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/afmlabs/evaldash/internal/export"
)

type exportOptions struct {
	output  string
	dataset string
	seed    uint64
	filters filterFlags
}

func newExportCommand(a *app) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a generated snapshot as XLSX or CSV",
		Long: `Export one generated snapshot.

Without --dataset the whole snapshot is written as an XLSX workbook with one
sheet per dataset. With --dataset a single dataset is written as CSV. The
output goes to --output, or stdout for CSV.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, a, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (required for XLSX)")
	cmd.Flags().StringVar(&opts.dataset, "dataset", "", "Write a single dataset as CSV: "+strings.Join(export.Datasets, ", "))
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Random seed for reproducible output")
	opts.filters.register(cmd)

	return cmd
}

func runExport(cmd *cobra.Command, a *app, opts *exportOptions) error {
	if opts.dataset == "" && opts.output == "" {
		return fmt.Errorf("--output is required when exporting a workbook")
	}

	g, err := a.generator(seedFlag(cmd, opts.seed))
	if err != nil {
		return err
	}
	snap, _, err := opts.filters.apply(g.Snapshot(), g.Anchors())
	if err != nil {
		return err
	}
	var table export.Table
	if opts.dataset != "" {
		if table, err = export.TableFor(snap, opts.dataset); err != nil {
			return err
		}
	}

	var w io.Writer = cmd.OutOrStdout()
	if opts.output != "" {
		if dir := filepath.Dir(opts.output); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
		}
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close() //nolint:errcheck
		w = f
	}

	if opts.dataset != "" {
		if err := export.WriteCSV(w, table); err != nil {
			return err
		}
	} else if err := export.WriteWorkbook(w, snap); err != nil {
		return err
	}

	if opts.output != "" {
		a.logger.Info("export written", "path", opts.output)
	}
	return nil
}
