package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/unbound-force/tangle/internal/config"
	"github.com/unbound-force/tangle/internal/report"
)

// batchParams holds the parsed flags for the batch command.
type batchParams struct {
	files      []string
	format     string
	configPath string
	workers    int
	stdout     io.Writer
}

// evaluateAll scores every file with at most workers files in flight.
// Lines come back in input order; a failing file is recorded on its
// line and does not stop the others. Only cancellation of ctx aborts.
func evaluateAll(ctx context.Context, files []string, workers int) ([]report.BatchLine, error) {
	lines := make([]report.BatchLine, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		lines[i].File = path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ev, err := evaluateFile(path)
			if err != nil {
				logger.Debug("evaluation failed", "file", path, "err", err)
				lines[i].Err = err
				return nil
			}
			lines[i].Code = ev.result.Code
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lines, nil
}

// runBatch is the extracted, testable body of the batch command.
func runBatch(ctx context.Context, p batchParams) error {
	cfg, err := loadConfig(p.configPath, "", -1, p.workers)
	if err != nil {
		return err
	}
	format, err := resolveFormat(p.format, cfg)
	if err != nil {
		return err
	}

	logger.Info("evaluating batch", "files", len(p.files), "workers", cfg.Batch.Workers)
	lines, err := evaluateAll(ctx, p.files, cfg.Batch.Workers)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		err = report.WriteBatchJSON(p.stdout, lines)
	default:
		err = report.WriteBatchText(p.stdout, lines)
	}
	if err != nil {
		return err
	}

	failed := 0
	for _, l := range lines {
		if l.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(lines))
	}
	return nil
}

func newBatchCmd() *cobra.Command {
	var (
		format     string
		configPath string
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "batch <response-file>...",
		Short: "Score many response files concurrently",
		Long: `Score every given response file and print one line per file in
the order given. Exits non-zero if any file fails to evaluate.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.Context(), batchParams{
				files:      args,
				format:     format,
				configPath: configPath,
				workers:    workers,
				stdout:     os.Stdout,
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "",
		"output format: text or json (default from config)")
	cmd.Flags().StringVar(&configPath, "config", "",
		"path to config file (default: ./"+config.FileName+")")
	cmd.Flags().IntVarP(&workers, "workers", "w", -1,
		"files evaluated at once (default from config)")

	return cmd
}
