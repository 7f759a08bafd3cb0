package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/motivation-cli/internal/pipeline"
	"github.com/sells-group/motivation-cli/internal/report"
)

var (
	batchUser   string
	batchOutDir string
	batchLimit  int
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Analyze every transcript file in a directory",
	Long:  "Scores each .txt file in the directory concurrently and writes one report per transcript.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initRunner(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		paths, err := collectTranscripts(args[0])
		if err != nil {
			return err
		}

		outDir := batchOutDir
		if outDir == "" {
			outDir = args[0]
		}

		return processBatch(ctx, env.Runner, paths, outDir, cfg.Batch.MaxConcurrent)
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchUser, "user", "default", "user id for usage accounting")
	batchCmd.Flags().StringVar(&batchOutDir, "out", "", "report output directory (default alongside transcripts)")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max number of transcripts to process (0 = all)")
	rootCmd.AddCommand(batchCmd)
}

func collectTranscripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "read directory %s", dir)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// processBatch analyzes transcripts concurrently and writes a markdown
// report next to each. Individual failures are logged, not fatal; a quota
// error aborts the batch since every remaining file would hit it too.
func processBatch(ctx context.Context, runner *pipeline.Runner, paths []string, outDir string, concurrency int) error {
	if len(paths) == 0 {
		zap.L().Info("no transcript files found")
		return nil
	}
	if batchLimit > 0 && len(paths) > batchLimit {
		paths = paths[:batchLimit]
	}

	zap.L().Info("processing batch",
		zap.Int("transcripts", len(paths)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64

	for _, path := range paths {
		g.Go(func() error {
			log := zap.L().With(zap.String("transcript", path))

			data, err := os.ReadFile(path)
			if err != nil {
				failed.Add(1)
				log.Error("read transcript failed", zap.Error(err))
				return nil
			}

			resp, err := runner.AnalyzeTranscript(gctx, batchUser, string(data))
			if err != nil {
				failed.Add(1)
				log.Error("analysis failed", zap.Error(err))
				if _, ok := pipeline.IsQuotaError(err); ok {
					return err // quota exhausted, stop the batch
				}
				return nil
			}

			outPath := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(path), ".txt")+"_report.md")
			if err := os.WriteFile(outPath, []byte(report.Render(resp.Analysis, resp.Transcript)), 0o644); err != nil {
				failed.Add(1)
				log.Error("write report failed", zap.Error(err))
				return nil
			}

			succeeded.Add(1)
			log.Info("analysis complete",
				zap.Float64("score", resp.Analysis.OverallScore),
				zap.String("level", string(resp.Analysis.MotivationLevel)),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "batch processing")
	}

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return nil
}
