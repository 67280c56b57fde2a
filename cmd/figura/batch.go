package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/figura"
	"github.com/tsawler/figura/format"
	"github.com/tsawler/figura/internal/logger"
	"github.com/tsawler/figura/ocr"
)

var batchCmd = &cobra.Command{
	Use:   "batch [input-dir]",
	Short: "Analyze every page image in a directory",
	Long: `Run the full pipeline (table extraction, chart detection, validation,
summary) over every image in a directory, writing one JSON report per
image to the output directory. Images are processed concurrently; the
worker count comes from --workers or FIGURA_BATCH_WORKERS.`,
	Example: `  figura batch ./scans --out ./reports --workers 8`,
	Args:    cobra.ExactArgs(1),
	RunE:    runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().String("out", "", "Output directory (default: FIGURA_OUTPUT_DIR)")
	batchCmd.Flags().String("engine", "", "OCR engine: tesseract or vision")
	batchCmd.Flags().Int("workers", 0, "Concurrent workers (default: FIGURA_BATCH_WORKERS)")
	batchCmd.Flags().Int("timeout", 600, "Overall timeout in seconds")
}

func runBatch(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("batch")

	outDir, _ := cmd.Flags().GetString("out")
	engineName, _ := cmd.Flags().GetString("engine")
	workers, _ := cmd.Flags().GetInt("workers")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	if outDir == "" {
		outDir = cfg.OutputDir
	}
	if workers <= 0 {
		workers = cfg.BatchWorkers
	}

	entries, err := os.ReadDir(args[0])
	if err != nil {
		return fmt.Errorf("reading input directory: %w", err)
	}
	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if format.Detect(entry.Name()).IsImage() {
			images = append(images, filepath.Join(args[0], entry.Name()))
		}
	}
	if len(images) == 0 {
		return fmt.Errorf("no images found in %s", args[0])
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	ctx, cancel := commandContext(timeoutSecs)
	defer cancel()

	// Tesseract keeps per-call native state, so workers cannot share
	// one engine; each draws its own from a pool sized to the worker
	// count
	engines := make([]ocr.Engine, 0, workers)
	var closeFuncs []func()
	closeAll := func() {
		for _, closeEngine := range closeFuncs {
			closeEngine()
		}
	}
	for i := 0; i < workers; i++ {
		engine, closeEngine, err := newEngine(ctx, engineName)
		if err != nil {
			closeAll()
			return err
		}
		engines = append(engines, engine)
		closeFuncs = append(closeFuncs, closeEngine)
	}
	defer closeAll()

	pool := ocr.NewPool(engines)

	log.Info().
		Int("images", len(images)).
		Int("workers", workers).
		Str("out", outDir).
		Msg("Starting batch run")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, path := range images {
		g.Go(func() error {
			engine := pool.Acquire()
			defer pool.Release(engine)

			report, err := figura.Open(path).
				WithOCR(engine).
				Analyze(gctx)
			if err != nil {
				// One bad image does not stop the batch
				log.Warn().Err(err).Str("file", path).Msg("Skipping image")
				return nil
			}

			outPath := filepath.Join(outDir, reportName(path))
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating report %s: %w", outPath, err)
			}
			enc := json.NewEncoder(f)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				f.Close()
				return fmt.Errorf("writing report %s: %w", outPath, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing report %s: %w", outPath, err)
			}

			log.Info().
				Str("file", path).
				Str("status", string(report.Table.Status)).
				Int("charts", len(report.Charts.Charts)).
				Msg("Image processed")
			return nil
		})
	}

	return g.Wait()
}

// reportName maps an image path to its report file name.
func reportName(imagePath string) string {
	base := filepath.Base(imagePath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
}
