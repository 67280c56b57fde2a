package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tsawler/figura/internal/config"
	"github.com/tsawler/figura/internal/logger"
	"github.com/tsawler/figura/ocr"
)

var version = "0.1.0"

// cfg is loaded once in main before any command runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "figura",
	Short: "figura - extract tables and chart data from scanned document images",
	Long: `figura turns scanned document images into structured data: it runs
OCR and heuristic table recovery, detects chart regions and extracts
their data points, and validates and summarizes the resulting tables.

Configuration is read from the environment (optionally via a .env
file): FIGURA_OCR_ENGINE, FIGURA_OCR_LANGUAGE, FIGURA_OUTPUT_DIR,
GOOGLE_APPLICATION_CREDENTIALS, LOG_LEVEL.`,
	Version: version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log := logger.WithComponent("cmd")
		log.Error().Err(err).Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newEngine builds the configured OCR engine. The flag value, when
// set, overrides the environment.
func newEngine(ctx context.Context, flagEngine string) (ocr.Engine, func(), error) {
	name := cfg.OCREngine
	if flagEngine != "" {
		name = flagEngine
	}

	switch name {
	case "vision":
		engine, err := ocr.NewGoogleVision(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("creating Google Vision engine: %w", err)
		}
		return engine, func() { engine.Close() }, nil
	case "tesseract":
		engine, err := ocr.NewTesseract(cfg.OCRLanguage)
		if err != nil {
			return nil, nil, fmt.Errorf("creating Tesseract engine: %w", err)
		}
		return engine, func() { engine.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown OCR engine: %q", name)
	}
}

// commandContext returns a context that ends on timeout or interrupt.
func commandContext(timeoutSecs int) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSecs)*time.Second)
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	return ctx, func() {
		stop()
		cancel()
	}
}

// readCSVRows loads a CSV file as raw rows for the analysis commands.
// Ragged rows are allowed; the validator reports them itself.
func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening CSV file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV file: %w", err)
	}
	return rows, nil
}
