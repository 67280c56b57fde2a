package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tsawler/figura"
	"github.com/tsawler/figura/internal/logger"
)

var extractCmd = &cobra.Command{
	Use:   "extract [image-file]",
	Short: "Extract a table from a scanned page image",
	Long: `Run OCR over a page image and recover a table from the recognized
text. The result is printed as CSV by default, or as the full
extraction result with --json.`,
	Example: `  # Print the recovered table as CSV
  figura extract page.png

  # Write a CSV file alongside the JSON result
  figura extract page.png --csv table.csv --json

  # Use Google Cloud Vision instead of local Tesseract
  figura extract page.png --engine vision`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().String("engine", "", "OCR engine: tesseract or vision")
	extractCmd.Flags().String("csv", "", "Also write the table to this CSV file")
	extractCmd.Flags().Bool("json", false, "Print the full extraction result as JSON")
	extractCmd.Flags().Bool("no-preprocess", false, "Skip image enhancement before OCR")
	extractCmd.Flags().Int("timeout", 120, "Processing timeout in seconds")
}

func runExtract(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("extract")

	engineName, _ := cmd.Flags().GetString("engine")
	csvPath, _ := cmd.Flags().GetString("csv")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	noPreprocess, _ := cmd.Flags().GetBool("no-preprocess")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	ctx, cancel := commandContext(timeoutSecs)
	defer cancel()

	engine, closeEngine, err := newEngine(ctx, engineName)
	if err != nil {
		return err
	}
	defer closeEngine()

	log.Info().
		Str("file", args[0]).
		Str("engine", engine.Name()).
		Msg("Starting table extraction")
	start := time.Now()

	extractor := figura.Open(args[0]).
		WithOCR(engine).
		WithPreprocessing(!noPreprocess)
	if csvPath != "" {
		extractor = extractor.WithCSVOutput(csvPath)
	}

	result, err := extractor.ExtractTable(ctx)
	if err != nil {
		return fmt.Errorf("extracting table: %w", err)
	}

	log.Info().
		Str("status", string(result.Status)).
		Int("rows", len(result.Rows)).
		Dur("elapsed", time.Since(start)).
		Msg("Extraction finished")

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if result.Status != figura.StatusTableFound {
		fmt.Printf("No table extracted: %s\n", result.Status)
		return nil
	}
	fmt.Print(result.Table().ToCSV())
	return nil
}
