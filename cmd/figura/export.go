package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/figura/export"
	"github.com/tsawler/figura/internal/logger"
	"github.com/tsawler/figura/model"
	"github.com/tsawler/figura/validate"
)

var exportCmd = &cobra.Command{
	Use:   "export [csv-file] [output-file]",
	Short: "Re-export a CSV table as CSV, JSON or XLSX",
	Long: `Sanitize a CSV table (drop empty rows, trim cells) and write it in
another format. The format is taken from the --format flag, or from
the output file extension when the flag is absent.`,
	Example: `  figura export table.csv table.xlsx
  figura export table.csv records.json --format json`,
	Args: cobra.ExactArgs(2),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("format", "", "Output format: csv, json or xlsx")
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("export")

	formatName, _ := cmd.Flags().GetString("format")
	inPath, outPath := args[0], args[1]

	if formatName == "" {
		formatName = formatFromExtension(outPath)
	}
	outFormat, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}

	rows, err := readCSVRows(inPath)
	if err != nil {
		return err
	}
	rows = validate.Sanitize(rows)

	table := buildTable(rows)
	if err := export.WriteFile(outPath, table, outFormat); err != nil {
		return fmt.Errorf("exporting table: %w", err)
	}

	log.Info().
		Str("output", outPath).
		Str("format", outFormat.String()).
		Int("rows", len(table.Rows)).
		Msg("Export finished")
	return nil
}

// buildTable turns sanitized raw rows into the model form. An
// all-text first row becomes the header row.
func buildTable(rows [][]string) *model.Table {
	table := &model.Table{}
	if len(rows) == 0 {
		return table
	}

	if hasHeader, _ := validate.DetectHeaders(rows); hasHeader {
		table.Headers = rows[0]
		rows = rows[1:]
	}
	table.Rows = rows

	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		record := model.Record{model.LabelColumn: model.TextCell(row[0])}
		for i, token := range row[1:] {
			record[table.ColumnName(i)] = model.ParseCell(token)
		}
		table.Cleaned = append(table.Cleaned, record)
	}
	return table
}

// formatFromExtension guesses the export format from a file name.
func formatFromExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".xlsx":
		return "xlsx"
	default:
		return "csv"
	}
}
