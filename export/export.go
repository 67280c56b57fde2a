// Package export writes extracted tables to interchange formats.
//
// The writers expect a sanitized table (see validate.Sanitize):
// fully-empty rows dropped and cell text trimmed. Nothing enforces
// that here; an unsanitized table simply exports as-is.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tsawler/figura/model"
)

// Format defines the available export formats
type Format int

const (
	// CSV exports as comma-separated values
	CSV Format = iota
	// JSON exports cleaned records as a JSON array
	JSON
	// XLSX exports as a single-sheet Excel workbook
	XLSX
)

// String returns a human-readable representation of the export format
func (f Format) String() string {
	switch f {
	case CSV:
		return "csv"
	case JSON:
		return "json"
	case XLSX:
		return "xlsx"
	default:
		return "unknown"
	}
}

// Extension returns the typical file extension for this format
func (f Format) Extension() string {
	switch f {
	case CSV:
		return ".csv"
	case JSON:
		return ".json"
	case XLSX:
		return ".xlsx"
	default:
		return ".txt"
	}
}

// ParseFormat maps a format name to its Format value.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "csv":
		return CSV, nil
	case "json":
		return JSON, nil
	case "xlsx":
		return XLSX, nil
	default:
		return CSV, fmt.Errorf("unknown export format: %q", name)
	}
}

// Write encodes table to w in the given format.
func Write(w io.Writer, table *model.Table, format Format) error {
	if table == nil {
		table = &model.Table{}
	}
	switch format {
	case CSV:
		return writeCSV(w, table)
	case JSON:
		return writeJSON(w, table)
	case XLSX:
		return writeXLSX(w, table)
	default:
		return fmt.Errorf("unknown export format: %d", format)
	}
}

// WriteFile encodes table to a file, creating or truncating it.
func WriteFile(path string, table *model.Table, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := Write(f, table, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing export file: %w", err)
	}
	return nil
}

// writeCSV writes the header row followed by the raw rows.
func writeCSV(w io.Writer, table *model.Table) error {
	cw := csv.NewWriter(w)

	if len(table.Headers) > 0 {
		if err := cw.Write(table.Headers); err != nil {
			return fmt.Errorf("writing CSV header: %w", err)
		}
	}
	for i, row := range table.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}

// writeJSON writes the cleaned records as a JSON array. Empty cells
// encode as null. A table without cleaned records falls back to the
// raw rows as string arrays.
func writeJSON(w io.Writer, table *model.Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if len(table.Cleaned) > 0 {
		records := make([]map[string]any, len(table.Cleaned))
		for i, record := range table.Cleaned {
			obj := make(map[string]any, len(record))
			for key, cell := range record {
				obj[key] = cell.Value()
			}
			records[i] = obj
		}
		return enc.Encode(records)
	}

	rows := table.Rows
	if rows == nil {
		rows = [][]string{}
	}
	return enc.Encode(rows)
}
