package model

import (
	"strconv"
	"strings"
)

// LabelColumn is the record key holding each row's leading label token.
const LabelColumn = "Label"

// TableBlock is an ordered run of recognized text lines judged to form
// one table. Ordering follows vertical position in the source image.
type TableBlock []string

// IsEmpty reports whether the block contains no lines.
func (b TableBlock) IsEmpty() bool {
	return len(b) == 0
}

// LineCount returns the number of lines in the block.
func (b TableBlock) LineCount() int {
	return len(b)
}

// Record is one table row keyed by column name. The leading label
// token is stored under LabelColumn.
type Record map[string]Cell

// Table holds a structured table: raw string rows plus typed records.
//
// Headers and rows are not forced to agree: a row may carry more or
// fewer values than there are headers, and lookups past the header
// list fall back to a synthetic column name.
type Table struct {
	Headers []string
	Rows    [][]string
	Cleaned []Record
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColumnCount returns the widest row length across all rows.
func (t *Table) ColumnCount() int {
	cols := 0
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return cols
}

// IsEmpty reports whether the table has no data rows.
func (t *Table) IsEmpty() bool {
	return t == nil || len(t.Rows) == 0
}

// ColumnName returns the header at index i, or a synthetic "Col{i+1}"
// name when the index runs past the header list.
func (t *Table) ColumnName(i int) string {
	if i >= 0 && i < len(t.Headers) {
		return t.Headers[i]
	}
	return SyntheticColumn(i)
}

// SyntheticColumn returns the fallback name for value position i.
func SyntheticColumn(i int) string {
	return "Col" + strconv.Itoa(i+1)
}

// ToCSV converts the table to CSV format. The header row is written
// first when headers are present.
func (t *Table) ToCSV() string {
	var sb strings.Builder

	writeRow := func(row []string) {
		for j, field := range row {
			// Escape quotes and wrap in quotes if necessary
			if strings.ContainsAny(field, ",\"\n") {
				field = "\"" + strings.ReplaceAll(field, "\"", "\"\"") + "\""
			}
			sb.WriteString(field)
			if j < len(row)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}

	if len(t.Headers) > 0 {
		writeRow(t.Headers)
	}
	for _, row := range t.Rows {
		writeRow(row)
	}

	return sb.String()
}

// ToMarkdown converts the table to markdown format.
func (t *Table) ToMarkdown() string {
	if len(t.Headers) == 0 && len(t.Rows) == 0 {
		return ""
	}

	header := t.Headers
	if len(header) == 0 {
		header = t.Rows[0]
	}

	var sb strings.Builder

	// Header row
	for j, name := range header {
		sb.WriteString("| ")
		sb.WriteString(strings.ReplaceAll(name, "\n", " "))
		sb.WriteString(" ")
		if j == len(header)-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")

	// Separator
	for j := range header {
		sb.WriteString("|---")
		if j == len(header)-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")

	// Data rows
	start := 0
	if len(t.Headers) == 0 {
		start = 1
	}
	for i := start; i < len(t.Rows); i++ {
		for j, field := range t.Rows[i] {
			sb.WriteString("| ")
			sb.WriteString(strings.ReplaceAll(field, "\n", " "))
			sb.WriteString(" ")
			if j == len(t.Rows[i])-1 {
				sb.WriteString("|")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
