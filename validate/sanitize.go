package validate

import (
	"strings"
	"unicode/utf8"
)

// Comparison is the outcome of comparing two tables cell by cell.
type Comparison struct {
	Identical        bool         `json:"identical"`
	RowCountMatch    bool         `json:"row_count_match"`
	ColumnCountMatch bool         `json:"column_count_match"`
	Differences      []Difference `json:"differences"`
}

// Difference is one cell that differs between the two tables.
type Difference struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Value1 string `json:"value1"`
	Value2 string `json:"value2"`
}

// Fraction of first-row cells that must read like column names for
// DetectHeaders to report a header row.
const headerTextFraction = 0.7

// Sanitize prepares a table for export: every cell is whitespace
// trimmed, and rows with no content at all are dropped. Cells that
// trim to nothing stay as empty strings, which exporters render as
// their null marker.
func Sanitize(rows [][]string) [][]string {
	if len(rows) == 0 {
		return nil
	}

	var sanitized [][]string
	for _, row := range rows {
		cleaned := make([]string, len(row))
		empty := true
		for i, cell := range row {
			cleaned[i] = strings.TrimSpace(cell)
			if cleaned[i] != "" {
				empty = false
			}
		}
		if !empty {
			sanitized = append(sanitized, cleaned)
		}
	}
	return sanitized
}

// Compare reports whether two tables match and where they differ.
// Differences are only collected over the overlapping cell range, so
// tables of different shapes compare by their shared cells plus the
// shape mismatch flags.
func Compare(a, b [][]string) Comparison {
	result := Comparison{
		Identical:        tablesEqual(a, b),
		RowCountMatch:    len(a) == len(b),
		ColumnCountMatch: firstRowLen(a) == firstRowLen(b),
	}
	if result.Identical {
		return result
	}

	minRows := min(len(a), len(b))
	minCols := min(firstRowLen(a), firstRowLen(b))
	for i := 0; i < minRows; i++ {
		for j := 0; j < minCols; j++ {
			if j >= len(a[i]) || j >= len(b[i]) {
				continue
			}
			if a[i][j] != b[i][j] {
				result.Differences = append(result.Differences, Difference{
					Row:    i,
					Col:    j,
					Value1: a[i][j],
					Value2: b[i][j],
				})
			}
		}
	}
	return result
}

// DetectHeaders reports whether the table starts with a header row
// and the row's index. Tables without one report index -1.
func DetectHeaders(rows [][]string) (bool, int) {
	if len(rows) < 2 || len(rows[0]) == 0 {
		return false, -1
	}

	textCells := 0
	for _, cell := range rows[0] {
		if utf8.RuneCountInString(cell) > 2 && InferType(cell) != TypeNumeric {
			textCells++
		}
	}
	if float64(textCells) >= headerTextFraction*float64(len(rows[0])) {
		return true, 0
	}
	return false, -1
}

func tablesEqual(a, b [][]string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

func firstRowLen(rows [][]string) int {
	if len(rows) == 0 {
		return 0
	}
	return len(rows[0])
}
