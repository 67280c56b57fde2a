package validate

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind identifies a class of validation issue.
type Kind string

const (
	KindEmptyTable          Kind = "empty_table"
	KindInconsistentColumns Kind = "inconsistent_columns"
	KindDuplicateRows       Kind = "duplicate_rows"
	KindHighMissingValues   Kind = "high_missing_values"
	KindSomeMissingValues   Kind = "some_missing_values"
	KindMixedDataTypes      Kind = "mixed_data_types"
	KindLikelyHeaderRow     Kind = "likely_header_row"
)

// CellType is the inferred runtime type of a raw cell value.
type CellType string

const (
	TypeEmpty    CellType = "empty"
	TypeNumeric  CellType = "numeric"
	TypeBoolean  CellType = "boolean"
	TypeCategory CellType = "category"
	TypeText     CellType = "text"
)

// CellRef addresses one cell by row and column index.
type CellRef struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Issue is one problem found in a table. Rows, Cells and Columns are
// filled depending on what the issue affects.
type Issue struct {
	Kind    Kind   `json:"type"`
	Message string `json:"message"`

	// Rows lists affected row indices for row-scoped issues.
	Rows []int `json:"affected_rows,omitempty"`

	// Cells lists affected cells for cell-scoped issues, truncated
	// to the first few; Count carries the full number.
	Cells []CellRef `json:"missing_cells,omitempty"`
	Count int       `json:"count,omitempty"`

	// Columns lists affected column indices for column-scoped issues.
	Columns []int `json:"columns,omitempty"`
}

// Statistics summarizes the shape of the validated table.
type Statistics struct {
	RowCount    int `json:"row_count"`
	ColumnCount int `json:"column_count"`
	TotalCells  int `json:"total_cells"`
}

// Result is the outcome of validating one table. Warnings never make
// a table invalid; only errors do.
type Result struct {
	IsValid    bool       `json:"is_valid"`
	Errors     []Issue    `json:"errors"`
	Warnings   []Issue    `json:"warnings"`
	Statistics Statistics `json:"statistics"`
}

// Missing-value ratio above which the table gets a single summary
// warning instead of a cell-by-cell listing.
const highMissingPercent = 20.0

// How many missing cells are listed individually.
const maxListedCells = 10

// Validate checks rows for structural, duplication, missing-value and
// type-consistency problems. It is pure: the input is never modified
// and repeated calls return equal results. An empty table
// short-circuits to a single error; all other findings are warnings.
func Validate(rows [][]string) Result {
	result := Result{Statistics: statistics(rows)}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, Issue{
			Kind:    KindEmptyTable,
			Message: "Table is empty",
		})
		return result
	}

	result.Warnings = appendIssue(result.Warnings, checkStructure(rows))
	result.Warnings = appendIssue(result.Warnings, checkDuplicates(rows))
	result.Warnings = appendIssue(result.Warnings, checkMissing(rows))
	result.Warnings = append(result.Warnings, checkTypes(rows)...)
	result.Warnings = appendIssue(result.Warnings, checkHeaderRow(rows))

	result.IsValid = true
	return result
}

// InferType classifies a raw cell value as empty, numeric, boolean,
// category (a short all-uppercase code), or free text.
func InferType(value string) CellType {
	s := strings.TrimSpace(value)
	if s == "" {
		return TypeEmpty
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return TypeNumeric
	}
	switch strings.ToLower(s) {
	case "true", "false", "yes", "no":
		return TypeBoolean
	}
	if utf8.RuneCountInString(s) <= 3 && strings.ToUpper(s) == s {
		return TypeCategory
	}
	return TypeText
}

// checkStructure warns when row lengths vary, listing every row that
// falls short of the widest one.
func checkStructure(rows [][]string) *Issue {
	minCols := len(rows[0])
	maxCols := len(rows[0])
	for _, row := range rows {
		minCols = min(minCols, len(row))
		maxCols = max(maxCols, len(row))
	}
	if minCols == maxCols {
		return nil
	}

	var affected []int
	for i, row := range rows {
		if len(row) != maxCols {
			affected = append(affected, i)
		}
	}
	return &Issue{
		Kind:    KindInconsistentColumns,
		Message: fmt.Sprintf("Row column count varies: %d to %d", minCols, maxCols),
		Rows:    affected,
	}
}

// checkDuplicates warns when rows stringify identically. Only the
// later occurrences are reported, never the first.
func checkDuplicates(rows [][]string) *Issue {
	if len(rows) < 2 {
		return nil
	}

	seen := make(map[string]bool, len(rows))
	var duplicates []int
	for i, row := range rows {
		key := fmt.Sprintf("%q", row)
		if seen[key] {
			duplicates = append(duplicates, i)
		}
		seen[key] = true
	}
	if len(duplicates) == 0 {
		return nil
	}
	return &Issue{
		Kind:    KindDuplicateRows,
		Message: fmt.Sprintf("Found %d potential duplicate rows", len(duplicates)),
		Rows:    duplicates,
	}
}

// checkMissing warns about empty cells: a single summary warning when
// they exceed the high-missing threshold, otherwise a listing of the
// first few.
func checkMissing(rows [][]string) *Issue {
	var missing []CellRef
	for i, row := range rows {
		for j, cell := range row {
			if strings.TrimSpace(cell) == "" {
				missing = append(missing, CellRef{Row: i, Col: j})
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}

	total := len(rows) * len(rows[0])
	if total > 0 {
		percent := float64(len(missing)) / float64(total) * 100
		if percent > highMissingPercent {
			return &Issue{
				Kind:    KindHighMissingValues,
				Message: fmt.Sprintf("Missing values: %.1f%% of cells", percent),
				Count:   len(missing),
			}
		}
	}

	listed := missing
	if len(listed) > maxListedCells {
		listed = listed[:maxListedCells]
	}
	return &Issue{
		Kind:    KindSomeMissingValues,
		Message: fmt.Sprintf("Found %d empty cells", len(missing)),
		Cells:   listed,
		Count:   len(missing),
	}
}

// checkTypes warns per column when the column mixes more than two
// inferred cell types. Column count follows the first row; cells past
// it are not attributed to any column.
func checkTypes(rows [][]string) []Issue {
	if len(rows) < 2 {
		return nil
	}

	numCols := len(rows[0])
	types := make([]map[CellType]bool, numCols)
	for i := range types {
		types[i] = make(map[CellType]bool)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= numCols {
				break
			}
			types[i][InferType(cell)] = true
		}
	}

	var issues []Issue
	for col, set := range types {
		if len(set) <= 2 {
			continue
		}
		names := make([]string, 0, len(set))
		for t := range set {
			names = append(names, string(t))
		}
		sort.Strings(names)
		issues = append(issues, Issue{
			Kind:    KindMixedDataTypes,
			Message: fmt.Sprintf("Column %d has mixed types: %s", col, strings.Join(names, ", ")),
			Columns: []int{col},
		})
	}
	return issues
}

// checkHeaderRow warns when every cell of the first row reads like a
// column name rather than data.
func checkHeaderRow(rows [][]string) *Issue {
	first := rows[0]
	if len(first) == 0 {
		return nil
	}
	for _, cell := range first {
		if utf8.RuneCountInString(cell) <= 2 {
			return nil
		}
	}
	return &Issue{
		Kind:    KindLikelyHeaderRow,
		Message: "First row appears to be headers",
	}
}

func statistics(rows [][]string) Statistics {
	stats := Statistics{RowCount: len(rows)}
	if len(rows) > 0 {
		stats.ColumnCount = len(rows[0])
	}
	for _, row := range rows {
		stats.TotalCells += len(row)
	}
	return stats
}

func appendIssue(issues []Issue, issue *Issue) []Issue {
	if issue == nil {
		return issues
	}
	return append(issues, *issue)
}
