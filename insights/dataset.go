package insights

import (
	"github.com/tsawler/figura/model"
)

// Dataset is a table resolved into one canonical form: named columns
// over typed cells. Both input shapes the pipeline produces — record
// rows keyed by column name and raw 2-D string rows — resolve to a
// Dataset exactly once, at construction; no consumer re-inspects the
// input shape afterwards.
type Dataset struct {
	columns []string
	cells   [][]model.Cell
}

// FromTable builds a dataset from a structured table. The row label
// becomes the first column, followed by the table's headers; rows
// wider than the header list extend into synthetic column names. The
// table's typed records are used when present, otherwise the raw rows
// are normalized in place.
func FromTable(t *model.Table) *Dataset {
	if t.IsEmpty() {
		return &Dataset{}
	}

	width := 0
	for _, row := range t.Rows {
		if len(row)-1 > width {
			width = len(row) - 1
		}
	}
	columns := make([]string, 0, width+1)
	columns = append(columns, model.LabelColumn)
	for j := 0; j < width; j++ {
		columns = append(columns, t.ColumnName(j))
	}

	if len(t.Cleaned) == len(t.Rows) {
		return FromRecords(columns, t.Cleaned)
	}

	records := make([]model.Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		record := model.Record{model.LabelColumn: model.TextCell(row[0])}
		for j, token := range row[1:] {
			record[t.ColumnName(j)] = model.ParseCell(token)
		}
		records = append(records, record)
	}
	return FromRecords(columns, records)
}

// FromRecords builds a dataset from record rows. The columns argument
// fixes the column order; a record missing a column holds an empty
// cell there.
func FromRecords(columns []string, records []model.Record) *Dataset {
	ds := &Dataset{columns: columns}
	for _, record := range records {
		row := make([]model.Cell, len(columns))
		for j, name := range columns {
			if cell, ok := record[name]; ok {
				row[j] = cell
			} else {
				row[j] = model.EmptyCell()
			}
		}
		ds.cells = append(ds.cells, row)
	}
	return ds
}

// FromRows builds a dataset from raw 2-D string rows. When the table
// has more than one row and every first-row token is plain text, the
// first row supplies the column names and the rest is data; otherwise
// every row is data under synthetic column names. Rows shorter than
// the widest one are padded with empty cells.
func FromRows(rows [][]string) *Dataset {
	if len(rows) == 0 {
		return &Dataset{}
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	var columns []string
	data := rows
	if len(rows) > 1 && isHeaderRow(rows[0]) {
		columns = append([]string(nil), rows[0]...)
		for len(columns) < width {
			columns = append(columns, model.SyntheticColumn(len(columns)))
		}
		data = rows[1:]
	} else {
		columns = make([]string, width)
		for j := range columns {
			columns[j] = model.SyntheticColumn(j)
		}
	}

	ds := &Dataset{columns: columns}
	for _, row := range data {
		cells := make([]model.Cell, width)
		for j := range cells {
			if j < len(row) {
				cells[j] = model.ParseCell(row[j])
			} else {
				cells[j] = model.EmptyCell()
			}
		}
		ds.cells = append(ds.cells, cells)
	}
	return ds
}

// isHeaderRow reports whether every token of the row parses as plain
// text, the signature of a header row left in raw data.
func isHeaderRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	for _, token := range row {
		if model.ParseCell(token).Kind != model.CellText {
			return false
		}
	}
	return true
}

// RowCount returns the number of data rows.
func (d *Dataset) RowCount() int {
	return len(d.cells)
}

// ColumnCount returns the number of columns.
func (d *Dataset) ColumnCount() int {
	return len(d.columns)
}

// Columns returns the column names in order.
func (d *Dataset) Columns() []string {
	return append([]string(nil), d.columns...)
}

// IsEmpty reports whether the dataset holds no data rows.
func (d *Dataset) IsEmpty() bool {
	return d == nil || len(d.cells) == 0
}

// Column returns the cells of the named column in row order. The
// second return value is false when no such column exists; for
// duplicate column names the first occurrence wins.
func (d *Dataset) Column(name string) ([]model.Cell, bool) {
	idx, ok := d.columnIndex(name)
	if !ok {
		return nil, false
	}
	cells := make([]model.Cell, len(d.cells))
	for i, row := range d.cells {
		cells[i] = row[idx]
	}
	return cells, true
}

// NumericColumns returns the names of the columns whose every
// non-empty cell is numeric, in column order. A column with no values
// at all is not numeric.
func (d *Dataset) NumericColumns() []string {
	var numeric []string
	for j, name := range d.columns {
		if d.isNumericColumn(j) {
			numeric = append(numeric, name)
		}
	}
	return numeric
}

func (d *Dataset) columnIndex(name string) (int, bool) {
	for j, col := range d.columns {
		if col == name {
			return j, true
		}
	}
	return 0, false
}

func (d *Dataset) isNumericColumn(idx int) bool {
	count := 0
	for _, row := range d.cells {
		cell := row[idx]
		switch {
		case cell.IsEmpty():
			// missing values do not break numeric inference
		case cell.IsNumeric():
			count++
		default:
			return false
		}
	}
	return count > 0
}

// columnValues returns the numeric values of a column with their row
// indices. Non-numeric cells are treated as missing and skipped, so a
// stray text token degrades one cell, not the whole column.
func (d *Dataset) columnValues(idx int) ([]float64, []int) {
	var values []float64
	var rows []int
	for i, row := range d.cells {
		if v, ok := row[idx].Number(); ok {
			values = append(values, v)
			rows = append(rows, i)
		}
	}
	return values, rows
}
