// Package htmltable reads tables from HTML documents into the model
// table form, so externally supplied HTML tables can flow through the
// same validation and insight stages as OCR-recovered ones.
package htmltable

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/figura/model"
)

// Reader provides access to the tables found in one HTML document.
type Reader struct {
	tables []*ParsedTable
}

// ParsedTable is a table lifted out of the HTML tree before it is
// squared off into a model.Table.
type ParsedTable struct {
	Rows      [][]Cell
	HasHeader bool
}

// Cell is one td or th element.
type Cell struct {
	Text     string
	IsHeader bool
	RowSpan  int
	ColSpan  int
}

// Open opens an HTML file and parses its tables.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses HTML from an io.Reader.
func OpenReader(r io.Reader) (*Reader, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	reader := &Reader{}
	reader.collectTables(doc)
	return reader, nil
}

// Parse parses tables out of an HTML string.
func Parse(content string) (*Reader, error) {
	return OpenReader(strings.NewReader(content))
}

// Count returns the number of tables in the document.
func (r *Reader) Count() int {
	return len(r.tables)
}

// Table returns table i converted to the model form, or nil when i is
// out of range.
func (r *Reader) Table(i int) *model.Table {
	if i < 0 || i >= len(r.tables) {
		return nil
	}
	return r.tables[i].ToTable()
}

// Tables returns every table in the document in model form.
func (r *Reader) Tables() []*model.Table {
	tables := make([]*model.Table, len(r.tables))
	for i, parsed := range r.tables {
		tables[i] = parsed.ToTable()
	}
	return tables
}

// collectTables walks the tree gathering table elements. Nested
// tables are collected independently of their parents.
func (r *Reader) collectTables(n *html.Node) {
	if n.Type == html.ElementNode && n.Data == "table" {
		if table := parseTable(n); len(table.Rows) > 0 {
			r.tables = append(r.tables, table)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.collectTables(c)
	}
}

// parseTable extracts rows from a table element, honoring thead and
// tbody sections.
func parseTable(tableNode *html.Node) *ParsedTable {
	table := &ParsedTable{}

	for c := tableNode.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "thead":
			table.HasHeader = true
			parseSection(c, table, true)
		case "tbody":
			parseSection(c, table, false)
		case "tr":
			if row := parseRow(c, false); len(row) > 0 {
				table.Rows = append(table.Rows, row)
			}
		}
	}

	// Without an explicit thead, a first row of th cells is a header
	if !table.HasHeader && len(table.Rows) > 0 {
		header := true
		for _, cell := range table.Rows[0] {
			if !cell.IsHeader {
				header = false
				break
			}
		}
		table.HasHeader = header
	}

	return table
}

// parseSection parses tr children of a thead or tbody element.
func parseSection(section *html.Node, table *ParsedTable, isHeader bool) {
	for c := section.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "tr" {
			if row := parseRow(c, isHeader); len(row) > 0 {
				table.Rows = append(table.Rows, row)
			}
		}
	}
}

// parseRow parses td and th children of a tr element.
func parseRow(tr *html.Node, isHeader bool) []Cell {
	var row []Cell
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}
		cell := Cell{
			Text:     strings.TrimSpace(textContent(c)),
			IsHeader: isHeader || c.Data == "th",
			RowSpan:  1,
			ColSpan:  1,
		}
		for _, attr := range c.Attr {
			switch attr.Key {
			case "rowspan":
				if v, err := strconv.Atoi(attr.Val); err == nil && v > 0 {
					cell.RowSpan = v
				}
			case "colspan":
				if v, err := strconv.Atoi(attr.Val); err == nil && v > 0 {
					cell.ColSpan = v
				}
			}
		}
		row = append(row, cell)
	}
	return row
}

// ToTable squares the parsed rows into the model form. The first cell
// of each data row becomes the row label, matching the convention the
// OCR structurer uses, so the header for the label column is dropped.
// Column-spanning cells repeat their text across the spanned columns.
func (p *ParsedTable) ToTable() *model.Table {
	table := &model.Table{}
	if len(p.Rows) == 0 {
		return table
	}

	dataStart := 0
	if p.HasHeader {
		header := expandRow(p.Rows[0])
		if len(header) > 1 {
			table.Headers = header[1:]
		} else {
			table.Headers = header
		}
		dataStart = 1
	}

	for _, row := range p.Rows[dataStart:] {
		cells := expandRow(row)
		if len(cells) == 0 {
			continue
		}
		table.Rows = append(table.Rows, cells)

		record := model.Record{model.LabelColumn: model.TextCell(cells[0])}
		for i, value := range cells[1:] {
			record[table.ColumnName(i)] = model.ParseCell(value)
		}
		table.Cleaned = append(table.Cleaned, record)
	}

	return table
}

// expandRow flattens colspan cells into repeated values.
func expandRow(row []Cell) []string {
	var out []string
	for _, cell := range row {
		for i := 0; i < cell.ColSpan; i++ {
			out = append(out, cell.Text)
		}
	}
	return out
}

// textContent gathers all text beneath a node.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}
