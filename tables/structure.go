package tables

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/tsawler/figura/model"
)

// Structurer parses a table block into headers, raw rows, and typed
// records. Rows are never rejected for having too many or too few
// values; column names fall back to synthetic ones where needed.
type Structurer struct {
	config Config
}

// NewStructurer creates a structurer with default configuration
func NewStructurer() *Structurer {
	return &Structurer{config: DefaultConfig()}
}

// Configure sets structurer parameters
func (s *Structurer) Configure(config Config) error {
	s.config = config
	return nil
}

// Structure parses block into a table. The first line supplies the
// headers; a leading all-digit header token (a stray year or row
// index picked up by recognition) is dropped. Every later line
// becomes one row whose first token is the row label. An empty block
// yields an empty table.
func (s *Structurer) Structure(block model.TableBlock) *model.Table {
	table := &model.Table{}
	if block.IsEmpty() {
		return table
	}

	// Step 1: derive headers from the first line
	headers := strings.Fields(block[0])
	if len(headers) > 0 && allDigits(headers[0]) {
		headers = headers[1:]
	}
	if len(headers) == 0 {
		headers = make([]string, s.config.FallbackColumns)
		for i := range headers {
			headers[i] = "Column_" + strconv.Itoa(i+1)
		}
	}
	table.Headers = headers

	// Step 2: remaining lines become rows, label first
	for _, line := range block[1:] {
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		table.Rows = append(table.Rows, tokens)
	}

	// Step 3: typed records keyed by column name. The label is kept
	// as text even when it looks numeric.
	for _, row := range table.Rows {
		record := model.Record{model.LabelColumn: model.TextCell(row[0])}
		for i, token := range row[1:] {
			record[table.ColumnName(i)] = model.ParseCell(token)
		}
		table.Cleaned = append(table.Cleaned, record)
	}

	return table
}

// Structure runs the structurer with default configuration.
func Structure(block model.TableBlock) *model.Table {
	return NewStructurer().Structure(block)
}

// allDigits reports whether s is non-empty and consists only of
// decimal digits.
func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
