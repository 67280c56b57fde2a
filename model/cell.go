package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// CellKind identifies the parsed type of a cell value.
type CellKind int

const (
	// CellEmpty indicates a missing or blank value.
	CellEmpty CellKind = iota
	// CellInteger indicates a whole-number value.
	CellInteger
	// CellFloat indicates a decimal value.
	CellFloat
	// CellText indicates a plain string value.
	CellText
)

// String returns the string representation of the cell kind.
func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellInteger:
		return "integer"
	case CellFloat:
		return "float"
	case CellText:
		return "text"
	default:
		return "unknown"
	}
}

// Cell is a typed table value. Exactly one of the value fields is
// meaningful, selected by Kind.
type Cell struct {
	Kind  CellKind
	Int   int64
	Float float64
	Text  string
}

// EmptyCell returns a cell holding no value.
func EmptyCell() Cell {
	return Cell{Kind: CellEmpty}
}

// IntCell returns an integer cell.
func IntCell(v int64) Cell {
	return Cell{Kind: CellInteger, Int: v}
}

// FloatCell returns a float cell.
func FloatCell(v float64) Cell {
	return Cell{Kind: CellFloat, Float: v}
}

// TextCell returns a text cell.
func TextCell(s string) Cell {
	return Cell{Kind: CellText, Text: s}
}

// ParseCell normalizes a raw token into a typed cell. Thousands
// separators (commas) are stripped before numeric parsing. A token
// containing a decimal point parses as a float, an all-digit token as
// an integer, and anything else stays text. The function is total: it
// never fails, it only falls back to text.
func ParseCell(token string) Cell {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return EmptyCell()
	}

	numeric := strings.ReplaceAll(trimmed, ",", "")

	if strings.Contains(numeric, ".") {
		if f, err := strconv.ParseFloat(numeric, 64); err == nil {
			return FloatCell(f)
		}
		return TextCell(trimmed)
	}

	if i, err := strconv.ParseInt(numeric, 10, 64); err == nil {
		return IntCell(i)
	}

	return TextCell(trimmed)
}

// IsNumeric reports whether the cell holds an integer or float value.
func (c Cell) IsNumeric() bool {
	return c.Kind == CellInteger || c.Kind == CellFloat
}

// IsEmpty reports whether the cell holds no value. A text cell that is
// blank after trimming also counts as empty.
func (c Cell) IsEmpty() bool {
	if c.Kind == CellEmpty {
		return true
	}
	return c.Kind == CellText && strings.TrimSpace(c.Text) == ""
}

// Number returns the cell value as a float64. The second return value
// is false when the cell is not numeric.
func (c Cell) Number() (float64, bool) {
	switch c.Kind {
	case CellInteger:
		return float64(c.Int), true
	case CellFloat:
		return c.Float, true
	default:
		return 0, false
	}
}

// String returns the cell value formatted as a string. Empty cells
// produce the empty string.
func (c Cell) String() string {
	switch c.Kind {
	case CellInteger:
		return strconv.FormatInt(c.Int, 10)
	case CellFloat:
		return strconv.FormatFloat(c.Float, 'g', -1, 64)
	case CellText:
		return c.Text
	default:
		return ""
	}
}

// MarshalJSON encodes the cell as its dynamic value: null for empty,
// a number, or a string.
func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Value())
}

// Value returns the cell's dynamic value for serialization: nil for
// empty, int64, float64, or string.
func (c Cell) Value() any {
	switch c.Kind {
	case CellInteger:
		return c.Int
	case CellFloat:
		return c.Float
	case CellText:
		return c.Text
	default:
		return nil
	}
}
