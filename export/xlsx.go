package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/tsawler/figura/model"
)

// Fixed parts of a minimal single-sheet OOXML workbook.
const (
	contentTypesXML = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>` +
		`<Override PartName="/xl/worksheets/sheet1.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"/>` +
		`</Types>`

	rootRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.xml"/>` +
		`</Relationships>`

	workbookXML = xml.Header + `<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">` +
		`<sheets><sheet name="Table" sheetId="1" r:id="rId1"/></sheets>` +
		`</workbook>`

	workbookRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.xml"/>` +
		`</Relationships>`
)

// writeXLSX writes the table as a single-sheet workbook. Numeric
// tokens become number cells; everything else is stored as an inline
// string, which keeps the archive free of a shared-strings part.
func writeXLSX(w io.Writer, table *model.Table) error {
	zw := zip.NewWriter(w)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", rootRelsXML},
		{"xl/workbook.xml", workbookXML},
		{"xl/_rels/workbook.xml.rels", workbookRelsXML},
		{"xl/worksheets/sheet1.xml", sheetXML(table)},
	}

	for _, part := range parts {
		f, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("creating %s: %w", part.name, err)
		}
		if _, err := f.Write([]byte(part.content)); err != nil {
			return fmt.Errorf("writing %s: %w", part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing workbook: %w", err)
	}
	return nil
}

// sheetXML renders the worksheet part. The header row, when present,
// is row 1.
func sheetXML(table *model.Table) string {
	var sb bytes.Buffer
	sb.WriteString(xml.Header)
	sb.WriteString(`<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>`)

	rowNum := 1
	if len(table.Headers) > 0 {
		writeSheetRow(&sb, rowNum, table.Headers, true)
		rowNum++
	}
	for _, row := range table.Rows {
		writeSheetRow(&sb, rowNum, row, false)
		rowNum++
	}

	sb.WriteString(`</sheetData></worksheet>`)
	return sb.String()
}

// writeSheetRow renders one <row>. Header cells are always strings;
// data cells parse numerically where possible.
func writeSheetRow(sb *bytes.Buffer, rowNum int, cells []string, header bool) {
	fmt.Fprintf(sb, `<row r="%d">`, rowNum)
	for col, value := range cells {
		ref := cellRef(col, rowNum)
		if !header {
			if cell := model.ParseCell(value); cell.IsNumeric() {
				num, _ := cell.Number()
				fmt.Fprintf(sb, `<c r="%s"><v>%s</v></c>`,
					ref, strconv.FormatFloat(num, 'g', -1, 64))
				continue
			}
		}
		fmt.Fprintf(sb, `<c r="%s" t="inlineStr"><is><t>%s</t></is></c>`,
			ref, escapeXML(value))
	}
	sb.WriteString(`</row>`)
}

// cellRef builds an A1-style reference from zero-based column and
// one-based row.
func cellRef(col, row int) string {
	name := ""
	for col >= 0 {
		name = string(rune('A'+col%26)) + name
		col = col/26 - 1
	}
	return name + strconv.Itoa(row)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
