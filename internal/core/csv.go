package core

// csv.go renders records as semicolon-separated CSV.
//
// Every cell is quoted, header or data, and embedded quotes are doubled as in
// RFC 4180. Cells are joined with ';' and rows with a bare '\n'. No newline
// is written after the last row.

import "strings"

const (
	// CellSeparator joins cells within a row.
	CellSeparator = ';'

	// RowSeparator joins rows.
	RowSeparator = '\n'

	quote = '"'
)

// FormatCell quotes a single value, doubling any embedded double quotes.
func FormatCell(val string) string {
	var b strings.Builder
	b.Grow(len(val) + 2)
	writeCell(&b, val)
	return b.String()
}

// RenderCSV renders the header row followed by one row per record.
// Headers missing from a record render as "".
func RenderCSV(headers []string, records []Record) string {
	var b strings.Builder

	writeRow(&b, headers, func(h string) string { return h })
	for _, rec := range records {
		b.WriteByte(RowSeparator)
		writeRow(&b, headers, rec.Get)
	}

	return b.String()
}

func writeRow(b *strings.Builder, headers []string, value func(string) string) {
	for i, h := range headers {
		if i > 0 {
			b.WriteByte(CellSeparator)
		}
		writeCell(b, value(h))
	}
}

func writeCell(b *strings.Builder, val string) {
	b.WriteByte(quote)

	start := 0
	for i := 0; i < len(val); i++ {
		if val[i] == quote {
			b.WriteString(val[start : i+1])
			b.WriteByte(quote)
			start = i + 1
		}
	}
	b.WriteString(val[start:])

	b.WriteByte(quote)
}
