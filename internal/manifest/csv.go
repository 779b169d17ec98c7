package manifest

import (
	"strconv"
	"strings"
)

// ParseCSV tokenizes CSV text into rows of fields.
//
// The tokenizer is deliberately tolerant rather than strict RFC 4180: a
// leading UTF-8 byte order mark is stripped, CRLF is normalized to a single
// newline before scanning, a doubled quote inside a quoted field is an escaped
// literal quote, and an unterminated quoted field is recovered best-effort
// instead of reported as a syntax error. Rows that consist of a single empty
// field (trailing blank lines) are dropped.
func ParseCSV(text string) [][]string {
	text = strings.TrimPrefix(text, "\uFEFF")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
	)

	endField := func() {
		row = append(row, field.String())
		field.Reset()
	}
	endRow := func() {
		endField()
		// A lone empty field is an artifact of a blank line, not data.
		if len(row) == 1 && row[0] == "" {
			row = nil
			return
		}
		rows = append(rows, row)
		row = nil
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case inQuotes:
			if c == '"' {
				if i+1 < len(runes) && runes[i+1] == '"' {
					field.WriteRune('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				field.WriteRune(c)
			}
		case c == '"':
			inQuotes = true
		case c == ',':
			endField()
		case c == '\n':
			endRow()
		default:
			field.WriteRune(c)
		}
	}
	// Input not ending in a newline still carries a final field/row.
	if field.Len() > 0 || len(row) > 0 {
		endRow()
	}

	return rows
}

// RecordsFromCSV parses CSV text and zips each data row against the trimmed
// header names from row 0. Headers with no corresponding value default to the
// empty string; extra values beyond the header width are ignored.
//
// Duplicate header names are not supported: the last column wins, which is an
// accident of map assignment order rather than a guarantee.
func RecordsFromCSV(text string) []map[string]string {
	rows := ParseCSV(text)
	if len(rows) == 0 {
		return nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		records = append(records, rec)
	}
	return records
}

// RawItemFromRecord maps one header-keyed CSV record to the raw item shape.
// pos is the 1-based row position, used as the id when the record carries no
// parseable numeric id.
func RawItemFromRecord(rec map[string]string, pos int) RawItem {
	id, err := strconv.ParseInt(strings.TrimSpace(rec["id"]), 10, 64)
	if err != nil {
		id = int64(pos)
	}
	return RawItem{
		ID:          id,
		RID:         rec["rid"],
		Name:        rec["name"],
		DisplayName: rec["displayName"],
		Category:    rec["category"],
		Type:        rec["type"],
		Src:         rec["src"],
		OriginalExt: rec["original_ext"],
		Folder:      rec["folder"],
		Tags:        rec["tags"],
		ColorName:   rec["colorName"],
		ColorHex:    rec["colorHex"],
		Year:        rec["year"],
		Month:       rec["month"],
	}
}

// MarshalCSV serializes items back to CSV text in the canonical Header order,
// quoting any field containing a comma, quote, or newline. Round-tripping the
// result through RecordsFromCSV yields field-wise equal records.
func MarshalCSV(items []Item) string {
	var b strings.Builder
	writeRow := func(fields []string) {
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quoteCSVField(f))
		}
		b.WriteByte('\n')
	}

	writeRow(Header)
	for _, it := range items {
		writeRow([]string{
			formatID(it.ID), it.RID, it.Name, it.DisplayName, it.Category,
			string(it.Type), it.Src, it.OriginalExt, it.Folder, it.Tags,
			it.ColorName, it.ColorHex, it.Year, it.Month,
		})
	}
	return b.String()
}

func quoteCSVField(f string) string {
	if !strings.ContainsAny(f, ",\"\n\r") {
		return f
	}
	return `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
