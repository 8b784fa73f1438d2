// Package export builds CSV documents from list views and delivers them to
// a local file, an S3 bucket or a Google Sheet.
package export

import (
	"bytes"
	"strings"
)

// Document is a CSV rendering of a filtered list view.
type Document struct {
	Filename string
	Header   []string
	Rows     [][]string
}

// Bytes renders the document. Cells are joined with commas and rows with
// newlines; values are written verbatim, so embedded commas, quotes and
// newlines are not escaped.
func (d Document) Bytes() []byte {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(d.Header, ","))
	for _, row := range d.Rows {
		buf.WriteByte('\n')
		buf.WriteString(strings.Join(row, ","))
	}
	return buf.Bytes()
}

// Values returns the header followed by the rows, the shape spreadsheet
// APIs expect.
func (d Document) Values() [][]any {
	values := make([][]any, 0, len(d.Rows)+1)
	values = append(values, toAny(d.Header))
	for _, row := range d.Rows {
		values = append(values, toAny(row))
	}
	return values
}

// Parse splits rendered CSV back into header and rows. It is the inverse of
// Bytes for values without commas or newlines.
func Parse(filename string, data []byte) Document {
	doc := Document{Filename: filename}
	if len(data) == 0 {
		return doc
	}
	lines := strings.Split(string(data), "\n")
	doc.Header = strings.Split(lines[0], ",")
	for _, line := range lines[1:] {
		doc.Rows = append(doc.Rows, strings.Split(line, ","))
	}
	return doc
}

func toAny(cells []string) []any {
	out := make([]any, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}
