package listview

import (
	"slices"

	"github.com/Veraticus/ledgerdeck/internal/export"
	"github.com/Veraticus/ledgerdeck/internal/model"
)

// Column maps a record field to a display or export header.
type Column struct {
	Field string
	Label string
}

// Messages are the static user-facing errors of a resource page.
type Messages struct {
	Fetch  string
	Create string
	Update string
	Delete string
}

// Config describes one resource page.
type Config struct {
	Name             string
	Singular         string
	Title            string
	SearchField      string
	Filename         string
	Messages         Messages
	FilterableFields []string
	Columns          []Column
	// ExportColumns default to Columns when empty.
	ExportColumns []Column
}

// CanFilter reports whether field accepts equality filters.
func (c Config) CanFilter(field string) bool {
	return slices.Contains(c.FilterableFields, field)
}

// Noun names one record of the page, e.g. "budget".
func (c Config) Noun() string {
	if c.Singular != "" {
		return c.Singular
	}
	return c.Name
}

func (c Config) exportColumns() []Column {
	if len(c.ExportColumns) > 0 {
		return c.ExportColumns
	}
	return c.Columns
}

// BuildDocument renders records into a CSV document with the given columns.
func BuildDocument[T model.Record](filename string, records []T, columns []Column) export.Document {
	doc := export.Document{
		Filename: filename,
		Header:   make([]string, len(columns)),
		Rows:     make([][]string, 0, len(records)),
	}
	for i, col := range columns {
		doc.Header[i] = col.Label
	}
	for _, r := range records {
		doc.Rows = append(doc.Rows, row(r, columns))
	}
	return doc
}

func row(r model.Record, columns []Column) []string {
	cells := make([]string, len(columns))
	for i, col := range columns {
		cells[i] = r.Field(col.Field)
	}
	return cells
}
