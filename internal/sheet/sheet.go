// Package sheet loads spreadsheet and delimited-text sources into
// in-memory tables, infers column types and builds bounded structure
// previews. All objects are value objects constructed fresh per request;
// nothing in this package caches or shares state between calls.
package sheet

// ColumnType is the inferred semantic type of a column.
type ColumnType string

const (
	TypeNumber   ColumnType = "number"
	TypeCategory ColumnType = "category"
	TypeDatetime ColumnType = "datetime"
)

// Column is a named column with its inferred type. Type is sheet-scoped
// and recomputed from a fresh sample on every structural request.
type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// Row is an ordered list of cell values, aligned with the sheet's
// column order. Every row has an entry for every declared column;
// cells absent in the source are null.
type Row []Value

// Sheet is one logical table: a workbook tab or an entire delimited
// file. Rows preserve source order, which is significant for temporal
// series.
type Sheet struct {
	Name    string
	Columns []string
	Rows    []Row
}

// ColumnIndex returns the position of the named column, or false when
// the sheet has no such column.
func (s *Sheet) ColumnIndex(name string) (int, bool) {
	for i, c := range s.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// ColumnValues returns the values of column i across the given rows.
func ColumnValues(rows []Row, i int) []Value {
	out := make([]Value, len(rows))
	for j, r := range rows {
		out[j] = r[i]
	}
	return out
}
