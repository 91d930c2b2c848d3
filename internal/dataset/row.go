package dataset

import (
	"bytes"
	"encoding/json"
	"slices"
)

// Row is one parsed data line: an ordered mapping from column name to cell value.
// Rows are immutable once built; accessors return copies.
type Row struct {
	columns []string // shared with the owning dataset
	values  []string
	index   int
	line    int
}

// Index returns the 0-based position of the row in its dataset.
func (r Row) Index() int { return r.index }

// Line returns the 1-based source line the row was parsed from.
func (r Row) Line() int { return r.line }

// Len returns the number of columns.
func (r Row) Len() int { return len(r.columns) }

// Columns returns the column names in header order.
func (r Row) Columns() []string { return slices.Clone(r.columns) }

// Values returns the cell values aligned with Columns.
func (r Row) Values() []string { return slices.Clone(r.values) }

// Get returns the value stored under column.
func (r Row) Get(column string) (string, bool) {
	for i, c := range r.columns {
		if c == column {
			return r.values[i], true
		}
	}
	return "", false
}

// Map returns the row as an unordered map.
func (r Row) Map() map[string]string {
	m := make(map[string]string, len(r.columns))
	for i, c := range r.columns {
		m[c] = r.values[i]
	}
	return m
}

// Equal reports whether two rows hold the same columns, in the same order,
// with the same values. Index and source line are not compared.
func (r Row) Equal(other Row) bool {
	return slices.Equal(r.columns, other.columns) && slices.Equal(r.values, other.values)
}

// MarshalJSON encodes the row as a JSON object whose keys keep header order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// RowsEqual reports whether two row sequences are structurally identical in
// content and order.
func RowsEqual(a, b []Row) bool {
	return slices.EqualFunc(a, b, Row.Equal)
}
