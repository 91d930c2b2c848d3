// Package dataset loads CSV files into ordered, immutable row records.
//
// The first line of a file is the header. Every following line becomes one
// Row, zipped positionally against the header: short lines are padded with
// empty strings and fields beyond the header are dropped.
package dataset

import (
	"slices"
)

// Dataset is the ordered sequence of rows read from one CSV source.
type Dataset struct {
	// Path is the file the dataset was loaded from, empty for in-memory sources.
	Path string

	columns []string
	rows    []Row
	stats   Stats
}

// Stats summarizes how source lines were fitted to the header.
type Stats struct {
	Rows      int `json:"rows"`
	Columns   int `json:"columns"`
	Padded    int `json:"padded"`    // lines with fewer fields than the header
	Truncated int `json:"truncated"` // lines with more fields than the header
}

// New builds a dataset from a header and raw records. Records are fitted to
// the header the same way file input is. Line numbers assume the header was
// line 1 and every record occupied one line.
func New(header []string, records [][]string) *Dataset {
	b := newBuilder(header)
	for i, rec := range records {
		b.add(rec, i+2)
	}
	return b.dataset()
}

// Header returns the column names in file order.
func (d *Dataset) Header() []string { return slices.Clone(d.columns) }

// Len returns the number of data rows.
func (d *Dataset) Len() int { return len(d.rows) }

// Row returns the row at index i.
func (d *Dataset) Row(i int) Row { return d.rows[i] }

// Rows returns all rows in file order.
func (d *Dataset) Rows() []Row { return slices.Clone(d.rows) }

// Stats returns fitting statistics gathered while loading.
func (d *Dataset) Stats() Stats { return d.stats }

// builder accumulates rows against a fixed header.
type builder struct {
	columns []string
	// slot maps each header position to its column; duplicate header names
	// share the first column, so the last duplicate's value wins.
	slot  []int
	rows  []Row
	stats Stats
}

func newBuilder(header []string) *builder {
	b := &builder{slot: make([]int, len(header))}
	seen := make(map[string]int, len(header))
	for i, name := range header {
		if pos, ok := seen[name]; ok {
			b.slot[i] = pos
			continue
		}
		seen[name] = len(b.columns)
		b.slot[i] = len(b.columns)
		b.columns = append(b.columns, name)
	}
	return b
}

func (b *builder) add(fields []string, line int) {
	switch {
	case len(fields) < len(b.slot):
		b.stats.Padded++
	case len(fields) > len(b.slot):
		b.stats.Truncated++
	}

	values := make([]string, len(b.columns))
	for i, pos := range b.slot {
		v := ""
		if i < len(fields) {
			v = fields[i]
		}
		values[pos] = v
	}

	b.rows = append(b.rows, Row{
		columns: b.columns,
		values:  values,
		index:   len(b.rows),
		line:    line,
	})
}

func (b *builder) dataset() *Dataset {
	b.stats.Rows = len(b.rows)
	b.stats.Columns = len(b.columns)
	return &Dataset{
		columns: b.columns,
		rows:    b.rows,
		stats:   b.stats,
	}
}
