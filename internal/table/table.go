// Package table provides the generic candidate table the matching engine
// operates on: an ordered sequence of rows with named string fields and a
// validated column accessor.
package table

import (
	"fmt"

	apperrors "github.com/brucee63/namematch/pkg/errors"
)

// Row holds the named fields of one candidate record. Fields beyond the match
// column are carried through matching untouched.
type Row map[string]string

// Clone returns a copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an ordered, read-only collection of rows. The matching engine
// never mutates a table; updates are expressed by building a new one.
type Table struct {
	rows    []Row
	columns map[string]struct{}
}

// New builds a Table from the given rows. The slice is copied so later
// appends by the caller do not leak in; the column set is the union of field
// names across all rows.
func New(rows []Row) *Table {
	t := &Table{
		rows:    make([]Row, len(rows)),
		columns: make(map[string]struct{}),
	}
	copy(t.rows, rows)
	for _, row := range rows {
		for name := range row {
			t.columns[name] = struct{}{}
		}
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns the i-th row.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// HasColumn reports whether any row carries the named field.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Column resolves a field accessor for the named column, validating its
// presence once. Rows lacking the field read as the empty string. An unknown
// name (including any name on an empty table) fails with ErrInvalidColumn.
func (t *Table) Column(name string) (Column, error) {
	if !t.HasColumn(name) {
		return Column{}, fmt.Errorf("%w: %q not found in candidate table", apperrors.ErrInvalidColumn, name)
	}
	return Column{name: name, table: t}, nil
}

// Column is a validated accessor for one field across a table's rows.
type Column struct {
	name  string
	table *Table
}

// Name returns the column's field name.
func (c Column) Name() string {
	return c.name
}

// Value returns the field value of the i-th row, or "" when the row lacks
// the field.
func (c Column) Value(i int) string {
	return c.table.rows[i][c.name]
}
