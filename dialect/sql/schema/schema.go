// Package schema describes the tables a mapping expects, renders their
// column types per dialect and validates them against the columns found in
// a live database.
package schema

import (
	"github.com/syssam/veloxmap/types/sqltype"
)

// Table is a table with its columns in declaration order.
type Table struct {
	Name       string
	Columns    []*Column
	PrimaryKey []*Column
}

// NewTable returns a table with the given name.
func NewTable(name string) *Table {
	return &Table{Name: name}
}

// AddColumn appends a column to the table.
func (t *Table) AddColumn(c *Column) *Table {
	t.Columns = append(t.Columns, c)
	return t
}

// AddPrimary appends a column and marks it as part of the primary key.
func (t *Table) AddPrimary(c *Column) *Table {
	t.AddColumn(c)
	t.PrimaryKey = append(t.PrimaryKey, c)
	return t
}

// Column returns the named column.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Column is a table column.
type Column struct {
	Name string
	// Type is the SQL type code of the column.
	Type sqltype.Code
	// DBType is the column type as written in the database dialect,
	// e.g. "character varying(255)" or "longtext".
	DBType   string
	Size     int64
	Nullable bool
	// NullableUnknown is set on inspected columns whose driver does not
	// report nullability.
	NullableUnknown bool
	// Attribute is the mapped attribute, empty for inspected columns.
	Attribute string
}
