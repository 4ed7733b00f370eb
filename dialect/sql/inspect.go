package sql

import (
	"context"
	"fmt"

	"github.com/syssam/veloxmap/dialect"
	"github.com/syssam/veloxmap/dialect/sql/schema"
)

// Inspector reads the column layout of existing tables.
type Inspector struct {
	drv     dialect.Driver
	dialect string
}

// NewInspector returns an inspector that queries through drv.
func NewInspector(drv dialect.Driver) *Inspector {
	return &Inspector{drv: drv, dialect: drv.Dialect()}
}

// Inspect returns the columns of the named table as reported by the
// database driver. The query selects no rows, so only the result set
// metadata is read.
func (i *Inspector) Inspect(ctx context.Context, table string) (*schema.Table, error) {
	name, err := QuoteIdent(i.dialect, table)
	if err != nil {
		return nil, err
	}
	rows := &Rows{}
	if err := i.drv.Query(ctx, "SELECT * FROM "+name+" WHERE 1 = 0", []any{}, rows); err != nil {
		return nil, fmt.Errorf("dialect/sql: inspect %s: %w", table, err)
	}
	defer rows.Close()
	cts, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: inspect %s: column types: %w", table, err)
	}
	t := schema.NewTable(table)
	for _, ct := range cts {
		c := &schema.Column{
			Name:   ct.Name(),
			DBType: ct.DatabaseTypeName(),
		}
		c.Type, _ = schema.CodeOf(c.DBType)
		if n, ok := ct.Length(); ok && n > 0 {
			c.Size = n
		}
		nullable, ok := ct.Nullable()
		c.Nullable = nullable
		c.NullableUnknown = !ok
		t.AddColumn(c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dialect/sql: inspect %s: %w", table, err)
	}
	return t, nil
}

// InspectAll inspects the named tables in order. A missing table is not an
// error; it is left out of the result so that validation reports it.
func (i *Inspector) InspectAll(ctx context.Context, tables ...string) ([]*schema.Table, error) {
	out := make([]*schema.Table, 0, len(tables))
	for _, name := range tables {
		t, err := i.Inspect(ctx, name)
		switch {
		case IsTableNotFound(err):
			continue
		case err != nil:
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
