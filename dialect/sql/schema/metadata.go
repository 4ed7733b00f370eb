package schema

import (
	"github.com/syssam/veloxmap"
	"github.com/syssam/veloxmap/config"
	"github.com/syssam/veloxmap/mapping"
)

// TablesFromMetadata returns the tables the mapped entities expect, with
// column types written for the given dialect.
func TablesFromMetadata(md *config.Metadata, d string) ([]*Table, error) {
	var (
		tables []*Table
		errs   []error
	)
	for _, e := range md.Entities() {
		t, err := TableFromEntity(e, d)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		tables = append(tables, t)
	}
	if err := veloxmap.NewAggregateError(errs...); err != nil {
		return nil, err
	}
	return tables, nil
}

// TableFromEntity returns the table of a single entity.
func TableFromEntity(e *mapping.Entity, d string) (*Table, error) {
	t := NewTable(e.Table())
	for _, p := range e.Properties() {
		typ, err := p.Type()
		if err != nil {
			return nil, err
		}
		code := typ.SQLDescriptor().Code()
		attr := p.Value.Attribute()
		c := &Column{
			Name:      p.Column,
			Type:      code,
			Nullable:  attr.Nullable() && !p.ID,
			Attribute: p.Name,
		}
		// Types without a dialect column type (OTHER) are left to the database.
		if dbType, err := FormatColumnType(code, d, 0); err == nil {
			c.DBType = dbType
		}
		if p.ID {
			t.AddPrimary(c)
		} else {
			t.AddColumn(c)
		}
	}
	return t, nil
}
