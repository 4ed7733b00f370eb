// Package types provides basic types, the unit a mapping uses to read and
// write a single column, and the registry of named basic types.
//
// A basic type joins three parts:
//
//   - the domain descriptor: the attribute's declared Go type
//   - the Go descriptor: the Go type handed to the database driver
//   - the SQL descriptor: the column's SQL type code
//
// For plain types the domain and Go descriptors are the same. Converted
// types place an attribute converter between the two.
package types

import (
	"database/sql/driver"
	"fmt"
	"reflect"

	"github.com/syssam/veloxmap"
	"github.com/syssam/veloxmap/converter"
	"github.com/syssam/veloxmap/types/gotype"
	"github.com/syssam/veloxmap/types/sqltype"
)

// BasicType maps a single attribute value to a single column.
type BasicType struct {
	name   string
	domain *gotype.Descriptor
	gotyp  *gotype.Descriptor
	sql    *sqltype.Descriptor
	conv   *converter.Definition
}

// New returns a plain basic type whose domain and driver sides are the same
// Go descriptor.
func New(name string, d *gotype.Descriptor, s *sqltype.Descriptor) *BasicType {
	return &BasicType{name: name, domain: d, gotyp: d, sql: s}
}

// NewConverted returns a basic type that passes values through the given
// converter. domain describes the attribute type, column describes the
// converter's column type and s is the SQL type of the column.
func NewConverted(def *converter.Definition, domain, column *gotype.Descriptor, s *sqltype.Descriptor) *BasicType {
	return &BasicType{
		name:   "converted::" + def.Name(),
		domain: domain,
		gotyp:  column,
		sql:    s,
		conv:   def,
	}
}

// Name returns the registration name of the type.
func (t *BasicType) Name() string { return t.name }

// DomainDescriptor returns the descriptor of the attribute's Go type.
func (t *BasicType) DomainDescriptor() *gotype.Descriptor { return t.domain }

// GoDescriptor returns the descriptor of the Go value bound to the driver.
// For converted types it describes the converter's column type.
func (t *BasicType) GoDescriptor() *gotype.Descriptor { return t.gotyp }

// SQLDescriptor returns the SQL side of the type.
func (t *BasicType) SQLDescriptor() *sqltype.Descriptor { return t.sql }

// Converter returns the attribute converter of a converted type, or nil.
func (t *BasicType) Converter() *converter.Definition { return t.conv }

// Converted reports if values pass through an attribute converter.
func (t *BasicType) Converted() bool { return t.conv != nil }

// String implements fmt.Stringer.
func (t *BasicType) String() string {
	return fmt.Sprintf("%s(%s -> %s)", t.name, t.gotyp, t.sql)
}

// Equal reports if both types read and write columns the same way.
func (t *BasicType) Equal(o *BasicType) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.name == o.name &&
		t.domain == o.domain &&
		t.gotyp == o.gotyp &&
		t.sql == o.sql &&
		t.conv == o.conv
}

// Value converts an attribute value into a driver value. A nil attribute
// value (or nil pointer) is written as NULL without consulting the converter.
func (t *BasicType) Value(v any) (driver.Value, error) {
	v, ok := deref(v)
	if !ok {
		return nil, nil
	}
	if t.conv != nil {
		cv, err := t.conv.ToColumn(as(v, t.conv.AttributeType()))
		if err != nil {
			return nil, veloxmap.NewConversionError(t.name, "bind", err)
		}
		if v, ok = deref(cv); !ok {
			return nil, nil
		}
	}
	dv, err := t.gotyp.Bind(v)
	if err != nil {
		return nil, veloxmap.NewConversionError(t.name, "bind", err)
	}
	return dv, nil
}

// Scan converts a driver value into an attribute value. NULL columns are
// returned as nil.
func (t *BasicType) Scan(src any) (any, error) {
	if src == nil {
		return nil, nil
	}
	v, err := t.gotyp.Extract(src)
	if err != nil {
		return nil, veloxmap.NewConversionError(t.name, "extract", err)
	}
	if t.conv == nil {
		return v, nil
	}
	av, err := t.conv.ToAttribute(as(v, t.conv.ColumnType()))
	if err != nil {
		return nil, veloxmap.NewConversionError(t.name, "extract", err)
	}
	return av, nil
}

// deref returns the value behind v, reporting false for nil and nil pointers.
func deref(v any) (any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	return rv.Interface(), true
}

// as returns v as a value of type t, taking the address of a copy of v when
// t is a pointer to the type of v.
func as(v any, t reflect.Type) any {
	if v == nil || t == nil || t.Kind() != reflect.Pointer {
		return v
	}
	rv := reflect.ValueOf(v)
	if rv.Type() != t.Elem() {
		return v
	}
	p := reflect.New(t.Elem())
	p.Elem().Set(rv)
	return p.Interface()
}
