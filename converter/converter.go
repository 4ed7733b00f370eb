// Package converter provides attribute converters: bidirectional functions
// between an attribute's Go type and a Go type a column can hold.
//
// A converter is wrapped into a Definition together with an auto-apply flag.
// Auto-apply definitions are used for every attribute of their attribute type
// that does not opt out or pick a converter or type explicitly.
package converter

import (
	"fmt"
	"reflect"
)

// AttributeConverter converts values of attribute type A to column type C
// and back.
type AttributeConverter[A, C any] interface {
	ToColumn(A) (C, error)
	ToAttribute(C) (A, error)
}

type funcs[A, C any] struct {
	to   func(A) (C, error)
	from func(C) (A, error)
}

func (f funcs[A, C]) ToColumn(v A) (C, error)    { return f.to(v) }
func (f funcs[A, C]) ToAttribute(v C) (A, error) { return f.from(v) }

// Func adapts a pair of functions to an AttributeConverter.
func Func[A, C any](to func(A) (C, error), from func(C) (A, error)) AttributeConverter[A, C] {
	return funcs[A, C]{to: to, from: from}
}

// Definition is a type-erased attribute converter. Its attribute and column
// types are fixed when it is created.
type Definition struct {
	name      string
	attr      reflect.Type
	column    reflect.Type
	autoApply bool
	conv      any
	to        func(any) (any, error)
	from      func(any) (any, error)
}

// New returns a definition for the given converter.
func New[A, C any](name string, c AttributeConverter[A, C], autoApply bool) *Definition {
	d := &Definition{
		name:      name,
		attr:      reflect.TypeFor[A](),
		column:    reflect.TypeFor[C](),
		autoApply: autoApply,
		conv:      c,
	}
	d.to = func(v any) (any, error) {
		a, ok := v.(A)
		if !ok {
			return nil, fmt.Errorf("converter %s: expected %v, got %T", name, d.attr, v)
		}
		return c.ToColumn(a)
	}
	d.from = func(v any) (any, error) {
		cv, ok := v.(C)
		if !ok {
			return nil, fmt.Errorf("converter %s: expected %v, got %T", name, d.column, v)
		}
		return c.ToAttribute(cv)
	}
	return d
}

// Name returns the registration name.
func (d *Definition) Name() string { return d.name }

// AttributeType returns the Go type the converter accepts on the attribute side.
func (d *Definition) AttributeType() reflect.Type { return d.attr }

// ColumnType returns the Go type the converter produces for the column.
func (d *Definition) ColumnType() reflect.Type { return d.column }

// AutoApply reports if the converter applies to every attribute of its
// attribute type.
func (d *Definition) AutoApply() bool { return d.autoApply }

// Converter returns the wrapped AttributeConverter.
func (d *Definition) Converter() any { return d.conv }

// WithAutoApply returns a copy of d with the given auto-apply flag.
func (d *Definition) WithAutoApply(on bool) *Definition {
	c := *d
	c.autoApply = on
	return &c
}

// ToColumn converts an attribute value into a column value.
func (d *Definition) ToColumn(v any) (any, error) { return d.to(v) }

// ToAttribute converts a column value into an attribute value.
func (d *Definition) ToAttribute(v any) (any, error) { return d.from(v) }

// String implements fmt.Stringer.
func (d *Definition) String() string {
	s := fmt.Sprintf("%s(%v -> %v)", d.name, d.attr, d.column)
	if d.autoApply {
		s += " auto-apply"
	}
	return s
}
