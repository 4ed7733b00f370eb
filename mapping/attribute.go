// Package mapping holds the mapping model of persistent entities and the
// resolver that picks a basic type for every mapped attribute.
//
// Attribute metadata comes from struct tags (Introspect) or from EntityDef
// values built by hand or loaded from a mapping file. Each property owns a
// Value that resolves its basic type once, on first access.
package mapping

import (
	"reflect"

	"github.com/syssam/veloxmap/converter"
)

// Attribute is the metadata of a single mapped attribute.
type Attribute struct {
	// Entity and Name identify the attribute. Entity may be empty for
	// attributes resolved outside an entity.
	Entity string
	Name   string

	// GoType is the declared Go type. It may be nil when the attribute is
	// declared without a type, in which case only an explicit type name or
	// converter can resolve it.
	GoType reflect.Type

	// TypeName selects a registered basic type by name.
	TypeName string

	// DisableConversion turns off converter matching for the attribute.
	DisableConversion bool

	// Converter is an explicitly assigned converter. ConverterName refers to a
	// registered converter and is used when Converter is nil.
	Converter     *converter.Definition
	ConverterName string
}

// Nullable reports if the attribute is declared as a pointer.
func (a *Attribute) Nullable() bool {
	return a.GoType != nil && a.GoType.Kind() == reflect.Pointer
}

// DomainType returns the declared type with pointers removed.
func (a *Attribute) DomainType() reflect.Type {
	return indirect(a.GoType)
}

func indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
