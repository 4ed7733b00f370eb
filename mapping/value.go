package mapping

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/syssam/veloxmap/converter"
	"github.com/syssam/veloxmap/types"
)

// Value is the simple value of a mapped attribute: one column whose basic
// type is resolved on first access and then fixed.
//
// The setters configure the attribute and are meant for bootstrap. They
// have no effect once Type has been called.
type Value struct {
	resolver *Resolver
	attr     Attribute

	once sync.Once
	typ  *types.BasicType
	err  error
}

// NewValue returns a value resolved by r.
func NewValue(r *Resolver) *Value {
	return &Value{resolver: r}
}

// Attribute returns a copy of the attribute metadata.
func (v *Value) Attribute() Attribute { return v.attr }

// SetAttribute replaces the attribute metadata.
func (v *Value) SetAttribute(a Attribute) { v.attr = a }

// SetConverter assigns a converter explicitly.
func (v *Value) SetConverter(def *converter.Definition) { v.attr.Converter = def }

// SetConverterName assigns a registered converter by name.
func (v *Value) SetConverterName(name string) { v.attr.ConverterName = name }

// SetTypeName selects a registered basic type by name.
func (v *Value) SetTypeName(name string) { v.attr.TypeName = name }

// DisableConversion turns off converter matching.
func (v *Value) DisableConversion() { v.attr.DisableConversion = true }

// SetTypeUsingReflection sets the declared type of the value from the named
// attribute of owner. owner is a struct value, a pointer to one or its
// reflect.Type. The attribute is matched by attribute name or field name.
func (v *Value) SetTypeUsingReflection(owner any, attr string) error {
	t, ok := owner.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(owner)
	}
	t = indirect(t)
	if t == nil || t.Kind() != reflect.Struct {
		return fmt.Errorf("mapping: %v is not a struct type", t)
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if f.Name == attr || AttributeName(f.Name) == attr {
			v.attr.Entity = t.Name()
			v.attr.Name = attr
			v.attr.GoType = f.Type
			return nil
		}
	}
	return fmt.Errorf("mapping: %v has no attribute %q", t, attr)
}

// Type returns the resolved basic type. The first call resolves the type,
// later calls return the same result.
func (v *Value) Type() (*types.BasicType, error) {
	v.once.Do(func() {
		v.typ, v.err = v.resolver.Resolve(&v.attr)
	})
	return v.typ, v.err
}

// MustType is like Type but panics if the type cannot be resolved.
func (v *Value) MustType() *types.BasicType {
	t, err := v.Type()
	if err != nil {
		panic(err)
	}
	return t
}
