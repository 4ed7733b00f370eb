package mapping

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/syssam/veloxmap"
	"github.com/syssam/veloxmap/converter"
	"github.com/syssam/veloxmap/types"
)

// EntityDef is the declarative description of a mapped entity.
type EntityDef struct {
	Name       string
	Table      string       // Defaults to TableName(Name).
	GoType     reflect.Type // Optional.
	Attributes []*AttributeDef
}

// AttributeDef is the declarative description of a mapped attribute.
type AttributeDef struct {
	Name              string
	Column            string       // Defaults to ColumnName(Name).
	GoType            reflect.Type // May be nil if TypeName or Converter is set.
	ID                bool
	TypeName          string
	DisableConversion bool
	Converter         string
}

// Entity is a mapped entity with its properties in declaration order.
type Entity struct {
	name   string
	table  string
	goType reflect.Type
	props  []*Property
	byName map[string]*Property
	id     *Property
}

// Property is a mapped attribute of an entity.
type Property struct {
	Name   string
	Column string
	ID     bool
	Value  *Value
}

// Type returns the resolved basic type of the property.
func (p *Property) Type() (*types.BasicType, error) {
	return p.Value.Type()
}

// NewEntity builds an entity from def. Values are resolved lazily by r.
func NewEntity(def *EntityDef, r *Resolver) (*Entity, error) {
	if def.Name == "" {
		return nil, errors.New("mapping: entity name is required")
	}
	e := &Entity{
		name:   def.Name,
		table:  def.Table,
		goType: def.GoType,
		byName: make(map[string]*Property, len(def.Attributes)),
	}
	if e.table == "" {
		e.table = TableName(def.Name)
	}
	columns := make(map[string]string, len(def.Attributes))
	for _, ad := range def.Attributes {
		if ad.Name == "" {
			return nil, fmt.Errorf("mapping: entity %s: attribute name is required", e.name)
		}
		if _, ok := e.byName[ad.Name]; ok {
			return nil, fmt.Errorf("mapping: entity %s: duplicate attribute %q", e.name, ad.Name)
		}
		p := &Property{
			Name:   ad.Name,
			Column: ad.Column,
			ID:     ad.ID,
			Value:  NewValue(r),
		}
		if p.Column == "" {
			p.Column = ColumnName(ad.Name)
		}
		if other, ok := columns[p.Column]; ok {
			return nil, fmt.Errorf("mapping: entity %s: attributes %q and %q share column %q", e.name, other, ad.Name, p.Column)
		}
		columns[p.Column] = ad.Name
		if p.ID {
			if e.id != nil {
				return nil, fmt.Errorf("mapping: entity %s: multiple identifiers (%s, %s)", e.name, e.id.Name, ad.Name)
			}
			e.id = p
		}
		p.Value.SetAttribute(Attribute{
			Entity:            e.name,
			Name:              ad.Name,
			GoType:            ad.GoType,
			TypeName:          ad.TypeName,
			DisableConversion: ad.DisableConversion,
			ConverterName:     ad.Converter,
		})
		e.props = append(e.props, p)
		e.byName[p.Name] = p
	}
	return e, nil
}

// Name returns the entity name.
func (e *Entity) Name() string { return e.name }

// Table returns the table the entity is mapped to.
func (e *Entity) Table() string { return e.table }

// GoType returns the Go struct type of the entity, or nil for entities
// declared without one.
func (e *Entity) GoType() reflect.Type { return e.goType }

// Properties returns the properties in declaration order.
func (e *Entity) Properties() []*Property {
	return append([]*Property(nil), e.props...)
}

// Property returns the property with the given attribute name.
func (e *Entity) Property(name string) (*Property, bool) {
	p, ok := e.byName[name]
	return p, ok
}

// Identifier returns the identifier property, or nil.
func (e *Entity) Identifier() *Property { return e.id }

// SetConverter assigns a converter to the named attribute explicitly.
func (e *Entity) SetConverter(attr string, def *converter.Definition) error {
	p, ok := e.byName[attr]
	if !ok {
		return fmt.Errorf("mapping: entity %s has no attribute %q", e.name, attr)
	}
	p.Value.SetConverter(def)
	return nil
}

// Resolve resolves the basic type of every property and returns all
// failures at once.
func (e *Entity) Resolve() error {
	var errs []error
	for _, p := range e.props {
		if _, err := p.Value.Type(); err != nil {
			errs = append(errs, err)
		}
	}
	return veloxmap.NewAggregateError(errs...)
}
