package converter

import (
	"errors"
	"reflect"

	"github.com/syssam/veloxmap"
)

// ErrNilDefinition is reported when a nil definition is registered.
var ErrNilDefinition = errors.New("converter: nil definition")

// Registry holds converter definitions by name and the auto-apply
// definition of each attribute type. Registration must complete before the
// registry is read; it is not safe for concurrent writes.
type Registry struct {
	defs   []*Definition
	byName map[string]*Definition
	auto   map[reflect.Type]*Definition
}

// NewRegistry returns a registry holding the given definitions.
func NewRegistry(defs ...*Definition) (*Registry, error) {
	r := &Registry{
		byName: make(map[string]*Definition),
		auto:   make(map[reflect.Type]*Definition),
	}
	if err := r.Register(defs...); err != nil {
		return nil, err
	}
	return r, nil
}

// Register adds definitions in order. A nil definition, a definition whose
// name is taken, or a second auto-apply converter for an attribute type is
// rejected and reported; the others are still registered.
func (r *Registry) Register(defs ...*Definition) error {
	var errs []error
	for _, d := range defs {
		if d == nil {
			errs = append(errs, ErrNilDefinition)
			continue
		}
		if _, ok := r.byName[d.name]; ok {
			errs = append(errs, veloxmap.NewDuplicateConverterError(d.name))
			continue
		}
		if d.autoApply {
			if prev, ok := r.auto[d.attr]; ok {
				errs = append(errs, veloxmap.NewAmbiguousConverterError(d.attr, prev.name, d.name))
				continue
			}
			r.auto[d.attr] = d
		}
		r.byName[d.name] = d
		r.defs = append(r.defs, d)
	}
	return veloxmap.NewAggregateError(errs...)
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (*Definition, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// AutoApplied returns the auto-apply definition whose attribute type is
// exactly t.
func (r *Registry) AutoApplied(t reflect.Type) (*Definition, bool) {
	d, ok := r.auto[t]
	return d, ok
}

// Definitions returns the registered definitions in registration order.
func (r *Registry) Definitions() []*Definition {
	return append([]*Definition(nil), r.defs...)
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int { return len(r.defs) }
