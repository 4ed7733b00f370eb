package mapping

import (
	"log/slog"
	"reflect"
	"sync"

	"github.com/syssam/veloxmap"
	"github.com/syssam/veloxmap/converter"
	"github.com/syssam/veloxmap/types"
	"github.com/syssam/veloxmap/types/gotype"
)

// Resolver resolves the basic type of attributes against a type registry and
// a converter registry. Both registries must be fully populated before the
// first call to Resolve.
type Resolver struct {
	types      *types.Registry
	converters *converter.Registry
	log        *slog.Logger

	// Basic types created for sql.Scanner/driver.Valuer implementations,
	// keyed by Go type.
	scanners sync.Map
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger used to report resolutions.
func WithLogger(l *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.log = l
	}
}

// NewResolver returns a resolver. A nil type registry defaults to
// types.Standard and a nil converter registry to an empty one.
func NewResolver(tr *types.Registry, cr *converter.Registry, opts ...ResolverOption) *Resolver {
	if tr == nil {
		tr = types.Standard()
	}
	if cr == nil {
		cr, _ = converter.NewRegistry()
	}
	r := &Resolver{types: tr, converters: cr, log: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Types returns the type registry of the resolver.
func (r *Resolver) Types() *types.Registry { return r.types }

// Converters returns the converter registry of the resolver.
func (r *Resolver) Converters() *converter.Registry { return r.converters }

// Resolve returns the basic type of the attribute. Converter matching is
// skipped when conversion is disabled or a type name is set. Otherwise an
// explicit converter wins over an auto-apply converter of the declared type.
// Attributes no converter applies to resolve conventionally.
func (r *Resolver) Resolve(a *Attribute) (*types.BasicType, error) {
	bt, err := r.resolve(a)
	if err != nil {
		return nil, veloxmap.NewMappingError(a.Entity, a.Name, err)
	}
	r.log.Debug("resolved basic type",
		"entity", a.Entity,
		"attribute", a.Name,
		"type", bt.Name(),
		"sql", bt.SQLDescriptor().String(),
	)
	return bt, nil
}

func (r *Resolver) resolve(a *Attribute) (*types.BasicType, error) {
	declared := a.DomainType()
	if a.DisableConversion {
		if a.Converter != nil || a.ConverterName != "" {
			r.log.Warn("attribute converter ignored, conversion is disabled",
				"entity", a.Entity, "attribute", a.Name)
		}
		return r.conventional(a, declared)
	}
	if a.TypeName != "" {
		return r.conventional(a, declared)
	}
	def := a.Converter
	if def == nil && a.ConverterName != "" {
		d, ok := r.converters.Lookup(a.ConverterName)
		if !ok {
			return nil, veloxmap.NewUnknownConverterError(a.ConverterName)
		}
		def = d
	}
	if def != nil {
		if a.GoType != nil && def.AttributeType() != a.GoType && def.AttributeType() != declared {
			return nil, veloxmap.NewAttributeTypeMismatchError(def.Name(), def.AttributeType(), a.GoType)
		}
		return r.converted(def, declared)
	}
	if def, ok := r.autoApplied(a.GoType, declared); ok {
		return r.converted(def, declared)
	}
	return r.conventional(a, declared)
}

// autoApplied looks up the auto-apply converter of the declared type as
// written, then of its element type.
func (r *Resolver) autoApplied(written, declared reflect.Type) (*converter.Definition, bool) {
	if written == nil {
		return nil, false
	}
	if def, ok := r.converters.AutoApplied(written); ok {
		return def, true
	}
	if declared != written {
		return r.converters.AutoApplied(declared)
	}
	return nil, false
}

// converted builds a basic type around def. The column side comes from the
// converter's column type, the domain side from the declared type. Column
// types are looked up with pointers removed, and column types implementing
// sql.Scanner and driver.Valuer are accepted like declared types are.
func (r *Resolver) converted(def *converter.Definition, declared reflect.Type) (*types.BasicType, error) {
	ct := indirect(def.ColumnType())
	column, ok := r.types.Descriptor(ct)
	if !ok {
		bt, ok := r.valueScanner(ct)
		if !ok {
			return nil, veloxmap.NewUnsupportedColumnTypeError(def.Name(), def.ColumnType())
		}
		column = bt.GoDescriptor()
	}
	sql, ok := column.SQL()
	if !ok {
		return nil, veloxmap.NewUnsupportedColumnTypeError(def.Name(), def.ColumnType())
	}
	domain := gotype.Object
	if declared != nil {
		if d, ok := r.types.Descriptor(declared); ok {
			domain = d
		}
	}
	return types.NewConverted(def, domain, column, sql), nil
}

func (r *Resolver) conventional(a *Attribute, declared reflect.Type) (*types.BasicType, error) {
	if a.TypeName != "" {
		bt, ok := r.types.ByName(a.TypeName)
		if !ok {
			return nil, veloxmap.NewUnknownTypeError(a.TypeName)
		}
		return bt, nil
	}
	if declared == nil {
		return nil, veloxmap.NewUnresolvableTypeError(nil)
	}
	if bt, ok := r.types.ByGoType(declared); ok {
		return bt, nil
	}
	if bt, ok := r.valueScanner(declared); ok {
		return bt, nil
	}
	return nil, veloxmap.NewUnresolvableTypeError(declared)
}

// valueScanner returns the cached basic type of a sql.Scanner and
// driver.Valuer implementation.
func (r *Resolver) valueScanner(t reflect.Type) (*types.BasicType, bool) {
	if bt, ok := r.scanners.Load(t); ok {
		return bt.(*types.BasicType), true
	}
	d, ok := gotype.ValueScanner(t)
	if !ok {
		return nil, false
	}
	sql, _ := d.SQL()
	bt, _ := r.scanners.LoadOrStore(t, types.New("value_scanner", d, sql))
	return bt.(*types.BasicType), true
}
