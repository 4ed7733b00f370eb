// Package config assembles mapping metadata: converters and entities are
// added to a Configuration, and BuildMappings resolves the basic type of
// every attribute, reporting all configuration errors at once.
//
// Mappings can also be declared in a YAML file (Load) and kept current with
// a Holder that rebuilds them when the file changes.
package config

import (
	"fmt"
	"log/slog"

	"github.com/syssam/veloxmap"
	"github.com/syssam/veloxmap/converter"
	"github.com/syssam/veloxmap/mapping"
	"github.com/syssam/veloxmap/types"
)

// Configuration collects converters and entity definitions.
type Configuration struct {
	types      *types.Registry
	log        *slog.Logger
	converters []*converter.Definition
	entities   []*mapping.EntityDef
	errs       []error
}

// Option configures a Configuration.
type Option func(*Configuration)

// WithTypes sets the basic type registry. Defaults to types.Standard.
func WithTypes(r *types.Registry) Option {
	return func(c *Configuration) {
		c.types = r
	}
}

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(c *Configuration) {
		c.log = l
	}
}

// New returns an empty configuration.
func New(opts ...Option) *Configuration {
	c := &Configuration{log: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	if c.types == nil {
		c.types = types.Standard()
	}
	return c
}

// AddAttributeConverter registers converter definitions.
func (c *Configuration) AddAttributeConverter(defs ...*converter.Definition) *Configuration {
	c.converters = append(c.converters, defs...)
	return c
}

// AddEntity adds the entity described by the struct tags of v. Introspection
// errors are reported by BuildMappings.
func (c *Configuration) AddEntity(v any) *Configuration {
	def, err := mapping.Introspect(v)
	if err != nil {
		c.errs = append(c.errs, err)
		return c
	}
	return c.AddEntityDef(def)
}

// AddEntityDef adds a declarative entity definition.
func (c *Configuration) AddEntityDef(def *mapping.EntityDef) *Configuration {
	c.entities = append(c.entities, def)
	return c
}

// BuildMappings resolves every attribute of every entity. Converter
// registration errors, such as two auto-apply converters for one type, stop
// the build before any attribute is resolved.
func (c *Configuration) BuildMappings() (*Metadata, error) {
	errs := append([]error(nil), c.errs...)
	converters, err := converter.NewRegistry(c.converters...)
	if err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, veloxmap.NewAggregateError(errs...)
	}
	resolver := mapping.NewResolver(c.types, converters, mapping.WithLogger(c.log))
	md := &Metadata{
		resolver: resolver,
		byName:   make(map[string]*mapping.Entity, len(c.entities)),
	}
	for _, def := range c.entities {
		e, err := mapping.NewEntity(def, resolver)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, ok := md.byName[e.Name()]; ok {
			errs = append(errs, fmt.Errorf("config: entity %q is mapped twice", e.Name()))
			continue
		}
		if err := e.Resolve(); err != nil {
			errs = append(errs, err)
			continue
		}
		md.entities = append(md.entities, e)
		md.byName[e.Name()] = e
	}
	if err := veloxmap.NewAggregateError(errs...); err != nil {
		return nil, err
	}
	c.log.Info("mappings built", "entities", len(md.entities), "converters", converters.Len())
	return md, nil
}

// Metadata is the immutable result of BuildMappings.
type Metadata struct {
	resolver *mapping.Resolver
	entities []*mapping.Entity
	byName   map[string]*mapping.Entity
}

// ClassMapping returns the entity mapped under name, or nil.
func (m *Metadata) ClassMapping(name string) *mapping.Entity {
	return m.byName[name]
}

// Entities returns the mapped entities in the order they were added.
func (m *Metadata) Entities() []*mapping.Entity {
	return append([]*mapping.Entity(nil), m.entities...)
}

// Converters returns the registered converters.
func (m *Metadata) Converters() []*converter.Definition {
	return m.resolver.Converters().Definitions()
}

// Types returns the basic type registry.
func (m *Metadata) Types() *types.Registry {
	return m.resolver.Types()
}
