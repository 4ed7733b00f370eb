package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/syssam/veloxmap"
	"github.com/syssam/veloxmap/converter"
	"github.com/syssam/veloxmap/dialect"
	"github.com/syssam/veloxmap/mapping"
	"github.com/syssam/veloxmap/types/gotype"
)

// File is the root structure of a YAML mapping file.
type File struct {
	Dialect    string            `yaml:"dialect"`
	Database   DatabaseConfig    `yaml:"database"`
	Logging    LoggingConfig     `yaml:"logging"`
	Converters []ConverterConfig `yaml:"converters"`
	Entities   []EntityConfig    `yaml:"entities"`
}

// DatabaseConfig configures the database inspected by the check command.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "text" or "json"
}

// ConverterConfig enables a built-in converter.
type ConverterConfig struct {
	Name      string `yaml:"name"`
	AutoApply bool   `yaml:"auto_apply"`
}

// EntityConfig declares a mapped entity.
type EntityConfig struct {
	Name       string            `yaml:"name"`
	Table      string            `yaml:"table,omitempty"`
	Attributes []AttributeConfig `yaml:"attributes"`
}

// AttributeConfig declares a mapped attribute.
type AttributeConfig struct {
	Name      string `yaml:"name"`
	Column    string `yaml:"column,omitempty"`
	Type      string `yaml:"type,omitempty"` // Go type, e.g. "string" or "time.Time"
	ID        bool   `yaml:"id,omitempty"`
	TypeName  string `yaml:"type_name,omitempty"`
	Convert   string `yaml:"convert,omitempty"` // "disabled" turns off converter matching
	Converter string `yaml:"converter,omitempty"`
}

// Load reads a mapping file. Environment variables in the file are expanded.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping file: %w", err)
	}
	return Parse([]byte(os.ExpandEnv(string(data))))
}

// Parse parses and validates mapping file contents.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse mapping file: %w", err)
	}
	setDefaults(&f)
	if err := validate(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

func setDefaults(f *File) {
	if f.Dialect == "" {
		f.Dialect = dialect.SQLite
	}
	if f.Logging.Level == "" {
		f.Logging.Level = "info"
	}
	if f.Logging.Format == "" {
		f.Logging.Format = "text"
	}
}

func validate(f *File) error {
	var errs []error
	d, err := dialect.Normalize(f.Dialect)
	if err != nil {
		errs = append(errs, err)
	}
	f.Dialect = d
	if _, err := parseLevel(f.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	switch f.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be text or json, got %q", f.Logging.Format))
	}
	for i, c := range f.Converters {
		if _, ok := converter.Builtin(c.Name); !ok {
			errs = append(errs, fmt.Errorf("converters[%d]: %w", i, veloxmap.NewUnknownConverterError(c.Name)))
		}
	}
	for i, e := range f.Entities {
		if e.Name == "" {
			errs = append(errs, fmt.Errorf("entities[%d]: name is required", i))
		}
		for j, a := range e.Attributes {
			if a.Name == "" {
				errs = append(errs, fmt.Errorf("entities[%d].attributes[%d]: name is required", i, j))
			}
			if a.Type != "" {
				if _, ok := gotype.Lookup(a.Type); !ok {
					errs = append(errs, fmt.Errorf("entities[%d].attributes[%d]: unknown Go type %q", i, j, a.Type))
				}
			}
			switch a.Convert {
			case "", "enabled", "disabled":
			default:
				errs = append(errs, fmt.Errorf("entities[%d].attributes[%d]: convert must be enabled or disabled, got %q", i, j, a.Convert))
			}
		}
	}
	return veloxmap.NewAggregateError(errs...)
}

// Configuration returns a configuration holding the file's converters and
// entities.
func (f *File) Configuration(opts ...Option) *Configuration {
	c := New(opts...)
	for _, cc := range f.Converters {
		def, ok := converter.Builtin(cc.Name)
		if !ok {
			c.errs = append(c.errs, veloxmap.NewUnknownConverterError(cc.Name))
			continue
		}
		c.AddAttributeConverter(def.WithAutoApply(cc.AutoApply))
	}
	for _, ec := range f.Entities {
		def := &mapping.EntityDef{Name: ec.Name, Table: ec.Table}
		for _, ac := range ec.Attributes {
			var gt reflect.Type
			if ac.Type != "" {
				gt, _ = gotype.Lookup(ac.Type)
			}
			def.Attributes = append(def.Attributes, &mapping.AttributeDef{
				Name:              ac.Name,
				Column:            ac.Column,
				GoType:            gt,
				ID:                ac.ID,
				TypeName:          ac.TypeName,
				DisableConversion: ac.Convert == "disabled",
				Converter:         ac.Converter,
			})
		}
		c.AddEntityDef(def)
	}
	return c
}

// Build builds the mappings declared in the file.
func (f *File) Build(opts ...Option) (*Metadata, error) {
	return f.Configuration(opts...).BuildMappings()
}

// Logger returns a logger writing to w as configured.
func (l LoggingConfig) Logger(w io.Writer) *slog.Logger {
	level, err := parseLevel(l.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("logging.level: %w", err)
	}
	return level, nil
}
