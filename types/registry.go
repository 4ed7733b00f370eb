package types

import (
	"fmt"
	"reflect"
	"sort"

	"golang.org/x/text/cases"

	"github.com/syssam/veloxmap/types/gotype"
	"github.com/syssam/veloxmap/types/sqltype"
)

// Registry holds basic types by name and by Go type. It is populated during
// bootstrap and must not be modified once resolution starts.
type Registry struct {
	byName map[string]*BasicType
	byType map[reflect.Type]*BasicType
	names  []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*BasicType),
		byType: make(map[reflect.Type]*BasicType),
	}
}

// Standard returns a registry populated with the standard basic types.
func Standard() *Registry {
	r := NewRegistry()
	for _, e := range standard {
		if err := r.Register(e.typ, e.aliases...); err != nil {
			panic(err)
		}
	}
	return r
}

var standard = []struct {
	typ     *BasicType
	aliases []string
}{
	{New("string", gotype.String, sqltype.VarcharDescriptor), nil},
	{New("text", gotype.String, sqltype.LongVarCharDescriptor), nil},
	{New("materialized_clob", gotype.String, sqltype.ClobDescriptor), nil},
	{New("clob", gotype.Clob, sqltype.ClobDescriptor), nil},
	{New("timestamp", gotype.Timestamp, sqltype.TimestampDescriptor), []string{"time.Time"}},
	{New("date", gotype.Timestamp, sqltype.DateDescriptor), nil},
	{New("long", gotype.Int64, sqltype.BigIntDescriptor), []string{"int64"}},
	{New("int", gotype.Int, sqltype.BigIntDescriptor), nil},
	{New("integer", gotype.Int32, sqltype.IntegerDescriptor), []string{"int32"}},
	{New("short", gotype.Int16, sqltype.SmallIntDescriptor), []string{"int16"}},
	{New("boolean", gotype.Bool, sqltype.BooleanDescriptor), []string{"bool"}},
	{New("double", gotype.Float64, sqltype.DoubleDescriptor), []string{"float64"}},
	{New("float", gotype.Float32, sqltype.RealDescriptor), []string{"float32"}},
	{New("binary", gotype.Bytes, sqltype.VarBinaryDescriptor), []string{"bytes"}},
	{New("blob", gotype.Blob, sqltype.BlobDescriptor), nil},
	{New("materialized_blob", gotype.Bytes, sqltype.BlobDescriptor), nil},
	{New("uuid", gotype.UUID, sqltype.UUIDDescriptor), nil},
	{New("big_decimal", gotype.Decimal, sqltype.NumericDescriptor), []string{"decimal"}},
	{New("json", gotype.RawJSON, sqltype.JSONDescriptor), nil},
}

// Register adds a basic type under its name and the given aliases. The first
// type registered for a Go type becomes the default for that Go type.
func (r *Registry) Register(t *BasicType, aliases ...string) error {
	keys := append([]string{t.Name()}, aliases...)
	for _, k := range keys {
		if _, ok := r.byName[fold(k)]; ok {
			return fmt.Errorf("types: basic type %q is already registered", k)
		}
	}
	for _, k := range keys {
		r.byName[fold(k)] = t
	}
	r.names = append(r.names, t.Name())
	if gt := t.DomainDescriptor().Type(); gt != nil && !t.Converted() {
		if _, ok := r.byType[gt]; !ok {
			r.byType[gt] = t
		}
	}
	return nil
}

// ByName returns the basic type registered under the given name or alias.
// Lookups are case-insensitive.
func (r *Registry) ByName(name string) (*BasicType, bool) {
	t, ok := r.byName[fold(name)]
	return t, ok
}

// ByGoType returns the default basic type of the given Go type.
func (r *Registry) ByGoType(gt reflect.Type) (*BasicType, bool) {
	t, ok := r.byType[gt]
	return t, ok
}

// Descriptor returns the descriptor of the given Go type, looking at the
// registered types first and then at the standard descriptors.
func (r *Registry) Descriptor(gt reflect.Type) (*gotype.Descriptor, bool) {
	if t, ok := r.byType[gt]; ok {
		return t.DomainDescriptor(), true
	}
	return gotype.For(gt)
}

// Names returns the primary names of the registered types, sorted.
func (r *Registry) Names() []string {
	names := append([]string(nil), r.names...)
	sort.Strings(names)
	return names
}

func fold(s string) string {
	return cases.Fold().String(s)
}
