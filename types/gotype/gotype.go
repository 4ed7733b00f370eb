// Package gotype provides the Go side of basic types: descriptors that know
// a Go type, the SQL type it maps to by default, and how values of the type
// are handed to and read back from a database driver.
//
// Descriptors are singletons and can be compared by identity:
//
//	d, _ := gotype.For(reflect.TypeFor[string]())
//	d == gotype.String // true
//
// Types without an intrinsic descriptor are described by Object, which
// carries no SQL mapping of its own.
package gotype

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/syssam/veloxmap/types/lob"
	"github.com/syssam/veloxmap/types/sqltype"
)

// Descriptor describes a Go type used as a column or attribute value.
type Descriptor struct {
	name    string
	typ     reflect.Type
	sql     *sqltype.Descriptor
	bind    func(any) (driver.Value, error)
	extract func(any) (any, error)
}

// New returns a custom descriptor. sql may be nil for types that cannot be
// bound to a column on their own.
func New(name string, typ reflect.Type, sql *sqltype.Descriptor, bind func(any) (driver.Value, error), extract func(any) (any, error)) *Descriptor {
	return &Descriptor{name: name, typ: typ, sql: sql, bind: bind, extract: extract}
}

// Name returns the descriptor name.
func (d *Descriptor) Name() string { return d.name }

// Type returns the described Go type. It is nil for Object.
func (d *Descriptor) Type() reflect.Type { return d.typ }

// SQL returns the SQL descriptor this Go type maps to by default.
func (d *Descriptor) SQL() (*sqltype.Descriptor, bool) { return d.sql, d.sql != nil }

// String implements fmt.Stringer.
func (d *Descriptor) String() string { return d.name }

// Bind converts a non-nil value of the described type into a driver value.
func (d *Descriptor) Bind(v any) (driver.Value, error) {
	if d.bind == nil {
		return nil, fmt.Errorf("gotype: %s cannot be bound", d.name)
	}
	return d.bind(v)
}

// Extract converts a non-nil driver value into a value of the described type.
func (d *Descriptor) Extract(src any) (any, error) {
	if d.extract == nil {
		return src, nil
	}
	return d.extract(src)
}

// Standard descriptors.
var (
	String    = New("string", reflect.TypeFor[string](), sqltype.VarcharDescriptor, bindAs[string](func(v string) driver.Value { return v }), extractString)
	Clob      = New("clob", reflect.TypeFor[lob.Clob](), sqltype.ClobDescriptor, bindAs[lob.Clob](func(v lob.Clob) driver.Value { return string(v) }), extractClob)
	Timestamp = New("timestamp", reflect.TypeFor[time.Time](), sqltype.TimestampDescriptor, bindAs[time.Time](func(v time.Time) driver.Value { return v }), extractTime)
	Int64     = New("int64", reflect.TypeFor[int64](), sqltype.BigIntDescriptor, bindAs[int64](func(v int64) driver.Value { return v }), extractInt[int64])
	Int       = New("int", reflect.TypeFor[int](), sqltype.BigIntDescriptor, bindAs[int](func(v int) driver.Value { return int64(v) }), extractInt[int])
	Int32     = New("int32", reflect.TypeFor[int32](), sqltype.IntegerDescriptor, bindAs[int32](func(v int32) driver.Value { return int64(v) }), extractInt[int32])
	Int16     = New("int16", reflect.TypeFor[int16](), sqltype.SmallIntDescriptor, bindAs[int16](func(v int16) driver.Value { return int64(v) }), extractInt[int16])
	Bool      = New("bool", reflect.TypeFor[bool](), sqltype.BooleanDescriptor, bindAs[bool](func(v bool) driver.Value { return v }), extractBool)
	Float64   = New("float64", reflect.TypeFor[float64](), sqltype.DoubleDescriptor, bindAs[float64](func(v float64) driver.Value { return v }), extractFloat[float64])
	Float32   = New("float32", reflect.TypeFor[float32](), sqltype.RealDescriptor, bindAs[float32](func(v float32) driver.Value { return float64(v) }), extractFloat[float32])
	Bytes     = New("bytes", reflect.TypeFor[[]byte](), sqltype.VarBinaryDescriptor, bindAs[[]byte](func(v []byte) driver.Value { return v }), extractBytes[[]byte])
	Blob      = New("blob", reflect.TypeFor[lob.Blob](), sqltype.BlobDescriptor, bindAs[lob.Blob](func(v lob.Blob) driver.Value { return []byte(v) }), extractBytes[lob.Blob])
	UUID      = New("uuid", reflect.TypeFor[uuid.UUID](), sqltype.UUIDDescriptor, bindAs[uuid.UUID](func(v uuid.UUID) driver.Value { return v.String() }), extractUUID)
	Decimal   = New("decimal", reflect.TypeFor[decimal.Decimal](), sqltype.NumericDescriptor, bindAs[decimal.Decimal](func(v decimal.Decimal) driver.Value { return v.String() }), extractDecimal)
	RawJSON   = New("json", reflect.TypeFor[json.RawMessage](), sqltype.JSONDescriptor, bindAs[json.RawMessage](func(v json.RawMessage) driver.Value { return []byte(v) }), extractBytes[json.RawMessage])

	// Object describes Go types without an intrinsic mapping. It binds values
	// implementing driver.Valuer and passes extracted values through.
	Object = New("object", nil, nil, bindObject, nil)
)

var (
	standard = []*Descriptor{
		String, Clob, Timestamp, Int64, Int, Int32, Int16, Bool,
		Float64, Float32, Bytes, Blob, UUID, Decimal, RawJSON,
	}
	byType = map[reflect.Type]*Descriptor{}
	byName = map[string]reflect.Type{}
)

func init() {
	for _, d := range standard {
		byType[d.typ] = d
		byName[d.typ.String()] = d.typ
	}
	byName["[]byte"] = reflect.TypeFor[[]byte]()
	byName["map[string]any"] = reflect.TypeFor[map[string]any]()
	byName["any"] = reflect.TypeFor[any]()
}

// For returns the standard descriptor of the given Go type.
func For(t reflect.Type) (*Descriptor, bool) {
	d, ok := byType[t]
	return d, ok
}

// Lookup returns the Go type registered under the given name, as printed by
// reflect (e.g. "time.Time", "uuid.UUID", "[]byte").
func Lookup(name string) (reflect.Type, bool) {
	t, ok := byName[name]
	return t, ok
}

// Standard returns all standard descriptors except Object.
func Standard() []*Descriptor {
	return append([]*Descriptor(nil), standard...)
}
