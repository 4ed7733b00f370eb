package converter

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/veloxmap/types/lob"
)

// StringClob stores strings in character large objects.
func StringClob() AttributeConverter[string, lob.Clob] {
	return Func(
		func(s string) (lob.Clob, error) { return lob.Clob(s), nil },
		func(c lob.Clob) (string, error) { return string(c), nil },
	)
}

// BytesBlob stores byte slices in binary large objects.
func BytesBlob() AttributeConverter[[]byte, lob.Blob] {
	return Func(
		func(b []byte) (lob.Blob, error) { return lob.Blob(b), nil },
		func(b lob.Blob) ([]byte, error) { return []byte(b), nil },
	)
}

// UnixTime stores Unix seconds in timestamp columns. Times are read back in UTC.
func UnixTime() AttributeConverter[int64, time.Time] {
	return Func(
		func(sec int64) (time.Time, error) { return time.Unix(sec, 0).UTC(), nil },
		func(t time.Time) (int64, error) { return t.Unix(), nil },
	)
}

// UUIDString stores UUIDs in their canonical text form.
func UUIDString() AttributeConverter[uuid.UUID, string] {
	return Func(
		func(id uuid.UUID) (string, error) { return id.String(), nil },
		uuid.Parse,
	)
}

// DecimalString stores decimals as text, keeping their exact value.
func DecimalString() AttributeConverter[decimal.Decimal, string] {
	return Func(
		func(d decimal.Decimal) (string, error) { return d.String(), nil },
		decimal.NewFromString,
	)
}

// BoolInt stores booleans as 0 or 1.
func BoolInt() AttributeConverter[bool, int64] {
	return Func(
		func(b bool) (int64, error) {
			if b {
				return 1, nil
			}
			return 0, nil
		},
		func(n int64) (bool, error) { return n != 0, nil },
	)
}

// JSON stores values of T as JSON documents.
func JSON[T any]() AttributeConverter[T, json.RawMessage] {
	return Func(
		func(v T) (json.RawMessage, error) { return json.Marshal(v) },
		func(b json.RawMessage) (T, error) {
			var v T
			err := json.Unmarshal(b, &v)
			return v, err
		},
	)
}

// Msgpack stores values of T as MessagePack encoded bytes.
func Msgpack[T any]() AttributeConverter[T, []byte] {
	return Func(
		func(v T) ([]byte, error) { return msgpack.Marshal(v) },
		func(b []byte) (T, error) {
			var v T
			err := msgpack.Unmarshal(b, &v)
			return v, err
		},
	)
}

var builtins = map[string]func() *Definition{
	"string_clob":    func() *Definition { return New("string_clob", StringClob(), false) },
	"bytes_blob":     func() *Definition { return New("bytes_blob", BytesBlob(), false) },
	"unix_time":      func() *Definition { return New("unix_time", UnixTime(), false) },
	"uuid_string":    func() *Definition { return New("uuid_string", UUIDString(), false) },
	"decimal_string": func() *Definition { return New("decimal_string", DecimalString(), false) },
	"bool_int":       func() *Definition { return New("bool_int", BoolInt(), false) },
	"json_map":       func() *Definition { return New("json_map", JSON[map[string]any](), false) },
	"msgpack_map":    func() *Definition { return New("msgpack_map", Msgpack[map[string]any](), false) },
}

// Builtin returns a new, non auto-apply definition of the named built-in
// converter.
func Builtin(name string) (*Definition, bool) {
	f, ok := builtins[name]
	if !ok {
		return nil, false
	}
	return f(), true
}

// Builtins returns new, non auto-apply definitions of all built-in
// converters, sorted by name.
func Builtins() []*Definition {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	defs := make([]*Definition, len(names))
	for i, name := range names {
		defs[i] = builtins[name]()
	}
	return defs
}
