package gotype

import (
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/syssam/veloxmap/types/lob"
)

// timeLayouts are tried in order when a driver returns timestamps as text
// (e.g. SQLite).
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func bindAs[T any](fn func(T) driver.Value) func(any) (driver.Value, error) {
	return func(v any) (driver.Value, error) {
		t, ok := v.(T)
		if !ok {
			var zero T
			return nil, fmt.Errorf("gotype: expected %T, got %T", zero, v)
		}
		return fn(t), nil
	}
}

func bindObject(v any) (driver.Value, error) {
	if vr, ok := v.(driver.Valuer); ok {
		return vr.Value()
	}
	if driver.IsValue(v) {
		return v, nil
	}
	return nil, fmt.Errorf("gotype: %T has no column mapping", v)
}

func extractString(src any) (any, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	}
	return nil, unexpected("string", src)
}

func extractClob(src any) (any, error) {
	switch v := src.(type) {
	case string:
		return lob.Clob(v), nil
	case []byte:
		return lob.Clob(v), nil
	}
	return nil, unexpected("clob", src)
}

func extractTime(src any) (any, error) {
	var s string
	switch v := src.(type) {
	case time.Time:
		return v, nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return nil, unexpected("timestamp", src)
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return nil, fmt.Errorf("gotype: cannot parse %q as timestamp", s)
}

func extractInt[T int | int16 | int32 | int64](src any) (any, error) {
	var n int64
	switch v := src.(type) {
	case int64:
		n = v
	case int32:
		n = int64(v)
	case int:
		n = int64(v)
	case float64:
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			var zero T
			return nil, fmt.Errorf("gotype: %v is not representable as %T", v, zero)
		}
		n = int64(v)
	case bool:
		if v {
			n = 1
		}
	case []byte:
		var err error
		if n, err = strconv.ParseInt(string(v), 10, 64); err != nil {
			return nil, err
		}
	case string:
		var err error
		if n, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, err
		}
	default:
		var zero T
		return nil, unexpected(fmt.Sprintf("%T", zero), src)
	}
	if int64(T(n)) != n {
		return nil, fmt.Errorf("gotype: %d overflows %T", n, T(n))
	}
	return T(n), nil
}

func extractFloat[T float32 | float64](src any) (any, error) {
	switch v := src.(type) {
	case float64:
		return T(v), nil
	case float32:
		return T(v), nil
	case int64:
		return T(v), nil
	case []byte:
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return nil, err
		}
		return T(f), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		return T(f), nil
	}
	var zero T
	return nil, unexpected(fmt.Sprintf("%T", zero), src)
}

func extractBool(src any) (any, error) {
	switch v := src.(type) {
	case bool:
		return v, nil
	case int64:
		return v != 0, nil
	case []byte:
		return strconv.ParseBool(string(v))
	case string:
		return strconv.ParseBool(v)
	}
	return nil, unexpected("bool", src)
}

func extractBytes[T ~[]byte](src any) (any, error) {
	switch v := src.(type) {
	case []byte:
		return T(append([]byte(nil), v...)), nil
	case string:
		return T(v), nil
	}
	var zero T
	return nil, unexpected(fmt.Sprintf("%T", zero), src)
}

func extractUUID(src any) (any, error) {
	switch v := src.(type) {
	case string:
		return uuid.Parse(v)
	case []byte:
		if len(v) == 16 {
			return uuid.FromBytes(v)
		}
		return uuid.ParseBytes(v)
	}
	return nil, unexpected("uuid", src)
}

func extractDecimal(src any) (any, error) {
	switch v := src.(type) {
	case string:
		return decimal.NewFromString(v)
	case []byte:
		return decimal.NewFromString(string(v))
	case float64:
		return decimal.NewFromFloat(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	}
	return nil, unexpected("decimal", src)
}

func unexpected(name string, src any) error {
	return fmt.Errorf("gotype: cannot extract %s from %T", name, src)
}
