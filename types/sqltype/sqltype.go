// Package sqltype defines SQL type codes and the SQL-side descriptors
// of basic types.
//
// Codes use the JDBC numbering so that they line up with the type codes
// reported by most database tooling:
//
//	sqltype.Varchar.Code()   // 12
//	sqltype.Clob.Code()      // 2005
//	sqltype.Timestamp.Code() // 93
package sqltype

import (
	"fmt"
	"strings"
)

// Code is a SQL type code.
type Code int

// SQL type codes.
const (
	Bit           Code = -7
	TinyInt       Code = -6
	BigInt        Code = -5
	LongVarBinary Code = -4
	VarBinary     Code = -3
	Binary        Code = -2
	LongVarChar   Code = -1
	Null          Code = 0
	Char          Code = 1
	Numeric       Code = 2
	Decimal       Code = 3
	Integer       Code = 4
	SmallInt      Code = 5
	Float         Code = 6
	Real          Code = 7
	Double        Code = 8
	Varchar       Code = 12
	Boolean       Code = 16
	Date          Code = 91
	Time          Code = 92
	Timestamp     Code = 93
	Other         Code = 1111
	Blob          Code = 2004
	Clob          Code = 2005
	NClob         Code = 2011
	UUID          Code = 3000
	JSON          Code = 3001
)

var codeNames = map[Code]string{
	Bit:           "BIT",
	TinyInt:       "TINYINT",
	BigInt:        "BIGINT",
	LongVarBinary: "LONGVARBINARY",
	VarBinary:     "VARBINARY",
	Binary:        "BINARY",
	LongVarChar:   "LONGVARCHAR",
	Null:          "NULL",
	Char:          "CHAR",
	Numeric:       "NUMERIC",
	Decimal:       "DECIMAL",
	Integer:       "INTEGER",
	SmallInt:      "SMALLINT",
	Float:         "FLOAT",
	Real:          "REAL",
	Double:        "DOUBLE",
	Varchar:       "VARCHAR",
	Boolean:       "BOOLEAN",
	Date:          "DATE",
	Time:          "TIME",
	Timestamp:     "TIMESTAMP",
	Other:         "OTHER",
	Blob:          "BLOB",
	Clob:          "CLOB",
	NClob:         "NCLOB",
	UUID:          "UUID",
	JSON:          "JSON",
}

// String returns the SQL name of the code.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// Valid reports if the code is a known SQL type code.
func (c Code) Valid() bool {
	_, ok := codeNames[c]
	return ok
}

// Textual reports if the code holds character data.
func (c Code) Textual() bool {
	switch c {
	case Char, Varchar, LongVarChar, Clob, NClob:
		return true
	}
	return false
}

// Numeric reports if the code holds numbers.
func (c Code) Numeric() bool {
	switch c {
	case TinyInt, SmallInt, Integer, BigInt, Float, Real, Double, Numeric, Decimal:
		return true
	}
	return false
}

// Binary reports if the code holds raw bytes.
func (c Code) Binary() bool {
	switch c {
	case Binary, VarBinary, LongVarBinary, Blob:
		return true
	}
	return false
}

// ParseCode parses a SQL type name (case-insensitive) into its code.
func ParseCode(name string) (Code, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for c, n := range codeNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("sqltype: unknown type name %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("sqltype: invalid code %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Code) UnmarshalText(text []byte) error {
	code, err := ParseCode(string(text))
	if err != nil {
		return err
	}
	*c = code
	return nil
}
