package schema

import (
	"fmt"
	"strings"

	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	atlas "ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"

	"github.com/syssam/veloxmap/dialect"
	"github.com/syssam/veloxmap/types/sqltype"
)

// DefaultVarcharSize is used for VARCHAR columns without a size.
const DefaultVarcharSize = 255

// ColumnType returns the atlas column type used for code in the given
// dialect. size applies to character and binary types.
func ColumnType(code sqltype.Code, d string, size int) (atlas.Type, error) {
	if size <= 0 {
		size = DefaultVarcharSize
	}
	switch code {
	case sqltype.Char:
		return &atlas.StringType{T: "char", Size: size}, nil
	case sqltype.Varchar:
		if d == dialect.SQLite {
			return &atlas.StringType{T: "text"}, nil
		}
		return &atlas.StringType{T: "varchar", Size: size}, nil
	case sqltype.LongVarChar:
		return &atlas.StringType{T: "text"}, nil
	case sqltype.Clob, sqltype.NClob:
		if d == dialect.MySQL {
			return &atlas.StringType{T: "longtext"}, nil
		}
		return &atlas.StringType{T: "text"}, nil
	case sqltype.TinyInt, sqltype.SmallInt:
		return &atlas.IntegerType{T: "smallint"}, nil
	case sqltype.Integer:
		if d == dialect.MySQL {
			return &atlas.IntegerType{T: "int"}, nil
		}
		return &atlas.IntegerType{T: "integer"}, nil
	case sqltype.BigInt:
		return &atlas.IntegerType{T: "bigint"}, nil
	case sqltype.Bit, sqltype.Boolean:
		return &atlas.BoolType{T: "boolean"}, nil
	case sqltype.Real, sqltype.Float:
		if d == dialect.MySQL {
			return &atlas.FloatType{T: "float"}, nil
		}
		return &atlas.FloatType{T: "real"}, nil
	case sqltype.Double:
		switch d {
		case dialect.Postgres:
			return &atlas.FloatType{T: "double precision"}, nil
		case dialect.MySQL:
			return &atlas.FloatType{T: "double"}, nil
		}
		return &atlas.FloatType{T: "real"}, nil
	case sqltype.Numeric, sqltype.Decimal:
		return &atlas.DecimalType{T: "decimal", Precision: 20, Scale: 6}, nil
	case sqltype.Date:
		return &atlas.TimeType{T: "date"}, nil
	case sqltype.Time:
		return &atlas.TimeType{T: "time"}, nil
	case sqltype.Timestamp:
		switch d {
		case dialect.Postgres:
			return &atlas.TimeType{T: "timestamp with time zone"}, nil
		case dialect.MySQL:
			return &atlas.TimeType{T: "timestamp"}, nil
		}
		return &atlas.TimeType{T: "datetime"}, nil
	case sqltype.Binary, sqltype.VarBinary, sqltype.LongVarBinary, sqltype.Blob:
		switch d {
		case dialect.Postgres:
			return &atlas.BinaryType{T: "bytea"}, nil
		case dialect.MySQL:
			if code == sqltype.Blob || code == sqltype.LongVarBinary {
				return &atlas.BinaryType{T: "longblob"}, nil
			}
			return &atlas.BinaryType{T: "varbinary", Size: &size}, nil
		}
		return &atlas.BinaryType{T: "blob"}, nil
	case sqltype.UUID:
		switch d {
		case dialect.Postgres:
			return &atlas.UUIDType{T: "uuid"}, nil
		case dialect.MySQL:
			return &atlas.StringType{T: "char", Size: 36}, nil
		}
		return &atlas.StringType{T: "text"}, nil
	case sqltype.JSON:
		if d == dialect.Postgres {
			return &atlas.JSONType{T: "jsonb"}, nil
		}
		return &atlas.JSONType{T: "json"}, nil
	}
	return nil, fmt.Errorf("schema: no %s column type for %v", d, code)
}

// FormatColumnType returns the column type of code as written in the given
// dialect.
func FormatColumnType(code sqltype.Code, d string, size int) (string, error) {
	t, err := ColumnType(code, d, size)
	if err != nil {
		return "", err
	}
	switch d {
	case dialect.Postgres:
		return postgres.FormatType(t)
	case dialect.MySQL:
		return mysql.FormatType(t)
	case dialect.SQLite:
		return sqlite.FormatType(t)
	}
	return "", fmt.Errorf("schema: unsupported dialect %q", d)
}

// databaseTypes maps database type names, as reported by drivers and
// information schemas, to SQL type codes.
var databaseTypes = map[string]sqltype.Code{
	"varchar":                     sqltype.Varchar,
	"character varying":           sqltype.Varchar,
	"nvarchar":                    sqltype.Varchar,
	"char":                        sqltype.Char,
	"character":                   sqltype.Char,
	"bpchar":                      sqltype.Char,
	"text":                        sqltype.LongVarChar,
	"tinytext":                    sqltype.LongVarChar,
	"mediumtext":                  sqltype.LongVarChar,
	"longtext":                    sqltype.Clob,
	"clob":                        sqltype.Clob,
	"tinyint":                     sqltype.TinyInt,
	"smallint":                    sqltype.SmallInt,
	"int2":                        sqltype.SmallInt,
	"int":                         sqltype.Integer,
	"integer":                     sqltype.Integer,
	"int4":                        sqltype.Integer,
	"mediumint":                   sqltype.Integer,
	"serial":                      sqltype.Integer,
	"bigint":                      sqltype.BigInt,
	"int8":                        sqltype.BigInt,
	"bigserial":                   sqltype.BigInt,
	"bit":                         sqltype.Bit,
	"bool":                        sqltype.Boolean,
	"boolean":                     sqltype.Boolean,
	"real":                        sqltype.Real,
	"float4":                      sqltype.Real,
	"float":                       sqltype.Float,
	"double":                      sqltype.Double,
	"double precision":            sqltype.Double,
	"float8":                      sqltype.Double,
	"numeric":                     sqltype.Numeric,
	"decimal":                     sqltype.Decimal,
	"date":                        sqltype.Date,
	"time":                        sqltype.Time,
	"timetz":                      sqltype.Time,
	"timestamp":                   sqltype.Timestamp,
	"timestamptz":                 sqltype.Timestamp,
	"timestamp with time zone":    sqltype.Timestamp,
	"timestamp without time zone": sqltype.Timestamp,
	"datetime":                    sqltype.Timestamp,
	"binary":                      sqltype.Binary,
	"varbinary":                   sqltype.VarBinary,
	"bytea":                       sqltype.VarBinary,
	"blob":                        sqltype.Blob,
	"tinyblob":                    sqltype.Blob,
	"mediumblob":                  sqltype.Blob,
	"longblob":                    sqltype.Blob,
	"uuid":                        sqltype.UUID,
	"json":                        sqltype.JSON,
	"jsonb":                       sqltype.JSON,
}

// CodeOf returns the SQL type code of a database type name such as
// "VARCHAR(255)" or "bigint unsigned".
func CodeOf(dbType string) (sqltype.Code, bool) {
	s := strings.ToLower(strings.TrimSpace(dbType))
	if i := strings.IndexByte(s, '('); i >= 0 {
		rest := ""
		if j := strings.IndexByte(s[i:], ')'); j >= 0 {
			rest = s[i+j+1:]
		}
		s = strings.TrimSpace(s[:i] + rest)
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, " unsigned"))
	code, ok := databaseTypes[s]
	if !ok {
		return sqltype.Other, false
	}
	return code, true
}

type family int

const (
	familyOther family = iota
	familyText
	familyInt
	familyFloat
	familyDecimal
	familyBool
	familyBinary
	familyDate
	familyTime
	familyTimestamp
	familyUUID
	familyJSON
)

func familyOf(c sqltype.Code) family {
	switch {
	case c.Textual():
		return familyText
	case c.Binary():
		return familyBinary
	}
	switch c {
	case sqltype.TinyInt, sqltype.SmallInt, sqltype.Integer, sqltype.BigInt:
		return familyInt
	case sqltype.Real, sqltype.Float, sqltype.Double:
		return familyFloat
	case sqltype.Numeric, sqltype.Decimal:
		return familyDecimal
	case sqltype.Bit, sqltype.Boolean:
		return familyBool
	case sqltype.Date:
		return familyDate
	case sqltype.Time:
		return familyTime
	case sqltype.Timestamp:
		return familyTimestamp
	case sqltype.UUID:
		return familyUUID
	case sqltype.JSON:
		return familyJSON
	}
	return familyOther
}

// Compatible reports if a column of type current can hold values of type
// desired without conversion by the database. Booleans stored in integer
// columns are compatible.
func Compatible(current, desired sqltype.Code) bool {
	cf, df := familyOf(current), familyOf(desired)
	switch {
	case cf == df:
		return true
	case cf == familyOther || df == familyOther:
		return true
	case cf == familyInt && df == familyBool, cf == familyBool && df == familyInt:
		return true
	}
	return false
}
