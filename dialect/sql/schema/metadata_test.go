package schema

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/veloxmap/config"
	"github.com/syssam/veloxmap/converter"
	"github.com/syssam/veloxmap/dialect"
	"github.com/syssam/veloxmap/types/sqltype"
)

type Tester struct {
	ID    int64 `orm:",id"`
	Name  string
	Code  string `orm:"code,convert:off"`
	Score *float64
}

func TestTablesFromMetadata(t *testing.T) {
	md, err := config.New(config.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))).
		AddAttributeConverter(converter.New("string_clob", converter.StringClob(), true)).
		AddEntity(Tester{}).
		BuildMappings()
	require.NoError(t, err)

	tables, err := TablesFromMetadata(md, dialect.MySQL)
	require.NoError(t, err)
	require.Len(t, tables, 1)

	tbl := tables[0]
	assert.Equal(t, "testers", tbl.Name)
	require.Len(t, tbl.PrimaryKey, 1)
	assert.Equal(t, "id", tbl.PrimaryKey[0].Name)

	tests := []struct {
		column   string
		code     sqltype.Code
		dbType   string
		nullable bool
	}{
		{"id", sqltype.BigInt, "bigint", false},
		{"name", sqltype.Clob, "longtext", false},
		{"code", sqltype.Varchar, "varchar(255)", false},
		{"score", sqltype.Double, "double", true},
	}
	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			c, ok := tbl.Column(tt.column)
			require.True(t, ok)
			assert.Equal(t, tt.code, c.Type)
			assert.Equal(t, tt.dbType, c.DBType)
			assert.Equal(t, tt.nullable, c.Nullable)
		})
	}
	assert.False(t, ValidateSchema(tables).HasErrors())
}
