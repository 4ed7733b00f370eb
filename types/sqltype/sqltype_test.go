package sqltype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/veloxmap/types/sqltype"
)

func TestCode_String(t *testing.T) {
	tests := []struct {
		code sqltype.Code
		want string
	}{
		{sqltype.Varchar, "VARCHAR"},
		{sqltype.Clob, "CLOB"},
		{sqltype.Timestamp, "TIMESTAMP"},
		{sqltype.BigInt, "BIGINT"},
		{sqltype.Code(42), "Code(42)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.String())
		})
	}
}

func TestCode_JDBCValues(t *testing.T) {
	assert.Equal(t, 12, int(sqltype.Varchar))
	assert.Equal(t, 2005, int(sqltype.Clob))
	assert.Equal(t, 93, int(sqltype.Timestamp))
	assert.Equal(t, -5, int(sqltype.BigInt))
}

func TestCode_Classes(t *testing.T) {
	assert.True(t, sqltype.Clob.Textual())
	assert.True(t, sqltype.Varchar.Textual())
	assert.False(t, sqltype.Timestamp.Textual())
	assert.True(t, sqltype.Double.Numeric())
	assert.False(t, sqltype.Boolean.Numeric())
	assert.True(t, sqltype.Blob.Binary())
	assert.False(t, sqltype.Clob.Binary())
}

func TestParseCode(t *testing.T) {
	c, err := sqltype.ParseCode(" clob ")
	require.NoError(t, err)
	assert.Equal(t, sqltype.Clob, c)

	_, err = sqltype.ParseCode("nope")
	assert.Error(t, err)
}

func TestCode_Text(t *testing.T) {
	b, err := sqltype.Timestamp.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "TIMESTAMP", string(b))

	var c sqltype.Code
	require.NoError(t, c.UnmarshalText([]byte("varchar")))
	assert.Equal(t, sqltype.Varchar, c)

	_, err = sqltype.Code(42).MarshalText()
	assert.Error(t, err)
}

func TestFor(t *testing.T) {
	d, ok := sqltype.For(sqltype.Clob)
	require.True(t, ok)
	assert.Same(t, sqltype.ClobDescriptor, d)
	assert.Equal(t, "CLOB", d.String())

	_, ok = sqltype.For(sqltype.Code(42))
	assert.False(t, ok)
}
