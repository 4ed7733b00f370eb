package dialect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/veloxmap/dialect"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres", dialect.Postgres},
		{"postgresql", dialect.Postgres},
		{"mysql", dialect.MySQL},
		{"mariadb", dialect.MySQL},
		{"sqlite", dialect.SQLite},
		{"sqlite3", dialect.SQLite},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := dialect.Normalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	_, err := dialect.Normalize("oracle")
	assert.EqualError(t, err, `dialect: unsupported dialect "oracle"`)
}

func TestDriverName(t *testing.T) {
	for d, want := range map[string]string{
		dialect.Postgres: "postgres",
		dialect.MySQL:    "mysql",
		dialect.SQLite:   "sqlite",
	} {
		got, err := dialect.DriverName(d)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := dialect.DriverName("oracle")
	assert.Error(t, err)
	assert.Equal(t, []string{"postgres", "mysql", "sqlite3"}, dialect.Names())
}
