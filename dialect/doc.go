// Package dialect names the SQL dialects veloxmap describes column types
// for, and defines the driver interface used to inspect a live database.
//
// # Supported Dialects
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite3"
//
// Mapping files may use common aliases ("postgresql", "mariadb", "sqlite");
// Normalize maps them to the names above.
//
// # Driver Interface
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Close() error
//	    Dialect() string
//	}
//
// # Sub-packages
//
//   - dialect/sql: database/sql driver and live column inspection
//   - dialect/sql/schema: column type description and drift validation
package dialect
