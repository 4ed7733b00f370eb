package dialect

import (
	"context"
	"fmt"
)

// Dialect names.
const (
	Postgres = "postgres"
	MySQL    = "mysql"
	SQLite   = "sqlite3"
)

// ExecQuerier wraps the two database operations.
type ExecQuerier interface {
	// Exec executes a query that does not return records. For example, in SQL, INSERT or UPDATE.
	// It scans the result into the pointer v. For SQL drivers, it is dialect/sql.Result.
	Exec(ctx context.Context, query string, args, v any) error
	// Query executes a query that returns rows, typically a SELECT in SQL.
	// It scans the result into the pointer v. For SQL drivers, it is *dialect/sql.Rows.
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the interface that wraps all necessary operations for inspecting
// a database.
type Driver interface {
	ExecQuerier
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the dialect name of the driver.
	Dialect() string
}

// Names returns the supported dialect names.
func Names() []string {
	return []string{Postgres, MySQL, SQLite}
}

// DriverName returns the database/sql driver name registered for the dialect.
func DriverName(d string) (string, error) {
	switch d {
	case Postgres:
		return "postgres", nil
	case MySQL:
		return "mysql", nil
	case SQLite, "sqlite":
		// modernc.org/sqlite registers itself as "sqlite".
		return "sqlite", nil
	}
	return "", fmt.Errorf("dialect: unsupported dialect %q", d)
}

// Normalize returns the canonical dialect name.
func Normalize(d string) (string, error) {
	switch d {
	case Postgres, "postgresql", "pgx":
		return Postgres, nil
	case MySQL, "mariadb":
		return MySQL, nil
	case SQLite, "sqlite":
		return SQLite, nil
	}
	return "", fmt.Errorf("dialect: unsupported dialect %q", d)
}
