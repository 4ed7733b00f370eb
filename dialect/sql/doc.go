// Package sql connects to SQL databases and reads the column layout of
// mapped tables.
//
// Drivers are opened by dialect name; the database/sql driver for the
// dialect must be imported by the program:
//
//	import _ "github.com/lib/pq"
//
//	drv, err := sql.Open(dialect.Postgres, dsn)
//	if err != nil {
//	    return err
//	}
//	defer drv.Close()
//
// An Inspector reads the columns of existing tables, which can then be
// compared with the tables a mapping expects:
//
//	current, err := sql.NewInspector(drv).InspectAll(ctx, "people", "orders")
//	desired, err := schema.TablesFromMetadata(md, drv.Dialect())
//	result := schema.ValidateDiff(current, desired)
//
// StatsDriver and DebugDriver wrap any dialect.Driver to collect query
// statistics or log statements.
package sql
