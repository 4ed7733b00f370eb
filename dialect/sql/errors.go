package sql

import (
	"errors"
	"strings"
)

// errorCoder is an interface for database errors that provide error codes.
// Implemented by: pq.Error, modernc.org/sqlite, etc.
type errorCoder interface {
	Code() string
}

// errorNumberer is an interface for database errors that provide numeric error codes.
type errorNumberer interface {
	Number() uint16
}

// sqlStateError is an interface for errors that provide SQLSTATE codes.
type sqlStateError interface {
	SQLState() string
}

const (
	pgUndefinedTable = "42P01"
	mysqlNoSuchTable = 1146
)

// IsTableNotFound reports if the error resulted from querying a table that
// does not exist.
func IsTableNotFound(err error) bool {
	if err == nil {
		return false
	}

	if e, ok := asError[sqlStateError](err); ok {
		if e.SQLState() == pgUndefinedTable {
			return true
		}
	}

	if e, ok := asError[errorCoder](err); ok {
		if e.Code() == pgUndefinedTable {
			return true
		}
	}

	if e, ok := asError[errorNumberer](err); ok {
		if e.Number() == mysqlNoSuchTable {
			return true
		}
	}

	// Fallback to string matching for drivers that don't implement interfaces
	return containsAny(err.Error(),
		"Error 1146",     // MySQL
		"does not exist", // Postgres
		"no such table",  // SQLite
	)
}

// asError attempts to extract an error implementing interface T from the error chain.
func asError[T any](err error) (T, bool) {
	var target T
	for err != nil {
		if e, ok := err.(T); ok {
			return e, true
		}
		err = errors.Unwrap(err)
	}
	return target, false
}

// containsAny returns true if s contains any of the substrings.
func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
