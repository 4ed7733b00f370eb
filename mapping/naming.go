package mapping

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

// AttributeName returns the attribute name of a Go field name: the field
// name with its leading initialism or first letter lowered.
//
//	ID          => id
//	DateCreated => dateCreated
//	HTTPServer  => httpServer
func AttributeName(field string) string {
	rs := []rune(field)
	n := 0
	for n < len(rs) && unicode.IsUpper(rs[n]) {
		n++
	}
	switch {
	case n == 0:
		return field
	case n == len(rs):
		return strings.ToLower(field)
	case n > 1:
		// Keep the last upper rune, it starts the next word.
		n--
	}
	return strings.ToLower(string(rs[:n])) + string(rs[n:])
}

// ColumnName returns the default column name of an attribute.
func ColumnName(attr string) string {
	return inflect.Underscore(attr)
}

// TableName returns the default table name of an entity.
func TableName(entity string) string {
	return inflect.Underscore(inflect.Pluralize(entity))
}
