package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/veloxmap/types/sqltype"
)

func testersTable() *Table {
	return NewTable("testers").
		AddPrimary(&Column{Name: "id", Type: sqltype.BigInt, DBType: "bigint", Attribute: "id"}).
		AddColumn(&Column{Name: "name", Type: sqltype.Clob, DBType: "text", Attribute: "name"})
}

func TestValidateDiff_NoIssues(t *testing.T) {
	current := []*Table{
		NewTable("testers").
			AddColumn(&Column{Name: "id", Type: sqltype.BigInt, DBType: "INT8"}).
			AddColumn(&Column{Name: "name", Type: sqltype.LongVarChar, DBType: "TEXT"}),
		NewTable("unrelated"),
	}
	result := ValidateDiff(current, []*Table{testersTable()})
	assert.False(t, result.HasErrors())
	assert.False(t, result.HasWarnings())
	assert.Equal(t, "No issues found", result.String())
}

func TestValidateDiff_Issues(t *testing.T) {
	current := []*Table{
		NewTable("testers").
			AddColumn(&Column{Name: "id", Type: sqltype.BigInt, Nullable: true}).
			AddColumn(&Column{Name: "name", Type: sqltype.Timestamp, DBType: "timestamp"}).
			AddColumn(&Column{Name: "legacy", Type: sqltype.Varchar}),
	}
	desired := []*Table{
		testersTable().AddColumn(&Column{Name: "code", Type: sqltype.Varchar, Attribute: "code"}),
		NewTable("missing"),
	}
	result := ValidateDiff(current, desired)
	require.True(t, result.HasErrors())
	assert.True(t, result.HasBreakingChanges())

	var errs, warns []string
	for _, e := range result.Errors {
		errs = append(errs, e.Error())
	}
	for _, w := range result.Warnings {
		warns = append(warns, w.Error())
	}
	assert.ElementsMatch(t, []string{
		"testers.name: column type timestamp (TIMESTAMP) is not compatible with text (CLOB)",
		`testers.code: column of attribute "code" does not exist`,
		"missing: table does not exist",
	}, errs)
	assert.ElementsMatch(t, []string{
		"testers.legacy: column is not mapped",
		"testers.id: column allows NULL but the attribute is not nullable",
	}, warns)
	assert.Contains(t, result.String(), "Errors:\n")
	assert.Contains(t, result.String(), "[BREAKING]")
}

func TestValidateDiff_Options(t *testing.T) {
	current := []*Table{
		NewTable("testers").
			AddColumn(&Column{Name: "id", Type: sqltype.BigInt}).
			AddColumn(&Column{Name: "name", Type: sqltype.Integer}).
			AddColumn(&Column{Name: "legacy", Type: sqltype.Varchar, Nullable: true, NullableUnknown: true}),
	}
	result := ValidateDiff(current, []*Table{testersTable()}, AllowUnmappedColumns(), AllowTypeMismatch())
	assert.False(t, result.HasErrors())
	require.Len(t, result.Warnings, 1)
	assert.True(t, result.Warnings[0].Breaking)
}

func TestValidateDiff_Size(t *testing.T) {
	current := []*Table{NewTable("t").AddColumn(&Column{Name: "a", Type: sqltype.Varchar, Size: 10})}
	desired := []*Table{NewTable("t").AddColumn(&Column{Name: "a", Type: sqltype.Varchar, Size: 20})}
	result := ValidateDiff(current, desired)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0].Message, "may be truncated")
}

func TestValidateSchema(t *testing.T) {
	bad := NewTable("testers").
		AddPrimary(&Column{Name: "id", Type: sqltype.BigInt, Nullable: true}).
		AddColumn(&Column{Name: "id", Type: sqltype.BigInt})
	result := ValidateSchema([]*Table{testersTable(), bad, NewTable("nokey")})

	var errs []string
	for _, e := range result.Errors {
		errs = append(errs, e.Error())
	}
	assert.ElementsMatch(t, []string{
		"testers: duplicate table name",
		"testers.id: duplicate column name",
		"testers.id: primary key column is nullable",
	}, errs)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "nokey: table has no primary key", result.Warnings[0].Error())
}
