package schema

import (
	"fmt"
	"strings"
)

// ValidationError represents a schema validation error.
type ValidationError struct {
	Table   string
	Column  string
	Message string
	// Breaking indicates that reading or writing the mapped entity fails.
	Breaking bool
}

func (e *ValidationError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s.%s: %s", e.Table, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Table, e.Message)
}

// ValidationResult holds the results of schema validation.
type ValidationResult struct {
	Errors   []*ValidationError
	Warnings []*ValidationError
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// HasBreakingChanges returns true if there are any breaking issues.
func (r *ValidationResult) HasBreakingChanges() bool {
	for _, e := range r.Errors {
		if e.Breaking {
			return true
		}
	}
	for _, w := range r.Warnings {
		if w.Breaking {
			return true
		}
	}
	return false
}

// Merge appends the errors and warnings of o to r.
func (r *ValidationResult) Merge(o *ValidationResult) {
	r.Errors = append(r.Errors, o.Errors...)
	r.Warnings = append(r.Warnings, o.Warnings...)
}

// String returns a human-readable summary of the validation result.
func (r *ValidationResult) String() string {
	var sb strings.Builder
	write := func(title string, errs []*ValidationError) {
		if len(errs) == 0 {
			return
		}
		sb.WriteString(title)
		sb.WriteString(":\n")
		for _, e := range errs {
			sb.WriteString("  - ")
			sb.WriteString(e.Error())
			if e.Breaking {
				sb.WriteString(" [BREAKING]")
			}
			sb.WriteString("\n")
		}
	}
	write("Errors", r.Errors)
	write("Warnings", r.Warnings)
	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}
	return sb.String()
}

// ValidateOption configures schema validation.
type ValidateOption func(*validateConfig)

type validateConfig struct {
	allowUnmappedColumns bool
	allowTypeMismatch    bool
}

// AllowUnmappedColumns does not report database columns without a mapped
// attribute.
func AllowUnmappedColumns() ValidateOption {
	return func(c *validateConfig) {
		c.allowUnmappedColumns = true
	}
}

// AllowTypeMismatch reports incompatible column types as warnings instead
// of errors.
func AllowTypeMismatch() ValidateOption {
	return func(c *validateConfig) {
		c.allowTypeMismatch = true
	}
}

// ValidateDiff validates the tables found in the database (current) against
// the tables the mappings expect (desired). Database tables that are not
// mapped are ignored.
//
// Example:
//
//	result := schema.ValidateDiff(current, desired)
//	if result.HasBreakingChanges() {
//	    log.Fatal("mappings do not match the database:", result)
//	}
func ValidateDiff(current, desired []*Table, opts ...ValidateOption) *ValidationResult {
	cfg := &validateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	result := &ValidationResult{}
	currentMap := make(map[string]*Table, len(current))
	for _, t := range current {
		currentMap[t.Name] = t
	}
	for _, d := range desired {
		c, ok := currentMap[d.Name]
		if !ok {
			result.Errors = append(result.Errors, &ValidationError{
				Table:    d.Name,
				Message:  "table does not exist",
				Breaking: true,
			})
			continue
		}
		validateTableDiff(c, d, cfg, result)
	}
	return result
}

func validateTableDiff(current, desired *Table, cfg *validateConfig, result *ValidationResult) {
	// Database columns without an attribute.
	if !cfg.allowUnmappedColumns {
		for _, c := range current.Columns {
			if _, ok := desired.Column(c.Name); !ok {
				result.Warnings = append(result.Warnings, &ValidationError{
					Table:   current.Name,
					Column:  c.Name,
					Message: "column is not mapped",
				})
			}
		}
	}

	for _, desiredCol := range desired.Columns {
		currentCol, ok := current.Column(desiredCol.Name)
		if !ok {
			result.Errors = append(result.Errors, &ValidationError{
				Table:    current.Name,
				Column:   desiredCol.Name,
				Message:  fmt.Sprintf("column of attribute %q does not exist", desiredCol.Attribute),
				Breaking: true,
			})
			continue
		}

		want := desiredCol.Type
		if code, ok := CodeOf(desiredCol.DBType); ok {
			want = code
		}
		if !Compatible(currentCol.Type, want) {
			err := &ValidationError{
				Table:    current.Name,
				Column:   desiredCol.Name,
				Message:  fmt.Sprintf("column type %s is not compatible with %s", describe(currentCol), describe(desiredCol)),
				Breaking: true,
			}
			if cfg.allowTypeMismatch {
				result.Warnings = append(result.Warnings, err)
			} else {
				result.Errors = append(result.Errors, err)
			}
		}

		// NULL values cannot be read into non-pointer attributes.
		if currentCol.Nullable && !currentCol.NullableUnknown && !desiredCol.Nullable {
			result.Warnings = append(result.Warnings, &ValidationError{
				Table:   current.Name,
				Column:  desiredCol.Name,
				Message: "column allows NULL but the attribute is not nullable",
			})
		}

		if currentCol.Size > 0 && desiredCol.Size > currentCol.Size {
			result.Warnings = append(result.Warnings, &ValidationError{
				Table:   current.Name,
				Column:  desiredCol.Name,
				Message: fmt.Sprintf("column size %d is smaller than %d, values may be truncated", currentCol.Size, desiredCol.Size),
			})
		}
	}
}

func describe(c *Column) string {
	if c.DBType != "" {
		return fmt.Sprintf("%s (%s)", c.DBType, c.Type)
	}
	return c.Type.String()
}

// ValidateTable validates a single table definition.
func ValidateTable(t *Table) *ValidationResult {
	result := &ValidationResult{}

	if len(t.PrimaryKey) == 0 {
		result.Warnings = append(result.Warnings, &ValidationError{
			Table:   t.Name,
			Message: "table has no primary key",
		})
	}

	colNames := make(map[string]bool)
	for _, c := range t.Columns {
		if colNames[c.Name] {
			result.Errors = append(result.Errors, &ValidationError{
				Table:   t.Name,
				Column:  c.Name,
				Message: "duplicate column name",
			})
		}
		colNames[c.Name] = true
	}
	for _, c := range t.PrimaryKey {
		if c.Nullable {
			result.Errors = append(result.Errors, &ValidationError{
				Table:   t.Name,
				Column:  c.Name,
				Message: "primary key column is nullable",
			})
		}
	}
	return result
}

// ValidateSchema validates all tables in a schema.
func ValidateSchema(tables []*Table) *ValidationResult {
	result := &ValidationResult{}
	tableNames := make(map[string]bool)
	for _, t := range tables {
		if tableNames[t.Name] {
			result.Errors = append(result.Errors, &ValidationError{
				Table:   t.Name,
				Message: "duplicate table name",
			})
		}
		tableNames[t.Name] = true
		result.Merge(ValidateTable(t))
	}
	return result
}
