package veloxmap

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Standard sentinel errors for mapping configuration.
var (
	// ErrAmbiguousConverter is returned when more than one auto-apply converter
	// targets the same attribute type.
	ErrAmbiguousConverter = errors.New("veloxmap: ambiguous attribute converter")

	// ErrUnsupportedColumnType is returned when a converter produces a column
	// type that has no SQL mapping.
	ErrUnsupportedColumnType = errors.New("veloxmap: unsupported converter column type")

	// ErrUnknownType is returned when a named type override refers to a type
	// that is not registered.
	ErrUnknownType = errors.New("veloxmap: unknown basic type")

	// ErrUnknownConverter is returned when an attribute refers to a converter
	// name that is not registered.
	ErrUnknownConverter = errors.New("veloxmap: unknown attribute converter")

	// ErrUnresolvableType is returned when no basic type can be determined for
	// an attribute.
	ErrUnresolvableType = errors.New("veloxmap: could not determine basic type")
)

// AmbiguousConverterError reports several auto-apply converters registered
// for one attribute type.
type AmbiguousConverterError struct {
	AttributeType reflect.Type
	Converters    []string // Names of the conflicting converters, in registration order.
}

// Error returns the error string.
func (e *AmbiguousConverterError) Error() string {
	return fmt.Sprintf("veloxmap: multiple auto-apply converters for %v: %s",
		e.AttributeType, strings.Join(e.Converters, ", "))
}

// Is reports whether the target error matches AmbiguousConverterError.
func (e *AmbiguousConverterError) Is(err error) bool {
	return err == ErrAmbiguousConverter
}

// NewAmbiguousConverterError returns a new AmbiguousConverterError.
func NewAmbiguousConverterError(t reflect.Type, names ...string) *AmbiguousConverterError {
	return &AmbiguousConverterError{AttributeType: t, Converters: names}
}

// IsAmbiguousConverter returns true if the error is an AmbiguousConverterError.
func IsAmbiguousConverter(err error) bool {
	if err == nil {
		return false
	}
	var e *AmbiguousConverterError
	return errors.As(err, &e) || errors.Is(err, ErrAmbiguousConverter)
}

// DuplicateConverterError reports two converters registered under one name.
type DuplicateConverterError struct {
	Name string
}

// Error returns the error string.
func (e *DuplicateConverterError) Error() string {
	return fmt.Sprintf("veloxmap: converter %q is already registered", e.Name)
}

// NewDuplicateConverterError returns a new DuplicateConverterError.
func NewDuplicateConverterError(name string) *DuplicateConverterError {
	return &DuplicateConverterError{Name: name}
}

// UnsupportedColumnTypeError reports a converter whose column type cannot be
// bound to a SQL type.
type UnsupportedColumnTypeError struct {
	Converter  string
	ColumnType reflect.Type
}

// Error returns the error string.
func (e *UnsupportedColumnTypeError) Error() string {
	return fmt.Sprintf("veloxmap: converter %q produces unsupported column type %v", e.Converter, e.ColumnType)
}

// Is reports whether the target error matches UnsupportedColumnTypeError.
func (e *UnsupportedColumnTypeError) Is(err error) bool {
	return err == ErrUnsupportedColumnType
}

// NewUnsupportedColumnTypeError returns a new UnsupportedColumnTypeError.
func NewUnsupportedColumnTypeError(converter string, t reflect.Type) *UnsupportedColumnTypeError {
	return &UnsupportedColumnTypeError{Converter: converter, ColumnType: t}
}

// IsUnsupportedColumnType returns true if the error is an UnsupportedColumnTypeError.
func IsUnsupportedColumnType(err error) bool {
	if err == nil {
		return false
	}
	var e *UnsupportedColumnTypeError
	return errors.As(err, &e) || errors.Is(err, ErrUnsupportedColumnType)
}

// UnknownTypeError reports a named type override that is not registered.
type UnknownTypeError struct {
	Name string
}

// Error returns the error string.
func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("veloxmap: unknown basic type %q", e.Name)
}

// Is reports whether the target error matches UnknownTypeError.
func (e *UnknownTypeError) Is(err error) bool {
	return err == ErrUnknownType
}

// NewUnknownTypeError returns a new UnknownTypeError.
func NewUnknownTypeError(name string) *UnknownTypeError {
	return &UnknownTypeError{Name: name}
}

// IsUnknownType returns true if the error is an UnknownTypeError.
func IsUnknownType(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownTypeError
	return errors.As(err, &e) || errors.Is(err, ErrUnknownType)
}

// UnknownConverterError reports a converter reference that is not registered.
type UnknownConverterError struct {
	Name string
}

// Error returns the error string.
func (e *UnknownConverterError) Error() string {
	return fmt.Sprintf("veloxmap: unknown attribute converter %q", e.Name)
}

// Is reports whether the target error matches UnknownConverterError.
func (e *UnknownConverterError) Is(err error) bool {
	return err == ErrUnknownConverter
}

// NewUnknownConverterError returns a new UnknownConverterError.
func NewUnknownConverterError(name string) *UnknownConverterError {
	return &UnknownConverterError{Name: name}
}

// IsUnknownConverter returns true if the error is an UnknownConverterError.
func IsUnknownConverter(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownConverterError
	return errors.As(err, &e) || errors.Is(err, ErrUnknownConverter)
}

// UnresolvableTypeError reports a declared Go type with no conventional mapping.
type UnresolvableTypeError struct {
	GoType reflect.Type
}

// Error returns the error string.
func (e *UnresolvableTypeError) Error() string {
	return fmt.Sprintf("veloxmap: could not determine basic type for %v", e.GoType)
}

// Is reports whether the target error matches UnresolvableTypeError.
func (e *UnresolvableTypeError) Is(err error) bool {
	return err == ErrUnresolvableType
}

// NewUnresolvableTypeError returns a new UnresolvableTypeError.
func NewUnresolvableTypeError(t reflect.Type) *UnresolvableTypeError {
	return &UnresolvableTypeError{GoType: t}
}

// IsUnresolvableType returns true if the error is an UnresolvableTypeError.
func IsUnresolvableType(err error) bool {
	if err == nil {
		return false
	}
	var e *UnresolvableTypeError
	return errors.As(err, &e) || errors.Is(err, ErrUnresolvableType)
}

// AttributeTypeMismatchError reports an explicitly assigned converter whose
// attribute type differs from the declared attribute type.
type AttributeTypeMismatchError struct {
	Converter string
	Expected  reflect.Type // Converter attribute type.
	Declared  reflect.Type // Declared attribute type.
}

// Error returns the error string.
func (e *AttributeTypeMismatchError) Error() string {
	return fmt.Sprintf("veloxmap: converter %q converts %v, attribute is declared as %v",
		e.Converter, e.Expected, e.Declared)
}

// NewAttributeTypeMismatchError returns a new AttributeTypeMismatchError.
func NewAttributeTypeMismatchError(converter string, expected, declared reflect.Type) *AttributeTypeMismatchError {
	return &AttributeTypeMismatchError{Converter: converter, Expected: expected, Declared: declared}
}

// MappingError wraps a resolution error with the attribute it belongs to.
type MappingError struct {
	Entity    string // Owning entity name
	Attribute string // Attribute name
	Err       error  // Underlying error
}

// Error returns the error string.
func (e *MappingError) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("veloxmap: attribute %q: %v", e.Attribute, e.Err)
	}
	return fmt.Sprintf("veloxmap: %s.%s: %v", e.Entity, e.Attribute, e.Err)
}

// Unwrap returns the underlying error.
func (e *MappingError) Unwrap() error {
	return e.Err
}

// NewMappingError returns a new MappingError.
func NewMappingError(entity, attribute string, err error) *MappingError {
	return &MappingError{Entity: entity, Attribute: attribute, Err: err}
}

// IsMappingError returns true if the error is a MappingError.
func IsMappingError(err error) bool {
	if err == nil {
		return false
	}
	var e *MappingError
	return errors.As(err, &e)
}

// ConversionError wraps a failure raised by a converter or a type descriptor
// while reading or writing a column value.
type ConversionError struct {
	Type string // Basic type or converter name
	Op   string // "bind" or "extract"
	Err  error  // Underlying error
}

// Error returns the error string.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("veloxmap: %s %s: %v", e.Op, e.Type, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// NewConversionError returns a new ConversionError.
func NewConversionError(typ, op string, err error) *ConversionError {
	return &ConversionError{Type: typ, Op: op, Err: err}
}

// IsConversionError returns true if the error is a ConversionError.
func IsConversionError(err error) bool {
	if err == nil {
		return false
	}
	var e *ConversionError
	return errors.As(err, &e)
}

// AggregateError represents multiple errors collected while building mappings.
type AggregateError struct {
	Errors []error
}

// Error returns the error string.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "veloxmap: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("veloxmap: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// Unwrap returns the collected errors.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// NewAggregateError returns a new AggregateError if there are errors,
// otherwise returns nil.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &AggregateError{Errors: filtered}
}
