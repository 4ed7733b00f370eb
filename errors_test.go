package veloxmap_test

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/veloxmap"
)

func TestAmbiguousConverterError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := veloxmap.NewAmbiguousConverterError(reflect.TypeFor[string](), "a", "b")
		assert.Equal(t, "veloxmap: multiple auto-apply converters for string: a, b", err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := veloxmap.NewAmbiguousConverterError(reflect.TypeFor[int](), "a", "b")
		assert.True(t, errors.Is(err, veloxmap.ErrAmbiguousConverter))
		assert.False(t, errors.Is(err, veloxmap.ErrUnknownType))
	})

	t.Run("IsAmbiguousConverter", func(t *testing.T) {
		err := veloxmap.NewAmbiguousConverterError(reflect.TypeFor[int](), "a", "b")
		assert.True(t, veloxmap.IsAmbiguousConverter(err))
		assert.True(t, veloxmap.IsAmbiguousConverter(fmt.Errorf("wrapper: %w", err)))
		assert.True(t, veloxmap.IsAmbiguousConverter(veloxmap.ErrAmbiguousConverter))
		assert.False(t, veloxmap.IsAmbiguousConverter(errors.New("other error")))
		assert.False(t, veloxmap.IsAmbiguousConverter(nil))
	})
}

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		is       func(error) bool
		msg      string
	}{
		{
			name:     "UnsupportedColumnType",
			err:      veloxmap.NewUnsupportedColumnTypeError("weird", reflect.TypeFor[chan int]()),
			sentinel: veloxmap.ErrUnsupportedColumnType,
			is:       veloxmap.IsUnsupportedColumnType,
			msg:      `veloxmap: converter "weird" produces unsupported column type chan int`,
		},
		{
			name:     "UnknownType",
			err:      veloxmap.NewUnknownTypeError("nope"),
			sentinel: veloxmap.ErrUnknownType,
			is:       veloxmap.IsUnknownType,
			msg:      `veloxmap: unknown basic type "nope"`,
		},
		{
			name:     "UnknownConverter",
			err:      veloxmap.NewUnknownConverterError("nope"),
			sentinel: veloxmap.ErrUnknownConverter,
			is:       veloxmap.IsUnknownConverter,
			msg:      `veloxmap: unknown attribute converter "nope"`,
		},
		{
			name:     "UnresolvableType",
			err:      veloxmap.NewUnresolvableTypeError(reflect.TypeFor[struct{ A int }]()),
			sentinel: veloxmap.ErrUnresolvableType,
			is:       veloxmap.IsUnresolvableType,
			msg:      "veloxmap: could not determine basic type for struct { A int }",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.msg)
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.True(t, tt.is(tt.err))
			assert.True(t, tt.is(fmt.Errorf("wrapper: %w", tt.err)))
			assert.True(t, tt.is(tt.sentinel))
			assert.False(t, tt.is(errors.New("other error")))
			assert.False(t, tt.is(nil))
		})
	}
}

func TestDuplicateConverterError(t *testing.T) {
	err := veloxmap.NewDuplicateConverterError("string_clob")
	assert.EqualError(t, err, `veloxmap: converter "string_clob" is already registered`)
}

func TestAttributeTypeMismatchError(t *testing.T) {
	err := veloxmap.NewAttributeTypeMismatchError("string_clob", reflect.TypeFor[string](), reflect.TypeFor[int]())
	assert.EqualError(t, err, `veloxmap: converter "string_clob" converts string, attribute is declared as int`)
}

func TestMappingError(t *testing.T) {
	cause := veloxmap.NewUnknownTypeError("nope")

	t.Run("Error", func(t *testing.T) {
		err := veloxmap.NewMappingError("Person", "name", cause)
		assert.Equal(t, `veloxmap: Person.name: veloxmap: unknown basic type "nope"`, err.Error())

		err = veloxmap.NewMappingError("", "name", cause)
		assert.Equal(t, `veloxmap: attribute "name": veloxmap: unknown basic type "nope"`, err.Error())
	})

	t.Run("Unwrap", func(t *testing.T) {
		err := veloxmap.NewMappingError("Person", "name", cause)
		assert.True(t, veloxmap.IsMappingError(err))
		assert.True(t, veloxmap.IsUnknownType(err))
		assert.ErrorIs(t, err, veloxmap.ErrUnknownType)
		assert.False(t, veloxmap.IsMappingError(cause))
		assert.False(t, veloxmap.IsMappingError(nil))
	})
}

func TestConversionError(t *testing.T) {
	cause := errors.New("boom")
	err := veloxmap.NewConversionError("converted::string_clob", "bind", cause)
	assert.EqualError(t, err, "veloxmap: bind converted::string_clob: boom")
	assert.ErrorIs(t, err, cause)
	assert.True(t, veloxmap.IsConversionError(fmt.Errorf("wrapper: %w", err)))
	assert.False(t, veloxmap.IsConversionError(cause))
	assert.False(t, veloxmap.IsConversionError(nil))
}

func TestAggregateError(t *testing.T) {
	t.Run("NoErrors", func(t *testing.T) {
		assert.NoError(t, veloxmap.NewAggregateError())
		assert.NoError(t, veloxmap.NewAggregateError(nil, nil))
	})

	t.Run("SingleError", func(t *testing.T) {
		single := errors.New("only")
		err := veloxmap.NewAggregateError(nil, single, nil)
		assert.Same(t, single, err)
	})

	t.Run("MultipleErrors", func(t *testing.T) {
		err := veloxmap.NewAggregateError(
			veloxmap.NewUnknownTypeError("a"),
			nil,
			veloxmap.NewUnknownConverterError("b"),
		)
		require.Error(t, err)

		var agg *veloxmap.AggregateError
		require.True(t, errors.As(err, &agg))
		assert.Len(t, agg.Errors, 2)
		assert.Equal(t, "veloxmap: multiple errors:\n"+
			"  [1] veloxmap: unknown basic type \"a\"\n"+
			"  [2] veloxmap: unknown attribute converter \"b\"", err.Error())

		assert.True(t, veloxmap.IsUnknownType(err))
		assert.True(t, veloxmap.IsUnknownConverter(err))
		assert.False(t, veloxmap.IsAmbiguousConverter(err))
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, "veloxmap: no errors", (&veloxmap.AggregateError{}).Error())
	})
}
