package converter_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/veloxmap"
	"github.com/syssam/veloxmap/converter"
)

func TestRegistry(t *testing.T) {
	clob := converter.New("string_clob", converter.StringClob(), true)
	inst := converter.New("instant", instantConverter(), false)
	r, err := converter.NewRegistry(clob, inst)
	require.NoError(t, err)

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []*converter.Definition{clob, inst}, r.Definitions())

	d, ok := r.Lookup("instant")
	require.True(t, ok)
	assert.Same(t, inst, d)
	_, ok = r.Lookup("missing")
	assert.False(t, ok)

	d, ok = r.AutoApplied(reflect.TypeFor[string]())
	require.True(t, ok)
	assert.Same(t, clob, d)
	_, ok = r.AutoApplied(reflect.TypeFor[instant]())
	assert.False(t, ok, "instant converter is not auto-applied")
	_, ok = r.AutoApplied(reflect.TypeFor[*string]())
	assert.False(t, ok, "lookup is exact")
}

func TestRegistry_Ambiguous(t *testing.T) {
	first := converter.New("first", converter.StringClob(), true)
	second := converter.New("second", converter.UUIDString(), false)
	third := converter.New("third", converter.Func(
		func(s string) ([]byte, error) { return []byte(s), nil },
		func(b []byte) (string, error) { return string(b), nil },
	), true)

	r, err := converter.NewRegistry()
	require.NoError(t, err)
	err = r.Register(first, second, third)
	require.Error(t, err)
	assert.True(t, veloxmap.IsAmbiguousConverter(err))
	assert.True(t, errors.Is(err, veloxmap.ErrAmbiguousConverter))

	var ae *veloxmap.AmbiguousConverterError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, []string{"first", "third"}, ae.Converters)
	assert.Equal(t, reflect.TypeFor[string](), ae.AttributeType)

	d, ok := r.AutoApplied(reflect.TypeFor[string]())
	require.True(t, ok)
	assert.Same(t, first, d, "first registration is kept")
	_, ok = r.Lookup("third")
	assert.False(t, ok)
	_, ok = r.Lookup("second")
	assert.True(t, ok, "valid definitions are still registered")
}

func TestRegistry_Duplicate(t *testing.T) {
	_, err := converter.NewRegistry(
		converter.New("c", converter.StringClob(), false),
		converter.New("c", converter.BoolInt(), false),
	)
	var de *veloxmap.DuplicateConverterError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "c", de.Name)
	assert.EqualError(t, err, `veloxmap: converter "c" is already registered`)
}

func TestRegistry_SeveralErrors(t *testing.T) {
	_, err := converter.NewRegistry(
		converter.New("a", converter.StringClob(), true),
		converter.New("a", converter.BoolInt(), false),
		converter.New("b", converter.StringClob(), true),
	)
	var agg *veloxmap.AggregateError
	require.ErrorAs(t, err, &agg)
	assert.Len(t, agg.Errors, 2)
	assert.True(t, veloxmap.IsAmbiguousConverter(err))
}

func TestRegistry_NilDefinition(t *testing.T) {
	r, err := converter.NewRegistry()
	require.NoError(t, err)
	err = r.Register(nil, converter.New("c", converter.StringClob(), false))
	require.ErrorIs(t, err, converter.ErrNilDefinition)
	assert.Equal(t, 1, r.Len())
	_, ok := r.Lookup("c")
	assert.True(t, ok)
}
