package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinSum(t *testing.T) {
	v, err := builtinSum([]Value{NumberValue(1), NumberValue(2), NumberValue(3)})
	require.Nil(t, err)
	assert.Equal(t, NumberValue(6), v)

	v, err = builtinSum(nil)
	require.Nil(t, err)
	assert.Equal(t, NumberValue(0), v)

	_, err = builtinSum([]Value{TextValue("x")})
	require.NotNil(t, err)
	assert.Equal(t, KindInvalidArgument, err.Kind())
}

func TestBuiltinAvg(t *testing.T) {
	v, err := builtinAvg([]Value{NumberValue(2), NumberValue(4)})
	require.Nil(t, err)
	assert.Equal(t, NumberValue(3), v)

	_, err = builtinAvg(nil)
	require.NotNil(t, err)
	assert.Equal(t, KindInvalidArgument, err.Kind())
}

func TestBuiltinMinMax(t *testing.T) {
	args := []Value{NumberValue(5), NumberValue(1), NumberValue(3)}
	min, err := builtinMin(args)
	require.Nil(t, err)
	assert.Equal(t, NumberValue(1), min)

	max, err := builtinMax(args)
	require.Nil(t, err)
	assert.Equal(t, NumberValue(5), max)

	_, err = builtinMin(nil)
	require.NotNil(t, err)
	_, err = builtinMax(nil)
	require.NotNil(t, err)
}

func TestBuiltinCount(t *testing.T) {
	v, err := builtinCount([]Value{NumberValue(1), TextValue("x")})
	require.Nil(t, err)
	assert.Equal(t, NumberValue(2), v)

	v, err = builtinCount(nil)
	require.Nil(t, err)
	assert.Equal(t, NumberValue(0), v)
}

func TestBuiltinIf(t *testing.T) {
	v, err := builtinIf([]Value{BoolValue(true), NumberValue(1), NumberValue(2)})
	require.Nil(t, err)
	assert.Equal(t, NumberValue(1), v)

	v, err = builtinIf([]Value{BoolValue(false), NumberValue(1), NumberValue(2)})
	require.Nil(t, err)
	assert.Equal(t, NumberValue(2), v)

	_, err = builtinIf([]Value{NumberValue(1), NumberValue(1), NumberValue(2)})
	require.NotNil(t, err)
	assert.Equal(t, KindTypeError, err.Kind())

	_, err = builtinIf([]Value{BoolValue(true), NumberValue(1)})
	require.NotNil(t, err)
	assert.Equal(t, KindInvalidArgument, err.Kind())
}

func TestLookupBuiltinCaseInsensitive(t *testing.T) {
	fn, ok := LookupBuiltin("sum")
	require.True(t, ok)
	assert.NotNil(t, fn)

	_, ok = LookupBuiltin("nope")
	assert.False(t, ok)
}
