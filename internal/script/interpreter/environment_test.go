package interpreter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentGetAcrossScopes(t *testing.T) {
	outer := NewEnvironment()
	outer.Set("x", &NumberValue{Value: 42})

	inner := NewEnclosedEnvironment(outer)

	value, ok := inner.Get("x")
	require.True(t, ok)
	assert.Equal(t, 42.0, value.(*NumberValue).Value)

	_, ok = inner.Get("missing")
	assert.False(t, ok)
}

func TestEnvironmentGetLocalIgnoresOuter(t *testing.T) {
	outer := NewEnvironment()
	outer.Set("x", &NumberValue{Value: 1})

	inner := NewEnclosedEnvironment(outer)
	inner.Set("y", &NumberValue{Value: 2})

	// x lives only in the outer layer and must not leak into a local lookup.
	_, ok := inner.GetLocal("x")
	assert.False(t, ok)

	value, ok := inner.GetLocal("y")
	require.True(t, ok)
	assert.Equal(t, 2.0, value.(*NumberValue).Value)
}

func TestEnvironmentShadowing(t *testing.T) {
	outer := NewEnvironment()
	outer.Set("x", &StringValue{Value: "outer"})

	inner := NewEnclosedEnvironment(outer)
	inner.Set("x", &StringValue{Value: "inner"})

	value, _ := inner.Get("x")
	assert.Equal(t, "inner", value.String())

	// The outer binding is untouched.
	value, _ = outer.Get("x")
	assert.Equal(t, "outer", value.String())
}

func TestEnvironmentDelete(t *testing.T) {
	env := NewEnvironment()
	env.Set("x", &NumberValue{Value: 1})

	assert.True(t, env.Delete("x"))
	assert.False(t, env.Delete("x"))
	assert.False(t, env.Has("x"))
}

func TestEnvironmentKeys(t *testing.T) {
	outer := NewEnvironment()
	outer.Set("a", &NullValue{})

	inner := NewEnclosedEnvironment(outer)
	inner.Set("b", &NullValue{})

	assert.ElementsMatch(t, []string{"b"}, inner.Keys())
	assert.ElementsMatch(t, []string{"a", "b"}, inner.AllKeys())
}
