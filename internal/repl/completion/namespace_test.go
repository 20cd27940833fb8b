package completion

import (
	"testing"

	"github.com/strata-sh/strata/internal/script/interpreter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespaceFallbackBareNames(t *testing.T) {
	scopes := []Scope{
		scopeWith("session", map[string]interpreter.Value{
			"density_plot": &interpreter.NumberValue{Value: 1},
			"ds":           &interpreter.NumberValue{Value: 2},
		}),
		scopeWith("globals", map[string]interpreter.Value{
			"ds":   &interpreter.NumberValue{Value: 3},
			"load": &interpreter.NumberValue{Value: 4},
		}),
	}

	result := NamespaceFallback(Request{Line: "", Scopes: scopes})
	require.True(t, result.Applied)
	// Union across scopes, deduplicated and sorted.
	assert.Equal(t, []string{"density_plot", "ds", "load"}, result.Candidates)
	assert.Equal(t, 0, result.ReplaceStart)
}

func TestNamespaceFallbackRanksByPartial(t *testing.T) {
	scopes := []Scope{
		scopeWith("session", map[string]interpreter.Value{
			"density": &interpreter.NumberValue{Value: 1},
			"dataset": &interpreter.NumberValue{Value: 2},
			"load":    &interpreter.NumberValue{Value: 3},
		}),
	}

	result := NamespaceFallback(Request{Line: "print(den", Scopes: scopes})
	require.True(t, result.Applied)
	assert.Contains(t, result.Candidates, "density")
	assert.NotContains(t, result.Candidates, "load")
	assert.Equal(t, len("print("), result.ReplaceStart)
}

func TestNamespaceFallbackAttributes(t *testing.T) {
	obj := &interpreter.ObjectValue{Properties: map[string]interpreter.Value{
		"alpha": &interpreter.NumberValue{Value: 1},
		"beta":  &interpreter.NumberValue{Value: 2},
	}}
	scopes := []Scope{scopeWith("session", map[string]interpreter.Value{"cfg": obj})}

	result := NamespaceFallback(Request{Line: "cfg.", Scopes: scopes})
	require.True(t, result.Applied)
	assert.Equal(t, []string{"alpha", "beta"}, result.Candidates)
	assert.Equal(t, len("cfg."), result.ReplaceStart)

	result = NamespaceFallback(Request{Line: "cfg.al", Scopes: scopes})
	require.True(t, result.Applied)
	assert.Equal(t, []string{"alpha"}, result.Candidates)
}

func TestNamespaceFallbackUnresolvableBase(t *testing.T) {
	result := NamespaceFallback(Request{
		Line:   "missing.attr",
		Scopes: []Scope{scopeWith("session", nil)},
	})
	assert.True(t, result.Applied)
	assert.Empty(t, result.Candidates)
}
