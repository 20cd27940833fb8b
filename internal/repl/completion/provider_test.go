package completion

import (
	"testing"

	"github.com/strata-sh/strata/internal/script/interpreter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, bindings map[string]interpreter.Value) *Provider {
	t.Helper()

	hooks := NewHooks(nil)
	require.NoError(t, RegisterDefaults(hooks))

	scope := scopeWith("session", bindings)
	return NewProvider(hooks, func() []Scope { return []Scope{scope} }, nil)
}

func TestProviderFieldKeyCompletion(t *testing.T) {
	container := &fakeContainer{
		native:  []string{"density", "temperature"},
		derived: []string{"pressure"},
	}
	p := newTestProvider(t, map[string]interpreter.Value{"sp": container})

	line := `sp["dens`
	candidates, replaceStart := p.Complete(line, len(line))
	assert.Equal(t, []string{"density", "pressure", "temperature"}, candidates)
	assert.Equal(t, len(line)-len("dens"), replaceStart)
}

func TestProviderFallsBackToNamespace(t *testing.T) {
	p := newTestProvider(t, map[string]interpreter.Value{
		"density_map": &interpreter.NumberValue{Value: 1},
	})

	candidates, replaceStart := p.Complete("dens", 4)
	assert.Equal(t, []string{"density_map"}, candidates)
	assert.Equal(t, 0, replaceStart)
}

func TestProviderCompletesUpToCursorOnly(t *testing.T) {
	container := &fakeContainer{native: []string{"density"}}
	p := newTestProvider(t, map[string]interpreter.Value{"sp": container})

	// Text after the cursor must not influence the match.
	line := `sp["] + trailing`
	candidates, _ := p.Complete(line, 4)
	assert.Equal(t, []string{"density"}, candidates)
}

func TestProviderClampsCursor(t *testing.T) {
	p := newTestProvider(t, map[string]interpreter.Value{
		"ds": &interpreter.NumberValue{Value: 1},
	})

	candidates, _ := p.Complete("ds", 99)
	assert.Equal(t, []string{"ds"}, candidates)

	candidates, replaceStart := p.Complete("ds", -5)
	assert.Equal(t, []string{"ds"}, candidates)
	assert.Equal(t, 0, replaceStart)
}
