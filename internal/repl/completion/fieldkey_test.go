package completion

import (
	"testing"

	"github.com/strata-sh/strata/internal/fields"
	"github.com/strata-sh/strata/internal/script/interpreter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeContainer is a minimal value satisfying the field container capability.
type fakeContainer struct {
	native  []string
	derived []string
}

func (f *fakeContainer) Type() interpreter.ValueType  { return interpreter.ValueTypeObject }
func (f *fakeContainer) String() string               { return "<fake container>" }
func (f *fakeContainer) IsTruthy() bool               { return true }
func (f *fakeContainer) Equals(interpreter.Value) bool { return false }
func (f *fakeContainer) NativeFieldIDs() []string     { return f.native }
func (f *fakeContainer) DerivedFieldIDs() []string    { return f.derived }

var _ fields.Container = (*fakeContainer)(nil)

func scopeWith(name string, bindings map[string]interpreter.Value) Scope {
	env := interpreter.NewEnvironment()
	for k, v := range bindings {
		env.Set(k, v)
	}
	return Scope{Name: name, Env: env}
}

func TestMatchFieldKey(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantExpr  string
		wantKey   string
		wantMatch bool
	}{
		{name: "open quote only", line: `data["`, wantExpr: "data", wantKey: "", wantMatch: true},
		{name: "partial key", line: `data["dens`, wantExpr: "data", wantKey: "dens", wantMatch: true},
		{name: "single quotes", line: `data['temp`, wantExpr: "data", wantKey: "temp", wantMatch: true},
		{name: "dotted base", line: `ds.all["vel`, wantExpr: "ds.all", wantKey: "vel", wantMatch: true},
		{name: "dotted method base", line: `ds.sphere["dens`, wantExpr: "ds.sphere", wantKey: "dens", wantMatch: true},
		{name: "deep chain", line: `a.b.c["x`, wantExpr: "a.b.c", wantKey: "x", wantMatch: true},
		{name: "mid assignment", line: `rho = data["dens`, wantExpr: "data", wantKey: "dens", wantMatch: true},
		{name: "last bracket wins", line: `a["x"] + b["y`, wantExpr: "b", wantKey: "y", wantMatch: true},
		{name: "call base rejected", line: `compute()["x`, wantMatch: false},
		{name: "index base rejected", line: `rows[0]["x`, wantMatch: false},
		{name: "no bracket", line: `data.dens`, wantMatch: false},
		{name: "bracket without quote", line: `data[`, wantMatch: false},
		{name: "closed key", line: `data["density"]`, wantMatch: false},
		{name: "bare bracket", line: `["x`, wantMatch: false},
		{name: "empty line", line: "", wantMatch: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, ok := MatchFieldKey(tt.line)
			assert.Equal(t, tt.wantMatch, ok)
			if tt.wantMatch {
				assert.Equal(t, tt.wantExpr, match.ObjectExpr)
				assert.Equal(t, tt.wantKey, match.PartialKey)
			}
		})
	}
}

func TestResolveFieldsUnion(t *testing.T) {
	container := &fakeContainer{
		native:  []string{"temperature", "density"},
		derived: []string{"pressure", "density"},
	}
	scopes := []Scope{scopeWith("session", map[string]interpreter.Value{"data": container})}

	got, ok := ResolveFields("data", scopes)
	require.True(t, ok)
	// Deduplicated and sorted.
	assert.Equal(t, []string{"density", "pressure", "temperature"}, got)
}

func TestResolveFieldsLocalScopeWins(t *testing.T) {
	local := &fakeContainer{native: []string{"local_field"}}
	global := &fakeContainer{native: []string{"global_field"}}

	scopes := []Scope{
		scopeWith("session", map[string]interpreter.Value{"data": local}),
		scopeWith("globals", map[string]interpreter.Value{"data": global}),
	}

	got, ok := ResolveFields("data", scopes)
	require.True(t, ok)
	assert.Equal(t, []string{"local_field"}, got)
}

func TestResolveFieldsFallsBackToOuterScope(t *testing.T) {
	global := &fakeContainer{native: []string{"global_field"}}

	scopes := []Scope{
		scopeWith("session", nil),
		scopeWith("globals", map[string]interpreter.Value{"data": global}),
	}

	got, ok := ResolveFields("data", scopes)
	require.True(t, ok)
	assert.Equal(t, []string{"global_field"}, got)
}

func TestResolveFieldsDottedChain(t *testing.T) {
	container := &fakeContainer{native: []string{"density"}}
	obj := &interpreter.ObjectValue{Properties: map[string]interpreter.Value{
		"inner": container,
	}}
	scopes := []Scope{scopeWith("session", map[string]interpreter.Value{"ds": obj})}

	got, ok := ResolveFields("ds.inner", scopes)
	require.True(t, ok)
	assert.Equal(t, []string{"density"}, got)

	_, ok = ResolveFields("ds.missing", scopes)
	assert.False(t, ok)
}

func TestResolveFieldsRejectsNonContainer(t *testing.T) {
	scopes := []Scope{scopeWith("session", map[string]interpreter.Value{
		"x": &interpreter.NumberValue{Value: 42},
	})}

	_, ok := ResolveFields("x", scopes)
	assert.False(t, ok)
}

func TestResolveFieldsRejectsMalformedExpr(t *testing.T) {
	scopes := []Scope{scopeWith("session", nil)}

	for _, expr := range []string{"", ".", "a..b", "a.", "1abc", "a-b"} {
		_, ok := ResolveFields(expr, scopes)
		assert.False(t, ok, "expr %q should not resolve", expr)
	}
}

func TestFieldKeyHookAppliesWithCandidates(t *testing.T) {
	container := &fakeContainer{
		native:  []string{"density", "temperature"},
		derived: []string{"pressure"},
	}
	req := Request{
		Line:   `sp["dens`,
		Scopes: []Scope{scopeWith("session", map[string]interpreter.Value{"sp": container})},
	}

	result := FieldKeyHook(req)
	require.True(t, result.Applied)
	// The full field list is offered regardless of the typed partial.
	assert.Equal(t, []string{"density", "pressure", "temperature"}, result.Candidates)
	assert.Equal(t, len(req.Line)-len("dens"), result.ReplaceStart)
}

func TestFieldKeyHookDefersOnUnresolvedName(t *testing.T) {
	req := Request{
		Line:   `ghost["dens`,
		Scopes: []Scope{scopeWith("session", nil), scopeWith("globals", nil)},
	}

	result := FieldKeyHook(req)
	assert.False(t, result.Applied)
	assert.Nil(t, result.Candidates)
}

func TestFieldKeyHookDefersOnNonContainer(t *testing.T) {
	// A resolvable name that lacks the container capability defers; it must
	// not produce an applied-but-empty answer.
	req := Request{
		Line: `x["dens`,
		Scopes: []Scope{scopeWith("session", map[string]interpreter.Value{
			"x": &interpreter.StringValue{Value: "hello"},
		})},
	}

	result := FieldKeyHook(req)
	assert.False(t, result.Applied)
}

func TestFieldKeyHookDefersOnNonMatchingLine(t *testing.T) {
	container := &fakeContainer{native: []string{"density"}}
	req := Request{
		Line:   `compute()["x`,
		Scopes: []Scope{scopeWith("session", map[string]interpreter.Value{"compute": container})},
	}

	result := FieldKeyHook(req)
	assert.False(t, result.Applied)
}

func TestFieldKeyHookIsIdempotent(t *testing.T) {
	container := &fakeContainer{native: []string{"density", "temperature"}}
	req := Request{
		Line:   `sp["`,
		Scopes: []Scope{scopeWith("session", map[string]interpreter.Value{"sp": container})},
	}

	first := FieldKeyHook(req)
	second := FieldKeyHook(req)
	assert.Equal(t, first, second)
}

func TestFieldKeyHookEmptyContainerAppliesEmpty(t *testing.T) {
	// An applied result with zero candidates is a valid outcome distinct
	// from deferral.
	container := &fakeContainer{}
	req := Request{
		Line:   `sp["`,
		Scopes: []Scope{scopeWith("session", map[string]interpreter.Value{"sp": container})},
	}

	result := FieldKeyHook(req)
	assert.True(t, result.Applied)
	assert.Empty(t, result.Candidates)
}
