package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionStateLifecycle(t *testing.T) {
	cs := NewCompletionState()
	assert.False(t, cs.IsActive())
	assert.Equal(t, "", cs.CurrentSuggestion())

	cs.Activate([]string{"density", "temperature"}, 4, 8, `sp["dens`)
	assert.True(t, cs.IsActive())
	assert.Equal(t, -1, cs.Selected())
	assert.Equal(t, 4, cs.StartPos())
	assert.Equal(t, 8, cs.EndPos())

	cs.Reset()
	assert.False(t, cs.IsActive())
	assert.Nil(t, cs.Suggestions())
}

func TestCompletionCycling(t *testing.T) {
	cs := NewCompletionState()
	cs.Activate([]string{"a", "b", "c"}, 0, 0, "")

	assert.Equal(t, "a", cs.NextSuggestion())
	assert.Equal(t, "b", cs.NextSuggestion())
	assert.Equal(t, "c", cs.NextSuggestion())
	// Wraps around.
	assert.Equal(t, "a", cs.NextSuggestion())

	// Backwards from the first wraps to the last.
	assert.Equal(t, "c", cs.PrevSuggestion())
	assert.Equal(t, "b", cs.PrevSuggestion())

	assert.Equal(t, "b", cs.CurrentSuggestion())
}

func TestCompletionCyclingInactive(t *testing.T) {
	cs := NewCompletionState()
	assert.Equal(t, "", cs.NextSuggestion())
	assert.Equal(t, "", cs.PrevSuggestion())
}

func TestCompletionCancelRestoresOriginal(t *testing.T) {
	cs := NewCompletionState()
	cs.Activate([]string{"density"}, 4, 8, `sp["dens`)

	original := cs.Cancel()
	assert.Equal(t, `sp["dens`, original)
	assert.False(t, cs.IsActive())
}

func TestApplySuggestion(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		suggestion string
		startPos   int
		endPos     int
		wantText   string
		wantCursor int
	}{
		{
			name:       "replace partial key at end",
			text:       `sp["dens`,
			suggestion: "density",
			startPos:   4,
			endPos:     8,
			wantText:   `sp["density`,
			wantCursor: 11,
		},
		{
			name:       "replace in the middle",
			text:       `x = sp["dens] + 1`,
			suggestion: "density",
			startPos:   8,
			endPos:     12,
			wantText:   `x = sp["density] + 1`,
			wantCursor: 15,
		},
		{
			name:       "empty span inserts",
			text:       `sp["`,
			suggestion: "density",
			startPos:   4,
			endPos:     4,
			wantText:   `sp["density`,
			wantCursor: 11,
		},
		{
			name:       "out of range positions are clamped",
			text:       "ab",
			suggestion: "X",
			startPos:   10,
			endPos:     20,
			wantText:   "abX",
			wantCursor: 3,
		},
		{
			name:       "inverted span collapses",
			text:       "abcd",
			suggestion: "X",
			startPos:   3,
			endPos:     1,
			wantText:   "aXbcd",
			wantCursor: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ApplySuggestion(tt.text, tt.suggestion, tt.startPos, tt.endPos)
			assert.Equal(t, tt.wantText, result.NewText)
			assert.Equal(t, tt.wantCursor, result.NewCursorPos)
		})
	}
}

func TestApplySuggestionKeepsCyclingSpanInSync(t *testing.T) {
	cs := NewCompletionState()
	line := `sp["`
	cs.Activate([]string{"density", "temperature"}, 4, 4, line)

	first := cs.NextSuggestion()
	result := ApplySuggestion(line, first, cs.StartPos(), cs.EndPos())
	require.Equal(t, `sp["density`, result.NewText)
	cs.SetSpanEnd(result.NewCursorPos)

	second := cs.NextSuggestion()
	result = ApplySuggestion(result.NewText, second, cs.StartPos(), cs.EndPos())
	assert.Equal(t, `sp["temperature`, result.NewText)
}
