package input

// CompletionState tracks the state of tab completion. It manages the list of
// suggestions, the current selection, and the text boundaries where the
// completion should be applied.
type CompletionState struct {
	// active indicates whether completion mode is currently active
	active bool

	// suggestions is the list of completion candidates
	suggestions []string

	// selected is the index of the currently selected suggestion (-1 if none)
	selected int

	// startPos is the position in the input where the completion span starts
	startPos int

	// endPos is the position in the input where the completion span ends
	endPos int

	// originalText stores the input text before completion started
	// (used for cancellation)
	originalText string
}

// NewCompletionState creates a new CompletionState in its initial (inactive) state.
func NewCompletionState() *CompletionState {
	return &CompletionState{
		selected: -1,
	}
}

// Reset clears all completion state and returns to inactive mode.
func (cs *CompletionState) Reset() {
	cs.active = false
	cs.suggestions = nil
	cs.selected = -1
	cs.startPos = 0
	cs.endPos = 0
	cs.originalText = ""
}

// Activate starts a new completion session with the given suggestions. The
// span [startPos, endPos) is what the chosen suggestion replaces.
func (cs *CompletionState) Activate(suggestions []string, startPos, endPos int, originalText string) {
	cs.active = true
	cs.suggestions = suggestions
	cs.selected = -1
	cs.startPos = startPos
	cs.endPos = endPos
	cs.originalText = originalText
}

// IsActive returns true if completion mode is currently active.
func (cs *CompletionState) IsActive() bool {
	return cs.active
}

// Suggestions returns the current list of completion suggestions.
func (cs *CompletionState) Suggestions() []string {
	return cs.suggestions
}

// Selected returns the index of the currently selected suggestion.
// Returns -1 if no suggestion is selected.
func (cs *CompletionState) Selected() int {
	return cs.selected
}

// CurrentSuggestion returns the currently selected suggestion.
// Returns empty string if no suggestion is selected or completion is inactive.
func (cs *CompletionState) CurrentSuggestion() string {
	if !cs.active || cs.selected < 0 || cs.selected >= len(cs.suggestions) {
		return ""
	}
	return cs.suggestions[cs.selected]
}

// NextSuggestion advances to the next suggestion and returns it.
// Wraps around to the first suggestion after the last one.
func (cs *CompletionState) NextSuggestion() string {
	if !cs.active || len(cs.suggestions) == 0 {
		return ""
	}
	cs.selected = (cs.selected + 1) % len(cs.suggestions)
	return cs.suggestions[cs.selected]
}

// PrevSuggestion moves to the previous suggestion and returns it.
// Wraps around to the last suggestion before the first one.
func (cs *CompletionState) PrevSuggestion() string {
	if !cs.active || len(cs.suggestions) == 0 {
		return ""
	}
	cs.selected--
	if cs.selected < 0 {
		cs.selected = len(cs.suggestions) - 1
	}
	return cs.suggestions[cs.selected]
}

// SetSpanEnd updates where the completion span currently ends. Used after a
// suggestion is inserted so the next cycle replaces the inserted text.
func (cs *CompletionState) SetSpanEnd(endPos int) {
	cs.endPos = endPos
}

// StartPos returns the start position of the completion span.
func (cs *CompletionState) StartPos() int {
	return cs.startPos
}

// EndPos returns the end position of the completion span.
func (cs *CompletionState) EndPos() int {
	return cs.endPos
}

// Cancel cancels the current completion and returns the original text.
// After calling this, the completion state is reset.
func (cs *CompletionState) Cancel() string {
	originalText := cs.originalText
	cs.Reset()
	return originalText
}

// CompletionResult represents the result of applying a completion suggestion.
type CompletionResult struct {
	// NewText is the resulting text after applying the completion
	NewText string
	// NewCursorPos is the new cursor position after applying the completion
	NewCursorPos int
}

// ApplySuggestion applies a completion suggestion to the given text.
// It replaces the text between startPos and endPos with the suggestion.
// Returns the new text and the new cursor position.
func ApplySuggestion(text string, suggestion string, startPos, endPos int) CompletionResult {
	if startPos > len(text) {
		startPos = len(text)
	}
	if endPos > len(text) {
		endPos = len(text)
	}
	if startPos > endPos {
		startPos = endPos
	}

	newText := text[:startPos] + suggestion
	if endPos < len(text) {
		newText += text[endPos:]
	}

	return CompletionResult{
		NewText:      newText,
		NewCursorPos: startPos + len(suggestion),
	}
}
