// Package input implements the REPL's line editor: a bubbletea program that
// reads one line with history navigation and hook-driven tab completion.
package input

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// ErrEOF is returned by ReadLine when the user closes the session with
// Ctrl+D on an empty line.
var ErrEOF = errors.New("end of input")

// ErrInterrupted is returned when the user presses Ctrl+C.
var ErrInterrupted = errors.New("interrupted")

// CompletionProvider supplies completion candidates for the current line.
type CompletionProvider interface {
	// Complete returns candidates for the line at the cursor position and
	// the index in the line where the replacement span begins.
	Complete(line string, pos int) ([]string, int)
}

// Options configures a single ReadLine call.
type Options struct {
	// Prompt is displayed before the input area.
	Prompt string
	// Provider supplies tab completions. Optional.
	Provider CompletionProvider
	// History contains previous commands, oldest first. Optional.
	History []string
	// ClipboardText is copied to the system clipboard on Ctrl+Y. Optional.
	ClipboardText string
}

var (
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	selectedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
)

type model struct {
	textInput  textinput.Model
	opts       Options
	completion *CompletionState

	// history navigation
	historyIdx int // len(opts.History) means "past the end" (editing a new line)
	draft      string

	width  int
	result string
	err    error
}

func newModel(opts Options) model {
	ti := textinput.New()
	ti.Prompt = opts.Prompt
	ti.Focus()

	return model{
		textInput:  ti,
		opts:       opts,
		completion: NewCompletionState(),
		historyIdx: len(opts.History),
		width:      80,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			m.completion.Reset()
			m.result = m.textInput.Value()
			return m, tea.Quit

		case "ctrl+c":
			m.err = ErrInterrupted
			return m, tea.Quit

		case "ctrl+d":
			if m.textInput.Value() == "" {
				m.err = ErrEOF
				return m, tea.Quit
			}
			return m, nil

		case "tab":
			return m.handleTab(false), nil

		case "shift+tab":
			return m.handleTab(true), nil

		case "esc":
			if m.completion.IsActive() {
				original := m.completion.Cancel()
				m.textInput.SetValue(original)
				m.textInput.CursorEnd()
			}
			return m, nil

		case "up":
			if m.completion.IsActive() {
				m.applySuggestion(m.completion.PrevSuggestion())
				return m, nil
			}
			return m.historyBack(), nil

		case "down":
			if m.completion.IsActive() {
				m.applySuggestion(m.completion.NextSuggestion())
				return m, nil
			}
			return m.historyForward(), nil

		case "ctrl+y":
			if m.opts.ClipboardText != "" {
				// No place to report a clipboard failure mid-edit.
				_ = clipboard.WriteAll(m.opts.ClipboardText)
			}
			return m, nil
		}

		// Any other key ends the completion session and edits normally.
		m.completion.Reset()
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// handleTab starts a completion session or cycles within the active one.
func (m model) handleTab(backward bool) model {
	if m.completion.IsActive() {
		if backward {
			m.applySuggestion(m.completion.PrevSuggestion())
		} else {
			m.applySuggestion(m.completion.NextSuggestion())
		}
		return m
	}

	if m.opts.Provider == nil {
		return m
	}

	line := m.textInput.Value()
	pos := m.textInput.Position()
	suggestions, replaceStart := m.opts.Provider.Complete(line, pos)
	if len(suggestions) == 0 {
		return m
	}

	if replaceStart < 0 || replaceStart > pos {
		replaceStart = pos
	}

	m.completion.Activate(suggestions, replaceStart, pos, line)
	if len(suggestions) == 1 {
		m.applySuggestion(m.completion.NextSuggestion())
		m.completion.Reset()
		return m
	}

	m.applySuggestion(m.completion.NextSuggestion())
	return m
}

// applySuggestion replaces the current completion span with the suggestion
// and keeps the span boundaries in sync for the next cycle.
func (m *model) applySuggestion(suggestion string) {
	if suggestion == "" {
		return
	}

	result := ApplySuggestion(m.textInput.Value(), suggestion,
		m.completion.StartPos(), m.completion.EndPos())
	m.textInput.SetValue(result.NewText)
	m.textInput.SetCursor(result.NewCursorPos)
	m.completion.SetSpanEnd(result.NewCursorPos)
}

func (m model) historyBack() model {
	if len(m.opts.History) == 0 || m.historyIdx == 0 {
		return m
	}
	if m.historyIdx == len(m.opts.History) {
		m.draft = m.textInput.Value()
	}
	m.historyIdx--
	m.textInput.SetValue(m.opts.History[m.historyIdx])
	m.textInput.CursorEnd()
	return m
}

func (m model) historyForward() model {
	if m.historyIdx >= len(m.opts.History) {
		return m
	}
	m.historyIdx++
	if m.historyIdx == len(m.opts.History) {
		m.textInput.SetValue(m.draft)
	} else {
		m.textInput.SetValue(m.opts.History[m.historyIdx])
	}
	m.textInput.CursorEnd()
	return m
}

func (m model) View() string {
	var out strings.Builder
	out.WriteString(m.textInput.View())

	if m.completion.IsActive() && len(m.completion.Suggestions()) > 1 {
		out.WriteString("\n")
		out.WriteString(m.renderSuggestions())
	}

	return out.String()
}

// renderSuggestions renders the candidate list below the input line, wrapped
// to the terminal width, with the selected candidate highlighted.
func (m model) renderSuggestions() string {
	parts := make([]string, 0, len(m.completion.Suggestions()))
	for i, suggestion := range m.completion.Suggestions() {
		if i == m.completion.Selected() {
			parts = append(parts, selectedStyle.Render(suggestion))
		} else {
			parts = append(parts, suggestionStyle.Render(suggestion))
		}
	}
	return wordwrap.String(strings.Join(parts, "  "), m.width)
}

// ReadLine reads one line of input, blocking until the user submits or
// cancels. It returns ErrEOF when the session should end.
func ReadLine(opts Options) (string, error) {
	p := tea.NewProgram(newModel(opts))
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m := finalModel.(model)
	if m.err != nil {
		return "", m.err
	}
	return m.result, nil
}
