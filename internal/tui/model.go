package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles contains lipgloss styles for tutor output
type Styles struct {
	Title   lipgloss.Style
	Prompt  lipgloss.Style
	Status  lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
	Output  lipgloss.Style
	Key     lipgloss.Style
	Border  lipgloss.Style
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")), // Green
		Prompt: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")), // Purple
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")), // Cyan
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")), // Red
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")), // Green
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")), // Yellow
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Output: lipgloss.NewStyle(),
		Key: lipgloss.NewStyle().
			Bold(true),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")). // Purple
			Padding(0, 1),
	}
}

// PlainStyles returns styles that emit no escape sequences, for --no-color
// and non-terminal output.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:   plain,
		Prompt:  plain,
		Status:  plain,
		Error:   plain,
		Success: plain,
		Warning: plain,
		Muted:   plain,
		Output:  plain,
		Key:     plain,
		Border:  plain,
	}
}

// Completer returns full-line completion candidates for line.
type Completer func(line string) []string

// EditorModel is a single-line prompt with tab completion. It quits once a
// line is submitted or input is aborted.
type EditorModel struct {
	input     textinput.Model
	complete  Completer
	listing   []string
	styles    Styles
	submitted bool
	aborted   bool
}

// NewEditorModel creates an editor showing prompt. complete may be nil.
func NewEditorModel(prompt string, complete Completer, styles Styles) EditorModel {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.PromptStyle = styles.Prompt
	ti.CompletionStyle = styles.Muted
	ti.ShowSuggestions = complete != nil
	ti.Focus()

	return EditorModel{
		input:    ti,
		complete: complete,
		styles:   styles,
	}
}

// Init initializes the model (required by Bubble Tea)
func (m EditorModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses (required by Bubble Tea)
func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC:
			return m.finish(false), tea.Quit
		case tea.KeyCtrlD:
			if m.input.Value() == "" {
				return m.finish(false), tea.Quit
			}
		case tea.KeyEnter:
			return m.finish(true), tea.Quit
		case tea.KeyTab:
			m.completeLine()
			return m, nil
		}
		m.listing = nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refreshSuggestions()
	return m, cmd
}

// View renders the prompt line and, after an ambiguous Tab, the candidates
// (required by Bubble Tea)
func (m EditorModel) View() string {
	if len(m.listing) == 0 {
		return m.input.View() + "\n"
	}
	return m.input.View() + "\n" + m.styles.Muted.Render(strings.Join(m.listing, "  ")) + "\n"
}

// Value is the text typed so far.
func (m EditorModel) Value() string {
	return m.input.Value()
}

// Submitted reports whether the line was accepted with Enter.
func (m EditorModel) Submitted() bool {
	return m.submitted
}

// Aborted reports whether input was ended with Ctrl+C or Ctrl+D.
func (m EditorModel) Aborted() bool {
	return m.aborted
}

// Listing returns the candidates shown after an ambiguous Tab.
func (m EditorModel) Listing() []string {
	return m.listing
}

func (m EditorModel) finish(submitted bool) EditorModel {
	m.submitted = submitted
	m.aborted = !submitted
	m.listing = nil
	m.input.SetSuggestions(nil)
	m.input.Blur()
	return m
}

func (m *EditorModel) refreshSuggestions() {
	if m.complete == nil || m.input.Value() == "" {
		m.input.SetSuggestions(nil)
		return
	}
	m.input.SetSuggestions(m.complete(m.input.Value()))
}

// completeLine applies Tab: a single candidate replaces the line, several
// extend it to their common prefix and are listed.
func (m *EditorModel) completeLine() {
	if m.complete == nil {
		return
	}

	value := m.input.Value()
	candidates := m.complete(value)
	switch len(candidates) {
	case 0:
		m.listing = nil
		return
	case 1:
		if !strings.HasPrefix(candidates[0], value) {
			break
		}
		m.input.SetValue(candidates[0])
		m.input.CursorEnd()
		m.listing = nil
		m.refreshSuggestions()
		return
	}

	if prefix := commonPrefix(candidates); len(prefix) > len(value) && strings.HasPrefix(prefix, value) {
		m.input.SetValue(prefix)
		m.input.CursorEnd()
	}

	cut := strings.LastIndexByte(value, ' ') + 1
	m.listing = make([]string, len(candidates))
	for i, c := range candidates {
		m.listing[i] = c[min(cut, len(c)):]
	}
	m.refreshSuggestions()
}

func commonPrefix(values []string) string {
	if len(values) == 0 {
		return ""
	}
	prefix := values[0]
	for _, v := range values[1:] {
		for !strings.HasPrefix(v, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}
