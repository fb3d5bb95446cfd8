package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// MaxNameLength is the longest player name stored with a score.
const MaxNameLength = 5

// NormalizeName keeps up to MaxNameLength latin letters, upper-cased.
func NormalizeName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if r < 'A' || r > 'Z' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == MaxNameLength {
			break
		}
	}
	return b.String()
}

// NamePromptModel asks for the player name before a run.
type NamePromptModel struct {
	input    textinput.Model
	width    int
	height   int
	theme    Theme
	errMsg   string
	done     bool
	quitting bool
}

// NewNamePromptModel creates a prompt prefilled with initial.
func NewNamePromptModel(initial string, width, height int) NamePromptModel {
	ti := textinput.New()
	ti.Placeholder = "ABCDE"
	ti.CharLimit = MaxNameLength
	ti.Width = MaxNameLength + 1
	ti.Prompt = "> "
	ti.SetValue(NormalizeName(initial))
	ti.Focus()

	return NamePromptModel{
		input:  ti,
		width:  width,
		height: height,
		theme:  GetTheme(),
	}
}

// Init starts the cursor blink.
func (m NamePromptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m NamePromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if NormalizeName(m.input.Value()) == "" {
				m.errMsg = "Enter at least one letter"
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.input.SetValue(strings.ToUpper(m.input.Value()))
	m.errMsg = ""
	if v := m.input.Value(); NormalizeName(v) != v {
		m.errMsg = "Letters A-Z only"
	}
	return m, cmd
}

// View renders the prompt.
func (m NamePromptModel) View() string {
	if m.done || m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("M A Z E"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render("Your name (up to 5 letters):"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.input.View(), m.width))
	b.WriteString("\n\n")
	if m.errMsg != "" {
		b.WriteString(centerText(m.theme.Error.Render(m.errMsg), m.width))
	}
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.Controls.Render("Enter: Continue  |  Esc: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Name returns the entered name, normalized.
func (m NamePromptModel) Name() string {
	return NormalizeName(m.input.Value())
}

// Done reports whether a name was confirmed.
func (m NamePromptModel) Done() bool {
	return m.done
}

// RunNamePrompt asks for the player name. ok is false when the user quit.
func RunNamePrompt(initial string, width, height int) (name string, ok bool, err error) {
	p := tea.NewProgram(NewNamePromptModel(initial, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return "", false, err
	}
	m, isPrompt := finalModel.(NamePromptModel)
	if !isPrompt || !m.Done() {
		return "", false, nil
	}
	return m.Name(), true, nil
}
