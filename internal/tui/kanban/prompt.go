package kanban

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// promptModel asks for a single line of text, used for new and renamed
// cards and columns
type promptModel struct {
	title     string
	textInput textinput.Model
	width     int
	height    int
}

func newPromptModel(title, placeholder, value string) promptModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 50
	ti.SetValue(value)
	ti.CursorEnd()

	return promptModel{
		title:     title,
		textInput: ti,
	}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update returns done once the prompt is submitted or cancelled; ok is
// true only for a submit.
func (m promptModel) Update(msg tea.KeyMsg) (p promptModel, cmd tea.Cmd, done, ok bool) {
	switch msg.String() {
	case "esc":
		return m, nil, true, false
	case "enter":
		return m, nil, true, true
	}
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd, false, false
}

func (m promptModel) View(st styles) string {
	var s strings.Builder

	s.WriteString(st.modalTitle.Render(m.title))
	s.WriteString("\n\n")
	s.WriteString(m.textInput.View())
	s.WriteString("\n\n")
	s.WriteString(st.help.Render("enter: save • esc: cancel"))

	box := st.modalBox.Render(s.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// Value is the trimmed input
func (m promptModel) Value() string {
	return strings.TrimSpace(m.textInput.Value())
}
