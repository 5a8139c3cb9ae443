package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kban/internal/tui/theme"
)

// HelpBind represents a single keybind entry
type HelpBind struct {
	Key  string
	Desc string
}

// HelpSection represents a group of related keybinds
type HelpSection struct {
	Title string
	Binds []HelpBind
}

// RenderHelpPopup renders a centered help popup with the given sections
func RenderHelpPopup(p theme.Palette, sections []HelpSection, width, height int) string {
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(p.Secondary)
	descStyle := lipgloss.NewStyle().Foreground(p.Text)

	line := func(key, desc string) string {
		return "  " + keyStyle.Width(14).Render(key) + descStyle.Render(desc)
	}

	var content strings.Builder
	for i, section := range sections {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(sectionStyle.Render(section.Title) + "\n")
		for _, bind := range section.Binds {
			content.WriteString(line(bind.Key, bind.Desc) + "\n")
		}
	}

	content.WriteString("\n" + p.Muted().Render("Press any key to close"))

	box := p.ModalBox().BorderForeground(p.Primary).Render(content.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
