package kanban

import (
	"github.com/charmbracelet/lipgloss"

	"kban/internal/settings"
	"kban/internal/tui/theme"
)

const (
	// Layout constants
	defaultColumnWidth      = 40
	minColumnWidth          = 24
	maxColumnWidth          = 64
	columnWidthStep         = 4
	columnPaddingHorizontal = 2
	cardPaddingHorizontal   = 1
	cardBorderWidth         = 1
)

// styles is rebuilt whenever the theme, preference, density or column width
// changes
type styles struct {
	palette theme.Palette
	density settings.Density

	title lipgloss.Style

	column              lipgloss.Style
	selectedColumn      lipgloss.Style
	dropColumn          lipgloss.Style
	columnTitle         lipgloss.Style
	selectedColumnTitle lipgloss.Style

	card         lipgloss.Style
	selectedCard lipgloss.Style
	draggedCard  lipgloss.Style
	dropCard     lipgloss.Style
	cardTitle    lipgloss.Style
	cardDetail   lipgloss.Style

	scrollIndicator lipgloss.Style
	searchIndicator lipgloss.Style
	help            lipgloss.Style
	errorText       lipgloss.Style
	warning         lipgloss.Style
	success         lipgloss.Style
	modalBox        lipgloss.Style
	modalTitle      lipgloss.Style
	statLabel       lipgloss.Style
	statValue       lipgloss.Style
}

func newStyles(p theme.Palette, density settings.Density, width int) styles {
	cardMargin := 1
	cardPaddingVertical := 0
	switch density {
	case settings.DensitySmall:
		cardMargin = 0
	case settings.DensityLarge:
		cardPaddingVertical = 1
	}

	column := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(1, columnPaddingHorizontal).
		Width(width)

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), false, false, false, true).
		BorderForeground(p.Border).
		Padding(cardPaddingVertical, cardPaddingHorizontal).
		MarginBottom(cardMargin)

	return styles{
		palette: p,
		density: density,

		title: p.Title().Padding(0, 1),

		column:         column,
		selectedColumn: column.BorderForeground(p.BorderFocused),
		dropColumn:     column.BorderForeground(p.Warning).BorderStyle(lipgloss.DoubleBorder()),
		columnTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			Align(lipgloss.Center),
		selectedColumnTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Warning).
			Background(p.Surface).
			Underline(true).
			Align(lipgloss.Center),

		card: card,
		selectedCard: card.
			BorderForeground(p.BorderFocused).
			Background(p.Surface).
			Bold(true),
		draggedCard: card.
			BorderForeground(p.Warning).
			Background(p.Dragging).
			Bold(true),
		dropCard: card.
			BorderForeground(p.Warning).
			Border(lipgloss.ThickBorder(), true, false, false, true),
		cardTitle: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true),
		cardDetail: lipgloss.NewStyle().
			Foreground(p.TextMuted).
			Italic(true),

		scrollIndicator: lipgloss.NewStyle().
			Foreground(p.Primary).
			Italic(true).
			Align(lipgloss.Center),
		searchIndicator: lipgloss.NewStyle().
			Foreground(p.Warning).
			Bold(true),
		help:       p.Muted().Padding(1, 2),
		errorText:  p.Error(),
		warning:    p.Warn(),
		success:    p.Ok(),
		modalBox:   p.ModalBox().Width(60),
		modalTitle: p.ModalTitle().Align(lipgloss.Center),
		statLabel:  lipgloss.NewStyle().Foreground(p.Secondary).Width(24),
		statValue:  lipgloss.NewStyle().Bold(true).Foreground(p.Text),
	}
}
