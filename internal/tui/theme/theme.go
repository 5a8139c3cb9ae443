package theme

import (
	"github.com/charmbracelet/lipgloss"

	"kban/internal/settings"
)

// Palette holds the colors a theme assigns to each role
type Palette struct {
	Text          lipgloss.TerminalColor
	TextMuted     lipgloss.TerminalColor
	Primary       lipgloss.TerminalColor
	Secondary     lipgloss.TerminalColor
	Accent        lipgloss.TerminalColor
	Success       lipgloss.TerminalColor
	Warning       lipgloss.TerminalColor
	Danger        lipgloss.TerminalColor
	Surface       lipgloss.TerminalColor
	Border        lipgloss.TerminalColor
	BorderFocused lipgloss.TerminalColor
	Dragging      lipgloss.TerminalColor
}

// tint is the part of a palette that changes between themes
type tint struct {
	primary, secondary, accent, focused, dragging string
}

var tints = map[string]tint{
	settings.DefaultTheme: {primary: "4", secondary: "6", accent: "5", focused: "4", dragging: "54"},
	"ocean":               {primary: "33", secondary: "37", accent: "45", focused: "39", dragging: "24"},
	"forest":              {primary: "28", secondary: "71", accent: "142", focused: "34", dragging: "22"},
	"sunset":              {primary: "208", secondary: "203", accent: "213", focused: "209", dragging: "89"},
	"mono":                {primary: "15", secondary: "250", accent: "245", focused: "255", dragging: "239"},
}

// ANSI 0-15 plus a 256-color surface, per background
var (
	dark = Palette{
		Text:      lipgloss.Color("7"),
		TextMuted: lipgloss.Color("8"),
		Success:   lipgloss.Color("2"),
		Warning:   lipgloss.Color("3"),
		Danger:    lipgloss.Color("1"),
		Surface:   lipgloss.Color("236"),
		Border:    lipgloss.Color("8"),
	}
	light = Palette{
		Text:      lipgloss.Color("0"),
		TextMuted: lipgloss.Color("244"),
		Success:   lipgloss.Color("28"),
		Warning:   lipgloss.Color("130"),
		Danger:    lipgloss.Color("160"),
		Surface:   lipgloss.Color("254"),
		Border:    lipgloss.Color("250"),
	}
)

// For returns the palette for a theme id. Light and dark preferences pick
// the matching base colors; system adapts to the terminal background.
// Unknown theme ids get the default theme.
func For(id string, pref settings.Preference) Palette {
	t, ok := tints[id]
	if !ok {
		t = tints[settings.DefaultTheme]
	}

	switch pref {
	case settings.PreferenceLight:
		return apply(light, t)
	case settings.PreferenceDark:
		return apply(dark, t)
	}

	l, d := apply(light, t), apply(dark, t)
	return Palette{
		Text:          adaptive(l.Text, d.Text),
		TextMuted:     adaptive(l.TextMuted, d.TextMuted),
		Primary:       adaptive(l.Primary, d.Primary),
		Secondary:     adaptive(l.Secondary, d.Secondary),
		Accent:        adaptive(l.Accent, d.Accent),
		Success:       adaptive(l.Success, d.Success),
		Warning:       adaptive(l.Warning, d.Warning),
		Danger:        adaptive(l.Danger, d.Danger),
		Surface:       adaptive(l.Surface, d.Surface),
		Border:        adaptive(l.Border, d.Border),
		BorderFocused: adaptive(l.BorderFocused, d.BorderFocused),
		Dragging:      adaptive(l.Dragging, d.Dragging),
	}
}

func apply(base Palette, t tint) Palette {
	p := base
	p.Primary = lipgloss.Color(t.primary)
	p.Secondary = lipgloss.Color(t.secondary)
	p.Accent = lipgloss.Color(t.accent)
	p.BorderFocused = lipgloss.Color(t.focused)
	p.Dragging = lipgloss.Color(t.dragging)
	return p
}

func adaptive(l, d lipgloss.TerminalColor) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: string(l.(lipgloss.Color)), Dark: string(d.(lipgloss.Color))}
}

// ---------------------------------------------------------------------------
// Reusable component helpers
// ---------------------------------------------------------------------------

func (p Palette) Title() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
}

func (p Palette) Muted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.TextMuted)
}

func (p Palette) Error() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(p.Danger)
}

func (p Palette) Warn() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(p.Warning)
}

func (p Palette) Ok() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(p.Success)
}

func (p Palette) ModalBox() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)
}

func (p Palette) ModalTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(p.Warning)
}

func (p Palette) StatusBar() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(p.TextMuted).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(p.Border)
}
