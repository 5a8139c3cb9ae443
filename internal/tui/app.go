package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"kban/internal/config"
	"kban/internal/kanban/board"
	"kban/internal/logs"
	"kban/internal/storage"
	kanbanview "kban/internal/tui/kanban"
	"kban/internal/tui/shared"
)

// AppModel is the root model wrapping the board view with the help overlay
// and status bar
type AppModel struct {
	board     *board.Board
	boardView kanbanview.BoardModel
	showHelp  bool
	width     int
	height    int
	ready     bool
}

// NewAppModel creates the root application model
func NewAppModel(cfg *config.Config, store storage.Store, b *board.Board) AppModel {
	return AppModel{
		board:     b,
		boardView: kanbanview.NewBoardModel(b, store, cfg.ImportPath),
	}
}

// Run starts the interactive board and blocks until it exits
func Run(cfg *config.Config, store storage.Store, b *board.Board) error {
	p := tea.NewProgram(NewAppModel(cfg, store, b), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logs.Logger.WithError(err).Error("TUI exited with error")
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.boardView.SetSize(msg.Width, msg.Height-3) // Reserve space for status bar
		return m, nil

	case tea.KeyMsg:
		// Global keys: ctrl+c always quits
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Dismiss help overlay on any key
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		if !m.boardView.IsModal() && msg.String() == "?" {
			m.showHelp = true
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.boardView, cmd = m.boardView.Update(msg)
	return m, cmd
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	palette := m.boardView.Palette()
	if m.showHelp {
		return shared.RenderHelpPopup(palette, helpSections, m.width, m.height)
	}

	undo, redo := "-", "-"
	if m.board.CanUndo() {
		undo = "u"
	}
	if m.board.CanRedo() {
		redo = "ctrl+r"
	}
	statusText := fmt.Sprintf("undo: %s | redo: %s | ?: help | q: quit", undo, redo)

	statusBar := palette.StatusBar().Width(m.width).Render(
		palette.Muted().Render(statusText),
	)

	return lipgloss.JoinVertical(lipgloss.Left, m.boardView.View(), statusBar)
}

var helpSections = []shared.HelpSection{
	{
		Title: "Navigation",
		Binds: []shared.HelpBind{
			{Key: "h / l", Desc: "Previous / next column"},
			{Key: "j / k", Desc: "Next / previous card"},
			{Key: "/", Desc: "Search cards"},
			{Key: "esc", Desc: "Clear search"},
		},
	},
	{
		Title: "Editing",
		Binds: []shared.HelpBind{
			{Key: "a / A", Desc: "Add card / column"},
			{Key: "r / R", Desc: "Rename card / column"},
			{Key: "d / D", Desc: "Delete card / column"},
			{Key: "S", Desc: "Sort column by title"},
			{Key: "u", Desc: "Undo"},
			{Key: "ctrl+r", Desc: "Redo"},
		},
	},
	{
		Title: "Moving",
		Binds: []shared.HelpBind{
			{Key: "m / space", Desc: "Pick up card"},
			{Key: "M", Desc: "Pick up column"},
			{Key: "hjkl", Desc: "Move drop target"},
			{Key: "enter", Desc: "Drop"},
			{Key: "esc", Desc: "Cancel move"},
		},
	},
	{
		Title: "Board",
		Binds: []shared.HelpBind{
			{Key: "s", Desc: "Statistics"},
			{Key: "I", Desc: "Import from the configured file"},
			{Key: "T", Desc: "Next theme"},
			{Key: "P", Desc: "Light / dark / system"},
			{Key: "z", Desc: "Card density"},
			{Key: "< / >", Desc: "Column width (when enabled)"},
			{Key: "q", Desc: "Quit"},
		},
	},
}
