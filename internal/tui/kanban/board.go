package kanban

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"kban/internal/kanban/board"
	"kban/internal/kanban/dnd"
	"kban/internal/kanban/models"
	"kban/internal/kanban/transfer"
	"kban/internal/logs"
	"kban/internal/settings"
	"kban/internal/storage"
	"kban/internal/tui/messages"
	"kban/internal/tui/theme"
)

type boardMode int

const (
	boardModeNormal boardMode = iota
	boardModeDrag
	boardModeConfirmDelete
	boardModeConfirmDeleteColumn
	boardModePrompt
	boardModeSearch
	boardModeStats
)

type promptAction int

const (
	promptAddCard promptAction = iota
	promptAddColumn
	promptRenameCard
	promptRenameColumn
)

// dragFocus is the card or column highlighted while a drag is running. The
// reconciler clears it when the drag ends.
type dragFocus struct {
	id string
}

func (f *dragFocus) Blur() { f.id = "" }

type BoardModel struct {
	board      *board.Board
	store      storage.Store
	importPath string
	now        func() models.Timestamp

	dnd   *dnd.Reconciler
	focus *dragFocus
	pacer *transfer.Pacer

	settings settings.Settings
	st       styles
	colWidth int

	selectedCol            int
	selectedCard           int
	columnScrollOffsets    []int // scroll position (card index) for each column
	columnCursorPos        []int // cursor position (card index) for each column
	columnHorizontalOffset int   // first visible column index

	mode boardMode

	prompt       promptModel
	promptAction promptAction
	promptColumn string
	promptCard   string

	// drop target while dragging. dropCard == len(cards) targets the empty
	// area below the last card.
	dropCol  int
	dropCard int

	searchInput     textinput.Model
	searchQuery     string
	searchActive    bool
	filteredIndices [][]int // per-column: real card indices that match

	width   int
	height  int
	err     error
	message string
}

// NewBoardModel creates the board view. importPath is the file read by the
// import key.
func NewBoardModel(b *board.Board, store storage.Store, importPath string) BoardModel {
	focus := &dragFocus{}
	m := BoardModel{
		board:      b,
		store:      store,
		importPath: importPath,
		now:        models.Now,
		dnd:        dnd.New(b, focus),
		focus:      focus,
		pacer:      &transfer.Pacer{},
		settings:   settings.Load(store),
		colWidth:   defaultColumnWidth,
	}
	m.restyle()
	m.reloadBoardState()
	return m
}

// SetSize updates the view dimensions
func (m *BoardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.prompt.width = width
	m.prompt.height = height
	m.adjustScrollPosition()
	m.adjustHorizontalScrollPosition()
}

// IsModal returns true while the view owns every key (prompts, drags,
// confirmations and overlays)
func (m BoardModel) IsModal() bool {
	return m.mode != boardModeNormal
}

// Palette is the active color palette
func (m BoardModel) Palette() theme.Palette {
	return m.st.palette
}

func (m BoardModel) Init() tea.Cmd {
	return nil
}

// Update handles board events as a child view
func (m BoardModel) Update(msg tea.Msg) (BoardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.ImportResultMsg:
		return m.applyImport(msg)

	case messages.ImportResetMsg:
		m.pacer.Reset()
		return m, nil

	case messages.SettingsChangedMsg:
		m.settings = settings.Load(m.store)
		m.restyle()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case boardModeNormal:
			return m.updateNormal(msg)
		case boardModeDrag:
			return m.updateDrag(msg)
		case boardModeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case boardModeConfirmDeleteColumn:
			return m.updateConfirmDeleteColumn(msg)
		case boardModePrompt:
			return m.updatePrompt(msg)
		case boardModeSearch:
			return m.updateSearch(msg)
		case boardModeStats:
			m.mode = boardModeNormal
			return m, nil
		}
	}

	return m, nil
}

func (m BoardModel) updateNormal(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	m.message = ""
	m.err = nil
	cols := m.board.Columns()

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "esc":
		if m.searchActive {
			m.clearSearch()
		}

	case "/":
		ti := textinput.New()
		ti.Placeholder = "search cards..."
		ti.CharLimit = 100
		ti.Width = 40
		ti.SetValue(m.searchQuery)
		ti.Focus()
		m.searchInput = ti
		m.mode = boardModeSearch
		return m, textinput.Blink

	case "h", "left":
		if m.selectedCol > 0 {
			m.selectColumn(m.selectedCol - 1)
		}

	case "l", "right":
		if m.selectedCol < len(cols)-1 {
			m.selectColumn(m.selectedCol + 1)
		}

	case "j", "down":
		if m.selectedCol < len(cols) {
			if m.selectedCard < len(m.getVisibleCards(m.selectedCol))-1 {
				m.selectedCard++
				m.columnCursorPos[m.selectedCol] = m.selectedCard
				m.adjustScrollPosition()
			}
		}

	case "k", "up":
		if m.selectedCard > 0 {
			m.selectedCard--
			m.columnCursorPos[m.selectedCol] = m.selectedCard
			m.adjustScrollPosition()
		}

	case "m", " ":
		return m.startCardDrag()

	case "M":
		return m.startColumnDrag()

	case "a":
		if m.selectedCol < len(cols) {
			return m.openPrompt(promptAddCard, "New card in "+cols[m.selectedCol].Title, "card title", "")
		}

	case "A":
		return m.openPrompt(promptAddColumn, "New column", "column title", "")

	case "r":
		if card, ok := m.currentCard(); ok {
			return m.openPrompt(promptRenameCard, "Rename card", "card title", card.Title)
		}

	case "R":
		if m.selectedCol < len(cols) {
			return m.openPrompt(promptRenameColumn, "Rename column", "column title", cols[m.selectedCol].Title)
		}

	case "d":
		if _, ok := m.currentCard(); ok {
			m.mode = boardModeConfirmDelete
		}

	case "D":
		if m.selectedCol < len(cols) {
			if m.settings.DeleteColumnWarning {
				m.mode = boardModeConfirmDeleteColumn
			} else {
				m.removeColumn()
			}
		}

	case "S":
		if m.selectedCol < len(cols) {
			if m.board.SortCards(cols[m.selectedCol].ID) {
				m.message = "Cards sorted"
			}
			m.afterMutation()
		}

	case "u":
		if m.board.CanUndo() {
			m.board.Undo()
			m.message = "Undone"
			m.afterMutation()
		} else {
			m.message = "Nothing to undo"
		}

	case "ctrl+r":
		if m.board.CanRedo() {
			m.board.Redo()
			m.message = "Redone"
			m.afterMutation()
		} else {
			m.message = "Nothing to redo"
		}

	case "s":
		m.mode = boardModeStats

	case "T":
		m.settings.Theme = settings.NextTheme(m.settings.Theme)
		m.saveSettings("Theme: " + m.settings.Theme)

	case "P":
		m.settings.ThemePreference = nextPreference(m.settings.ThemePreference)
		m.saveSettings("Appearance: " + string(m.settings.ThemePreference))

	case "z":
		m.settings.CardDensity = m.settings.CardDensity.Next()
		m.saveSettings("Density: " + string(m.settings.CardDensity))

	case "<", ">":
		if !m.settings.ColumnResizingEnabled {
			m.message = "Column resizing is off"
			break
		}
		if msg.String() == "<" {
			m.colWidth = max(minColumnWidth, m.colWidth-columnWidthStep)
		} else {
			m.colWidth = min(maxColumnWidth, m.colWidth+columnWidthStep)
		}
		m.restyle()
		m.adjustHorizontalScrollPosition()

	case "I":
		return m.startImport()
	}

	return m, nil
}

func (m BoardModel) openPrompt(action promptAction, title, placeholder, value string) (BoardModel, tea.Cmd) {
	m.prompt = newPromptModel(title, placeholder, value)
	m.prompt.width = m.width
	m.prompt.height = m.height
	m.promptAction = action
	m.promptColumn, m.promptCard = "", ""

	cols := m.board.Columns()
	if m.selectedCol < len(cols) {
		m.promptColumn = cols[m.selectedCol].ID
	}
	if card, ok := m.currentCard(); ok {
		m.promptCard = card.ID
	}

	m.mode = boardModePrompt
	return m, m.prompt.Init()
}

func (m BoardModel) updatePrompt(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	var cmd tea.Cmd
	var done, ok bool

	m.prompt, cmd, done, ok = m.prompt.Update(msg)
	if !done {
		return m, cmd
	}

	m.mode = boardModeNormal
	if !ok {
		return m, nil
	}

	title := m.prompt.Value()
	switch m.promptAction {
	case promptAddCard:
		if id := m.board.AddCard(m.promptColumn, title); id != "" {
			m.message = "Card added"
			m.afterMutation()
			m.selectCard(id)
		}
	case promptAddColumn:
		id := m.board.AddColumn(title)
		m.message = "Column added"
		m.afterMutation()
		if i := models.FindColumn(m.board.Columns(), id); i >= 0 {
			m.selectColumn(i)
		}
	case promptRenameCard:
		if m.board.UpdateCard(m.promptColumn, m.promptCard, title) {
			m.message = "Card renamed"
		}
		m.afterMutation()
	case promptRenameColumn:
		if m.board.UpdateColumn(m.promptColumn, title) {
			m.message = "Column renamed"
		}
		m.afterMutation()
	}

	return m, nil
}

func (m BoardModel) updateConfirmDelete(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	switch msg.String() {
	case "y":
		cols := m.board.Columns()
		if card, ok := m.currentCard(); ok && m.board.RemoveCard(cols[m.selectedCol].ID, card.ID) {
			m.message = "Card deleted"
			m.afterMutation()
		}
		m.mode = boardModeNormal

	case "n", "esc":
		m.mode = boardModeNormal
	}

	return m, nil
}

func (m BoardModel) updateConfirmDeleteColumn(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	switch msg.String() {
	case "y":
		m.removeColumn()
		m.mode = boardModeNormal

	case "n", "esc":
		m.mode = boardModeNormal
	}

	return m, nil
}

func (m *BoardModel) removeColumn() {
	cols := m.board.Columns()
	if m.selectedCol >= len(cols) {
		return
	}
	if m.board.RemoveColumn(cols[m.selectedCol].ID) {
		m.message = fmt.Sprintf("Column %q deleted", cols[m.selectedCol].Title)
		m.afterMutation()
	}
}

func (m *BoardModel) saveSettings(message string) {
	if err := settings.Save(m.store, m.settings); err != nil {
		m.err = fmt.Errorf("save settings: %w", err)
		logs.Logger.WithError(err).Error("failed to save settings")
	} else {
		m.message = message
	}
	m.restyle()
}

func (m *BoardModel) restyle() {
	m.st = newStyles(theme.For(m.settings.Theme, m.settings.ThemePreference), m.settings.CardDensity, m.colWidth)
}

func nextPreference(p settings.Preference) settings.Preference {
	switch p {
	case settings.PreferenceSystem:
		return settings.PreferenceDark
	case settings.PreferenceDark:
		return settings.PreferenceLight
	default:
		return settings.PreferenceSystem
	}
}

// afterMutation refreshes view state from the board and surfaces save
// failures
func (m *BoardModel) afterMutation() {
	if err := m.board.LastError(); err != nil {
		m.err = fmt.Errorf("board not saved: %w", err)
	}
	m.reloadBoardState()
}

func (m *BoardModel) currentCard() (models.Card, bool) {
	cols := m.board.Columns()
	if m.selectedCol >= len(cols) {
		return models.Card{}, false
	}
	visible := m.getVisibleCards(m.selectedCol)
	if m.selectedCard >= len(visible) {
		return models.Card{}, false
	}
	return visible[m.selectedCard], true
}

func (m *BoardModel) selectColumn(i int) {
	m.selectedCol = i
	// Restore saved cursor position
	m.selectedCard = m.columnCursorPos[i]
	visibleCount := len(m.getVisibleCards(i))
	if m.selectedCard >= visibleCount {
		m.selectedCard = max(0, visibleCount-1)
		m.columnCursorPos[i] = m.selectedCard
	}
	m.adjustScrollPosition()
	m.adjustHorizontalScrollPosition()
}

// selectCard moves the cursor onto the card with the given id if it is
// visible
func (m *BoardModel) selectCard(id string) {
	col, card := models.FindCardAnywhere(m.board.Columns(), id)
	if col < 0 {
		return
	}
	if m.searchActive && col < len(m.filteredIndices) {
		card = indexOf(m.filteredIndices[col], card)
		if card < 0 {
			return
		}
	}
	m.selectedCol = col
	m.selectedCard = card
	m.columnCursorPos[col] = card
	m.adjustScrollPosition()
	m.adjustHorizontalScrollPosition()
}

func indexOf(xs []int, v int) int {
	for i, x := range xs {
		if x == v {
			return i
		}
	}
	return -1
}

// reloadBoardState syncs arrays and validates cursors after the board changed
func (m *BoardModel) reloadBoardState() {
	cols := m.board.Columns()

	if len(m.columnScrollOffsets) != len(cols) {
		newOffsets := make([]int, len(cols))
		copy(newOffsets, m.columnScrollOffsets)
		m.columnScrollOffsets = newOffsets
	}

	if len(m.columnCursorPos) != len(cols) {
		newCursorPos := make([]int, len(cols))
		copy(newCursorPos, m.columnCursorPos)
		m.columnCursorPos = newCursorPos
	}

	if m.selectedCol >= len(cols) {
		m.selectedCol = max(0, len(cols)-1)
	}

	if m.searchActive {
		m.recomputeSearch()
	}
	if len(cols) > 0 {
		visibleCount := len(m.getVisibleCards(m.selectedCol))
		if m.selectedCard >= visibleCount {
			m.selectedCard = max(0, visibleCount-1)
		}
		m.columnCursorPos[m.selectedCol] = m.selectedCard
	} else {
		m.selectedCard = 0
	}

	if m.columnHorizontalOffset >= len(cols) {
		m.columnHorizontalOffset = max(0, len(cols)-1)
	}
	m.adjustScrollPosition()
	m.adjustHorizontalScrollPosition()
}
