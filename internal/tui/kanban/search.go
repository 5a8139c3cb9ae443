package kanban

import (
	"sort"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"kban/internal/kanban/board"
	"kban/internal/kanban/models"
)

func (m BoardModel) updateSearch(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		// Keep the results and return to normal mode
		m.searchQuery = m.searchInput.Value()
		m.mode = boardModeNormal
		m.applySearch()
		return m, nil

	case "esc":
		m.mode = boardModeNormal
		m.clearSearch()
		return m, nil

	default:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.searchQuery = m.searchInput.Value()
		m.applySearch()
		return m, cmd
	}
}

func (m *BoardModel) applySearch() {
	// Shorter queries show the whole board
	m.searchActive = utf8.RuneCountInString(strings.TrimSpace(m.searchQuery)) >= board.MinSearchLength
	if !m.searchActive {
		m.filteredIndices = nil
	} else {
		m.recomputeSearch()
	}
	m.clampCursor()
	m.adjustScrollPosition()
}

func (m *BoardModel) clearSearch() {
	m.searchQuery = ""
	m.searchActive = false
	m.filteredIndices = nil
	m.selectedCard = 0
	if m.selectedCol < len(m.columnCursorPos) {
		m.columnCursorPos[m.selectedCol] = 0
	}
	m.adjustScrollPosition()
}

// recomputeSearch rebuilds filteredIndices from the board search results,
// keeping board order inside each column
func (m *BoardModel) recomputeSearch() {
	cols := m.board.Columns()
	idx := models.ColumnIndexes(cols)

	m.filteredIndices = make([][]int, len(cols))
	for _, match := range board.SearchColumns(cols, m.searchQuery) {
		c := idx[match.ColumnID]
		if j := models.FindCard(cols[c].Cards, match.Card.ID); j >= 0 {
			m.filteredIndices[c] = append(m.filteredIndices[c], j)
		}
	}
	for _, indices := range m.filteredIndices {
		sort.Ints(indices)
	}
}

// getVisibleCards returns the cards to display for a column, respecting the
// active search
func (m *BoardModel) getVisibleCards(colIndex int) []models.Card {
	cards := m.board.Columns()[colIndex].Cards
	if !m.searchActive || colIndex >= len(m.filteredIndices) {
		return cards
	}
	indices := m.filteredIndices[colIndex]
	visible := make([]models.Card, len(indices))
	for i, idx := range indices {
		visible[i] = cards[idx]
	}
	return visible
}

// clampCursor keeps the cursor inside the visible cards of its column
func (m *BoardModel) clampCursor() {
	if m.selectedCol >= len(m.board.Columns()) {
		return
	}
	visibleCount := len(m.getVisibleCards(m.selectedCol))
	if m.selectedCard >= visibleCount {
		m.selectedCard = max(0, visibleCount-1)
	}
	m.columnCursorPos[m.selectedCol] = m.selectedCard
}
