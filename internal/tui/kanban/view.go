package kanban

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kban/internal/analytics"
	"kban/internal/kanban/dnd"
	"kban/internal/kanban/models"
	"kban/internal/kanban/transfer"
	"kban/internal/settings"
	"kban/internal/tui/shared"
)

const (
	boardHeaderLines = 3
	statusLines      = 3
	marginLines      = 2
	columnOverhead   = 8
	minColumnHeight  = 10
)

func (m BoardModel) View() string {
	switch m.mode {
	case boardModePrompt:
		return m.prompt.View(m.st)
	case boardModeStats:
		return m.renderStats()
	}

	var s strings.Builder
	cols := m.board.Columns()

	s.WriteString(m.st.title.Render("kban"))
	s.WriteString("\n")

	// Search bar
	if m.mode == boardModeSearch {
		s.WriteString("  / " + m.searchInput.View())
	} else if m.searchActive {
		s.WriteString("  " + m.st.searchIndicator.Render("Search: "+m.searchQuery))
	}
	s.WriteString("\n")

	columnHeight := m.columnHeight()

	if len(cols) == 0 {
		empty := m.st.palette.Muted().Render("No columns yet. Press A to add one.")
		s.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, shared.CenterContent(empty, columnHeight)))
	} else {
		startCol, endCol := m.calculateVisibleColumns()
		views := []string{}

		if startCol > 0 {
			views = append(views, m.renderScrollIndicator("◀", columnHeight))
		} else {
			views = append(views, m.renderScrollIndicator(" ", columnHeight))
		}

		for i := startCol; i < endCol; i++ {
			views = append(views, m.renderColumn(i, cols[i], m.getVisibleCards(i), columnHeight))
		}

		if endCol < len(cols) {
			views = append(views, m.renderScrollIndicator("▶", columnHeight))
		} else {
			views = append(views, m.renderScrollIndicator(" ", columnHeight))
		}

		columns := lipgloss.JoinHorizontal(lipgloss.Top, views...)
		s.WriteString(lipgloss.Place(m.width, 0, lipgloss.Center, lipgloss.Top, columns))
	}
	s.WriteString("\n")

	// Status message or error
	if status := m.renderStatus(); status != "" {
		s.WriteString(status)
		s.WriteString("\n")
	}

	// Mode-specific help
	switch m.mode {
	case boardModeDrag:
		s.WriteString(m.st.help.Render("hjkl: move drop target • enter: drop • esc: cancel"))
	case boardModeConfirmDelete:
		s.WriteString(m.st.warning.Render("Delete this card? (y/n)"))
	case boardModeConfirmDeleteColumn:
		title := ""
		if m.selectedCol < len(cols) {
			title = cols[m.selectedCol].Title
		}
		s.WriteString(m.st.warning.Render(fmt.Sprintf("Delete column %q and all of its cards? (y/n)", title)))
	case boardModeSearch:
		s.WriteString(m.st.help.Render("type to search • enter: keep results • esc: clear"))
	default:
		helpText := "hjkl: navigate • a/A: add card/column • r/R: rename • d/D: delete • m/M: move • S: sort • u/ctrl+r: undo/redo • /: search • s: stats • ?: help • q: quit"
		if m.searchActive {
			helpText = "hjkl: navigate • r: rename • d: delete • /: edit search • esc: clear search • q: quit"
		}
		s.WriteString(m.st.help.Render(helpText))
	}

	return s.String()
}

func (m BoardModel) renderStatus() string {
	switch m.pacer.Phase() {
	case transfer.PhaseImporting:
		return m.st.warning.Render("Importing " + m.importPath + "...")
	case transfer.PhaseDone:
		return m.st.success.Render("Import complete")
	case transfer.PhaseFailed:
		return m.st.errorText.Render(fmt.Sprintf("Import failed: %v", m.pacer.Err()))
	}

	if m.err != nil {
		return m.st.errorText.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.message != "" {
		return m.st.success.Render(m.message)
	}
	return ""
}

func (m BoardModel) columnHeight() int {
	return max(minColumnHeight, m.height-boardHeaderLines-statusLines-marginLines)
}

func (m BoardModel) renderColumn(index int, col models.Column, cards []models.Card, fixedHeight int) string {
	var s strings.Builder

	kind, _ := m.dnd.Active()
	dragging := m.mode == boardModeDrag

	titleStyle := m.st.columnTitle
	if index == m.selectedCol && !dragging {
		titleStyle = m.st.selectedColumnTitle
	}
	title := fmt.Sprintf("%s (%d)", col.Title, len(col.Cards))
	if m.focus.id == col.ID {
		title = "⇄ " + title
	}
	s.WriteString(titleStyle.Width(m.colWidth - 2*columnPaddingHorizontal).Render(truncate(title, m.colWidth-2*columnPaddingHorizontal)))
	s.WriteString("\n\n")

	style := m.st.column
	switch {
	case dragging && index == m.dropCol:
		style = m.st.dropColumn
	case !dragging && index == m.selectedCol:
		style = m.st.selectedColumn
	}

	if len(cards) == 0 {
		s.WriteString(m.st.cardDetail.Render("(empty)"))
		s.WriteString("\n")
		if dragging && kind == dnd.KindCard && m.isDropTarget(index, 0) {
			s.WriteString(m.st.dropCard.Render("drop here"))
		}
		return style.Height(fixedHeight).Render(s.String())
	}

	scrollOffset := 0
	if index < len(m.columnScrollOffsets) {
		scrollOffset = min(m.columnScrollOffsets[index], len(cards)-1)
	}

	// Top scroll indicator (always reserve space)
	if scrollOffset > 0 {
		s.WriteString(m.st.scrollIndicator.Render(fmt.Sprintf("▲ +%d cards above", scrollOffset)))
	}
	s.WriteString("\n\n")

	availableCardSpace := fixedHeight - columnOverhead

	var cardBuilder strings.Builder
	cardsRendered := 0
	currentCardHeight := 0

	for i := scrollOffset; i < len(cards); i++ {
		cardView := m.renderCard(index, i, cards[i])
		cardHeight := lipgloss.Height(cardView)

		if cardsRendered > 0 && currentCardHeight+cardHeight > availableCardSpace {
			break
		}

		cardBuilder.WriteString(cardView)
		cardBuilder.WriteString("\n")
		cardsRendered++
		currentCardHeight += cardHeight
	}
	s.WriteString(cardBuilder.String())

	if dragging && kind == dnd.KindCard && m.isDropTarget(index, len(cards)) {
		s.WriteString(m.st.dropCard.Render("drop on column"))
		s.WriteString("\n")
	}

	if cardsBelow := len(cards) - scrollOffset - cardsRendered; cardsBelow > 0 {
		s.WriteString(m.st.scrollIndicator.Render(fmt.Sprintf("▼ +%d cards below", cardsBelow)))
	}

	return style.Height(fixedHeight).Render(s.String())
}

func (m BoardModel) renderCard(colIndex, cardIndex int, card models.Card) string {
	maxWidth := m.colWidth - (2 * columnPaddingHorizontal) - cardBorderWidth - (2 * cardPaddingHorizontal)

	var lines []string
	title := strings.Join(strings.Fields(card.Title), " ")
	if title == "" {
		title = "(untitled)"
	}

	if m.st.density == settings.DensitySmall {
		lines = append(lines, m.st.cardTitle.Render(truncate(title, maxWidth)))
	} else {
		lines = append(lines, m.st.cardTitle.Width(maxWidth).Render(title))
	}

	if m.st.density == settings.DensityLarge {
		if last, ok := card.LastEntry(); ok {
			since := analytics.Format(m.now().Sub(last.EnteredAt))
			detail := fmt.Sprintf("%s in column • %d moves", since, len(card.ColumnHistory)-1)
			lines = append(lines, m.st.cardDetail.Render(truncate(detail, maxWidth)))
		}
	}

	content := strings.Join(lines, "\n")

	style := m.st.card
	switch {
	case m.focus.id == card.ID:
		style = m.st.draggedCard
	case m.isDropTarget(colIndex, cardIndex):
		style = m.st.dropCard
	case m.mode != boardModeDrag && colIndex == m.selectedCol && cardIndex == m.selectedCard:
		style = m.st.selectedCard
	}

	return style.Render(content)
}

// truncate shortens s to at most width runes, marking the cut with "..."
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:max(width, 0)])
	}
	return string(r[:width-3]) + "..."
}

// adjustScrollPosition ensures the selected card is visible by adjusting scroll offset
func (m *BoardModel) adjustScrollPosition() {
	if m.selectedCol >= len(m.board.Columns()) {
		return
	}

	cards := m.getVisibleCards(m.selectedCol)
	if len(cards) == 0 {
		m.columnScrollOffsets[m.selectedCol] = 0
		return
	}

	availableCardHeight := m.columnHeight() - columnOverhead
	scrollOffset := m.columnScrollOffsets[m.selectedCol]

	if m.selectedCard < scrollOffset {
		m.columnScrollOffsets[m.selectedCol] = m.selectedCard
	} else {
		visibleCards := 0
		accumulatedHeight := 0

		for i := scrollOffset; i < len(cards); i++ {
			cardHeight := lipgloss.Height(m.renderCard(m.selectedCol, i, cards[i]))
			if visibleCards > 0 && accumulatedHeight+cardHeight > availableCardHeight {
				break
			}
			accumulatedHeight += cardHeight
			visibleCards++
		}

		if visibleCards < 1 {
			visibleCards = 1
		}

		if m.selectedCard >= scrollOffset+visibleCards {
			m.columnScrollOffsets[m.selectedCol] = m.selectedCard - visibleCards + 1
		}
	}

	m.columnScrollOffsets[m.selectedCol] = max(0, min(m.columnScrollOffsets[m.selectedCol], len(cards)-1))
}

// calculateVisibleColumns determines which columns fit in terminal width
func (m *BoardModel) calculateVisibleColumns() (startCol, endCol int) {
	count := len(m.board.Columns())
	columnTotalWidth := m.colWidth + 6
	indicatorWidth := 5

	startCol = m.columnHorizontalOffset
	visibleCount := max(1, (m.width-2*indicatorWidth)/columnTotalWidth)
	endCol = min(startCol+visibleCount, count)

	if endCol <= startCol && count > 0 {
		endCol = startCol + 1
	}

	return startCol, endCol
}

// renderScrollIndicator renders ◀ and ▶ indicators for horizontal scrolling
func (m *BoardModel) renderScrollIndicator(symbol string, height int) string {
	indicator := lipgloss.NewStyle().
		Foreground(m.st.palette.Warning).
		Bold(true).
		Render(symbol)
	return lipgloss.NewStyle().
		Width(3).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(indicator)
}

// adjustHorizontalScrollPosition ensures the selected column (or the drop
// column while dragging) is visible
func (m *BoardModel) adjustHorizontalScrollPosition() {
	if len(m.board.Columns()) == 0 {
		return
	}

	target := m.selectedCol
	if m.mode == boardModeDrag {
		target = m.dropCol
	}

	startCol, endCol := m.calculateVisibleColumns()

	if target < startCol {
		m.columnHorizontalOffset = target
		return
	}

	if target >= endCol {
		m.columnHorizontalOffset = max(0, target-(endCol-startCol)+1)
	}
}
