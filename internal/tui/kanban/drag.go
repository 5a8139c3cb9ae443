package kanban

import (
	tea "github.com/charmbracelet/bubbletea"

	"kban/internal/kanban/dnd"
	"kban/internal/kanban/models"
)

func (m BoardModel) startCardDrag() (BoardModel, tea.Cmd) {
	if m.searchActive {
		m.message = "Clear the search before moving cards"
		return m, nil
	}
	card, ok := m.currentCard()
	if !ok {
		return m, nil
	}
	col := m.board.Columns()[m.selectedCol]

	m.dnd.Start(dnd.StartEvent{Active: dnd.Item{ID: card.ID, Kind: dnd.KindCard, ColumnID: col.ID}})
	m.focus.id = card.ID
	m.dropCol = m.selectedCol
	m.dropCard = m.selectedCard
	m.mode = boardModeDrag
	return m, nil
}

func (m BoardModel) startColumnDrag() (BoardModel, tea.Cmd) {
	cols := m.board.Columns()
	if m.selectedCol >= len(cols) {
		return m, nil
	}

	m.dnd.Start(dnd.StartEvent{Active: dnd.Item{ID: cols[m.selectedCol].ID, Kind: dnd.KindColumn}})
	m.focus.id = cols[m.selectedCol].ID
	m.dropCol = m.selectedCol
	m.dropCard = 0
	m.mode = boardModeDrag
	return m, nil
}

// updateDrag moves the drop target. enter drops, esc cancels.
func (m BoardModel) updateDrag(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	cols := m.board.Columns()
	kind, activeID := m.dnd.Active()

	switch msg.String() {
	case "esc", "q":
		m.dnd.Cancel()
		m.mode = boardModeNormal
		return m, nil

	case "h", "left":
		if m.dropCol > 0 {
			m.dropCol--
			m.dropCard = len(cols[m.dropCol].Cards)
			m.adjustHorizontalScrollPosition()
		}

	case "l", "right":
		if m.dropCol < len(cols)-1 {
			m.dropCol++
			m.dropCard = len(cols[m.dropCol].Cards)
			m.adjustHorizontalScrollPosition()
		}

	case "j", "down":
		if kind == dnd.KindCard && m.dropCard < len(cols[m.dropCol].Cards) {
			m.dropCard++
		}

	case "k", "up":
		if kind == dnd.KindCard && m.dropCard > 0 {
			m.dropCard--
		}

	case "enter", "m", " ":
		active := dnd.Item{ID: activeID, Kind: kind}
		if kind == dnd.KindCard {
			if i, _ := models.FindCardAnywhere(cols, activeID); i >= 0 {
				active.ColumnID = cols[i].ID
			}
		}
		over := m.dropTarget(kind)

		_, changed := m.dnd.End(dnd.EndEvent{Active: active, Over: over})
		m.mode = boardModeNormal
		m.afterMutation()

		if kind == dnd.KindCard {
			m.selectCard(activeID)
		} else if i := models.FindColumn(m.board.Columns(), activeID); i >= 0 {
			m.selectColumn(i)
		}
		if changed {
			m.message = "Moved"
		}
	}

	return m, nil
}

// dropTarget builds the item under the drop cursor
func (m BoardModel) dropTarget(kind dnd.Kind) *dnd.Item {
	cols := m.board.Columns()
	if m.dropCol >= len(cols) {
		return nil
	}
	col := cols[m.dropCol]

	if kind == dnd.KindColumn {
		return &dnd.Item{ID: col.ID, Kind: dnd.KindColumn}
	}
	if m.dropCard < len(col.Cards) {
		return &dnd.Item{ID: col.Cards[m.dropCard].ID, Kind: dnd.KindCard, ColumnID: col.ID}
	}
	return &dnd.Item{ID: col.ID, Kind: dnd.KindColumnDrop, ColumnID: col.ID}
}

// isDropTarget reports whether the card slot is under the drop cursor
func (m BoardModel) isDropTarget(colIndex, cardIndex int) bool {
	return m.mode == boardModeDrag && colIndex == m.dropCol && cardIndex == m.dropCard
}
