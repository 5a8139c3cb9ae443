package operations

import "kban/internal/kanban/models"

// MoveCardWithinColumn moves activeCardID to the position of overCardID in
// the same column. The card's history is left alone since it never left
// the column.
func MoveCardWithinColumn(cols []models.Column, columnID, activeCardID, overCardID string, now models.Timestamp) ([]models.Column, bool) {
	i := models.FindColumn(cols, columnID)
	if i < 0 {
		return cols, false
	}
	from := models.FindCard(cols[i].Cards, activeCardID)
	to := models.FindCard(cols[i].Cards, overCardID)
	if from < 0 || to < 0 || from == to {
		return cols, false
	}

	cards := ArrayMove(cols[i].Cards, from, to)
	cards[to].UpdatedAt = now

	out := cloneColumns(cols)
	out[i].Cards = cards
	out[i].UpdatedAt = now
	return out, true
}

// ReorderCard is the orchestrator's entry point for within-column moves
func ReorderCard(cols []models.Column, columnID, activeCardID, overCardID string, now models.Timestamp) ([]models.Column, bool) {
	return MoveCardWithinColumn(cols, columnID, activeCardID, overCardID, now)
}

// MoveCardAcrossColumns transfers a card to another column, placing it at
// the index of overCardID there, or at the end when overCardID is not in
// the target column. A history entry for the target column is appended.
func MoveCardAcrossColumns(cols []models.Column, fromColumnID, toColumnID, activeCardID, overCardID string, now models.Timestamp) ([]models.Column, bool) {
	if fromColumnID == toColumnID {
		return MoveCardWithinColumn(cols, fromColumnID, activeCardID, overCardID, now)
	}

	src := models.FindColumn(cols, fromColumnID)
	dst := models.FindColumn(cols, toColumnID)
	if src < 0 || dst < 0 {
		return cols, false
	}
	j := models.FindCard(cols[src].Cards, activeCardID)
	if j < 0 {
		return cols, false
	}

	at := models.FindCard(cols[dst].Cards, overCardID)
	if at < 0 {
		at = len(cols[dst].Cards)
	}

	return transfer(cols, src, j, dst, at, now), true
}

// DropCardOnColumn handles a card released over a column body rather than
// over another card. Within the same column the card goes to the bottom;
// into a different column it goes to the top, where new work enters.
// A card that is already last in its own column is left alone and reports
// no change, so the drop records no undo step.
func DropCardOnColumn(cols []models.Column, fromColumnID, toColumnID, activeCardID string, now models.Timestamp) ([]models.Column, bool) {
	src := models.FindColumn(cols, fromColumnID)
	dst := models.FindColumn(cols, toColumnID)
	if src < 0 || dst < 0 {
		return cols, false
	}
	j := models.FindCard(cols[src].Cards, activeCardID)
	if j < 0 {
		return cols, false
	}

	if src == dst {
		last := len(cols[src].Cards) - 1
		if j == last {
			return cols, false
		}
		cards := ArrayMove(cols[src].Cards, j, last)
		cards[last].UpdatedAt = now

		out := cloneColumns(cols)
		out[src].Cards = cards
		out[src].UpdatedAt = now
		return out, true
	}

	return transfer(cols, src, j, dst, 0, now), true
}

func transfer(cols []models.Column, src, cardIndex, dst, at int, now models.Timestamp) []models.Column {
	card := cols[src].Cards[cardIndex].WithEntry(cols[dst].ID, now)
	card.UpdatedAt = now

	out := cloneColumns(cols)
	out[src].Cards = withoutCard(cols[src].Cards, cardIndex)
	out[src].UpdatedAt = now
	out[dst].Cards = insertCard(cols[dst].Cards, at, card)
	out[dst].UpdatedAt = now
	return out
}
