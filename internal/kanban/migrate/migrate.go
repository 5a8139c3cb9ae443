// Package migrate upgrades legacy cards and columns, which may lack
// timestamps or column history, to the current schema. Fields that are
// already present are never changed, so running it twice is harmless.
package migrate

import "kban/internal/kanban/models"

// Card fills in missing timestamps with now and, when the card has no
// history at all, records that it entered columnID at now.
func Card(raw models.RawCard, columnID string, now models.Timestamp) models.Card {
	card := models.Card{
		ID:        raw.ID,
		Title:     raw.Title,
		CreatedAt: orNow(raw.CreatedAt, now),
		UpdatedAt: orNow(raw.UpdatedAt, now),
	}

	if raw.HasHistory {
		card.ColumnHistory = raw.ColumnHistory
		if card.ColumnHistory == nil {
			card.ColumnHistory = []models.ColumnHistoryEntry{}
		}
	} else {
		card.ColumnHistory = []models.ColumnHistoryEntry{{ColumnID: columnID, EnteredAt: now}}
	}

	return card
}

// Column backfills the column and every card in it, using the column's own
// id as the history context for its cards.
func Column(raw models.RawColumn, now models.Timestamp) models.Column {
	col := models.Column{
		ID:        raw.ID,
		Title:     raw.Title,
		CreatedAt: orNow(raw.CreatedAt, now),
		UpdatedAt: orNow(raw.UpdatedAt, now),
		Cards:     make([]models.Card, 0, len(raw.Cards)),
	}
	for _, c := range raw.Cards {
		col.Cards = append(col.Cards, Card(c, raw.ID, now))
	}
	return col
}

// Columns migrates every column in order
func Columns(raws []models.RawColumn, now models.Timestamp) []models.Column {
	cols := make([]models.Column, 0, len(raws))
	for _, raw := range raws {
		cols = append(cols, Column(raw, now))
	}
	return cols
}

func orNow(ts *models.Timestamp, now models.Timestamp) models.Timestamp {
	if ts != nil {
		return *ts
	}
	return now
}
