package operations

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"kban/internal/kanban/models"
)

// AddCard puts a new card at the top of a column
func AddCard(cols []models.Column, columnID, cardID, title string, now models.Timestamp) ([]models.Column, bool) {
	i := models.FindColumn(cols, columnID)
	if i < 0 {
		return cols, false
	}

	out := cloneColumns(cols)
	out[i].Cards = insertCard(cols[i].Cards, 0, models.NewCard(cardID, title, columnID, now))
	out[i].UpdatedAt = now
	return out, true
}

// RemoveCard deletes a card from a column
func RemoveCard(cols []models.Column, columnID, cardID string, now models.Timestamp) ([]models.Column, bool) {
	i := models.FindColumn(cols, columnID)
	if i < 0 {
		return cols, false
	}
	j := models.FindCard(cols[i].Cards, cardID)
	if j < 0 {
		return cols, false
	}

	out := cloneColumns(cols)
	out[i].Cards = withoutCard(cols[i].Cards, j)
	out[i].UpdatedAt = now
	return out, true
}

// UpdateCard retitles a card
func UpdateCard(cols []models.Column, columnID, cardID, title string, now models.Timestamp) ([]models.Column, bool) {
	i := models.FindColumn(cols, columnID)
	if i < 0 {
		return cols, false
	}
	j := models.FindCard(cols[i].Cards, cardID)
	if j < 0 {
		return cols, false
	}

	cards := make([]models.Card, len(cols[i].Cards))
	copy(cards, cols[i].Cards)
	cards[j].Title = title
	cards[j].UpdatedAt = now

	out := cloneColumns(cols)
	out[i].Cards = cards
	out[i].UpdatedAt = now
	return out, true
}

// SortCards orders a column's cards by title, ignoring case. Only the
// column's UpdatedAt moves; the cards keep their own timestamps.
func SortCards(cols []models.Column, columnID string, now models.Timestamp) ([]models.Column, bool) {
	i := models.FindColumn(cols, columnID)
	if i < 0 {
		return cols, false
	}

	cards := make([]models.Card, len(cols[i].Cards))
	copy(cards, cols[i].Cards)

	c := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(cards, func(a, b int) bool {
		return c.CompareString(cards[a].Title, cards[b].Title) < 0
	})

	out := cloneColumns(cols)
	out[i].Cards = cards
	out[i].UpdatedAt = now
	return out, true
}
