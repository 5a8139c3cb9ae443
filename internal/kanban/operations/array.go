package operations

import "kban/internal/kanban/models"

// ArrayMove returns a copy of s with the element at from moved to index to.
// Indexes are positions in s; the element is removed first and then
// inserted, so moving the first of three elements to index 2 yields
// [b c a].
func ArrayMove[T any](s []T, from, to int) []T {
	out := make([]T, 0, len(s))
	out = append(out, s[:from]...)
	out = append(out, s[from+1:]...)

	item := s[from]
	out = append(out, item)
	copy(out[to+1:], out[to:len(out)-1])
	out[to] = item
	return out
}

func cloneColumns(cols []models.Column) []models.Column {
	out := make([]models.Column, len(cols))
	copy(out, cols)
	return out
}

func withoutCard(cards []models.Card, index int) []models.Card {
	out := make([]models.Card, 0, len(cards)-1)
	out = append(out, cards[:index]...)
	return append(out, cards[index+1:]...)
}

func insertCard(cards []models.Card, index int, card models.Card) []models.Card {
	out := make([]models.Card, 0, len(cards)+1)
	out = append(out, cards[:index]...)
	out = append(out, card)
	return append(out, cards[index:]...)
}
