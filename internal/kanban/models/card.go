package models

// ColumnHistoryEntry records that a card entered a column at a point in time.
type ColumnHistoryEntry struct {
	ColumnID  string    `json:"columnId"`
	EnteredAt Timestamp `json:"enteredAt"`
}

// Card is a unit of work owned by exactly one column
type Card struct {
	ID            string               `json:"id"`
	Title         string               `json:"title"`
	CreatedAt     Timestamp            `json:"createdAt"`
	UpdatedAt     Timestamp            `json:"updatedAt"`
	ColumnHistory []ColumnHistoryEntry `json:"columnHistory"`
}

// NewCard returns a card created in columnID at now
func NewCard(id, title, columnID string, now Timestamp) Card {
	return Card{
		ID:        id,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
		ColumnHistory: []ColumnHistoryEntry{
			{ColumnID: columnID, EnteredAt: now},
		},
	}
}

// LastEntry returns the most recent history entry, if any
func (c Card) LastEntry() (ColumnHistoryEntry, bool) {
	if len(c.ColumnHistory) == 0 {
		return ColumnHistoryEntry{}, false
	}
	return c.ColumnHistory[len(c.ColumnHistory)-1], true
}

// WithEntry returns a copy of c with an entry appended. The receiver's
// history slice is never written to.
func (c Card) WithEntry(columnID string, now Timestamp) Card {
	history := make([]ColumnHistoryEntry, len(c.ColumnHistory), len(c.ColumnHistory)+1)
	copy(history, c.ColumnHistory)
	c.ColumnHistory = append(history, ColumnHistoryEntry{ColumnID: columnID, EnteredAt: now})
	return c
}

// FindCard returns the index of the card with the given id, or -1
func FindCard(cards []Card, id string) int {
	for i := range cards {
		if cards[i].ID == id {
			return i
		}
	}
	return -1
}
