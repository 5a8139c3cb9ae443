package models

// Column is a named, ordered bucket of cards
type Column struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Cards     []Card    `json:"cards"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

// BoardState is the root of the board. A new value is built for every
// change; existing values are never modified.
type BoardState struct {
	Columns []Column `json:"columns"`
}

// NewColumn returns an empty column created at now
func NewColumn(id, title string, now Timestamp) Column {
	return Column{
		ID:        id,
		Title:     title,
		Cards:     []Card{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// EmptyBoard returns a board with no columns
func EmptyBoard() *BoardState {
	return &BoardState{Columns: []Column{}}
}

// FindColumn returns the index of the column with the given id, or -1
func FindColumn(columns []Column, id string) int {
	for i := range columns {
		if columns[i].ID == id {
			return i
		}
	}
	return -1
}

// FindCardAnywhere returns the column and card indexes of a card, or -1, -1
func FindCardAnywhere(columns []Column, cardID string) (int, int) {
	for i := range columns {
		if j := FindCard(columns[i].Cards, cardID); j >= 0 {
			return i, j
		}
	}
	return -1, -1
}

// ColumnIndexes maps column ids to their position in the board
func ColumnIndexes(columns []Column) map[string]int {
	idx := make(map[string]int, len(columns))
	for i, col := range columns {
		idx[col.ID] = i
	}
	return idx
}
