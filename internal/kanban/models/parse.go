package models

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// ValidationError describes why an untrusted value is not a card or column
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RawCard is a card that passed the loose shape check but may still lack
// fields of the current schema. Nil pointers and HasHistory=false mark
// fields that migration has to fill in.
type RawCard struct {
	ID            string
	Title         string
	CreatedAt     *Timestamp
	UpdatedAt     *Timestamp
	ColumnHistory []ColumnHistoryEntry
	HasHistory    bool
}

// RawColumn is the loose form of a column
type RawColumn struct {
	ID        string
	Title     string
	CreatedAt *Timestamp
	UpdatedAt *Timestamp
	Cards     []RawCard
}

// ParseCard accepts any object with a string id and a string title.
// Other fields are captured only when they have the expected JSON type.
func ParseCard(v gjson.Result) (RawCard, error) {
	if !v.IsObject() {
		return RawCard{}, &ValidationError{Field: "card", Reason: "not an object"}
	}
	id := v.Get("id")
	if id.Type != gjson.String {
		return RawCard{}, &ValidationError{Field: "card.id", Reason: "missing or not a string"}
	}
	title := v.Get("title")
	if title.Type != gjson.String {
		return RawCard{}, &ValidationError{Field: "card.title", Reason: "missing or not a string"}
	}

	raw := RawCard{
		ID:        id.Str,
		Title:     title.Str,
		CreatedAt: numberField(v, "createdAt"),
		UpdatedAt: numberField(v, "updatedAt"),
	}

	if history := v.Get("columnHistory"); history.IsArray() {
		raw.HasHistory = true
		raw.ColumnHistory = []ColumnHistoryEntry{}
		for _, entry := range history.Array() {
			raw.ColumnHistory = append(raw.ColumnHistory, ColumnHistoryEntry{
				ColumnID:  entry.Get("columnId").String(),
				EnteredAt: Timestamp(entry.Get("enteredAt").Int()),
			})
		}
	}

	return raw, nil
}

// ParseColumn accepts an object with a string id, a string title and a
// cards array whose every element is a card.
func ParseColumn(v gjson.Result) (RawColumn, error) {
	if !v.IsObject() {
		return RawColumn{}, &ValidationError{Field: "column", Reason: "not an object"}
	}
	id := v.Get("id")
	if id.Type != gjson.String {
		return RawColumn{}, &ValidationError{Field: "column.id", Reason: "missing or not a string"}
	}
	title := v.Get("title")
	if title.Type != gjson.String {
		return RawColumn{}, &ValidationError{Field: "column.title", Reason: "missing or not a string"}
	}
	cards := v.Get("cards")
	if !cards.IsArray() {
		return RawColumn{}, &ValidationError{Field: "column.cards", Reason: "missing or not an array"}
	}

	raw := RawColumn{
		ID:        id.Str,
		Title:     title.Str,
		CreatedAt: numberField(v, "createdAt"),
		UpdatedAt: numberField(v, "updatedAt"),
		Cards:     []RawCard{},
	}
	for i, c := range cards.Array() {
		card, err := ParseCard(c)
		if err != nil {
			return RawColumn{}, fmt.Errorf("column %q card %d: %w", raw.ID, i, err)
		}
		raw.Cards = append(raw.Cards, card)
	}

	return raw, nil
}

// ParseColumns keeps every element of list that is a valid column and
// silently drops the rest. A non-array list yields no columns.
func ParseColumns(list gjson.Result) []RawColumn {
	columns := []RawColumn{}
	if !list.IsArray() {
		return columns
	}
	for _, v := range list.Array() {
		col, err := ParseColumn(v)
		if err != nil {
			continue
		}
		columns = append(columns, col)
	}
	return columns
}

// IsCard reports whether v has the minimal shape of a card
func IsCard(v gjson.Result) bool {
	_, err := ParseCard(v)
	return err == nil
}

// IsColumn reports whether v has the minimal shape of a column
func IsColumn(v gjson.Result) bool {
	_, err := ParseColumn(v)
	return err == nil
}

// RawCardOf lifts a current-schema card back into its loose form
func RawCardOf(c Card) RawCard {
	createdAt, updatedAt := c.CreatedAt, c.UpdatedAt
	return RawCard{
		ID:            c.ID,
		Title:         c.Title,
		CreatedAt:     &createdAt,
		UpdatedAt:     &updatedAt,
		ColumnHistory: c.ColumnHistory,
		HasHistory:    c.ColumnHistory != nil,
	}
}

// RawColumnOf lifts a current-schema column back into its loose form
func RawColumnOf(col Column) RawColumn {
	createdAt, updatedAt := col.CreatedAt, col.UpdatedAt
	raw := RawColumn{
		ID:        col.ID,
		Title:     col.Title,
		CreatedAt: &createdAt,
		UpdatedAt: &updatedAt,
		Cards:     make([]RawCard, 0, len(col.Cards)),
	}
	for _, c := range col.Cards {
		raw.Cards = append(raw.Cards, RawCardOf(c))
	}
	return raw
}

func numberField(v gjson.Result, name string) *Timestamp {
	f := v.Get(name)
	if f.Type != gjson.Number {
		return nil
	}
	ts := Timestamp(f.Int())
	return &ts
}
