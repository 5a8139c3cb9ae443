package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"kban/internal/kanban/models"
)

func TestCardBackfillsMissingFields(t *testing.T) {
	raw, err := models.ParseCard(gjson.Parse(`{"id":"c1","title":"Legacy"}`))
	require.NoError(t, err)

	card := Card(raw, "todo", 1234)

	assert.Equal(t, "c1", card.ID)
	assert.Equal(t, models.Timestamp(1234), card.CreatedAt)
	assert.Equal(t, models.Timestamp(1234), card.UpdatedAt)
	assert.Equal(t, []models.ColumnHistoryEntry{{ColumnID: "todo", EnteredAt: 1234}}, card.ColumnHistory)
}

func TestCardPreservesExistingFields(t *testing.T) {
	raw, err := models.ParseCard(gjson.Parse(`{
		"id":"c1","title":"Kept","createdAt":10,"updatedAt":20,
		"columnHistory":[{"columnId":"old","enteredAt":10}]
	}`))
	require.NoError(t, err)

	card := Card(raw, "todo", 9999)

	assert.Equal(t, models.Timestamp(10), card.CreatedAt)
	assert.Equal(t, models.Timestamp(20), card.UpdatedAt)
	assert.Equal(t, []models.ColumnHistoryEntry{{ColumnID: "old", EnteredAt: 10}}, card.ColumnHistory)
}

func TestCardKeepsEmptyHistoryArray(t *testing.T) {
	raw, err := models.ParseCard(gjson.Parse(`{"id":"c1","title":"x","columnHistory":[]}`))
	require.NoError(t, err)

	card := Card(raw, "todo", 1)
	assert.NotNil(t, card.ColumnHistory)
	assert.Empty(t, card.ColumnHistory)
}

func TestColumnMigratesCardsWithOwnID(t *testing.T) {
	raw, err := models.ParseColumn(gjson.Parse(`{
		"id":"doing","title":"Doing","createdAt":5,
		"cards":[{"id":"a","title":"A"},{"id":"b","title":"B","createdAt":7}]
	}`))
	require.NoError(t, err)

	col := Column(raw, 100)

	assert.Equal(t, models.Timestamp(5), col.CreatedAt)
	assert.Equal(t, models.Timestamp(100), col.UpdatedAt)
	require.Len(t, col.Cards, 2)
	for _, c := range col.Cards {
		require.Len(t, c.ColumnHistory, 1)
		assert.Equal(t, "doing", c.ColumnHistory[0].ColumnID)
	}
	assert.Equal(t, models.Timestamp(7), col.Cards[1].CreatedAt)
}

func TestColumnWithoutCards(t *testing.T) {
	col := Column(models.RawColumn{ID: "a", Title: "A"}, 1)
	assert.NotNil(t, col.Cards)
	assert.Empty(t, col.Cards)
}

func TestMigrationIsIdempotent(t *testing.T) {
	raws := models.ParseColumns(gjson.Parse(`[
		{"id":"todo","title":"Todo","cards":[{"id":"a","title":"A"}]},
		{"id":"done","title":"Done","createdAt":3,"updatedAt":4,"cards":[
			{"id":"b","title":"B","createdAt":1,"updatedAt":2,"columnHistory":[{"columnId":"todo","enteredAt":1},{"columnId":"done","enteredAt":2}]}
		]}
	]`))

	first := Columns(raws, 1000)

	again := make([]models.RawColumn, 0, len(first))
	for _, col := range first {
		again = append(again, models.RawColumnOf(col))
	}
	second := Columns(again, 5000)

	assert.Equal(t, first, second)
}
