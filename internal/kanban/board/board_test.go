package board

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"kban/internal/kanban/models"
	"kban/internal/settings"
	"kban/internal/storage"
	"kban/internal/undo"
)

func testOptions() []Option {
	n := 0
	clock := models.Timestamp(1_700_000_000_000)
	return []Option{
		WithIDs(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
		WithClock(func() models.Timestamp {
			clock += 1000
			return clock
		}),
	}
}

func newBoard(t *testing.T, store storage.Store, opts ...Option) *Board {
	t.Helper()
	b, err := New(store, append(testOptions(), opts...)...)
	require.NoError(t, err)
	return b
}

func storedColumns(t *testing.T, store storage.Store) []string {
	t.Helper()
	raw, ok, err := store.Get(settings.KeyBoard)
	require.NoError(t, err)
	require.True(t, ok)

	var titles []string
	for _, c := range gjson.Get(raw, "columns").Array() {
		titles = append(titles, c.Get("title").String())
	}
	return titles
}

func emptyStore(t *testing.T) storage.Store {
	t.Helper()
	store := storage.NewMemory()
	require.NoError(t, store.Set(settings.KeyBoard, `{"columns":[]}`))
	return store
}

func TestSeedsWhenStoreIsEmpty(t *testing.T) {
	store := storage.NewMemory()
	b := newBoard(t, store)

	cols := b.Columns()
	require.Len(t, cols, 3)
	assert.Equal(t, "To Do", cols[0].Title)
	assert.NotEmpty(t, cols[0].Cards)
	for _, card := range cols[0].Cards {
		require.Len(t, card.ColumnHistory, 1)
		assert.Equal(t, cols[0].ID, card.ColumnHistory[0].ColumnID)
	}

	assert.Equal(t, []string{"To Do", "In Progress", "Done"}, storedColumns(t, store))
	assert.False(t, b.CanUndo())
}

func TestResetIsNotReseeded(t *testing.T) {
	store := storage.NewMemory()
	b := newBoard(t, store)
	b.ResetBoard()
	assert.Empty(t, b.Columns())

	again := newBoard(t, store)
	assert.Empty(t, again.Columns())
}

func TestLoadsAndMigratesStoredBoard(t *testing.T) {
	store := storage.NewMemory()
	require.NoError(t, store.Set(settings.KeyBoard, `{"columns":[
		{"id":"todo","title":"Todo","cards":[{"id":"c1","title":"legacy"}]},
		{"id":"bad","title":"no cards"},
		{"id":"done","title":"Done","cards":[],"createdAt":5,"updatedAt":6}
	]}`))

	b := newBoard(t, store)
	cols := b.Columns()
	require.Len(t, cols, 2)
	assert.Equal(t, "todo", cols[0].ID)
	assert.Equal(t, models.Timestamp(5), cols[1].CreatedAt)

	card := cols[0].Cards[0]
	require.Len(t, card.ColumnHistory, 1)
	assert.Equal(t, "todo", card.ColumnHistory[0].ColumnID)
	assert.NotZero(t, card.CreatedAt)
}

func TestCorruptBoardStartsEmpty(t *testing.T) {
	store := storage.NewMemory()
	require.NoError(t, store.Set(settings.KeyBoard, `{"columns":[`))

	b := newBoard(t, store)
	assert.Empty(t, b.Columns())

	raw, _, err := store.Get(settings.KeyBoard)
	require.NoError(t, err)
	assert.Equal(t, `{"columns":[`, raw)
}

func TestMissingColumnsFieldStartsEmpty(t *testing.T) {
	store := storage.NewMemory()
	require.NoError(t, store.Set(settings.KeyBoard, `{"lanes":[]}`))

	b := newBoard(t, store)
	assert.Empty(t, b.Columns())
}

func TestReadErrorFailsConstruction(t *testing.T) {
	store := storage.NewMemory()
	require.NoError(t, store.Close())

	_, err := New(store)
	assert.ErrorIs(t, err, storage.ErrClosed)
}

func TestMutationsPersist(t *testing.T) {
	store := emptyStore(t)
	b := newBoard(t, store)

	todo := b.AddColumn("Todo")
	done := b.AddColumn("Done")
	assert.Equal(t, []string{"Todo", "Done"}, storedColumns(t, store))

	card := b.AddCard(todo, "write tests")
	require.NotEmpty(t, card)
	assert.Empty(t, b.AddCard("missing", "x"))

	require.True(t, b.DropCardOnColumn(todo, done, card))
	cols := b.Columns()
	assert.Empty(t, cols[0].Cards)
	require.Len(t, cols[1].Cards, 1)
	assert.Len(t, cols[1].Cards[0].ColumnHistory, 2)

	raw, _, err := store.Get(settings.KeyBoard)
	require.NoError(t, err)
	assert.Equal(t, card, gjson.Get(raw, "columns.1.cards.0.id").String())
}

func TestNoOpDoesNotRecordHistory(t *testing.T) {
	b := newBoard(t, emptyStore(t))
	col := b.AddColumn("Todo")
	before := b.State()

	assert.False(t, b.UpdateColumn("missing", "x"))
	assert.False(t, b.RemoveCard(col, "missing"))
	assert.False(t, b.ReorderColumns(col, col))
	assert.Same(t, before, b.State())

	b.Undo()
	assert.Empty(t, b.Columns())
	assert.False(t, b.CanUndo())
}

func TestUndoRedoPersist(t *testing.T) {
	store := emptyStore(t)
	b := newBoard(t, store)

	b.AddColumn("A")
	b.AddColumn("B")
	assert.Equal(t, []string{"A", "B"}, storedColumns(t, store))

	b.Undo()
	assert.Equal(t, []string{"A"}, storedColumns(t, store))
	assert.True(t, b.CanRedo())

	b.Redo()
	assert.Equal(t, []string{"A", "B"}, storedColumns(t, store))
}

func TestSetColumnsIsOneUndoStep(t *testing.T) {
	b := newBoard(t, emptyStore(t))
	b.AddColumn("Old")

	b.SetColumns([]models.Column{
		models.NewColumn("x", "X", 1),
		models.NewColumn("y", "Y", 1),
	})
	require.Len(t, b.Columns(), 2)

	b.Undo()
	require.Len(t, b.Columns(), 1)
	assert.Equal(t, "Old", b.Columns()[0].Title)
}

func TestHistoryOptions(t *testing.T) {
	b := newBoard(t, emptyStore(t), WithHistory(undo.WithTracking(false)))
	b.AddColumn("A")
	assert.False(t, b.CanUndo())
}

type failingStore struct {
	storage.Store
	fail bool
}

func (f *failingStore) Set(key, value string) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.Store.Set(key, value)
}

func TestWriteFailureKeepsState(t *testing.T) {
	store := &failingStore{Store: emptyStore(t)}
	b := newBoard(t, store)
	require.NoError(t, b.LastError())

	store.fail = true
	b.AddColumn("A")
	assert.Len(t, b.Columns(), 1)
	assert.EqualError(t, b.LastError(), "disk full")

	store.fail = false
	b.AddColumn("B")
	assert.NoError(t, b.LastError())
	assert.Equal(t, []string{"A", "B"}, storedColumns(t, store))
}

func TestSearch(t *testing.T) {
	b := newBoard(t, emptyStore(t))
	todo := b.AddColumn("Todo")
	b.AddCard(todo, "Write release notes")
	b.AddCard(todo, "Fix login bug")
	done := b.AddColumn("Done")
	b.AddCard(done, "Refactor logger")

	assert.Nil(t, b.Search(""))
	assert.Nil(t, b.Search(" l "))

	matches := b.Search("log")
	require.Len(t, matches, 2)
	titles := []string{matches[0].Card.Title, matches[1].Card.Title}
	assert.ElementsMatch(t, []string{"Fix login bug", "Refactor logger"}, titles)
	for _, m := range matches {
		assert.NotEmpty(t, m.MatchedIndexes)
		if m.Card.Title == "Refactor logger" {
			assert.Equal(t, done, m.ColumnID)
			assert.Equal(t, "Done", m.ColumnTitle)
		}
	}

	assert.Empty(t, b.Search("zzz"))
}

func TestContext(t *testing.T) {
	b := newBoard(t, emptyStore(t))
	ctx := NewContext(context.Background(), b)
	assert.Same(t, b, FromContext(ctx))

	assert.Panics(t, func() { FromContext(context.Background()) })
}
