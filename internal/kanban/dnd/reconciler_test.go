package dnd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kban/internal/kanban/models"
)

type call struct {
	op   string
	args []string
}

type recorder struct {
	calls []call
	noop  bool
}

func (r *recorder) ReorderColumns(activeID, overID string) bool {
	r.calls = append(r.calls, call{"reorder", []string{activeID, overID}})
	return !r.noop
}

func (r *recorder) MoveCardWithinColumn(columnID, activeCardID, overCardID string) bool {
	r.calls = append(r.calls, call{"within", []string{columnID, activeCardID, overCardID}})
	return !r.noop
}

func (r *recorder) MoveCardAcrossColumns(fromColumnID, toColumnID, activeCardID, overCardID string) bool {
	r.calls = append(r.calls, call{"across", []string{fromColumnID, toColumnID, activeCardID, overCardID}})
	return !r.noop
}

func (r *recorder) DropCardOnColumn(fromColumnID, toColumnID, activeCardID string) bool {
	r.calls = append(r.calls, call{"drop", []string{fromColumnID, toColumnID, activeCardID}})
	return !r.noop
}

type blurCounter struct{ n int }

func (b *blurCounter) Blur() { b.n++ }

func TestParseKind(t *testing.T) {
	assert.Equal(t, KindCard, ParseKind("card"))
	assert.Equal(t, KindColumn, ParseKind("column"))
	assert.Equal(t, KindColumnDrop, ParseKind("column-drop"))
	assert.Equal(t, KindNone, ParseKind("lane"))
	assert.Equal(t, KindNone, ParseKind(""))
}

func TestDispatch(t *testing.T) {
	card := func(id, col string) Item { return Item{ID: id, Kind: KindCard, ColumnID: col} }
	column := func(id string) Item { return Item{ID: id, Kind: KindColumn} }

	tests := []struct {
		name    string
		active  Item
		over    *Item
		outcome Outcome
		want    []call
	}{
		{
			name:    "column over column",
			active:  column("a"),
			over:    &Item{ID: "b", Kind: KindColumn},
			outcome: OutcomeReorderColumns,
			want:    []call{{"reorder", []string{"a", "b"}}},
		},
		{
			name:    "card over card in same column",
			active:  card("c1", "todo"),
			over:    &Item{ID: "c2", Kind: KindCard, ColumnID: "todo"},
			outcome: OutcomeMoveWithin,
			want:    []call{{"within", []string{"todo", "c1", "c2"}}},
		},
		{
			name:    "card over card in other column",
			active:  card("c1", "todo"),
			over:    &Item{ID: "c9", Kind: KindCard, ColumnID: "done"},
			outcome: OutcomeMoveAcross,
			want:    []call{{"across", []string{"todo", "done", "c1", "c9"}}},
		},
		{
			name:    "card over column drop area",
			active:  card("c1", "todo"),
			over:    &Item{ID: "done-drop", Kind: KindColumnDrop, ColumnID: "done"},
			outcome: OutcomeDrop,
			want:    []call{{"drop", []string{"todo", "done", "c1"}}},
		},
		{
			name:    "card over column drop area without column",
			active:  card("c1", "todo"),
			over:    &Item{ID: "drop", Kind: KindColumnDrop},
			outcome: OutcomeNone,
		},
		{
			name:    "card over column header",
			active:  card("c1", "todo"),
			over:    &Item{ID: "done", Kind: KindColumn},
			outcome: OutcomeNone,
		},
		{
			name:    "no target",
			active:  card("c1", "todo"),
			outcome: OutcomeNone,
		},
		{
			name:    "column over card",
			active:  column("a"),
			over:    &Item{ID: "c1", Kind: KindCard, ColumnID: "todo"},
			outcome: OutcomeNone,
		},
		{
			name:    "unknown kind",
			active:  Item{ID: "x"},
			over:    &Item{ID: "c1", Kind: KindCard, ColumnID: "todo"},
			outcome: OutcomeNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			focus := &blurCounter{}
			r := New(rec, focus)

			r.Start(StartEvent{Active: tt.active})
			require.True(t, r.Dragging())

			got, changed := r.End(EndEvent{Active: tt.active, Over: tt.over})
			assert.Equal(t, tt.outcome, got)
			assert.Equal(t, tt.outcome != OutcomeNone, changed)
			assert.Equal(t, tt.want, rec.calls)

			assert.False(t, r.Dragging())
			kind, id := r.Active()
			assert.Equal(t, KindNone, kind)
			assert.Empty(t, id)
			assert.Equal(t, 1, focus.n)
		})
	}
}

func TestEndReportsUnchangedBoard(t *testing.T) {
	rec := &recorder{noop: true}
	r := New(rec, nil)

	active := Item{ID: "c1", Kind: KindCard, ColumnID: "todo"}
	r.Start(StartEvent{Active: active})
	outcome, changed := r.End(EndEvent{Active: active, Over: &Item{ID: "c1", Kind: KindCard, ColumnID: "todo"}})

	assert.Equal(t, OutcomeMoveWithin, outcome)
	assert.False(t, changed)
	assert.Len(t, rec.calls, 1)
}

func TestStartNormalizesKind(t *testing.T) {
	r := New(&recorder{}, nil)

	r.Start(StartEvent{Active: Item{ID: "z", Kind: KindColumnDrop}})
	kind, id := r.Active()
	assert.Equal(t, KindNone, kind)
	assert.Equal(t, "z", id)
}

func TestCancel(t *testing.T) {
	rec := &recorder{}
	focus := &blurCounter{}
	r := New(rec, focus)

	r.Start(StartEvent{Active: Item{ID: "c1", Kind: KindCard, ColumnID: "todo"}})
	r.Cancel()

	assert.False(t, r.Dragging())
	assert.Empty(t, rec.calls)
	assert.Equal(t, 1, focus.n)
}

func TestActiveCard(t *testing.T) {
	cols := []models.Column{
		{ID: "todo", Cards: []models.Card{{ID: "c1", Title: "one"}}},
		{ID: "done", Cards: []models.Card{{ID: "c2", Title: "two"}}},
	}
	r := New(&recorder{}, nil)

	_, ok := r.ActiveCard(cols)
	assert.False(t, ok)

	r.Start(StartEvent{Active: Item{ID: "c2", Kind: KindCard, ColumnID: "done"}})
	card, ok := r.ActiveCard(cols)
	require.True(t, ok)
	assert.Equal(t, "two", card.Title)

	r.Start(StartEvent{Active: Item{ID: "gone", Kind: KindCard}})
	_, ok = r.ActiveCard(cols)
	assert.False(t, ok)

	r.Start(StartEvent{Active: Item{ID: "todo", Kind: KindColumn}})
	_, ok = r.ActiveCard(cols)
	assert.False(t, ok)
}
