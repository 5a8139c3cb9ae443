// Package board owns the live kanban board: its undo history, persistence
// to a storage.Store, and first-run seeding.
package board

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"kban/internal/kanban/migrate"
	"kban/internal/kanban/models"
	"kban/internal/kanban/operations"
	"kban/internal/logs"
	"kban/internal/settings"
	"kban/internal/storage"
	"kban/internal/undo"
)

// Board is not safe for concurrent use.
type Board struct {
	store    storage.Store
	history  *undo.History[*models.BoardState]
	now      func() models.Timestamp
	newID    func() string
	log      *logrus.Entry
	histOpts []undo.Option
	lastErr  error
}

type Option func(*Board)

func WithClock(now func() models.Timestamp) Option {
	return func(b *Board) { b.now = now }
}

func WithIDs(newID func() string) Option {
	return func(b *Board) { b.newID = newID }
}

// WithHistory passes options through to the undo history
func WithHistory(opts ...undo.Option) Option {
	return func(b *Board) { b.histOpts = append(b.histOpts, opts...) }
}

func WithLogger(log *logrus.Entry) Option {
	return func(b *Board) { b.log = log }
}

// New loads the board from store. When the store has never held a board,
// the demo board is written. A stored board that is not valid JSON is
// replaced by an empty board in memory and left untouched on disk until
// the next change.
func New(store storage.Store, opts ...Option) (*Board, error) {
	b := &Board{
		store: store,
		now:   models.Now,
		newID: models.NewID,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.log == nil {
		b.log = logs.Logger.WithField("component", "board")
	}

	raw, ok, err := store.Get(settings.KeyBoard)
	if err != nil {
		return nil, fmt.Errorf("read board: %w", err)
	}

	var initial *models.BoardState
	seeded := false
	switch {
	case !ok:
		cols, err := seedColumns(b.newID, b.now())
		if err != nil {
			return nil, err
		}
		initial = &models.BoardState{Columns: cols}
		seeded = true
		b.log.WithField("columns", len(cols)).Info("seeded new board")

	case !gjson.Valid(raw):
		initial = models.EmptyBoard()
		b.log.Warn("stored board is not valid JSON, starting empty")

	default:
		raws := models.ParseColumns(gjson.Get(raw, "columns"))
		initial = &models.BoardState{Columns: migrate.Columns(raws, b.now())}
	}

	b.history = undo.New(initial, b.histOpts...)
	b.history.OnChange(b.persist)
	if seeded {
		b.persist(initial)
	}
	return b, nil
}

func (b *Board) persist(state *models.BoardState) {
	data, err := json.Marshal(state)
	if err == nil {
		err = b.store.Set(settings.KeyBoard, string(data))
	}
	b.lastErr = err
	if err != nil {
		b.log.WithError(err).Error("failed to save board")
	}
}

// LastError returns the error from the most recent save, or nil
func (b *Board) LastError() error {
	return b.lastErr
}

// State returns the present board. It must not be modified.
func (b *Board) State() *models.BoardState {
	return b.history.Present()
}

func (b *Board) Columns() []models.Column {
	return b.history.Present().Columns
}

func (b *Board) apply(op string, fn func(cols []models.Column, now models.Timestamp) ([]models.Column, bool)) bool {
	changed := false
	b.history.Update(func(prev *models.BoardState) *models.BoardState {
		cols, ok := fn(prev.Columns, b.now())
		if !ok {
			return prev
		}
		changed = true
		return &models.BoardState{Columns: cols}
	})
	b.log.WithFields(logrus.Fields{"op": op, "changed": changed}).Debug("board mutation")
	return changed
}

// AddColumn appends a column and returns its id
func (b *Board) AddColumn(title string) string {
	id := b.newID()
	b.apply("add-column", func(cols []models.Column, now models.Timestamp) ([]models.Column, bool) {
		return operations.AddColumn(cols, id, title, now)
	})
	return id
}

func (b *Board) UpdateColumn(id, title string) bool {
	return b.apply("update-column", func(cols []models.Column, now models.Timestamp) ([]models.Column, bool) {
		return operations.UpdateColumn(cols, id, title, now)
	})
}

func (b *Board) RemoveColumn(id string) bool {
	return b.apply("remove-column", func(cols []models.Column, _ models.Timestamp) ([]models.Column, bool) {
		return operations.RemoveColumn(cols, id)
	})
}

// AddCard puts a card at the top of a column and returns its id, or "" when
// the column does not exist.
func (b *Board) AddCard(columnID, title string) string {
	id := b.newID()
	ok := b.apply("add-card", func(cols []models.Column, now models.Timestamp) ([]models.Column, bool) {
		return operations.AddCard(cols, columnID, id, title, now)
	})
	if !ok {
		return ""
	}
	return id
}

func (b *Board) RemoveCard(columnID, cardID string) bool {
	return b.apply("remove-card", func(cols []models.Column, now models.Timestamp) ([]models.Column, bool) {
		return operations.RemoveCard(cols, columnID, cardID, now)
	})
}

func (b *Board) UpdateCard(columnID, cardID, title string) bool {
	return b.apply("update-card", func(cols []models.Column, now models.Timestamp) ([]models.Column, bool) {
		return operations.UpdateCard(cols, columnID, cardID, title, now)
	})
}

func (b *Board) SortCards(columnID string) bool {
	return b.apply("sort-cards", func(cols []models.Column, now models.Timestamp) ([]models.Column, bool) {
		return operations.SortCards(cols, columnID, now)
	})
}

func (b *Board) ReorderColumns(activeID, overID string) bool {
	return b.apply("reorder-columns", func(cols []models.Column, now models.Timestamp) ([]models.Column, bool) {
		return operations.ReorderColumns(cols, activeID, overID, now)
	})
}

func (b *Board) MoveCardWithinColumn(columnID, activeCardID, overCardID string) bool {
	return b.apply("move-within", func(cols []models.Column, now models.Timestamp) ([]models.Column, bool) {
		return operations.MoveCardWithinColumn(cols, columnID, activeCardID, overCardID, now)
	})
}

func (b *Board) ReorderCard(columnID, activeCardID, overCardID string) bool {
	return b.apply("reorder-card", func(cols []models.Column, now models.Timestamp) ([]models.Column, bool) {
		return operations.ReorderCard(cols, columnID, activeCardID, overCardID, now)
	})
}

func (b *Board) MoveCardAcrossColumns(fromColumnID, toColumnID, activeCardID, overCardID string) bool {
	return b.apply("move-across", func(cols []models.Column, now models.Timestamp) ([]models.Column, bool) {
		return operations.MoveCardAcrossColumns(cols, fromColumnID, toColumnID, activeCardID, overCardID, now)
	})
}

func (b *Board) DropCardOnColumn(fromColumnID, toColumnID, activeCardID string) bool {
	return b.apply("drop-card", func(cols []models.Column, now models.Timestamp) ([]models.Column, bool) {
		return operations.DropCardOnColumn(cols, fromColumnID, toColumnID, activeCardID, now)
	})
}

// SetColumns replaces every column in one undoable step
func (b *Board) SetColumns(cols []models.Column) {
	if cols == nil {
		cols = []models.Column{}
	}
	b.history.Set(&models.BoardState{Columns: cols})
	b.log.WithField("columns", len(cols)).Info("board replaced")
}

// ResetBoard empties the board. The empty board is saved, so the demo
// board is not seeded again.
func (b *Board) ResetBoard() {
	b.history.Set(models.EmptyBoard())
	b.log.Info("board reset")
}

func (b *Board) Undo()         { b.history.Undo() }
func (b *Board) Redo()         { b.history.Redo() }
func (b *Board) CanUndo() bool { return b.history.CanUndo() }
func (b *Board) CanRedo() bool { return b.history.CanRedo() }
