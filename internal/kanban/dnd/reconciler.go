package dnd

import "kban/internal/kanban/models"

// Item is a drag source or drop target. ColumnID is the owning column for
// cards and the target column for column-drop areas.
type Item struct {
	ID       string
	Kind     Kind
	ColumnID string
}

type StartEvent struct {
	Active Item
}

// EndEvent carries the drop target, nil when the item was released over
// nothing.
type EndEvent struct {
	Active Item
	Over   *Item
}

// Mutator receives the board mutations a drop resolves to
type Mutator interface {
	ReorderColumns(activeID, overID string) bool
	MoveCardWithinColumn(columnID, activeCardID, overCardID string) bool
	MoveCardAcrossColumns(fromColumnID, toColumnID, activeCardID, overCardID string) bool
	DropCardOnColumn(fromColumnID, toColumnID, activeCardID string) bool
}

// FocusReleaser is implemented by views that keep a focused element which
// should be cleared once a drag is over.
type FocusReleaser interface {
	Blur()
}

// Reconciler tracks a single drag at a time
type Reconciler struct {
	board Mutator
	focus FocusReleaser

	activeKind Kind
	activeID   string
}

// New creates a Reconciler dispatching to board. focus may be nil.
func New(board Mutator, focus FocusReleaser) *Reconciler {
	return &Reconciler{board: board, focus: focus}
}

// Start records the dragged item. An item of unknown kind is tracked by id
// only and can never be dropped anywhere.
func (r *Reconciler) Start(e StartEvent) {
	r.activeKind = e.Active.Kind
	if r.activeKind != KindCard && r.activeKind != KindColumn {
		r.activeKind = KindNone
	}
	r.activeID = e.Active.ID
}

// End resolves the drop and returns to idle. changed reports whether the
// dispatched mutation altered the board.
func (r *Reconciler) End(e EndEvent) (outcome Outcome, changed bool) {
	defer r.reset()

	if e.Over == nil {
		return OutcomeNone, false
	}
	active, over := e.Active, *e.Over

	switch {
	case active.Kind == KindColumn && over.Kind == KindColumn:
		return OutcomeReorderColumns, r.board.ReorderColumns(active.ID, over.ID)

	case active.Kind == KindCard && over.Kind == KindCard:
		if active.ColumnID == over.ColumnID {
			return OutcomeMoveWithin, r.board.MoveCardWithinColumn(active.ColumnID, active.ID, over.ID)
		}
		return OutcomeMoveAcross, r.board.MoveCardAcrossColumns(active.ColumnID, over.ColumnID, active.ID, over.ID)

	case active.Kind == KindCard && over.Kind == KindColumnDrop:
		if over.ColumnID == "" {
			return OutcomeNone, false
		}
		return OutcomeDrop, r.board.DropCardOnColumn(active.ColumnID, over.ColumnID, active.ID)
	}

	// Cards only land on cards or column drop areas
	return OutcomeNone, false
}

// Cancel abandons the current drag
func (r *Reconciler) Cancel() {
	r.reset()
}

// Active returns the kind and id of the item being dragged
func (r *Reconciler) Active() (Kind, string) {
	return r.activeKind, r.activeID
}

func (r *Reconciler) Dragging() bool {
	return r.activeID != ""
}

// ActiveCard looks up the dragged card for preview rendering
func (r *Reconciler) ActiveCard(cols []models.Column) (models.Card, bool) {
	if r.activeKind != KindCard {
		return models.Card{}, false
	}
	i, j := models.FindCardAnywhere(cols, r.activeID)
	if i < 0 {
		return models.Card{}, false
	}
	return cols[i].Cards[j], true
}

func (r *Reconciler) reset() {
	r.activeKind = KindNone
	r.activeID = ""
	if r.focus != nil {
		r.focus.Blur()
	}
}
