// Package dnd turns drag lifecycle events into board mutations.
package dnd

// Kind identifies what is being dragged or what it was dropped on
type Kind int

const (
	KindNone Kind = iota
	KindCard
	KindColumn
	// KindColumnDrop is the empty area of a column below its cards
	KindColumnDrop
)

// ParseKind maps the wire names used by drag sources to a Kind
func ParseKind(s string) Kind {
	switch s {
	case "card":
		return KindCard
	case "column":
		return KindColumn
	case "column-drop":
		return KindColumnDrop
	default:
		return KindNone
	}
}

func (k Kind) String() string {
	switch k {
	case KindCard:
		return "card"
	case KindColumn:
		return "column"
	case KindColumnDrop:
		return "column-drop"
	default:
		return "none"
	}
}

// Outcome reports which mutation, if any, a drag end dispatched
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeReorderColumns
	OutcomeMoveWithin
	OutcomeMoveAcross
	OutcomeDrop
)

func (o Outcome) String() string {
	switch o {
	case OutcomeReorderColumns:
		return "reorder-columns"
	case OutcomeMoveWithin:
		return "move-within"
	case OutcomeMoveAcross:
		return "move-across"
	case OutcomeDrop:
		return "drop"
	default:
		return "none"
	}
}
