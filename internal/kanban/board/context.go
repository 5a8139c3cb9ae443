package board

import "context"

type ctxKey struct{}

// NewContext returns a copy of ctx carrying b
func NewContext(ctx context.Context, b *Board) context.Context {
	return context.WithValue(ctx, ctxKey{}, b)
}

// FromContext returns the board installed by NewContext. It panics when
// there is none, since every command runs under one.
func FromContext(ctx context.Context) *Board {
	b, ok := ctx.Value(ctxKey{}).(*Board)
	if !ok || b == nil {
		panic("board: no board in context")
	}
	return b
}
