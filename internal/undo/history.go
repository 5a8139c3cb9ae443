// Package undo wraps a value with linear undo/redo history.
package undo

// DefaultMaxHistory is the number of past states kept when no limit is given
const DefaultMaxHistory = 50

type options struct {
	enabled    bool
	maxHistory int
}

// Option configures a History
type Option func(*options)

// WithTracking turns history recording on or off. With tracking off, Set
// replaces the present value and undo/redo are unavailable.
func WithTracking(enabled bool) Option {
	return func(o *options) { o.enabled = enabled }
}

// WithMaxHistory bounds how many past and future states are kept. Values
// below 1 select DefaultMaxHistory.
func WithMaxHistory(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = DefaultMaxHistory
		}
		o.maxHistory = n
	}
}

// History holds a present value of T plus the states before and after it.
// A new state equal (==) to the present one is ignored, so callers signal
// "nothing changed" by handing back the value they were given. T is
// normally a pointer to an immutable value.
//
// History is not safe for concurrent use.
type History[T comparable] struct {
	past     []T
	present  T
	future   []T
	opts     options
	onChange []func(T)
}

// New creates a History whose present value is initial
func New[T comparable](initial T, opts ...Option) *History[T] {
	o := options{enabled: true, maxHistory: DefaultMaxHistory}
	for _, opt := range opts {
		opt(&o)
	}
	return &History[T]{present: initial, opts: o}
}

// OnChange registers fn to run after every change of the present value,
// including undo and redo.
func (h *History[T]) OnChange(fn func(T)) {
	h.onChange = append(h.onChange, fn)
}

// Present returns the current value
func (h *History[T]) Present() T {
	return h.present
}

// Set makes next the present value, recording the old one for undo
func (h *History[T]) Set(next T) {
	if next == h.present {
		return
	}

	if h.opts.enabled {
		h.past = append(h.past, h.present)
		if over := len(h.past) - h.opts.maxHistory; over > 0 {
			h.past = append([]T(nil), h.past[over:]...)
		}
		h.future = nil
	}

	h.present = next
	h.notify()
}

// Update computes the next value from the present one and applies it with
// Set. Successive calls always see the result of the previous one.
func (h *History[T]) Update(fn func(prev T) T) {
	h.Set(fn(h.present))
}

// Undo steps back one state. It does nothing when there is no past.
func (h *History[T]) Undo() {
	if !h.CanUndo() {
		return
	}

	last := len(h.past) - 1
	prev := h.past[last]
	h.past = h.past[:last]

	h.future = append([]T{h.present}, h.future...)
	if len(h.future) > h.opts.maxHistory {
		h.future = h.future[:h.opts.maxHistory]
	}

	h.present = prev
	h.notify()
}

// Redo steps forward one state. It does nothing when there is no future.
func (h *History[T]) Redo() {
	if !h.CanRedo() {
		return
	}

	next := h.future[0]
	h.future = h.future[1:]

	h.past = append(h.past, h.present)
	if over := len(h.past) - h.opts.maxHistory; over > 0 {
		h.past = append([]T(nil), h.past[over:]...)
	}

	h.present = next
	h.notify()
}

// CanUndo reports whether Undo would change anything
func (h *History[T]) CanUndo() bool {
	return h.opts.enabled && len(h.past) > 0
}

// CanRedo reports whether Redo would change anything
func (h *History[T]) CanRedo() bool {
	return h.opts.enabled && len(h.future) > 0
}

// Len returns the number of past and future states held
func (h *History[T]) Len() (past, future int) {
	return len(h.past), len(h.future)
}

func (h *History[T]) notify() {
	for _, fn := range h.onChange {
		fn(h.present)
	}
}
