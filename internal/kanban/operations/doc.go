// Package operations holds the pure transformations behind every board
// change. Each function takes the current columns and returns the columns
// to use next together with a changed flag.
//
// When nothing changes (an unknown id, or a move onto the same position)
// the input slice itself is returned with changed=false. Otherwise a new
// slice is built; the input slice, its columns' card slices and the cards'
// history slices are never written to, so callers may keep old values
// around for undo.
package operations
