package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"kban/internal/kanban/models"
)

// findColumn resolves a column by id, case-insensitive title, or 1-based
// position.
func findColumn(cols []models.Column, ref string) (int, error) {
	if i := models.FindColumn(cols, ref); i >= 0 {
		return i, nil
	}

	match := -1
	for i, col := range cols {
		if strings.EqualFold(col.Title, ref) {
			if match >= 0 {
				return -1, fmt.Errorf("column %q is ambiguous, use its id", ref)
			}
			match = i
		}
	}
	if match >= 0 {
		return match, nil
	}

	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(cols) {
		return n - 1, nil
	}
	return -1, fmt.Errorf("no column %q", ref)
}

// findCard resolves a card by id, unique id prefix, or unique
// case-insensitive title. It returns the column and card indexes.
func findCard(cols []models.Column, ref string) (int, int, error) {
	if i, j := models.FindCardAnywhere(cols, ref); i >= 0 {
		return i, j, nil
	}

	type hit struct{ col, card int }
	var byPrefix, byTitle []hit
	for i, col := range cols {
		for j, card := range col.Cards {
			if len(ref) >= 4 && strings.HasPrefix(strings.ToLower(card.ID), strings.ToLower(ref)) {
				byPrefix = append(byPrefix, hit{i, j})
			}
			if strings.EqualFold(card.Title, ref) {
				byTitle = append(byTitle, hit{i, j})
			}
		}
	}

	for _, hits := range [][]hit{byPrefix, byTitle} {
		switch len(hits) {
		case 0:
			continue
		case 1:
			return hits[0].col, hits[0].card, nil
		default:
			return -1, -1, fmt.Errorf("card %q is ambiguous, use its id", ref)
		}
	}
	return -1, -1, fmt.Errorf("no card %q", ref)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[len(id)-8:]
	}
	return id
}

func printBoard(w io.Writer, cols []models.Column) {
	if len(cols) == 0 {
		fmt.Fprintln(w, "Board is empty. Add a column with: kban column add <title>")
		return
	}
	for i, col := range cols {
		fmt.Fprintf(w, "%d. %s (%d)  [%s]\n", i+1, col.Title, len(col.Cards), col.ID)
		for _, card := range col.Cards {
			fmt.Fprintf(w, "   - %s  [%s]\n", card.Title, card.ID)
		}
	}
}
