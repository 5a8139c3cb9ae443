package board

import (
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"

	"kban/internal/kanban/models"
)

// MinSearchLength is the shortest query Search answers
const MinSearchLength = 2

type SearchMatch struct {
	ColumnID       string
	ColumnTitle    string
	Card           models.Card
	Score          int
	MatchedIndexes []int
}

type cardRef struct {
	column int
	card   int
}

type cardTitles struct {
	cols []models.Column
	refs []cardRef
}

func (c cardTitles) String(i int) string {
	r := c.refs[i]
	return c.cols[r.column].Cards[r.card].Title
}

func (c cardTitles) Len() int {
	return len(c.refs)
}

// Search fuzzy matches card titles across the board, best match first
func (b *Board) Search(query string) []SearchMatch {
	return SearchColumns(b.Columns(), query)
}

// SearchColumns is Search over an arbitrary column list
func SearchColumns(cols []models.Column, query string) []SearchMatch {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinSearchLength {
		return nil
	}

	src := cardTitles{cols: cols}
	for i := range cols {
		for j := range cols[i].Cards {
			src.refs = append(src.refs, cardRef{column: i, card: j})
		}
	}

	found := fuzzy.FindFrom(query, src)
	matches := make([]SearchMatch, 0, len(found))
	for _, m := range found {
		r := src.refs[m.Index]
		matches = append(matches, SearchMatch{
			ColumnID:       cols[r.column].ID,
			ColumnTitle:    cols[r.column].Title,
			Card:           cols[r.column].Cards[r.card],
			Score:          m.Score,
			MatchedIndexes: m.MatchedIndexes,
		})
	}
	return matches
}
