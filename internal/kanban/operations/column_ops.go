package operations

import (
	"fmt"
	"strings"

	"kban/internal/kanban/models"
)

// MaxTitleLength bounds column and card titles entered by users
const MaxTitleLength = 200

// AddColumn appends an empty column. It always changes the board.
func AddColumn(cols []models.Column, id, title string, now models.Timestamp) ([]models.Column, bool) {
	out := make([]models.Column, 0, len(cols)+1)
	out = append(out, cols...)
	out = append(out, models.NewColumn(id, title, now))
	return out, true
}

// UpdateColumn renames a column
func UpdateColumn(cols []models.Column, id, title string, now models.Timestamp) ([]models.Column, bool) {
	i := models.FindColumn(cols, id)
	if i < 0 {
		return cols, false
	}

	out := cloneColumns(cols)
	out[i].Title = title
	out[i].UpdatedAt = now
	return out, true
}

// RemoveColumn deletes a column together with its cards
func RemoveColumn(cols []models.Column, id string) ([]models.Column, bool) {
	i := models.FindColumn(cols, id)
	if i < 0 {
		return cols, false
	}

	out := make([]models.Column, 0, len(cols)-1)
	out = append(out, cols[:i]...)
	out = append(out, cols[i+1:]...)
	return out, true
}

// ReorderColumns moves the column activeID to the position currently held
// by overID.
func ReorderColumns(cols []models.Column, activeID, overID string, now models.Timestamp) ([]models.Column, bool) {
	from := models.FindColumn(cols, activeID)
	to := models.FindColumn(cols, overID)
	if from < 0 || to < 0 || from == to {
		return cols, false
	}

	out := ArrayMove(cols, from, to)
	out[to].UpdatedAt = now
	return out, true
}

// ValidateTitle trims a user supplied title and checks its length
func ValidateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)

	if trimmed == "" {
		return "", fmt.Errorf("title cannot be empty")
	}

	if len([]rune(trimmed)) > MaxTitleLength {
		return "", fmt.Errorf("title too long (max %d characters)", MaxTitleLength)
	}

	return trimmed, nil
}
