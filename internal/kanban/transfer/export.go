// Package transfer moves boards in and out of kban: the versioned JSON
// export format and a plain markdown outline.
package transfer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"kban/internal/kanban/models"
	"kban/internal/settings"
)

// CurrentVersion is the version written by Export
const CurrentVersion = 2

type document struct {
	Version    int                `json:"version"`
	ExportedAt string             `json:"exportedAt"`
	Board      *models.BoardState `json:"board"`
	Settings   settingsDocument   `json:"settings"`
}

type settingsDocument struct {
	Theme                 string `json:"theme"`
	ThemePreference       string `json:"themePreference"`
	CardDensity           string `json:"cardDensity"`
	ColumnResizingEnabled string `json:"columnResizingEnabled"`
	DeleteColumnWarning   string `json:"deleteColumnWarning"`
}

// Export renders the board and settings as an indented version 2 document
func Export(cols []models.Column, s settings.Settings, now time.Time) ([]byte, error) {
	if cols == nil {
		cols = []models.Column{}
	}

	doc := document{
		Version:    CurrentVersion,
		ExportedAt: now.UTC().Format(time.RFC3339),
		Board:      &models.BoardState{Columns: cols},
		Settings: settingsDocument{
			Theme:                 s.Theme,
			ThemePreference:       string(s.ThemePreference),
			CardDensity:           string(s.CardDensity),
			ColumnResizingEnabled: strconv.FormatBool(s.ColumnResizingEnabled),
			DeleteColumnWarning:   strconv.FormatBool(s.DeleteColumnWarning),
		},
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	return data, nil
}
