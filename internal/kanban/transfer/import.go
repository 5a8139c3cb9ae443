package transfer

import (
	"fmt"

	"github.com/tidwall/gjson"

	"kban/internal/kanban/migrate"
	"kban/internal/kanban/models"
	"kban/internal/settings"
)

// ImportError is a rejected import. Message is shown to the user as is.
type ImportError struct {
	Message string
}

func (e *ImportError) Error() string {
	return e.Message
}

var (
	errNotJSON   = &ImportError{Message: "File is not valid JSON."}
	errNotExport = &ImportError{Message: "File is not a valid export."}
)

// Payload is an accepted import
type Payload struct {
	Version    int
	ExportedAt string

	// HasBoard is false when the document carried "board": null or no
	// board at all; Columns is then empty and the current board stays.
	HasBoard bool
	Columns  []models.Column

	HasSettings bool
	Settings    settings.Settings
}

// Import parses an export document. Version 1 boards are migrated;
// version 2 boards are taken as they are. Columns that do not have the
// shape of a column are dropped without failing the import.
func Import(data []byte, now models.Timestamp) (Payload, error) {
	if !gjson.ValidBytes(data) {
		return Payload{}, errNotJSON
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return Payload{}, errNotExport
	}

	version := doc.Get("version")
	if version.Type != gjson.Number || (version.Num != 1 && version.Num != 2) {
		shown := version.String()
		switch {
		case !version.Exists():
			shown = "undefined"
		case version.Type == gjson.Null:
			shown = "null"
		}
		return Payload{}, &ImportError{Message: fmt.Sprintf("Unsupported export version: %s.", shown)}
	}

	p := Payload{
		Version:    int(version.Num),
		ExportedAt: doc.Get("exportedAt").String(),
		Columns:    []models.Column{},
	}

	board := doc.Get("board")
	switch {
	case !board.Exists() || board.Type == gjson.Null:
	case !board.IsObject():
		return Payload{}, errNotExport
	default:
		p.HasBoard = true
		raws := models.ParseColumns(board.Get("columns"))
		if p.Version == 1 {
			p.Columns = migrate.Columns(raws, now)
		} else {
			p.Columns = verbatim(raws)
		}
	}

	if s := doc.Get("settings"); s.IsObject() {
		p.HasSettings = true
		p.Settings = parseSettings(s)
	}

	return p, nil
}

// verbatim converts columns that are already in the current schema. Fields
// that are missing are left at their zero value.
func verbatim(raws []models.RawColumn) []models.Column {
	cols := make([]models.Column, 0, len(raws))
	for _, rc := range raws {
		col := models.Column{
			ID:        rc.ID,
			Title:     rc.Title,
			Cards:     make([]models.Card, 0, len(rc.Cards)),
			CreatedAt: deref(rc.CreatedAt),
			UpdatedAt: deref(rc.UpdatedAt),
		}
		for _, c := range rc.Cards {
			history := c.ColumnHistory
			if history == nil {
				history = []models.ColumnHistoryEntry{}
			}
			col.Cards = append(col.Cards, models.Card{
				ID:            c.ID,
				Title:         c.Title,
				CreatedAt:     deref(c.CreatedAt),
				UpdatedAt:     deref(c.UpdatedAt),
				ColumnHistory: history,
			})
		}
		cols = append(cols, col)
	}
	return cols
}

func deref(ts *models.Timestamp) models.Timestamp {
	if ts == nil {
		return 0
	}
	return *ts
}

func parseSettings(v gjson.Result) settings.Settings {
	s := settings.Defaults()

	s.Theme = v.Get("theme").String()
	if !settings.ValidTheme(s.Theme) {
		s.Theme = ""
	}
	s.ThemePreference = settings.ParsePreference(v.Get("themePreference").String())
	s.CardDensity = settings.ParseDensity(v.Get("cardDensity").String())

	if b, ok := flag(v.Get("columnResizingEnabled")); ok {
		s.ColumnResizingEnabled = b
	}
	if b, ok := flag(v.Get("deleteColumnWarning")); ok {
		s.DeleteColumnWarning = b
	}
	return s
}

// flag accepts a JSON boolean or the strings "true" and "false"
func flag(v gjson.Result) (bool, bool) {
	switch v.Type {
	case gjson.True:
		return true, true
	case gjson.False:
		return false, true
	case gjson.String:
		return settings.ParseFlag(v.Str)
	}
	return false, false
}
