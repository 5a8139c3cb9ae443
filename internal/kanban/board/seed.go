package board

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"kban/internal/kanban/models"
)

//go:embed seed.yaml
var seedYAML []byte

type seedBoard struct {
	Columns []struct {
		Title string   `yaml:"title"`
		Cards []string `yaml:"cards"`
	} `yaml:"columns"`
}

// seedColumns builds the first-run demo board
func seedColumns(newID func() string, now models.Timestamp) ([]models.Column, error) {
	var seed seedBoard
	if err := yaml.Unmarshal(seedYAML, &seed); err != nil {
		return nil, fmt.Errorf("parse seed board: %w", err)
	}

	cols := make([]models.Column, 0, len(seed.Columns))
	for _, sc := range seed.Columns {
		col := models.NewColumn(newID(), sc.Title, now)
		for _, title := range sc.Cards {
			col.Cards = append(col.Cards, models.NewCard(newID(), title, col.ID, now))
		}
		cols = append(cols, col)
	}
	return cols, nil
}
