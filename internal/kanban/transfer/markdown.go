package transfer

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"kban/internal/kanban/migrate"
	"kban/internal/kanban/models"
)

// WriteMarkdown renders the board as an outline: the board name as the
// level one heading, a level two heading per column and a bullet per card.
func WriteMarkdown(w io.Writer, name string, cols []models.Column) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("# ")
	bw.WriteString(oneLine(name))
	bw.WriteString("\n\n")

	for _, col := range cols {
		bw.WriteString("## ")
		bw.WriteString(oneLine(col.Title))
		bw.WriteString("\n\n")

		for _, card := range col.Cards {
			bw.WriteString("- ")
			bw.WriteString(oneLine(card.Title))
			bw.WriteString("\n")
		}
		if len(col.Cards) > 0 {
			bw.WriteString("\n")
		}
	}

	return bw.Flush()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ReadMarkdown parses the outline written by WriteMarkdown into fresh
// columns and cards. A "title" in optional YAML frontmatter takes
// precedence over the level one heading. Bullets before the first column
// heading are ignored.
func ReadMarkdown(data []byte, now models.Timestamp) (string, []models.Column, error) {
	body, title, err := stripFrontmatter(data)
	if err != nil {
		return "", nil, err
	}

	doc := goldmark.DefaultParser().Parse(text.NewReader(body))

	var (
		name    string
		raws    []models.RawColumn
		current = -1
	)

	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			heading := rawText(node, body)
			switch node.Level {
			case 1:
				name = heading
			case 2:
				raws = append(raws, models.RawColumn{
					ID:    models.NewID(),
					Title: heading,
					Cards: []models.RawCard{},
				})
				current = len(raws) - 1
			}
			return ast.WalkSkipChildren, nil

		case *ast.ListItem:
			if current < 0 || node.FirstChild() == nil {
				return ast.WalkSkipChildren, nil
			}
			if title := rawText(node.FirstChild(), body); title != "" {
				raws[current].Cards = append(raws[current].Cards, models.RawCard{
					ID:    models.NewID(),
					Title: title,
				})
			}
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", nil, err
	}

	if title != "" {
		name = title
	}
	return name, migrate.Columns(raws, now), nil
}

// rawText joins the source lines of a block node, keeping inline markup
func rawText(n ast.Node, source []byte) string {
	lines := n.Lines()
	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		parts = append(parts, strings.TrimSpace(string(seg.Value(source))))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func stripFrontmatter(content []byte) ([]byte, string, error) {
	lines := bytes.Split(content, []byte("\n"))
	if len(lines) == 0 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return content, "", nil
	}

	end := 0
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			end = i
			break
		}
	}
	if end == 0 {
		return content, "", nil
	}

	var fm struct {
		Title string `yaml:"title"`
	}
	if err := yaml.Unmarshal(bytes.Join(lines[1:end], []byte("\n")), &fm); err != nil {
		return nil, "", err
	}

	body := bytes.TrimLeft(bytes.Join(lines[end+1:], []byte("\n")), "\n")
	return body, fm.Title, nil
}
