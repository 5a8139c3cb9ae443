package kanban

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kban/internal/analytics"
	"kban/internal/kanban/models"
	"kban/internal/tui/shared"
)

// statsTopN caps the per-card lists in the stats overlay
const statsTopN = 5

func (m BoardModel) renderStats() string {
	cols := m.board.Columns()
	sum := analytics.Summarize(cols, m.now())

	row := func(label, value string) string {
		return m.st.statLabel.Render(label) + m.st.statValue.Render(value)
	}
	titles := make(map[string]string, len(cols))
	for _, c := range cols {
		titles[c.ID] = c.Title
	}

	var s strings.Builder
	s.WriteString(m.st.modalTitle.Render("Board statistics"))
	s.WriteString("\n\n")
	s.WriteString(row("Total cards", fmt.Sprint(sum.TotalCards)) + "\n")
	s.WriteString(row("In flight", fmt.Sprint(sum.CardsInFlight)) + "\n")
	s.WriteString(row("Done last 7 days", fmt.Sprint(sum.Throughput.Last7Days)) + "\n")
	s.WriteString(row("Done last 30 days", fmt.Sprint(sum.Throughput.Last30Days)) + "\n")

	avgCycle := "n/a"
	if sum.HasCycleTime {
		avgCycle = analytics.Format(sum.AverageCycle)
	}
	s.WriteString(row("Average cycle time", avgCycle) + "\n")

	avgReverse := "n/a"
	if sum.HasReverseTime {
		avgReverse = analytics.Format(sum.AverageReverse)
	}
	s.WriteString(row("Average reverse time", avgReverse) + "\n")

	s.WriteString(m.renderDurations("Slowest cycles", sum.CycleTimes, titles))
	s.WriteString(m.renderDurations("Longest reversals", sum.ReverseTimes, titles))

	box := m.st.modalBox.Render(strings.TrimRight(s.String(), "\n"))
	hint := m.st.help.Render("press any key to close")
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center,
		shared.CenterWithBottomHints(box, hint, m.height))
}

func (m BoardModel) renderDurations(title string, ds []analytics.CardDuration, columns map[string]string) string {
	if len(ds) == 0 {
		return ""
	}

	var s strings.Builder
	s.WriteString("\n" + m.st.columnTitle.Render(title) + "\n")
	for i, d := range ds {
		if i == statsTopN {
			s.WriteString(m.st.cardDetail.Render(fmt.Sprintf("  and %d more", len(ds)-statsTopN)) + "\n")
			break
		}
		line := fmt.Sprintf("  %-8s %s", analytics.Format(d.Duration), truncate(cardLabel(d.Card), 32))
		if col := columns[d.ColumnID]; col != "" {
			line += m.st.cardDetail.Render(" · " + col)
		}
		s.WriteString(line + "\n")
	}
	return s.String()
}

func cardLabel(c models.Card) string {
	if t := strings.Join(strings.Fields(c.Title), " "); t != "" {
		return t
	}
	return "(untitled)"
}
