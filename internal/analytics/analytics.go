// Package analytics derives flow metrics from the column history of cards.
// Every function is read-only over the columns it is given.
package analytics

import (
	"sort"
	"time"

	"kban/internal/kanban/models"
)

const (
	week  = 7 * 24 * time.Hour
	month = 30 * 24 * time.Hour
)

// CardDuration pairs a card, the column it currently sits in, and a
// measured duration.
type CardDuration struct {
	Card     models.Card
	ColumnID string
	Duration time.Duration
}

type ThroughputStats struct {
	Last7Days  int
	Last30Days int
}

func TotalCards(cols []models.Column) int {
	total := 0
	for _, col := range cols {
		total += len(col.Cards)
	}
	return total
}

// CardsInFlight counts cards outside the first and last columns
func CardsInFlight(cols []models.Column) int {
	if len(cols) < 3 {
		return 0
	}
	return TotalCards(cols[1 : len(cols)-1])
}

// Throughput counts cards in the last column that entered it within the
// last 7 and 30 days. Both windows include their boundary.
func Throughput(cols []models.Column, now models.Timestamp) ThroughputStats {
	var stats ThroughputStats
	if len(cols) == 0 {
		return stats
	}

	last := cols[len(cols)-1]
	for _, card := range last.Cards {
		entry, ok := card.LastEntry()
		if !ok || entry.ColumnID != last.ID {
			continue
		}
		age := now.Sub(entry.EnteredAt)
		if age <= week {
			stats.Last7Days++
		}
		if age <= month {
			stats.Last30Days++
		}
	}
	return stats
}

// CardCycleTimes measures first to latest history entry for every card
// that has moved at least once, longest first.
func CardCycleTimes(cols []models.Column) []CardDuration {
	var out []CardDuration
	for _, col := range cols {
		for _, card := range col.Cards {
			h := card.ColumnHistory
			if len(h) < 2 {
				continue
			}
			out = append(out, CardDuration{
				Card:     card,
				ColumnID: col.ID,
				Duration: h[len(h)-1].EnteredAt.Sub(h[0].EnteredAt),
			})
		}
	}
	sortDesc(out)
	return out
}

// AverageCycleTime is the mean of CardCycleTimes. ok is false when no card
// has moved.
func AverageCycleTime(cols []models.Column) (avg time.Duration, ok bool) {
	return mean(CardCycleTimes(cols))
}

// CardReverseTimes totals, per card, the time spent after each move to a
// column that sits left of the one it came from. A stay that is still
// ongoing is counted up to now. Moves involving deleted columns are
// ignored, and cards that never moved backwards are left out.
func CardReverseTimes(cols []models.Column, now models.Timestamp) []CardDuration {
	index := models.ColumnIndexes(cols)

	var out []CardDuration
	for _, col := range cols {
		for _, card := range col.Cards {
			h := card.ColumnHistory
			var total time.Duration
			for i := 0; i+1 < len(h); i++ {
				from, okFrom := index[h[i].ColumnID]
				to, okTo := index[h[i+1].ColumnID]
				if !okFrom || !okTo || to >= from {
					continue
				}
				end := now
				if i+2 < len(h) {
					end = h[i+2].EnteredAt
				}
				total += end.Sub(h[i+1].EnteredAt)
			}
			if total == 0 {
				continue
			}
			out = append(out, CardDuration{Card: card, ColumnID: col.ID, Duration: total})
		}
	}
	sortDesc(out)
	return out
}

// AverageReverseTime is the mean of CardReverseTimes. ok is false when no
// card has moved backwards.
func AverageReverseTime(cols []models.Column, now models.Timestamp) (avg time.Duration, ok bool) {
	return mean(CardReverseTimes(cols, now))
}

func sortDesc(ds []CardDuration) {
	sort.SliceStable(ds, func(i, j int) bool {
		return ds[i].Duration > ds[j].Duration
	})
}

func mean(ds []CardDuration) (time.Duration, bool) {
	if len(ds) == 0 {
		return 0, false
	}
	var sum time.Duration
	for _, d := range ds {
		sum += d.Duration
	}
	return sum / time.Duration(len(ds)), true
}
