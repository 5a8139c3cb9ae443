package analytics

import (
	"time"

	"kban/internal/kanban/models"
)

// Summary bundles every metric for display
type Summary struct {
	TotalCards    int
	CardsInFlight int
	Throughput    ThroughputStats

	CycleTimes     []CardDuration
	AverageCycle   time.Duration
	HasCycleTime   bool
	ReverseTimes   []CardDuration
	AverageReverse time.Duration
	HasReverseTime bool
}

func Summarize(cols []models.Column, now models.Timestamp) Summary {
	s := Summary{
		TotalCards:    TotalCards(cols),
		CardsInFlight: CardsInFlight(cols),
		Throughput:    Throughput(cols, now),
		CycleTimes:    CardCycleTimes(cols),
		ReverseTimes:  CardReverseTimes(cols, now),
	}
	s.AverageCycle, s.HasCycleTime = mean(s.CycleTimes)
	s.AverageReverse, s.HasReverseTime = mean(s.ReverseTimes)
	return s
}
