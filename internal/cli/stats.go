package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"kban/internal/analytics"
	"kban/internal/kanban/board"
	"kban/internal/kanban/models"
)

func newStatsCmd() *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show flow metrics for the board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := analytics.Summarize(board.FromContext(cmd.Context()).Columns(), models.Now())
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Total cards:      %d\n", s.TotalCards)
			fmt.Fprintf(out, "In flight:        %d\n", s.CardsInFlight)
			fmt.Fprintf(out, "Done (7 days):    %d\n", s.Throughput.Last7Days)
			fmt.Fprintf(out, "Done (30 days):   %d\n", s.Throughput.Last30Days)
			fmt.Fprintf(out, "Avg cycle time:   %s\n", average(s.AverageCycle, s.HasCycleTime))
			fmt.Fprintf(out, "Avg reverse time: %s\n", average(s.AverageReverse, s.HasReverseTime))

			printDurations(cmd, "Longest cycle times", s.CycleTimes, top)
			printDurations(cmd, "Most time moved back", s.ReverseTimes, top)
			return nil
		},
	}
	cmd.Flags().IntVar(&top, "top", 5, "number of cards listed per metric")
	return cmd
}

func average(d time.Duration, ok bool) string {
	if !ok {
		return "n/a"
	}
	return analytics.Format(d)
}

func printDurations(cmd *cobra.Command, heading string, ds []analytics.CardDuration, top int) {
	if len(ds) == 0 || top <= 0 {
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n%s:\n", heading)
	for i, d := range ds {
		if i == top {
			break
		}
		fmt.Fprintf(out, "  %-8s %s\n", analytics.Format(d.Duration), d.Card.Title)
	}
}
