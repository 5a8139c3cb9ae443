package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"kban/internal/kanban/board"
	"kban/internal/kanban/dnd"
	"kban/internal/kanban/operations"
	"kban/internal/logs"
)

func newCardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage cards",
	}

	var before string
	mv := &cobra.Command{
		Use:   "mv <card> <column>",
		Short: "Move a card to a column",
		Long: `Move a card to a column.

Without --before the card goes to the top of another column, or to the
bottom when it stays in its own column.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b := board.FromContext(cmd.Context())
			cols := b.Columns()

			ci, cj, err := findCard(cols, args[0])
			if err != nil {
				return err
			}
			ti, err := findColumn(cols, args[1])
			if err != nil {
				return err
			}

			active := dnd.Item{ID: cols[ci].Cards[cj].ID, Kind: dnd.KindCard, ColumnID: cols[ci].ID}
			over := &dnd.Item{ID: cols[ti].ID + "-drop", Kind: dnd.KindColumnDrop, ColumnID: cols[ti].ID}
			if before != "" {
				oi, oj, err := findCard(cols, before)
				if err != nil {
					return err
				}
				if oi != ti {
					return fmt.Errorf("card %q is not in column %q", before, cols[ti].Title)
				}
				over = &dnd.Item{ID: cols[oi].Cards[oj].ID, Kind: dnd.KindCard, ColumnID: cols[oi].ID}
			}

			r := dnd.New(b, nil)
			r.Start(dnd.StartEvent{Active: active})
			outcome, changed := r.End(dnd.EndEvent{Active: active, Over: over})
			logs.Logger.WithFields(logrus.Fields{"outcome": outcome.String(), "changed": changed}).Debug("card moved from cli")

			fmt.Fprintf(cmd.OutOrStdout(), "Moved %q to %q\n", cols[ci].Cards[cj].Title, cols[ti].Title)
			return b.LastError()
		},
	}
	mv.Flags().StringVar(&before, "before", "", "place the card at the position of this card")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <column> <title>",
			Short: "Add a card to the top of a column",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				b := board.FromContext(cmd.Context())
				i, err := findColumn(b.Columns(), args[0])
				if err != nil {
					return err
				}
				title, err := operations.ValidateTitle(args[1])
				if err != nil {
					return err
				}
				id := b.AddCard(b.Columns()[i].ID, title)
				fmt.Fprintf(cmd.OutOrStdout(), "Added card %q [%s]\n", title, id)
				return b.LastError()
			},
		},
		&cobra.Command{
			Use:   "rename <card> <title>",
			Short: "Rename a card",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				b := board.FromContext(cmd.Context())
				cols := b.Columns()
				i, j, err := findCard(cols, args[0])
				if err != nil {
					return err
				}
				title, err := operations.ValidateTitle(args[1])
				if err != nil {
					return err
				}
				b.UpdateCard(cols[i].ID, cols[i].Cards[j].ID, title)
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed card to %q\n", title)
				return b.LastError()
			},
		},
		&cobra.Command{
			Use:     "rm <card>",
			Aliases: []string{"delete"},
			Short:   "Delete a card",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				b := board.FromContext(cmd.Context())
				cols := b.Columns()
				i, j, err := findCard(cols, args[0])
				if err != nil {
					return err
				}
				b.RemoveCard(cols[i].ID, cols[i].Cards[j].ID)
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted card %q\n", cols[i].Cards[j].Title)
				return b.LastError()
			},
		},
		mv,
	)
	return cmd
}
