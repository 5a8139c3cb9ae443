package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"kban/internal/kanban/board"
	"kban/internal/kanban/operations"
)

func newColumnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "column",
		Aliases: []string{"col"},
		Short:   "Manage columns",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <title>",
			Short: "Add a column at the right end of the board",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				title, err := operations.ValidateTitle(args[0])
				if err != nil {
					return err
				}
				b := board.FromContext(cmd.Context())
				id := b.AddColumn(title)
				fmt.Fprintf(cmd.OutOrStdout(), "Added column %q [%s]\n", title, id)
				return b.LastError()
			},
		},
		&cobra.Command{
			Use:   "rename <column> <title>",
			Short: "Rename a column",
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
				b.UpdateColumn(b.Columns()[i].ID, title)
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed column to %q\n", title)
				return b.LastError()
			},
		},
		&cobra.Command{
			Use:     "rm <column>",
			Aliases: []string{"delete"},
			Short:   "Delete a column and its cards",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				b := board.FromContext(cmd.Context())
				i, err := findColumn(b.Columns(), args[0])
				if err != nil {
					return err
				}
				col := b.Columns()[i]
				b.RemoveColumn(col.ID)
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted column %q and %d card(s)\n", col.Title, len(col.Cards))
				return b.LastError()
			},
		},
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List columns and their cards",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				printBoard(cmd.OutOrStdout(), board.FromContext(cmd.Context()).Columns())
				return nil
			},
		},
		&cobra.Command{
			Use:   "sort <column>",
			Short: "Sort a column's cards by title",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				b := board.FromContext(cmd.Context())
				i, err := findColumn(b.Columns(), args[0])
				if err != nil {
					return err
				}
				b.SortCards(b.Columns()[i].ID)
				fmt.Fprintf(cmd.OutOrStdout(), "Sorted %q\n", b.Columns()[i].Title)
				return b.LastError()
			},
		},
	)
	return cmd
}
