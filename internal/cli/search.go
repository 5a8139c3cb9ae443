package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"kban/internal/kanban/board"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy search card titles",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			if len([]rune(strings.TrimSpace(query))) < board.MinSearchLength {
				return fmt.Errorf("query must be at least %d characters", board.MinSearchLength)
			}

			matches := board.FromContext(cmd.Context()).Search(query)
			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				fmt.Fprintln(out, "No matching cards")
				return nil
			}
			for _, m := range matches {
				fmt.Fprintf(out, "%s  (%s)  [%s]\n", m.Card.Title, m.ColumnTitle, m.Card.ID)
			}
			return nil
		},
	}
}
