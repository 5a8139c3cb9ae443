package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"kban/internal/kanban/board"
	"kban/internal/kanban/models"
	"kban/internal/kanban/transfer"
	"kban/internal/logs"
	"kban/internal/settings"
)

func newExportCmd() *cobra.Command {
	var (
		output   string
		markdown bool
		name     string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the board and settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := sessionFrom(cmd.Context())
			cols := s.Board.Columns()

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}
				defer f.Close()
				w = f
			}

			if markdown {
				return transfer.WriteMarkdown(w, name, cols)
			}

			data, err := transfer.Export(cols, s.Settings(), time.Now())
			if err != nil {
				return err
			}
			if _, err := w.Write(append(data, '\n')); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			logs.Logger.WithField("columns", len(cols)).Info("board exported")
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "write a markdown outline instead of JSON")
	cmd.Flags().StringVar(&name, "name", "Board", "board name used as the markdown heading")
	return cmd
}

func newImportCmd() *cobra.Command {
	var markdown bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the board with an export file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := sessionFrom(cmd.Context())
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			if markdown {
				_, cols, err := transfer.ReadMarkdown(data, models.Now())
				if err != nil {
					return fmt.Errorf("parse markdown: %w", err)
				}
				s.Board.SetColumns(cols)
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d column(s)\n", len(cols))
				return s.Board.LastError()
			}

			return applyImport(cmd, s, data)
		},
	}
	cmd.Flags().BoolVar(&markdown, "markdown", false, "read a markdown outline instead of JSON")
	return cmd
}

// applyImport loads an export document into the session
func applyImport(cmd *cobra.Command, s *Session, data []byte) error {
	p, err := transfer.Import(data, models.Now())
	if err != nil {
		return err
	}

	if p.HasBoard {
		s.Board.SetColumns(p.Columns)
		if err := s.Board.LastError(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d column(s)\n", len(p.Columns))
	}
	if p.HasSettings {
		if err := settings.Save(s.Store, p.Settings); err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Imported settings")
	}
	logs.Logger.WithField("version", p.Version).WithField("board", p.HasBoard).Info("import applied")
	return nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func newResetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Remove every column and card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("this deletes the whole board; pass --yes to confirm")
			}
			b := board.FromContext(cmd.Context())
			b.ResetBoard()
			fmt.Fprintln(cmd.OutOrStdout(), "Board cleared")
			return b.LastError()
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the reset")
	return cmd
}
