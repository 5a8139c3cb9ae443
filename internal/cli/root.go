// Package cli implements the kban command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"kban/internal/config"
	"kban/internal/kanban/board"
	"kban/internal/logs"
	"kban/internal/settings"
	"kban/internal/storage"
	"kban/internal/undo"
)

// Version is set at build time
var Version = "dev"

type rootFlags struct {
	dataDir   string
	storage   string
	ephemeral bool
}

// Session is everything a command needs once the board is loaded
type Session struct {
	Config *config.Config
	Store  storage.Store
	Board  *board.Board
}

// Settings loads the current display settings
func (s *Session) Settings() settings.Settings {
	return settings.Load(s.Store)
}

type sessionKey struct{}

func sessionFrom(ctx context.Context) *Session {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	if !ok {
		panic("cli: command run without a session")
	}
	return s
}

// RunTUI launches the interactive board. It is set by main so this package
// does not depend on the TUI.
var RunTUI func(s *Session) error

// openStore is replaced in tests
var openStore = storage.Open

// sessionHolder keeps the session a run opened so it can be closed after
// the command returns, whether or not it failed.
type sessionHolder struct {
	session *Session
}

func (h *sessionHolder) close() error {
	if h.session == nil {
		return nil
	}
	err := h.session.Store.Close()
	logs.Close()
	h.session = nil
	return err
}

// newRootCmd creates the top-level "kban" command with every subcommand,
// along with the holder of the session it opens
func newRootCmd() (*cobra.Command, *sessionHolder) {
	var flags rootFlags
	holder := &sessionHolder{}

	root := &cobra.Command{
		Use:   "kban",
		Short: "A local kanban board",
		Long: `kban keeps a kanban board on your machine.

Running kban in a terminal without a command opens the interactive board.
When output is not a terminal the board is printed instead.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			s, err := openSession(flags)
			if err != nil {
				return err
			}
			holder.session = s

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = context.WithValue(ctx, sessionKey{}, s)
			cmd.SetContext(board.NewContext(ctx, s.Board))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s := sessionFrom(cmd.Context())
			if RunTUI != nil && isatty.IsTerminal(os.Stdout.Fd()) {
				logs.Logger.Info("starting app in TUI mode")
				return RunTUI(s)
			}
			printBoard(cmd.OutOrStdout(), s.Board.Columns())
			return nil
		},
	}

	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: ~/kban)")
	root.PersistentFlags().StringVar(&flags.storage, "storage", "", "storage backend: file, sqlite, badger or memory")
	root.PersistentFlags().BoolVar(&flags.ephemeral, "ephemeral", false, "keep the board in memory only")

	root.AddCommand(
		newColumnCmd(),
		newCardCmd(),
		newSearchCmd(),
		newStatsCmd(),
		newExportCmd(),
		newImportCmd(),
		newResetCmd(),
		newSettingsCmd(),
		newVersionCmd(),
	)

	return root, holder
}

// execute runs root and then closes the session it opened. Cobra skips
// post-run hooks when a command fails, so the close happens here.
func execute(root *cobra.Command, holder *sessionHolder) (err error) {
	defer func() {
		err = errors.Join(err, holder.close())
	}()
	return root.Execute()
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	root, holder := newRootCmd()
	if err := execute(root, holder); err != nil {
		os.Exit(1)
	}
}

func openSession(flags rootFlags) (*Session, error) {
	cliFlags := config.CLIFlags{DataDir: flags.dataDir, Storage: flags.storage}
	if flags.ephemeral {
		cliFlags.Storage = config.StorageMemory
	}

	if err := config.EnsureConfigFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create config file: %v\n", err)
	}

	cfg, err := config.Load(cliFlags)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("create directories: %w", err)
	}
	if err := logs.Initialize(cfg.LogDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize logger: %v\n", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	b, err := board.New(store, board.WithHistory(
		undo.WithMaxHistory(cfg.MaxHistory),
		undo.WithTracking(cfg.TrackHistory),
	))
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("load board: %w", err)
	}

	return &Session{Config: cfg, Store: store, Board: b}, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "kban %s\n", Version)
		},
	}
}
