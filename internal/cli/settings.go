package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"kban/internal/settings"
)

func newSettingsCmd() *cobra.Command {
	var (
		theme      string
		preference string
		density    string
		resizing   string
		warning    string
	)

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change display settings",
		Long: `Show or change display settings.

With flags, the given settings are changed. Without flags in a terminal, an
interactive form is shown; otherwise the current settings are printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := sessionFrom(cmd.Context())
			current := s.Settings()
			flags := cmd.Flags()

			changed := flags.Changed("theme") || flags.Changed("preference") || flags.Changed("density") ||
				flags.Changed("column-resizing") || flags.Changed("delete-warning")

			switch {
			case changed:
				if flags.Changed("theme") {
					if !settings.ValidTheme(theme) {
						return fmt.Errorf("unknown theme %q (choose from %v)", theme, settings.Themes)
					}
					current.Theme = theme
				}
				if flags.Changed("preference") {
					current.ThemePreference = settings.ParsePreference(preference)
				}
				if flags.Changed("density") {
					current.CardDensity = settings.ParseDensity(density)
				}
				if flags.Changed("column-resizing") {
					b, ok := settings.ParseFlag(resizing)
					if !ok {
						return fmt.Errorf("--column-resizing must be true or false")
					}
					current.ColumnResizingEnabled = b
				}
				if flags.Changed("delete-warning") {
					b, ok := settings.ParseFlag(warning)
					if !ok {
						return fmt.Errorf("--delete-warning must be true or false")
					}
					current.DeleteColumnWarning = b
				}

			case isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd()):
				var err error
				current, err = settingsForm(current)
				if err != nil {
					return err
				}

			default:
				printSettings(cmd, current)
				return nil
			}

			if err := settings.Save(s.Store, current); err != nil {
				return err
			}
			printSettings(cmd, current)
			return nil
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "", "color theme")
	cmd.Flags().StringVar(&preference, "preference", "", "light, dark or system")
	cmd.Flags().StringVar(&density, "density", "", "card density: small, medium or large")
	cmd.Flags().StringVar(&resizing, "column-resizing", "", "true or false")
	cmd.Flags().StringVar(&warning, "delete-warning", "", "confirm before deleting a column: true or false")
	return cmd
}

func settingsForm(current settings.Settings) (settings.Settings, error) {
	theme := current.Theme
	preference := string(current.ThemePreference)
	density := string(current.CardDensity)
	resizing := current.ColumnResizingEnabled
	warning := current.DeleteColumnWarning

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(huh.NewOptions(settings.Themes...)...).
				Value(&theme),
			huh.NewSelect[string]().
				Title("Light or dark").
				Options(huh.NewOptions("system", "light", "dark")...).
				Value(&preference),
			huh.NewSelect[string]().
				Title("Card density").
				Options(huh.NewOptions("small", "medium", "large")...).
				Value(&density),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Allow column resizing?").
				Value(&resizing),
			huh.NewConfirm().
				Title("Confirm before deleting a column?").
				Value(&warning),
		),
	)
	if err := form.Run(); err != nil {
		return current, err
	}

	return settings.Settings{
		Theme:                 theme,
		ThemePreference:       settings.ParsePreference(preference),
		CardDensity:           settings.ParseDensity(density),
		ColumnResizingEnabled: resizing,
		DeleteColumnWarning:   warning,
	}, nil
}

func printSettings(cmd *cobra.Command, s settings.Settings) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "theme:           %s\n", s.Theme)
	fmt.Fprintf(out, "preference:      %s\n", s.ThemePreference)
	fmt.Fprintf(out, "density:         %s\n", s.CardDensity)
	fmt.Fprintf(out, "column-resizing: %t\n", s.ColumnResizingEnabled)
	fmt.Fprintf(out, "delete-warning:  %t\n", s.DeleteColumnWarning)
}
