// Package settings reads and writes the display preferences stored next to
// the board.
package settings

import (
	"errors"
	"strconv"

	"kban/internal/logs"
	"kban/internal/storage"
)

// Storage keys
const (
	KeyBoard               = "kanban-board-state"
	KeyTheme               = "kanban-theme"
	KeyThemePreference     = "kanban-theme-preference"
	KeyCardDensity         = "kanban-card-density"
	KeyColumnResizing      = "kanban-column-resizing"
	KeyDeleteColumnWarning = "kanban-delete-column-warning"
)

// DefaultTheme is applied when no valid theme id is stored
const DefaultTheme = "default"

// Themes lists the known theme ids in cycling order
var Themes = []string{DefaultTheme, "ocean", "forest", "sunset", "mono"}

type Density string

const (
	DensitySmall  Density = "small"
	DensityMedium Density = "medium"
	DensityLarge  Density = "large"
)

// ParseDensity returns the density named by s, or medium
func ParseDensity(s string) Density {
	switch d := Density(s); d {
	case DensitySmall, DensityMedium, DensityLarge:
		return d
	}
	return DensityMedium
}

// Next cycles small, medium, large
func (d Density) Next() Density {
	switch d {
	case DensitySmall:
		return DensityMedium
	case DensityMedium:
		return DensityLarge
	default:
		return DensitySmall
	}
}

type Preference string

const (
	PreferenceLight  Preference = "light"
	PreferenceDark   Preference = "dark"
	PreferenceSystem Preference = "system"
)

// ParsePreference returns the preference named by s, or system
func ParsePreference(s string) Preference {
	switch p := Preference(s); p {
	case PreferenceLight, PreferenceDark, PreferenceSystem:
		return p
	}
	return PreferenceSystem
}

// ValidTheme reports whether id is in the catalog
func ValidTheme(id string) bool {
	for _, t := range Themes {
		if t == id {
			return true
		}
	}
	return false
}

// NextTheme returns the theme after id, wrapping around. Unknown ids
// restart the cycle.
func NextTheme(id string) string {
	for i, t := range Themes {
		if t == id {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ParseFlag reads a stored boolean. ok is false for anything other than
// "true" or "false".
func ParseFlag(s string) (value, ok bool) {
	switch s {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

type Settings struct {
	Theme                 string
	ThemePreference       Preference
	CardDensity           Density
	ColumnResizingEnabled bool
	DeleteColumnWarning   bool
}

func Defaults() Settings {
	return Settings{
		Theme:                 DefaultTheme,
		ThemePreference:       PreferenceSystem,
		CardDensity:           DensityMedium,
		ColumnResizingEnabled: false,
		DeleteColumnWarning:   true,
	}
}

// Load reads every setting from store. Missing or invalid values, and
// values that could not be read, fall back to Defaults.
func Load(store storage.Store) Settings {
	s := Defaults()
	log := logs.Logger.WithField("component", "settings")

	get := func(key string) (string, bool) {
		v, ok, err := store.Get(key)
		if err != nil {
			log.WithError(err).WithField("key", key).Warn("failed to read setting")
			return "", false
		}
		return v, ok
	}

	if v, ok := get(KeyTheme); ok && ValidTheme(v) {
		s.Theme = v
	}
	if v, ok := get(KeyThemePreference); ok {
		s.ThemePreference = ParsePreference(v)
	}
	if v, ok := get(KeyCardDensity); ok {
		s.CardDensity = ParseDensity(v)
	}
	if v, ok := get(KeyColumnResizing); ok {
		if b, valid := ParseFlag(v); valid {
			s.ColumnResizingEnabled = b
		}
	}
	if v, ok := get(KeyDeleteColumnWarning); ok {
		if b, valid := ParseFlag(v); valid {
			s.DeleteColumnWarning = b
		}
	}
	return s
}

// Save writes every setting. An empty theme removes the stored theme so the
// default applies on the next Load.
func Save(store storage.Store, s Settings) error {
	var errs []error
	if s.Theme == "" {
		errs = append(errs, store.Remove(KeyTheme))
	} else {
		errs = append(errs, store.Set(KeyTheme, s.Theme))
	}
	errs = append(errs,
		store.Set(KeyThemePreference, string(ParsePreference(string(s.ThemePreference)))),
		store.Set(KeyCardDensity, string(ParseDensity(string(s.CardDensity)))),
		store.Set(KeyColumnResizing, strconv.FormatBool(s.ColumnResizingEnabled)),
		store.Set(KeyDeleteColumnWarning, strconv.FormatBool(s.DeleteColumnWarning)),
	)
	return errors.Join(errs...)
}
