// Package preferences persists the two user-facing display settings: the
// catalog view mode and the color theme. Values are plain strings stored
// under fixed keys so any key/value backend can hold them.
package preferences

import (
	"context"
)

// Storage keys.
const (
	KeyView  = "catalog_view"
	KeyTheme = "theme"
)

// ViewMode is how the catalog lays out cards.
type ViewMode string

// View modes.
const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// Theme is the color theme.
type Theme string

// Themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseViewMode returns the view mode for s, or false when s is not one.
func ParseViewMode(s string) (ViewMode, bool) {
	switch v := ViewMode(s); v {
	case ViewGrid, ViewList:
		return v, true
	}
	return "", false
}

// ParseTheme returns the theme for s, or false when s is not one.
func ParseTheme(s string) (Theme, bool) {
	switch t := Theme(s); t {
	case ThemeLight, ThemeDark:
		return t, true
	}
	return "", false
}

// Store is a string key/value store for preferences.
type Store interface {
	// Get returns the value under key and whether it was set.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key.
	Set(ctx context.Context, key, value string) error

	// Close releases the store's resources.
	Close() error
}

// Snapshot is the pair of display settings at a point in time.
type Snapshot struct {
	View  ViewMode `json:"view" yaml:"view"`
	Theme Theme    `json:"theme" yaml:"theme"`
}
