package preferences

import (
	"context"
	"sync"
)

// Toggle button labels. Each label names the mode the button switches to.
const (
	LabelSwitchToLight = "🌞 Claro"
	LabelSwitchToDark  = "🌜 Oscuro"
	LabelSwitchToGrid  = "🔳 Rejilla"
	LabelSwitchToList  = "🗂️ Lista"
)

// ThemeController owns the current theme and persists changes.
type ThemeController struct {
	mu    sync.RWMutex
	store Store
	theme Theme
}

// NewThemeController returns a controller on the light theme until Init runs.
func NewThemeController(store Store) *ThemeController {
	return &ThemeController{store: store, theme: ThemeLight}
}

// Init loads the saved theme. Without a valid saved value the theme follows
// the system preference.
func (c *ThemeController) Init(ctx context.Context, prefersDark bool) (Theme, error) {
	saved, ok, err := c.store.Get(ctx, KeyTheme)
	if err != nil {
		return c.Current(), err
	}
	theme, valid := ParseTheme(saved)
	if !ok || !valid {
		theme = ThemeLight
		if prefersDark {
			theme = ThemeDark
		}
	}
	c.mu.Lock()
	c.theme = theme
	c.mu.Unlock()
	return theme, nil
}

// Toggle flips between light and dark and saves the result.
func (c *ThemeController) Toggle(ctx context.Context) (Theme, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := ThemeDark
	if c.theme == ThemeDark {
		next = ThemeLight
	}
	if err := c.store.Set(ctx, KeyTheme, string(next)); err != nil {
		return c.theme, err
	}
	c.theme = next
	return next, nil
}

// Set saves an explicit theme.
func (c *ThemeController) Set(ctx context.Context, theme Theme) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.Set(ctx, KeyTheme, string(theme)); err != nil {
		return err
	}
	c.theme = theme
	return nil
}

// Current returns the active theme.
func (c *ThemeController) Current() Theme {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.theme
}

// Label returns the toggle button text for the active theme.
func (c *ThemeController) Label() string {
	return ThemeLabel(c.Current())
}

// ThemeLabel returns the toggle button text shown while theme is active.
func ThemeLabel(theme Theme) string {
	if theme == ThemeDark {
		return LabelSwitchToLight
	}
	return LabelSwitchToDark
}

// ViewController owns the current view mode and persists changes.
type ViewController struct {
	mu    sync.RWMutex
	store Store
	view  ViewMode
}

// NewViewController returns a controller on grid view until Init runs.
func NewViewController(store Store) *ViewController {
	return &ViewController{store: store, view: ViewGrid}
}

// Init loads the saved view mode, defaulting to grid.
func (c *ViewController) Init(ctx context.Context) (ViewMode, error) {
	saved, _, err := c.store.Get(ctx, KeyView)
	if err != nil {
		return c.Current(), err
	}
	view, ok := ParseViewMode(saved)
	if !ok {
		view = ViewGrid
	}
	c.mu.Lock()
	c.view = view
	c.mu.Unlock()
	return view, nil
}

// Toggle flips between grid and list and saves the result.
func (c *ViewController) Toggle(ctx context.Context) (ViewMode, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := ViewList
	if c.view == ViewList {
		next = ViewGrid
	}
	if err := c.store.Set(ctx, KeyView, string(next)); err != nil {
		return c.view, err
	}
	c.view = next
	return next, nil
}

// Set saves an explicit view mode.
func (c *ViewController) Set(ctx context.Context, view ViewMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.Set(ctx, KeyView, string(view)); err != nil {
		return err
	}
	c.view = view
	return nil
}

// Current returns the active view mode.
func (c *ViewController) Current() ViewMode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.view
}

// Label returns the toggle button text for the active view mode.
func (c *ViewController) Label() string {
	return ViewLabel(c.Current())
}

// ViewLabel returns the toggle button text shown while view is active.
func ViewLabel(view ViewMode) string {
	if view == ViewList {
		return LabelSwitchToGrid
	}
	return LabelSwitchToList
}

// Load reads both settings with their defaults applied.
func Load(ctx context.Context, store Store, prefersDark bool) (Snapshot, error) {
	theme, err := NewThemeController(store).Init(ctx, prefersDark)
	if err != nil {
		return Snapshot{}, err
	}
	view, err := NewViewController(store).Init(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{View: view, Theme: theme}, nil
}
