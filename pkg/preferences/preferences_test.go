package preferences_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/shelfmap/pkg/errors"
	"github.com/agentstation/shelfmap/pkg/preferences"
)

func storeContract(t *testing.T, store preferences.Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, preferences.KeyTheme)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, preferences.KeyTheme, "dark"))
	require.NoError(t, store.Set(ctx, preferences.KeyView, "list"))
	require.NoError(t, store.Set(ctx, preferences.KeyTheme, "light"))

	v, ok, err := store.Get(ctx, preferences.KeyTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", v)

	v, ok, err = store.Get(ctx, preferences.KeyView)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "list", v)
}

func TestMemoryStore(t *testing.T) {
	store := preferences.NewMemory()
	defer store.Close()
	storeContract(t, store)
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")
	store := preferences.NewFile(path)
	storeContract(t, store)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "catalog_view: list")

	reopened := preferences.NewFile(path)
	v, ok, err := reopened.Get(context.Background(), preferences.KeyView)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "list", v)
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: [unterminated"), 0o644))

	_, _, err := preferences.NewFile(path).Get(context.Background(), preferences.KeyTheme)
	var perr *errors.ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.db")

	store, err := preferences.OpenSQLite(ctx, path)
	require.NoError(t, err)
	storeContract(t, store)
	require.NoError(t, store.Close())

	reopened, err := preferences.Open(ctx, "sqlite://"+path)
	require.NoError(t, err)
	defer reopened.Close()
	v, ok, err := reopened.Get(ctx, preferences.KeyTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", v)
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("SHELFMAP_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("SHELFMAP_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	store, err := preferences.OpenPostgres(ctx, dsn)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(ctx, preferences.KeyTheme, "dark"))
	v, ok, err := store.Get(ctx, preferences.KeyTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := preferences.Open(ctx, "")
	require.NoError(t, err)
	assert.IsType(t, &preferences.Memory{}, s)

	s, err = preferences.Open(ctx, "file:///tmp/x.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.yaml", s.(*preferences.File).Path())

	s, err = preferences.Open(ctx, "prefs.yaml")
	require.NoError(t, err)
	assert.IsType(t, &preferences.File{}, s)

	_, err = preferences.Open(ctx, "redis://localhost")
	assert.True(t, errors.IsValidationError(err))
}

func TestThemeController(t *testing.T) {
	ctx := context.Background()

	t.Run("system preference when nothing saved", func(t *testing.T) {
		c := preferences.NewThemeController(preferences.NewMemory())
		theme, err := c.Init(ctx, true)
		require.NoError(t, err)
		assert.Equal(t, preferences.ThemeDark, theme)
		assert.Equal(t, "🌞 Claro", c.Label())

		theme, err = preferences.NewThemeController(preferences.NewMemory()).Init(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, preferences.ThemeLight, theme)
	})

	t.Run("saved value wins", func(t *testing.T) {
		store := preferences.NewMemory()
		require.NoError(t, store.Set(ctx, preferences.KeyTheme, "light"))
		theme, err := preferences.NewThemeController(store).Init(ctx, true)
		require.NoError(t, err)
		assert.Equal(t, preferences.ThemeLight, theme)
	})

	t.Run("invalid saved value falls back", func(t *testing.T) {
		store := preferences.NewMemory()
		require.NoError(t, store.Set(ctx, preferences.KeyTheme, "sepia"))
		theme, err := preferences.NewThemeController(store).Init(ctx, true)
		require.NoError(t, err)
		assert.Equal(t, preferences.ThemeDark, theme)
	})

	t.Run("toggle persists", func(t *testing.T) {
		store := preferences.NewMemory()
		c := preferences.NewThemeController(store)
		_, err := c.Init(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, "🌜 Oscuro", c.Label())

		theme, err := c.Toggle(ctx)
		require.NoError(t, err)
		assert.Equal(t, preferences.ThemeDark, theme)
		v, _, _ := store.Get(ctx, preferences.KeyTheme)
		assert.Equal(t, "dark", v)

		theme, err = c.Toggle(ctx)
		require.NoError(t, err)
		assert.Equal(t, preferences.ThemeLight, theme)
	})
}

func TestViewController(t *testing.T) {
	ctx := context.Background()
	store := preferences.NewMemory()
	c := preferences.NewViewController(store)

	view, err := c.Init(ctx)
	require.NoError(t, err)
	assert.Equal(t, preferences.ViewGrid, view)
	assert.Equal(t, "🗂️ Lista", c.Label())

	view, err = c.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, preferences.ViewList, view)
	assert.Equal(t, "🔳 Rejilla", c.Label())

	again, err := preferences.NewViewController(store).Init(ctx)
	require.NoError(t, err)
	assert.Equal(t, preferences.ViewList, again)

	require.NoError(t, c.Set(ctx, preferences.ViewGrid))
	snap, err := preferences.Load(ctx, store, true)
	require.NoError(t, err)
	assert.Equal(t, preferences.Snapshot{View: preferences.ViewGrid, Theme: preferences.ThemeDark}, snap)
}
