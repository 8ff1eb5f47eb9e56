package completion

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/shelfmap/pkg/books"
	"github.com/agentstation/shelfmap/pkg/catalogs"
	"github.com/agentstation/shelfmap/pkg/reconciler"
)

func loader(t *testing.T) Loader {
	t.Helper()
	r, err := reconciler.New()
	require.NoError(t, err)
	result, err := r.Reconcile(context.Background(), []books.Record{
		{"isbn": "978-84-1", "titulo": "Uno", "idioma": "Español", "año_public": "2001"},
		{"isbn": "978-85-2", "titulo": "Dos", "idioma": "Inglés", "año_public": "1999"},
	}, nil)
	require.NoError(t, err)
	cat := catalogs.New(result)
	return func(context.Context) (*catalogs.Catalog, error) { return cat, nil }
}

func cmd() *cobra.Command {
	c := &cobra.Command{Use: "test"}
	c.SetContext(context.Background())
	return c
}

func TestISBNs(t *testing.T) {
	complete := ISBNs(loader(t))

	got, dir := complete(cmd(), nil, "978-84")
	assert.Equal(t, []string{"978841\tUno"}, got)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, dir)

	got, _ = complete(cmd(), nil, "")
	assert.Len(t, got, 2)

	got, _ = complete(cmd(), []string{"978841"}, "")
	assert.Empty(t, got)
}

func TestFacetValues(t *testing.T) {
	load := loader(t)

	got, _ := Languages(load)(cmd(), nil, "in")
	assert.Equal(t, []string{"Inglés"}, got)

	got, _ = Years(load)(cmd(), nil, "")
	assert.Equal(t, []string{"2001", "1999"}, got)
}

func TestLoadFailureGivesNoSuggestions(t *testing.T) {
	failing := func(context.Context) (*catalogs.Catalog, error) { return nil, errors.New("offline") }

	got, dir := ISBNs(failing)(cmd(), nil, "")
	assert.Nil(t, got)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, dir)

	got, _ = Languages(failing)(&cobra.Command{}, nil, "")
	assert.Nil(t, got)
}

func TestFixed(t *testing.T) {
	got, dir := Fixed("table", "json", "yaml")(cmd(), nil, "")
	assert.Equal(t, []string{"table", "json", "yaml"}, got)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, dir)
}
