// Package integration exercises the catalog from dataset files through the
// HTTP API and its update stream.
package integration

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/shelfmap"
	"github.com/agentstation/shelfmap/cmd/application"
	"github.com/agentstation/shelfmap/internal/server"
	"github.com/agentstation/shelfmap/pkg/catalogs"
	"github.com/agentstation/shelfmap/pkg/filter"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// numbered returns a primary export of n books titled "Libro <i>".
func numbered(n int) string {
	var b strings.Builder
	b.WriteString("isbn,titulo,autor\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "978%010d,Libro %d,Autor\n", i, i)
	}
	return b.String()
}

func TestIncrementalPaging(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "primary.csv")
	writeFile(t, primary, numbered(30))

	client, err := shelfmap.New(shelfmap.WithPrimaryURL(primary), shelfmap.WithSecondaryURL(""))
	require.NoError(t, err)
	_, err = client.Load(context.Background())
	require.NoError(t, err)

	s := client.NewSession()
	first := s.SetQuery(filter.Query{Text: "libro"})
	require.Len(t, first, 24)
	assert.Equal(t, "Libro 0", first[0].Title)
	assert.True(t, s.HasMore())

	second := s.NextPage()
	require.Len(t, second, 6)
	assert.Equal(t, "Libro 24", second[0].Title)
	assert.Equal(t, "Libro 29", second[5].Title)
	assert.False(t, s.HasMore())
	assert.Empty(t, s.NextPage())
}

func TestMatchedOrTitledFromFiles(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "primary.csv")
	secondary := filepath.Join(dir, "secondary.csv")
	writeFile(t, primary, "\uFEFFISBN,titulo,precio_venta_publico\n978-0-13-468599-1,Effective Java,45\n0000000000,,\n")
	writeFile(t, secondary, "isbn,CP,precio_venta_publico\n9780134685991,CP-A,39.90\n")

	client, err := shelfmap.New(
		shelfmap.WithPrimaryURL("file://"+primary),
		shelfmap.WithSecondaryURL(secondary),
		shelfmap.WithInclusion("matched-or-titled"),
	)
	require.NoError(t, err)

	cat, err := client.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, cat.Len())
	assert.Equal(t, "39.90", cat.Books()[0].Price)
	assert.Equal(t, map[string][]string{"CP-A": {"9780134685991"}}, cat.Categories().Map())
}

func TestReloadNotifiesSubscribers(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "primary.csv")
	writeFile(t, primary, numbered(2))

	client, err := shelfmap.New(shelfmap.WithPrimaryURL(primary), shelfmap.WithSecondaryURL(""))
	require.NoError(t, err)
	app := &application.Mock{
		ShelfmapFunc: func() (shelfmap.Client, error) { return client, nil },
		CatalogFunc: func(ctx context.Context) (*catalogs.Catalog, error) {
			if cat := client.Catalog(); cat.Loaded() {
				return cat, nil
			}
			return client.Load(ctx)
		},
	}

	cfg := server.DefaultConfig()
	cfg.RateLimit = 0
	srv, err := server.New(app, cfg)
	require.NoError(t, err)
	srv.Start()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	_, err = app.Catalog(context.Background())
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/api/v1/updates/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	read := func() map[string]any {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var msg map[string]any
		require.NoError(t, conn.ReadJSON(&msg))
		return msg
	}
	assert.Equal(t, "client.connected", read()["type"])

	writeFile(t, primary, numbered(3))
	resp, err := http.Post(ts.URL+"/api/v1/reload", "application/json", nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	seen := map[string]bool{}
	for len(seen) < 2 {
		seen[read()["type"].(string)] = true
	}
	assert.True(t, seen["catalog.loaded"])
	assert.True(t, seen["book.added"])
	assert.Equal(t, 3, client.Catalog().Len())
}
