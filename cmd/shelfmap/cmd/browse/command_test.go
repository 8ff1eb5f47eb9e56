package browse

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/shelfmap/pkg/books"
	"github.com/agentstation/shelfmap/pkg/catalogs"
	"github.com/agentstation/shelfmap/pkg/reconciler"
)

func session(t *testing.T, n, pageSize int) *catalogs.Session {
	t.Helper()
	primary := make([]books.Record, n)
	for i := range primary {
		primary[i] = books.Record{
			"isbn":   fmt.Sprintf("97800000000%02d", i),
			"titulo": fmt.Sprintf("Libro %02d", i),
			"idioma": []string{"Español", "Inglés"}[i%2],
		}
	}
	r, err := reconciler.New()
	require.NoError(t, err)
	result, err := r.Reconcile(context.Background(), primary, nil)
	require.NoError(t, err)
	return catalogs.NewSession(catalogs.New(result), pageSize)
}

func TestBrowsePagesOnEnter(t *testing.T) {
	s := session(t, 5, 2)
	var out bytes.Buffer

	err := New(s, &out).Run(context.Background(), strings.NewReader("\n\n\nq\n"))
	require.NoError(t, err)

	text := out.String()
	for i := 0; i < 5; i++ {
		assert.Contains(t, text, fmt.Sprintf("Libro %02d", i))
	}
	assert.Contains(t, text, "No more books.")
	assert.Equal(t, 5, s.Rendered())
	assert.False(t, s.HasMore())
	assert.Equal(t, 2, s.Attachments())
}

func TestBrowseQueryResetsView(t *testing.T) {
	s := session(t, 6, 2)
	var out bytes.Buffer

	input := "\n/libro 03\nlang Inglés\n\nclear\nq\n"
	require.NoError(t, New(s, &out).Run(context.Background(), strings.NewReader(input)))

	text := out.String()
	assert.Contains(t, text, "Libro 03")
	assert.Contains(t, text, "No more books.")
	assert.Equal(t, 2, strings.Count(text, "Libro 00"), "clear shows the first page again")

	// Attach, the opening query and each of the three query changes.
	assert.Equal(t, 5, s.Attachments())
	assert.Equal(t, 2, s.Rendered())
}

func TestBrowseNoMatches(t *testing.T) {
	s := session(t, 3, 2)
	var out bytes.Buffer

	require.NoError(t, New(s, &out).Run(context.Background(), strings.NewReader("/nada\n\nq\n")))
	assert.Contains(t, out.String(), "No books match.")
	assert.Contains(t, out.String(), "No more books.")
}

func TestBrowseShowAndUnknown(t *testing.T) {
	s := session(t, 3, 2)
	var out bytes.Buffer

	input := "show 9780000000001\nshow 123\nfrobnicate\n"
	require.NoError(t, New(s, &out).Run(context.Background(), strings.NewReader(input)))

	text := out.String()
	assert.Contains(t, text, "Sin descripción disponible.")
	assert.Contains(t, text, "not found")
	assert.Contains(t, text, `Unknown command "frobnicate"`)

	_, open := s.Detail()
	assert.False(t, open)
}

func TestBrowseStopsOnCancel(t *testing.T) {
	s := session(t, 3, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(s, &bytes.Buffer{}).Run(ctx, strings.NewReader("\n\n"))
	assert.ErrorIs(t, err, context.Canceled)
}
