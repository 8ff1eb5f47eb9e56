package sources

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/shelfmap/internal/transport"
	"github.com/agentstation/shelfmap/pkg/books"
	"github.com/agentstation/shelfmap/pkg/errors"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []books.Record
	}{
		{
			name:  "empty input",
			input: "",
			want:  []books.Record{},
		},
		{
			name:  "header only",
			input: "isbn,titulo\n",
			want:  []books.Record{},
		},
		{
			name:  "trims header and values",
			input: " isbn , titulo \n 123 , Rayuela \n",
			want:  []books.Record{{"isbn": "123", "titulo": "Rayuela"}},
		},
		{
			name:  "byte order mark",
			input: "\ufeffisbn,titulo\n1,A\n",
			want:  []books.Record{{"isbn": "1", "titulo": "A"}},
		},
		{
			name:  "short rows and extra cells",
			input: "isbn,titulo,autor\n1,A\n2,B,C,D\n",
			want: []books.Record{
				{"isbn": "1", "titulo": "A"},
				{"isbn": "2", "titulo": "B", "autor": "C"},
			},
		},
		{
			name:  "blank lines skipped",
			input: "isbn\n1\n\n2\n",
			want:  []books.Record{{"isbn": "1"}, {"isbn": "2"}},
		},
		{
			name:  "quoted commas and newlines",
			input: "isbn,resumen\n1,\"uno, dos\ntres\"\n",
			want:  []books.Record{{"isbn": "1", "resumen": "uno, dos\ntres"}},
		},
		{
			name:  "duplicate and empty headers",
			input: "isbn,,isbn,isbn\n1,x,2,3\n",
			want:  []books.Record{{"isbn": "1", "isbn_1": "2", "isbn_2": "3"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCSV(strings.NewReader(tt.input))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseCSV() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCSVErrorLine(t *testing.T) {
	err := csvError(&csv.ParseError{StartLine: 3, Line: 4, Column: 2, Err: csv.ErrQuote})
	var perr *errors.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "csv", perr.Format)
	assert.Equal(t, 4, perr.Line)
	assert.ErrorIs(t, err, csv.ErrQuote)
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))
			_, _ = w.Write([]byte("isbn,titulo\n1,Uno\n"))
		case "/missing":
			http.Error(w, "no such sheet", http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	client := transport.New()

	t.Run("ok", func(t *testing.T) {
		src, err := Open(ctx, Primary, srv.URL+"/ok", WithClient(client))
		require.NoError(t, err)
		recs, err := Load(ctx, src)
		require.NoError(t, err)
		assert.Equal(t, []books.Record{{"isbn": "1", "titulo": "Uno"}}, recs)
	})

	t.Run("not found", func(t *testing.T) {
		src, err := Open(ctx, Secondary, srv.URL+"/missing", WithClient(client))
		require.NoError(t, err)
		_, err = Load(ctx, src)
		require.Error(t, err)

		var serr *errors.SourceError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, Secondary, serr.Source)
		assert.True(t, errors.IsSourceUnavailable(err))
		assert.True(t, errors.IsNotFound(err))
		assert.Contains(t, err.Error(), "no such sheet")
	})

	t.Run("server error", func(t *testing.T) {
		src, err := Open(ctx, Primary, srv.URL+"/boom", WithClient(client))
		require.NoError(t, err)
		_, err = Load(ctx, src)
		var apiErr *errors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	})
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte("isbn\n42\n"), 0o644))

	ctx := context.Background()
	for _, uri := range []string{path, "file://" + path} {
		src, err := Open(ctx, Primary, uri)
		require.NoError(t, err)
		recs, err := Load(ctx, src)
		require.NoError(t, err)
		assert.Equal(t, []books.Record{{"isbn": "42"}}, recs)
	}

	src, err := Open(ctx, Primary, filepath.Join(dir, "nope.csv"))
	require.NoError(t, err)
	_, err = Load(ctx, src)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.True(t, errors.IsSourceUnavailable(err))
}

func TestOpenRejects(t *testing.T) {
	ctx := context.Background()

	_, err := Open(ctx, Primary, "")
	assert.True(t, errors.IsValidationError(err))

	_, err = Open(ctx, Primary, "ftp://example.com/x.csv")
	assert.True(t, errors.IsValidationError(err))

	_, err = Open(ctx, Primary, "s3://bucket-only")
	assert.True(t, errors.IsValidationError(err))
}

func TestS3Source(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/exports/catalog.csv" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`))
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("isbn,titulo\n7,Siete\n"))
	}))
	defer srv.Close()

	cfg := S3Config{
		Region:          "eu-west-1",
		Endpoint:        srv.URL,
		PathStyle:       true,
		AccessKeyID:     "test",
		SecretAccessKey: "secret",
	}
	ctx := context.Background()

	src, err := Open(ctx, Primary, "s3://exports/catalog.csv", WithS3Config(cfg))
	require.NoError(t, err)
	assert.Equal(t, "s3://exports/catalog.csv", src.URI())

	recs, err := Load(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, []books.Record{{"isbn": "7", "titulo": "Siete"}}, recs)

	missing, err := Open(ctx, Primary, "s3://exports/other.csv", WithS3Config(cfg))
	require.NoError(t, err)
	_, err = Load(ctx, missing)
	require.Error(t, err)
	assert.True(t, errors.IsSourceUnavailable(err))
}
