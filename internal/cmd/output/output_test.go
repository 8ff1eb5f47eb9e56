package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/shelfmap/pkg/books"
	"github.com/agentstation/shelfmap/pkg/errors"
	"github.com/agentstation/shelfmap/pkg/preferences"
)

var page = BookPage{
	Books: []books.Card{
		{ISBN: "9780134685991", Title: "Effective Java", Author: "Bloch", Price: "€ 39.90"},
		{ISBN: "9788437604947", Title: "Cien años de soledad", Author: "García Márquez"},
	},
	Page: 1, Pages: 1, Total: 2,
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"table", "JSON", "yaml", ""} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseFormat("wide")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestHeader(t *testing.T) {
	assert.Equal(t, "Page Size", Header("page_size"))
	assert.Equal(t, "Título", Header("título"))
}

func TestTableOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatTable, page))
	out := buf.String()
	for _, want := range []string{"ISBN", "TITLE", "Effective Java", "García Márquez", "€ 39.90"} {
		assert.Contains(t, strings.ToUpper(out), strings.ToUpper(want))
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, page))

	var got BookPage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	if diff := cmp.Diff(page, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestYAMLOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, Facets{Languages: []string{"Español"}, Years: []string{"2018"}}))
	assert.Contains(t, buf.String(), "languages:")
	assert.Contains(t, buf.String(), "- Español")
}

func TestTableFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatTable, map[string]int{"books": 3}))
	assert.JSONEq(t, `{"books":3}`, buf.String())
}

func TestLayouts(t *testing.T) {
	tests := []struct {
		name string
		data Data
		want Data
	}{
		{
			name: "detail skips empty values",
			data: DetailTable(books.Detail{ISBN: "1", Title: "Sin título", Price: "€ 5"}),
			want: Data{
				Headers: []string{"Property", "Value"},
				Rows:    [][]string{{"ISBN", "1"}, {"Title", "Sin título"}, {"Price", "€ 5"}},
			},
		},
		{
			name: "categories",
			data: Categories{{Label: "CP-A", Keys: []string{"1", "2"}}}.Table(),
			want: Data{
				Headers:   []string{"Category", "Books", "ISBN"},
				Rows:      [][]string{{"CP-A", "2", "1, 2"}},
				Alignment: []Align{AlignLeft, AlignRight, AlignLeft},
			},
		},
		{
			name: "facets pads the shorter column",
			data: Facets{Languages: []string{"Español", "Inglés"}, Years: []string{"2018"}}.Table(),
			want: Data{
				Headers: []string{"Language", "Year"},
				Rows:    [][]string{{"Español", "2018"}, {"Inglés", ""}},
			},
		},
		{
			name: "preferences",
			data: NewPreferences(preferences.Snapshot{View: preferences.ViewList, Theme: preferences.ThemeDark}).Table(),
			want: Data{
				Headers: []string{"Setting", "Value", "Toggle"},
				Rows: [][]string{
					{"View", "list", preferences.LabelSwitchToGrid},
					{"Theme", "dark", preferences.LabelSwitchToLight},
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.data); diff != "" {
				t.Errorf("layout mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"Ficciones", 20, "Ficciones"},
		{"Cien años de soledad", 10, "Cien añ..."},
		{"Rayuela", 0, "Rayuela"},
		{"Rayuela", 2, "Ra"},
		{"吾輩は猫である", 8, "吾輩..."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.width), tt.in)
	}

	long := strings.Repeat("x", TitleWidth+10)
	d := CardsTable([]books.Card{{ISBN: "1", Title: long}})
	assert.Equal(t, TitleWidth, len(d.Rows[0][1]))
}
