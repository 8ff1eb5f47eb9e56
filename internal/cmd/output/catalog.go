package output

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/agentstation/shelfmap/pkg/books"
	"github.com/agentstation/shelfmap/pkg/preferences"
	"github.com/agentstation/shelfmap/pkg/reconciler"
)

// BookPage is one page of book cards.
type BookPage struct {
	Books   []books.Card `json:"books" yaml:"books"`
	Page    int          `json:"page" yaml:"page"`
	Pages   int          `json:"pages" yaml:"pages"`
	Total   int          `json:"total" yaml:"total"`
	HasMore bool         `json:"has_more" yaml:"has_more"`
}

// Table implements Tabular. The list layout drops the cover column.
func (p BookPage) Table() Data {
	return CardsTable(p.Books)
}

// Display widths for the free-text card columns.
const (
	TitleWidth  = 48
	AuthorWidth = 28
)

// Truncate shortens s to at most width terminal cells, ending in "...".
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	if width < 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

// CardsTable renders cards as rows. Long titles and authors are truncated;
// structured formats carry the full text.
func CardsTable(cards []books.Card) Data {
	d := Data{
		Headers:   []string{"ISBN", Header("title"), Header("author"), Header("publisher"), Header("price")},
		Alignment: []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight},
	}
	for _, c := range cards {
		d.Rows = append(d.Rows, []string{
			c.ISBN,
			Truncate(c.Title, TitleWidth),
			Truncate(c.Author, AuthorWidth),
			Truncate(c.Publisher, AuthorWidth),
			c.Price,
		})
	}
	return d
}

// DetailTable renders a detail projection as property/value rows.
func DetailTable(det books.Detail) Data {
	rows := [][2]string{
		{"isbn", det.ISBN},
		{"title", det.Title},
		{"author", det.Author},
		{"publisher", det.Publisher},
		{"price", det.Price},
		{"language", det.Language},
		{"year", det.Year},
		{"category", det.Category},
		{"cover", det.Cover},
		{"summary", det.Summary},
	}
	d := Data{Headers: []string{Header("property"), Header("value")}}
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		label := Header(r[0])
		if r[0] == "isbn" {
			label = "ISBN"
		}
		d.Rows = append(d.Rows, []string{label, r[1]})
	}
	return d
}

// BookDetail is a single book's detail projection.
type BookDetail struct {
	books.Detail `yaml:",inline"`
}

// Table implements Tabular.
func (d BookDetail) Table() Data {
	return DetailTable(d.Detail)
}

// Categories is the category grouping.
type Categories []reconciler.Group

// Table implements Tabular.
func (c Categories) Table() Data {
	d := Data{
		Headers:   []string{Header("category"), Header("books"), "ISBN"},
		Alignment: []Align{AlignLeft, AlignRight, AlignLeft},
	}
	for _, g := range c {
		d.Rows = append(d.Rows, []string{g.Label, strconv.Itoa(len(g.Keys)), strings.Join(g.Keys, ", ")})
	}
	return d
}

// Facets are the filter options.
type Facets struct {
	Languages []string `json:"languages" yaml:"languages"`
	Years     []string `json:"years" yaml:"years"`
}

// Table implements Tabular with one column per facet.
func (f Facets) Table() Data {
	d := Data{Headers: []string{Header("language"), Header("year")}}
	for i := 0; i < max(len(f.Languages), len(f.Years)); i++ {
		row := []string{"", ""}
		if i < len(f.Languages) {
			row[0] = f.Languages[i]
		}
		if i < len(f.Years) {
			row[1] = f.Years[i]
		}
		d.Rows = append(d.Rows, row)
	}
	return d
}

// Preferences are the display settings with their toggle labels.
type Preferences struct {
	View       preferences.ViewMode `json:"view" yaml:"view"`
	Theme      preferences.Theme    `json:"theme" yaml:"theme"`
	ViewLabel  string               `json:"view_label" yaml:"view_label"`
	ThemeLabel string               `json:"theme_label" yaml:"theme_label"`
}

// NewPreferences adds labels to s.
func NewPreferences(s preferences.Snapshot) Preferences {
	return Preferences{
		View:       s.View,
		Theme:      s.Theme,
		ViewLabel:  preferences.ViewLabel(s.View),
		ThemeLabel: preferences.ThemeLabel(s.Theme),
	}
}

// Table implements Tabular.
func (p Preferences) Table() Data {
	return Data{
		Headers: []string{Header("setting"), Header("value"), Header("toggle")},
		Rows: [][]string{
			{Header("view"), string(p.View), p.ViewLabel},
			{Header("theme"), string(p.Theme), p.ThemeLabel},
		},
	}
}
