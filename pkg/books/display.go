package books

import "strings"

// Placeholder images used when a book has no cover or the cover fails to load.
const (
	CardPlaceholder   = "https://via.placeholder.com/400x550?text=Sin+imagen"
	DetailPlaceholder = "https://via.placeholder.com/600x800?text=Sin+imagen"
)

// Fallback texts for the detail view.
const (
	UntitledText   = "Sin título"
	NoSummaryText  = "Sin descripción disponible."
	currencySymbol = "€"
)

// Card is the compact projection rendered in the grid and list views.
type Card struct {
	ISBN          string `json:"isbn" yaml:"isbn"`
	Cover         string `json:"cover" yaml:"cover"`
	CoverFallback string `json:"cover_fallback" yaml:"cover_fallback"`
	Title         string `json:"title" yaml:"title"`
	Author        string `json:"author" yaml:"author"`
	Publisher     string `json:"publisher" yaml:"publisher"`
	Price         string `json:"price" yaml:"price"`
}

// Detail is the full projection shown for a single selected book.
type Detail struct {
	ISBN          string `json:"isbn" yaml:"isbn"`
	Cover         string `json:"cover" yaml:"cover"`
	CoverFallback string `json:"cover_fallback" yaml:"cover_fallback"`
	Title         string `json:"title" yaml:"title"`
	Author        string `json:"author" yaml:"author"`
	Publisher     string `json:"publisher" yaml:"publisher"`
	Summary       string `json:"summary" yaml:"summary"`
	Price         string `json:"price" yaml:"price"`
	Language      string `json:"language,omitempty" yaml:"language,omitempty"`
	Year          string `json:"year,omitempty" yaml:"year,omitempty"`
	Category      string `json:"category,omitempty" yaml:"category,omitempty"`
}

// Card projects b for list rendering. The title is not defaulted on cards.
func (b Book) Card() Card {
	return Card{
		ISBN:          b.ISBN,
		Cover:         orDefault(b.CoverURL, CardPlaceholder),
		CoverFallback: CardPlaceholder,
		Title:         b.Title,
		Author:        b.Author,
		Publisher:     b.Publisher,
		Price:         formatPrice("", b.Price),
	}
}

// Detail projects b for the detail view, applying display fallbacks.
func (b Book) Detail() Detail {
	return Detail{
		ISBN:          b.ISBN,
		Cover:         orDefault(b.CoverURL, DetailPlaceholder),
		CoverFallback: DetailPlaceholder,
		Title:         orDefault(b.Title, UntitledText),
		Author:        b.Author,
		Publisher:     b.Publisher,
		Summary:       orDefault(b.Summary, NoSummaryText),
		Price:         formatPrice("Precio: ", b.Price),
		Language:      b.Language,
		Year:          b.Year,
		Category:      b.Category,
	}
}

// Cards projects a slice of books in order.
func Cards(bs []Book) []Card {
	out := make([]Card, len(bs))
	for i, b := range bs {
		out[i] = b.Card()
	}
	return out
}

func formatPrice(prefix, price string) string {
	if price == "" {
		return ""
	}
	return prefix + currencySymbol + " " + price
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func lowerJoin(a, b string) string {
	return strings.ToLower(a) + " " + strings.ToLower(b)
}
