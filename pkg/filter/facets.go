package filter

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/agentstation/shelfmap/pkg/books"
)

// CollationLanguage is the locale used to order language labels.
var CollationLanguage = language.Spanish

// Languages returns the distinct non-empty language labels in locale order.
func Languages(bs []books.Book) []string {
	values := distinct(bs, func(b books.Book) string { return b.Language })
	SortLocale(values)
	return values
}

// Years returns the distinct non-empty years, newest first. Values that are
// not numbers follow all numeric years in ascending lexical order.
func Years(bs []books.Book) []string {
	values := distinct(bs, func(b books.Book) string { return b.Year })
	SortYearsDesc(values)
	return values
}

// SortLocale sorts values in place using CollationLanguage.
func SortLocale(values []string) {
	c := collate.New(CollationLanguage)
	slices.SortStableFunc(values, c.CompareString)
}

// SortYearsDesc sorts year labels in place, numeric descending.
func SortYearsDesc(values []string) {
	slices.SortStableFunc(values, func(a, b string) int {
		na, aok := parseYear(a)
		nb, bok := parseYear(b)
		switch {
		case aok && bok:
			return cmp.Compare(nb, na)
		case aok:
			return -1
		case bok:
			return 1
		}
		return strings.Compare(a, b)
	})
}

func parseYear(s string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return n, err == nil
}

func distinct(bs []books.Book, field func(books.Book) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, b := range bs {
		v := field(b)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
