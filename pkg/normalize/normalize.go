// Package normalize canonicalizes book identifiers so records from different
// datasets join despite formatting differences ("978-0-13-468599-1" and
// "9780134685991" are the same key).
package normalize

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

var separators = runes.Predicate(func(r rune) bool {
	return r == '-' || unicode.IsSpace(r)
})

// Key returns the join key for an identifier: hyphens and whitespace removed,
// lower-cased. The empty string maps to the empty string.
func Key(id string) string {
	if id == "" {
		return ""
	}
	t := transform.Chain(runes.Remove(separators), runes.Map(unicode.ToLower))
	out, _, err := transform.String(t, id)
	if err != nil {
		// runes transformers only fail on short buffers, which String handles.
		return id
	}
	return out
}

// Equal reports whether two identifiers normalize to the same non-empty key.
func Equal(a, b string) bool {
	ka := Key(a)
	return ka != "" && ka == Key(b)
}
