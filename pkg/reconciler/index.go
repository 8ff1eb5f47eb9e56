package reconciler

import (
	"github.com/agentstation/shelfmap/pkg/books"
	"github.com/agentstation/shelfmap/pkg/normalize"
)

// Index maps normalized identifiers to secondary records.
type Index struct {
	byKey      map[string]books.Record
	duplicates int
}

// BuildIndex indexes the secondary dataset by normalized identifier. Records
// without an identifier are skipped. When two records share a key the later
// one in dataset order wins.
func BuildIndex(secondary []books.Record) *Index {
	idx := &Index{byKey: make(map[string]books.Record, len(secondary))}
	for _, rec := range secondary {
		key := normalize.Key(rec.Identifier())
		if key == "" {
			continue
		}
		if _, seen := idx.byKey[key]; seen {
			idx.duplicates++
		}
		idx.byKey[key] = rec
	}
	return idx
}

// Lookup returns the secondary record stored under a normalized key.
// A nil index or an empty key never matches.
func (idx *Index) Lookup(key string) (books.Record, bool) {
	if idx == nil || key == "" {
		return nil, false
	}
	rec, ok := idx.byKey[key]
	return rec, ok
}

// Len returns the number of distinct keys.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.byKey)
}

// Duplicates returns how many records were overwritten by a later record with the same key.
func (idx *Index) Duplicates() int {
	if idx == nil {
		return 0
	}
	return idx.duplicates
}
