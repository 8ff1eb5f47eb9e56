package filter

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/agentstation/shelfmap/pkg/books"
)

// Index answers queries over a fixed book slice. Language and year filters
// are resolved with one bitmap per distinct value; the free-text match then
// runs only over the surviving positions.
type Index struct {
	books     []books.Book
	all       *roaring.Bitmap
	languages map[string]*roaring.Bitmap
	years     map[string]*roaring.Bitmap
}

// NewIndex indexes bs. The slice must not be modified afterwards.
func NewIndex(bs []books.Book) *Index {
	idx := &Index{
		books:     bs,
		all:       roaring.New(),
		languages: map[string]*roaring.Bitmap{},
		years:     map[string]*roaring.Bitmap{},
	}
	if len(bs) > 0 {
		idx.all.AddRange(0, uint64(len(bs)))
	}
	for i, b := range bs {
		add(idx.languages, b.Language, uint32(i))
		add(idx.years, b.Year, uint32(i))
	}
	return idx
}

func add(m map[string]*roaring.Bitmap, key string, pos uint32) {
	if key == "" {
		return
	}
	bm, ok := m[key]
	if !ok {
		bm = roaring.New()
		m[key] = bm
	}
	bm.Add(pos)
}

// Len returns the number of indexed books.
func (idx *Index) Len() int {
	return len(idx.books)
}

// Books returns the indexed books in order.
func (idx *Index) Books() []books.Book {
	return idx.books
}

// Apply returns the books matching q, in index order. It returns the same
// result as the package-level Apply over the indexed slice.
func (idx *Index) Apply(q Query) []books.Book {
	if q.IsZero() {
		out := make([]books.Book, len(idx.books))
		copy(out, idx.books)
		return out
	}
	candidates := idx.candidates(q)
	out := make([]books.Book, 0, candidates.GetCardinality())
	it := candidates.Iterator()
	for it.HasNext() {
		b := idx.books[it.Next()]
		if q.matchesText(b) {
			out = append(out, b)
		}
	}
	return out
}

// Count returns the number of books matching q.
func (idx *Index) Count(q Query) int {
	if q.Text == "" {
		return int(idx.candidates(q).GetCardinality())
	}
	return len(idx.Apply(q))
}

// LanguageCount returns how many books carry the language label.
func (idx *Index) LanguageCount(lang string) int {
	if bm, ok := idx.languages[lang]; ok {
		return int(bm.GetCardinality())
	}
	return 0
}

// YearCount returns how many books carry the year label.
func (idx *Index) YearCount(year string) int {
	if bm, ok := idx.years[year]; ok {
		return int(bm.GetCardinality())
	}
	return 0
}

func (idx *Index) candidates(q Query) *roaring.Bitmap {
	var sets []*roaring.Bitmap
	if q.Language != "" {
		sets = append(sets, lookup(idx.languages, q.Language))
	}
	if q.Year != "" {
		sets = append(sets, lookup(idx.years, q.Year))
	}
	if len(sets) == 0 {
		return idx.all
	}
	return roaring.FastAnd(append(sets, idx.all)...)
}

func lookup(m map[string]*roaring.Bitmap, key string) *roaring.Bitmap {
	if bm, ok := m[key]; ok {
		return bm
	}
	return roaring.New()
}
