package reconciler_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/shelfmap/pkg/books"
	"github.com/agentstation/shelfmap/pkg/errors"
	"github.com/agentstation/shelfmap/pkg/reconciler"
)

func TestBuildIndex(t *testing.T) {
	secondary := []books.Record{
		{"ISBN": "978-1", "titulo": "first"},
		{"isbn": "9781", "titulo": "second"},
		{"titulo": "no identifier"},
		{"ISBN": "", "isbn": ""},
	}

	idx := reconciler.BuildIndex(secondary)

	assert.Equal(t, 1, idx.Len())
	assert.Equal(t, 1, idx.Duplicates())
	rec, ok := idx.Lookup("9781")
	require.True(t, ok)
	assert.Equal(t, "second", rec.Title(), "later record wins")

	_, ok = idx.Lookup("")
	assert.False(t, ok)

	var nilIdx *reconciler.Index
	_, ok = nilIdx.Lookup("9781")
	assert.False(t, ok)
}

func TestMergeUnmatchedPassThrough(t *testing.T) {
	primary := []books.Record{
		{"ISBN": "111", "titulo": "A", "autor": "X"},
		{"isbn": "222", "titulo": "B"},
	}
	idx := reconciler.BuildIndex([]books.Record{{"ISBN": "999", "titulo": "Z"}})

	out := reconciler.Merge(primary, idx)

	require.Len(t, out, 2)
	for i := range primary {
		if diff := cmp.Diff(primary[i], out[i]); diff != "" {
			t.Errorf("record %d changed (-want +got):\n%s", i, diff)
		}
	}
}

func TestMergeOverlay(t *testing.T) {
	primary := []books.Record{
		{"ISBN": "978-0-13-468599-1", "titulo": "Old title", "autor": "Kept", "idioma": "Inglés"},
	}
	secondary := []books.Record{
		{"ISBN": "9780134685991", "titulo": "New title", "idioma": "", "CP": "CP-A"},
	}

	out := reconciler.Merge(primary, reconciler.BuildIndex(secondary))

	require.Len(t, out, 1)
	got := out[0]
	for k, v := range secondary[0] {
		assert.Equal(t, v, got[k], "secondary field %s", k)
	}
	assert.Equal(t, "Kept", got["autor"], "primary-only field")
	assert.Equal(t, "", got["idioma"], "empty secondary values still override")
	assert.Equal(t, "Old title", primary[0]["titulo"], "input not mutated")
}

func TestMergeNonEmptyStrategy(t *testing.T) {
	primary := []books.Record{{"ISBN": "1", "titulo": "T", "idioma": "Español"}}
	secondary := []books.Record{{"ISBN": "1", "idioma": "", "editorial": ""}}

	out, stats := reconciler.NewMerger(reconciler.NewOverlayNonEmptyStrategy(), "").
		Merge(primary, reconciler.BuildIndex(secondary))

	require.Len(t, out, 1)
	assert.Equal(t, "Español", out[0]["idioma"])
	assert.True(t, out[0].Has("editorial"), "fields new to the primary are still added")
	assert.Equal(t, 1, stats.Matched)
}

func TestMergePreservesOrderAndInclusion(t *testing.T) {
	primary := []books.Record{
		{"titulo": "only title"},
		{"autor": "nobody"},
		{"isbn": "3"},
		{"ISBN": "4", "titulo": "four"},
		{"ISBN": " ", "titulo": ""},
	}

	out, stats := reconciler.NewMerger(nil, "").Merge(primary, reconciler.BuildIndex(nil))

	want := []books.Record{primary[0], primary[2], primary[3], primary[4]}
	assert.Equal(t, want, out)
	assert.Equal(t, 1, stats.Excluded)
	assert.Equal(t, 4, stats.Unmatched)
}

func TestScenarioMatchedOrTitled(t *testing.T) {
	primary := []books.Record{
		{"ISBN": "978-0-13-468599-1", "precio_venta_publico": "30"},
		{"ISBN": "0000000000"},
	}
	secondary := []books.Record{
		{"ISBN": "9780134685991", "CP": "CP-A", "titulo": "Effective Java"},
	}

	r, err := reconciler.New(reconciler.WithInclusion(reconciler.IncludeMatchedOrTitled))
	require.NoError(t, err)
	result, err := r.Reconcile(context.Background(), primary, secondary)
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	unified := result.Records[0]
	assert.Equal(t, "9780134685991", unified["ISBN"])
	assert.Equal(t, "CP-A", unified["CP"])
	assert.Equal(t, "Effective Java", unified["titulo"])
	assert.Equal(t, "30", unified["precio_venta_publico"])

	assert.Equal(t, map[string][]string{"CP-A": {"9780134685991"}}, result.Categories.Map())
	assert.Equal(t, 1, result.Metadata.Stats.Excluded)
	assert.Equal(t, reconciler.IncludeMatchedOrTitled, result.Metadata.Inclusion)
}

func TestScenarioDefaultPolicyKeepsIdentifiedRows(t *testing.T) {
	primary := []books.Record{
		{"ISBN": "978-0-13-468599-1"},
		{"ISBN": "0000000000"},
	}
	secondary := []books.Record{{"ISBN": "9780134685991", "CP": "CP-A"}}

	r, err := reconciler.New()
	require.NoError(t, err)
	result, err := r.Reconcile(context.Background(), primary, secondary)
	require.NoError(t, err)

	assert.Len(t, result.Records, 2)
	assert.Equal(t, 1, result.Metadata.Stats.Matched)
	assert.Equal(t, 1, result.Metadata.Stats.Unmatched)
	assert.Equal(t, reconciler.StrategyTypeOverlayAll, result.Metadata.Strategy)
}

func TestReconcileCanceled(t *testing.T) {
	r, err := reconciler.New()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Reconcile(ctx, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildCategories(t *testing.T) {
	secondary := []books.Record{
		{"CP": "CP-B", "ISBN": "978-2"},
		{"cp": "CP-A", "isbn": "978 1"},
		{"CP": "CP-B", "ISBN": "978-3"},
		{"CP": "CP-C"},
		{"ISBN": "978-4"},
	}

	cats := reconciler.BuildCategories(secondary)

	assert.Equal(t, []string{"CP-B", "CP-A"}, cats.Labels())
	assert.Equal(t, []string{"9782", "9783"}, cats.Keys("CP-B"))
	assert.Equal(t, []string{"9781"}, cats.Keys("CP-A"))
	assert.Nil(t, cats.Keys("CP-C"))
	assert.Equal(t, 2, cats.Len())

	data, err := json.Marshal(cats)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"label":"CP-B","keys":["9782","9783"]},{"label":"CP-A","keys":["9781"]}]`, string(data))
}

func TestOptions(t *testing.T) {
	_, err := reconciler.New(reconciler.WithStrategy(nil))
	assert.True(t, errors.IsValidationError(err))

	_, err = reconciler.New(reconciler.WithInclusion("everything"))
	assert.True(t, errors.IsValidationError(err))

	s, err := reconciler.ParseStrategy("Overlay-Non-Empty")
	require.NoError(t, err)
	assert.Equal(t, "Overlay Non Empty", s.Type().Name())

	p, err := reconciler.ParseInclusionPolicy("")
	require.NoError(t, err)
	assert.Equal(t, reconciler.IncludeIdentifiedOrTitled, p)
}
