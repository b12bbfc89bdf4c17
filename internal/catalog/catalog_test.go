package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testIndex(items ...Item) *Index {
	ix := NewIndex(zap.NewNop())
	for _, it := range items {
		ix.Insert(it)
	}
	return ix
}

func TestSearchCaseInsensitiveSubstring(t *testing.T) {
	ix := testIndex(
		Item{ID: "1", Name: "AWP | Asiimov"},
		Item{ID: "2", Name: "AK-47 | Redline"},
		Item{ID: "3", Name: "M4A4 | Asiimov"},
	)

	got := ix.Search("asiimov")
	require.Len(t, got, 2)
	assert.Equal(t, "AWP | Asiimov", got[0].Name)
	assert.Equal(t, "M4A4 | Asiimov", got[1].Name)
}

func TestSearchCapAndInsertionOrder(t *testing.T) {
	ix := NewIndex(zap.NewNop())
	for i := 0; i < 30; i++ {
		ix.Insert(Item{ID: fmt.Sprintf("id-%02d", i), Name: fmt.Sprintf("Skin %02d", i)})
	}

	got := ix.Search("skin")
	require.Len(t, got, 15, "results are capped at 15")
	for i, item := range got {
		assert.Equal(t, fmt.Sprintf("Skin %02d", i), item.Name, "first 15 matches in insertion order")
	}
}

func TestSearchIdempotent(t *testing.T) {
	ix := testIndex(
		Item{ID: "a", Name: "Desert Eagle | Blaze"},
		Item{ID: "b", Name: "Glock-18 | Fade"},
		Item{ID: "c", Name: "Desert Eagle | Printstream"},
	)

	first := ix.Search("desert")
	second := ix.Search("desert")
	assert.Equal(t, first, second)
}

func TestSearchEmptyIndex(t *testing.T) {
	ix := NewIndex(zap.NewNop())
	assert.Empty(t, ix.Search("anything"))
}

func TestInsertLastWriterWins(t *testing.T) {
	ix := testIndex(
		Item{ID: "x", Name: "From Source A"},
		Item{ID: "x", Name: "From Source B"},
	)

	require.Equal(t, 1, ix.Len())
	item, ok := ix.Get("x")
	require.True(t, ok)
	assert.Equal(t, "From Source B", item.Name)
}

func TestLoadKeyedMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"a":{"name":"Foo"},"b":{"name":"Bar"}}`)
	}))
	defer srv.Close()

	index := NewLoader(zap.NewNop(), nil).Load(context.Background(),
		[]Source{{Name: "keyed", URL: srv.URL}})

	require.Equal(t, 2, index.Len())
	item, ok := index.Get("a")
	require.True(t, ok)
	assert.Equal(t, "Foo", item.Name)
}

func TestLoadListDropsEntriesWithoutID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id":"a","name":"Foo"},{"name":"Bar"}]`)
	}))
	defer srv.Close()

	index := NewLoader(zap.NewNop(), nil).Load(context.Background(),
		[]Source{{Name: "list", URL: srv.URL}})

	require.Equal(t, 1, index.Len())
	item, ok := index.Get("a")
	require.True(t, ok)
	assert.Equal(t, "Foo", item.Name)
	_, ok = index.Get("")
	assert.False(t, ok)
}

func TestLoadMergesAcrossSources(t *testing.T) {
	a := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"x":{"name":"A record"},"y":{"name":"Only in A"}}`)
	}))
	defer a.Close()
	b := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"x":{"name":"B record"}}`)
	}))
	defer b.Close()

	index := NewLoader(zap.NewNop(), nil).Load(context.Background(), []Source{
		{Name: "a", URL: a.URL},
		{Name: "b", URL: b.URL},
	})

	require.Equal(t, 2, index.Len())
	item, _ := index.Get("x")
	assert.Equal(t, "B record", item.Name, "later source wins for a shared id")
	item, _ = index.Get("y")
	assert.Equal(t, "Only in A", item.Name)
}

func TestLoadSourceFailureIsIsolated(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()
	malformed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"x": not json`)
	}))
	defer malformed.Close()
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ok":{"name":"Survivor"}}`)
	}))
	defer good.Close()

	index := NewLoader(zap.NewNop(), nil).Load(context.Background(), []Source{
		{Name: "bad", URL: bad.URL},
		{Name: "malformed", URL: malformed.URL},
		{Name: "good", URL: good.URL},
	})

	require.Equal(t, 1, index.Len(), "failed sources contribute nothing, later ones still load")
	_, ok := index.Get("ok")
	assert.True(t, ok)
}

func TestLoadScalarPayloadSkipped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `"just a string"`)
	}))
	defer srv.Close()

	index := NewLoader(zap.NewNop(), nil).Load(context.Background(),
		[]Source{{Name: "scalar", URL: srv.URL}})
	assert.Equal(t, 0, index.Len())
}
