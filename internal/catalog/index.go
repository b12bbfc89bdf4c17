// Package catalog builds and serves the searchable in-memory index over the
// bulk item reference feeds. The index is populated once at process start
// and read-only afterward.
package catalog

import (
	"strings"

	"go.uber.org/zap"
)

// searchCap bounds how many matches a single search returns. Matches beyond
// the cap are simply not visited.
const searchCap = 15

// Item is one catalog entry. ID and Name are lifted out for indexing and
// search; everything else the feed carried passes through opaquely in Attrs
// for display. Items are never mutated after load.
type Item struct {
	ID    string
	Name  string
	Attrs map[string]any
}

// Index maps item id to Item, preserving insertion order so that search
// results are stable across repeated queries against an unmodified index.
type Index struct {
	byID  map[string]Item
	order []string
	log   *zap.Logger
}

// NewIndex returns an empty index.
func NewIndex(log *zap.Logger) *Index {
	return &Index{
		byID: make(map[string]Item),
		log:  log,
	}
}

// Insert adds or replaces the entry for item.ID. A replaced entry keeps its
// original position in iteration order; only its record changes
// (last-writer-wins merge across sources).
func (ix *Index) Insert(item Item) {
	if _, exists := ix.byID[item.ID]; !exists {
		ix.order = append(ix.order, item.ID)
	}
	ix.byID[item.ID] = item
}

// Get returns the item with the given id.
func (ix *Index) Get(id string) (Item, bool) {
	item, ok := ix.byID[id]
	return item, ok
}

// Len returns the number of indexed items.
func (ix *Index) Len() int {
	return len(ix.byID)
}

// Search returns up to 15 items whose name contains query, case-insensitive,
// in index insertion order. These are the first matches encountered, not a
// relevance ranking. An empty index logs a warning and returns nothing.
func (ix *Index) Search(query string) []Item {
	if len(ix.byID) == 0 {
		ix.log.Warn("search attempted on an empty catalog index")
		return nil
	}

	q := strings.ToLower(query)
	var matches []Item
	for _, id := range ix.order {
		item := ix.byID[id]
		if strings.Contains(strings.ToLower(item.Name), q) {
			matches = append(matches, item)
			if len(matches) >= searchCap {
				break
			}
		}
	}
	return matches
}
