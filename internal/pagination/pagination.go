// Package pagination windows an ordered result set into fixed-size pages
// and maps items to stable absolute indexes that survive page navigation.
package pagination

// Page is one visible window over a result set. It is derived on every
// render and never stored.
type Page[T any] struct {
	Items      []T
	Number     int // zero-based
	TotalPages int
	Size       int
	HasPrev    bool
	HasNext    bool
}

// StableIndex returns the absolute position within the full result set of
// the item at position i on this page. Downstream selection callbacks echo
// this index back, so resolving a selection never depends on which page was
// last rendered.
func (p Page[T]) StableIndex(i int) int {
	return p.Number*p.Size + i
}

// Window computes the page of set at the given page number. A page outside
// [0, totalPages) is clamped to the nearest valid page rather than rejected:
// a stale navigation callback arriving after the result set shrank should
// land on the last page, not fail.
func Window[T any](set []T, page, size int) Page[T] {
	if size <= 0 {
		size = 1
	}
	totalPages := (len(set) + size - 1) / size
	if totalPages == 0 {
		return Page[T]{Items: nil, Number: 0, TotalPages: 0, Size: size}
	}

	if page < 0 {
		page = 0
	}
	if page >= totalPages {
		page = totalPages - 1
	}

	start := page * size
	end := start + size
	if end > len(set) {
		end = len(set)
	}

	return Page[T]{
		Items:      set[start:end],
		Number:     page,
		TotalPages: totalPages,
		Size:       size,
		HasPrev:    page > 0,
		HasNext:    page < totalPages-1,
	}
}
