package pagination

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return s
}

func TestWindowReconstructsResultSet(t *testing.T) {
	for _, tc := range []struct{ n, size int }{
		{0, 8}, {1, 8}, {7, 8}, {8, 8}, {9, 8}, {16, 8}, {17, 8}, {100, 3}, {5, 1},
	} {
		t.Run(fmt.Sprintf("n=%d/size=%d", tc.n, tc.size), func(t *testing.T) {
			set := seq(tc.n)
			first := Window(set, 0, tc.size)

			rebuilt := make([]int, 0, tc.n)
			for p := 0; p < first.TotalPages; p++ {
				rebuilt = append(rebuilt, Window(set, p, tc.size).Items...)
			}
			assert.Equal(t, set, rebuilt, "concatenated pages must reconstruct the set exactly")
		})
	}
}

func TestStableIndexIsAbsolute(t *testing.T) {
	set := seq(25)
	prev := -1
	for p := 0; p < 4; p++ {
		page := Window(set, p, 8)
		assert.Equal(t, p*8, page.StableIndex(0), "first item on page %d", p)
		for i := range page.Items {
			idx := page.StableIndex(i)
			assert.Greater(t, idx, prev, "stable index must be monotonically increasing")
			assert.Equal(t, set[idx], page.Items[i])
			prev = idx
		}
	}
}

func TestWindowNavigationFlags(t *testing.T) {
	set := seq(17)

	first := Window(set, 0, 8)
	assert.False(t, first.HasPrev)
	assert.True(t, first.HasNext)
	assert.Equal(t, 3, first.TotalPages)

	mid := Window(set, 1, 8)
	assert.True(t, mid.HasPrev)
	assert.True(t, mid.HasNext)

	last := Window(set, 2, 8)
	assert.True(t, last.HasPrev)
	assert.False(t, last.HasNext)
	assert.Len(t, last.Items, 1)
}

func TestWindowClampsOutOfRange(t *testing.T) {
	set := seq(16) // two pages of 8

	page := Window(set, 5, 8)
	assert.Equal(t, 1, page.Number, "page 5 of a 2-page set clamps to the last valid page")
	assert.False(t, page.HasNext)

	page = Window(set, -3, 8)
	assert.Equal(t, 0, page.Number)
}

func TestWindowEmptySet(t *testing.T) {
	page := Window([]string{}, 0, 8)
	require.Equal(t, 0, page.TotalPages)
	assert.Equal(t, 0, page.Number)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasPrev)
	assert.False(t, page.HasNext)
}

func TestWindowSingleFullPage(t *testing.T) {
	page := Window(seq(8), 0, 8)
	assert.Equal(t, 1, page.TotalPages)
	assert.False(t, page.HasNext)
	assert.Len(t, page.Items, 8)
}
