package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage(t *testing.T) {
	items := make([]int, 60)
	for i := range items {
		items[i] = i + 1
	}

	t.Run("first page", func(t *testing.T) {
		out, start, end, pages := Page(items, 1, 25)
		require.Len(t, out, 25)
		assert.Equal(t, 1, out[0])
		assert.Equal(t, 1, start)
		assert.Equal(t, 25, end)
		assert.Equal(t, 3, pages)
	})

	t.Run("middle page display bounds", func(t *testing.T) {
		out, start, end, _ := Page(items, 2, 25)
		require.Len(t, out, 25)
		assert.Equal(t, 26, out[0])
		assert.Equal(t, 26, start)
		assert.Equal(t, 50, end)
	})

	t.Run("last page is short", func(t *testing.T) {
		out, start, end, _ := Page(items, 3, 25)
		assert.Len(t, out, 10)
		assert.Equal(t, 51, start)
		assert.Equal(t, 60, end)
	})

	t.Run("pages partition the input", func(t *testing.T) {
		for _, size := range []int{10, 25, 50, 100} {
			var joined []int
			_, _, _, pages := Page(items, 1, size)
			for p := 1; p <= pages; p++ {
				out, _, _, _ := Page(items, p, size)
				joined = append(joined, out...)
			}
			assert.Equal(t, items, joined, "size %d", size)
		}
	})

	t.Run("out-of-range page yields empty window", func(t *testing.T) {
		out, start, end, pages := Page(items, 9, 25)
		assert.Empty(t, out)
		assert.Zero(t, start)
		assert.Zero(t, end)
		assert.Equal(t, 3, pages)
	})

	t.Run("empty input still reports one page", func(t *testing.T) {
		out, start, end, pages := Page([]int(nil), 1, 25)
		assert.Empty(t, out)
		assert.Zero(t, start)
		assert.Zero(t, end)
		assert.Equal(t, 1, pages)
	})

	t.Run("non-positive size falls back to default", func(t *testing.T) {
		out, _, _, pages := Page(items, 1, 0)
		assert.Len(t, out, 25)
		assert.Equal(t, 3, pages)
	})

	t.Run("page below one yields empty window", func(t *testing.T) {
		out, _, _, _ := Page(items, 0, 25)
		assert.Empty(t, out)
	})
}
