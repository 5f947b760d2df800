package shared

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlice(t *testing.T) {
	items := make([]int, 0, 45)
	for i := 0; i < 45; i++ {
		items = append(items, i)
	}

	t.Run("first page", func(t *testing.T) {
		page := Slice(items, Filter{Page: 1, Limit: 20})
		assert.Len(t, page.Data, 20)
		assert.Equal(t, 0, page.Data[0])
		assert.Equal(t, int64(45), page.Total)
		assert.Equal(t, 3, page.TotalPages)
	})

	t.Run("last partial page", func(t *testing.T) {
		page := Slice(items, Filter{Page: 3, Limit: 20})
		assert.Len(t, page.Data, 5)
		assert.Equal(t, 40, page.Data[0])
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		page := Slice(items, Filter{Page: 9, Limit: 20})
		assert.Empty(t, page.Data)
		assert.Equal(t, int64(45), page.Total)
	})

	t.Run("empty input", func(t *testing.T) {
		page := Slice([]int{}, Filter{Page: 1, Limit: 20})
		assert.Empty(t, page.Data)
		assert.Equal(t, int64(0), page.Total)
		assert.Equal(t, 0, page.TotalPages)
	})

	// Returned length is always min(limit, max(0, n-(page-1)*limit)).
	t.Run("length law holds across pages and limits", func(t *testing.T) {
		for _, n := range []int{0, 1, 19, 20, 21, 45} {
			for page := 1; page <= 4; page++ {
				for _, limit := range []int{1, 7, 20} {
					t.Run(fmt.Sprintf("n=%d page=%d limit=%d", n, page, limit), func(t *testing.T) {
						want := n - (page-1)*limit
						if want < 0 {
							want = 0
						}
						if want > limit {
							want = limit
						}
						got := Slice(items[:n], Filter{Page: page, Limit: limit})
						assert.Len(t, got.Data, want)
					})
				}
			}
		}
	})
}

func TestFilterNormalize(t *testing.T) {
	f := Filter{Page: -3, Limit: 500}.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 100, f.Limit)

	f = Filter{}.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.Limit)
}

func TestFilterValues(t *testing.T) {
	f := Filter{
		Page:    2,
		Limit:   10,
		Search:  "acme",
		Status:  "active",
		Filters: map[string]string{"priority": "high", "empty": ""},
	}
	v := f.Values()

	assert.Equal(t, "2", v.Get("page"))
	assert.Equal(t, "10", v.Get("limit"))
	assert.Equal(t, "acme", v.Get("search"))
	assert.Equal(t, "active", v.Get("status"))
	assert.Equal(t, "high", v.Get("priority"))
	assert.False(t, v.Has("empty"))
}
