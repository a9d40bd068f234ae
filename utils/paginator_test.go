package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cppla/yatube/config"
)

func TestNumPages(t *testing.T) {
	tests := []struct {
		count   int64
		perPage int
		want    int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{13, 10, 2},
		{20, 10, 2},
		{21, 10, 3},
		{5, 0, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NumPages(tt.count, tt.perPage), "count=%d per=%d", tt.count, tt.perPage)
	}
}

func TestResolvePage(t *testing.T) {
	assert.Equal(t, 1, ResolvePage("", 3))
	assert.Equal(t, 1, ResolvePage("abc", 3))
	assert.Equal(t, 1, ResolvePage("0", 3))
	assert.Equal(t, 1, ResolvePage("-2", 3))
	assert.Equal(t, 2, ResolvePage(" 2 ", 3))
	assert.Equal(t, 3, ResolvePage("99", 3))
}

func TestPaginateSlice_LastPageSize(t *testing.T) {
	for n := 0; n <= 35; n++ {
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}
		pages := NumPages(int64(n), 10)
		last := PaginateSlice(items, fmt.Sprint(pages), 10)

		want := n - (pages-1)*10
		assert.Equal(t, want, last.Len(), "n=%d", n)
		assert.False(t, last.HasNext())

		total := 0
		for p := 1; p <= pages; p++ {
			total += PaginateSlice(items, fmt.Sprint(p), 10).Len()
		}
		assert.Equal(t, n, total, "pages must cover every item once, n=%d", n)
	}
}

func TestPaginateSlice_ThirteenItems(t *testing.T) {
	items := make([]string, 13)

	first := PaginateSlice(items, "1", 10)
	assert.Equal(t, 10, first.Len())
	assert.True(t, first.HasNext())
	assert.False(t, first.HasPrevious())
	assert.Equal(t, 2, first.NextPageNumber())
	assert.Equal(t, []int{1, 2}, first.PageRange())

	second := PaginateSlice(items, "2", 10)
	assert.Equal(t, 3, second.Len())
	assert.True(t, second.HasOtherPages())
	assert.Equal(t, 1, second.PreviousPageNumber())
}

type pagedRow struct {
	ID uint
	N  int
}

func TestPaginateQuery(t *testing.T) {
	db, err := config.OpenDatabase(config.AppConfig{DBDriver: "sqlite", DatabaseURI: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db, &pagedRow{}))
	for i := 1; i <= 13; i++ {
		require.NoError(t, db.Create(&pagedRow{N: i}).Error)
	}

	desc := func(q *gorm.DB) *gorm.DB { return q.Order("n DESC") }

	page, err := PaginateQuery[pagedRow](db.Where("n > ?", 0), "2", 10, desc)
	require.NoError(t, err)
	assert.EqualValues(t, 13, page.Count)
	assert.Equal(t, 2, page.NumPages)
	require.Equal(t, 3, page.Len())
	assert.Equal(t, 3, page.Items[0].N)

	empty, err := PaginateQuery[pagedRow](db.Where("n > ?", 100), "5", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, empty.Number)
	assert.Equal(t, 1, empty.NumPages)
	assert.Empty(t, empty.Items)
}
