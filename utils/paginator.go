package utils

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Page is one slice of a paginated sequence. Number is 1-based.
type Page[T any] struct {
	Items    []T
	Number   int
	NumPages int
	Count    int64
	PerPage  int
}

func (p *Page[T]) HasNext() bool     { return p.Number < p.NumPages }
func (p *Page[T]) HasPrevious() bool { return p.Number > 1 }
func (p *Page[T]) HasOtherPages() bool {
	return p.HasNext() || p.HasPrevious()
}
func (p *Page[T]) NextPageNumber() int     { return p.Number + 1 }
func (p *Page[T]) PreviousPageNumber() int { return p.Number - 1 }
func (p *Page[T]) Len() int                { return len(p.Items) }

// PageRange lists every page number, for the paginator links.
func (p *Page[T]) PageRange() []int {
	out := make([]int, p.NumPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// NumPages is ceil(count/perPage) and never less than 1.
func NumPages(count int64, perPage int) int {
	if perPage <= 0 || count <= 0 {
		return 1
	}
	return int((count + int64(perPage) - 1) / int64(perPage))
}

// ResolvePage turns the raw "page" query value into a valid page number.
// Garbage and values below 1 give the first page, overflow gives the last.
func ResolvePage(raw string, numPages int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	if n > numPages {
		return numPages
	}
	return n
}

// PageBounds returns the [offset, offset+limit) window of page number.
func PageBounds(number, perPage int) (offset, limit int) {
	return (number - 1) * perPage, perPage
}

// PaginateSlice pages an in-memory sequence.
func PaginateSlice[T any](items []T, raw string, perPage int) *Page[T] {
	count := int64(len(items))
	pages := NumPages(count, perPage)
	number := ResolvePage(raw, pages)
	offset, limit := PageBounds(number, perPage)

	p := &Page[T]{Number: number, NumPages: pages, Count: count, PerPage: perPage, Items: []T{}}
	if offset >= len(items) {
		return p
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	p.Items = items[offset:end]
	return p
}

// PaginateQuery counts rows matching base and loads the requested page.
// scopes (preloads, ordering) apply only to the page fetch.
func PaginateQuery[T any](base *gorm.DB, raw string, perPage int, scopes ...func(*gorm.DB) *gorm.DB) (*Page[T], error) {
	var count int64
	var zero T
	if err := base.Session(&gorm.Session{}).Model(&zero).Count(&count).Error; err != nil {
		return nil, err
	}
	pages := NumPages(count, perPage)
	number := ResolvePage(raw, pages)
	offset, limit := PageBounds(number, perPage)

	items := make([]T, 0, limit)
	q := base.Session(&gorm.Session{}).Scopes(scopes...).Offset(offset).Limit(limit)
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return &Page[T]{Items: items, Number: number, NumPages: pages, Count: count, PerPage: perPage}, nil
}

// NewestFirst orders posts by creation time, id breaking ties.
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}
