// Package page implements the offset/size/sort window used by every listing query.
package page

import (
	"net/http"

	"github.com/pavalka/shareit/internal/pkg/apperror"
)

var ErrInvalidPageRequest = apperror.New(http.StatusBadRequest, "invalid page request: offset must be >= 0 and size > 0")

type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Sort names a column and a direction. The zero value means unsorted.
type Sort struct {
	Key       string
	Direction Direction
}

// By returns a Sort on key in the given direction.
func By(key string, dir Direction) Sort {
	return Sort{Key: key, Direction: dir}
}

// IsZero reports whether no sort key is set.
func (s Sort) IsZero() bool {
	return s.Key == ""
}

// Page is an immutable offset-based window. Unlike page-number paging the
// offset need not be a multiple of size; Number derives the page a caller
// would be on.
type Page struct {
	offset int
	size   int
	sort   Sort
}

// New validates offset and size. It is the only way to obtain a Page, so a
// Page in hand is always well-formed.
func New(offset, size int, sort Sort) (Page, error) {
	if offset < 0 || size <= 0 {
		return Page{}, ErrInvalidPageRequest
	}
	return Page{offset: offset, size: size, sort: sort}, nil
}

func (p Page) Offset() int { return p.offset }
func (p Page) Size() int   { return p.size }
func (p Page) Sort() Sort  { return p.sort }

// Number is offset / size using integer division.
func (p Page) Number() int {
	return p.offset / p.size
}

func (p Page) Next() Page {
	return Page{offset: p.offset + p.size, size: p.size, sort: p.sort}
}

// PreviousOrFirst steps back one window, clamping at offset zero.
func (p Page) PreviousOrFirst() Page {
	offset := p.offset - p.size
	if offset < 0 {
		offset = 0
	}
	return Page{offset: offset, size: p.size, sort: p.sort}
}

func (p Page) First() Page {
	return Page{offset: 0, size: p.size, sort: p.sort}
}

func (p Page) HasPrevious() bool {
	return p.offset > 0
}

// WithPage jumps to page n, i.e. offset n*size. Negative n is treated as 0.
func (p Page) WithPage(n int) Page {
	if n < 0 {
		n = 0
	}
	return Page{offset: n * p.size, size: p.size, sort: p.sort}
}

// WithSort returns a copy of p ordered by s.
func (p Page) WithSort(s Sort) Page {
	p.sort = s
	return p
}
