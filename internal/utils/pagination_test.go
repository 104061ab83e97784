package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginateFirstPage(t *testing.T) {
	p := Paginate(120, 1, 50)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 3, p.Pages)
	assert.Equal(t, 50, p.PerPage)
	assert.Equal(t, 120, p.Total)
	assert.True(t, p.HasNext)
	assert.False(t, p.HasPrev)
	assert.Equal(t, 0, p.Offset())
}

func TestPaginateMiddleAndLastPage(t *testing.T) {
	mid := Paginate(120, 2, 50)
	assert.True(t, mid.HasNext)
	assert.True(t, mid.HasPrev)
	assert.Equal(t, 50, mid.Offset())

	last := Paginate(120, 3, 50)
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrev)
	assert.Equal(t, 100, last.Offset())
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate(0, 1, 50)
	assert.Equal(t, 0, p.Pages)
	assert.Equal(t, 0, p.Total)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}

func TestPaginateClampsBadInput(t *testing.T) {
	p := Paginate(10, 0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 1, p.PerPage)
	assert.Equal(t, 10, p.Pages)

	p = Paginate(10, -3, -1)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 1, p.PerPage)
}

func TestPaginateExactMultiple(t *testing.T) {
	p := Paginate(100, 2, 50)
	assert.Equal(t, 2, p.Pages)
	assert.False(t, p.HasNext)
}
