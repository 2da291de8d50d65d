package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestGetPaginationParams(t *testing.T) {
	p := GetPaginationParams(newContext("/?page=3&limit=10"))
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 10, p.PageSize)
	assert.Equal(t, 20, p.Offset)

	p = GetPaginationParams(newContext("/?page=-1&limit=500"))
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Equal(t, 0, p.Offset)
}

func TestPaginationWindow(t *testing.T) {
	p := PaginationParams{Page: 2, PageSize: 10, Offset: 10}
	start, end := p.Window(15)
	assert.Equal(t, 10, start)
	assert.Equal(t, 15, end)

	start, end = p.Window(5)
	assert.Equal(t, 5, start)
	assert.Equal(t, 5, end)
}

func TestGetPaginationParams_HugePage(t *testing.T) {
	p := GetPaginationParams(newContext("/?page=4611686018427387905&limit=2"))
	assert.GreaterOrEqual(t, p.Offset, 0)
	assert.Equal(t, 2, p.PageSize)

	start, end := p.Window(3)
	assert.Equal(t, 3, start)
	assert.Equal(t, 3, end)
}

func TestPaginationWindow_NegativeOffset(t *testing.T) {
	p := PaginationParams{Page: 1, PageSize: 10, Offset: -4}
	start, end := p.Window(5)
	assert.Equal(t, 5, start)
	assert.Equal(t, 5, end)
}

func TestQueryHelpers(t *testing.T) {
	c := newContext("/?min_rent=800.5&bedrooms=2&bad=x")
	if v := QueryFloat(c, "min_rent"); assert.NotNil(t, v) {
		assert.Equal(t, 800.5, *v)
	}
	assert.Nil(t, QueryFloat(c, "max_rent"))
	assert.Nil(t, QueryFloat(c, "bad"))
	assert.Equal(t, 2, QueryInt(c, "bedrooms", 0))
	assert.Equal(t, 7, QueryInt(c, "bad", 7))
}
