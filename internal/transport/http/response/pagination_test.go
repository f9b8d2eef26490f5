package response

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func queryCtx(rawQuery string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/v1/yards?"+rawQuery, nil)
	return c
}

func TestParsePageQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name     string
		query    string
		wantNum  int
		wantSize int
	}{
		{"defaults", "", 1, 10},
		{"explicit", "pageNumber=3&pageSize=25", 3, 25},
		{"zero page floored", "pageNumber=0&pageSize=10", 1, 10},
		{"negative page floored", "pageNumber=-5&pageSize=10", 1, 10},
		{"oversized clamped", "pageNumber=1&pageSize=500", 1, 100},
		{"huge page capped", "pageNumber=2000000000&pageSize=10", 1000000, 10},
		{"zero size floored", "pageNumber=1&pageSize=0", 1, 1},
		{"garbage ignored", "pageNumber=abc&pageSize=xyz", 1, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := ParsePageQuery(queryCtx(tc.query))
			assert.Equal(t, tc.wantNum, q.Number)
			assert.Equal(t, tc.wantSize, q.Size)
		})
	}
}

func TestPageQueryOffset(t *testing.T) {
	assert.Equal(t, 0, PageQuery{Number: 1, Size: 10}.Offset())
	assert.Equal(t, 20, PageQuery{Number: 3, Size: 10}.Offset())

	// The parse-time cap keeps the worst-case offset far from overflow.
	worst := ParsePageQuery(queryCtx("pageNumber=2000000000&pageSize=100"))
	assert.GreaterOrEqual(t, worst.Offset(), 0)
	assert.Equal(t, (maxPageNumber-1)*maxPageSize, worst.Offset())
}

func TestNewPageMeta(t *testing.T) {
	m := NewPageMeta(25, PageQuery{Number: 2, Size: 10})
	assert.Equal(t, int64(25), m.TotalItems)
	assert.Equal(t, 10, m.PageSize)
	assert.Equal(t, 2, m.PageNumber)
	assert.Equal(t, 3, m.TotalPages)

	empty := NewPageMeta(0, PageQuery{Number: 1, Size: 10})
	assert.Equal(t, 0, empty.TotalPages)
}

func TestItemLinks(t *testing.T) {
	full := ItemLinks("/api/v1/yards", 7, true)
	assert.Len(t, full, 3)
	assert.Equal(t, "/api/v1/yards/7", full[0].Href)
	assert.Equal(t, "self", full[0].Rel)
	assert.Equal(t, "update", full[1].Rel)
	assert.Equal(t, "delete", full[2].Rel)

	selfOnly := ItemLinks("/api/v1/yards", 7, false)
	assert.Len(t, selfOnly, 1)
	assert.Equal(t, "self", selfOnly[0].Rel)
}

func TestListLinks(t *testing.T) {
	rels := func(links []Link) []string {
		out := make([]string, 0, len(links))
		for _, l := range links {
			out = append(out, l.Rel)
		}
		return out
	}

	first := ListLinks("/api/v1/yards", PageQuery{Number: 1, Size: 10}, 25)
	assert.Equal(t, []string{"self", "next"}, rels(first))

	middle := ListLinks("/api/v1/yards", PageQuery{Number: 2, Size: 10}, 25)
	assert.Equal(t, []string{"self", "prev", "next"}, rels(middle))

	last := ListLinks("/api/v1/yards", PageQuery{Number: 3, Size: 10}, 25)
	assert.Equal(t, []string{"self", "prev"}, rels(last))

	only := ListLinks("/api/v1/yards", PageQuery{Number: 1, Size: 10}, 5)
	assert.Equal(t, []string{"self"}, rels(only))
}
