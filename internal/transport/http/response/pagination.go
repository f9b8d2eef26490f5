package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	maxPageNumber   = 1_000_000
)

// PageQuery is the sanitized pagination input: pageNumber clamped to
// [1,maxPageNumber] so the offset cannot overflow, pageSize to [1,100].
type PageQuery struct {
	Number int
	Size   int
}

func ParsePageQuery(c *gin.Context) PageQuery {
	q := PageQuery{Number: 1, Size: defaultPageSize}
	if v, err := strconv.Atoi(c.Query("pageNumber")); err == nil {
		q.Number = v
	}
	if v, err := strconv.Atoi(c.Query("pageSize")); err == nil {
		q.Size = v
	}
	if q.Number < 1 {
		q.Number = 1
	}
	if q.Number > maxPageNumber {
		q.Number = maxPageNumber
	}
	if q.Size < 1 {
		q.Size = 1
	}
	if q.Size > maxPageSize {
		q.Size = maxPageSize
	}
	return q
}

func (q PageQuery) Offset() int { return (q.Number - 1) * q.Size }

// PageMeta is serialized into the X-Pagination response header.
type PageMeta struct {
	TotalItems int64 `json:"totalItems"`
	PageSize   int   `json:"pageSize"`
	PageNumber int   `json:"pageNumber"`
	TotalPages int   `json:"totalPages"`
}

func NewPageMeta(total int64, q PageQuery) PageMeta {
	pages := int((total + int64(q.Size) - 1) / int64(q.Size))
	return PageMeta{
		TotalItems: total,
		PageSize:   q.Size,
		PageNumber: q.Number,
		TotalPages: pages,
	}
}

func WritePageHeader(c *gin.Context, meta PageMeta) {
	b, _ := json.Marshal(meta)
	c.Header("X-Pagination", string(b))
}

// Link is a HATEOAS navigation entry attached to DTOs and list responses.
type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

// ItemLinks builds the per-resource links. Collection items also advertise
// update and delete; a detail view only advertises itself.
func ItemLinks(basePath string, id uint, withWrite bool) []Link {
	href := fmt.Sprintf("%s/%d", basePath, id)
	links := []Link{{Href: href, Rel: "self", Method: http.MethodGet}}
	if withWrite {
		links = append(links,
			Link{Href: href, Rel: "update", Method: http.MethodPut},
			Link{Href: href, Rel: "delete", Method: http.MethodDelete},
		)
	}
	return links
}

// ListLinks builds self plus conditional prev/next navigation for a page.
// Pure function of the current page state; nothing is stored.
func ListLinks(basePath string, q PageQuery, total int64) []Link {
	page := func(n int) string {
		return fmt.Sprintf("%s?pageNumber=%d&pageSize=%d", basePath, n, q.Size)
	}
	links := []Link{{Href: page(q.Number), Rel: "self", Method: http.MethodGet}}
	if q.Number > 1 {
		links = append(links, Link{Href: page(q.Number - 1), Rel: "prev", Method: http.MethodGet})
	}
	if int64(q.Number)*int64(q.Size) < total {
		links = append(links, Link{Href: page(q.Number + 1), Rel: "next", Method: http.MethodGet})
	}
	return links
}
