package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/saanj-studio/anthology-core/internal/pkg/response"
)

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 100
)

// Query holds parsed pagination parameters.
type Query struct {
	Page int
	Size int
}

// FromContext extracts and validates pagination params from the request.
func FromContext(c *gin.Context) Query {
	page := parseIntOr(c.DefaultQuery("page", "1"), DefaultPage)
	size := parseIntOr(c.DefaultQuery("size", "10"), DefaultSize)

	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}

	return Query{Page: page, Size: size}
}

// SkipFirst converts page/size into the catalog's skip/first window.
func (q Query) SkipFirst() (skip, first int) {
	return (q.Page - 1) * q.Size, q.Size
}

// Meta builds pagination metadata from the post-filter total. Total counts
// results after filtering but before the skip/first window is applied.
func (q Query) Meta(total int) response.Pagination {
	totalPage := (total + q.Size - 1) / q.Size

	return response.Pagination{
		Total:       total,
		CurrentPage: q.Page,
		TotalPage:   totalPage,
		Size:        q.Size,
		HasNextPage: q.Page < totalPage,
	}
}

func parseIntOr(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
