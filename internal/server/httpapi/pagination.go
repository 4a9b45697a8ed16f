package httpapi

import (
	"net/http"
	"strconv"
)

const defaultPageSize = 10

// pageParams carries the normalized ?page&limit query values.
type pageParams struct {
	Page   int
	Limit  int
	Offset int
}

// parsePagination reads ?page and ?limit, falling back to page 1 and the
// default page size on absent or malformed values.
func parsePagination(r *http.Request) pageParams {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = defaultPageSize
	}
	return pageParams{Page: page, Limit: limit, Offset: (page - 1) * limit}
}

// totalPages derives the page count from a total row count, never below 1
// page so clients can always render a pager.
func totalPages(total int64, limit int) int64 {
	pages := (total + int64(limit) - 1) / int64(limit)
	if pages < 1 {
		pages = 1
	}
	return pages
}
