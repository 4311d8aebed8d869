// internal/utils/pagination.go
package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

type PaginationParams struct {
	Page int `json:"page"`
}

// Pager is the page state a listing was cut with. The page size and the
// clamping live with the implementation.
type Pager interface {
	Page() int
	PageSize() int
	Pages() int
	Total() int
	HasPrevious() bool
	HasNext() bool
}

type PaginationResult struct {
	Page        int         `json:"page"`
	Limit       int         `json:"limit"`
	Total       int64       `json:"total"`
	TotalPages  int         `json:"total_pages"`
	HasPrevious bool        `json:"has_previous"`
	HasNext     bool        `json:"has_next"`
	Data        interface{} `json:"data"`
}

// GetPaginationParams reads ?page=. Malformed values fall back to page 1;
// pages past the end are clamped by the Pager.
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	return PaginationParams{
		Page: page,
	}
}

func NewPaginationResult(data interface{}, p Pager) PaginationResult {
	return PaginationResult{
		Page:        p.Page(),
		Limit:       p.PageSize(),
		Total:       int64(p.Total()),
		TotalPages:  p.Pages(),
		HasPrevious: p.HasPrevious(),
		HasNext:     p.HasNext(),
		Data:        data,
	}
}

func SetPaginationHeaders(c *gin.Context, result PaginationResult) {
	c.Header("X-Total-Count", strconv.FormatInt(result.Total, 10))
	c.Header("X-Page", strconv.Itoa(result.Page))
	c.Header("X-Per-Page", strconv.Itoa(result.Limit))
	c.Header("X-Total-Pages", strconv.Itoa(result.TotalPages))
}
