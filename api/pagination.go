package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/loplicat/airport-api-service/internal/repository"
)

// Paginator translates page-number query parameters into limit/offset
// pages. page_size is clamped to MaxPageSize.
type Paginator struct {
	PageSize    int
	MaxPageSize int
}

func (p Paginator) Parse(c *gin.Context) (repository.Page, int) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page = n
		}
	}

	size := p.PageSize
	if raw := c.Query("page_size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			size = n
		}
	}
	if size > p.MaxPageSize {
		size = p.MaxPageSize
	}

	return repository.Page{Limit: size, Offset: (page - 1) * size}, page
}

type pagedResponse struct {
	Count    int64       `json:"count"`
	Next     *int        `json:"next"`
	Previous *int        `json:"previous"`
	Results  interface{} `json:"results"`
}

func paged(count int64, page, size int, results interface{}) pagedResponse {
	resp := pagedResponse{Count: count, Results: results}
	if int64(page*size) < count {
		next := page + 1
		resp.Next = &next
	}
	if page > 1 {
		prev := page - 1
		resp.Previous = &prev
	}
	return resp
}
