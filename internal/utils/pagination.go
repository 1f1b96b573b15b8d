package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/puzzlekeeper/puzzle-api/internal/constants"
)

// PaginationParams is the page window requested by a list endpoint
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// NewPaginationParams normalizes page and limit. Pages start at 1 and the
// limit is capped at constants.MaxPageSize.
func NewPaginationParams(page, limit int) PaginationParams {
	if page < 1 {
		page = 1
	}
	switch {
	case limit < constants.MinPageSize:
		limit = constants.DefaultPageSize
	case limit > constants.MaxPageSize:
		limit = constants.MaxPageSize
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// GetPaginationParams reads ?page= and ?limit= from the request
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return NewPaginationParams(page, limit)
}

// TotalPages returns how many pages of this size hold total items.
func (p PaginationParams) TotalPages(total int64) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}
