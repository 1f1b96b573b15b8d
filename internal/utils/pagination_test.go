package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewPaginationParams(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
		want        PaginationParams
	}{
		{"defaults", 0, 0, PaginationParams{Page: 1, Limit: 20, Offset: 0}},
		{"third page", 3, 10, PaginationParams{Page: 3, Limit: 10, Offset: 20}},
		{"negative page", -2, 5, PaginationParams{Page: 1, Limit: 5, Offset: 0}},
		{"limit capped", 2, 500, PaginationParams{Page: 2, Limit: 100, Offset: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPaginationParams(tt.page, tt.limit))
		})
	}
}

func TestGetPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/puzzles?page=2&limit=abc", nil)

	assert.Equal(t, PaginationParams{Page: 2, Limit: 20, Offset: 20}, GetPaginationParams(c))
}

func TestTotalPages(t *testing.T) {
	p := NewPaginationParams(1, 2)
	assert.Equal(t, 0, p.TotalPages(0))
	assert.Equal(t, 1, p.TotalPages(2))
	assert.Equal(t, 2, p.TotalPages(3))
}
