package repository

import (
	"github.com/puzzlekeeper/puzzle-api/internal/utils"
	"gorm.io/gorm"
)

// paginate limits a query to the requested page window
func paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// newestFirst orders by creation time, breaking ties by id so pages do not
// overlap when rows share a timestamp.
func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id")
}
