package database

import (
	"fmt"

	"github.com/puzzlekeeper/puzzle-api/internal/models"
	"gorm.io/gorm"
)

type index struct {
	model   interface{}
	name    string
	columns string
}

// indexes back the account deletion cleanup, which filters movie responses
// by either user slot.
var indexes = []index{
	{&models.MovieResponse{}, "idx_movie_responses_user1_id", "user1_id"},
	{&models.MovieResponse{}, "idx_movie_responses_user2_id", "user2_id"},
	{&models.Puzzle{}, "idx_puzzles_owner_created", "owner_id, created_at"},
}

// AddIndexes creates missing indexes. Existing ones are left untouched.
func AddIndexes(db *gorm.DB) error {
	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			continue
		}

		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(idx.model); err != nil {
			return fmt.Errorf("failed to resolve table for index %s: %w", idx.name, err)
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, stmt.Schema.Table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
