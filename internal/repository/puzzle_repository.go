package repository

import (
	"context"

	"github.com/puzzlekeeper/puzzle-api/internal/models"
	"github.com/puzzlekeeper/puzzle-api/internal/utils"
	"gorm.io/gorm"
)

// GormPuzzleRepository is a GORM implementation of PuzzleRepository
type GormPuzzleRepository struct {
	db *gorm.DB
}

// NewPuzzleRepository creates a new PuzzleRepository
func NewPuzzleRepository(db *gorm.DB) PuzzleRepository {
	return &GormPuzzleRepository{db: db}
}

// Create creates a new puzzle
func (r *GormPuzzleRepository) Create(ctx context.Context, puzzle *models.Puzzle) error {
	return translate(r.db.WithContext(ctx).Create(puzzle).Error)
}

// FindByID finds a puzzle by ID
func (r *GormPuzzleRepository) FindByID(ctx context.Context, id string) (*models.Puzzle, error) {
	var puzzle models.Puzzle
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&puzzle).Error; err != nil {
		return nil, translate(err)
	}
	return &puzzle, nil
}

// ListByOwner lists the owner's puzzles, newest first
func (r *GormPuzzleRepository) ListByOwner(ctx context.Context, ownerID string, params utils.PaginationParams) ([]models.Puzzle, int64, error) {
	byOwner := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Puzzle{}).Where("owner_id = ?", ownerID)
	}

	var total int64
	if err := byOwner().Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var puzzles []models.Puzzle
	if err := byOwner().Scopes(newestFirst, paginate(params)).Find(&puzzles).Error; err != nil {
		return nil, 0, translate(err)
	}

	return puzzles, total, nil
}

// Update saves all fields of the puzzle
func (r *GormPuzzleRepository) Update(ctx context.Context, puzzle *models.Puzzle) error {
	return translate(r.db.WithContext(ctx).Save(puzzle).Error)
}

// Delete removes a puzzle
func (r *GormPuzzleRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Puzzle{})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
